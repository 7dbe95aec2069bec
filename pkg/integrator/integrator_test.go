package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const tolerance = 1e-9

// testScene wraps a BVH and counts intersection queries
type testScene struct {
	bvh           *geometry.BVH
	lights        []lights.Light
	environment   Environment
	intersections int
}

func newTestScene(shapes []geometry.Shape, sceneLights ...lights.Light) *testScene {
	return &testScene{
		bvh:         geometry.NewBVH(shapes),
		lights:      sceneLights,
		environment: SolidEnvironment{},
	}
}

func (s *testScene) Intersect(ray *core.Ray, hit *material.HitInfo) bool {
	s.intersections++
	return s.bvh.Intersect(ray, hit)
}

func (s *testScene) Lights() []lights.Light { return s.lights }

func (s *testScene) SampleEnvironment(ray core.Ray) core.Vec3 {
	return s.environment.Sample(ray)
}

// fixedSampler replays values in order, wrapping around
type fixedSampler struct {
	values []float64
	next   int
	calls  int
}

func (f *fixedSampler) Next1D() float64 {
	f.calls++
	v := f.values[f.next%len(f.values)]
	f.next++
	return v
}

func (f *fixedSampler) Next2D() core.Vec2 {
	return core.NewVec2(f.Next1D(), f.Next1D())
}

// floor is a 20x20 parallelogram in the y=0 plane centered on the origin, normal +Y
func floor(mat material.Material) geometry.Shape {
	return geometry.NewParallelogram(core.NewVec3(-10, 0, -10), core.NewVec3(0, 0, 20), core.NewVec3(20, 0, 0), mat)
}

// downAtOrigin is a ray that hits the floor at the origin
func downAtOrigin() core.Ray {
	return core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
}

// intersect returns ray with T set and the hit at its end
func intersect(scene Scene, ray core.Ray) (core.Ray, material.HitInfo, bool) {
	var hit material.HitInfo
	ok := scene.Intersect(&ray, &hit)
	return ray, hit, ok
}

func lambertianFeatures() core.Features {
	f := core.DefaultFeatures()
	f.ShadingModel = core.ShadingLambertian
	return f
}
