package scene

import (
	"errors"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// ErrNoShapes is returned when preprocessing a scene with nothing to hit
var ErrNoShapes = errors.New("scene has no shapes")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name        string
	Camera      renderer.CameraConfig
	Shapes      []geometry.Shape         // Objects in the scene
	LightList   []lights.Light           // Lights in storage order
	Environment integrator.Environment   // Nil renders escaping rays black
	Gradient    *material.LinearGradient // Nil selects the default gradient
	BVH         *geometry.BVH            // Built by Preprocess
}

// NewGroundQuad creates a large horizontal parallelogram centered at center with normal +Y
func NewGroundQuad(center core.Vec3, size float64, mat material.Material) *geometry.Parallelogram {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) = (0,size²,0)
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewParallelogram(corner, u, v, mat)
}

// Preprocess builds the BVH. Call it once after the scene is assembled.
func (s *Scene) Preprocess() error {
	if len(s.Shapes) == 0 {
		return ErrNoShapes
	}
	s.BVH = geometry.NewBVH(s.Shapes)
	return nil
}

// Intersect implements integrator.Scene
func (s *Scene) Intersect(ray *core.Ray, hit *material.HitInfo) bool {
	if s.BVH == nil {
		return false
	}
	return s.BVH.Intersect(ray, hit)
}

// Lights implements integrator.Scene
func (s *Scene) Lights() []lights.Light {
	return s.LightList
}

// SampleEnvironment implements integrator.Scene
func (s *Scene) SampleEnvironment(ray core.Ray) core.Vec3 {
	if s.Environment == nil {
		return core.Vec3{}
	}
	return s.Environment.Sample(ray)
}

// AddShapes appends shapes to the scene
func (s *Scene) AddShapes(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// AddLights appends lights to the scene
func (s *Scene) AddLights(sceneLights ...lights.Light) {
	s.LightList = append(s.LightList, sceneLights...)
}

// Summary counts the scene contents by kind
type Summary struct {
	Shapes int
	Lights map[lights.LightType]int
}

// Summarize reports how many shapes and lights of each type the scene holds
func (s *Scene) Summarize() Summary {
	summary := Summary{Shapes: len(s.Shapes), Lights: make(map[lights.LightType]int)}
	for _, light := range s.LightList {
		summary.Lights[light.Type()]++
	}
	return summary
}
