package integrator

import (
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func TestDirectLight_PointLight(t *testing.T) {
	overhead := lights.NewPointLight(core.NewVec3(0, 5, 0), core.Splat(1))
	occluder := geometry.NewSphere(core.NewVec3(0, 2.5, 0), 0.5, material.NewDiffuse(core.Splat(1)))
	opaque := material.NewDiffuse(core.Splat(0.5))
	glass := material.Material{Kd: core.Splat(0.5), Transparency: 0.5}

	tests := []struct {
		name     string
		receiver material.Material
		occluded bool
		shadows  bool
		expected core.Vec3
	}{
		{"Lit opaque surface", opaque, false, true, core.Splat(0.5)},
		{"Occluded opaque surface", opaque, true, true, core.Vec3{}},
		{"Occluder ignored without shadows", opaque, true, false, core.Splat(0.5)},
		{"Transparent surface adds the light color", glass, false, true, core.Splat(0.5*0.5 + 1)},
		{"Occluded transparent surface", glass, true, true, core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shapes := []geometry.Shape{floor(tt.receiver)}
			if tt.occluded {
				shapes = append(shapes, occluder)
			}
			scene := newTestScene(shapes, overhead)
			ray, hit, _ := intersect(scene, downAtOrigin())

			f := lambertianFeatures()
			f.EnableShadows = tt.shadows
			w := NewWhitted(scene, f, &fixedSampler{values: []float64{0.5}})

			got := w.DirectLight(ray, hit)
			if !got.ApproxEqual(tt.expected, tolerance) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDirectLight_SumsLightsInOrder(t *testing.T) {
	scene := newTestScene(
		[]geometry.Shape{floor(material.NewDiffuse(core.Splat(1)))},
		lights.NewPointLight(core.NewVec3(0, 5, 0), core.NewVec3(0.25, 0, 0)),
		lights.NewPointLight(core.NewVec3(0, 3, 0), core.NewVec3(0, 0.5, 0)),
	)
	ray, hit, _ := intersect(scene, downAtOrigin())
	w := NewWhitted(scene, lambertianFeatures(), &fixedSampler{values: []float64{0.5}})

	got := w.DirectLight(ray, hit)
	expected := core.NewVec3(0.25, 0.5, 0)
	if !got.ApproxEqual(expected, tolerance) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestDirectLight_AreaLightSampleCounts(t *testing.T) {
	segment := lights.NewSegmentLight(core.NewVec3(-1, 5, 0), core.NewVec3(1, 5, 0), core.Splat(1), core.Splat(1))
	parallelogram := lights.NewParallelogramLight(core.NewVec3(-1, 5, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2),
		[4]core.Vec3{core.Splat(1), core.Splat(1), core.Splat(1), core.Splat(1)})

	tests := []struct {
		name          string
		light         lights.Light
		numSamples    int
		expectedCalls int
		expected      core.Vec3
	}{
		{"Segment without samples", segment, 0, 0, core.Vec3{}},
		{"Segment", segment, 4, 4, core.Splat(0.5)},
		{"Parallelogram without samples", parallelogram, 0, 0, core.Vec3{}},
		{"Parallelogram", parallelogram, 3, 6, core.Splat(0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := newTestScene([]geometry.Shape{floor(material.NewDiffuse(core.Splat(0.5)))}, tt.light)
			ray, hit, _ := intersect(scene, downAtOrigin())

			f := core.DefaultFeatures()
			f.EnableShading = false
			f.NumShadowSamples = tt.numSamples
			sampler := &fixedSampler{values: []float64{0.1, 0.7, 0.4}}
			w := NewWhitted(scene, f, sampler)

			got := w.DirectLight(ray, hit)
			if !got.ApproxEqual(tt.expected, tolerance) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
			if sampler.calls != tt.expectedCalls {
				t.Errorf("Expected %d sampler draws, got %d", tt.expectedCalls, sampler.calls)
			}
		})
	}
}

func TestDirectLight_PartiallyOccludedAreaLight(t *testing.T) {
	// The sphere blocks the path to the light's left end only
	light := lights.NewParallelogramLight(core.NewVec3(-4, 5, 0), core.NewVec3(8, 0, 0), core.NewVec3(0, 0, 0.01),
		[4]core.Vec3{core.Splat(1), core.Splat(1), core.Splat(1), core.Splat(1)})
	occluder := geometry.NewSphere(core.NewVec3(-2, 2.5, 0), 0.5, material.NewDiffuse(core.Splat(1)))
	scene := newTestScene([]geometry.Shape{floor(material.NewDiffuse(core.Splat(0.5))), occluder}, light)
	ray, hit, _ := intersect(scene, downAtOrigin())

	f := core.DefaultFeatures()
	f.EnableShading = false
	f.EnableTransparency = false
	f.NumShadowSamples = 2

	// Samples (0,0) then (1,0): left end, then right end
	w := NewWhitted(scene, f, &fixedSampler{values: []float64{0, 0, 1, 0}})

	got := w.DirectLight(ray, hit)
	expected := core.Splat(0.25)
	if !got.ApproxEqual(expected, tolerance) {
		t.Errorf("Expected half of the unoccluded result %v, got %v", expected, got)
	}
}

func TestDirectLight_OccludedAreaSampleTintedOnTransparentReceiver(t *testing.T) {
	light := lights.NewParallelogramLight(core.NewVec3(-4, 5, 0), core.NewVec3(8, 0, 0), core.NewVec3(0, 0, 0.01),
		[4]core.Vec3{core.Splat(1), core.Splat(1), core.Splat(1), core.Splat(1)})
	occluder := geometry.NewSphere(core.NewVec3(-2, 2.5, 0), 0.5, material.NewDiffuse(core.Splat(1)))
	glassFloor := material.NewDiffuse(core.Splat(0.5))
	glassFloor.Transparency = 0.5
	scene := newTestScene([]geometry.Shape{floor(glassFloor), occluder}, light)
	ray, hit, _ := intersect(scene, downAtOrigin())

	f := core.DefaultFeatures()
	f.EnableShading = false
	f.EnableTransparency = true
	f.NumShadowSamples = 2

	w := NewWhitted(scene, f, &fixedSampler{values: []float64{0, 0, 1, 0}})

	// Occluded sample: light tinted to 1*kd*(1-transparency) = 0.25, shaded by kd to 0.125.
	// Unoccluded sample: 0.5.
	got := w.DirectLight(ray, hit)
	expected := core.Splat((0.125 + 0.5) / 2)
	if !got.ApproxEqual(expected, tolerance) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestDirectLight_DeterministicForSeed(t *testing.T) {
	light := lights.NewParallelogramLight(core.NewVec3(-1, 4, -1), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2),
		[4]core.Vec3{core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 0, 1), core.Splat(1)})
	occluder := geometry.NewSphere(core.NewVec3(0.3, 2, 0.2), 0.4, material.NewDiffuse(core.Splat(1)))
	scene := newTestScene([]geometry.Shape{floor(material.NewDiffuse(core.Splat(0.8))), occluder}, light)
	ray, hit, _ := intersect(scene, downAtOrigin())

	first := NewWhitted(scene, core.DefaultFeatures(), core.NewSeededSampler(42)).DirectLight(ray, hit)
	second := NewWhitted(scene, core.DefaultFeatures(), core.NewSeededSampler(42)).DirectLight(ray, hit)

	if first != second {
		t.Errorf("Expected identical results for the same seed, got %v and %v", first, second)
	}
}

func TestDirectLight_UnknownLightPanics(t *testing.T) {
	scene := newTestScene([]geometry.Shape{floor(material.NewDiffuse(core.Splat(1)))}, nil)
	ray, hit, _ := intersect(scene, downAtOrigin())
	w := NewWhitted(scene, core.DefaultFeatures(), &fixedSampler{values: []float64{0.5}})

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for an unknown light variant")
		}
	}()
	w.DirectLight(ray, hit)
}
