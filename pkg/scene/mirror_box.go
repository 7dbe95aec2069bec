package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// NewMirrorBoxScene encloses the camera in a box whose faces all reflect perfectly,
// so every primary ray bounces until the depth limit
func NewMirrorBoxScene() *Scene {
	s := &Scene{
		Name: "mirror-box",
		Camera: renderer.CameraConfig{
			Center: core.NewVec3(0, 0, 0.5),
			LookAt: core.NewVec3(0.3, -0.2, -1),
			Up:     core.NewVec3(0, 1, 0),
			VFov:   70.0,
		},
	}

	mirror := material.NewMirror(core.NewVec3(0.05, 0.02, 0.02), core.NewVec3(1, 1, 1), 1000)
	half := 1.0
	size := 2 * half

	corner := core.NewVec3(-half, -half, -half)
	far := core.NewVec3(half, half, half)
	x := core.NewVec3(size, 0, 0)
	y := core.NewVec3(0, size, 0)
	z := core.NewVec3(0, 0, size)

	s.AddShapes(
		geometry.NewParallelogram(corner, x, z, mirror),                   // Floor
		geometry.NewParallelogram(corner, y, x, mirror),                   // Back
		geometry.NewParallelogram(corner, z, y, mirror),                   // Left
		geometry.NewParallelogram(far, x.Negate(), z.Negate(), mirror),    // Ceiling
		geometry.NewParallelogram(far, y.Negate(), x.Negate(), mirror),    // Front
		geometry.NewParallelogram(far, z.Negate(), y.Negate(), mirror),    // Right
		geometry.NewSphere(core.NewVec3(0, -0.6, -0.4), 0.3, material.NewDiffuse(core.NewVec3(0.9, 0.3, 0.2))),
	)

	s.AddLights(lights.NewPointLight(core.NewVec3(0, 0.8, 0), core.NewVec3(0.9, 0.9, 0.9)))

	return s
}
