package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// cornellBoxSize is the edge length of the Cornell box
const cornellBoxSize = 555.0

// NewCornellScene creates a classic Cornell box with a parallelogram ceiling light
func NewCornellScene() *Scene {
	s := newCornellBox("cornell")

	// Left sphere (mirror)
	s.AddShapes(geometry.NewSphere(
		core.NewVec3(185, 82.5, 169),
		82.5,
		material.NewMirror(core.NewVec3(0.05, 0.05, 0.05), core.NewVec3(0.8, 0.8, 0.9), 200),
	))

	// Right sphere (tinted glass)
	s.AddShapes(geometry.NewSphere(
		core.NewVec3(370, 90, 351),
		90,
		material.Material{Kd: core.NewVec3(0.6, 0.8, 0.9), Ks: core.Splat(0.1), Shininess: 64, Transparency: 0.3},
	))

	return s
}

// NewCornellBoxesScene is the Cornell box with the two rotated blocks and a round mirror on the back wall
func NewCornellBoxesScene() *Scene {
	s := newCornellBox("cornell-boxes")
	white := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))

	// Tall box, back left, turned 15°
	s.AddShapes(geometry.NewBox(
		core.NewVec3(185, 165, 351),
		core.NewVec3(82.5, 165, 82.5),
		core.NewVec3(0, 15*math.Pi/180, 0),
		white,
	))

	// Short box, front right, turned -18°
	s.AddShapes(geometry.NewBox(
		core.NewVec3(370, 82.5, 169),
		core.NewVec3(82.5, 82.5, 82.5),
		core.NewVec3(0, -18*math.Pi/180, 0),
		white,
	))

	// Round mirror just in front of the back wall
	s.AddShapes(geometry.NewDisc(
		core.NewVec3(400, 380, cornellBoxSize-1),
		core.NewVec3(0, 0, -1),
		90,
		material.NewMirror(core.NewVec3(0.02, 0.02, 0.02), core.NewVec3(0.9, 0.9, 0.9), 500),
	))

	return s
}

// newCornellBox builds the walls, camera and ceiling light shared by the Cornell scenes
func newCornellBox(name string) *Scene {
	s := &Scene{
		Name: name,
		Camera: renderer.CameraConfig{
			Center: core.NewVec3(278, 278, -800), // Outside the box looking in
			LookAt: core.NewVec3(278, 278, 0),
			Up:     core.NewVec3(0, 1, 0),
			VFov:   40.0,
		},
		Environment: integrator.SolidEnvironment{}, // Black background
	}

	white := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15))

	boxSize := cornellBoxSize

	// Floor (white) - XZ plane at y=0
	floor := geometry.NewParallelogram(
		core.NewVec3(0, 0, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		white,
	)

	// Ceiling (white) - XZ plane at y=boxSize
	ceiling := geometry.NewParallelogram(
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, 0, boxSize),
		white,
	)

	// Back wall (white) - XY plane at z=boxSize
	backWall := geometry.NewParallelogram(
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
		white,
	)

	// Left wall (red) - YZ plane at x=0
	leftWall := geometry.NewParallelogram(
		core.NewVec3(0, 0, 0),
		core.NewVec3(0, 0, boxSize),
		core.NewVec3(0, boxSize, 0),
		red,
	)

	// Right wall (green) - YZ plane at x=boxSize
	rightWall := geometry.NewParallelogram(
		core.NewVec3(boxSize, 0, 0),
		core.NewVec3(0, boxSize, 0),
		core.NewVec3(0, 0, boxSize),
		green,
	)

	s.AddShapes(floor, ceiling, backWall, leftWall, rightWall)

	// Ceiling light, slightly below the ceiling, warmer towards the back
	lightSize := 130.0
	lightOffset := (boxSize - lightSize) / 2.0
	warm := core.NewVec3(1.0, 0.9, 0.75)
	cool := core.NewVec3(0.85, 0.9, 1.0)
	s.AddLights(lights.NewParallelogramLight(
		core.NewVec3(lightOffset, boxSize-1, lightOffset),
		core.NewVec3(lightSize, 0, 0),
		core.NewVec3(0, 0, lightSize),
		[4]core.Vec3{cool, cool, warm, warm},
	))

	return s
}
