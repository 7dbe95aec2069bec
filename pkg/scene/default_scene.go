package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// NewDefaultScene creates spheres on a checkered ground under a sky gradient
func NewDefaultScene() *Scene {
	s := &Scene{
		Name: "default",
		Camera: renderer.CameraConfig{
			Center: core.NewVec3(0, 0.75, 2),
			LookAt: core.NewVec3(0, 0.5, -1),
			Up:     core.NewVec3(0, 1, 0),
			VFov:   40.0,
		},
		Environment: integrator.NewSkyEnvironment(),
	}

	checker := material.NewCheckerboardTexture(256, 256, 32,
		core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.2, 0.3, 0.1))
	ground := material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.0))
	ground.KdTexture = checker

	center := material.Material{Kd: core.NewVec3(0.1, 0.2, 0.5), Ks: core.Splat(0.3), Shininess: 32, Transparency: 1.0}
	glass := material.Material{Kd: core.NewVec3(0.9, 0.9, 0.9), Ks: core.Splat(0.1), Shininess: 128, Transparency: 0.25}
	metal := material.NewMirror(core.NewVec3(0.1, 0.1, 0.1), core.NewVec3(0.8, 0.6, 0.2), 300)

	s.AddShapes(
		NewGroundQuad(core.NewVec3(0, 0, -1), 20, ground),
		geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, center),
		geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, glass),
		geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, metal),
	)

	s.AddLights(
		lights.NewPointLight(core.NewVec3(2, 4, 2), core.NewVec3(0.7, 0.7, 0.7)),
		lights.NewSegmentLight(
			core.NewVec3(-2, 3, -2), core.NewVec3(2, 3, -2),
			core.NewVec3(0.6, 0.3, 0.2), core.NewVec3(0.2, 0.3, 0.6),
		),
	)

	return s
}
