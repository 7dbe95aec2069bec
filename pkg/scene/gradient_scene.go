package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// NewGradientScene shows the linear-gradient shading model: the cosine between
// light and normal picks a color from a sunset ramp
func NewGradientScene() *Scene {
	s := &Scene{
		Name: "gradient",
		Camera: renderer.CameraConfig{
			Center: core.NewVec3(0, 1, 3),
			LookAt: core.NewVec3(0, 0.5, 0),
			Up:     core.NewVec3(0, 1, 0),
			VFov:   45.0,
		},
		Environment: integrator.GradientEnvironment{
			Top:    core.NewVec3(0.05, 0.05, 0.15),
			Bottom: core.NewVec3(0.3, 0.15, 0.2),
		},
		Gradient: material.MustLinearGradient(
			material.GradientStop{T: -1.0, Color: core.NewVec3(0.05, 0.02, 0.1)},
			material.GradientStop{T: 0.0, Color: core.NewVec3(0.4, 0.1, 0.3)},
			material.GradientStop{T: 0.4, Color: core.NewVec3(0.9, 0.4, 0.2)},
			material.GradientStop{T: 0.8, Color: core.NewVec3(1.0, 0.8, 0.4)},
			material.GradientStop{T: 1.0, Color: core.NewVec3(1.0, 1.0, 0.9)},
		),
	}

	plain := material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.8))

	// Square pyramid, smooth shaded with normals pointing away from its axis
	apex := core.NewVec3(-1.4, 0.9, -1.2)
	base := []core.Vec3{
		core.NewVec3(apex.X-0.5, 0, apex.Z-0.5),
		core.NewVec3(apex.X+0.5, 0, apex.Z-0.5),
		core.NewVec3(apex.X+0.5, 0, apex.Z+0.5),
		core.NewVec3(apex.X-0.5, 0, apex.Z+0.5),
	}
	vertices := append(base, apex)
	normals := make([]core.Vec3, len(vertices))
	for i, v := range vertices {
		normals[i] = v.Subtract(core.NewVec3(apex.X, 0.3, apex.Z))
	}
	pyramid, err := geometry.NewTriangleMesh(vertices,
		[]int{0, 1, 4, 1, 2, 4, 2, 3, 4, 3, 0, 4},
		plain,
		&geometry.TriangleMeshOptions{Normals: normals},
	)
	if err != nil {
		panic(err)
	}

	s.AddShapes(
		pyramid,
		NewGroundQuad(core.NewVec3(0, 0, 0), 10, plain),
		geometry.NewSphere(core.NewVec3(0, 0.6, 0), 0.6, plain),
		geometry.NewSphere(core.NewVec3(-1.2, 0.3, 0.3), 0.3, plain),
		geometry.NewTriangleFromVertices(
			geometry.Vertex{Position: core.NewVec3(0.8, 0, 0.5), Normal: core.NewVec3(-0.5, 1, 0.5)},
			geometry.Vertex{Position: core.NewVec3(1.8, 0, 0.2), Normal: core.NewVec3(0.5, 1, 0.5)},
			geometry.Vertex{Position: core.NewVec3(1.3, 1.0, -0.2), Normal: core.NewVec3(0, 1, -0.5)},
			plain,
		),
	)

	s.AddLights(lights.NewPointLight(core.NewVec3(-2, 3, 2), core.Splat(1)))

	return s
}
