package integrator

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// DirectLight sums the contribution of every scene light at the hit point of ray.
// ray.T must hold the hit distance.
func (w *Whitted) DirectLight(ray core.Ray, hit material.HitInfo) core.Vec3 {
	var lo core.Vec3
	for _, light := range w.scene.Lights() {
		switch l := light.(type) {
		case *lights.PointLight:
			lo = lo.Add(w.pointLightContribution(l, ray, hit))
		case *lights.SegmentLight:
			lo = lo.Add(w.areaLightContribution(ray, hit, func() (core.Vec3, core.Vec3) {
				return lights.SampleSegmentLight(w.sampler.Next1D(), l)
			}))
		case *lights.ParallelogramLight:
			lo = lo.Add(w.areaLightContribution(ray, hit, func() (core.Vec3, core.Vec3) {
				return lights.SampleParallelogramLight(w.sampler.Next2D(), l)
			}))
		default:
			panic(fmt.Sprintf("integrator: unknown light type %T", light))
		}
	}
	return lo
}

func (w *Whitted) pointLightContribution(light *lights.PointLight, ray core.Ray, hit material.HitInfo) core.Vec3 {
	if w.features.EnableShadows && !w.isLightVisible(light.Position, ray, hit) {
		return core.Vec3{}
	}

	toLight := light.Position.Subtract(ray.HitPoint())
	shaded := w.shader.Shade(ray.Direction.Negate(), toLight, light.Color, hit)

	transparency := hit.Material.Transparency
	if transparency < 1 {
		// Past the check above the light is unoccluded, so the transmitted term is the full light color
		return shaded.Multiply(1 - transparency).Add(light.Color)
	}
	return shaded
}

// areaLightContribution averages NumShadowSamples samples drawn by sample
func (w *Whitted) areaLightContribution(ray core.Ray, hit material.HitInfo, sample func() (position, color core.Vec3)) core.Vec3 {
	numSamples := w.features.NumShadowSamples
	if numSamples <= 0 {
		return core.Vec3{}
	}

	point := ray.HitPoint()
	viewDir := ray.Direction.Negate()

	var accumulated core.Vec3
	for i := 0; i < numSamples; i++ {
		position, color := sample()
		visible := w.Visibility(position, color, ray, hit)
		if visible.IsZero() {
			continue
		}
		accumulated = accumulated.Add(w.shader.Shade(viewDir, position.Subtract(point), visible, hit))
	}

	return accumulated.Multiply(1.0 / float64(numSamples))
}
