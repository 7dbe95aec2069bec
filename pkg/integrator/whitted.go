package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// RenderRay traces ray and returns the radiance arriving along it.
// depth counts the bounces so far; primary rays start at 0.
func (w *Whitted) RenderRay(ray core.Ray, depth int) core.Vec3 {
	var hit material.HitInfo
	if !w.scene.Intersect(&ray, &hit) {
		w.sink.DrawRay(ray, core.DebugColorMiss)
		return w.scene.SampleEnvironment(ray)
	}

	lo := w.DirectLight(ray, hit)
	w.sink.DrawRay(ray, core.DebugColorHit)

	if depth >= w.features.MaxRayDepth {
		return lo
	}

	if w.features.EnableReflections && hit.Material.IsReflective() {
		if w.features.EnableGlossyReflection {
			lo = lo.Add(w.glossyComponent(ray, hit, depth))
		} else {
			lo = lo.Add(w.specularComponent(ray, hit, depth))
		}
	}

	if w.features.EnableTransparency && hit.Material.IsTransparent() {
		passthrough := GeneratePassthroughRay(ray)
		if !passthrough.Direction.IsZero() {
			lo = lo.Lerp(w.RenderRay(passthrough, depth+1), hit.Material.Transparency)
		}
	}

	return lo
}

// RenderRays returns the mean radiance over rays, or black for no rays
func (w *Whitted) RenderRays(rays []core.Ray, depth int) core.Vec3 {
	if len(rays) == 0 {
		return core.Vec3{}
	}

	var sum core.Vec3
	for _, ray := range rays {
		sum = sum.Add(w.RenderRay(ray, depth))
	}
	return sum.Multiply(1.0 / float64(len(rays)))
}

func (w *Whitted) specularComponent(ray core.Ray, hit material.HitInfo, depth int) core.Vec3 {
	reflected := GenerateReflectionRay(ray, hit)
	if reflected.Direction.IsZero() {
		return core.Vec3{}
	}
	w.sink.DrawRay(reflected, core.DebugColorSecondary)

	return hit.Material.Ks.MultiplyVec(w.RenderRay(reflected, depth+1))
}

// glossyComponent averages reflections scattered in a cone around the mirror
// direction. Lower shininess widens the cone.
func (w *Whitted) glossyComponent(ray core.Ray, hit material.HitInfo, depth int) core.Vec3 {
	mirror := GenerateReflectionRay(ray, hit)
	if mirror.Direction.IsZero() {
		return core.Vec3{}
	}

	numSamples := w.features.NumGlossySamples
	if numSamples <= 0 {
		return w.specularComponent(ray, hit, depth)
	}

	roughness := 1.0 / (1.0 + hit.Material.Shininess/100.0)
	alpha := roughness * roughness
	normal := hit.Normal.Normalize()

	var sum core.Vec3
	for i := 0; i < numSamples; i++ {
		direction := core.SampleCone(mirror.Direction, alpha, w.sampler.Next2D())
		// Fold samples that dip below the surface back above it
		if cos := direction.Dot(normal); cos < 0 {
			direction = direction.Subtract(normal.Multiply(2 * cos))
		}

		scattered := core.NewRay(mirror.Origin, direction)
		w.sink.DrawRay(scattered, core.DebugColorSecondary)
		sum = sum.Add(w.RenderRay(scattered, depth+1))
	}

	return hit.Material.Ks.MultiplyVec(sum.Multiply(1.0 / float64(numSamples)))
}

// GenerateReflectionRay mirrors the direction of ray about the hit normal.
// The origin is lifted off the surface along the normal.
func GenerateReflectionRay(ray core.Ray, hit material.HitInfo) core.Ray {
	normal := hit.Normal.Normalize()
	incident := ray.Direction.Normalize()

	origin := ray.HitPoint().Add(normal.Multiply(ShadowEpsilon))
	return core.NewRay(origin, incident.Reflect(normal))
}

// GeneratePassthroughRay continues ray past its hit point in the same direction.
// A ray without a hit yields a zero direction.
func GeneratePassthroughRay(ray core.Ray) core.Ray {
	if math.IsInf(ray.T, 0) {
		return core.NewRay(ray.Origin, core.Vec3{})
	}

	origin := ray.HitPoint().Add(ray.Direction.Normalize().Multiply(ShadowEpsilon))
	return core.NewRay(origin, ray.Direction)
}
