package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Visibility returns how much of lightColor reaches the hit point of ray.
//
//   - shadows disabled: the full light color, without querying the scene
//   - shadows without transparency: the full color or black
//   - shadows with transparency: an occluded light is tinted by the receiving
//     surface as lightColor * kd * (1 - transparency)
func (w *Whitted) Visibility(lightPosition, lightColor core.Vec3, ray core.Ray, hit material.HitInfo) core.Vec3 {
	if !w.features.EnableShadows {
		return lightColor
	}
	if w.isLightVisible(lightPosition, ray, hit) {
		return lightColor
	}
	if !w.features.EnableTransparency {
		return core.Vec3{}
	}
	return lightColor.MultiplyVec(hit.Material.Kd).Multiply(1 - hit.Material.Transparency)
}

// isLightVisible casts a shadow ray from the hit point of ray towards lightPosition
func (w *Whitted) isLightVisible(lightPosition core.Vec3, ray core.Ray, hit material.HitInfo) bool {
	shadowRay := generateShadowRay(lightPosition, ray, hit)

	var shadowHit material.HitInfo
	if w.scene.Intersect(&shadowRay, &shadowHit) {
		w.sink.DrawRay(shadowRay, core.DebugColorOccluded)
		return false
	}
	w.sink.DrawRay(shadowRay, core.DebugColorUnoccluded)
	return true
}

// generateShadowRay starts just off the surface on the light's side and stops
// short of the light so geometry the light sits on does not occlude it
func generateShadowRay(lightPosition core.Vec3, ray core.Ray, hit material.HitInfo) core.Ray {
	point := ray.HitPoint()
	normal := hit.Normal.Normalize()
	if normal.Dot(lightPosition.Subtract(point)) < 0 {
		normal = normal.Negate()
	}

	origin := point.Add(normal.Multiply(ShadowEpsilon))
	toLight := lightPosition.Subtract(origin)
	distance := toLight.Length()

	shadowRay := core.NewRay(origin, toLight.Normalize())
	shadowRay.T = max(0, distance-ShadowEpsilon)
	return shadowRay
}
