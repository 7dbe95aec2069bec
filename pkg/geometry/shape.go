package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
// Hit returns the ray parameter of the closest intersection in [tMin, tMax]
// and fills hit only when it reports true.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64, hit *material.HitInfo) (float64, bool)
	BoundingBox() core.AABB
}

// faceForward orients the outward normal against the incoming ray
func faceForward(ray core.Ray, outwardNormal core.Vec3) core.Vec3 {
	if ray.Direction.Dot(outwardNormal) > 0 {
		return outwardNormal.Negate()
	}
	return outwardNormal
}
