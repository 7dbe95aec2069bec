package core

import "math"

// Ray represents a ray with an origin and direction.
// T is the distance along the ray to the closest known hit; intersection
// routines only report hits closer than T and overwrite it on success.
type Ray struct {
	Origin    Vec3
	Direction Vec3 // not required to be normalized
	T         float64
}

// NewRay creates a new ray with an unbounded hit distance
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, T: math.Inf(1)}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// HitPoint returns origin + direction*T
func (r Ray) HitPoint() Vec3 {
	return r.At(r.T)
}
