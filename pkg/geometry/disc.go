package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Disc represents a circular disc in 3D space
type Disc struct {
	Center   core.Vec3         // Center of the disc
	Normal   core.Vec3         // Normal vector (pointing "up" from the disc)
	Radius   float64           // Radius of the disc
	Material material.Material // Material of the disc
	Right    core.Vec3         // Right vector (perpendicular to normal)
	Up       core.Vec3         // Up vector (perpendicular to normal and right)
}

// NewDisc creates a new disc
func NewDisc(center, normal core.Vec3, radius float64, mat material.Material) *Disc {
	normalNormalized := normal.Normalize()

	// Create orthogonal vectors
	var right core.Vec3
	if math.Abs(normalNormalized.X) > 0.1 {
		right = core.NewVec3(0, 1, 0)
	} else {
		right = core.NewVec3(1, 0, 0)
	}

	right = right.Cross(normalNormalized).Normalize()
	up := normalNormalized.Cross(right).Normalize()

	return &Disc{
		Center:   center,
		Normal:   normalNormalized,
		Radius:   radius,
		Material: mat,
		Right:    right,
		Up:       up,
	}
}

// Hit implements the Shape interface. Texture coordinates are polar:
// u is the angle around the normal from Right, v the distance from the center over the radius.
func (d *Disc) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitInfo) (float64, bool) {
	// Check if ray intersects the plane containing the disc
	denom := d.Normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-8 {
		return 0, false // Ray is parallel to disc
	}

	t := d.Normal.Dot(d.Center.Subtract(ray.Origin)) / denom
	if t < tMin || t > tMax {
		return 0, false
	}

	centerToHit := ray.At(t).Subtract(d.Center)
	distanceSquared := centerToHit.LengthSquared()
	if distanceSquared > d.Radius*d.Radius {
		return 0, false // Outside disc
	}

	angle := math.Atan2(centerToHit.Dot(d.Up), centerToHit.Dot(d.Right))
	if angle < 0 {
		angle += 2 * math.Pi
	}

	hit.Normal = faceForward(ray, d.Normal)
	hit.TexCoord = core.NewVec2(angle/(2*math.Pi), math.Sqrt(distanceSquared)/d.Radius)
	hit.Material = d.Material
	return t, true
}

// BoundingBox implements the Shape interface
func (d *Disc) BoundingBox() core.AABB {
	// The disc extends radius along Right and Up
	rightExtent := d.Right.Multiply(d.Radius)
	upExtent := d.Up.Multiply(d.Radius)

	return core.NewAABBFromPoints(
		d.Center.Add(rightExtent).Add(upExtent),
		d.Center.Add(rightExtent).Subtract(upExtent),
		d.Center.Subtract(rightExtent).Add(upExtent),
		d.Center.Subtract(rightExtent).Subtract(upExtent),
	).Expand(1e-4)
}
