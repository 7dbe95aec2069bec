package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Parallelogram is a flat surface spanned by two edge vectors from a corner
type Parallelogram struct {
	Corner   core.Vec3
	U        core.Vec3 // First edge vector
	V        core.Vec3 // Second edge vector
	Normal   core.Vec3 // Normalized U × V
	Material material.Material
	d        float64   // Plane equation constant: normal · p = d
	w        core.Vec3 // Cached vector for planar coordinates
}

// NewParallelogram creates a new parallelogram from a corner point and two edge vectors
func NewParallelogram(corner, u, v core.Vec3, mat material.Material) *Parallelogram {
	cross := u.Cross(v)
	normal := cross.Normalize()

	return &Parallelogram{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		Material: mat,
		d:        normal.Dot(corner),
		w:        cross.Multiply(1.0 / cross.Dot(cross)),
	}
}

// Hit tests if a ray intersects with the parallelogram
func (p *Parallelogram) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitInfo) (float64, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	// Ray is parallel to the plane
	if math.Abs(denominator) < 1e-8 {
		return 0, false
	}

	t := (p.d - ray.Origin.Dot(p.Normal)) / denominator
	if t < tMin || t > tMax {
		return 0, false
	}

	// Planar coordinates of the hit point along U and V
	hitVector := ray.At(t).Subtract(p.Corner)
	alpha := p.w.Dot(hitVector.Cross(p.V))
	beta := p.w.Dot(p.U.Cross(hitVector))

	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return 0, false
	}

	hit.Normal = faceForward(ray, p.Normal)
	hit.TexCoord = core.NewVec2(alpha, beta)
	hit.Material = p.Material

	return t, true
}

// BoundingBox returns the axis-aligned bounding box for this parallelogram,
// padded so axis-aligned surfaces keep a non-zero thickness
func (p *Parallelogram) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(
		p.Corner,
		p.Corner.Add(p.U),
		p.Corner.Add(p.V),
		p.Corner.Add(p.U).Add(p.V),
	).Expand(1e-4)
}
