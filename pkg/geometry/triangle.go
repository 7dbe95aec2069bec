package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Vertex is a triangle corner with its shading normal and texture coordinate
type Vertex struct {
	Position core.Vec3
	Normal   core.Vec3 // Zero selects the geometric normal
	TexCoord core.Vec2
}

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	V0, V1, V2 Vertex
	Material   material.Material
	normal     core.Vec3 // Cached geometric normal
	bbox       core.AABB // Cached bounding box
}

// NewTriangle creates a flat-shaded triangle from three positions
func NewTriangle(p0, p1, p2 core.Vec3, mat material.Material) *Triangle {
	return NewTriangleFromVertices(Vertex{Position: p0}, Vertex{Position: p1}, Vertex{Position: p2}, mat)
}

// NewTriangleFromVertices creates a triangle with per-vertex normals and texture coordinates
func NewTriangleFromVertices(v0, v1, v2 Vertex, mat material.Material) *Triangle {
	t := &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Material: mat,
	}

	edge1 := v1.Position.Subtract(v0.Position)
	edge2 := v2.Position.Subtract(v0.Position)
	t.normal = edge1.Cross(edge2).Normalize()
	t.bbox = core.NewAABBFromPoints(v0.Position, v1.Position, v2.Position).Expand(1e-4)

	return t
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitInfo) (float64, bool) {
	const epsilon = 1e-8

	edge1 := t.V1.Position.Subtract(t.V0.Position)
	edge2 := t.V2.Position.Subtract(t.V0.Position)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Ray lies in the plane of the triangle
	if a > -epsilon && a < epsilon {
		return 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0.Position)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, false
	}

	tHit := f * edge2.Dot(q)
	if tHit < tMin || tHit > tMax {
		return 0, false
	}

	w := 1.0 - u - v
	normal := t.normal
	if !t.V0.Normal.IsZero() || !t.V1.Normal.IsZero() || !t.V2.Normal.IsZero() {
		normal = t.V0.Normal.Multiply(w).
			Add(t.V1.Normal.Multiply(u)).
			Add(t.V2.Normal.Multiply(v))
	}

	hit.Normal = faceForward(ray, normal)
	hit.TexCoord = t.V0.TexCoord.Multiply(w).
		Add(t.V1.TexCoord.Multiply(u)).
		Add(t.V2.TexCoord.Multiply(v))
	hit.Material = t.Material

	return tHit, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// GetNormal returns the triangle's geometric normal
func (t *Triangle) GetNormal() core.Vec3 {
	return t.normal
}
