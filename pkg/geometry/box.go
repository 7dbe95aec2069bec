package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Box represents a rectangular box made up of 6 parallelograms with optional rotation
type Box struct {
	Center   core.Vec3         // Center point of the box
	Size     core.Vec3         // Half-extents along each axis
	Rotation core.Vec3         // Rotation angles in radians (X, Y, Z)
	Material material.Material // Material for all faces
	faces    [6]*Parallelogram
	bbox     core.AABB
}

// NewBox creates a new box with the given center, size, rotation, and material.
// Size represents half-extents (so a size of (1,1,1) creates a 2x2x2 box).
// Rotation is in radians around X, Y, Z axes (applied in that order).
func NewBox(center, size, rotation core.Vec3, mat material.Material) *Box {
	box := &Box{
		Center:   center,
		Size:     size,
		Rotation: rotation,
		Material: mat,
	}
	box.generateFaces()
	return box
}

// NewAxisAlignedBox creates a new axis-aligned box (no rotation)
func NewAxisAlignedBox(center, size core.Vec3, mat material.Material) *Box {
	return NewBox(center, size, core.Vec3{}, mat)
}

// generateFaces creates the 6 faces of the box
func (b *Box) generateFaces() {
	// Define the 8 corners of a unit box centered at origin
	corners := [8]core.Vec3{
		core.NewVec3(-1, -1, -1), // 0: left-bottom-back
		core.NewVec3(1, -1, -1),  // 1: right-bottom-back
		core.NewVec3(1, 1, -1),   // 2: right-top-back
		core.NewVec3(-1, 1, -1),  // 3: left-top-back
		core.NewVec3(-1, -1, 1),  // 4: left-bottom-front
		core.NewVec3(1, -1, 1),   // 5: right-bottom-front
		core.NewVec3(1, 1, 1),    // 6: right-top-front
		core.NewVec3(-1, 1, 1),   // 7: left-top-front
	}

	for i := range corners {
		corners[i] = rotateVertex(corners[i].MultiplyVec(b.Size), b.Rotation).Add(b.Center)
	}

	// Each face is a corner and two edges: corner, u end, v end
	faceCorners := [6][3]int{
		{4, 5, 7}, // Front (Z+)
		{1, 0, 2}, // Back (Z-)
		{5, 1, 6}, // Right (X+)
		{0, 4, 3}, // Left (X-)
		{3, 7, 2}, // Top (Y+)
		{4, 0, 5}, // Bottom (Y-)
	}
	for i, fc := range faceCorners {
		origin := corners[fc[0]]
		b.faces[i] = NewParallelogram(
			origin,
			corners[fc[1]].Subtract(origin),
			corners[fc[2]].Subtract(origin),
			b.Material,
		)
	}

	b.bbox = core.NewAABBFromPoints(corners[:]...).Expand(1e-4)
}

// Hit tests if a ray intersects with any face of the box
func (b *Box) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitInfo) (float64, bool) {
	hitAnything := false
	closestSoFar := tMax

	for _, face := range b.faces {
		if t, ok := face.Hit(ray, tMin, closestSoFar, hit); ok {
			hitAnything = true
			closestSoFar = t
		}
	}
	return closestSoFar, hitAnything
}

// BoundingBox returns the axis-aligned bounding box for this box
func (b *Box) BoundingBox() core.AABB {
	return b.bbox
}

// rotateVertex applies rotation around X, Y, Z axes (in that order)
func rotateVertex(vertex, rotation core.Vec3) core.Vec3 {
	if rotation.X != 0 {
		cos, sin := math.Cos(rotation.X), math.Sin(rotation.X)
		vertex = core.NewVec3(vertex.X, vertex.Y*cos-vertex.Z*sin, vertex.Y*sin+vertex.Z*cos)
	}
	if rotation.Y != 0 {
		cos, sin := math.Cos(rotation.Y), math.Sin(rotation.Y)
		vertex = core.NewVec3(vertex.X*cos+vertex.Z*sin, vertex.Y, -vertex.X*sin+vertex.Z*cos)
	}
	if rotation.Z != 0 {
		cos, sin := math.Cos(rotation.Z), math.Sin(rotation.Z)
		vertex = core.NewVec3(vertex.X*cos-vertex.Y*sin, vertex.X*sin+vertex.Y*cos, vertex.Z)
	}
	return vertex
}
