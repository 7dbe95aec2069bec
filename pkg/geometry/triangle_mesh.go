package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// ErrInvalidMesh is returned for face lists that do not describe triangles over the given vertices
var ErrInvalidMesh = errors.New("invalid triangle mesh")

// TriangleMesh represents a collection of triangles with efficient ray intersection.
// It uses an internal BVH for fast intersection tests.
type TriangleMesh struct {
	triangles []Shape
	bvh       *BVH
}

// TriangleMeshOptions contains optional per-vertex attributes and a transform
type TriangleMeshOptions struct {
	Normals   []core.Vec3 // Optional per-vertex shading normals
	TexCoords []core.Vec2 // Optional per-vertex texture coordinates
	Rotation  *core.Vec3  // Optional rotation to apply to vertices
	Center    *core.Vec3  // Optional center point for rotation
}

// NewTriangleMesh creates a mesh from vertices and face indices, each group of 3 indices forming a triangle
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat material.Material, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces) == 0 || len(faces)%3 != 0 {
		return nil, fmt.Errorf("%w: %d face indices is not a positive multiple of 3", ErrInvalidMesh, len(faces))
	}
	if options == nil {
		options = &TriangleMeshOptions{}
	}
	if options.Normals != nil && len(options.Normals) != len(vertices) {
		return nil, fmt.Errorf("%w: %d normals for %d vertices", ErrInvalidMesh, len(options.Normals), len(vertices))
	}
	if options.TexCoords != nil && len(options.TexCoords) != len(vertices) {
		return nil, fmt.Errorf("%w: %d texcoords for %d vertices", ErrInvalidMesh, len(options.TexCoords), len(vertices))
	}

	meshVertices := make([]Vertex, len(vertices))
	for i, position := range vertices {
		normal := core.Vec3{}
		if options.Normals != nil {
			normal = options.Normals[i]
		}
		if options.Rotation != nil {
			// Translate to center, rotate, then translate back
			if options.Center != nil {
				position = position.Subtract(*options.Center)
			}
			position = rotateVertex(position, *options.Rotation)
			if options.Center != nil {
				position = position.Add(*options.Center)
			}
			normal = rotateVertex(normal, *options.Rotation)
		}
		meshVertices[i] = Vertex{Position: position, Normal: normal}
		if options.TexCoords != nil {
			meshVertices[i].TexCoord = options.TexCoords[i]
		}
	}

	triangles := make([]Shape, len(faces)/3)
	for i := range triangles {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		for _, idx := range [3]int{i0, i1, i2} {
			if idx < 0 || idx >= len(meshVertices) {
				return nil, fmt.Errorf("%w: face %d index %d out of range [0,%d)", ErrInvalidMesh, i, idx, len(meshVertices))
			}
		}
		triangles[i] = NewTriangleFromVertices(meshVertices[i0], meshVertices[i1], meshVertices[i2], mat)
	}

	return &TriangleMesh{triangles: triangles, bvh: NewBVH(triangles)}, nil
}

// Hit tests if a ray intersects with any triangle in the mesh
func (tm *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitInfo) (float64, bool) {
	return tm.bvh.hitNode(tm.bvh.Root, ray, tMin, tMax, hit)
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bvh.BoundingBox()
}

// TriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) TriangleCount() int {
	return len(tm.triangles)
}
