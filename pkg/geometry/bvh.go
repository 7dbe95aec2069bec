package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// MinHitDistance is the smallest ray parameter accepted as a hit
const MinHitDistance = 1e-6

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Shapes      []Shape // Multiple shapes for leaf nodes (nil for internal nodes)
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// It is read-only after construction and safe for concurrent queries.
type BVH struct {
	Root *BVHNode
}

// NewBVH constructs a BVH from a slice of shapes
func NewBVH(shapes []Shape) *BVH {
	if len(shapes) == 0 {
		return &BVH{}
	}

	// Partitioning reorders shapes, keep the caller's slice intact
	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	return &BVH{Root: buildBVH(shapesCopy)}
}

// Leaf threshold: if we have this many or fewer shapes, store them in a leaf node
const leafThreshold = 8

// buildBVH recursively builds the BVH using median splitting along the longest axis
func buildBVH(shapes []Shape) *BVHNode {
	boundingBox := shapes[0].BoundingBox()
	for i := 1; i < len(shapes); i++ {
		boundingBox = boundingBox.Union(shapes[i].BoundingBox())
	}

	if len(shapes) <= leafThreshold {
		return &BVHNode{BoundingBox: boundingBox, Shapes: shapes}
	}

	axis := boundingBox.LongestAxis()
	minVal, maxVal := boundingBox.Min.Axis(axis), boundingBox.Max.Axis(axis)
	if maxVal <= minVal {
		return &BVHNode{BoundingBox: boundingBox, Shapes: shapes}
	}
	splitPos := (minVal + maxVal) * 0.5

	leftShapes, rightShapes := partitionShapes(shapes, axis, splitPos)

	// Ensure we don't create empty partitions
	if len(leftShapes) == 0 || len(rightShapes) == 0 {
		return &BVHNode{BoundingBox: boundingBox, Shapes: shapes}
	}

	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(leftShapes),
		Right:       buildBVH(rightShapes),
	}
}

// partitionShapes splits shapes by bounding box center against splitPos on axis
func partitionShapes(shapes []Shape, axis int, splitPos float64) ([]Shape, []Shape) {
	var leftShapes, rightShapes []Shape
	for _, shape := range shapes {
		if shape.BoundingBox().Center().Axis(axis) < splitPos {
			leftShapes = append(leftShapes, shape)
		} else {
			rightShapes = append(rightShapes, shape)
		}
	}
	return leftShapes, rightShapes
}

// Intersect finds the closest hit in (MinHitDistance, ray.T).
// On a hit it writes the distance to ray.T and fills hit.
func (bvh *BVH) Intersect(ray *core.Ray, hit *material.HitInfo) bool {
	if bvh.Root == nil {
		return false
	}

	closest, found := bvh.hitNode(bvh.Root, *ray, MinHitDistance, ray.T, hit)
	if found {
		ray.T = closest
	}
	return found
}

// hitNode recursively tests ray intersection with BVH nodes
func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray, tMin, tMax float64, hit *material.HitInfo) (float64, bool) {
	if !node.BoundingBox.Hit(ray, tMin, tMax) {
		return 0, false
	}

	hitAnything := false
	closestSoFar := tMax

	// Leaf node: linear search through its shapes
	if node.Shapes != nil {
		for _, shape := range node.Shapes {
			if t, ok := shape.Hit(ray, tMin, closestSoFar, hit); ok {
				hitAnything = true
				closestSoFar = t
			}
		}
		return closestSoFar, hitAnything
	}

	for _, child := range [2]*BVHNode{node.Left, node.Right} {
		if child == nil {
			continue
		}
		if t, ok := bvh.hitNode(child, ray, tMin, closestSoFar, hit); ok {
			hitAnything = true
			closestSoFar = t
		}
	}

	return closestSoFar, hitAnything
}

// BoundingBox returns the overall bounding box of the BVH
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh.Root == nil {
		return core.AABB{}
	}
	return bvh.Root.BoundingBox
}

// Stats summarizes the tree shape
type Stats struct {
	TotalNodes  int
	LeafNodes   int
	MaxDepth    int
	TotalShapes int
}

// Stats walks the tree and collects node counts
func (bvh *BVH) Stats() Stats {
	var stats Stats
	if bvh.Root != nil {
		collectStats(bvh.Root, 0, &stats)
	}
	return stats
}

func collectStats(node *BVHNode, depth int, stats *Stats) {
	stats.TotalNodes++
	stats.MaxDepth = max(stats.MaxDepth, depth)

	if node.Shapes != nil {
		stats.LeafNodes++
		stats.TotalShapes += len(node.Shapes)
		return
	}
	if node.Left != nil {
		collectStats(node.Left, depth+1, stats)
	}
	if node.Right != nil {
		collectStats(node.Right, depth+1, stats)
	}
}
