package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// MockShape for testing
type MockShape struct {
	boundingBox core.AABB
	hitFn       func(ray core.Ray, tMin, tMax float64, hit *material.HitInfo) (float64, bool)
	calls       *int
}

func (m MockShape) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitInfo) (float64, bool) {
	if m.calls != nil {
		*m.calls++
	}
	return m.hitFn(ray, tMin, tMax, hit)
}

func (m MockShape) BoundingBox() core.AABB {
	return m.boundingBox
}

func neverHit(core.Ray, float64, float64, *material.HitInfo) (float64, bool) {
	return 0, false
}

// hitAt reports a hit at tValue tagged with the given shininess
func hitAt(tValue, tag float64) func(core.Ray, float64, float64, *material.HitInfo) (float64, bool) {
	return func(ray core.Ray, tMin, tMax float64, hit *material.HitInfo) (float64, bool) {
		if tValue < tMin || tValue > tMax {
			return 0, false
		}
		hit.Material.Shininess = tag
		return tValue, true
	}
}

func unitBoxAt(x float64) core.AABB {
	return core.NewAABB(core.NewVec3(x, 0, 0), core.NewVec3(x+1, 1, 1))
}

func TestBVH_LeafThresholdBoundary(t *testing.T) {
	shapes := make([]Shape, leafThreshold)
	for i := range shapes {
		shapes[i] = MockShape{boundingBox: unitBoxAt(float64(i)), hitFn: neverHit}
	}

	stats := NewBVH(shapes).Stats()
	if stats.TotalNodes != 1 || stats.LeafNodes != 1 {
		t.Errorf("Expected a single leaf for %d shapes, got %+v", len(shapes), stats)
	}

	shapes = append(shapes, MockShape{boundingBox: unitBoxAt(float64(leafThreshold)), hitFn: neverHit})
	stats = NewBVH(shapes).Stats()
	if stats.TotalNodes == 1 || stats.LeafNodes < 2 {
		t.Errorf("Expected split for %d shapes, got %+v", len(shapes), stats)
	}
	if stats.TotalShapes != len(shapes) {
		t.Errorf("Expected %d shapes in leaves, got %d", len(shapes), stats.TotalShapes)
	}
}

func TestBVH_Empty(t *testing.T) {
	bvh := NewBVH(nil)
	if bvh.Root != nil {
		t.Error("Expected nil root for empty BVH")
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0))
	var hit material.HitInfo
	if bvh.Intersect(&ray, &hit) {
		t.Error("Expected no hit for empty BVH")
	}
	if !math.IsInf(ray.T, 1) {
		t.Errorf("Expected ray.T untouched, got %f", ray.T)
	}
}

func TestBVH_ClosestHitWins(t *testing.T) {
	shapes := []Shape{
		MockShape{boundingBox: unitBoxAt(0), hitFn: hitAt(2.0, 2)},
		MockShape{boundingBox: unitBoxAt(0.5), hitFn: hitAt(1.5, 1.5)},
		MockShape{boundingBox: unitBoxAt(1), hitFn: hitAt(3.0, 3)},
	}
	bvh := NewBVH(shapes)

	ray := core.NewRay(core.NewVec3(-1, 0.5, 0.5), core.NewVec3(1, 0, 0))
	var hit material.HitInfo
	if !bvh.Intersect(&ray, &hit) {
		t.Fatal("Expected hit")
	}
	if ray.T != 1.5 {
		t.Errorf("Expected ray.T=1.5, got %f", ray.T)
	}
	if hit.Material.Shininess != 1.5 {
		t.Errorf("Expected hit info from closest shape, got tag %f", hit.Material.Shininess)
	}
}

func TestBVH_BoundedByRayT(t *testing.T) {
	bvh := NewBVH([]Shape{MockShape{boundingBox: unitBoxAt(0), hitFn: hitAt(5.0, 1)}})

	ray := core.NewRay(core.NewVec3(-1, 0.5, 0.5), core.NewVec3(1, 0, 0))
	ray.T = 4.0

	var hit material.HitInfo
	if bvh.Intersect(&ray, &hit) {
		t.Error("Expected hit beyond ray.T to be ignored")
	}
	if ray.T != 4.0 {
		t.Errorf("Expected ray.T to stay 4.0, got %f", ray.T)
	}
}

func TestBVH_SkipsBoxesOffTheRay(t *testing.T) {
	var farCalls int
	shapes := make([]Shape, 0, 20)
	for i := 0; i < 10; i++ {
		shapes = append(shapes, MockShape{boundingBox: unitBoxAt(float64(i)), hitFn: neverHit})
	}
	for i := 0; i < 10; i++ {
		box := core.NewAABB(core.NewVec3(float64(i), 50, 0), core.NewVec3(float64(i)+1, 51, 1))
		shapes = append(shapes, MockShape{boundingBox: box, hitFn: neverHit, calls: &farCalls})
	}
	bvh := NewBVH(shapes)

	ray := core.NewRay(core.NewVec3(-1, 0.5, 0.5), core.NewVec3(1, 0, 0))
	var hit material.HitInfo
	bvh.Intersect(&ray, &hit)

	if farCalls != 0 {
		t.Errorf("Expected shapes outside the ray's path to be culled, got %d calls", farCalls)
	}
}

func TestBVH_RealShapes(t *testing.T) {
	var shapes []Shape
	for i := 0; i < 30; i++ {
		shapes = append(shapes, NewSphere(core.NewVec3(float64(i)*3, 0, -10), 1, grey()))
	}
	bvh := NewBVH(shapes)

	ray := core.NewRay(core.NewVec3(30, 0, 0), core.NewVec3(0, 0, -1))
	var hit material.HitInfo
	if !bvh.Intersect(&ray, &hit) {
		t.Fatal("Expected hit on sphere at x=30")
	}
	if math.Abs(ray.T-9) > tolerance {
		t.Errorf("Expected t=9, got %f", ray.T)
	}
	if !ray.HitPoint().ApproxEqual(core.NewVec3(30, 0, -9), tolerance) {
		t.Errorf("Unexpected hit point %v", ray.HitPoint())
	}
}
