package core

import "sync"

// RaySink receives rays for debug visualization. Implementations must never
// influence the radiance computed by the caller.
type RaySink interface {
	DrawRay(ray Ray, color Vec3)
}

// NopSink discards every ray
type NopSink struct{}

// DrawRay implements RaySink
func (NopSink) DrawRay(Ray, Vec3) {}

// Debug ray colors
var (
	DebugColorMiss       = NewVec3(1, 0, 0)
	DebugColorHit        = NewVec3(1, 1, 1)
	DebugColorUnoccluded = NewVec3(0, 1, 0)
	DebugColorOccluded   = NewVec3(0, 0, 1)
	DebugColorSecondary  = NewVec3(1, 1, 0)
)

// DebugRay is a ray captured by a RayRecorder
type DebugRay struct {
	Ray   Ray
	Color Vec3
}

// RayRecorder collects rays in memory and counts every ray by color.
// Safe for concurrent use.
type RayRecorder struct {
	mu      sync.Mutex
	rays    []DebugRay
	counts  map[Vec3]int
	dropped int
	limit   int
}

// NewRayRecorder creates a recorder keeping at most limit rays (0 = unlimited).
// Rays past the limit are still counted.
func NewRayRecorder(limit int) *RayRecorder {
	return &RayRecorder{limit: limit, counts: make(map[Vec3]int)}
}

// DrawRay implements RaySink
func (r *RayRecorder) DrawRay(ray Ray, color Vec3) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts[color]++
	if r.limit > 0 && len(r.rays) >= r.limit {
		r.dropped++
		return
	}
	r.rays = append(r.rays, DebugRay{Ray: ray, Color: color})
}

// Dropped returns how many rays were counted but not kept
func (r *RayRecorder) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Rays returns a copy of the recorded rays
func (r *RayRecorder) Rays() []DebugRay {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]DebugRay, len(r.rays))
	copy(out, r.rays)
	return out
}

// CountByColor returns the number of rays drawn per debug color, including dropped ones
func (r *RayRecorder) CountByColor() map[Vec3]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[Vec3]int, len(r.counts))
	for color, n := range r.counts {
		counts[color] = n
	}
	return counts
}

// RayCounter counts rays by debug color without keeping them. Safe for concurrent use.
type RayCounter struct {
	mu     sync.Mutex
	counts map[Vec3]int
}

// NewRayCounter creates an empty counter
func NewRayCounter() *RayCounter {
	return &RayCounter{counts: make(map[Vec3]int)}
}

// DrawRay implements RaySink
func (c *RayCounter) DrawRay(_ Ray, color Vec3) {
	c.mu.Lock()
	c.counts[color]++
	c.mu.Unlock()
}

// CountByColor returns the number of rays drawn per debug color
func (c *RayCounter) CountByColor() map[Vec3]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	counts := make(map[Vec3]int, len(c.counts))
	for color, n := range c.counts {
		counts[color] = n
	}
	return counts
}
