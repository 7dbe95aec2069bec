package core

import (
	"math"
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns.
// Implementations are not safe for concurrent use; give every worker its own.
type Sampler interface {
	Next1D() float64
	Next2D() Vec2
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a reproducible sampler for the given seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Next1D returns a random float64 in [0, 1)
func (r *RandomSampler) Next1D() float64 {
	return r.random.Float64()
}

// Next2D returns two random float64 values in [0, 1)
func (r *RandomSampler) Next2D() Vec2 {
	return NewVec2(r.random.Float64(), r.random.Float64())
}

// SampleCone samples a direction around axis inside a cone.
// alpha controls the spread: 0 returns axis itself, larger values widen the lobe.
func SampleCone(axis Vec3, alpha float64, sample Vec2) Vec3 {
	// Build coordinate system around the axis
	var up Vec3
	if math.Abs(axis.Y) < 0.9 {
		up = NewVec3(0, 1, 0)
	} else {
		up = NewVec3(1, 0, 0)
	}
	tangent := axis.Cross(up).Normalize()
	bitangent := axis.Cross(tangent).Normalize()

	theta := 2 * math.Pi * sample.X
	u := math.Min(sample.Y, 1-1e-9)
	phi := math.Atan(alpha * math.Sqrt(u) / math.Sqrt(1.0-u))

	x := math.Cos(theta) * math.Sin(phi)
	y := math.Sin(theta) * math.Sin(phi)
	z := math.Cos(phi)

	return tangent.Multiply(x).Add(bitangent.Multiply(y)).Add(axis.Multiply(z)).Normalize()
}
