package material

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// GradientStop is one color of a LinearGradient placed at position T in [-1, 1]
type GradientStop struct {
	T     float64
	Color core.Vec3
}

// LinearGradient is a piecewise-linear color ramp
type LinearGradient struct {
	stops []GradientStop // sorted ascending by T, unique T
}

// ErrTooFewStops is returned when a gradient has fewer than two stops
var ErrTooFewStops = errors.New("linear gradient needs at least two stops")

// NewLinearGradient sorts a copy of stops and validates it
func NewLinearGradient(stops ...GradientStop) (*LinearGradient, error) {
	if len(stops) < 2 {
		return nil, ErrTooFewStops
	}

	sorted := make([]GradientStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].T < sorted[j].T })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].T == sorted[i-1].T {
			return nil, fmt.Errorf("linear gradient has two stops at t=%g", sorted[i].T)
		}
	}

	return &LinearGradient{stops: sorted}, nil
}

// MustLinearGradient is like NewLinearGradient but panics on invalid input
func MustLinearGradient(stops ...GradientStop) *LinearGradient {
	g, err := NewLinearGradient(stops...)
	if err != nil {
		panic(err)
	}
	return g
}

// DefaultGradient returns the five-stop ramp used by the linear-gradient shading model
func DefaultGradient() *LinearGradient {
	rgb := func(r, g, b float64) core.Vec3 { return core.NewVec3(r/256, g/256, b/256) }
	return MustLinearGradient(
		GradientStop{T: 0.1, Color: rgb(215, 210, 203)},
		GradientStop{T: 0.22, Color: rgb(250, 250, 240)},
		GradientStop{T: 0.5, Color: rgb(145, 170, 175)},
		GradientStop{T: 0.78, Color: rgb(255, 250, 205)},
		GradientStop{T: 0.9, Color: rgb(170, 170, 170)},
	)
}

// Stops returns a copy of the sorted stops
func (g *LinearGradient) Stops() []GradientStop {
	out := make([]GradientStop, len(g.stops))
	copy(out, g.stops)
	return out
}

// Sample returns the gradient color at ti, clamping outside the first/last stop.
// A gradient with fewer than two stops is a programming error and panics.
func (g *LinearGradient) Sample(ti float64) core.Vec3 {
	if g == nil || len(g.stops) < 2 {
		panic(ErrTooFewStops)
	}

	first, last := g.stops[0], g.stops[len(g.stops)-1]
	if ti <= first.T {
		return first.Color
	}
	if ti >= last.T {
		return last.Color
	}

	// First stop with T >= ti; ti is strictly inside (first.T, last.T) so i is in [1, len-1]
	i := sort.Search(len(g.stops), func(i int) bool { return g.stops[i].T >= ti })
	b := g.stops[i]
	if b.T == ti {
		return b.Color
	}
	a := g.stops[i-1]

	alpha := (ti - a.T) / (b.T - a.T)
	return a.Color.Lerp(b.Color, alpha)
}
