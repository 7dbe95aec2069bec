package material

import (
	"errors"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func testGradient(t *testing.T) *LinearGradient {
	t.Helper()
	g, err := NewLinearGradient(
		GradientStop{T: 0.5, Color: core.NewVec3(0, 0, 1)},
		GradientStop{T: -0.5, Color: core.NewVec3(1, 0, 0)},
		GradientStop{T: 0, Color: core.NewVec3(0, 1, 0)},
	)
	if err != nil {
		t.Fatalf("NewLinearGradient: %v", err)
	}
	return g
}

func TestLinearGradient_ClampsOutsideRange(t *testing.T) {
	g := testGradient(t)
	red := core.NewVec3(1, 0, 0)
	blue := core.NewVec3(0, 0, 1)

	for _, ti := range []float64{-1, -0.75, -0.5} {
		if got := g.Sample(ti); got != red {
			t.Errorf("Sample(%g) = %v, expected first stop %v", ti, got, red)
		}
	}
	for _, ti := range []float64{0.5, 0.75, 1} {
		if got := g.Sample(ti); got != blue {
			t.Errorf("Sample(%g) = %v, expected last stop %v", ti, got, blue)
		}
	}
}

func TestLinearGradient_ExactStopReturnsStopColor(t *testing.T) {
	g := testGradient(t)
	if got := g.Sample(0); got != core.NewVec3(0, 1, 0) {
		t.Errorf("Sample(0) = %v, expected interior stop color", got)
	}

	d := DefaultGradient()
	for _, stop := range d.Stops() {
		if got := d.Sample(stop.T); got != stop.Color {
			t.Errorf("Sample(%g) = %v, expected %v", stop.T, got, stop.Color)
		}
	}
}

func TestLinearGradient_Interpolates(t *testing.T) {
	g := testGradient(t)

	tests := []struct {
		ti       float64
		expected core.Vec3
	}{
		{-0.25, core.NewVec3(0.5, 0.5, 0)},
		{0.25, core.NewVec3(0, 0.5, 0.5)},
		{0.4, core.NewVec3(0, 0.2, 0.8)},
	}

	for _, tt := range tests {
		if got := g.Sample(tt.ti); !got.ApproxEqual(tt.expected, 1e-12) {
			t.Errorf("Sample(%g) = %v, expected %v", tt.ti, got, tt.expected)
		}
	}
}

func TestLinearGradient_Validation(t *testing.T) {
	if _, err := NewLinearGradient(GradientStop{T: 0}); !errors.Is(err, ErrTooFewStops) {
		t.Errorf("Expected ErrTooFewStops, got %v", err)
	}
	if _, err := NewLinearGradient(GradientStop{T: 0.2}, GradientStop{T: 0.2}); err == nil {
		t.Error("Expected error for duplicate stop positions")
	}
}

func TestLinearGradient_SampleWithoutStopsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic when sampling an empty gradient")
		}
	}()
	var g LinearGradient
	g.Sample(0)
}
