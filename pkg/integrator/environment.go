package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Environment returns the radiance for rays that leave the scene
type Environment interface {
	Sample(ray core.Ray) core.Vec3
}

// SolidEnvironment is a constant background color
type SolidEnvironment struct {
	Color core.Vec3
}

func (e SolidEnvironment) Sample(core.Ray) core.Vec3 {
	return e.Color
}

// GradientEnvironment blends from Bottom to Top with the ray's vertical direction
type GradientEnvironment struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewSkyEnvironment returns the default white-to-blue sky
func NewSkyEnvironment() GradientEnvironment {
	return GradientEnvironment{
		Top:    core.NewVec3(0.5, 0.7, 1.0),
		Bottom: core.NewVec3(1.0, 1.0, 1.0),
	}
}

func (e GradientEnvironment) Sample(ray core.Ray) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	t := 0.5 * (unitDirection.Y + 1.0)
	return e.Bottom.Lerp(e.Top, t)
}

// TextureEnvironment looks up an equirectangular (latitude-longitude) image
type TextureEnvironment struct {
	Texture  *material.Texture
	Bilinear bool
}

func (e TextureEnvironment) Sample(ray core.Ray) core.Vec3 {
	d := ray.Direction.Normalize()
	if d.IsZero() {
		return core.Vec3{}
	}

	// u wraps around +Y starting behind the viewer (-Z looks at u=0.5), v=1 is straight up
	u := 0.5 + math.Atan2(d.X, -d.Z)/(2*math.Pi)
	v := 0.5 + math.Asin(math.Max(-1, math.Min(1, d.Y)))/math.Pi
	coord := core.NewVec2(u, v)

	if e.Bilinear {
		return e.Texture.SampleBilinear(coord)
	}
	return e.Texture.SampleNearest(coord)
}
