package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/shading"
)

// ShadowEpsilon offsets secondary ray origins off the surface they leave
const ShadowEpsilon = 1e-3

// Scene is everything the Whitted integrator reads from the world.
// Implementations must be safe for concurrent read-only use.
type Scene interface {
	// Intersect finds the closest hit with parameter below ray.T and writes it back to ray.T
	Intersect(ray *core.Ray, hit *material.HitInfo) bool
	// Lights returns the scene lights in storage order
	Lights() []lights.Light
	// SampleEnvironment returns the radiance for a ray that escapes the scene
	SampleEnvironment(ray core.Ray) core.Vec3
}

// Whitted is a recursive Whitted-style integrator. It is not safe for
// concurrent use: create one per worker, each with its own sampler.
type Whitted struct {
	features core.Features
	scene    Scene
	sampler  core.Sampler
	sink     core.RaySink
	shader   shading.Shader
}

// Option customizes a Whitted integrator
type Option func(*options)

type options struct {
	sink     core.RaySink
	gradient *material.LinearGradient
}

// WithRaySink routes debug rays to sink instead of discarding them
func WithRaySink(sink core.RaySink) Option {
	return func(o *options) { o.sink = sink }
}

// WithGradient sets the gradient used by the linear-gradient shading model
func WithGradient(gradient *material.LinearGradient) Option {
	return func(o *options) { o.gradient = gradient }
}

// NewWhitted creates an integrator over scene. The features value is copied.
func NewWhitted(scene Scene, features core.Features, sampler core.Sampler, opts ...Option) *Whitted {
	o := options{sink: core.NopSink{}}
	for _, opt := range opts {
		opt(&o)
	}

	return &Whitted{
		features: features,
		scene:    scene,
		sampler:  sampler,
		sink:     o.sink,
		shader:   shading.NewShader(features, o.gradient),
	}
}

// Features returns the configuration this integrator renders with
func (w *Whitted) Features() core.Features {
	return w.features
}
