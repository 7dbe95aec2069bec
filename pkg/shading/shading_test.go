package shading

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

const tolerance = 1e-9

func featuresWith(model core.ShadingModel) core.Features {
	f := core.DefaultFeatures()
	f.ShadingModel = model
	return f
}

func upHit(mat material.Material) material.HitInfo {
	return material.HitInfo{Normal: core.NewVec3(0, 2, 0), Material: mat}
}

func TestLambertian(t *testing.T) {
	shader := NewShader(featuresWith(core.ShadingLambertian), nil)
	hit := upHit(material.NewDiffuse(core.NewVec3(0.5, 0.25, 1)))
	white := core.Splat(1)

	tests := []struct {
		name     string
		lightDir core.Vec3
		expected core.Vec3
	}{
		{"Overhead light", core.NewVec3(0, 3, 0), core.NewVec3(0.5, 0.25, 1)},
		{"Light at 60 degrees", core.NewVec3(math.Sqrt(3), 1, 0), core.NewVec3(0.25, 0.125, 0.5)},
		{"Grazing light", core.NewVec3(1, 0, 0), core.Vec3{}},
		{"Light below surface", core.NewVec3(0, -1, 0), core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shader.Shade(core.NewVec3(0, 1, 0), tt.lightDir, white, hit)
			if !got.ApproxEqual(tt.expected, tolerance) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPhong(t *testing.T) {
	shader := NewShader(featuresWith(core.ShadingPhong), nil)
	mat := material.NewMirror(core.Splat(1), core.Splat(0.5), 10)
	hit := upHit(mat)

	// Light at 60 degrees: N·L = 0.5, diffuse is weighted by N·L twice
	lightDir := core.NewVec3(math.Sqrt(3), 1, 0)

	// View along the mirror direction: R·V = 1, no shininess exponent
	mirrorView := core.NewVec3(-math.Sqrt(3), 1, 0)
	got := shader.Shade(mirrorView, lightDir, core.Splat(1), hit)
	expected := core.Splat(0.25 + 0.5)
	if !got.ApproxEqual(expected, tolerance) {
		t.Errorf("Mirror view: expected %v, got %v", expected, got)
	}

	// View straight up: R·V = 0.5
	got = shader.Shade(core.NewVec3(0, 1, 0), lightDir, core.Splat(1), hit)
	expected = core.Splat(0.25 + 0.25)
	if !got.ApproxEqual(expected, tolerance) {
		t.Errorf("Overhead view: expected %v, got %v", expected, got)
	}
}

func TestBlinnPhong(t *testing.T) {
	shader := NewShader(featuresWith(core.ShadingBlinnPhong), nil)
	mat := material.NewMirror(core.Splat(0.5), core.Splat(1), 4)
	hit := upHit(mat)

	t.Run("Half vector aligned with normal", func(t *testing.T) {
		got := shader.Shade(core.NewVec3(-1, 1, 0), core.NewVec3(1, 1, 0), core.Splat(1), hit)
		expected := core.Splat(0.5 / math.Sqrt2).Add(core.Splat(1))
		if !got.ApproxEqual(expected, tolerance) {
			t.Errorf("Expected %v, got %v", expected, got)
		}
	})

	t.Run("Shininess sharpens the lobe", func(t *testing.T) {
		// H = normalize((0,1,0) + (1,0,0)) gives N·H = 1/sqrt2
		got := shader.Shade(core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.Splat(1), hit)
		expected := core.Splat(0.5 + math.Pow(1/math.Sqrt2, 4))
		if !got.ApproxEqual(expected, tolerance) {
			t.Errorf("Expected %v, got %v", expected, got)
		}
	})

	t.Run("Half vector below surface", func(t *testing.T) {
		zeroShininess := upHit(material.NewMirror(core.Vec3{}, core.Splat(1), 0))
		got := shader.Shade(core.NewVec3(0, -1, 0), core.NewVec3(0, -1, 0.1), core.Splat(1), zeroShininess)
		if !got.IsZero() {
			t.Errorf("Expected no specular when N·H <= 0, got %v", got)
		}
	})
}

func TestLinearGradientModel(t *testing.T) {
	gradient := material.MustLinearGradient(
		material.GradientStop{T: -1, Color: core.NewVec3(0, 0, 0)},
		material.GradientStop{T: 1, Color: core.NewVec3(1, 1, 1)},
	)
	shader := NewShader(featuresWith(core.ShadingLinearGradient), gradient)
	hit := upHit(material.NewDiffuse(core.NewVec3(1, 0, 0)))
	lightColor := core.NewVec3(1, 0.5, 0.25)

	tests := []struct {
		name     string
		lightDir core.Vec3
		expected core.Vec3
	}{
		{"Aligned", core.NewVec3(0, 1, 0), lightColor},
		{"Perpendicular", core.NewVec3(1, 0, 0), lightColor.Multiply(0.5)},
		{"Opposite", core.NewVec3(0, -1, 0), core.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shader.Shade(core.NewVec3(0, 1, 0), tt.lightDir, lightColor, hit)
			if !got.ApproxEqual(tt.expected, tolerance) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestShadingDisabled(t *testing.T) {
	f := core.DefaultFeatures()
	f.EnableShading = false
	shader := NewShader(f, nil)
	hit := upHit(material.NewDiffuse(core.NewVec3(0.2, 0.4, 0.8)))

	// Independent of geometry, even for a light behind the surface
	got := shader.Shade(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0), core.NewVec3(1, 0.5, 1), hit)
	expected := core.NewVec3(0.2, 0.2, 0.8)
	if !got.ApproxEqual(expected, tolerance) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestDiffuseSample(t *testing.T) {
	texture := material.NewTexture(1, 1, []core.Vec3{core.NewVec3(0, 1, 0)})
	mat := material.NewDiffuse(core.NewVec3(1, 0, 0))
	mat.KdTexture = texture
	hit := material.HitInfo{Normal: core.NewVec3(0, 1, 0), TexCoord: core.NewVec2(0.5, 0.5), Material: mat}

	tests := []struct {
		name     string
		mapping  bool
		bilinear bool
		expected core.Vec3
	}{
		{"Texture mapping off uses kd", false, false, mat.Kd},
		{"Nearest lookup", true, false, core.NewVec3(0, 1, 0)},
		{"Bilinear lookup", true, true, core.NewVec3(0, 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := core.DefaultFeatures()
			f.EnableTextureMapping = tt.mapping
			f.EnableBilinearTextureFiltering = tt.bilinear
			got := NewShader(f, nil).DiffuseSample(hit)
			if !got.ApproxEqual(tt.expected, tolerance) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}

	noTexture := hit
	noTexture.Material.KdTexture = nil
	if got := NewShader(core.DefaultFeatures(), nil).DiffuseSample(noTexture); got != mat.Kd {
		t.Errorf("Material without texture: expected kd %v, got %v", mat.Kd, got)
	}
}
