package shading

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Shader evaluates the configured reflectance model for a single light direction
type Shader struct {
	features core.Features
	gradient *material.LinearGradient
}

// NewShader creates a shader. A nil gradient selects material.DefaultGradient.
func NewShader(features core.Features, gradient *material.LinearGradient) Shader {
	if gradient == nil {
		gradient = material.DefaultGradient()
	}
	return Shader{features: features, gradient: gradient}
}

// Shade returns the light reflected towards viewDir.
// viewDir points from the surface towards the viewer, lightDir from the surface towards the light.
// Neither needs to be normalized.
func (s Shader) Shade(viewDir, lightDir, lightColor core.Vec3, hit material.HitInfo) core.Vec3 {
	if s.features.EnableShading {
		switch s.features.ShadingModel {
		case core.ShadingLambertian:
			return s.Lambertian(lightDir, lightColor, hit)
		case core.ShadingPhong:
			return s.Phong(viewDir, lightDir, lightColor, hit)
		case core.ShadingBlinnPhong:
			return s.BlinnPhong(viewDir, lightDir, lightColor, hit)
		case core.ShadingLinearGradient:
			return s.LinearGradient(lightDir, lightColor, hit)
		}
	}
	return lightColor.MultiplyVec(s.DiffuseSample(hit))
}

// DiffuseSample returns the diffuse color at the hit, reading the material
// texture when texture mapping is enabled
func (s Shader) DiffuseSample(hit material.HitInfo) core.Vec3 {
	texture := hit.Material.KdTexture
	if !s.features.EnableTextureMapping || texture == nil {
		return hit.Material.Kd
	}
	if s.features.EnableBilinearTextureFiltering {
		return texture.SampleBilinear(hit.TexCoord)
	}
	return texture.SampleNearest(hit.TexCoord)
}

// Lambertian is the pure diffuse term kd * lightColor * max(0, N·L)
func (s Shader) Lambertian(lightDir, lightColor core.Vec3, hit material.HitInfo) core.Vec3 {
	n := hit.Normal.Normalize()
	l := lightDir.Normalize()

	cosTheta := math.Max(0, n.Dot(l))
	return s.DiffuseSample(hit).MultiplyVec(lightColor).Multiply(cosTheta)
}

// Phong adds a mirror-lobe specular term to the diffuse term.
// The diffuse term is weighted by N·L twice and the specular lobe has no
// shininess exponent; rendered scenes depend on this exact falloff.
func (s Shader) Phong(viewDir, lightDir, lightColor core.Vec3, hit material.HitInfo) core.Vec3 {
	n := hit.Normal.Normalize()
	l := lightDir.Normalize()
	v := viewDir.Normalize()
	r := l.Negate().Reflect(n)

	nDotL := math.Max(0, n.Dot(l))
	kd := s.DiffuseSample(hit).Multiply(nDotL)
	diffuse := kd.MultiplyVec(lightColor).Multiply(nDotL)

	rDotV := math.Max(0, r.Dot(v))
	specular := hit.Material.Ks.MultiplyVec(lightColor).Multiply(rDotV)

	return diffuse.Add(specular)
}

// BlinnPhong uses the half vector between light and view for the specular lobe
func (s Shader) BlinnPhong(viewDir, lightDir, lightColor core.Vec3, hit material.HitInfo) core.Vec3 {
	n := hit.Normal.Normalize()
	l := lightDir.Normalize()
	v := viewDir.Normalize()
	h := l.Add(v).Normalize()

	nDotL := math.Max(0, n.Dot(l))
	diffuse := s.DiffuseSample(hit).MultiplyVec(lightColor).Multiply(nDotL)

	nDotH := math.Max(0, n.Dot(h))
	specularWeight := math.Pow(nDotH, hit.Material.Shininess)
	if nDotH == 0 {
		// pow(0, 0) is 1; a lobe facing away contributes nothing
		specularWeight = 0
	}
	specular := hit.Material.Ks.MultiplyVec(lightColor).Multiply(specularWeight)

	return diffuse.Add(specular)
}

// LinearGradient replaces the diffuse color with the gradient sampled at cos(θ)
// between the light direction and the normal
func (s Shader) LinearGradient(lightDir, lightColor core.Vec3, hit material.HitInfo) core.Vec3 {
	cosTheta := lightDir.Normalize().Dot(hit.Normal.Normalize())
	cosTheta = math.Max(-1, math.Min(1, cosTheta))

	return s.gradient.Sample(cosTheta).MultiplyVec(lightColor)
}
