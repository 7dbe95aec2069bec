package material

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"go.uber.org/multierr"
)

// Material describes how a surface reflects and transmits light
type Material struct {
	Kd           core.Vec3 // Diffuse color
	KdTexture    *Texture  // Optional diffuse texture, used when texture mapping is enabled
	Ks           core.Vec3 // Specular color, also the mirror reflectance
	Shininess    float64   // Specular exponent
	Transparency float64   // 1.0 = fully opaque, 0.0 = fully transparent
}

// NewDiffuse creates an opaque, non-specular material
func NewDiffuse(kd core.Vec3) Material {
	return Material{Kd: kd, Transparency: 1.0}
}

// NewMirror creates an opaque material that reflects with the given specular color
func NewMirror(kd, ks core.Vec3, shininess float64) Material {
	return Material{Kd: kd, Ks: ks, Shininess: shininess, Transparency: 1.0}
}

// IsReflective reports whether any specular channel is non-zero
func (m Material) IsReflective() bool {
	return !m.Ks.IsZero()
}

// IsTransparent reports whether light passes through the surface
func (m Material) IsTransparent() bool {
	return m.Transparency != 1.0
}

// Validate reports every out-of-range field. Values are not clamped.
func (m Material) Validate() error {
	var err error
	if m.Transparency < 0 || m.Transparency > 1 {
		err = multierr.Append(err, fmt.Errorf("transparency %g outside [0,1]", m.Transparency))
	}
	if m.Shininess < 0 {
		err = multierr.Append(err, fmt.Errorf("shininess %g is negative", m.Shininess))
	}
	return err
}

// HitInfo describes the surface at a ray intersection.
// The hit point itself is ray.HitPoint() of the ray passed to the intersector.
type HitInfo struct {
	Normal   core.Vec3 // Not guaranteed to be normalized
	TexCoord core.Vec2
	Material Material
}
