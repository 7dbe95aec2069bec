package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Texture is a 2D image sampled with UV coordinates
type Texture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], row 0 is the top of the image
}

// NewTexture creates a new image texture
func NewTexture(width, height int, pixels []core.Vec3) *Texture {
	return &Texture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// SampleNearest returns the texel containing coord.
// UVs wrap to [0,1); V=0 is the bottom of the image.
func (t *Texture) SampleNearest(coord core.Vec2) core.Vec3 {
	u, v := wrap(coord.X), wrap(coord.Y)

	x := int(u * float64(t.Width))
	y := int((1.0 - v) * float64(t.Height))

	return t.texel(x, y)
}

// SampleBilinear blends the four texels surrounding coord
func (t *Texture) SampleBilinear(coord core.Vec2) core.Vec3 {
	u, v := wrap(coord.X), wrap(coord.Y)

	// Continuous texel space, shifted so integer coordinates are texel centers
	fx := u*float64(t.Width) - 0.5
	fy := (1.0-v)*float64(t.Height) - 0.5

	x0, y0 := math.Floor(fx), math.Floor(fy)
	ax, ay := fx-x0, fy-y0
	ix, iy := int(x0), int(y0)

	top := t.texelWrapped(ix, iy).Lerp(t.texelWrapped(ix+1, iy), ax)
	bottom := t.texelWrapped(ix, iy+1).Lerp(t.texelWrapped(ix+1, iy+1), ax)
	return top.Lerp(bottom, ay)
}

// texel clamps to the image bounds
func (t *Texture) texel(x, y int) core.Vec3 {
	x = max(0, min(t.Width-1, x))
	y = max(0, min(t.Height-1, y))
	return t.Pixels[y*t.Width+x]
}

// texelWrapped repeats the image in both directions
func (t *Texture) texelWrapped(x, y int) core.Vec3 {
	x = ((x % t.Width) + t.Width) % t.Width
	y = ((y % t.Height) + t.Height) % t.Height
	return t.Pixels[y*t.Width+x]
}

func wrap(f float64) float64 {
	f -= math.Floor(f)
	if f >= 1 {
		f = 0
	}
	return f
}
