package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// LightType names a light variant
type LightType string

const (
	LightTypePoint         LightType = "point"
	LightTypeSegment       LightType = "segment"
	LightTypeParallelogram LightType = "parallelogram"
)

// Light is a closed set of light variants: *PointLight, *SegmentLight and
// *ParallelogramLight. The unexported marker keeps other packages from adding
// variants, so a type switch over the three is exhaustive.
type Light interface {
	Type() LightType
	isLight()
}

// PointLight emits a single color from a single position
type PointLight struct {
	Position core.Vec3
	Color    core.Vec3
}

// NewPointLight creates a point light
func NewPointLight(position, color core.Vec3) *PointLight {
	return &PointLight{Position: position, Color: color}
}

func (*PointLight) Type() LightType { return LightTypePoint }
func (*PointLight) isLight()        {}

// SegmentLight is a line light whose color varies linearly between its endpoints
type SegmentLight struct {
	Endpoint0, Endpoint1 core.Vec3
	Color0, Color1       core.Vec3
}

// NewSegmentLight creates a segment light
func NewSegmentLight(endpoint0, endpoint1, color0, color1 core.Vec3) *SegmentLight {
	return &SegmentLight{Endpoint0: endpoint0, Endpoint1: endpoint1, Color0: color0, Color1: color1}
}

func (*SegmentLight) Type() LightType { return LightTypeSegment }
func (*SegmentLight) isLight()        {}

// ParallelogramLight is an area light spanned by two edges from V0.
// Color0..Color3 sit at V0, V0+Edge01, V0+Edge02 and V0+Edge01+Edge02.
type ParallelogramLight struct {
	V0             core.Vec3
	Edge01, Edge02 core.Vec3
	Color0, Color1 core.Vec3
	Color2, Color3 core.Vec3
}

// NewParallelogramLight creates a parallelogram light with one color per corner
func NewParallelogramLight(v0, edge01, edge02 core.Vec3, colors [4]core.Vec3) *ParallelogramLight {
	return &ParallelogramLight{
		V0:     v0,
		Edge01: edge01,
		Edge02: edge02,
		Color0: colors[0],
		Color1: colors[1],
		Color2: colors[2],
		Color3: colors[3],
	}
}

func (*ParallelogramLight) Type() LightType { return LightTypeParallelogram }
func (*ParallelogramLight) isLight()        {}
