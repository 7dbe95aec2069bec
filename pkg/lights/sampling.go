package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// SampleSegmentLight maps a uniform sample in [0,1) to a position on the
// segment and the color interpolated at that position
func SampleSegmentLight(sample float64, light *SegmentLight) (position, color core.Vec3) {
	position = light.Endpoint0.Lerp(light.Endpoint1, sample)
	color = light.Color0.Lerp(light.Color1, sample)
	return position, color
}

// SampleParallelogramLight maps a uniform sample in [0,1)² to a position on
// the parallelogram and the bilinear blend of the four corner colors
func SampleParallelogramLight(sample core.Vec2, light *ParallelogramLight) (position, color core.Vec3) {
	sx, sy := sample.X, sample.Y
	position = light.V0.Add(light.Edge01.Multiply(sx)).Add(light.Edge02.Multiply(sy))

	color = light.Color0.Multiply((1 - sx) * (1 - sy)).
		Add(light.Color1.Multiply(sx * (1 - sy))).
		Add(light.Color2.Multiply((1 - sx) * sy)).
		Add(light.Color3.Multiply(sx * sy))
	return position, color
}
