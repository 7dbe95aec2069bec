package core

import (
	"fmt"
	"strings"
)

// ShadingModel selects the reflectance function used for direct lighting
type ShadingModel int

const (
	ShadingLambertian ShadingModel = iota
	ShadingPhong
	ShadingBlinnPhong
	ShadingLinearGradient
)

var shadingModelNames = map[ShadingModel]string{
	ShadingLambertian:     "lambertian",
	ShadingPhong:          "phong",
	ShadingBlinnPhong:     "blinn-phong",
	ShadingLinearGradient: "linear-gradient",
}

// ShadingModels lists every model in declaration order
func ShadingModels() []ShadingModel {
	return []ShadingModel{ShadingLambertian, ShadingPhong, ShadingBlinnPhong, ShadingLinearGradient}
}

func (m ShadingModel) String() string {
	if name, ok := shadingModelNames[m]; ok {
		return name
	}
	return fmt.Sprintf("ShadingModel(%d)", int(m))
}

// ParseShadingModel converts a model name (case-insensitive) to a ShadingModel
func ParseShadingModel(name string) (ShadingModel, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for model, modelName := range shadingModelNames {
		if modelName == normalized {
			return model, nil
		}
	}
	return 0, fmt.Errorf("unknown shading model %q", name)
}

// MarshalText implements encoding.TextMarshaler
func (m ShadingModel) MarshalText() ([]byte, error) {
	if _, ok := shadingModelNames[m]; !ok {
		return nil, fmt.Errorf("unknown shading model %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *ShadingModel) UnmarshalText(text []byte) error {
	model, err := ParseShadingModel(string(text))
	if err != nil {
		return err
	}
	*m = model
	return nil
}

// DefaultMaxRayDepth bounds recursive reflection/transparency rays
const DefaultMaxRayDepth = 6

// Features selects which parts of the shading pipeline are active.
// It is an immutable value: copy it into every renderer instead of sharing a pointer.
type Features struct {
	EnableShading                  bool         `yaml:"shading"`
	ShadingModel                   ShadingModel `yaml:"shading_model"`
	EnableTextureMapping           bool         `yaml:"texture_mapping"`
	EnableBilinearTextureFiltering bool         `yaml:"bilinear_filtering"`
	EnableShadows                  bool         `yaml:"shadows"`
	EnableTransparency             bool         `yaml:"transparency"`
	EnableReflections              bool         `yaml:"reflections"`
	EnableGlossyReflection         bool         `yaml:"glossy_reflection"`
	NumShadowSamples               int          `yaml:"shadow_samples"`
	NumGlossySamples               int          `yaml:"glossy_samples"`
	MaxRayDepth                    int          `yaml:"max_ray_depth"`
}

// DefaultFeatures returns the configuration used by the CLI when nothing is overridden
func DefaultFeatures() Features {
	return Features{
		EnableShading:                  true,
		ShadingModel:                   ShadingBlinnPhong,
		EnableTextureMapping:           true,
		EnableBilinearTextureFiltering: true,
		EnableShadows:                  true,
		EnableTransparency:             true,
		EnableReflections:              true,
		EnableGlossyReflection:         false,
		NumShadowSamples:               16,
		NumGlossySamples:               8,
		MaxRayDepth:                    DefaultMaxRayDepth,
	}
}
