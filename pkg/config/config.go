// Package config holds the settings for a render run.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/logger"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Config is the full set of render settings.
type Config struct {
	Scene    string          `yaml:"scene"`  // Built-in scene name or path to a YAML scene file
	Output   string          `yaml:"output"` // PNG output path
	Render   renderer.Config `yaml:"render"`
	Features core.Features   `yaml:"features"`
	Logging  logger.Config   `yaml:"logging"`
}

// Default returns the settings used when no file or flags override them.
func Default() *Config {
	return &Config{
		Scene:    "default",
		Output:   "output/render.png",
		Render:   renderer.DefaultConfig(),
		Features: core.DefaultFeatures(),
		Logging:  logger.DefaultConfig(),
	}
}

// LoadFile loads configuration with priority: defaults < file.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	return cfg, nil
}

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	// Create parent directory if needed
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Marshal encodes the config as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var err error
	if c.Scene == "" {
		err = multierr.Append(err, fmt.Errorf("scene must be set"))
	}
	if c.Output == "" {
		err = multierr.Append(err, fmt.Errorf("output must be set"))
	}
	if e := c.Render.Validate(); e != nil {
		err = multierr.Append(err, fmt.Errorf("render: %w", e))
	}
	err = multierr.Append(err, validateFeatures(c.Features))
	if e := c.Logging.Validate(); e != nil {
		err = multierr.Append(err, fmt.Errorf("logging: %w", e))
	}
	return err
}

func validateFeatures(f core.Features) error {
	var err error
	if _, e := f.ShadingModel.MarshalText(); e != nil {
		err = multierr.Append(err, fmt.Errorf("features: %w", e))
	}
	if f.NumShadowSamples < 0 {
		err = multierr.Append(err, fmt.Errorf("features: shadow_samples %d is negative", f.NumShadowSamples))
	}
	if f.NumGlossySamples < 0 {
		err = multierr.Append(err, fmt.Errorf("features: glossy_samples %d is negative", f.NumGlossySamples))
	}
	if f.MaxRayDepth < 1 {
		err = multierr.Append(err, fmt.Errorf("features: max_ray_depth must be at least 1, got %d", f.MaxRayDepth))
	}
	return err
}
