package scene

import (
	"errors"
	"fmt"
)

// ErrUnknownScene is returned by Get for names not in the registry
var ErrUnknownScene = errors.New("unknown scene")

// Builtin describes a scene compiled into the binary
type Builtin struct {
	Name        string
	Description string
	build       func() *Scene
}

var builtins = []Builtin{
	{Name: "default", Description: "Spheres on a checkered ground, point and segment lights", build: NewDefaultScene},
	{Name: "cornell", Description: "Cornell box with a parallelogram light, mirror and glass spheres", build: NewCornellScene},
	{Name: "cornell-boxes", Description: "Cornell box with rotated blocks and a round mirror", build: NewCornellBoxesScene},
	{Name: "mirror-box", Description: "Closed box of perfect mirrors, exercises the recursion limit", build: NewMirrorBoxScene},
	{Name: "gradient", Description: "Linear-gradient shading showcase", build: NewGradientScene},
}

// Builtins lists the built-in scenes in display order
func Builtins() []Builtin {
	out := make([]Builtin, len(builtins))
	copy(out, builtins)
	return out
}

// Names returns the built-in scene names
func Names() []string {
	names := make([]string, len(builtins))
	for i, b := range builtins {
		names[i] = b.Name
	}
	return names
}

// Get builds the named built-in scene. The result is not yet preprocessed.
func Get(name string) (*Scene, error) {
	for _, b := range builtins {
		if b.Name == name {
			return b.build(), nil
		}
	}
	return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownScene, name, Names())
}
