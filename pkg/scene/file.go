package scene

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownReference marks a shape, material or environment that names something undefined
	ErrUnknownReference = errors.New("unknown reference")
	// ErrInvalidEntry marks a malformed shape, light or material
	ErrInvalidEntry = errors.New("invalid entry")
)

type vec3 [3]float64

func (v vec3) toVec3() core.Vec3 { return core.NewVec3(v[0], v[1], v[2]) }

type fileCamera struct {
	Center vec3    `yaml:"center"`
	LookAt vec3    `yaml:"look_at"`
	Up     vec3    `yaml:"up"`
	VFov   float64 `yaml:"vfov"`
}

type fileEnvironment struct {
	Type     string `yaml:"type"` // solid, gradient, sky or texture
	Color    vec3   `yaml:"color"`
	Top      vec3   `yaml:"top"`
	Bottom   vec3   `yaml:"bottom"`
	Texture  string `yaml:"texture"`
	Bilinear bool   `yaml:"bilinear"`
}

type fileMaterial struct {
	Kd           vec3     `yaml:"kd"`
	KdTexture    string   `yaml:"kd_texture"`
	Ks           vec3     `yaml:"ks"`
	Shininess    float64  `yaml:"shininess"`
	Transparency *float64 `yaml:"transparency"` // Omitted means opaque
}

type fileShape struct {
	Type      string       `yaml:"type"` // sphere, triangle, parallelogram, disc, box or mesh
	Material  string       `yaml:"material"`
	Center    vec3         `yaml:"center"`
	Radius    float64      `yaml:"radius"`
	Normal    vec3         `yaml:"normal"`
	Size      vec3         `yaml:"size"`     // Box half-extents
	Rotation  vec3         `yaml:"rotation"` // Degrees around X, Y, Z
	Vertices  []vec3       `yaml:"vertices"`
	Normals   []vec3       `yaml:"normals"`
	TexCoords [][2]float64 `yaml:"texcoords"`
	Faces     []int        `yaml:"faces"`
	Corner    vec3         `yaml:"corner"`
	U         vec3         `yaml:"u"`
	V         vec3         `yaml:"v"`
}

type fileLight struct {
	Type      string `yaml:"type"` // point, segment or parallelogram
	Position  vec3   `yaml:"position"`
	Color     *vec3  `yaml:"color"` // Shorthand for a uniformly colored light
	Endpoints []vec3 `yaml:"endpoints"`
	Colors    []vec3 `yaml:"colors"`
	V0        vec3   `yaml:"v0"`
	Edge01    vec3   `yaml:"edge01"`
	Edge02    vec3   `yaml:"edge02"`
}

// fileTexture is either an image path or a procedural texture mapping
type fileTexture struct {
	Path    string
	Type    string `yaml:"type"` // checker or uv-debug
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Check   int    `yaml:"check"` // Checker square size in texels
	Colors  []vec3 `yaml:"colors"`
	isImage bool
}

// UnmarshalYAML accepts a plain scalar as an image path
func (t *fileTexture) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		t.isImage = true
		return node.Decode(&t.Path)
	}
	type plain fileTexture
	return node.Decode((*plain)(t))
}

type fileGradientStop struct {
	T     float64 `yaml:"t"`
	Color vec3    `yaml:"color"`
}

type sceneFile struct {
	Name        string                  `yaml:"name"`
	Camera      *fileCamera             `yaml:"camera"`
	Environment *fileEnvironment        `yaml:"environment"`
	Textures    map[string]fileTexture  `yaml:"textures"`
	Materials   map[string]fileMaterial `yaml:"materials"`
	Shapes      []fileShape             `yaml:"shapes"`
	Lights      []fileLight             `yaml:"lights"`
	Gradient    []fileGradientStop      `yaml:"gradient"`
}

// IsSceneFile reports whether name refers to a YAML scene file rather than a built-in
func IsSceneFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// Load returns a YAML scene file when name has a YAML extension, otherwise the named built-in
func Load(name string) (*Scene, error) {
	if IsSceneFile(name) {
		return LoadFile(name)
	}
	return Get(name)
}

// LoadFile reads a YAML scene description. Texture paths are relative to the file.
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading scene %s: %w", path, err)
	}

	s, err := Parse(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("loading scene %s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse builds a scene from YAML. Every problem found is reported, not just the first.
func Parse(data []byte, baseDir string) (*Scene, error) {
	var file sceneFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing yaml: %w", err)
	}

	s := &Scene{Name: file.Name, Camera: renderer.DefaultCameraConfig()}
	if file.Camera != nil {
		s.Camera = renderer.CameraConfig{
			Center: file.Camera.Center.toVec3(),
			LookAt: file.Camera.LookAt.toVec3(),
			Up:     file.Camera.Up.toVec3(),
			VFov:   file.Camera.VFov,
		}
	}

	var errs error

	textures := make(map[string]*material.Texture, len(file.Textures))
	for _, name := range sortedKeys(file.Textures) {
		texture, err := buildTexture(file.Textures[name], baseDir)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("texture %q: %w", name, err))
			continue
		}
		textures[name] = texture
	}

	materials := make(map[string]material.Material, len(file.Materials))
	for _, name := range sortedKeys(file.Materials) {
		mat, err := buildMaterial(file.Materials[name], textures)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("material %q: %w", name, err))
			continue
		}
		materials[name] = mat
	}

	for i, fs := range file.Shapes {
		shape, err := buildShape(fs, materials)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("shape %d (%s): %w", i, fs.Type, err))
			continue
		}
		s.AddShapes(shape)
	}

	for i, fl := range file.Lights {
		light, err := buildLight(fl)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("light %d (%s): %w", i, fl.Type, err))
			continue
		}
		s.AddLights(light)
	}

	if file.Environment != nil {
		env, err := buildEnvironment(*file.Environment, textures)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("environment: %w", err))
		}
		s.Environment = env
	}

	if len(file.Gradient) > 0 {
		stops := make([]material.GradientStop, len(file.Gradient))
		for i, stop := range file.Gradient {
			stops[i] = material.GradientStop{T: stop.T, Color: stop.Color.toVec3()}
		}
		gradient, err := material.NewLinearGradient(stops...)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("gradient: %w", err))
		}
		s.Gradient = gradient
	}

	if errs != nil {
		return nil, errs
	}
	return s, nil
}

func buildTexture(ft fileTexture, baseDir string) (*material.Texture, error) {
	if ft.isImage {
		path := ft.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		return loaders.LoadTexture(path)
	}

	width, height := ft.Width, ft.Height
	if width == 0 && height == 0 {
		width, height = 256, 256
	}
	if width < 2 || height < 2 {
		return nil, fmt.Errorf("%w: texture size %dx%d too small", ErrInvalidEntry, width, height)
	}

	switch ft.Type {
	case "checker":
		if len(ft.Colors) != 2 {
			return nil, fmt.Errorf("%w: checker needs 2 colors, got %d", ErrInvalidEntry, len(ft.Colors))
		}
		check := ft.Check
		if check <= 0 {
			check = width / 8
		}
		return material.NewCheckerboardTexture(width, height, check, ft.Colors[0].toVec3(), ft.Colors[1].toVec3()), nil
	case "uv-debug":
		return material.NewUVDebugTexture(width, height), nil
	default:
		return nil, fmt.Errorf("%w: unknown texture type %q", ErrInvalidEntry, ft.Type)
	}
}

func buildMaterial(fm fileMaterial, textures map[string]*material.Texture) (material.Material, error) {
	mat := material.Material{
		Kd:           fm.Kd.toVec3(),
		Ks:           fm.Ks.toVec3(),
		Shininess:    fm.Shininess,
		Transparency: 1.0,
	}
	if fm.Transparency != nil {
		mat.Transparency = *fm.Transparency
	}

	var errs error
	if fm.KdTexture != "" {
		texture, ok := textures[fm.KdTexture]
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf("texture %q: %w", fm.KdTexture, ErrUnknownReference))
		}
		mat.KdTexture = texture
	}
	if err := mat.Validate(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%w: %w", ErrInvalidEntry, err))
	}
	return mat, errs
}

func buildShape(fs fileShape, materials map[string]material.Material) (geometry.Shape, error) {
	mat, ok := materials[fs.Material]
	if !ok {
		return nil, fmt.Errorf("material %q: %w", fs.Material, ErrUnknownReference)
	}

	switch fs.Type {
	case "sphere":
		if fs.Radius <= 0 {
			return nil, fmt.Errorf("%w: radius %g must be positive", ErrInvalidEntry, fs.Radius)
		}
		return geometry.NewSphere(fs.Center.toVec3(), fs.Radius, mat), nil

	case "triangle":
		if len(fs.Vertices) != 3 {
			return nil, fmt.Errorf("%w: need 3 vertices, got %d", ErrInvalidEntry, len(fs.Vertices))
		}
		if len(fs.Normals) != 0 && len(fs.Normals) != 3 {
			return nil, fmt.Errorf("%w: need 0 or 3 normals, got %d", ErrInvalidEntry, len(fs.Normals))
		}
		if len(fs.TexCoords) != 0 && len(fs.TexCoords) != 3 {
			return nil, fmt.Errorf("%w: need 0 or 3 texcoords, got %d", ErrInvalidEntry, len(fs.TexCoords))
		}
		var vertices [3]geometry.Vertex
		for i := range vertices {
			vertices[i].Position = fs.Vertices[i].toVec3()
			if len(fs.Normals) == 3 {
				vertices[i].Normal = fs.Normals[i].toVec3()
			}
			if len(fs.TexCoords) == 3 {
				vertices[i].TexCoord = core.NewVec2(fs.TexCoords[i][0], fs.TexCoords[i][1])
			}
		}
		return geometry.NewTriangleFromVertices(vertices[0], vertices[1], vertices[2], mat), nil

	case "parallelogram":
		u, v := fs.U.toVec3(), fs.V.toVec3()
		if u.Cross(v).IsZero() {
			return nil, fmt.Errorf("%w: edges u and v are parallel", ErrInvalidEntry)
		}
		return geometry.NewParallelogram(fs.Corner.toVec3(), u, v, mat), nil

	case "disc":
		if fs.Radius <= 0 {
			return nil, fmt.Errorf("%w: radius %g must be positive", ErrInvalidEntry, fs.Radius)
		}
		if fs.Normal.toVec3().IsZero() {
			return nil, fmt.Errorf("%w: disc needs a normal", ErrInvalidEntry)
		}
		return geometry.NewDisc(fs.Center.toVec3(), fs.Normal.toVec3(), fs.Radius, mat), nil

	case "box":
		size := fs.Size.toVec3()
		if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
			return nil, fmt.Errorf("%w: box size %v must be positive", ErrInvalidEntry, size)
		}
		return geometry.NewBox(fs.Center.toVec3(), size, degreesToRadians(fs.Rotation), mat), nil

	case "mesh":
		vertices := make([]core.Vec3, len(fs.Vertices))
		for i, v := range fs.Vertices {
			vertices[i] = v.toVec3()
		}
		options := &geometry.TriangleMeshOptions{}
		if len(fs.Normals) > 0 {
			options.Normals = make([]core.Vec3, len(fs.Normals))
			for i, n := range fs.Normals {
				options.Normals[i] = n.toVec3()
			}
		}
		if len(fs.TexCoords) > 0 {
			options.TexCoords = make([]core.Vec2, len(fs.TexCoords))
			for i, uv := range fs.TexCoords {
				options.TexCoords[i] = core.NewVec2(uv[0], uv[1])
			}
		}
		if fs.Rotation != (vec3{}) {
			rotation := degreesToRadians(fs.Rotation)
			center := fs.Center.toVec3()
			options.Rotation = &rotation
			options.Center = &center
		}
		mesh, err := geometry.NewTriangleMesh(vertices, fs.Faces, mat, options)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidEntry, err)
		}
		return mesh, nil

	default:
		return nil, fmt.Errorf("%w: unknown shape type %q", ErrInvalidEntry, fs.Type)
	}
}

func buildLight(fl fileLight) (lights.Light, error) {
	switch fl.Type {
	case "point":
		if fl.Color == nil {
			return nil, fmt.Errorf("%w: point light needs a color", ErrInvalidEntry)
		}
		return lights.NewPointLight(fl.Position.toVec3(), fl.Color.toVec3()), nil

	case "segment":
		if len(fl.Endpoints) != 2 {
			return nil, fmt.Errorf("%w: need 2 endpoints, got %d", ErrInvalidEntry, len(fl.Endpoints))
		}
		colors, err := lightColors(fl, 2)
		if err != nil {
			return nil, err
		}
		return lights.NewSegmentLight(fl.Endpoints[0].toVec3(), fl.Endpoints[1].toVec3(), colors[0], colors[1]), nil

	case "parallelogram":
		colors, err := lightColors(fl, 4)
		if err != nil {
			return nil, err
		}
		return lights.NewParallelogramLight(fl.V0.toVec3(), fl.Edge01.toVec3(), fl.Edge02.toVec3(),
			[4]core.Vec3{colors[0], colors[1], colors[2], colors[3]}), nil

	default:
		return nil, fmt.Errorf("%w: unknown light type %q", ErrInvalidEntry, fl.Type)
	}
}

// lightColors expands either a single color or exactly n per-vertex colors
func lightColors(fl fileLight, n int) ([]core.Vec3, error) {
	if fl.Color != nil && len(fl.Colors) > 0 {
		return nil, fmt.Errorf("%w: set color or colors, not both", ErrInvalidEntry)
	}
	colors := make([]core.Vec3, n)
	switch {
	case fl.Color != nil:
		for i := range colors {
			colors[i] = fl.Color.toVec3()
		}
	case len(fl.Colors) == n:
		for i := range colors {
			colors[i] = fl.Colors[i].toVec3()
		}
	default:
		return nil, fmt.Errorf("%w: need 1 color or %d colors, got %d", ErrInvalidEntry, n, len(fl.Colors))
	}
	return colors, nil
}

func buildEnvironment(fe fileEnvironment, textures map[string]*material.Texture) (integrator.Environment, error) {
	switch fe.Type {
	case "solid":
		return integrator.SolidEnvironment{Color: fe.Color.toVec3()}, nil
	case "gradient":
		return integrator.GradientEnvironment{Top: fe.Top.toVec3(), Bottom: fe.Bottom.toVec3()}, nil
	case "sky":
		return integrator.NewSkyEnvironment(), nil
	case "texture":
		texture, ok := textures[fe.Texture]
		if !ok {
			return nil, fmt.Errorf("texture %q: %w", fe.Texture, ErrUnknownReference)
		}
		return integrator.TextureEnvironment{Texture: texture, Bilinear: fe.Bilinear}, nil
	default:
		return nil, fmt.Errorf("%w: unknown environment type %q", ErrInvalidEntry, fe.Type)
	}
}

func degreesToRadians(v vec3) core.Vec3 {
	return v.toVec3().Multiply(math.Pi / 180)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
