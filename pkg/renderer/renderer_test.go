package renderer

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// testScene is a sphere on a floor lit by a point light and an area light
type testScene struct {
	bvh    *geometry.BVH
	lights []lights.Light
}

func newTestScene() *testScene {
	floor := geometry.NewParallelogram(core.NewVec3(-5, -1, -8), core.NewVec3(0, 0, 10), core.NewVec3(10, 0, 0),
		material.NewDiffuse(core.NewVec3(0.8, 0.8, 0.8)))
	glass := material.Material{Kd: core.NewVec3(0.2, 0.4, 0.9), Ks: core.Splat(0.2), Shininess: 30, Transparency: 0.6}
	return &testScene{
		bvh: geometry.NewBVH([]geometry.Shape{
			floor,
			geometry.NewSphere(core.NewVec3(0, 0, -3), 1, glass),
			geometry.NewSphere(core.NewVec3(1.5, -0.5, -4), 0.5, material.NewMirror(core.Splat(0.1), core.Splat(0.8), 50)),
		}),
		lights: []lights.Light{
			lights.NewPointLight(core.NewVec3(2, 4, 0), core.Splat(0.8)),
			lights.NewParallelogramLight(core.NewVec3(-1, 4, -4), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 2),
				[4]core.Vec3{core.Splat(1), core.Splat(1), core.Splat(1), core.Splat(1)}),
		},
	}
}

func (s *testScene) Intersect(ray *core.Ray, hit *material.HitInfo) bool { return s.bvh.Intersect(ray, hit) }
func (s *testScene) Lights() []lights.Light                             { return s.lights }
func (s *testScene) SampleEnvironment(ray core.Ray) core.Vec3 {
	return integrator.NewSkyEnvironment().Sample(ray)
}

func testConfig(workers int) Config {
	return Config{Width: 24, Height: 16, SamplesPerPixel: 2, TileSize: 5, NumWorkers: workers, Seed: 7}
}

func newTestRenderer(t *testing.T, config Config, opts ...Option) *Renderer {
	t.Helper()
	camera := NewCamera(CameraConfig{
		Center: core.NewVec3(0, 1, 2),
		LookAt: core.NewVec3(0, 0, -3),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   50,
	}, float64(config.Width)/float64(config.Height))

	r, err := New(newTestScene(), camera, config, core.DefaultFeatures(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestRender_IndependentOfWorkerCount(t *testing.T) {
	single, _, err := newTestRenderer(t, testConfig(1)).Render(context.Background())
	if err != nil {
		t.Fatalf("Render with 1 worker: %v", err)
	}

	parallel, stats, err := newTestRenderer(t, testConfig(4)).Render(context.Background())
	if err != nil {
		t.Fatalf("Render with 4 workers: %v", err)
	}

	if !bytes.Equal(single.Pix, parallel.Pix) {
		t.Error("Expected identical images for 1 and 4 workers with the same seed")
	}

	if stats.Pixels != 24*16 {
		t.Errorf("Expected %d pixels, got %d", 24*16, stats.Pixels)
	}
	if stats.Rays != 24*16*2 {
		t.Errorf("Expected %d rays, got %d", 24*16*2, stats.Rays)
	}
	if stats.Tiles != len(NewTileGrid(24, 16, 5)) || stats.Skipped != 0 {
		t.Errorf("Unexpected tile counts: %+v", stats)
	}
	if stats.Workers != 4 {
		t.Errorf("Expected 4 workers, got %d", stats.Workers)
	}
}

func TestRender_SeedChangesNoise(t *testing.T) {
	first, _, _ := newTestRenderer(t, testConfig(2)).Render(context.Background())

	config := testConfig(2)
	config.Seed = 8
	second, _, _ := newTestRenderer(t, config).Render(context.Background())

	if bytes.Equal(first.Pix, second.Pix) {
		t.Error("Expected a different seed to change the sampled image")
	}
}

func TestRender_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img, stats, err := newTestRenderer(t, testConfig(2)).Render(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if img == nil {
		t.Fatal("Expected the partial image to be returned")
	}
	if stats.Tiles != 0 || stats.Skipped != len(NewTileGrid(24, 16, 5)) {
		t.Errorf("Expected every tile skipped, got %+v", stats)
	}
}

func TestRender_DebugRaysReachSink(t *testing.T) {
	recorder := core.NewRayRecorder(0)
	config := testConfig(3)
	config.Width, config.Height = 4, 4

	if _, _, err := newTestRenderer(t, config, WithRaySink(recorder)).Render(context.Background()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	counts := recorder.CountByColor()
	if counts[core.DebugColorHit]+counts[core.DebugColorMiss] < 4*4*2 {
		t.Errorf("Expected at least one debug ray per primary ray, got %v", counts)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	config := Config{Width: 0, Height: -1, SamplesPerPixel: 0, TileSize: 0, NumWorkers: -2}
	_, err := New(newTestScene(), NewCamera(DefaultCameraConfig(), 1), config, core.DefaultFeatures())
	if err == nil {
		t.Fatal("Expected error for invalid config")
	}
	for _, want := range []string{"image size", "samples per pixel", "tile size", "worker count"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected error to mention %q, got %v", want, err)
		}
	}
}

func TestNewTileGrid(t *testing.T) {
	tiles := NewTileGrid(10, 7, 4)
	if len(tiles) != 6 {
		t.Fatalf("Expected 3x2 tiles, got %d", len(tiles))
	}

	covered := make(map[image.Point]int)
	for i, tile := range tiles {
		if tile.ID != i {
			t.Errorf("Expected tile %d to have ID %d, got %d", i, i, tile.ID)
		}
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				covered[image.Pt(x, y)]++
			}
		}
	}

	if len(covered) != 70 {
		t.Errorf("Expected every pixel covered, got %d", len(covered))
	}
	for p, n := range covered {
		if n != 1 {
			t.Errorf("Pixel %v covered %d times", p, n)
		}
	}
}

func TestCamera_GetRay(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   90,
	}, 2.0)

	tests := []struct {
		name     string
		s, t     float64
		expected core.Vec3
	}{
		{"Center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"Top center", 0.5, 1, core.NewVec3(0, 1, -1)},
		{"Lower left", 0, 0, core.NewVec3(-2, -1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t)
			if !ray.Origin.IsZero() {
				t.Errorf("Expected origin at camera center, got %v", ray.Origin)
			}
			if !ray.Direction.ApproxEqual(tt.expected, 1e-9) {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
		})
	}
}

func TestVec3ToColor(t *testing.T) {
	tests := []struct {
		input    core.Vec3
		expected [3]uint8
	}{
		{core.NewVec3(0, 0, 0), [3]uint8{0, 0, 0}},
		{core.NewVec3(1, 1, 1), [3]uint8{255, 255, 255}},
		{core.NewVec3(0.25, 4, 0), [3]uint8{127, 255, 0}},
	}

	for _, tt := range tests {
		c := vec3ToColor(tt.input)
		if [3]uint8{c.R, c.G, c.B} != tt.expected || c.A != 255 {
			t.Errorf("vec3ToColor(%v) = %v, expected %v", tt.input, c, tt.expected)
		}
	}
}

func TestSavePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(1, 1, vec3ToColor(core.NewVec3(1, 0, 0)))

	path := filepath.Join(t.TempDir(), "out.png")
	if err := SavePNG(path, img); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer file.Close()

	decoded, err := png.Decode(file)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("Expected bounds %v, got %v", img.Bounds(), decoded.Bounds())
	}
	if r, _, _, _ := decoded.At(1, 1).RGBA(); r>>8 != 255 {
		t.Errorf("Expected red pixel, got %v", decoded.At(1, 1))
	}

	if err := SavePNG(filepath.Join(t.TempDir(), "missing", "out.png"), img); err == nil {
		t.Error("Expected error for a missing directory")
	}
}

func TestStats_Table(t *testing.T) {
	table := Stats{Width: 4, Height: 2, Pixels: 8, Rays: 16, Tiles: 1, Workers: 2}.Table()
	for _, want := range []string{"Metric", "Primary rays", "16", "4x2"} {
		if !strings.Contains(table, want) {
			t.Errorf("Expected table to contain %q:\n%s", want, table)
		}
	}
}
