package renderer

import (
	"context"
	"fmt"
	"image"
	"math"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Config controls image size, sampling and parallelism
type Config struct {
	Width           int   `yaml:"width"`
	Height          int   `yaml:"height"`
	SamplesPerPixel int   `yaml:"samples_per_pixel"`
	TileSize        int   `yaml:"tile_size"`
	NumWorkers      int   `yaml:"workers"` // 0 = one per CPU
	Seed            int64 `yaml:"seed"`
}

// DefaultConfig returns a small preview render configuration
func DefaultConfig() Config {
	return Config{
		Width:           400,
		Height:          300,
		SamplesPerPixel: 4,
		TileSize:        32,
		NumWorkers:      0,
		Seed:            42,
	}
}

// Validate reports every invalid field
func (c Config) Validate() error {
	var err error
	if c.Width <= 0 || c.Height <= 0 {
		err = multierr.Append(err, fmt.Errorf("image size %dx%d must be positive", c.Width, c.Height))
	}
	if c.SamplesPerPixel <= 0 {
		err = multierr.Append(err, fmt.Errorf("samples per pixel %d must be positive", c.SamplesPerPixel))
	}
	if c.TileSize <= 0 {
		err = multierr.Append(err, fmt.Errorf("tile size %d must be positive", c.TileSize))
	}
	if c.NumWorkers < 0 {
		err = multierr.Append(err, fmt.Errorf("worker count %d is negative", c.NumWorkers))
	}
	return err
}

// Renderer drives a Whitted integrator over every pixel of an image
type Renderer struct {
	scene    integrator.Scene
	camera   *Camera
	config   Config
	features core.Features
	gradient *material.LinearGradient
	sink     core.RaySink
	logger   *zap.Logger
}

// Option customizes a Renderer
type Option func(*Renderer)

// WithLogger sets the logger; the default discards everything
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) { r.logger = logger }
}

// WithRaySink sends debug rays from every worker to sink, which must be safe for concurrent use
func WithRaySink(sink core.RaySink) Option {
	return func(r *Renderer) { r.sink = sink }
}

// WithGradient sets the gradient for the linear-gradient shading model
func WithGradient(gradient *material.LinearGradient) Option {
	return func(r *Renderer) { r.gradient = gradient }
}

// New creates a renderer. The scene must already be preprocessed.
func New(scene integrator.Scene, camera *Camera, config Config, features core.Features, opts ...Option) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render config: %w", err)
	}

	r := &Renderer{
		scene:    scene,
		camera:   camera,
		config:   config,
		features: features,
		sink:     core.NopSink{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Render traces the whole image. On cancellation it stops starting new tiles,
// returns the partially rendered image and ctx.Err().
func (r *Renderer) Render(ctx context.Context) (*image.RGBA, Stats, error) {
	start := time.Now()
	width, height := r.config.Width, r.config.Height
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	tiles := NewTileGrid(width, height, r.config.TileSize)
	pool := NewWorkerPool(r.config.NumWorkers, len(tiles))

	r.logger.Info("render started",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("spp", r.config.SamplesPerPixel),
		zap.Int("tiles", len(tiles)),
		zap.Int("workers", pool.GetNumWorkers()),
		zap.Stringer("shading", r.features.ShadingModel),
	)

	pool.Start(ctx, func(workerID int, tile *Tile) TileResult {
		return r.renderTile(img, workerID, tile)
	})
	for _, tile := range tiles {
		pool.SubmitTask(tile)
	}
	pool.Stop()

	stats := Stats{Width: width, Height: height, Workers: pool.GetNumWorkers()}
	for result := range pool.Results() {
		if result.Skipped {
			stats.Skipped++
			continue
		}
		stats.Tiles++
		stats.Rays += result.Rays
		stats.Pixels += result.Rays / r.config.SamplesPerPixel
	}
	stats.Duration = time.Since(start)

	if err := ctx.Err(); err != nil {
		r.logger.Warn("render cancelled", zap.Int("tiles_skipped", stats.Skipped), zap.Error(err))
		return img, stats, err
	}

	r.logger.Info("render finished",
		zap.Duration("duration", stats.Duration),
		zap.Int("rays", stats.Rays),
	)
	return img, stats, nil
}

// renderTile writes the pixels inside tile.Bounds. Tiles never overlap, so
// concurrent workers write disjoint parts of img.
func (r *Renderer) renderTile(img *image.RGBA, workerID int, tile *Tile) TileResult {
	sampler := tile.Sampler(r.config.Seed)
	whitted := integrator.NewWhitted(r.scene, r.features, sampler,
		integrator.WithRaySink(r.sink),
		integrator.WithGradient(r.gradient),
	)

	spp := r.config.SamplesPerPixel
	rays := make([]core.Ray, spp)
	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			r.pixelRays(rays, x, y, sampler)
			img.SetRGBA(x, y, vec3ToColor(whitted.RenderRays(rays, 0)))
		}
	}

	r.logger.Debug("tile rendered",
		zap.Int("tile", tile.ID),
		zap.Int("worker", workerID),
	)
	return TileResult{TileID: tile.ID, WorkerID: workerID, Rays: tile.Bounds.Dx() * tile.Bounds.Dy() * spp}
}

// pixelRays fills rays with camera rays jittered inside a grid of strata
// covering pixel (x, y). Image row 0 is the top of the picture.
func (r *Renderer) pixelRays(rays []core.Ray, x, y int, sampler core.Sampler) {
	width, height := float64(r.config.Width), float64(r.config.Height)
	gridX := int(math.Ceil(math.Sqrt(float64(len(rays)))))
	gridY := (len(rays) + gridX - 1) / gridX

	for k := range rays {
		jitter := sampler.Next2D()
		u := (float64(k%gridX) + jitter.X) / float64(gridX)
		v := (float64(k/gridX) + jitter.Y) / float64(gridY)

		s := (float64(x) + u) / width
		t := (height - 1 - float64(y) + v) / height
		rays[k] = r.camera.GetRay(s, t)
	}
}
