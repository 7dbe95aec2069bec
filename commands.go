package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/logger"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/web/server"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

func renderAction(ctx *cli.Context) error {
	cfg, err := config.LoadFile(ctx.String("config"))
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, ctx); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := runRender(runCtx, cfg, log, ctx.Bool("debug-rays"), ctx.App.Writer); err != nil {
		log.Error("render failed", zap.Error(err))
		return cli.NewExitError("", 1)
	}
	return nil
}

// applyFlags overrides cfg with every flag the user set explicitly
func applyFlags(cfg *config.Config, ctx *cli.Context) error {
	if ctx.GlobalBool("verbose") {
		cfg.Logging.Level = "debug"
	}
	if ctx.GlobalIsSet("log-file") {
		cfg.Logging.File = ctx.GlobalString("log-file")
	}

	if ctx.IsSet("scene") {
		cfg.Scene = ctx.String("scene")
	}
	if ctx.IsSet("out") {
		cfg.Output = ctx.String("out")
	}
	if ctx.IsSet("width") {
		cfg.Render.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		cfg.Render.Height = ctx.Int("height")
	}
	if ctx.IsSet("spp") {
		cfg.Render.SamplesPerPixel = ctx.Int("spp")
	}
	if ctx.IsSet("workers") {
		cfg.Render.NumWorkers = ctx.Int("workers")
	}
	if ctx.IsSet("seed") {
		cfg.Render.Seed = ctx.Int64("seed")
	}

	features := &cfg.Features
	if ctx.IsSet("shading-model") {
		model, err := core.ParseShadingModel(ctx.String("shading-model"))
		if err != nil {
			return err
		}
		features.ShadingModel = model
	}
	if ctx.IsSet("shadow-samples") {
		features.NumShadowSamples = ctx.Int("shadow-samples")
	}
	if ctx.IsSet("max-depth") {
		features.MaxRayDepth = ctx.Int("max-depth")
	}
	if ctx.Bool("no-shadows") {
		features.EnableShadows = false
	}
	if ctx.Bool("no-reflections") {
		features.EnableReflections = false
	}
	if ctx.Bool("no-transparency") {
		features.EnableTransparency = false
	}
	if ctx.Bool("no-textures") {
		features.EnableTextureMapping = false
	}
	if ctx.Bool("glossy") {
		features.EnableGlossyReflection = true
	}
	return nil
}

// runRender loads the scene, renders it and writes the PNG and a stats table to out.
// A cancelled render still saves the partial image before returning the error.
func runRender(ctx context.Context, cfg *config.Config, log *zap.Logger, debugRays bool, out io.Writer) error {
	sc, err := scene.Load(cfg.Scene)
	if err != nil {
		return err
	}
	if err := sc.Preprocess(); err != nil {
		return fmt.Errorf("preparing scene %s: %w", sc.Name, err)
	}

	bvh := sc.BVH.Stats()
	log.Info("scene loaded",
		zap.String("scene", sc.Name),
		zap.Int("shapes", len(sc.Shapes)),
		zap.Int("lights", len(sc.LightList)),
		zap.Int("bvh_nodes", bvh.TotalNodes),
		zap.Int("bvh_depth", bvh.MaxDepth),
	)

	aspectRatio := float64(cfg.Render.Width) / float64(cfg.Render.Height)
	camera := renderer.NewCamera(sc.Camera, aspectRatio)

	opts := []renderer.Option{renderer.WithLogger(log)}
	if sc.Gradient != nil {
		opts = append(opts, renderer.WithGradient(sc.Gradient))
	}
	var counter *core.RayCounter
	if debugRays {
		counter = core.NewRayCounter()
		opts = append(opts, renderer.WithRaySink(counter))
	}

	r, err := renderer.New(sc, camera, cfg.Render, cfg.Features, opts...)
	if err != nil {
		return err
	}

	img, stats, renderErr := r.Render(ctx)
	if renderErr != nil && !errors.Is(renderErr, context.Canceled) {
		return renderErr
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Output), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := renderer.SavePNG(cfg.Output, img); err != nil {
		return err
	}
	log.Info("image saved", zap.String("path", cfg.Output))

	fmt.Fprint(out, stats.Table())
	if counter != nil {
		fmt.Fprint(out, debugRayTable(counter.CountByColor()))
	}
	return renderErr
}

var debugRayKinds = []struct {
	name  string
	color core.Vec3
}{
	{"hit", core.DebugColorHit},
	{"miss", core.DebugColorMiss},
	{"reflection", core.DebugColorSecondary},
	{"shadow unoccluded", core.DebugColorUnoccluded},
	{"shadow occluded", core.DebugColorOccluded},
}

func debugRayTable(counts map[core.Vec3]int) string {
	total := 0

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Debug ray", "Count"})
	for _, kind := range debugRayKinds {
		table.Append([]string{kind.name, fmt.Sprint(counts[kind.color])})
		total += counts[kind.color]
	}
	table.SetFooter([]string{"Total", fmt.Sprint(total)})
	table.Render()
	return buf.String()
}

func serveAction(ctx *cli.Context) error {
	cfg, err := config.LoadFile(ctx.String("config"))
	if err != nil {
		return err
	}
	if err := applyFlags(cfg, ctx); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := server.NewServer(ctx.Int("port"), *cfg, log).Start(runCtx); err != nil {
		log.Error("web server failed", zap.Error(err))
		return cli.NewExitError("", 1)
	}
	return nil
}

func scenesAction(ctx *cli.Context) error {
	fmt.Fprint(ctx.App.Writer, scenesTable())
	return nil
}

func scenesTable() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Name", "Shapes", "Lights", "Description"})
	for _, b := range scene.Builtins() {
		sc, err := scene.Get(b.Name)
		if err != nil {
			continue
		}
		summary := sc.Summarize()
		table.Append([]string{
			b.Name,
			fmt.Sprint(summary.Shapes),
			fmt.Sprint(len(sc.LightList)),
			b.Description,
		})
	}
	table.Render()
	return buf.String()
}

func configAction(ctx *cli.Context) error {
	cfg, err := config.LoadFile(ctx.String("config"))
	if err != nil {
		return err
	}

	if path := ctx.String("save"); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			return fmt.Errorf("saving config to %s: %w", path, err)
		}
		return nil
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = ctx.App.Writer.Write(data)
	return err
}
