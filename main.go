package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "whitted"
	app.Usage = "render scenes with recursive Whitted-style ray tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "enable debug logging",
		},
		cli.StringFlag{
			Name:  "log-file",
			Usage: "also write logs to this file, rotated by size",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene to a PNG file",
			Description: `
Render a built-in scene or a YAML scene file. Settings are taken from the
defaults, then the --config file, then the flags given here.

Press Ctrl-C to stop early; the partially rendered image is still saved.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "config, c",
					Usage: "YAML config file",
				},
				cli.StringFlag{
					Name:  "scene, s",
					Usage: "built-in scene name or path to a .yaml scene file",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "image filename for the rendered frame",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "workers",
					Usage: "render goroutines (0 = one per CPU)",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "random seed for pixel jitter and light sampling",
				},
				cli.StringFlag{
					Name:  "shading-model",
					Usage: "lambertian, phong, blinn-phong or linear-gradient",
				},
				cli.IntFlag{
					Name:  "shadow-samples",
					Usage: "shadow rays per area light",
				},
				cli.IntFlag{
					Name:  "max-depth",
					Usage: "recursion limit for reflection and transparency rays",
				},
				cli.BoolFlag{
					Name:  "no-shadows",
					Usage: "treat every light as visible",
				},
				cli.BoolFlag{
					Name:  "no-reflections",
					Usage: "disable mirror reflection rays",
				},
				cli.BoolFlag{
					Name:  "no-transparency",
					Usage: "disable passthrough rays",
				},
				cli.BoolFlag{
					Name:  "no-textures",
					Usage: "ignore diffuse textures",
				},
				cli.BoolFlag{
					Name:  "glossy",
					Usage: "blur reflections by shininess",
				},
				cli.BoolFlag{
					Name:  "debug-rays",
					Usage: "record debug rays and print counts by kind",
				},
			},
			Action: renderAction,
		},
		{
			Name:  "serve",
			Usage: "serve renders of built-in scenes over HTTP",
			Description: `
GET /api/render?scene=cornell&width=400&height=300 responds with a PNG.
Query parameters override the --config settings for that request.
GET /api/scenes lists the built-in scenes.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "config, c",
					Usage: "YAML config file with render defaults",
				},
				cli.IntFlag{
					Name:  "port, p",
					Value: 8080,
					Usage: "port to serve on",
				},
			},
			Action: serveAction,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: scenesAction,
		},
		{
			Name:  "config",
			Usage: "print the effective configuration as YAML",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "config, c",
					Usage: "YAML config file to merge over the defaults",
				},
				cli.StringFlag{
					Name:  "save",
					Usage: "write the configuration to this path instead of printing it",
				},
			},
			Action: configAction,
		},
	}
	return app
}
