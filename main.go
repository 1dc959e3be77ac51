package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-medium-tracer/pkg/log"
)

var logger = log.New("medium-tracer")

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-medium-tracer"
	app.Usage = "render triangle scenes through a participating medium"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "log-level",
			Value: "notice",
			Usage: "log level: debug, info, notice, warning or error",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a built-in scene to a PNG file",
			Description: `
Build the selected scene, construct the acceleration structure and trace every
pixel with the volumetric path tracer. Without --out the image is written to
output/<scene>/render_<timestamp>.png.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "cornell",
					Usage: "scene to render (see list-scenes)",
				},
				cli.IntFlag{
					Name:  "width",
					Value: 320,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 320,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 16,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "depth",
					Value: 6,
					Usage: "maximum bounces and medium events per camera ray",
				},
				cli.BoolTFlag{
					Name:  "jitter",
					Usage: "jitter samples within each pixel",
				},
				cli.Float64Flag{
					Name:  "density",
					Value: 0.05,
					Usage: "medium interactions per unit of the scene's medium scale; 0 disables the medium",
				},
				cli.Float64Flag{
					Name:  "scatter",
					Value: 0.2,
					Usage: "probability that a medium interaction scatters instead of absorbing",
				},
				cli.StringFlag{
					Name:  "strategy",
					Value: "worksteal",
					Usage: "pixel scheduler: sequential, banded or worksteal",
				},
				cli.StringFlag{
					Name:  "threads, t",
					Value: "all",
					Usage: `worker threads: "all", a count, or "left:N" to keep N cores free`,
				},
				cli.StringFlag{
					Name:  "accel",
					Value: "bvh",
					Usage: "acceleration structure: bvh or linear",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 42,
					Usage: "random seed",
				},
				cli.Float64Flag{
					Name:  "gamma",
					Value: 2.0,
					Usage: "gamma applied when encoding the PNG",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "image filename for the rendered frame",
				},
			},
			Action: renderScene,
		},
		{
			Name:   "list-scenes",
			Usage:  "list the built-in scenes",
			Action: listScenes,
		},
	}
	return app
}

func setupLogging(ctx *cli.Context) error {
	level, err := log.ParseLevel(ctx.GlobalString("log-level"))
	if err != nil {
		return err
	}
	log.SetLevel(level)

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}

	return nil
}
