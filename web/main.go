package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-medium-tracer/pkg/log"
	"github.com/df07/go-medium-tracer/web/server"
)

var logger = log.New("web")

func main() {
	app := cli.NewApp()
	app.Name = "go-medium-tracer-web"
	app.Usage = "serve renders over HTTP"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "port, p",
			Value: 8080,
			Usage: "port to serve on",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
	}
	app.Action = func(ctx *cli.Context) error {
		if ctx.Bool("v") {
			log.SetLevel(log.Info)
		}

		// Create and start web server
		webServer := server.NewServer(ctx.Int("port"))
		logger.Noticef("Visit http://localhost:%d/api/render?scene=cornell to start rendering", ctx.Int("port"))
		return webServer.Start()
	}

	if err := app.Run(os.Args); err != nil {
		logger.Errorf("Error starting server: %v", err)
		os.Exit(1)
	}
}
