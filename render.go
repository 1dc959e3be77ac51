package main

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-medium-tracer/pkg/integrator"
	"github.com/df07/go-medium-tracer/pkg/log"
	"github.com/df07/go-medium-tracer/pkg/renderer"
	"github.com/df07/go-medium-tracer/pkg/scene"
)

// configFromContext maps render flags onto a renderer configuration
func configFromContext(ctx *cli.Context) (renderer.Config, error) {
	config := renderer.DefaultConfig()
	config.Width = ctx.Int("width")
	config.Height = ctx.Int("height")
	config.SamplesPerPixel = ctx.Int("spp")
	config.MaxDepth = ctx.Int("depth")
	config.Jitter = ctx.BoolT("jitter")
	config.Medium = integrator.Medium{
		Density:            ctx.Float64("density"),
		ScatterProbability: ctx.Float64("scatter"),
	}
	config.Seed = ctx.Int64("seed")

	strategy, err := renderer.ParseStrategy(ctx.String("strategy"))
	if err != nil {
		return config, err
	}
	config.Strategy = strategy

	threads, err := renderer.ParseThreadCount(ctx.String("threads"))
	if err != nil {
		return config, err
	}
	config.Threads = threads

	accel, err := renderer.ParseAccelerator(ctx.String("accel"))
	if err != nil {
		return config, err
	}
	config.Accelerator = accel

	return config, config.Validate()
}

// Render a built-in scene to a PNG file.
func renderScene(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	config, err := configFromContext(ctx)
	if err != nil {
		return err
	}

	sceneName := ctx.String("scene")
	sc, err := scene.Load(sceneName)
	if err != nil {
		return err
	}

	camera, err := renderer.NewCamera(renderer.CameraConfigFromView(sc.View, config.Width, config.Height))
	if err != nil {
		return err
	}

	r, err := renderer.NewRenderer(sc, camera, config, log.Printer{Logger: logger})
	if err != nil {
		return err
	}

	buf, stats, err := r.Render()
	if err != nil {
		return err
	}

	out := ctx.String("out")
	if out == "" {
		out, err = defaultOutputPath(sceneName, time.Now())
		if err != nil {
			return err
		}
	}
	if err := writePNG(out, buf, ctx.Float64("gamma")); err != nil {
		return err
	}

	logger.Noticef("frame statistics\n%s", formatStats(sceneName, stats))
	logger.Noticef("render saved as %s", out)
	return nil
}

// List the built-in scenes.
func listScenes(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Triangles", "Materials", "Lights"})
	for _, name := range scene.Names() {
		sc, err := scene.Load(name)
		if err != nil {
			return err
		}
		table.Append([]string{
			name,
			fmt.Sprintf("%d", sc.TriangleCount()),
			fmt.Sprintf("%d", len(sc.Materials)),
			fmt.Sprintf("%d", len(sc.EmissiveTriangles())),
		})
	}
	table.Render()

	fmt.Print(buf.String())
	return nil
}

// defaultOutputPath creates output/<scene> and returns a timestamped file name inside it
func defaultOutputPath(sceneName string, now time.Time) (string, error) {
	outputDir := filepath.Join("output", sanitizeName(sceneName))
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	return filepath.Join(outputDir, fmt.Sprintf("render_%s.png", now.Format("20060102_150405"))), nil
}

// sanitizeName keeps scene names usable as directory names
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if name == "" {
		return "scene"
	}
	return name
}

func writePNG(path string, buf *renderer.OutputBuffer, gamma float64) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	if err := png.Encode(file, buf.ToRGBA(gamma)); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return file.Close()
}

// formatStats renders the statistics table for a finished frame
func formatStats(sceneName string, stats renderer.RenderStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Metric", "Value"})
	table.Append([]string{"Scene", sceneName})
	table.Append([]string{"Resolution", fmt.Sprintf("%dx%d", stats.Width, stats.Height)})
	table.Append([]string{"Scheduler", fmt.Sprintf("%s (%d threads)", stats.Strategy, stats.Threads)})
	table.Append([]string{"Accelerator", string(stats.Accelerator)})
	if stats.Accelerator == renderer.AcceleratorBVH {
		table.Append([]string{"BVH nodes / leaves", fmt.Sprintf("%d / %d", stats.BVH.TotalNodes, stats.BVH.LeafNodes)})
		table.Append([]string{"BVH max depth", fmt.Sprintf("%d", stats.BVH.MaxDepth)})
		table.Append([]string{"BVH triangle refs", fmt.Sprintf("%d", stats.BVH.TriangleRefs)})
	}
	table.Append([]string{"Samples", fmt.Sprintf("%d", stats.TotalSamples)})
	table.Append([]string{"Samples / s", fmt.Sprintf("%.0f", stats.SamplesPerSecond())})
	table.Append([]string{"Mean luminance", fmt.Sprintf("%.4f ± %.4f", stats.MeanLuminance, stats.StdDevLuminance)})
	table.Append([]string{"Black pixels", fmt.Sprintf("%d", stats.BlackPixels)})
	table.SetFooter([]string{"Render time", stats.Elapsed.String()})

	table.Render()
	return buf.String()
}
