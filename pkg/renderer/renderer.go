package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/df07/go-medium-tracer/pkg/core"
	"github.com/df07/go-medium-tracer/pkg/geometry"
	"github.com/df07/go-medium-tracer/pkg/integrator"
	"github.com/df07/go-medium-tracer/pkg/scene"
)

// Accelerator names the nearest-hit structure built over the scene
type Accelerator string

const (
	AcceleratorBVH    Accelerator = "bvh"
	AcceleratorLinear Accelerator = "linear"
)

// ParseAccelerator converts an accelerator name into an Accelerator
func ParseAccelerator(name string) (Accelerator, error) {
	switch a := Accelerator(strings.ToLower(strings.TrimSpace(name))); a {
	case AcceleratorBVH, AcceleratorLinear:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAccelerator, name)
}

// Config contains everything needed to render one image
type Config struct {
	Width           int
	Height          int
	SamplesPerPixel int
	MaxDepth        int  // Bounces and medium events allowed per camera ray
	Jitter          bool // Spread samples over the pixel area instead of the center
	Medium          integrator.Medium
	Strategy        Strategy
	Threads         ThreadCount
	Seed            int64
	Accelerator     Accelerator
	BVH             geometry.BuildOptions
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           320,
		Height:          240,
		SamplesPerPixel: 16,
		MaxDepth:        6,
		Jitter:          true,
		Medium:          integrator.DefaultMedium(),
		Strategy:        StrategyWorkSteal,
		Threads:         AllThreads(),
		Seed:            42,
		Accelerator:     AcceleratorBVH,
		BVH:             geometry.DefaultBuildOptions(),
	}
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSamples, c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDepth, c.MaxDepth)
	}
	if c.Medium.ScatterProbability < 0 || c.Medium.ScatterProbability > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidMedium, c.Medium.ScatterProbability)
	}
	if err := c.Threads.Validate(); err != nil {
		return err
	}
	if _, err := ParseStrategy(string(c.Strategy)); err != nil {
		return err
	}
	if _, err := ParseAccelerator(string(c.Accelerator)); err != nil {
		return err
	}
	return nil
}

// Renderer wires a scene, a camera and an integrator to a scheduler
type Renderer struct {
	scene     *scene.Scene
	camera    *Camera
	config    Config
	accel     geometry.Intersector
	bvh       *geometry.BVH // nil unless the BVH accelerator is used
	buildTime time.Duration
	tracer    *PixelTracer
	scheduler Scheduler
	threads   int
	logger    core.Logger
}

// NewRenderer validates the configuration and builds the acceleration structure
func NewRenderer(s *scene.Scene, camera *Camera, config Config, logger core.Logger) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid render config: %w", err)
	}
	if camera == nil {
		return nil, fmt.Errorf("%w: nil camera", ErrInvalidCamera)
	}
	if cc := camera.Config(); cc.Width != config.Width || cc.Height != config.Height {
		return nil, fmt.Errorf("%w: camera %dx%d, render %dx%d",
			ErrCameraMismatch, cc.Width, cc.Height, config.Width, config.Height)
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	r := &Renderer{
		scene:   s,
		camera:  camera,
		config:  config,
		threads: config.Threads.Resolve(),
		logger:  logger,
	}

	start := time.Now()
	switch config.Accelerator {
	case AcceleratorLinear:
		r.accel = geometry.NewLinearScan(s)
	default:
		r.bvh = geometry.NewBVH(s, config.BVH)
		r.accel = r.bvh
	}
	r.buildTime = time.Since(start)

	scheduler, err := NewScheduler(config.Strategy, r.threads)
	if err != nil {
		return nil, err
	}
	r.scheduler = scheduler

	medium := config.Medium.Scaled(s.MediumScale)
	tracer := integrator.NewVolumetricPathTracer(s, r.accel, medium)
	r.tracer = NewPixelTracer(camera, tracer, config.SamplesPerPixel, config.MaxDepth, config.Jitter, config.Seed)

	logger.Printf("Scene: %d triangles, %d materials, accelerator %s built in %v\n",
		s.TriangleCount(), len(s.Materials), config.Accelerator, r.buildTime)
	if medium.Enabled() {
		logger.Printf("Medium: density %g per scene unit, scatter probability %g\n",
			medium.Density, medium.ScatterProbability)
	}
	return r, nil
}

// Render fills the whole image. On failure no buffer is returned.
func (r *Renderer) Render() (*OutputBuffer, RenderStats, error) {
	stats := RenderStats{
		Width:            r.config.Width,
		Height:           r.config.Height,
		Threads:          r.threads,
		Strategy:         r.config.Strategy,
		Accelerator:      r.config.Accelerator,
		BVHBuildDuration: r.buildTime,
	}
	if r.bvh != nil {
		stats.BVH = r.bvh.Stats()
	}

	r.logger.Printf("Rendering %dx%d at %d spp, depth %d, %d thread(s), %s scheduler\n",
		r.config.Width, r.config.Height, r.config.SamplesPerPixel, r.config.MaxDepth, r.threads, r.config.Strategy)

	start := time.Now()
	buf, err := r.scheduler.Fill(r.config.Width, r.config.Height, r.tracer.Trace)
	stats.Elapsed = time.Since(start)
	if err != nil {
		return nil, stats, err
	}

	stats.TotalSamples = r.config.Width * r.config.Height * r.config.SamplesPerPixel
	collectImageStats(buf, &stats)

	r.logger.Printf("Render complete in %v (%.0f samples/s), mean luminance %.4f\n",
		stats.Elapsed, stats.SamplesPerSecond(), stats.MeanLuminance)
	return buf, stats, nil
}
