package renderer

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-medium-tracer/pkg/geometry"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width            int
	Height           int
	TotalPixels      int           // Total number of pixels rendered
	TotalSamples     int           // Total number of camera rays traced
	Elapsed          time.Duration // Wall time of the fill
	Threads          int           // Workers used by the scheduler
	Strategy         Strategy
	Accelerator      Accelerator
	MeanLuminance    float64
	StdDevLuminance  float64
	MaxLuminance     float64
	BlackPixels      int // Pixels that received no light at all
	BVH              geometry.BVHStats
	BVHBuildDuration time.Duration
}

// SamplesPerSecond returns the camera ray throughput of the render
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Elapsed.Seconds()
}

// collectImageStats fills the luminance fields of stats from buf
func collectImageStats(buf *OutputBuffer, stats *RenderStats) {
	pixels := buf.Pixels()
	luminance := make([]float64, len(pixels))
	for i, c := range pixels {
		luminance[i] = c.Luminance()
		if c.IsZero() {
			stats.BlackPixels++
		}
		stats.MaxLuminance = max(stats.MaxLuminance, luminance[i])
	}

	stats.TotalPixels = len(pixels)
	if len(luminance) < 2 {
		stats.MeanLuminance = stat.Mean(luminance, nil)
		return
	}
	stats.MeanLuminance, stats.StdDevLuminance = stat.MeanStdDev(luminance, nil)
}
