package renderer

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/df07/go-medium-tracer/pkg/core"
	"github.com/df07/go-medium-tracer/pkg/integrator"
)

// PixelTracer turns an integrator into a PixelFunc by averaging several camera
// samples per pixel. Each pixel draws from its own generator seeded from the
// pixel position, so results do not depend on scheduling.
type PixelTracer struct {
	camera     *Camera
	integrator integrator.Integrator
	samples    int
	depth      int
	jitter     bool
	seed       int64
}

// NewPixelTracer creates a tracer taking samples rays per pixel, each allowed
// depth bounces. Without jitter every sample goes through the pixel center.
func NewPixelTracer(camera *Camera, integ integrator.Integrator, samples, depth int, jitter bool, seed int64) *PixelTracer {
	return &PixelTracer{
		camera:     camera,
		integrator: integ,
		samples:    max(1, samples),
		depth:      depth,
		jitter:     jitter,
		seed:       seed,
	}
}

// Trace computes the average radiance seen through pixel (x, y)
func (pt *PixelTracer) Trace(x, y int) (core.Vec3, error) {
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(pixelSeed(pt.seed, x, y))))

	var sum core.Vec3
	for i := 0; i < pt.samples; i++ {
		offset := core.NewVec2(0.5, 0.5)
		if pt.jitter {
			offset = sampler.Get2D()
		}
		ray := pt.camera.GenerateRay(float64(x)+offset.X, float64(y)+offset.Y)
		sum = sum.Add(pt.integrator.Radiance(ray, pt.depth, sampler))
	}

	c := sum.Divide(float64(pt.samples))
	if !isFinite(c) {
		return core.Vec3{}, fmt.Errorf("%w: %v", ErrNonFinite, c)
	}
	return c, nil
}

// pixelSeed mixes the render seed with the pixel position (splitmix64 finalizer)
func pixelSeed(seed int64, x, y int) int64 {
	h := uint64(seed) ^ (uint64(uint32(x)) << 32) ^ uint64(uint32(y))
	h ^= h >> 30
	h *= 0xbf58476d1ce4e5b9
	h ^= h >> 27
	h *= 0x94d049bb133111eb
	h ^= h >> 31
	return int64(h)
}

func isFinite(c core.Vec3) bool {
	for _, v := range [3]float64{c.X, c.Y, c.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
