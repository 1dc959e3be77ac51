package integrator

import (
	"github.com/df07/go-medium-tracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms.
// Implementations must be safe for concurrent use: all randomness comes
// from the sampler, which belongs to the caller.
type Integrator interface {
	// Radiance estimates the light arriving along ray, allowing at most
	// depth further bounces or scatter events.
	Radiance(ray core.Ray, depth int, sampler core.Sampler) core.Vec3
}
