package integrator

import (
	"github.com/df07/go-medium-tracer/pkg/core"
	"github.com/df07/go-medium-tracer/pkg/geometry"
	"github.com/df07/go-medium-tracer/pkg/scene"
)

// Medium is a homogeneous participating medium filling all empty space
type Medium struct {
	Density            float64 // Interactions per unit distance
	ScatterProbability float64 // Chance an interaction scatters rather than absorbs
}

// DefaultMedium returns a thin, mostly absorbing haze
func DefaultMedium() Medium {
	return Medium{
		Density:            0.05,
		ScatterProbability: 0.2,
	}
}

// NoMedium returns a vacuum: rays travel unhindered and misses are black
func NoMedium() Medium {
	return Medium{}
}

// Enabled reports whether the medium ever interacts with a ray
func (m Medium) Enabled() bool {
	return m.Density > 0
}

// Scaled converts the density into a scene where scale units make up one
// unit of medium distance. Non-positive scales leave the medium unchanged.
func (m Medium) Scaled(scale float64) Medium {
	if scale <= 0 {
		return m
	}
	m.Density /= scale
	return m
}

// VolumetricPathTracer is a Monte Carlo path tracer for diffuse emitters and
// reflectors inside a homogeneous medium. Surviving paths are never
// reweighted by the scatter probability: it is the medium's single-scattering
// albedo, so absorbed paths carry the lost energy.
type VolumetricPathTracer struct {
	scene  *scene.Scene
	accel  geometry.Intersector
	medium Medium
}

// NewVolumetricPathTracer creates an integrator over scene using accel for visibility queries
func NewVolumetricPathTracer(s *scene.Scene, accel geometry.Intersector, medium Medium) *VolumetricPathTracer {
	return &VolumetricPathTracer{
		scene:  s,
		accel:  accel,
		medium: medium,
	}
}

// Medium returns the medium the tracer was configured with
func (vt *VolumetricPathTracer) Medium() Medium {
	return vt.medium
}

// Radiance implements Integrator
func (vt *VolumetricPathTracer) Radiance(ray core.Ray, depth int, sampler core.Sampler) core.Vec3 {
	hit, isHit := vt.accel.NearestHit(ray)
	if !isHit {
		if depth > 0 && vt.medium.Enabled() {
			distance := core.SampleExponential(vt.medium.Density, sampler.Get1D())
			return vt.interact(ray, distance, depth, sampler)
		}
		return core.Vec3{}
	}

	if depth == 0 {
		return vt.scene.Emitted(hit)
	}

	// A medium interaction can happen before the surface is reached
	if vt.medium.Enabled() {
		distance := core.SampleExponential(vt.medium.Density, sampler.Get1D())
		if distance < hit.Distance() {
			return vt.interact(ray, distance, depth, sampler)
		}
	}

	emitted := vt.scene.Emitted(hit)
	return emitted.Add(vt.indirect(hit, depth, sampler))
}

// interact handles a medium event distance units along ray: the ray is
// either absorbed or continues from there in a uniformly random direction.
func (vt *VolumetricPathTracer) interact(ray core.Ray, distance float64, depth int, sampler core.Sampler) core.Vec3 {
	if sampler.Get1D() >= vt.medium.ScatterProbability {
		return core.Vec3{}
	}

	point := ray.Origin.Add(ray.Direction.Normalize().Multiply(distance))
	direction := core.SampleOnUnitSphere(sampler.Get2D())
	return vt.Radiance(core.NewRay(point, direction), depth-1, sampler)
}

// indirect estimates diffusely reflected light at hit using Russian roulette
// on the largest reflectance channel
func (vt *VolumetricPathTracer) indirect(hit geometry.Intersection, depth int, sampler core.Sampler) core.Vec3 {
	albedoMax := vt.scene.Material(hit.Triangle).Diffuse.MaxComponent()
	if albedoMax <= 0 || sampler.Get1D() >= albedoMax {
		return core.Vec3{}
	}

	// Face the normal towards the incoming ray so back faces reflect too
	normal := vt.scene.Normal(hit.Triangle)
	if normal.Dot(hit.Ray.Direction) > 0 {
		normal = normal.Negate()
	}

	direction := core.SampleCosineHemisphere(normal, sampler.Get2D())
	bounce := core.NewRay(hit.Point(), direction)
	incoming := vt.Radiance(bounce, depth-1, sampler)

	weight := vt.scene.Reflectance(hit).Divide(albedoMax)
	return incoming.MultiplyVec(weight)
}
