package integrator

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/df07/go-medium-tracer/pkg/core"
	"github.com/df07/go-medium-tracer/pkg/geometry"
	"github.com/df07/go-medium-tracer/pkg/scene"
)

// constantSampler always returns the same value, for deterministic branches
type constantSampler float64

func (c constantSampler) Get1D() float64   { return float64(c) }
func (c constantSampler) Get2D() core.Vec2 { return core.NewVec2(float64(c), float64(c)) }
func (c constantSampler) Get3D() core.Vec3 { return core.Repeat(float64(c)) }

func buildScene(t *testing.T, build func(b *scene.Builder)) *scene.Scene {
	t.Helper()
	b := scene.NewBuilder()
	build(b)
	s, err := b.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	return s
}

func newTracer(s *scene.Scene, medium Medium) *VolumetricPathTracer {
	return NewVolumetricPathTracer(s, geometry.NewBVH(s, geometry.DefaultBuildOptions()), medium)
}

// estimate runs n independent samples and returns the mean and standard error of one channel
func estimate(tracer Integrator, ray core.Ray, depth, n int, seed int64, channel func(core.Vec3) float64) (mean, stdErr float64, zeros int) {
	sampler := core.NewSeededSampler(seed)
	values := make([]float64, n)
	for i := range values {
		values[i] = channel(tracer.Radiance(ray, depth, sampler))
		if values[i] == 0 {
			zeros++
		}
	}
	mean, std := stat.MeanStdDev(values, nil)
	return mean, stat.StdErr(std, float64(n)), zeros
}

func red(c core.Vec3) float64 { return c.X }

func TestDepthZeroReturnsEmission(t *testing.T) {
	s, err := scene.NewEmissivePanel()
	if err != nil {
		t.Fatalf("NewEmissivePanel() failed: %v", err)
	}
	tracer := newTracer(s, Medium{Density: 10, ScatterProbability: 0.5})
	ray := core.NewRay(core.NewVec3(0.1, 0.2, 4), core.NewVec3(0, 0, -1))

	for _, u := range []float64{0, 0.25, 0.5, 0.999} {
		got := tracer.Radiance(ray, 0, constantSampler(u))
		if !got.Equals(core.NewVec3(1, 1, 1)) {
			t.Errorf("sampler %v: Radiance = %v, want panel emission", u, got)
		}
	}
}

func TestMissWithoutMediumIsBlack(t *testing.T) {
	s, err := scene.NewEmissivePanel()
	if err != nil {
		t.Fatalf("NewEmissivePanel() failed: %v", err)
	}
	ray := core.NewRay(core.NewVec3(0, 0, 4), core.NewVec3(0, 0, 1))

	tests := []struct {
		name   string
		medium Medium
		depth  int
	}{
		{"vacuum", NoMedium(), 5},
		{"negative density", Medium{Density: -1, ScatterProbability: 1}, 5},
		{"depth exhausted", DefaultMedium(), 0},
		{"pure absorber", Medium{Density: 1, ScatterProbability: 0}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tracer := newTracer(s, tt.medium)
			sampler := core.NewSeededSampler(1)
			for i := 0; i < 100; i++ {
				if got := tracer.Radiance(ray, tt.depth, sampler); !got.IsZero() {
					t.Fatalf("Radiance = %v, want black", got)
				}
			}
		})
	}
}

// TestRussianRouletteUnbiased bounces off a large diffuse floor into a large
// emissive ceiling. The expected radiance is reflectance times emission.
func TestRussianRouletteUnbiased(t *testing.T) {
	reflectance := core.NewVec3(0.5, 0.25, 0.1)
	emission := core.NewVec3(2, 2, 2)
	size := 1e4

	s := buildScene(t, func(b *scene.Builder) {
		floor := b.AddMaterial(scene.NewDiffuse("floor", reflectance))
		light := b.AddMaterial(scene.NewEmissive("ceiling", emission))
		v := core.NewVec3
		b.AddQuad(v(-size, 0, -size), v(size, 0, -size), v(size, 0, size), v(-size, 0, size), floor)
		b.AddQuad(v(-size, 1, -size), v(-size, 1, size), v(size, 1, size), v(size, 1, -size), light)
	})
	tracer := newTracer(s, NoMedium())
	ray := core.NewRay(core.NewVec3(0, 0.5, 0), core.NewVec3(0.3, -1, 0.1).Normalize())

	channels := []struct {
		name    string
		channel func(core.Vec3) float64
		want    float64
	}{
		{"red", func(c core.Vec3) float64 { return c.X }, reflectance.X * emission.X},
		{"green", func(c core.Vec3) float64 { return c.Y }, reflectance.Y * emission.Y},
		{"blue", func(c core.Vec3) float64 { return c.Z }, reflectance.Z * emission.Z},
	}

	for _, ch := range channels {
		t.Run(ch.name, func(t *testing.T) {
			mean, stdErr, zeros := estimate(tracer, ray, 1, 20000, 11, ch.channel)
			if math.Abs(mean-ch.want) > 4*stdErr+1e-3 {
				t.Errorf("mean %v, want %v (stderr %v)", mean, ch.want, stdErr)
			}
			if zeros == 0 {
				t.Error("Russian roulette never terminated a path")
			}
		})
	}
}

// TestMediumTransmittance fires a ray at a wall through a pure absorber.
// The wall is seen with probability exp(-density * distance).
func TestMediumTransmittance(t *testing.T) {
	distance := 2.0
	s := buildScene(t, func(b *scene.Builder) {
		light := b.AddMaterial(scene.NewEmissive("wall", core.NewVec3(1, 1, 1)))
		v := core.NewVec3
		b.AddQuad(v(-100, -100, distance), v(100, -100, distance), v(100, 100, distance), v(-100, 100, distance), light)
	})
	ray := core.NewRay(core.NewVec3(0.3, -0.7, 0), core.NewVec3(0, 0, 1))

	for _, density := range []float64{0.1, 0.5, 1.0} {
		tracer := newTracer(s, Medium{Density: density, ScatterProbability: 0})
		mean, stdErr, _ := estimate(tracer, ray, 3, 20000, 5, red)
		want := math.Exp(-density * distance)
		if math.Abs(mean-want) > 4*stdErr+1e-3 {
			t.Errorf("density %v: mean %v, want %v (stderr %v)", density, mean, want, stdErr)
		}
	}
}

// TestMediumScatterNotReweighted traces from the center of a closed emissive
// box. A scattered ray always reaches a wall, so the expected radiance is
// T + (1-T)*p where T is the transmittance to the wall and p the scatter probability.
func TestMediumScatterNotReweighted(t *testing.T) {
	s := buildScene(t, func(b *scene.Builder) {
		light := b.AddMaterial(scene.NewEmissive("walls", core.NewVec3(1, 1, 1)))
		b.AddBox(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), light)
	})
	medium := Medium{Density: 0.5, ScatterProbability: 0.3}
	tracer := newTracer(s, medium)
	ray := core.NewRay(core.NewVec3(0.1, 0.3, 0), core.NewVec3(0, 0, 1))

	mean, stdErr, zeros := estimate(tracer, ray, 1, 40000, 9, red)

	transmittance := math.Exp(-medium.Density * 1.0)
	want := transmittance + (1-transmittance)*medium.ScatterProbability
	if math.Abs(mean-want) > 4*stdErr+1e-3 {
		t.Errorf("mean %v, want %v (stderr %v)", mean, want, stdErr)
	}
	if zeros == 0 {
		t.Error("expected some paths to be absorbed")
	}
}

// TestScatterInEmptySpace checks a medium lights up rays that miss everything
func TestScatterInEmptySpace(t *testing.T) {
	s, err := scene.NewEmissivePanel()
	if err != nil {
		t.Fatalf("NewEmissivePanel() failed: %v", err)
	}
	tracer := newTracer(s, Medium{Density: 1, ScatterProbability: 1})
	// Points away from the panel
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1))

	_, _, zeros := estimate(tracer, ray, 4, 5000, 3, red)
	if zeros == 0 || zeros == 5000 {
		t.Errorf("expected a mix of dark and lit samples, got %d dark of 5000", zeros)
	}
}

func TestTexturedReflectance(t *testing.T) {
	size := 1e4
	s := buildScene(t, func(b *scene.Builder) {
		tex := b.AddTexture(scene.NewTexture(1, 1, []core.Vec3{core.NewVec3(0.5, 0.5, 0.5)}))
		floor := b.AddMaterial(scene.Material{
			Name:             "floor",
			Diffuse:          core.NewVec3(1, 1, 1),
			DiffuseTexture:   tex,
			EmittanceTexture: scene.NoTexture,
		})
		light := b.AddMaterial(scene.NewEmissive("ceiling", core.NewVec3(1, 1, 1)))
		v := core.NewVec3
		b.AddQuad(v(-size, 0, -size), v(size, 0, -size), v(size, 0, size), v(-size, 0, size), floor)
		b.AddQuad(v(-size, 1, -size), v(-size, 1, size), v(size, 1, size), v(size, 1, -size), light)
	})
	tracer := newTracer(s, NoMedium())
	ray := core.NewRay(core.NewVec3(0.2, 0.5, -0.4), core.NewVec3(0, -1, 0))

	// Reflectance max is 1, so the bounce always happens and is scaled by the texture
	sampler := core.NewSeededSampler(2)
	for i := 0; i < 50; i++ {
		got := tracer.Radiance(ray, 1, sampler)
		if math.Abs(got.X-0.5) > 1e-9 {
			t.Fatalf("Radiance = %v, want 0.5", got)
		}
	}
}

func TestMediumScaled(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		want  float64
	}{
		{"unit scale", 1, 0.05},
		{"hundred units", 100, 0.0005},
		{"zero scale is ignored", 0, 0.05},
		{"negative scale is ignored", -3, 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DefaultMedium().Scaled(tt.scale)
			if math.Abs(m.Density-tt.want) > 1e-12 {
				t.Errorf("Density = %v, want %v", m.Density, tt.want)
			}
			if m.ScatterProbability != DefaultMedium().ScatterProbability {
				t.Errorf("ScatterProbability changed to %v", m.ScatterProbability)
			}
		})
	}
}
