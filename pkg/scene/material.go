package scene

import "github.com/df07/go-medium-tracer/pkg/core"

// NoTexture marks a material slot without a texture
const NoTexture = -1

// DefaultMaterialIndex is the slot the builder reserves for DefaultMaterial
const DefaultMaterialIndex = 0

// Material describes a diffuse surface that may also emit light.
// Texture fields are indices into Scene.Textures, or NoTexture.
type Material struct {
	Name             string
	Diffuse          core.Vec3 // Diffuse reflectance per channel, each in [0, 1]
	Emittance        core.Vec3 // Emitted radiance, unclamped
	DiffuseTexture   int
	EmittanceTexture int
}

// NewDiffuse creates a non-emissive diffuse material
func NewDiffuse(name string, diffuse core.Vec3) Material {
	return Material{
		Name:             name,
		Diffuse:          diffuse,
		DiffuseTexture:   NoTexture,
		EmittanceTexture: NoTexture,
	}
}

// NewEmissive creates a light-emitting material with no reflectance
func NewEmissive(name string, emittance core.Vec3) Material {
	return Material{
		Name:             name,
		Emittance:        emittance,
		DiffuseTexture:   NoTexture,
		EmittanceTexture: NoTexture,
	}
}

// DefaultMaterial is assigned to triangles that do not name a material: black and non-emissive
func DefaultMaterial() Material {
	return NewDiffuse("default", core.Vec3{})
}

// IsEmissive reports whether the material can emit light
func (m Material) IsEmissive() bool {
	return !m.Emittance.IsZero()
}
