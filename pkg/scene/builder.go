package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-medium-tracer/pkg/core"
)

// Builder assembles a Scene. Indices returned by the Add methods are
// only checked when Build is called.
type Builder struct {
	vertices  []core.Vec3
	texCoords []core.Vec2
	triangles []Triangle
	materials []Material
	textures  []*Texture
	hasUV     bool
	view      View

	mediumScale float64
}

// NewBuilder creates a builder with DefaultMaterial at DefaultMaterialIndex
func NewBuilder() *Builder {
	return &Builder{
		materials:   []Material{DefaultMaterial()},
		mediumScale: 1,
		view: View{
			Position: core.NewVec3(0, 0, 5),
			LookAt:   core.NewVec3(0, 0, 0),
			Up:       core.NewVec3(0, 1, 0),
			VFov:     45,
		},
	}
}

// AddMaterial registers a material and returns its index
func (b *Builder) AddMaterial(m Material) int {
	b.materials = append(b.materials, m)
	return len(b.materials) - 1
}

// AddTexture registers a texture and returns its index
func (b *Builder) AddTexture(t *Texture) int {
	b.textures = append(b.textures, t)
	return len(b.textures) - 1
}

// AddVertex appends a vertex without a texture coordinate and returns its index
func (b *Builder) AddVertex(p core.Vec3) int {
	b.vertices = append(b.vertices, p)
	b.texCoords = append(b.texCoords, core.Vec2{})
	return len(b.vertices) - 1
}

// AddVertexUV appends a vertex with a texture coordinate and returns its index
func (b *Builder) AddVertexUV(p core.Vec3, uv core.Vec2) int {
	b.vertices = append(b.vertices, p)
	b.texCoords = append(b.texCoords, uv)
	b.hasUV = true
	return len(b.vertices) - 1
}

// AddTriangle adds a triangle using the default material
func (b *Builder) AddTriangle(a, bb, c int) int {
	return b.AddTriangleMaterial(a, bb, c, DefaultMaterialIndex)
}

// AddTriangleMaterial adds a triangle with an explicit material
func (b *Builder) AddTriangleMaterial(a, bb, c, material int) int {
	b.triangles = append(b.triangles, Triangle{A: a, B: bb, C: c, Material: material})
	return len(b.triangles) - 1
}

// AddQuad adds the planar quad p0,p1,p2,p3 (in winding order) as two triangles
// and gives its corners the texture coordinates (0,0), (1,0), (1,1), (0,1).
func (b *Builder) AddQuad(p0, p1, p2, p3 core.Vec3, material int) {
	i0 := b.AddVertexUV(p0, core.NewVec2(0, 0))
	i1 := b.AddVertexUV(p1, core.NewVec2(1, 0))
	i2 := b.AddVertexUV(p2, core.NewVec2(1, 1))
	i3 := b.AddVertexUV(p3, core.NewVec2(0, 1))
	b.AddTriangleMaterial(i0, i1, i2, material)
	b.AddTriangleMaterial(i0, i2, i3, material)
}

// AddBox adds an axis-aligned box as twelve outward-facing triangles
func (b *Builder) AddBox(min, max core.Vec3, material int) {
	b.addBox(min, max, material, func(p core.Vec3) core.Vec3 { return p })
}

// AddRotatedBox adds a box turned by degrees around the vertical axis through its centre
func (b *Builder) AddRotatedBox(min, max core.Vec3, degrees float64, material int) {
	center := min.Add(max).Multiply(0.5)
	up := core.NewVec3(0, 1, 0)
	angle := degrees * math.Pi / 180
	b.addBox(min, max, material, func(p core.Vec3) core.Vec3 {
		return p.Subtract(center).Rotate(up, angle).Add(center)
	})
}

func (b *Builder) addBox(min, max core.Vec3, material int, place func(core.Vec3) core.Vec3) {
	x0, y0, z0 := min.X, min.Y, min.Z
	x1, y1, z1 := max.X, max.Y, max.Z
	v := func(x, y, z float64) core.Vec3 { return place(core.NewVec3(x, y, z)) }
	b.AddQuad(v(x0, y0, z1), v(x1, y0, z1), v(x1, y1, z1), v(x0, y1, z1), material) // front
	b.AddQuad(v(x1, y0, z0), v(x0, y0, z0), v(x0, y1, z0), v(x1, y1, z0), material) // back
	b.AddQuad(v(x0, y0, z0), v(x0, y0, z1), v(x0, y1, z1), v(x0, y1, z0), material) // left
	b.AddQuad(v(x1, y0, z1), v(x1, y0, z0), v(x1, y1, z0), v(x1, y1, z1), material) // right
	b.AddQuad(v(x0, y1, z1), v(x1, y1, z1), v(x1, y1, z0), v(x0, y1, z0), material) // top
	b.AddQuad(v(x0, y0, z0), v(x1, y0, z0), v(x1, y0, z1), v(x0, y0, z1), material) // bottom
}

// SetView sets the preferred viewpoint of the scene
func (b *Builder) SetView(view View) {
	b.view = view
}

// SetMediumScale sets how many scene units make up one unit of medium
// distance. Large scenes use it to keep a given density visible.
func (b *Builder) SetMediumScale(scale float64) {
	b.mediumScale = scale
}

// Build validates every index and returns the finished scene
func (b *Builder) Build() (*Scene, error) {
	if !(b.mediumScale > 0) || math.IsInf(b.mediumScale, 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMediumScale, b.mediumScale)
	}
	for i, t := range b.textures {
		if !t.valid() {
			return nil, fmt.Errorf("texture %d: %w", i, ErrInvalidTexture)
		}
	}
	for i, m := range b.materials {
		if err := b.checkTexture(m.DiffuseTexture); err != nil {
			return nil, fmt.Errorf("material %d (%s) diffuse texture: %w", i, m.Name, err)
		}
		if err := b.checkTexture(m.EmittanceTexture); err != nil {
			return nil, fmt.Errorf("material %d (%s) emittance texture: %w", i, m.Name, err)
		}
	}
	for i, t := range b.triangles {
		for _, v := range [3]int{t.A, t.B, t.C} {
			if v < 0 || v >= len(b.vertices) {
				return nil, fmt.Errorf("triangle %d vertex %d: %w", i, v, ErrInvalidVertexIndex)
			}
		}
		if t.Material < 0 || t.Material >= len(b.materials) {
			return nil, fmt.Errorf("triangle %d material %d: %w", i, t.Material, ErrInvalidMaterialIndex)
		}
		m := b.materials[t.Material]
		if !b.hasUV && (m.DiffuseTexture != NoTexture || m.EmittanceTexture != NoTexture) {
			return nil, fmt.Errorf("triangle %d material %s: %w", i, m.Name, ErrMissingTexCoords)
		}
	}

	s := &Scene{
		Vertices:  append([]core.Vec3(nil), b.vertices...),
		Triangles: append([]Triangle(nil), b.triangles...),
		Materials: append([]Material(nil), b.materials...),
		Textures:  append([]*Texture(nil), b.textures...),
		View:      b.view,

		MediumScale: b.mediumScale,
	}
	if b.hasUV {
		s.TexCoords = append([]core.Vec2(nil), b.texCoords...)
	}
	return s, nil
}

func (b *Builder) checkTexture(index int) error {
	if index == NoTexture {
		return nil
	}
	if index < 0 || index >= len(b.textures) {
		return fmt.Errorf("index %d: %w", index, ErrInvalidTextureIndex)
	}
	return nil
}
