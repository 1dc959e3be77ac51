package scene

import (
	"github.com/df07/go-medium-tracer/pkg/core"
	"github.com/df07/go-medium-tracer/pkg/geometry"
)

// Triangle references three vertices and a material by index.
// Texture coordinates share the vertex index.
type Triangle struct {
	A, B, C  int
	Material int
}

// View describes where a scene prefers to be looked at from
type View struct {
	Position core.Vec3
	LookAt   core.Vec3
	Up       core.Vec3
	VFov     float64 // Vertical field of view in degrees
}

// Scene is an immutable arena of triangles, materials and textures.
// Everything refers to everything else by index; Build validates the indices.
type Scene struct {
	Vertices  []core.Vec3
	TexCoords []core.Vec2 // Either empty or parallel to Vertices
	Triangles []Triangle
	Materials []Material
	Textures  []*Texture
	View      View

	// MediumScale is the number of scene units per unit of medium distance.
	// Zero is treated as 1.
	MediumScale float64
}

// TriangleCount implements geometry.Mesh
func (s *Scene) TriangleCount() int {
	return len(s.Triangles)
}

// TriangleVertices implements geometry.Mesh
func (s *Scene) TriangleVertices(i int) (a, b, c core.Vec3) {
	t := s.Triangles[i]
	return s.Vertices[t.A], s.Vertices[t.B], s.Vertices[t.C]
}

// Normal returns the unit geometric normal (b-a)×(c-a) of triangle i
func (s *Scene) Normal(i int) core.Vec3 {
	a, b, c := s.TriangleVertices(i)
	return b.Subtract(a).Cross(c.Subtract(a)).Normalize()
}

// Material returns the material of triangle i
func (s *Scene) Material(i int) Material {
	return s.Materials[s.Triangles[i].Material]
}

// HasTexCoords reports whether vertices carry texture coordinates
func (s *Scene) HasTexCoords() bool {
	return len(s.TexCoords) > 0
}

// TexCoord interpolates the texture coordinate at barycentric (u, v) of triangle i
func (s *Scene) TexCoord(i int, u, v float64) core.Vec2 {
	if !s.HasTexCoords() {
		return core.Vec2{}
	}
	t := s.Triangles[i]
	a, b, c := s.TexCoords[t.A], s.TexCoords[t.B], s.TexCoords[t.C]
	return a.Add(b.Subtract(a).Multiply(u)).Add(c.Subtract(a).Multiply(v))
}

// Emitted returns the radiance emitted at hit, modulated by the emittance texture
func (s *Scene) Emitted(hit geometry.Intersection) core.Vec3 {
	m := s.Material(hit.Triangle)
	return s.modulate(m.Emittance, m.EmittanceTexture, hit)
}

// Reflectance returns the diffuse reflectance at hit, modulated by the diffuse texture
func (s *Scene) Reflectance(hit geometry.Intersection) core.Vec3 {
	m := s.Material(hit.Triangle)
	return s.modulate(m.Diffuse, m.DiffuseTexture, hit)
}

func (s *Scene) modulate(base core.Vec3, texture int, hit geometry.Intersection) core.Vec3 {
	if texture == NoTexture {
		return base
	}
	uv := s.TexCoord(hit.Triangle, hit.U, hit.V)
	return base.MultiplyVec(s.Textures[texture].Evaluate(uv))
}

// EmissiveTriangles returns the indices of triangles with an emissive material
func (s *Scene) EmissiveTriangles() []int {
	var out []int
	for i := range s.Triangles {
		if s.Material(i).IsEmissive() {
			out = append(out, i)
		}
	}
	return out
}

// BoundingBox returns the box around every vertex referenced by a triangle
func (s *Scene) BoundingBox() core.AABB {
	box := core.EmptyAABB()
	for i := range s.Triangles {
		a, b, c := s.TriangleVertices(i)
		box = box.IncludePoint(a).IncludePoint(b).IncludePoint(c)
	}
	return box
}
