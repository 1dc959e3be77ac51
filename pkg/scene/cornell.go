package scene

import (
	"github.com/df07/go-medium-tracer/pkg/core"
)

// NewCornellBox creates a classic Cornell box built from triangles, with a
// ceiling light and two white blocks.
func NewCornellBox() (*Scene, error) {
	b := NewBuilder()
	b.SetView(View{
		Position: core.NewVec3(278, 278, -800), // Position camera outside the box looking in
		LookAt:   core.NewVec3(278, 278, 0),    // Look at the center of the box
		Up:       core.NewVec3(0, 1, 0),
		VFov:     40.0,
	})

	// Create materials
	white := b.AddMaterial(NewDiffuse("white", core.NewVec3(0.73, 0.73, 0.73)))
	red := b.AddMaterial(NewDiffuse("red", core.NewVec3(0.65, 0.05, 0.05)))
	green := b.AddMaterial(NewDiffuse("green", core.NewVec3(0.12, 0.45, 0.15)))
	light := b.AddMaterial(NewEmissive("light", core.NewVec3(15.0, 15.0, 15.0)))

	// Cornell box dimensions (standard 555x555x555 units)
	s := 555.0
	v := core.NewVec3

	b.AddQuad(v(0, 0, 0), v(s, 0, 0), v(s, 0, s), v(0, 0, s), white) // floor
	b.AddQuad(v(0, s, 0), v(0, s, s), v(s, s, s), v(s, s, 0), white) // ceiling
	b.AddQuad(v(0, 0, s), v(s, 0, s), v(s, s, s), v(0, s, s), white) // back wall
	b.AddQuad(v(0, 0, 0), v(0, 0, s), v(0, s, s), v(0, s, 0), red)   // left wall
	b.AddQuad(v(s, 0, 0), v(s, s, 0), v(s, s, s), v(s, 0, s), green) // right wall

	// Ceiling light (smaller quad slightly below the ceiling)
	lightSize := 130.0
	lo := (s - lightSize) / 2.0
	hi := lo + lightSize
	b.AddQuad(v(lo, s-1, lo), v(lo, s-1, hi), v(hi, s-1, hi), v(hi, s-1, lo), light)

	b.AddRotatedBox(v(130, 0, 65), v(295, 165, 230), -18, white)
	b.AddRotatedBox(v(265, 0, 295), v(430, 330, 460), 15, white)

	// The box is hundreds of units across; measure the medium in hundreds too
	b.SetMediumScale(100)

	return b.Build()
}
