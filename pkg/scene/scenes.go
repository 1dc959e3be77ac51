package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-medium-tracer/pkg/core"
)

// NewEmissivePanel creates a single unit emissive quad facing +Z at the origin
func NewEmissivePanel() (*Scene, error) {
	b := NewBuilder()
	light := b.AddMaterial(NewEmissive("panel", core.NewVec3(1, 1, 1)))
	v := core.NewVec3
	b.AddQuad(v(-1, -1, 0), v(1, -1, 0), v(1, 1, 0), v(-1, 1, 0), light)
	b.SetView(View{
		Position: v(0, 0, 4),
		LookAt:   v(0, 0, 0),
		Up:       v(0, 1, 0),
		VFov:     45,
	})
	return b.Build()
}

// NewFogScene creates a light panel hanging over a checkered floor in open space,
// intended to be rendered through a participating medium.
func NewFogScene() (*Scene, error) {
	b := NewBuilder()
	checker := b.AddTexture(NewCheckerTexture(8, core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.2, 0.2, 0.2)))
	floor := b.AddMaterial(Material{
		Name:             "floor",
		Diffuse:          core.NewVec3(1, 1, 1),
		DiffuseTexture:   checker,
		EmittanceTexture: NoTexture,
	})
	light := b.AddMaterial(NewEmissive("light", core.NewVec3(8, 7, 6)))

	v := core.NewVec3
	b.AddQuad(v(-10, 0, 10), v(10, 0, 10), v(10, 0, -10), v(-10, 0, -10), floor)
	b.AddQuad(v(-1.5, 4, -1.5), v(-1.5, 4, 1.5), v(1.5, 4, 1.5), v(1.5, 4, -1.5), light)
	b.AddBox(v(-0.75, 0, -0.75), v(0.75, 1.5, 0.75), DefaultMaterialIndex)

	b.SetView(View{
		Position: v(0, 3, 12),
		LookAt:   v(0, 1.5, 0),
		Up:       v(0, 1, 0),
		VFov:     40,
	})
	return b.Build()
}

// Registry maps scene names to their constructors
var Registry = map[string]func() (*Scene, error){
	"cornell": NewCornellBox,
	"panel":   NewEmissivePanel,
	"fog":     NewFogScene,
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load builds the named scene
func Load(name string) (*Scene, error) {
	ctor, ok := Registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScene, name, Names())
	}
	return ctor()
}
