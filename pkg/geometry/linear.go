package geometry

import "github.com/df07/go-medium-tracer/pkg/core"

// LinearScan answers nearest-hit queries by testing every triangle.
// It is the reference the BVH is checked against and a fallback for tiny scenes.
type LinearScan struct {
	mesh Mesh
}

// NewLinearScan wraps mesh without any acceleration
func NewLinearScan(mesh Mesh) *LinearScan {
	return &LinearScan{mesh: mesh}
}

// NearestHit returns the closest triangle hit along the ray
func (l *LinearScan) NearestHit(ray core.Ray) (Intersection, bool) {
	var closest Intersection
	hitAnything := false

	for i := 0; i < l.mesh.TriangleCount(); i++ {
		if hit, ok := IntersectMeshTriangle(l.mesh, ray, i); ok {
			if !hitAnything || hit.T < closest.T {
				closest = hit
				hitAnything = true
			}
		}
	}

	return closest, hitAnything
}
