package geometry

import (
	"math"

	"github.com/df07/go-medium-tracer/pkg/core"
)

// Epsilon rejects near-parallel rays and hits too close to the ray origin.
// The second use keeps bounced rays from re-hitting the surface they left.
const Epsilon = 1e-8

// TriangleHit holds the result of a single ray-triangle test
type TriangleHit struct {
	T    float64
	U, V float64
}

// IntersectTriangle tests a ray against triangle (a, b, c) using the Möller-Trumbore algorithm
func IntersectTriangle(ray core.Ray, a, b, c core.Vec3) (TriangleHit, bool) {
	edge1 := b.Subtract(a)
	edge2 := c.Subtract(a)

	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)

	// Ray lies in (or is nearly parallel to) the plane of the triangle
	if math.Abs(det) < Epsilon {
		return TriangleHit{}, false
	}

	f := 1.0 / det
	s := ray.Origin.Subtract(a)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return TriangleHit{}, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return TriangleHit{}, false
	}

	t := f * edge2.Dot(q)
	if t < Epsilon {
		return TriangleHit{}, false
	}

	return TriangleHit{T: t, U: u, V: v}, true
}

// IntersectMeshTriangle tests a ray against triangle i of mesh
func IntersectMeshTriangle(mesh Mesh, ray core.Ray, i int) (Intersection, bool) {
	a, b, c := mesh.TriangleVertices(i)
	hit, ok := IntersectTriangle(ray, a, b, c)
	if !ok {
		return Intersection{}, false
	}
	return Intersection{Ray: ray, T: hit.T, U: hit.U, V: hit.V, Triangle: i}, true
}

// TriangleBounds returns the bounding box of triangle i of mesh
func TriangleBounds(mesh Mesh, i int) core.AABB {
	a, b, c := mesh.TriangleVertices(i)
	return core.NewAABBFromPoints(a, b, c)
}
