package geometry

import "github.com/df07/go-medium-tracer/pkg/core"

// Mesh exposes the triangle soup an acceleration structure is built over.
// Triangles are identified by their index in [0, TriangleCount()).
type Mesh interface {
	TriangleCount() int
	TriangleVertices(i int) (a, b, c core.Vec3)
}

// Intersector answers nearest-hit queries against a fixed set of triangles
type Intersector interface {
	NearestHit(ray core.Ray) (Intersection, bool)
}

// Intersection ties a ray to the triangle it hit
type Intersection struct {
	Ray      core.Ray
	T        float64 // Distance along the ray, in units of the ray direction
	U, V     float64 // Barycentric weights of the second and third vertex
	Triangle int     // Index of the triangle in the mesh
}

// Point returns the hit position in world space
func (i Intersection) Point() core.Vec3 {
	return i.Ray.At(i.T)
}

// Distance returns the euclidean distance from the ray origin to the hit
func (i Intersection) Distance() float64 {
	return i.Ray.Direction.Length() * i.T
}

// closer picks the intersection with the smaller T among the valid ones
func closer(a Intersection, aOK bool, b Intersection, bOK bool) (Intersection, bool) {
	switch {
	case aOK && bOK:
		if b.T < a.T {
			return b, true
		}
		return a, true
	case aOK:
		return a, true
	case bOK:
		return b, true
	}
	return Intersection{}, false
}
