package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns the box with Min=+Inf and Max=-Inf. It contains nothing
// and is the identity element for Merge.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: NewVec3(inf, inf, inf),
		Max: NewVec3(-inf, -inf, -inf),
	}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	box := EmptyAABB()
	for _, point := range points {
		box = box.IncludePoint(point)
	}
	return box
}

// IncludePoint returns the smallest box containing both the box and point
func (aabb AABB) IncludePoint(point Vec3) AABB {
	return AABB{Min: aabb.Min.Min(point), Max: aabb.Max.Max(point)}
}

// Merge returns an AABB that bounds both this AABB and another
func (aabb AABB) Merge(other AABB) AABB {
	return AABB{Min: aabb.Min.Min(other.Min), Max: aabb.Max.Max(other.Max)}
}

// IsEmpty reports whether min > max along any axis
func (aabb AABB) IsEmpty() bool {
	return aabb.Min.X > aabb.Max.X || aabb.Min.Y > aabb.Max.Y || aabb.Min.Z > aabb.Max.Z
}

// Pad returns an AABB expanded by the given amount in all directions.
// The empty box stays empty.
func (aabb AABB) Pad(amount float64) AABB {
	if aabb.IsEmpty() {
		return aabb
	}
	expansion := Repeat(amount)
	return AABB{Min: aabb.Min.Subtract(expansion), Max: aabb.Max.Add(expansion)}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	if aabb.IsEmpty() {
		return Vec3{}
	}
	return aabb.Max.Subtract(aabb.Min)
}

// SurfaceArea returns the surface area of the AABB
func (aabb AABB) SurfaceArea() float64 {
	size := aabb.Size()
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// Cost returns the surface area heuristic cost of holding count primitives
func (aabb AABB) Cost(count int) float64 {
	return aabb.SurfaceArea() * float64(count)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// SplitAt divides the box with a plane perpendicular to axis, placed offset
// units above Min along that axis. The two halves share the split plane.
func (aabb AABB) SplitAt(axis int, offset float64) (left, right AABB) {
	plane := aabb.Min.Axis(axis) + offset
	left = AABB{Min: aabb.Min, Max: aabb.Max.WithAxis(axis, plane)}
	right = AABB{Min: aabb.Min.WithAxis(axis, plane), Max: aabb.Max}
	return left, right
}

// ContainsPoint reports whether point lies inside the closed box
func (aabb AABB) ContainsPoint(point Vec3) bool {
	return point.X >= aabb.Min.X && point.X <= aabb.Max.X &&
		point.Y >= aabb.Min.Y && point.Y <= aabb.Max.Y &&
		point.Z >= aabb.Min.Z && point.Z <= aabb.Max.Z
}

// OverlapsTriangle is a conservative overlap test. It returns false only when
// all three vertices lie beyond the same face plane of the box, so a triangle
// straddling a face is reported as overlapping.
func (aabb AABB) OverlapsTriangle(a, b, c Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		lo, hi := aabb.Min.Axis(axis), aabb.Max.Axis(axis)
		if a.Axis(axis) < lo && b.Axis(axis) < lo && c.Axis(axis) < lo {
			return false
		}
		if a.Axis(axis) > hi && b.Axis(axis) > hi && c.Axis(axis) > hi {
			return false
		}
	}
	return true
}
