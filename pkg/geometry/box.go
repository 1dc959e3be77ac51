package geometry

import (
	"math"

	"github.com/df07/go-medium-tracer/pkg/core"
)

// IntersectBox tests if a ray intersects the box using the slab method.
// It returns the entry distance, which is negative when the origin lies inside
// the box. The distance is meant for ordering traversal, not for shading.
// Empty boxes and boxes entirely behind the origin are never hit.
func IntersectBox(box core.AABB, ray core.Ray) (float64, bool) {
	if box.IsEmpty() {
		return 0, false
	}

	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		lo := box.Min.Axis(axis)
		hi := box.Max.Axis(axis)
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)

		invDirection := 1.0 / direction
		if direction == 0 || math.IsInf(invDirection, 0) {
			// Ray is parallel to this slab
			if origin < lo || origin > hi {
				return 0, false
			}
			continue
		}

		t1 := (lo - origin) * invDirection
		t2 := (hi - origin) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		// Disjoint intervals
		if t1 > tMax || tMin > t2 {
			return 0, false
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
	}

	if tMax < 0 {
		return 0, false
	}

	return math.Min(tMin, tMax), true
}
