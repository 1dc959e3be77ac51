package core

import (
	"math"
	"testing"
)

func TestAABB_EmptyIsMergeIdentity(t *testing.T) {
	box := NewAABB(NewVec3(-5, -2, 0), NewVec3(7, 4, 4))

	merged := EmptyAABB().Merge(box)
	if merged != box {
		t.Errorf("Expected %v, got %v", box, merged)
	}

	if !EmptyAABB().IsEmpty() {
		t.Error("Expected empty box to report IsEmpty")
	}
	if EmptyAABB().SurfaceArea() != 0 {
		t.Errorf("Expected zero surface area for empty box, got %f", EmptyAABB().SurfaceArea())
	}
}

func TestAABB_Merge(t *testing.T) {
	bb1 := NewAABB(NewVec3(-5, -2, 0), NewVec3(7, 4, 4))
	bb2 := NewAABB(NewVec3(8, -7, -2), NewVec3(14, 2, 8))

	bb3 := bb1.Merge(bb2)

	if bb3.Min != NewVec3(-5, -7, -2) {
		t.Errorf("Expected min (-5,-7,-2), got %v", bb3.Min)
	}
	if bb3.Max != NewVec3(14, 4, 8) {
		t.Errorf("Expected max (14,4,8), got %v", bb3.Max)
	}
}

func TestAABB_FromPoints(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	if box.Min != NewVec3(0, 0, 0) || box.Max != NewVec3(1, 1, 1) {
		t.Errorf("Expected unit box, got %v", box)
	}

	if !NewAABBFromPoints().IsEmpty() {
		t.Error("Expected no points to give the empty box")
	}
}

func TestAABB_SurfaceAreaAndAxis(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(4, 2, 1))

	if got := box.SurfaceArea(); math.Abs(got-28) > 1e-12 {
		t.Errorf("Expected surface area 28, got %f", got)
	}
	if got := box.Cost(3); math.Abs(got-84) > 1e-12 {
		t.Errorf("Expected cost 84, got %f", got)
	}
	if got := box.LongestAxis(); got != 0 {
		t.Errorf("Expected longest axis 0, got %d", got)
	}
	if got := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 3)).LongestAxis(); got != 2 {
		t.Errorf("Expected longest axis 2, got %d", got)
	}
}

func TestAABB_SplitAt(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(4, 2, 2))
	left, right := box.SplitAt(0, 1)

	if left.Max.X != 1 || right.Min.X != 1 {
		t.Errorf("Expected split plane at x=1, got left.Max=%v right.Min=%v", left.Max, right.Min)
	}
	if left.Min != box.Min || right.Max != box.Max {
		t.Errorf("Expected halves to keep outer corners, got %v %v", left, right)
	}
}

func TestAABB_OverlapsTriangle(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		a, b, c  Vec3
		expected bool
	}{
		{"inside", NewVec3(0.1, 0.1, 0.5), NewVec3(0.9, 0.1, 0.5), NewVec3(0.5, 0.9, 0.5), true},
		{"straddles face", NewVec3(-1, 0.5, 0.5), NewVec3(2, 0.5, 0.5), NewVec3(0.5, 0.6, 0.5), true},
		{"fully left", NewVec3(-3, 0, 0), NewVec3(-2, 1, 0), NewVec3(-1, 0, 1), false},
		{"fully above", NewVec3(0, 2, 0), NewVec3(1, 3, 0), NewVec3(0, 4, 1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.OverlapsTriangle(tt.a, tt.b, tt.c); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}

	if EmptyAABB().OverlapsTriangle(NewVec3(0, 0, 0), NewVec3(1, 0, 0), NewVec3(0, 1, 0)) {
		t.Error("Expected nothing to overlap the empty box")
	}
}

func TestAABB_ContainsPoint(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	if !box.ContainsPoint(NewVec3(1, 0.5, 0)) {
		t.Error("Expected boundary point to be contained")
	}
	if box.ContainsPoint(NewVec3(1.01, 0.5, 0.5)) {
		t.Error("Expected outside point not to be contained")
	}
}
