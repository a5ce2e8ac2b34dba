package core

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		expected float64
	}{
		{"same point", V3(1, 2, 3), V3(1, 2, 3), 0},
		{"unit x", V3(0, 0, 0), V3(1, 0, 0), 1},
		{"3-4-5 on the floor", V3(0, 1.6, 0), V3(3, 1.6, 4), 5},
		{"height counts", V3(0, 0, 0), V3(0, 2, 0), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Distance(%v, %v) = %v, expected %v", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestVec3Normalize(t *testing.T) {
	n := V3(3, 0, 4).Normalize()
	if math.Abs(n.Len()-1) > 1e-9 {
		t.Errorf("Normalize length = %v, expected 1", n.Len())
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("Normalize of zero vector = %v, expected zero", zero)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(2, 2, 3, 3)
	if !r.Contains(2, 2) || !r.Contains(4, 4) {
		t.Error("Rect should contain its corners")
	}
	if r.Contains(5, 5) || r.Contains(1, 2) {
		t.Error("Rect should not contain points past its edges")
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Error("Clamp returned a value outside its range")
	}
	if ClampF(2.6, 0.5, 2.5) != 2.5 || ClampF(0.1, 0.5, 2.5) != 0.5 {
		t.Error("ClampF returned a value outside its range")
	}
}
