package core

import (
	"math"
	"testing"
)

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestTileAt(t *testing.T) {
	tests := []struct {
		p        Vec
		expected Tile
	}{
		{V(0.5, 0.5), T(0, 0)},
		{V(3.99, 5.0), T(3, 5)},
		{V(-0.1, 2.5), T(-1, 2)},
		{T(8, 4).Center(), T(8, 4)},
	}

	for _, tc := range tests {
		if got := TileAt(tc.p); got != tc.expected {
			t.Errorf("TileAt(%v) = %v, expected %v", tc.p, got, tc.expected)
		}
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{5 * math.Pi, math.Pi},
	}

	for _, tc := range tests {
		got := NormalizeAngle(tc.in)
		if math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("NormalizeAngle(%f) = %f, expected %f", tc.in, got, tc.expected)
		}
	}
}

func TestCircleHitsRect(t *testing.T) {
	tests := []struct {
		name     string
		c        Vec
		radius   float64
		expected bool
	}{
		{"centre inside", V(1.5, 1.5), 0.35, true},
		{"overlapping edge", V(0.8, 1.5), 0.35, true},
		{"clear of edge", V(0.6, 1.5), 0.35, false},
		{"clear of corner", V(0.7, 0.7), 0.35, false},
		{"into corner", V(0.8, 0.8), 0.35, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := CircleHitsRect(tc.c, tc.radius, 1, 1, 1, 1)
			if got != tc.expected {
				t.Errorf("CircleHitsRect(%v) = %v, expected %v", tc.c, got, tc.expected)
			}
		})
	}
}

func TestVecOps(t *testing.T) {
	a := V(1, 2)
	b := V(4, 6)

	if got := a.Dist(b); got != 5 {
		t.Errorf("Dist() = %f, expected 5", got)
	}
	if got := b.Sub(a); got != V(3, 4) {
		t.Errorf("Sub() = %v, expected (3, 4)", got)
	}
	if got := a.Add(b).Scale(2); got != V(10, 16) {
		t.Errorf("Add().Scale() = %v, expected (10, 16)", got)
	}
	if !V(0, 0).IsZero() || a.IsZero() {
		t.Error("IsZero() misreports")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.lo, tc.hi)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, result, tc.expected)
		}
	}

	if got := ClampF(1.5, 0, 1); got != 1 {
		t.Errorf("ClampF(1.5, 0, 1) = %f, expected 1", got)
	}
}
