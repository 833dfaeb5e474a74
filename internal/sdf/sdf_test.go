package sdf

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSphereDistance(t *testing.T) {
	s := Sphere{Radius: 5}
	if d := s.Distance(mgl32.Vec3{0, 0, 0}); d != -5 {
		t.Errorf("center: got %v, want -5", d)
	}
	if d := math.Round(float64(s.Distance(mgl32.Vec3{2, 2, 2}))); d != -2 {
		t.Errorf("inside: got %v, want -2", d)
	}
	if d := math.Round(float64(s.Distance(mgl32.Vec3{5, 5, 5}))); d != 4 {
		t.Errorf("outside: got %v, want 4", d)
	}
	if d := math.Round(float64(s.Distance(mgl32.Vec3{20, 3, 7}))); d != 16 {
		t.Errorf("far: got %v, want 16", d)
	}
}

func TestSphereBounds(t *testing.T) {
	s := Sphere{Center: mgl32.Vec3{1, 2, 3}, Radius: 4}
	lo, hi := s.Bounds()
	if lo != (mgl32.Vec3{-3, -2, -1}) || hi != (mgl32.Vec3{5, 6, 7}) {
		t.Errorf("bounds %v..%v", lo, hi)
	}
}

func TestBoxDistance(t *testing.T) {
	b := Box{HalfExtent: mgl32.Vec3{1, 2, 3}}
	if d := b.Distance(mgl32.Vec3{0, 0, 0}); d != -1 {
		t.Errorf("center: got %v, want -1 (nearest face)", d)
	}
	if d := b.Distance(mgl32.Vec3{5, 0, 0}); d != 4 {
		t.Errorf("face-on: got %v, want 4", d)
	}
	// Corner region: Euclidean distance to the corner (1,2,3).
	want := float32(math.Sqrt(3))
	if d := b.Distance(mgl32.Vec3{2, 3, 4}); mgl32.Abs(d-want) > 1e-5 {
		t.Errorf("corner: got %v, want %v", d, want)
	}
}

func TestCylinderDistance(t *testing.T) {
	c := Cylinder{Radius: 2, HalfHeight: 3}
	if d := c.Distance(mgl32.Vec3{0, 0, 0}); d != -2 {
		t.Errorf("axis: got %v, want -2", d)
	}
	if d := c.Distance(mgl32.Vec3{4, 0, 0}); d != 2 {
		t.Errorf("radial: got %v, want 2", d)
	}
	if d := c.Distance(mgl32.Vec3{0, 5, 0}); d != 2 {
		t.Errorf("above cap: got %v, want 2", d)
	}
}

func TestSmoothMinDegeneratesToHardMin(t *testing.T) {
	pairs := [][2]float32{{1, 2}, {-3, 5}, {10, -4}, {0.5, 0.5}, {-1, -1}}
	for _, p := range pairs {
		got := SmoothMin(p[0], p[1], 1e-6)
		want := min(p[0], p[1])
		if mgl32.Abs(got-want) >= 1e-6 {
			t.Errorf("SmoothMin(%v, %v, 1e-6) = %v, want ~%v", p[0], p[1], got, want)
		}
	}
}

func TestSmoothMaxMirrorsSmoothMin(t *testing.T) {
	pairs := [][2]float32{{1, 2}, {-3, 5}, {10, -4}, {0.1, 0.15}}
	for _, p := range pairs {
		if got, want := SmoothMax(p[0], p[1], 0.3), -SmoothMin(-p[0], -p[1], 0.3); got != want {
			t.Errorf("SmoothMax(%v, %v) = %v, -SmoothMin(-a,-b) = %v", p[0], p[1], got, want)
		}
	}
}

func TestSmoothMinFilletBounds(t *testing.T) {
	// The fillet only bends the result downward, and never by more than k/4.
	const k = 0.8
	for _, p := range [][2]float32{{0, 0}, {0.1, 0.3}, {-0.2, 0.2}, {1, 1.5}} {
		got := SmoothMin(p[0], p[1], k)
		hard := min(p[0], p[1])
		if got > hard {
			t.Errorf("SmoothMin(%v, %v) = %v above hard min %v", p[0], p[1], got, hard)
		}
		if got < hard-k/4 {
			t.Errorf("SmoothMin(%v, %v) = %v deeper than the k/4 fillet", p[0], p[1], got)
		}
	}
}

func TestSmoothMinFarApartIsExact(t *testing.T) {
	// Beyond |a-b| >= k the blend vanishes entirely.
	if got := SmoothMin(10, 22, 0.5); got != 10 {
		t.Errorf("got %v, want exactly 10", got)
	}
}
