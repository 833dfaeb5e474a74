// Package sdf defines the signed-distance primitive contract consumed by the
// edit engine, the standard sculpting shapes, and the polynomial smooth
// blending used to combine distances.
package sdf

import "github.com/go-gl/mathgl/mgl32"

// Primitive is a closed-form signed-distance shape. Distance must be pure:
// the engine calls it once per overlapped voxel with world-space points and
// treats the implementation as a black box.
type Primitive interface {
	// Distance returns the signed distance from p to the shape's surface,
	// negative inside.
	Distance(p mgl32.Vec3) float32
	// Bounds returns the shape's world-space axis-aligned bounding box.
	Bounds() (min, max mgl32.Vec3)
}

// Polynomial smooth minimum, https://iquilezles.org/articles/smin
func smooth(a, b, k float32) float32 {
	h := k - abs(a-b)
	if h < 0 {
		h = 0
	}
	return h * h * 0.25 / k
}

// SmoothMin blends min(a, b) with a rounded fillet of width k. As k
// approaches 0 it degenerates to the hard minimum.
func SmoothMin(a, b, k float32) float32 {
	return min(a, b) - smooth(a, b, k)
}

// SmoothMax is the mirror of SmoothMin: -SmoothMin(-a, -b, k).
func SmoothMax(a, b, k float32) float32 {
	return max(a, b) + smooth(a, b, k)
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
