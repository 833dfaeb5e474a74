package sdf

import "github.com/go-gl/mathgl/mgl32"

// Sphere is a signed-distance sphere.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

func (s Sphere) Distance(p mgl32.Vec3) float32 {
	return p.Sub(s.Center).Len() - s.Radius
}

func (s Sphere) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	r := mgl32.Vec3{s.Radius, s.Radius, s.Radius}
	return s.Center.Sub(r), s.Center.Add(r)
}

// Box is a signed-distance axis-aligned box.
type Box struct {
	Center     mgl32.Vec3
	HalfExtent mgl32.Vec3
}

func (b Box) Distance(p mgl32.Vec3) float32 {
	d := p.Sub(b.Center)
	q := mgl32.Vec3{
		abs(d.X()) - b.HalfExtent.X(),
		abs(d.Y()) - b.HalfExtent.Y(),
		abs(d.Z()) - b.HalfExtent.Z(),
	}
	outside := mgl32.Vec3{
		max(q.X(), 0),
		max(q.Y(), 0),
		max(q.Z(), 0),
	}.Len()
	inside := min(max(q.X(), max(q.Y(), q.Z())), 0)
	return outside + inside
}

func (b Box) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	return b.Center.Sub(b.HalfExtent), b.Center.Add(b.HalfExtent)
}

// Cylinder is a signed-distance vertical (y-axis) cylinder.
type Cylinder struct {
	Center     mgl32.Vec3
	Radius     float32
	HalfHeight float32
}

func (c Cylinder) Distance(p mgl32.Vec3) float32 {
	d := p.Sub(c.Center)
	radial := mgl32.Vec2{d.X(), d.Z()}.Len() - c.Radius
	axial := abs(d.Y()) - c.HalfHeight
	outside := mgl32.Vec2{
		max(radial, 0),
		max(axial, 0),
	}.Len()
	inside := min(max(radial, axial), 0)
	return outside + inside
}

func (c Cylinder) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	ext := mgl32.Vec3{c.Radius, c.HalfHeight, c.Radius}
	return c.Center.Sub(ext), c.Center.Add(ext)
}
