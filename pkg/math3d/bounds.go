package math3d

import "math"

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min Vec3
	Max Vec3
}

// NewBounds creates bounds from min and max points.
func NewBounds(min, max Vec3) Bounds {
	return Bounds{Min: min, Max: max}
}

// Center returns the center of the box.
func (b Bounds) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the box.
func (b Bounds) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// HalfSize returns half the dimensions (extents from center).
func (b Bounds) HalfSize() Vec3 {
	return b.Size().Scale(0.5)
}

// InscribedRadius returns the largest half extent: the radius of a sphere
// that touches the box's widest faces. It does not enclose the corners.
func (b Bounds) InscribedRadius() float64 {
	h := b.HalfSize()
	return math.Max(h.X, math.Max(h.Y, h.Z))
}

// Transform returns bounds enclosing all 8 transformed corners.
func (b Bounds) Transform(m Mat4) Bounds {
	corners := [8]Vec3{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
	}

	transformed := m.MulVec3(corners[0])
	newMin, newMax := transformed, transformed
	for _, c := range corners[1:] {
		transformed = m.MulVec3(c)
		newMin = newMin.Min(transformed)
		newMax = newMax.Max(transformed)
	}
	return Bounds{Min: newMin, Max: newMax}
}
