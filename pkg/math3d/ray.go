package math3d

// Ray is a half-line with an origin and a unit direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3 // Unit length, or zero for a degenerate ray
}

// NewRay creates a ray, normalizing dir.
// A zero dir produces a degenerate ray that intersects nothing.
func NewRay(origin, dir Vec3) Ray {
	return Ray{
		Origin:    origin,
		Direction: dir.Normalize(),
	}
}

// At returns the point origin + t*direction.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Degenerate reports whether the ray has no direction.
func (r Ray) Degenerate() bool {
	return r.Direction.LenSq() == 0
}
