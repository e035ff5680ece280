package scene

import (
	"math"

	"github.com/taigrr/glint/pkg/math3d"
)

// HitRecord describes where a ray met a surface.
type HitRecord struct {
	T        float64     // Distance along the ray
	Point    math3d.Vec3 // Intersection position
	Normal   math3d.Vec3 // Unit surface normal
	Material Material    // Copy of the hit surface's material
}

// Valid reports whether the record can take part in a nearest-hit query:
// t must be finite and strictly positive.
func (h HitRecord) Valid() bool {
	return h.T > 0 && !math.IsInf(h.T, 0) && !math.IsNaN(h.T)
}

// Surface is a primitive that can be intersected by a ray.
type Surface interface {
	// Intersect returns the hit of ray against the surface, or false if the
	// ray misses. Misses are never errors.
	Intersect(ray math3d.Ray) (HitRecord, bool)
}

// Sphere is a sphere primitive.
type Sphere struct {
	Center   math3d.Vec3
	Radius   float64
	Material Material
}

// NewSphere creates a sphere.
func NewSphere(center math3d.Vec3, radius float64, material Material) Sphere {
	return Sphere{
		Center:   center,
		Radius:   radius,
		Material: material,
	}
}

// Intersect solves a·t² + b·t + c = 0 for the ray-sphere equation.
// The nearer root is preferred; the farther root is used when the nearer
// one lies behind the origin (the origin is inside the sphere).
func (s Sphere) Intersect(ray math3d.Ray) (HitRecord, bool) {
	if ray.Degenerate() {
		return HitRecord{}, false
	}
	oc := ray.Origin.Sub(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return HitRecord{}, false
	}

	sqrtD := math.Sqrt(discriminant)
	t := (-b - sqrtD) / (2 * a)
	if t < 0 {
		t = (-b + sqrtD) / (2 * a)
	}
	if t < 0 {
		return HitRecord{}, false
	}

	point := ray.At(t)
	return HitRecord{
		T:        t,
		Point:    point,
		Normal:   point.Sub(s.Center).Normalize(),
		Material: s.Material,
	}, true
}

// Plane is an infinite horizontal plane at a fixed height, facing up.
type Plane struct {
	Height   float64
	Material Material
}

// NewPlane creates a horizontal plane at y = height.
func NewPlane(height float64, material Material) Plane {
	return Plane{
		Height:   height,
		Material: material,
	}
}

// Intersect hits the plane at t = (height - origin.y) / direction.y.
// Rays parallel to the plane miss; t = 0 is accepted.
func (p Plane) Intersect(ray math3d.Ray) (HitRecord, bool) {
	if ray.Direction.Y == 0 {
		return HitRecord{}, false
	}

	t := (p.Height - ray.Origin.Y) / ray.Direction.Y
	if t < 0 {
		return HitRecord{}, false
	}

	return HitRecord{
		T:        t,
		Point:    ray.At(t),
		Normal:   math3d.Up(),
		Material: p.Material,
	}, true
}
