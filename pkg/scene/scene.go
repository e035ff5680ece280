package scene

import (
	"math"

	"github.com/taigrr/glint/pkg/math3d"
)

// ShadowEpsilon offsets shadow ray origins along the light direction so a
// point does not shadow itself (shadow acne).
const ShadowEpsilon = 1e-4

// Scene is an ordered list of surfaces. It owns its surfaces and is meant
// to be built fresh for every frame.
type Scene struct {
	surfaces []Surface
}

// New creates a scene holding the given surfaces in order.
func New(surfaces ...Surface) *Scene {
	s := &Scene{}
	for _, sf := range surfaces {
		s.Add(sf)
	}
	return s
}

// Add appends a surface. Nil surfaces are ignored.
func (s *Scene) Add(sf Surface) {
	if sf == nil {
		return
	}
	s.surfaces = append(s.surfaces, sf)
}

// Len returns the number of surfaces.
func (s *Scene) Len() int {
	return len(s.surfaces)
}

// Intersect returns the hit with the smallest positive t over all
// surfaces. It is a linear scan.
func (s *Scene) Intersect(ray math3d.Ray) (HitRecord, bool) {
	var closest HitRecord
	minT := math.Inf(1)
	found := false

	for _, sf := range s.surfaces {
		hit, ok := sf.Intersect(ray)
		if !ok || !hit.Valid() {
			continue
		}
		if hit.T < minT {
			minT = hit.T
			closest = hit
			found = true
		}
	}

	return closest, found
}

// IsInShadow reports whether any surface blocks the segment from point to
// light.
func (s *Scene) IsInShadow(point, light math3d.Vec3) bool {
	toLight := light.Sub(point)
	dist := toLight.Len()
	dir := toLight.Normalize()

	shadowRay := math3d.NewRay(point.Add(dir.Scale(ShadowEpsilon)), dir)
	hit, ok := s.Intersect(shadowRay)
	return ok && hit.T < dist
}
