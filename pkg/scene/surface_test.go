package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/glint/pkg/math3d"
)

const tolerance = 1e-9

var red = matte(math3d.V3(1, 0, 0))

// matte returns a diffuse material with a 20% ambient term.
func matte(color math3d.Vec3) Material {
	return Material{Ambient: color.Scale(0.2), Diffuse: color}
}

func TestSphereIntersect_AimedAtCenter(t *testing.T) {
	tests := []struct {
		name   string
		origin math3d.Vec3
		center math3d.Vec3
		radius float64
	}{
		{"along -z", math3d.V3(0, 0, 0), math3d.V3(0, 0, -7), 2},
		{"along +x", math3d.V3(-10, 1, 1), math3d.V3(3, 1, 1), 0.5},
		{"diagonal", math3d.V3(1, 2, 3), math3d.V3(-4, 6, -2), 1.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSphere(tc.center, tc.radius, red)
			ray := math3d.NewRay(tc.origin, tc.center.Sub(tc.origin))

			hit, ok := s.Intersect(ray)
			require.True(t, ok, "expected hit")

			want := tc.origin.Distance(tc.center) - tc.radius
			assert.InDelta(t, want, hit.T, 1e-9)
			assert.InDelta(t, 1.0, hit.Normal.Len(), tolerance)
			// Outward normal points back toward the ray origin
			assert.Less(t, hit.Normal.Dot(ray.Direction), 0.0)
			assert.Equal(t, red, hit.Material)
		})
	}
}

func TestSphereIntersect_Miss(t *testing.T) {
	s := NewSphere(math3d.V3(0, 0, -5), 1, red)

	misses := []math3d.Ray{
		math3d.NewRay(math3d.V3(0, 3, 0), math3d.V3(0, 0, -1)),
		math3d.NewRay(math3d.V3(2, 0, 0), math3d.V3(0, 1, 0)),
		math3d.NewRay(math3d.V3(0, 0, 0), math3d.V3(1, 1, -0.1)),
	}
	for _, ray := range misses {
		_, ok := s.Intersect(ray)
		assert.False(t, ok, "ray %+v should miss", ray)
	}
}

func TestSphereIntersect_BehindOrigin(t *testing.T) {
	s := NewSphere(math3d.V3(0, 0, 5), 1, red)
	ray := math3d.NewRay(math3d.Zero3(), math3d.V3(0, 0, -1))

	_, ok := s.Intersect(ray)
	assert.False(t, ok, "both roots negative should be a miss")
}

func TestSphereIntersect_FromInside(t *testing.T) {
	s := NewSphere(math3d.Zero3(), 2, red)
	ray := math3d.NewRay(math3d.Zero3(), math3d.V3(1, 0, 0))

	hit, ok := s.Intersect(ray)
	require.True(t, ok)
	assert.InDelta(t, 2.0, hit.T, tolerance)
	assert.InDelta(t, 1.0, hit.Normal.X, tolerance)
}

func TestSphereIntersect_DegenerateRay(t *testing.T) {
	s := NewSphere(math3d.Zero3(), 1, red)
	_, ok := s.Intersect(math3d.NewRay(math3d.V3(0, 0, 3), math3d.Zero3()))
	assert.False(t, ok)
}

func TestPlaneIntersect(t *testing.T) {
	p := NewPlane(-2, red)

	tests := []struct {
		name   string
		origin math3d.Vec3
		dir    math3d.Vec3
		hit    bool
	}{
		{"straight down", math3d.V3(0, 0, 0), math3d.V3(0, -1, 0), true},
		{"oblique down", math3d.V3(1, 3, 2), math3d.V3(0.3, -0.5, -1), true},
		{"from below upward", math3d.V3(0, -5, 0), math3d.V3(0, 1, 1), true},
		{"parallel", math3d.V3(0, 0, 0), math3d.V3(1, 0, -1), false},
		{"parallel on plane", math3d.V3(0, -2, 0), math3d.V3(0, 0, -1), false},
		{"pointing away", math3d.V3(0, 0, 0), math3d.V3(0, 1, -1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ray := math3d.NewRay(tc.origin, tc.dir)
			hit, ok := p.Intersect(ray)
			require.Equal(t, tc.hit, ok)
			if !ok {
				return
			}

			wantT := (p.Height - ray.Origin.Y) / ray.Direction.Y
			assert.InDelta(t, wantT, hit.T, tolerance)
			assert.InDelta(t, p.Height, hit.Point.Y, 1e-9)
			assert.Equal(t, math3d.Up(), hit.Normal)
		})
	}
}

func TestPlaneIntersect_OriginOnPlane(t *testing.T) {
	// t == 0 is accepted by the plane itself; the scene filters it out.
	p := NewPlane(0, red)
	hit, ok := p.Intersect(math3d.NewRay(math3d.Zero3(), math3d.V3(0, -1, 0)))
	require.True(t, ok)
	assert.Zero(t, hit.T)
	assert.False(t, hit.Valid())
}

func TestHitRecordValid(t *testing.T) {
	assert.True(t, HitRecord{T: 0.5}.Valid())
	assert.False(t, HitRecord{T: 0}.Valid())
	assert.False(t, HitRecord{T: -1}.Valid())
	assert.False(t, HitRecord{T: math.Inf(1)}.Valid())
	assert.False(t, HitRecord{T: math.NaN()}.Valid())
}
