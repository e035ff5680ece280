package render

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taigrr/glint/pkg/math3d"
	"github.com/taigrr/glint/pkg/scene"
)

var shiny = scene.Material{
	Ambient:       math3d.V3(0, 0.2, 0),
	Diffuse:       math3d.V3(0, 0.5, 0),
	Specular:      math3d.V3(0.5, 0.5, 0.5),
	SpecularPower: 32,
}

// occluderFunc adapts a constant answer to the Occluder interface.
type occluderFunc bool

func (o occluderFunc) IsInShadow(_, _ math3d.Vec3) bool { return bool(o) }

func TestShade_Unshadowed(t *testing.T) {
	hit := scene.HitRecord{
		T:        5,
		Point:    math3d.V3(0, 0, -5),
		Normal:   math3d.V3(0, 0, 1),
		Material: shiny,
	}
	light := math3d.V3(0, 0, 0)
	eye := math3d.V3(0, 0, 0)

	// Light and eye straight along the normal: diffuse and specular are 1
	got := Shade(hit, light, eye, occluderFunc(false))
	want := math3d.V3(0.5, 1, 0.5)

	assert.InDelta(t, want.X, got.X, 1e-12)
	assert.InDelta(t, want.Y, got.Y, 1e-12)
	assert.InDelta(t, want.Z, got.Z, 1e-12)
}

func TestShade_ShadowedIsAmbientOnly(t *testing.T) {
	hit := scene.HitRecord{
		T:        5,
		Point:    math3d.V3(0, 0, -5),
		Normal:   math3d.V3(0, 0, 1),
		Material: shiny,
	}

	got := Shade(hit, math3d.V3(-4, 4, -3), math3d.Zero3(), occluderFunc(true))
	assert.Equal(t, shiny.Ambient, got)

	bright := shiny
	bright.Ambient = math3d.V3(1.5, -0.5, 0.3)
	hit.Material = bright
	got = Shade(hit, math3d.V3(-4, 4, -3), math3d.Zero3(), occluderFunc(true))
	assert.Equal(t, math3d.V3(1, 0, 0.3), got, "ambient is clamped")
}

func TestShade_LightBehindSurface(t *testing.T) {
	hit := scene.HitRecord{
		Point:    math3d.V3(0, -2, -5),
		Normal:   math3d.Up(),
		Material: shiny,
	}

	// Light below the floor: N·L < 0 so only ambient remains
	got := Shade(hit, math3d.V3(0, -10, -5), math3d.Zero3(), occluderFunc(false))
	assert.InDelta(t, shiny.Ambient.Y, got.Y, 1e-12)
	assert.InDelta(t, 0.0, got.X, 1e-12)
}

func TestShade_UsesSceneForShadows(t *testing.T) {
	floor := scene.NewPlane(-2, shiny)
	hit, ok := floor.Intersect(math3d.NewRay(math3d.Zero3(), math3d.V3(0, -1, -2.5)))
	assert.True(t, ok)

	light := math3d.V3(0, 4, -5)
	open := scene.New(floor)
	blocked := scene.New(floor, scene.NewSphere(math3d.V3(0, 1, -5), 1, shiny))

	assert.NotEqual(t, shiny.Ambient, Shade(hit, light, math3d.Zero3(), open))
	assert.Equal(t, shiny.Ambient, Shade(hit, light, math3d.Zero3(), blocked))
}

func TestShade_OutputInUnitRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	randVec := func(scale float64) math3d.Vec3 {
		return math3d.V3(rng.Float64()*scale, rng.Float64()*scale, rng.Float64()*scale)
	}

	for range 500 {
		m := scene.Material{
			Ambient:       randVec(1.5),
			Diffuse:       randVec(3),
			Specular:      randVec(3),
			SpecularPower: rng.Float64() * 64,
		}
		n := randVec(2).Sub(math3d.Splat(1)).Normalize()
		hit := scene.HitRecord{T: 1, Point: randVec(4), Normal: n, Material: m}
		light := randVec(10).Sub(math3d.Splat(5))

		c := Shade(hit, light, math3d.Zero3(), occluderFunc(rng.IntN(2) == 0))
		for _, ch := range []float64{c.X, c.Y, c.Z} {
			assert.False(t, math.IsNaN(ch))
			assert.GreaterOrEqual(t, ch, 0.0)
			assert.LessOrEqual(t, ch, 1.0)
		}
	}
}
