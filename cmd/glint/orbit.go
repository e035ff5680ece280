package main

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/glint/pkg/math3d"
	"github.com/taigrr/glint/pkg/scenefile"
)

const (
	orbitStep     = math.Pi / 12
	maxPitch      = 1.2
	settleEpsilon = 1e-3
)

// OrbitAxis eases an angle toward its target with a critically damped spring.
type OrbitAxis struct {
	Position float64
	Velocity float64
	Target   float64
	spring   harmonica.Spring
}

// NewOrbitAxis creates an axis at rest on zero.
func NewOrbitAxis(fps int) OrbitAxis {
	return OrbitAxis{
		// Frequency 6.0 settles in well under a second without overshoot
		spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Update advances the spring by one frame.
func (a *OrbitAxis) Update() {
	a.Position, a.Velocity = a.spring.Update(a.Position, a.Velocity, a.Target)
	if a.Settled() {
		a.Position, a.Velocity = a.Target, 0
	}
}

// Settled reports whether the axis has reached its target.
func (a OrbitAxis) Settled() bool {
	return math.Abs(a.Position-a.Target) < settleEpsilon && math.Abs(a.Velocity) < settleEpsilon
}

// LightOrbit swings the point light around a pivot. Yaw turns about the
// vertical axis through the pivot, pitch tilts toward or away from the camera.
type LightOrbit struct {
	Yaw, Pitch OrbitAxis
	base       math3d.Vec3
	pivot      math3d.Vec3
	fps        int
}

// NewLightOrbit starts an orbit at the light's rest position.
func NewLightOrbit(base, pivot math3d.Vec3, fps int) *LightOrbit {
	return &LightOrbit{
		Yaw:   NewOrbitAxis(fps),
		Pitch: NewOrbitAxis(fps),
		base:  base,
		pivot: pivot,
		fps:   fps,
	}
}

// Nudge moves the orbit targets by whole steps.
func (o *LightOrbit) Nudge(yawSteps, pitchSteps int) {
	o.Yaw.Target += float64(yawSteps) * orbitStep
	o.Pitch.Target = math.Max(-maxPitch, math.Min(maxPitch, o.Pitch.Target+float64(pitchSteps)*orbitStep))
}

// Reset eases the light back to its rest position.
func (o *LightOrbit) Reset() {
	o.Yaw.Target = 0
	o.Pitch.Target = 0
}

// Rebase changes the rest position and pivot, keeping the current angles.
func (o *LightOrbit) Rebase(base, pivot math3d.Vec3) {
	o.base = base
	o.pivot = pivot
}

// Update advances both springs and reports whether the light is still moving.
func (o *LightOrbit) Update() bool {
	o.Yaw.Update()
	o.Pitch.Update()
	return !o.Settled()
}

// Settled reports whether both axes are at rest.
func (o *LightOrbit) Settled() bool {
	return o.Yaw.Settled() && o.Pitch.Settled()
}

// Position returns the current light position.
func (o *LightOrbit) Position() math3d.Vec3 {
	transform := math3d.Translate(o.pivot).
		Mul(math3d.RotateY(o.Yaw.Position)).
		Mul(math3d.RotateX(o.Pitch.Position)).
		Mul(math3d.Translate(o.pivot.Negate()))
	return transform.MulVec3(o.base)
}

// orbitPivot picks the point the light circles: the mean sphere center, or
// a point in front of the eye when the scene has no spheres.
func orbitPivot(d scenefile.Description) math3d.Vec3 {
	var sum math3d.Vec3
	n := 0
	for _, s := range d.Surfaces {
		if s.Kind != scenefile.KindSphere {
			continue
		}
		sum = sum.Add(math3d.V3(s.Center[0], s.Center[1], s.Center[2]))
		n++
	}
	if n > 0 {
		return sum.Div(float64(n))
	}
	eye := math3d.V3(d.Camera.Eye[0], d.Camera.Eye[1], d.Camera.Eye[2])
	return eye.Add(math3d.V3(0, 0, -7))
}
