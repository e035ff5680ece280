package render

import (
	"math"

	"github.com/taigrr/glint/pkg/math3d"
	"github.com/taigrr/glint/pkg/scene"
)

// Occluder answers point-to-light visibility queries. *scene.Scene
// implements it.
type Occluder interface {
	IsInShadow(point, light math3d.Vec3) bool
}

// Shade evaluates Phong direct lighting for a hit lit by a point light.
// The ambient term is always applied; the diffuse and specular terms are
// dropped entirely when the point is in shadow. The result is clamped to
// [0,1].
func Shade(hit scene.HitRecord, light, eye math3d.Vec3, occ Occluder) math3d.Vec3 {
	return phong(hit, light, eye, occ.IsInShadow(hit.Point, light))
}

func phong(hit scene.HitRecord, light, eye math3d.Vec3, shadowed bool) math3d.Vec3 {
	m := hit.Material
	color := m.Ambient

	if !shadowed {
		l := light.Sub(hit.Point).Normalize()
		v := eye.Sub(hit.Point).Normalize()
		r := l.Negate().Reflect(hit.Normal)

		diffuse := math.Max(hit.Normal.Dot(l), 0)
		specular := math.Pow(math.Max(r.Dot(v), 0), m.SpecularPower)

		color = color.
			Add(m.Diffuse.Scale(diffuse)).
			Add(m.Specular.Scale(specular))
	}

	return color.Clamp(0, 1)
}
