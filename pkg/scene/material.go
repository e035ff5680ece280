// Package scene holds the geometry glint casts rays against: materials,
// the sphere and plane primitives, and the Scene that answers nearest-hit
// and shadow queries over them.
package scene

import "github.com/taigrr/glint/pkg/math3d"

// Material holds Phong reflection coefficients. Colors are linear RGB in
// the 0-1 range.
type Material struct {
	Ambient       math3d.Vec3 // ka, applied regardless of shadowing
	Diffuse       math3d.Vec3 // kd, Lambertian term
	Specular      math3d.Vec3 // ks, mirror lobe term
	SpecularPower float64     // Phong exponent, higher is sharper
}
