// Package scenefile describes glint scenes as data: a camera, a point light,
// named materials and an ordered list of surfaces. Descriptions come from
// TOML files, glTF documents or the built-in default, and are turned into a
// fresh scene.Scene for every frame.
package scenefile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/taigrr/glint/pkg/math3d"
	"github.com/taigrr/glint/pkg/render"
	"github.com/taigrr/glint/pkg/scene"
)

// Errors returned while validating or loading descriptions.
var (
	ErrUnknownMaterial   = errors.New("unknown material")
	ErrInvalidSurface    = errors.New("invalid surface")
	ErrInvalidMaterial   = errors.New("invalid material")
	ErrUnsupportedFormat = errors.New("unsupported scene format")
)

// Surface kinds.
const (
	KindSphere = "sphere"
	KindPlane  = "plane"
)

// Description is the serializable form of a scene.
type Description struct {
	Samples   int                     `toml:"samples,omitempty"` // Samples per pixel, 0 for the renderer default
	Camera    CameraSpec              `toml:"camera"`
	Light     LightSpec               `toml:"light"`
	Materials map[string]MaterialSpec `toml:"materials"`
	Surfaces  []SurfaceSpec           `toml:"surface"`
}

// CameraSpec mirrors render.Camera.
type CameraSpec struct {
	Eye      [3]float64 `toml:"eye"`
	Left     float64    `toml:"left"`
	Right    float64    `toml:"right"`
	Bottom   float64    `toml:"bottom"`
	Top      float64    `toml:"top"`
	Distance float64    `toml:"distance"`
}

// LightSpec places the point light.
type LightSpec struct {
	Position [3]float64 `toml:"position"`
}

// MaterialSpec mirrors scene.Material.
type MaterialSpec struct {
	Ambient       [3]float64 `toml:"ambient"`
	Diffuse       [3]float64 `toml:"diffuse"`
	Specular      [3]float64 `toml:"specular"`
	SpecularPower float64    `toml:"specular_power"`
}

// SurfaceSpec is one primitive. Spheres use Center and Radius, planes use
// Height.
type SurfaceSpec struct {
	Kind     string     `toml:"kind"`
	Center   [3]float64 `toml:"center,omitempty"`
	Radius   float64    `toml:"radius,omitempty"`
	Height   float64    `toml:"height,omitempty"`
	Material string     `toml:"material"`
}

func vec(a [3]float64) math3d.Vec3 {
	return math3d.V3(a[0], a[1], a[2])
}

func arr(v math3d.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// Material converts m to a scene material.
func (m MaterialSpec) Material() scene.Material {
	return scene.Material{
		Ambient:       vec(m.Ambient),
		Diffuse:       vec(m.Diffuse),
		Specular:      vec(m.Specular),
		SpecularPower: m.SpecularPower,
	}
}

// Validate rejects coefficients that would put NaN into a render: any
// non-finite color and a negative or non-finite specular power.
func (m MaterialSpec) Validate() error {
	for _, c := range []struct {
		name  string
		value [3]float64
	}{
		{"ambient", m.Ambient},
		{"diffuse", m.Diffuse},
		{"specular", m.Specular},
	} {
		if !vec(c.value).IsFinite() {
			return fmt.Errorf("%w: non-finite %s %v", ErrInvalidMaterial, c.name, c.value)
		}
	}
	if !(m.SpecularPower >= 0) || math.IsInf(m.SpecularPower, 1) {
		return fmt.Errorf("%w: specular power %v", ErrInvalidMaterial, m.SpecularPower)
	}
	return nil
}

// RenderCamera returns the validated camera.
func (d Description) RenderCamera() (render.Camera, error) {
	c := d.Camera
	cam := render.NewCamera(vec(c.Eye), c.Left, c.Right, c.Bottom, c.Top, c.Distance)
	if err := cam.Validate(); err != nil {
		return render.Camera{}, err
	}
	return cam, nil
}

// LightPosition returns the point light position.
func (d Description) LightPosition() math3d.Vec3 {
	return vec(d.Light.Position)
}

// Validate checks the camera, the light, every material and every surface.
func (d Description) Validate() error {
	if _, err := d.RenderCamera(); err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	if !d.LightPosition().IsFinite() {
		return fmt.Errorf("light: non-finite position %v", d.Light.Position)
	}
	names := make([]string, 0, len(d.Materials))
	for name := range d.Materials {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if err := d.Materials[name].Validate(); err != nil {
			return fmt.Errorf("material %q: %w", name, err)
		}
	}
	for i, s := range d.Surfaces {
		if err := d.validateSurface(s); err != nil {
			return fmt.Errorf("surface %d: %w", i, err)
		}
	}
	return nil
}

func (d Description) validateSurface(s SurfaceSpec) error {
	if _, ok := d.Materials[s.Material]; !ok {
		return fmt.Errorf("%w %q", ErrUnknownMaterial, s.Material)
	}
	switch s.Kind {
	case KindSphere:
		if !vec(s.Center).IsFinite() {
			return fmt.Errorf("%w: sphere center %v", ErrInvalidSurface, s.Center)
		}
		if !(s.Radius > 0) || math.IsInf(s.Radius, 1) {
			return fmt.Errorf("%w: sphere radius %v", ErrInvalidSurface, s.Radius)
		}
	case KindPlane:
		if math.IsNaN(s.Height) || math.IsInf(s.Height, 0) {
			return fmt.Errorf("%w: plane height %v", ErrInvalidSurface, s.Height)
		}
	default:
		return fmt.Errorf("%w: kind %q", ErrInvalidSurface, s.Kind)
	}
	return nil
}

// Build validates the description and returns a new scene holding its
// surfaces in order. Each call allocates a fresh scene.
func (d Description) Build() (*scene.Scene, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	sc := scene.New()
	for _, s := range d.Surfaces {
		mat := d.Materials[s.Material].Material()
		switch s.Kind {
		case KindSphere:
			sc.Add(scene.NewSphere(vec(s.Center), s.Radius, mat))
		case KindPlane:
			sc.Add(scene.NewPlane(s.Height, mat))
		}
	}
	return sc, nil
}

// Parse decodes a TOML description. Unknown keys are rejected.
func Parse(r io.Reader) (Description, error) {
	var d Description
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return Description{}, fmt.Errorf("decode toml: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Description{}, err
	}
	return d, nil
}

// Encode writes d as TOML.
func Encode(w io.Writer, d Description) error {
	enc := toml.NewEncoder(w).SetIndentTables(true)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode toml: %w", err)
	}
	return nil
}

// Load reads a description from a .toml, .gltf or .glb file.
func Load(path string) (Description, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		f, err := os.Open(path)
		if err != nil {
			return Description{}, fmt.Errorf("open scene: %w", err)
		}
		defer f.Close()
		return Parse(f)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return Description{}, fmt.Errorf("%w: %s (use .toml, .gltf or .glb)", ErrUnsupportedFormat, ext)
	}
}
