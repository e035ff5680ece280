package scenefile

import (
	"fmt"
	"math"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/glint/pkg/math3d"
)

// DefaultMaterialName is assigned to glTF meshes without a material.
const DefaultMaterialName = "default"

// LoadGLTF opens a .gltf or .glb file and converts it to a description.
func LoadGLTF(path string) (Description, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return Description{}, fmt.Errorf("open gltf: %w", err)
	}
	return FromGLTF(doc)
}

// FromGLTF maps a glTF document onto the sphere and plane model.
//
// Node transforms are read from translation and scale only and the node
// hierarchy is flattened. Nodes whose name starts with "plane", "floor" or
// "ground" become planes at their translated height. Other mesh nodes become
// spheres fitted to their POSITION accessor bounds. A node starting with "light" sets
// the light position and the first perspective camera node sets the eye and
// image plane. Anything missing falls back to Default.
func FromGLTF(doc *gltf.Document) (Description, error) {
	def := Default()
	d := Description{
		Camera:    def.Camera,
		Light:     def.Light,
		Materials: map[string]MaterialSpec{DefaultMaterialName: def.Materials["floor"]},
	}

	names := make([]string, len(doc.Materials))
	for i, m := range doc.Materials {
		name := m.Name
		if name == "" || name == DefaultMaterialName {
			name = fmt.Sprintf("material%d", i)
		}
		names[i] = name
		d.Materials[name] = materialFromGLTF(m)
	}

	cameraSet := false
	for _, node := range doc.Nodes {
		lower := strings.ToLower(node.Name)

		switch {
		case node.Camera != nil:
			if cameraSet || *node.Camera >= len(doc.Cameras) {
				continue
			}
			if c, ok := cameraFromGLTF(doc.Cameras[*node.Camera], node.Translation); ok {
				d.Camera = c
				cameraSet = true
			}
			continue
		case strings.HasPrefix(lower, "light"):
			d.Light.Position = node.Translation
			continue
		}

		if node.Mesh == nil || *node.Mesh >= len(doc.Meshes) {
			continue
		}
		mesh := doc.Meshes[*node.Mesh]
		material := DefaultMaterialName
		if idx, ok := meshMaterial(mesh); ok && idx < len(names) {
			material = names[idx]
		}

		if isPlaneName(lower) {
			d.Surfaces = append(d.Surfaces, SurfaceSpec{
				Kind:     KindPlane,
				Height:   node.Translation[1],
				Material: material,
			})
			continue
		}

		center, radius := fitSphere(doc, mesh, node)
		d.Surfaces = append(d.Surfaces, SurfaceSpec{
			Kind:     KindSphere,
			Center:   arr(center),
			Radius:   radius,
			Material: material,
		})
	}

	if err := d.Validate(); err != nil {
		return Description{}, err
	}
	return d, nil
}

func isPlaneName(name string) bool {
	for _, prefix := range []string{"plane", "floor", "ground"} {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// meshMaterial returns the material of the first primitive that has one.
func meshMaterial(m *gltf.Mesh) (int, bool) {
	for _, prim := range m.Primitives {
		if prim.Material != nil {
			return *prim.Material, true
		}
	}
	return 0, false
}

// fitSphere places a sphere at the center of the node's scaled and
// translated POSITION bounds, with the largest half extent as its radius.
// Sphere meshes map back to the same sphere; other shapes are
// approximated. Meshes without bounds are treated as unit spheres.
func fitSphere(doc *gltf.Document, m *gltf.Mesh, node *gltf.Node) (math3d.Vec3, float64) {
	scale := vec(node.Scale)
	if scale == math3d.Zero3() {
		scale = math3d.Splat(1)
	}
	transform := math3d.Translate(vec(node.Translation)).Mul(math3d.Scale(scale))

	local, ok := positionBounds(doc, m)
	if !ok {
		local = math3d.NewBounds(math3d.Splat(-1), math3d.Splat(1))
	}
	world := local.Transform(transform)

	radius := world.InscribedRadius()
	if radius <= 0 {
		radius = 1
	}
	return world.Center(), radius
}

func positionBounds(doc *gltf.Document, m *gltf.Mesh) (math3d.Bounds, bool) {
	for _, prim := range m.Primitives {
		idx, found := prim.Attributes[gltf.POSITION]
		if !found || idx >= len(doc.Accessors) {
			continue
		}
		acc := doc.Accessors[idx]
		if len(acc.Min) < 3 || len(acc.Max) < 3 {
			continue
		}
		return math3d.NewBounds(
			math3d.V3(acc.Min[0], acc.Min[1], acc.Min[2]),
			math3d.V3(acc.Max[0], acc.Max[1], acc.Max[2]),
		), true
	}
	return math3d.Bounds{}, false
}

// cameraFromGLTF builds an image plane at znear from a perspective camera.
// glTF cameras look down -Z, which matches the renderer.
func cameraFromGLTF(c *gltf.Camera, eye [3]float64) (CameraSpec, bool) {
	p := c.Perspective
	if p == nil || p.Yfov <= 0 || p.Znear <= 0 {
		return CameraSpec{}, false
	}
	aspect := 1.0
	if p.AspectRatio != nil && *p.AspectRatio > 0 {
		aspect = *p.AspectRatio
	}
	top := p.Znear * math.Tan(p.Yfov/2)
	right := top * aspect
	return CameraSpec{
		Eye:      eye,
		Left:     -right,
		Right:    right,
		Bottom:   -top,
		Top:      top,
		Distance: p.Znear,
	}, true
}

// materialFromGLTF approximates a metallic-roughness material with Phong
// coefficients. Rough surfaces lose their highlight, metals tint it.
func materialFromGLTF(m *gltf.Material) MaterialSpec {
	base := math3d.Splat(1)
	metallic, roughness := 1.0, 1.0
	if pbr := m.PBRMetallicRoughness; pbr != nil {
		if pbr.BaseColorFactor != nil {
			f := *pbr.BaseColorFactor
			base = math3d.V3(f[0], f[1], f[2])
		}
		if pbr.MetallicFactor != nil {
			metallic = *pbr.MetallicFactor
		}
		if pbr.RoughnessFactor != nil {
			roughness = *pbr.RoughnessFactor
		}
	}
	metallic = math.Min(math.Max(metallic, 0), 1)
	roughness = math.Min(math.Max(roughness, 0), 1)

	specular := math3d.Splat(1).Lerp(base, metallic).Scale(1 - roughness)
	power := 0.0
	if roughness < 1 {
		power = math.Min(2/math.Max(roughness*roughness, 1e-3)-2, 512)
	}

	return MaterialSpec{
		Ambient:       arr(base.Scale(0.2)),
		Diffuse:       arr(base.Scale(1 - metallic)),
		Specular:      arr(specular),
		SpecularPower: power,
	}
}
