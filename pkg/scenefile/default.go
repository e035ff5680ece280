package scenefile

// Default returns the built-in scene: three spheres in a row above a floor,
// lit from the upper left.
func Default() Description {
	return Description{
		Camera: CameraSpec{
			Eye:      [3]float64{0, 0, 0},
			Left:     -0.1,
			Right:    0.1,
			Bottom:   -0.1,
			Top:      0.1,
			Distance: 0.1,
		},
		Light: LightSpec{Position: [3]float64{-4, 4, -3}},
		Materials: map[string]MaterialSpec{
			"floor": {
				Ambient: [3]float64{0.2, 0.2, 0.2},
				Diffuse: [3]float64{1, 1, 1},
			},
			"red": {
				Ambient: [3]float64{0.2, 0, 0},
				Diffuse: [3]float64{1, 0, 0},
			},
			"green": {
				Ambient:       [3]float64{0, 0.2, 0},
				Diffuse:       [3]float64{0, 0.5, 0},
				Specular:      [3]float64{0.5, 0.5, 0.5},
				SpecularPower: 32,
			},
			"blue": {
				Ambient: [3]float64{0, 0, 0.2},
				Diffuse: [3]float64{0, 0, 1},
			},
		},
		Surfaces: []SurfaceSpec{
			{Kind: KindSphere, Center: [3]float64{-4, 0, -7}, Radius: 1, Material: "red"},
			{Kind: KindSphere, Center: [3]float64{0, 0, -7}, Radius: 2, Material: "green"},
			{Kind: KindSphere, Center: [3]float64{4, 0, -7}, Radius: 1, Material: "blue"},
			{Kind: KindPlane, Height: -2, Material: "floor"},
		},
	}
}
