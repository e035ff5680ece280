package render

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Framebuffer is a 2D array of 8-bit pixels that can be drawn to the
// terminal. Row 0 is the top row. Height is twice the terminal rows since
// each cell shows two pixels with a half-block character.
type Framebuffer struct {
	Width  int          // Width in "pixels" (same as terminal columns)
	Height int          // Height in "pixels" (2x terminal rows due to half-blocks)
	Pixels []color.RGBA // Row-major pixel data
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
// Height should be 2x the desired terminal rows for half-block rendering.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
	}
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	for i := range fb.Pixels {
		fb.Pixels[i] = c
	}
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// Blit copies a render buffer (width*height*3 floats, row 0 at the bottom)
// into the framebuffer, flipping rows so the image is upright. Values are
// clamped to [0,1] and quantized to 8 bits; nothing else is changed.
// Pixels outside the overlap of the two sizes are left untouched.
func (fb *Framebuffer) Blit(buf []float64, width, height int) {
	if len(buf) < width*height*3 {
		return
	}

	for j := range min(height, fb.Height) {
		y := fb.Height - 1 - j
		for i := range min(width, fb.Width) {
			k := (j*width + i) * 3
			fb.Pixels[y*fb.Width+i] = floatToRGBA(buf[k], buf[k+1], buf[k+2])
		}
	}
}

// floatToRGBA quantizes a linear [0,1] triple to an opaque 8-bit color.
func floatToRGBA(r, g, b float64) color.RGBA {
	c := colorful.Color{R: r, G: g, B: b}.Clamped()
	r8, g8, b8 := c.RGB255()
	return color.RGBA{r8, g8, b8, 255}
}
