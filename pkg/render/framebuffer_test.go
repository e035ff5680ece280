package render

import (
	"image/color"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFramebufferPixelBounds(t *testing.T) {
	fb := NewFramebuffer(4, 2)
	assert.Equal(t, color.RGBA{}, fb.GetPixel(1, 1), "new framebuffers are transparent")

	fb.Clear(ColorRed)
	assert.Equal(t, ColorRed, fb.GetPixel(1, 1))
	assert.Equal(t, ColorRed, fb.GetPixel(3, 0))
	assert.Equal(t, color.RGBA{}, fb.GetPixel(4, 0))
	assert.Equal(t, color.RGBA{}, fb.GetPixel(-1, 0))
	assert.Equal(t, color.RGBA{}, fb.GetPixel(9, 9))
}

func TestFramebufferBlitFlipsRows(t *testing.T) {
	// 2x2 buffer: bottom row red/green, top row blue/white
	buf := []float64{
		1, 0, 0, 0, 1, 0,
		0, 0, 1, 1, 1, 1,
	}
	fb := NewFramebuffer(2, 2)
	fb.Blit(buf, 2, 2)

	assert.Equal(t, color.RGBA{0, 0, 255, 255}, fb.GetPixel(0, 0))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, fb.GetPixel(1, 0))
	assert.Equal(t, ColorRed, fb.GetPixel(0, 1))
	assert.Equal(t, ColorGreen, fb.GetPixel(1, 1))
}

func TestFramebufferBlitClampsAndQuantizes(t *testing.T) {
	fb := NewFramebuffer(1, 1)
	fb.Blit([]float64{-0.5, 0.5, 2}, 1, 1)

	got := fb.GetPixel(0, 0)
	assert.Equal(t, uint8(0), got.R)
	assert.InDelta(t, 128, int(got.G), 1)
	assert.Equal(t, uint8(255), got.B)
	assert.Equal(t, uint8(255), got.A)
}

func TestFramebufferBlitShortBuffer(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	fb.Clear(ColorYellow)
	fb.Blit([]float64{1, 1, 1}, 2, 2)

	assert.Equal(t, ColorYellow, fb.GetPixel(0, 0), "short buffers are ignored")
}

func TestFramebufferDraw(t *testing.T) {
	fb := NewFramebuffer(3, 4)
	fb.Clear(ColorBlack)
	fb.Pixels[0] = ColorRed          // top half of cell (0,0)
	fb.Pixels[fb.Width] = ColorGreen // bottom half of cell (0,0)

	scr := uv.NewScreenBuffer(3, 2)
	fb.Draw(scr, scr.Bounds())

	cell := scr.CellAt(0, 0)
	require.NotNil(t, cell)
	assert.Equal(t, "▀", cell.Content)
	assert.Equal(t, color.Color(ColorRed), cell.Style.Fg)
	assert.Equal(t, color.Color(ColorGreen), cell.Style.Bg)

	cell = scr.CellAt(2, 1)
	require.NotNil(t, cell)
	assert.Equal(t, color.Color(ColorBlack), cell.Style.Fg)
}

func TestDrawText(t *testing.T) {
	scr := uv.NewScreenBuffer(5, 1)
	DrawText(scr, 2, 0, "glint", ColorYellow, ColorBlack)

	assert.Equal(t, "g", scr.CellAt(2, 0).Content)
	assert.Equal(t, "i", scr.CellAt(4, 0).Content)
	assert.Equal(t, color.Color(ColorYellow), scr.CellAt(3, 0).Style.Fg)

	// Off-screen rows are ignored
	DrawText(scr, 0, 3, "x", ColorYellow, nil)
}
