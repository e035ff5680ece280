package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Draw converts the internal framebuffer to terminal cells and draws them on
// the screen.
// The framebuffer height should be 2x the terminal height.
func (r *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// Each terminal row represents 2 framebuffer rows
	// We use ▀ (upper half block) with fg=top color and bg=bottom color

	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < r.Width; col++ {
			topColor := r.GetPixel(col, topY)
			botColor := r.GetPixel(col, botY)

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(topColor),
					Bg: rgbaToColor(botColor),
				},
			}
			scr.SetCell(col, row, cell)
		}
	}
}

// DrawText writes a single line of ASCII text at terminal cell (x, y),
// clipped to the screen bounds. It is used for the status overlay.
func DrawText(scr uv.Screen, x, y int, text string, fg, bg color.Color) {
	bounds := scr.Bounds()
	if y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}

	col := x
	for _, ch := range text {
		if col >= bounds.Max.X {
			return
		}
		if col >= bounds.Min.X {
			scr.SetCell(col, y, &uv.Cell{
				Content: string(ch),
				Width:   1,
				Style:   uv.Style{Fg: fg, Bg: bg},
			})
		}
		col++
	}
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}

// Colors for the status overlay
var (
	ColorBlack  = color.RGBA{0, 0, 0, 255}
	ColorGreen  = color.RGBA{0, 255, 0, 255}
	ColorYellow = color.RGBA{255, 255, 0, 255}
	ColorRed    = color.RGBA{255, 0, 0, 255}
)
