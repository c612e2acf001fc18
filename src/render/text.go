package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	textBlack = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
	textGray  = color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}
)

// drawText writes s with the baseline at (x, y).
func drawText(dst *image.RGBA, x, y int, s string, col color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// textWidth measures s in the fixed 7px face.
func textWidth(s string) int {
	return font.MeasureString(basicfont.Face7x13, s).Ceil()
}

// annotateBottom writes a caption line into the bottom padding of an already
// rendered chart image.
func annotateBottom(img image.Image, caption string) image.Image {
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)
	drawText(out, b.Min.X+14, b.Max.Y-8, caption, textGray)
	return out
}
