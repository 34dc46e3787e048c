package export

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Flatten composites img over an opaque background so no transparent pixel reaches the PDF.
// The result always starts at the origin.
func Flatten(img image.Image, bg color.Color) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}
