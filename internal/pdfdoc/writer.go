package pdfdoc

import "io"

// Writer is an append-only PDF writer. Pages are added in order and cannot be revisited.
// Coordinates are in millimetres from the top-left corner of the current page.
type Writer interface {
	PaperSize() PaperSize

	AddPage() error
	// RegisterPNG makes a PNG image available under name. Registering once and drawing
	// on many pages embeds the image data a single time.
	RegisterPNG(name string, r io.Reader) error
	// DrawImage places a registered image on the current page. Parts outside the
	// page box are clipped by the viewer.
	DrawImage(name string, x, y, w, h float64) error

	PageCount() int
	WriteTo(w io.Writer) (int64, error)
}
