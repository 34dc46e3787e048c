package export

import "github.com/jonathan/cv-builder/internal/pdfdoc"

// Placement positions the full bitmap on one page. OffsetY is in millimetres and is
// zero or negative: page k shows the slice of the image starting k page heights down.
type Placement struct {
	Page    int
	OffsetY float64
}

// Paginate maps a bitmap of width x height pixels to the page width and returns its scaled
// height together with one placement per page. A page is added while any height is left
// over, so an image exactly one page tall yields a single page. Empty bitmaps yield one
// placement and a mapped height of zero.
func Paginate(width, height int, paper pdfdoc.PaperSize) (float64, []Placement) {
	if width <= 0 || height <= 0 {
		return 0, []Placement{{Page: 0, OffsetY: 0}}
	}

	mapped := float64(height) * paper.Width / float64(width)
	placements := []Placement{{Page: 0, OffsetY: 0}}

	heightLeft := mapped - paper.Height
	for heightLeft > 0 {
		placements = append(placements, Placement{
			Page:    len(placements),
			OffsetY: heightLeft - mapped,
		})
		heightLeft -= paper.Height
	}
	return mapped, placements
}
