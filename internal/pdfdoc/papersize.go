package pdfdoc

// PaperSize describes a page in millimetres.
type PaperSize struct {
	Name   string
	Width  float64
	Height float64
}

// A4 is the only page format the exporter produces.
var A4 = PaperSize{Name: "A4", Width: 210, Height: 297}
