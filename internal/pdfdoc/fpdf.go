package pdfdoc

import (
	"bytes"
	"errors"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

// FpdfWriter implements Writer on top of go-pdf/fpdf.
type FpdfWriter struct {
	doc   *fpdf.Fpdf
	size  PaperSize
	names map[string]bool
}

// Options tunes document metadata.
type Options struct {
	Title   string
	Creator string
	// CreatedAt pins the creation date so output is reproducible. Zero means now.
	CreatedAt time.Time
}

// NewWriter creates a portrait document with zero margins and automatic page breaks off,
// so images are placed exactly where the caller asks.
func NewWriter(size PaperSize, opts Options) *FpdfWriter {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: size.Width, Ht: size.Height},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	if opts.Title != "" {
		doc.SetTitle(opts.Title, true)
	}
	if opts.Creator != "" {
		doc.SetCreator(opts.Creator, true)
	}
	if !opts.CreatedAt.IsZero() {
		doc.SetCreationDate(opts.CreatedAt)
	}
	return &FpdfWriter{doc: doc, size: size, names: make(map[string]bool)}
}

func (w *FpdfWriter) PaperSize() PaperSize {
	return w.size
}

func (w *FpdfWriter) AddPage() error {
	w.doc.AddPage()
	return w.check("add page")
}

func (w *FpdfWriter) RegisterPNG(name string, r io.Reader) error {
	if name == "" {
		return &WriteError{Op: "register image", Cause: errors.New("image name is empty")}
	}
	w.doc.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, r)
	if err := w.check("register image"); err != nil {
		return err
	}
	w.names[name] = true
	return nil
}

func (w *FpdfWriter) DrawImage(name string, x, y, width, height float64) error {
	if !w.names[name] {
		return &WriteError{Op: "draw image", Cause: errors.New("image " + name + " is not registered")}
	}
	if w.doc.PageCount() == 0 {
		return &WriteError{Op: "draw image", Cause: errors.New("no page to draw on")}
	}
	w.doc.ImageOptions(name, x, y, width, height, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	return w.check("draw image")
}

func (w *FpdfWriter) PageCount() int {
	return w.doc.PageCount()
}

// WriteTo serializes the document. The writer cannot be used afterwards.
func (w *FpdfWriter) WriteTo(out io.Writer) (int64, error) {
	if err := w.check("serialize"); err != nil {
		return 0, err
	}
	var buf bytes.Buffer
	if err := w.doc.Output(&buf); err != nil {
		return 0, &WriteError{Op: "serialize", Cause: err}
	}
	return buf.WriteTo(out)
}

func (w *FpdfWriter) check(op string) error {
	if w.doc.Err() {
		return &WriteError{Op: op, Cause: w.doc.Error()}
	}
	return nil
}
