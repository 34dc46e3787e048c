package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"time"

	"github.com/jonathan/cv-builder/internal/pdfdoc"
)

// Pipeline steps reported through OnProgress and ExportError.Stage.
const (
	StepClone     = "clone"
	StepRasterize = "rasterize"
	StepPaginate  = "paginate"
	StepSerialize = "serialize"
	StepSave      = "save"
)

// DefaultScale is the oversampling factor used for capture.
const DefaultScale = 2.0

const imageName = "cv"

// ProgressEvent represents a progress update during an export.
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when export progress occurs.
type ProgressCallback func(event ProgressEvent)

// WriterFactory creates the PDF writer for one export.
type WriterFactory func(paper pdfdoc.PaperSize, opts pdfdoc.Options) pdfdoc.Writer

// Options holds exporter configuration. Zero values select the defaults.
type Options struct {
	Scale      float64
	Background color.Color
	Paper      pdfdoc.PaperSize
	Creator    string
	Verbose    bool
	OnProgress ProgressCallback
	NewWriter  WriterFactory
	// Now stamps the document creation date.
	Now func() time.Time
}

// Result describes a saved export.
type Result struct {
	FileName     string  `json:"file_name"`
	Location     string  `json:"location"`
	Pages        int     `json:"pages"`
	Bytes        int     `json:"bytes"`
	BitmapWidth  int     `json:"bitmap_width"`
	BitmapHeight int     `json:"bitmap_height"`
	MappedHeight float64 `json:"mapped_height_mm"`
}

// Exporter runs the clone, rasterize, paginate, serialize and save stages.
type Exporter struct {
	saver Saver
	opts  Options
}

// New creates an exporter that hands finished documents to saver.
func New(saver Saver, opts Options) *Exporter {
	if opts.Scale <= 0 {
		opts.Scale = DefaultScale
	}
	if opts.Background == nil {
		opts.Background = color.White
	}
	if opts.Paper.Width <= 0 || opts.Paper.Height <= 0 {
		opts.Paper = pdfdoc.A4
	}
	if opts.NewWriter == nil {
		opts.NewWriter = func(paper pdfdoc.PaperSize, o pdfdoc.Options) pdfdoc.Writer {
			return pdfdoc.NewWriter(paper, o)
		}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Exporter{saver: saver, opts: opts}
}

// Export captures surface and saves the document as fileName.
// Any stage failure is returned as *ExportError and nothing is saved. The offscreen
// clone is released on every path once it exists.
func (e *Exporter) Export(ctx context.Context, surface Surface, fileName string) (*Result, error) {
	if err := ValidateFileName(fileName); err != nil {
		return nil, &ExportError{Stage: StepSave, Cause: fmt.Errorf("%w: %q", err, fileName)}
	}

	capture, err := surface.CloneOffscreen(ctx)
	if err != nil {
		return nil, &ExportError{Stage: StepClone, Cause: err}
	}
	defer func() {
		if rerr := capture.Release(context.WithoutCancel(ctx)); rerr != nil {
			log.Printf("[EXPORT] Warning: failed to release offscreen clone: %v", rerr)
		}
	}()

	width, height, err := capture.Dimensions(ctx)
	if err != nil {
		return nil, &ExportError{Stage: StepClone, Cause: err}
	}
	e.emit(StepClone, fmt.Sprintf("Cloned CV region offscreen (%.0fx%.0f px)", width, height), nil)

	var img image.Image
	if width > 0 && height > 0 {
		raw, err := capture.Rasterize(ctx, RasterOptions{Scale: e.opts.Scale, Background: e.opts.Background})
		if err != nil {
			return nil, &ExportError{Stage: StepRasterize, Cause: err}
		}
		img = Flatten(raw, e.opts.Background)
	}
	res := &Result{FileName: fileName}
	if img != nil {
		res.BitmapWidth, res.BitmapHeight = img.Bounds().Dx(), img.Bounds().Dy()
	}
	e.emit(StepRasterize, fmt.Sprintf("Rasterized at %gx: %dx%d px", e.opts.Scale, res.BitmapWidth, res.BitmapHeight), nil)

	mapped, placements := Paginate(res.BitmapWidth, res.BitmapHeight, e.opts.Paper)
	res.MappedHeight = mapped
	res.Pages = len(placements)
	e.emit(StepPaginate, fmt.Sprintf("Mapped height %.2fmm across %d page(s)", mapped, len(placements)), placements)

	data, err := e.compose(img, mapped, placements)
	if err != nil {
		return nil, &ExportError{Stage: StepSerialize, Cause: err}
	}
	res.Bytes = len(data)
	e.emit(StepSerialize, fmt.Sprintf("Serialized %d page(s), %d bytes", res.Pages, res.Bytes), nil)

	if err := ctx.Err(); err != nil {
		return nil, &ExportError{Stage: StepSave, Cause: err}
	}
	location, err := e.saver.Save(ctx, fileName, data)
	if err != nil {
		return nil, &ExportError{Stage: StepSave, Cause: err}
	}
	res.Location = location
	e.emit(StepSave, "Saved "+location, res)

	if e.opts.Verbose {
		log.Printf("[EXPORT] %s: %d page(s), %d bytes", fileName, res.Pages, res.Bytes)
	}
	return res, nil
}

// compose draws the full bitmap on every page at its placement offset.
// A nil image produces blank pages.
func (e *Exporter) compose(img image.Image, mapped float64, placements []Placement) ([]byte, error) {
	paper := e.opts.Paper
	w := e.opts.NewWriter(paper, pdfdoc.Options{
		Creator:   e.opts.Creator,
		CreatedAt: e.opts.Now(),
	})

	if img != nil {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode bitmap: %w", err)
		}
		if err := w.RegisterPNG(imageName, &buf); err != nil {
			return nil, err
		}
	}

	for _, p := range placements {
		if err := w.AddPage(); err != nil {
			return nil, err
		}
		if img == nil {
			continue
		}
		if err := w.DrawImage(imageName, 0, p.OffsetY, paper.Width, mapped); err != nil {
			return nil, err
		}
	}

	var out bytes.Buffer
	if _, err := w.WriteTo(&out); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (e *Exporter) emit(step, message string, content any) {
	if e.opts.OnProgress != nil {
		e.opts.OnProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}
