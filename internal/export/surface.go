package export

import (
	"context"
	"image"
	"image/color"
)

// Surface is a rendered CV that can produce a detached copy of its region for capture.
type Surface interface {
	CloneOffscreen(ctx context.Context) (Capture, error)
}

// Capture is an offscreen clone of the CV region. Release must be called exactly once
// the caller is done, whatever the outcome; implementations make repeated calls a no-op.
type Capture interface {
	// Dimensions returns the layout size of the clone in CSS pixels.
	Dimensions(ctx context.Context) (width, height float64, err error)
	Rasterize(ctx context.Context, opts RasterOptions) (image.Image, error)
	Release(ctx context.Context) error
}

// RasterOptions controls bitmap capture.
type RasterOptions struct {
	// Scale is the device pixel ratio used for capture.
	Scale      float64
	Background color.Color
}
