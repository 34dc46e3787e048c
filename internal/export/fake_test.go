package export

import (
	"context"
	"image"
	"image/color"
)

// fakeSurface renders a solid block of width x height CSS pixels.
type fakeSurface struct {
	width, height float64
	fill          color.Color

	cloneErr  error
	dimErr    error
	rasterErr error
	released  int
	rastered  []RasterOptions
}

func (s *fakeSurface) CloneOffscreen(_ context.Context) (Capture, error) {
	if s.cloneErr != nil {
		return nil, s.cloneErr
	}
	return &fakeCapture{s: s}, nil
}

type fakeCapture struct {
	s    *fakeSurface
	done bool
}

func (c *fakeCapture) Dimensions(_ context.Context) (float64, float64, error) {
	return c.s.width, c.s.height, c.s.dimErr
}

func (c *fakeCapture) Rasterize(_ context.Context, opts RasterOptions) (image.Image, error) {
	c.s.rastered = append(c.s.rastered, opts)
	if c.s.rasterErr != nil {
		return nil, c.s.rasterErr
	}
	w, h := int(c.s.width*opts.Scale), int(c.s.height*opts.Scale)
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	if c.s.fill != nil {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.Set(x, y, c.s.fill)
			}
		}
	}
	return img, nil
}

func (c *fakeCapture) Release(_ context.Context) error {
	if c.done {
		return nil
	}
	c.done = true
	c.s.released++
	return nil
}

type failingSaver struct{ err error }

func (s failingSaver) Save(context.Context, string, []byte) (string, error) {
	return "", s.err
}
