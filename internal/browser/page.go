package browser

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/preview"
)

// RegionID is the element the page clones for export.
const RegionID = preview.RegionID

// parkedStyle keeps a clone host left of the document, outside anything that scrolls.
const parkedStyle = "left:-10000px;top:0"

// cloneScript copies the region into a parked host element with the same width and
// styling as the preview.
const cloneScript = `(() => {
  const src = document.getElementById(%q);
  if (!src) { throw new Error("element #" + %q + " not found"); }
  const host = document.createElement("div");
  host.id = %q;
  host.setAttribute("aria-hidden", "true");
  host.style.cssText = "position:absolute;%s;width:" + src.offsetWidth + "px;background:#ffffff;pointer-events:none;";
  const clone = src.cloneNode(true);
  clone.removeAttribute("id");
  clone.style.margin = "0";
  clone.style.boxShadow = "none";
  clone.style.borderRadius = "0";
  host.appendChild(clone);
  document.body.appendChild(host);
  return true;
})()`

// placeScript moves a clone host below the page content for a screenshot, or back to
// its parked position. Screenshot clips cannot reach negative page coordinates.
const placeScript = `((id, show) => {
  const host = document.getElementById(id);
  if (!host) { throw new Error("element #" + id + " not found"); }
  if (show) {
    const top = document.documentElement.scrollHeight + 200;
    host.style.left = "0px";
    host.style.top = top + "px";
  } else {
    host.style.left = "-10000px";
    host.style.top = "0px";
  }
  return true;
})(%q, %t)`

const rectScript = `(() => {
  const el = document.getElementById(%q);
  if (!el) { throw new Error("element #" + %q + " not found"); }
  const r = el.getBoundingClientRect();
  return { x: r.left + window.scrollX, y: r.top + window.scrollY, width: r.width, height: r.height };
})()`

const removeScript = `(() => {
  const el = document.getElementById(%q);
  if (el) { el.remove(); }
  return true;
})()`

// Page is one loaded preview. It implements export.Surface.
type Page struct {
	renderer *Renderer
	ctx      context.Context
	cancel   context.CancelFunc
}

// Close closes the tab.
func (p *Page) Close() {
	p.cancel()
}

// CloneOffscreen copies the CV region out of view and returns a handle for capturing it.
func (p *Page) CloneOffscreen(ctx context.Context) (export.Capture, error) {
	id := "cv-export-" + uuid.NewString()
	var ok bool
	js := fmt.Sprintf(cloneScript, RegionID, RegionID, id, parkedStyle)
	if err := p.renderer.run(ctx, p.ctx, chromedp.Evaluate(js, &ok)); err != nil {
		return nil, &BrowserError{Op: "clone region", Cause: err}
	}
	if p.renderer.cfg.Verbose {
		log.Printf("[BROWSER] Cloned #%s as #%s", RegionID, id)
	}
	return &Capture{page: p, id: id}, nil
}

// Capture is an offscreen clone inside a Page.
type Capture struct {
	page *Page
	id   string

	mu       sync.Mutex
	released bool
}

type rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ID returns the DOM id of the clone host.
func (c *Capture) ID() string {
	return c.id
}

func (c *Capture) place(ctx context.Context, show bool) error {
	var ok bool
	js := fmt.Sprintf(placeScript, c.id, show)
	return c.page.renderer.run(ctx, c.page.ctx, chromedp.Evaluate(js, &ok))
}

func (c *Capture) bounds(ctx context.Context) (rect, error) {
	var r rect
	js := fmt.Sprintf(rectScript, c.id, c.id)
	if err := c.page.renderer.run(ctx, c.page.ctx, chromedp.Evaluate(js, &r)); err != nil {
		return rect{}, &BrowserError{Op: "measure clone", Cause: err}
	}
	return r, nil
}

func (c *Capture) Dimensions(ctx context.Context) (float64, float64, error) {
	r, err := c.bounds(ctx)
	if err != nil {
		return 0, 0, err
	}
	return r.Width, r.Height, nil
}

// Rasterize screenshots the clone at opts.Scale with the page background forced to
// opts.Background, including parts beyond the viewport. The clone is parked again
// afterwards.
func (c *Capture) Rasterize(ctx context.Context, opts export.RasterOptions) (image.Image, error) {
	if err := c.place(ctx, true); err != nil {
		return nil, &BrowserError{Op: "place clone", Cause: err}
	}
	defer func() {
		if err := c.place(ctx, false); err != nil {
			log.Printf("[BROWSER] Failed to park clone #%s: %v", c.id, err)
		}
	}()

	r, err := c.bounds(ctx)
	if err != nil {
		return nil, err
	}
	if r.Width <= 0 || r.Height <= 0 {
		return nil, &BrowserError{Op: "rasterize", Cause: fmt.Errorf("clone has empty size %.0fx%.0f", r.Width, r.Height)}
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	bg := opts.Background
	if bg == nil {
		bg = color.White
	}

	var buf []byte
	err = c.page.renderer.run(ctx, c.page.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		if err := emulation.SetDefaultBackgroundColorOverride().WithColor(toRGBA(bg)).Do(ctx); err != nil {
			return err
		}
		var err error
		buf, err = page.CaptureScreenshot().
			WithFormat(page.CaptureScreenshotFormatPng).
			WithClip(&page.Viewport{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height, Scale: scale}).
			WithCaptureBeyondViewport(true).
			WithFromSurface(true).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, &BrowserError{Op: "rasterize", Cause: err}
	}

	img, err := png.Decode(bytes.NewReader(buf))
	if err != nil {
		return nil, &BrowserError{Op: "decode screenshot", Cause: err}
	}
	if c.page.renderer.cfg.Verbose {
		b := img.Bounds()
		log.Printf("[BROWSER] Captured %dx%d px at scale %g", b.Dx(), b.Dy(), scale)
	}
	return img, nil
}

// Release removes the clone. Later calls do nothing.
func (c *Capture) Release(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return nil
	}
	c.released = true

	var ok bool
	js := fmt.Sprintf(removeScript, c.id)
	if err := c.page.renderer.run(ctx, c.page.ctx, chromedp.Evaluate(js, &ok)); err != nil {
		return &BrowserError{Op: "release clone", Cause: err}
	}
	return nil
}

func toRGBA(c color.Color) *cdp.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return &cdp.RGBA{R: int64(n.R), G: int64(n.G), B: int64(n.B), A: float64(n.A) / 255}
}
