package browser

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Config controls how Chrome is launched.
type Config struct {
	// ChromePath overrides Chrome discovery. Empty uses chromedp's lookup.
	ChromePath string
	Headless   bool
	// Timeout bounds each browser operation. Zero means no timeout.
	Timeout time.Duration
	// Viewport width in CSS pixels; the CV region itself is a fixed 794px wide.
	ViewportWidth  int64
	ViewportHeight int64
	Verbose        bool
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Headless:       true,
		ViewportWidth:  1280,
		ViewportHeight: 1024,
	}
}

// Renderer owns one Chrome process. Each Open gets its own tab.
type Renderer struct {
	cfg           Config
	allocCtx      context.Context
	cancelAlloc   context.CancelFunc
	browserCtx    context.Context
	cancelBrowser context.CancelFunc

	closeOnce sync.Once
}

// NewRenderer launches Chrome. Close releases it.
func NewRenderer(ctx context.Context, cfg Config) (*Renderer, error) {
	if cfg.ViewportWidth <= 0 {
		cfg.ViewportWidth = DefaultConfig().ViewportWidth
	}
	if cfg.ViewportHeight <= 0 {
		cfg.ViewportHeight = DefaultConfig().ViewportHeight
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	if cfg.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ChromePath))
	}

	if cfg.Verbose {
		log.Printf("[BROWSER] Starting Chrome (headless=%t)", cfg.Headless)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.WithoutCancel(ctx), opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	r := &Renderer{
		cfg:           cfg,
		allocCtx:      allocCtx,
		cancelAlloc:   cancelAlloc,
		browserCtx:    browserCtx,
		cancelBrowser: cancelBrowser,
	}

	// The first Run allocates the browser and ties its lifetime to the context it is
	// given, so it must not carry a deadline.
	if err := chromedp.Run(browserCtx); err != nil {
		r.Close()
		return nil, &BrowserError{Op: "start", Cause: err}
	}
	return r, nil
}

// Open loads html into a fresh tab and waits for the CV region to be laid out.
func (r *Renderer) Open(ctx context.Context, html string) (*Page, error) {
	tabCtx, cancelTab := chromedp.NewContext(r.browserCtx)
	p := &Page{renderer: r, ctx: tabCtx, cancel: cancelTab}

	if err := chromedp.Run(tabCtx); err != nil {
		p.Close()
		return nil, &BrowserError{Op: "open tab", Cause: err}
	}
	err := r.run(ctx, tabCtx,
		chromedp.EmulateViewport(r.cfg.ViewportWidth, r.cfg.ViewportHeight),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("#"+RegionID, chromedp.ByQuery),
	)
	if err != nil {
		p.Close()
		return nil, &BrowserError{Op: "load preview", Cause: err}
	}

	if r.cfg.Verbose {
		log.Printf("[BROWSER] Loaded preview: %d bytes", len(html))
	}
	return p, nil
}

// Close shuts Chrome down. It is safe to call more than once.
func (r *Renderer) Close() {
	r.closeOnce.Do(func() {
		r.cancelBrowser()
		r.cancelAlloc()
		if r.cfg.Verbose {
			log.Printf("[BROWSER] Chrome stopped")
		}
	})
}

// run executes actions in target, a chromedp context, while honouring the caller's ctx
// and the configured timeout.
func (r *Renderer) run(ctx, target context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	runCtx, cancel := context.WithCancel(target)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if r.cfg.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		runCtx, cancelTimeout = context.WithTimeout(runCtx, r.cfg.Timeout)
		defer cancelTimeout()
	}

	if err := chromedp.Run(runCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}
