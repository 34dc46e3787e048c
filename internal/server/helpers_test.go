package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/server/ratelimit"
)

// fakeSurface stands in for a browser tab. Its region is width x height CSS pixels.
type fakeSurface struct {
	width, height float64
	rasterErr     error
	// block, when set, holds Rasterize until it is closed.
	block   chan struct{}
	started chan struct{}

	mu       sync.Mutex
	closed   bool
	released int
	html     string
}

func (f *fakeSurface) CloneOffscreen(context.Context) (export.Capture, error) {
	return &fakeCapture{f: f}, nil
}

func (f *fakeSurface) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

type fakeCapture struct {
	f    *fakeSurface
	done bool
}

func (c *fakeCapture) Dimensions(context.Context) (float64, float64, error) {
	return c.f.width, c.f.height, nil
}

func (c *fakeCapture) Rasterize(ctx context.Context, opts export.RasterOptions) (image.Image, error) {
	if c.f.started != nil {
		close(c.f.started)
	}
	if c.f.block != nil {
		select {
		case <-c.f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if c.f.rasterErr != nil {
		return nil, c.f.rasterErr
	}
	return image.NewRGBA(image.Rect(0, 0, int(c.f.width*opts.Scale), int(c.f.height*opts.Scale))), nil
}

func (c *fakeCapture) Release(context.Context) error {
	if !c.done {
		c.done = true
		c.f.mu.Lock()
		c.f.released++
		c.f.mu.Unlock()
	}
	return nil
}

// newTestServer builds a server whose exports use surface. A nil surface disables export.
func newTestServer(t *testing.T, surface *fakeSurface) *Server {
	t.Helper()
	cfg := Config{
		Port:      0,
		RateLimit: &ratelimit.Config{Enabled: false},
	}
	if surface != nil {
		cfg.OpenSurface = func(_ context.Context, html string) (Surface, error) {
			surface.mu.Lock()
			surface.html = html
			surface.mu.Unlock()
			return surface, nil
		}
	}
	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func failingOpener(context.Context, string) (Surface, error) {
	return nil, errors.New("chrome crashed")
}

// do sends a request through the full middleware chain.
func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// createSession opens a session and returns its id.
func createSession(t *testing.T, s *Server, body any) string {
	t.Helper()
	w := do(t, s, http.MethodPost, "/sessions", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[SessionResponse](t, w).ID
}
