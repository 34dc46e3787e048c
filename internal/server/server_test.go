package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-builder/internal/cvstate"
	"github.com/jonathan/cv-builder/internal/server/ratelimit"
)

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	w := do(t, s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[map[string]string](t, w)
	assert.Equal(t, "ok", resp["status"])
}

func TestNew_InvalidPort(t *testing.T) {
	_, err := New(Config{Port: -1})
	assert.Error(t, err)
}

func TestCORSMiddleware(t *testing.T) {
	s := newTestServer(t, nil)
	s.corsOrigin = "https://cv.example.com"

	handler := s.withCORS(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "https://cv.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "DELETE")
	assert.Equal(t, "Content-Disposition", w.Header().Get("Access-Control-Expose-Headers"))
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	s := newTestServer(t, nil)
	called := false
	handler := s.withCORS(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodOptions, "/sessions", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, w.Body.Len(), "OPTIONS response should have empty body")
	assert.False(t, called)
}

func TestLoggingMiddleware(t *testing.T) {
	s := newTestServer(t, nil)

	called := false
	handler := s.withLogging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.True(t, called, "logging middleware should call next handler")
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestRateLimitMiddleware(t *testing.T) {
	s := newTestServer(t, nil)
	s.rateLimiter = ratelimit.NewLimiter(&ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  2,
		DefaultWindow: time.Minute,
	})
	t.Cleanup(s.rateLimiter.Stop)

	for i := 0; i < 2; i++ {
		w := do(t, s, http.MethodGet, "/templates", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := do(t, s, http.MethodGet, "/templates", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "rate_limit_exceeded", resp["error"])

	// Health checks are never limited
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", nil).Code)
}

func TestExtractClientID(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:52100"
	assert.Equal(t, "203.0.113.7", s.extractClientID(req))

	req.RemoteAddr = "not-an-address"
	assert.Equal(t, "not-an-address", s.extractClientID(req))
}

func TestJSONResponse(t *testing.T) {
	s := newTestServer(t, nil)
	w := httptest.NewRecorder()

	s.jsonResponse(w, http.StatusOK, map[string]string{"key": "value"})

	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "value", decode[map[string]string](t, w)["key"])
}

func TestErrorResponse(t *testing.T) {
	s := newTestServer(t, nil)
	w := httptest.NewRecorder()

	s.errorResponse(w, http.StatusBadRequest, "test error")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "test error", decode[map[string]string](t, w)["error"])
}

func TestSessionStore_Prune(t *testing.T) {
	st := newSessionStore()
	old := st.create(cvstate.New())
	fresh := st.create(cvstate.New())
	busy := st.create(cvstate.New())

	old.updatedAt = time.Now().Add(-2 * time.Hour)
	busy.updatedAt = time.Now().Add(-2 * time.Hour)
	busy.state.Exporting = true

	n := st.prune(time.Now().Add(-time.Hour))
	assert.Equal(t, 1, n)

	_, ok := st.get(old.id)
	assert.False(t, ok)
	_, ok = st.get(fresh.id)
	assert.True(t, ok)
	_, ok = st.get(busy.id)
	assert.True(t, ok, "sessions with a running export are kept")
	assert.Equal(t, 2, st.len())
}
