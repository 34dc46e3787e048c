// Package server provides the HTTP REST API for the CV builder.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/server/ratelimit"
)

// Surface is a rendered preview the exporter can capture. Close frees it.
type Surface interface {
	export.Surface
	Close()
}

// SurfaceOpener loads preview HTML into something that can be rasterized.
type SurfaceOpener func(ctx context.Context, html string) (Surface, error)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	sessions    *sessionStore
	openSurface SurfaceOpener
	exportOpts  export.Options
	corsOrigin  string
	sessionTTL  time.Duration
	rateLimiter *ratelimit.Limiter
	verbose     bool
}

// Config holds server configuration
type Config struct {
	Port       int
	CORSOrigin string
	// OpenSurface renders previews for export. Nil disables the export endpoint.
	OpenSurface SurfaceOpener
	// SessionTTL drops sessions idle for longer. Zero keeps them until deleted.
	SessionTTL time.Duration
	// RateLimit overrides the environment-derived limiter settings.
	RateLimit *ratelimit.Config
	Creator   string
	Verbose   bool
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	corsOrigin := cfg.CORSOrigin
	if corsOrigin == "" {
		corsOrigin = "*"
	}

	s := &Server{
		sessions:    newSessionStore(),
		openSurface: cfg.OpenSurface,
		exportOpts:  export.Options{Creator: cfg.Creator, Verbose: cfg.Verbose},
		corsOrigin:  corsOrigin,
		sessionTTL:  cfg.SessionTTL,
		verbose:     cfg.Verbose,
	}

	rlConfig := cfg.RateLimit
	if rlConfig == nil {
		rlConfig = ratelimit.LoadConfig()
	}
	s.rateLimiter = ratelimit.NewLimiter(rlConfig)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Exports may take a while on large documents
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return s.withRateLimit(s.withLogging(s.withCORS(s.routes())))
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /templates", s.handleTemplates)

	// Editing sessions
	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)

	// Form sections
	mux.HandleFunc("PUT /sessions/{id}/personal-info", s.handlePutPersonalInfo)
	mux.HandleFunc("POST /sessions/{id}/experience", s.handleAddExperience)
	mux.HandleFunc("PUT /sessions/{id}/experience/{entry_id}", s.handleUpdateExperience)
	mux.HandleFunc("DELETE /sessions/{id}/experience/{entry_id}", s.handleDeleteExperience)
	mux.HandleFunc("POST /sessions/{id}/education", s.handleAddEducation)
	mux.HandleFunc("PUT /sessions/{id}/education/{entry_id}", s.handleUpdateEducation)
	mux.HandleFunc("DELETE /sessions/{id}/education/{entry_id}", s.handleDeleteEducation)
	mux.HandleFunc("POST /sessions/{id}/skills", s.handleAddSkill)
	mux.HandleFunc("DELETE /sessions/{id}/skills/{skill}", s.handleDeleteSkill)

	// Navigation and layout
	mux.HandleFunc("POST /sessions/{id}/step/next", s.handleNextStep)
	mux.HandleFunc("POST /sessions/{id}/step/previous", s.handlePreviousStep)
	mux.HandleFunc("PUT /sessions/{id}/step", s.handleGoToStep)
	mux.HandleFunc("PUT /sessions/{id}/template", s.handleSelectTemplate)

	// Output
	mux.HandleFunc("GET /sessions/{id}/preview", s.handlePreview)
	mux.HandleFunc("POST /sessions/{id}/export", s.handleExport)
	mux.HandleFunc("POST /sessions/{id}/export/stream", s.handleExportStream)
	return mux
}

// Start serves until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	if s.sessionTTL > 0 {
		g.Go(func() error {
			s.sweepSessions(gctx)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()

	// Stop rate limiter cleanup goroutine
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	log.Println("Server stopped")
	return err
}

func (s *Server) sweepSessions(ctx context.Context) {
	interval := s.sessionTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.sessions.prune(now.Add(-s.sessionTTL)); n > 0 && s.verbose {
				log.Printf("[sessions] Dropped %d idle session(s)", n)
			}
		}
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// Only RemoteAddr is trusted; forwarded headers are ignored.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		retry := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = retry
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retry))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
