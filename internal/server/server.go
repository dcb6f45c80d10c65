// Package server owns the HTTP listener: core routes, middleware, and the
// translation of errors into problem responses.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/newsroom/internal/version"
)

// SimpleRouteRegistrar is implemented by API handlers that mount their own
// routes on the server mux.
type SimpleRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux)
}

// Options configures a Server. Zero durations fall back to defaults; a zero
// RateLimit disables limiting.
type Options struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RequestTimeout time.Duration
	RateLimit      float64
	RateBurst      int
	// TrustedProxies lists the CIDRs or addresses allowed to set
	// X-Forwarded-For and X-Real-IP. Empty means clients are keyed by
	// their socket address only.
	TrustedProxies []string
	Metrics        bool
}

// Server is the Newsroom HTTP server.
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
	metrics    *Metrics
	handler    http.Handler
}

// New creates a Server and mounts the core routes and every registrar.
func New(opts Options, logger *zap.Logger, registrars ...SimpleRouteRegistrar) *Server {
	if opts.ReadTimeout <= 0 {
		opts.ReadTimeout = 15 * time.Second
	}
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = 15 * time.Second
	}

	mux := http.NewServeMux()
	s := &Server{
		logger: logger,
		mux:    mux,
	}
	if opts.Metrics {
		s.metrics = NewMetrics()
	}

	s.registerCoreRoutes()
	for _, reg := range registrars {
		reg.RegisterRoutes(mux)
	}

	proxies, bad := parseTrustedProxies(opts.TrustedProxies)
	for _, e := range bad {
		logger.Warn("ignoring invalid trusted proxy", zap.String("entry", e))
	}

	var inner http.Handler = mux
	if s.metrics != nil {
		inner = s.metrics.middleware(mux)
	}
	s.handler = chain(inner,
		requestIDMiddleware,
		accessLogMiddleware(logger.Named("http")),
		rateLimitMiddleware(opts.RateLimit, opts.RateBurst, proxies),
		timeoutMiddleware(opts.RequestTimeout),
	)

	s.httpServer = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.handler,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// registerCoreRoutes sets up routes that are always available.
func (s *Server) registerCoreRoutes() {
	s.mux.HandleFunc("GET /api/health", s.handleHealth)
	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics.Handler())
	}
	// Any method on any path no other pattern claims.
	s.mux.HandleFunc("/", handleNotFound)
}

// Handler returns the fully wrapped handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "newsroom",
		"version": version.Map(),
	})
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Newsroom-Version", version.Short())
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
