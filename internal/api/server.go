// Package api exposes analysis results over a local REST API.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/routinely/routinely/internal/coordinator"
	"github.com/routinely/routinely/internal/logger"
)

// Server serves the suggestion and stale-automation results produced
// by the coordinator. It binds to loopback only; the host platform is
// expected to sit in front of it.
type Server struct {
	coord   *coordinator.Coordinator
	router  *chi.Mux
	server  *http.Server
	version string
}

// NewServer wires the routes for a coordinator.
func NewServer(coord *coordinator.Coordinator, port int, version string) *Server {
	s := &Server{
		coord:   coord,
		router:  chi.NewRouter(),
		version: version,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Get("/health", s.handleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/suggestions", s.handleSuggestions)
		r.Get("/stale", s.handleStale)
		r.Get("/stats", s.handleStats)
		r.Post("/dismissals/{id}", s.handleDismiss)
		r.Delete("/dismissals/{id}", s.handleRestore)
		r.Delete("/dismissals", s.handleClearDismissals)
	})

	s.server = &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the route tree; used by tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	logger.Info().
		Str("addr", s.server.Addr).
		Msg("Starting results API")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("results API failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
