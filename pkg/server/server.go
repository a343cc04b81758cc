// Package server exposes the render pipeline and the gallery over HTTP.
//
// # Routes
//
//	GET    /healthz                      liveness and build info
//	GET    /api/templates                template catalog
//	POST   /api/render?format=svg        render a spec from the request body
//	POST   /api/gallery                  save {"name", "spec"}
//	GET    /api/gallery                  list saved entries, newest first
//	GET    /api/gallery/{id}             fetch one entry
//	GET    /api/gallery/{id}/render      render a saved entry
//	DELETE /api/gallery/{id}             remove an entry
//
// Spec bodies are JSON by default; a YAML or TOML Content-Type selects the
// other decoders. Errors are JSON objects carrying the error code, the
// message and the request ID.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/infographic/pkg/gallery"
	"github.com/matzehuels/infographic/pkg/pipeline"
)

const (
	// DefaultAddr is the listen address when none is configured.
	DefaultAddr = ":8080"

	// DefaultMaxBodyBytes caps request bodies.
	DefaultMaxBodyBytes = 1 << 20

	// DefaultRenderTimeout bounds a single render request.
	DefaultRenderTimeout = 30 * time.Second
)

// Config holds the server's collaborators.
type Config struct {
	Runner *pipeline.Runner
	// Store is optional; without it the gallery routes are not mounted.
	Store  gallery.Store
	Logger *log.Logger

	MaxBodyBytes  int64
	RenderTimeout time.Duration
}

// Server is the HTTP API.
type Server struct {
	runner        *pipeline.Runner
	store         gallery.Store
	logger        *log.Logger
	maxBody       int64
	renderTimeout time.Duration
	router        chi.Router
}

// New creates a server. A nil Runner gets an uncached runner; a nil Logger
// discards output.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	runner := cfg.Runner
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{
		runner:        runner,
		store:         cfg.Store,
		logger:        logger,
		maxBody:       cfg.MaxBodyBytes,
		renderTimeout: cfg.RenderTimeout,
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}
	if s.renderTimeout <= 0 {
		s.renderTimeout = DefaultRenderTimeout
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/templates", s.handleTemplates)
		r.Post("/render", s.handleRender)
		if s.store != nil {
			r.Route("/gallery", func(r chi.Router) {
				r.Post("/", s.handleSaveEntry)
				r.Get("/", s.handleListEntries)
				r.Get("/{id}", s.handleGetEntry)
				r.Get("/{id}/render", s.handleRenderEntry)
				r.Delete("/{id}", s.handleDeleteEntry)
			})
		}
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, errNotFoundRoute(r))
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
