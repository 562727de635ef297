// Package server exposes the visualization pipeline over HTTP.
//
// The API is deliberately small:
//
//	POST /v1/clouds            compute a cloud from inline text, returns an id
//	GET  /v1/clouds/{id}       stored layout as JSON
//	GET  /v1/clouds/{id}.{fmt} re-render the stored layout (svg, png, pdf, html, json)
//	GET  /healthz              liveness probe
//
// Computed layouts are stored in the configured cache backend, so with a
// shared backend (redis, mongo) any instance can serve any cloud id.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lexcloud/lexcloud/pkg/cache"
	"github.com/lexcloud/lexcloud/pkg/pipeline"
)

// Default server timeouts.
const (
	readTimeout     = 30 * time.Second
	writeTimeout    = 120 * time.Second // PNG/PDF conversion can be slow
	shutdownTimeout = 10 * time.Second

	// maxRequestBody caps inline corpus uploads at 8 MiB.
	maxRequestBody = 8 << 20
)

// Server wires the pipeline runner to an HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  cache.Cache
	logger *log.Logger
}

// New creates a server. The store holds computed layouts by id and is
// usually the same backend the runner caches stages in.
func New(runner *pipeline.Runner, store cache.Cache, logger *log.Logger) *Server {
	if store == nil {
		store = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner: runner,
		store:  store,
		logger: logger,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1/clouds", func(r chi.Router) {
		r.Post("/", s.handleCreateCloud)
		r.Get("/{id}.{format}", s.handleGetArtifact)
		r.Get("/{id}", s.handleGetCloud)
	})

	return r
}

// ListenAndServe runs the server until the context is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// logRequests logs one line per request with status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
