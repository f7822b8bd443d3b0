// Package api exposes the placement pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz          liveness probe
//	POST /v1/place         run the pipeline on an inline netlist
//	GET  /v1/runs          list archived runs (requires a store)
//	GET  /v1/runs/{id}     fetch one archived run
//
// Requests and responses are JSON. Errors carry the structured codes from
// pkg/errors so clients can branch on failure kinds.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/symplace/symplace/pkg/pipeline"
	"github.com/symplace/symplace/pkg/store"
)

// Server wires the pipeline and the optional run archive into an HTTP
// handler.
type Server struct {
	runner *pipeline.Runner
	store  store.Store // nil disables the /v1/runs endpoints
	logger *log.Logger
}

// NewServer creates a server around the given runner.
// The store may be nil, in which case archived-run endpoints return 404.
func NewServer(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/place", s.handlePlace)
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
	})
	return r
}

// Serve runs the API on addr until the context is cancelled, then shuts
// down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("api shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
