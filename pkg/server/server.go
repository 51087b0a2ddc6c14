// Package server exposes the analyzer over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/analyzer"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/config"
	"github.com/Sudheer-CodeCrusader/attribute-combination-suggest-Agent/pkg/jobstore"
)

// Fetcher retrieves kickoff inputs.
type Fetcher interface {
	FetchDocument(ctx context.Context, location string) (string, error)
	FetchImage(ctx context.Context, location string) ([]byte, error)
}

// Server is the HTTP API server.
type Server struct {
	router   chi.Router
	store    jobstore.Store
	fetcher  Fetcher
	analyzer *analyzer.Analyzer
	newID    jobstore.Generator
	cfg      config.Config
}

// New creates and configures the HTTP server.
func New(cfg config.Config, store jobstore.Store, fetcher Fetcher, an *analyzer.Analyzer) *Server {
	s := &Server{
		store:    store,
		fetcher:  fetcher,
		analyzer: an,
		newID:    jobstore.UUIDv7(),
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonError(w, "not found", http.StatusNotFound)
	})

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.Server.AuthToken))

		r.Post("/kickoff", s.handleKickoff)
		r.Get("/status/{kickoffID}", s.handleStatus)
		r.Post("/analyze", s.handleAnalyze)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
