// Package server exposes the Lenny OPDS catalog over HTTP.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/ronibhakta1/opds2-lenny/internal/catalog"
	"github.com/ronibhakta1/opds2-lenny/internal/lenny"
)

// Server wires the upstream searcher, the local catalog and the feed
// pipeline behind an HTTP router.
type Server struct {
	searcher  lenny.Searcher
	provider  *lenny.Provider
	store     catalog.Store
	baseURL   string
	encrypted bool
}

// New creates a Server. The encrypted flag applies to every item in the
// generated feeds; it selects borrow/return versus read acquisition links.
func New(searcher lenny.Searcher, store catalog.Store, baseURL string, encrypted bool) *Server {
	return &Server{
		searcher:  searcher,
		provider:  lenny.NewProvider(searcher),
		store:     store,
		baseURL:   baseURL,
		encrypted: encrypted,
	}
}

// Router returns the HTTP handler for the server.
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	router.Use(requestLogger)

	router.Get("/healthz", s.handleHealth)
	router.Get("/v1/api/opds", s.handleFeed)

	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("OK"))
}

// requestLogger logs each request with its duration and status.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(ww, r)

		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.status,
			"duration", time.Since(start),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
