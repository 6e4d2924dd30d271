package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/pod-search/internal/archive"
	"github.com/ziadkadry99/pod-search/internal/search"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
	// RequestTimeout bounds the JSON API routes. The page and websocket
	// are not bounded.
	RequestTimeout time.Duration
}

// Mounter registers additional routes, such as the live page.
type Mounter interface {
	RegisterRoutes(r chi.Router)
}

// Server exposes the archive, the search service and the browser page.
type Server struct {
	cfg        Config
	series     *archive.SeriesMap
	source     archive.Source
	search     *search.Service
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a server over an already loaded series map. page may be nil
// to serve only the JSON routes.
func New(cfg Config, series *archive.SeriesMap, source archive.Source, svc *search.Service, page Mounter) *Server {
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	s := &Server{
		cfg:    cfg,
		series: series,
		source: source,
		search: svc,
		logger: slog.Default().With("component", "server"),
	}

	s.router = s.buildRouter(page)
	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter(page Mounter) chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/health", s.handleHealth)
	r.Get("/healthz", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))

		r.Get("/"+archive.DefaultSeriesFile, s.handleSeriesData)
		r.Get("/api/series", s.handleSeriesData)
		r.Get("/api/episodes/{series}/{episode}", s.handleTranscript)
		r.Get("/api/search", s.handleSearch)
	})

	if page != nil {
		page.RegisterRoutes(r)
	}

	// A local archive is the site root: transcripts, style.css and any other
	// static file not claimed by a route above are served as-is.
	if dir, ok := s.source.(*archive.DirSource); ok {
		r.NotFound(http.FileServerFS(dir.FS).ServeHTTP)
	}

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleSeriesData(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.series)
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	series, err1 := url.PathUnescape(chi.URLParam(r, "series"))
	episode, err2 := url.PathUnescape(chi.URLParam(r, "episode"))
	if err := errors.Join(err1, err2); err != nil {
		writeError(w, http.StatusBadRequest, "malformed path")
		return
	}

	t, err := s.source.Transcript(r.Context(), series, episode)
	if err != nil {
		var fe *archive.FetchError
		switch {
		case errors.As(err, &fe) && fe.Status < 500:
			writeError(w, fe.Status, err.Error())
		default:
			s.logger.Error("loading transcript", "series", series, "episode", episode, "err", err)
			writeError(w, http.StatusBadGateway, err.Error())
		}
		return
	}

	title := t.Title()
	writeJSON(w, http.StatusOK, map[string]any{
		"series":  t.Series,
		"episode": t.Episode,
		"title":   title.Title,
		"number":  title.Number,
		"rows":    t.Rows,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	results, outcome := s.search.Search(r.Context(), q)
	if results == nil {
		results = []search.Result{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query":   q,
		"source":  outcome,
		"results": results,
	})
}

// Start begins listening on the configured port.
func (s *Server) Start() error {
	s.logger.Info("pod-search listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
