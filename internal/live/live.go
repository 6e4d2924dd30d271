package live

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/pod-search/internal/archive"
	"github.com/ziadkadry99/pod-search/internal/search"
	"github.com/ziadkadry99/pod-search/internal/ui"
)

// Settings tunes the pages a Live hands out.
type Settings struct {
	SidebarWidth int
	MinWidth     int
	MaxWidth     int
	Highlight    time.Duration
	CopyFeedback time.Duration
}

// Live serves the transcript browser page and drives each open page over a
// websocket.
type Live struct {
	series   *archive.SeriesMap
	source   archive.Source
	search   *search.Service
	renderer *ui.Renderer
	settings Settings
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// New creates a Live over the given archive and search service.
func New(series *archive.SeriesMap, source archive.Source, svc *search.Service, settings Settings) (*Live, error) {
	renderer, err := ui.NewRenderer()
	if err != nil {
		return nil, err
	}
	return &Live{
		series:   series,
		source:   source,
		search:   svc,
		renderer: renderer,
		settings: settings,
		logger:   slog.Default().With("component", "live"),
		sessions: make(map[string]*session),
	}, nil
}

// RegisterRoutes mounts the page, its script and the websocket endpoint.
func (l *Live) RegisterRoutes(r chi.Router) {
	r.Get("/", l.ServeIndex)
	r.Get("/index.html", l.ServeIndex)
	r.Get("/app.js", l.ServeScript)
	r.Get("/ws", l.handleWebSocket)
}

// Sessions returns the number of connected pages.
func (l *Live) Sessions() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sessions)
}

func (l *Live) newPage(emit ui.Emitter, logger *slog.Logger) (*ui.Page, error) {
	return ui.NewPage(l.series, ui.Options{
		Source:       l.source,
		Search:       l.search,
		Renderer:     l.renderer,
		Emitter:      emit,
		Logger:       logger,
		SidebarWidth: l.settings.SidebarWidth,
		MinWidth:     l.settings.MinWidth,
		MaxWidth:     l.settings.MaxWidth,
		Highlight:    l.settings.Highlight,
		CopyFeedback: l.settings.CopyFeedback,
	})
}

// ServeIndex renders the page shell with the sidebar already filled in.
func (l *Live) ServeIndex(w http.ResponseWriter, r *http.Request) {
	page, err := l.newPage(nil, l.logger)
	if err != nil {
		l.logger.Error("creating page", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	html, err := page.Shell("")
	if err != nil {
		l.logger.Error("rendering page", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// ServeScript serves the browser side of the live page.
func (l *Live) ServeScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Write([]byte(clientJS))
}
