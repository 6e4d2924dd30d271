package ui

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ziadkadry99/pod-search/internal/archive"
	"github.com/ziadkadry99/pod-search/internal/search"
)

// CopyFeedbackDuration is how long the copy button shows CopiedLabel.
const CopyFeedbackDuration = time.Second

// Options configures a Page.
type Options struct {
	Source       archive.Source
	Search       *search.Service
	Renderer     *Renderer
	Emitter      Emitter
	Logger       *slog.Logger
	SidebarWidth int
	MinWidth     int
	MaxWidth     int
	Highlight    time.Duration
	CopyFeedback time.Duration

	// After schedules f to run after d. Defaults to time.AfterFunc.
	After func(d time.Duration, f func())
}

// Page is the state of one open browser page: the sidebar, the main
// transcript area and the transient controls. Every exported method maps to
// a user action and answers with patches through the Emitter.
//
// Network work happens outside the lock. Each panel keeps a sequence number
// and only the most recently requested load or search is rendered, so a
// slow earlier response never overwrites a newer one.
type Page struct {
	mu sync.Mutex

	src    archive.Source
	search *search.Service
	render *Renderer
	emit   Emitter
	logger *slog.Logger
	after  func(time.Duration, func())

	highlight    time.Duration
	copyFeedback time.Duration

	nav     *Nav
	tabs    *Tabs
	popup   Popup
	resizer *Resizer

	header  string
	results string
	episode string

	loadSeq   uint64
	searchSeq uint64
}

// NewPage builds a page over the navigation data.
func NewPage(series *archive.SeriesMap, opts Options) (*Page, error) {
	if opts.Source == nil {
		return nil, fmt.Errorf("page: source is required")
	}
	if opts.Renderer == nil {
		r, err := NewRenderer()
		if err != nil {
			return nil, err
		}
		opts.Renderer = r
	}
	if opts.Search == nil {
		opts.Search = search.NewService(nil, series)
	}
	if opts.Emitter == nil {
		opts.Emitter = EmitterFunc(func(...Patch) {})
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.After == nil {
		opts.After = func(d time.Duration, f func()) { time.AfterFunc(d, f) }
	}
	if opts.SidebarWidth == 0 {
		opts.SidebarWidth = DefaultSidebarWidth
	}
	if opts.Highlight == 0 {
		opts.Highlight = HighlightDuration
	}
	if opts.CopyFeedback == 0 {
		opts.CopyFeedback = CopyFeedbackDuration
	}

	shell, err := opts.Renderer.Shell(ShellData{})
	if err != nil {
		return nil, err
	}
	tabs, err := DiscoverTabs(shell)
	if err != nil {
		return nil, err
	}
	header, err := opts.Renderer.DefaultHeader()
	if err != nil {
		return nil, err
	}

	return &Page{
		src:          opts.Source,
		search:       opts.Search,
		render:       opts.Renderer,
		emit:         opts.Emitter,
		logger:       opts.Logger,
		after:        opts.After,
		highlight:    opts.Highlight,
		copyFeedback: opts.CopyFeedback,
		nav:          BuildNav(series),
		tabs:         tabs,
		resizer:      NewResizer(opts.SidebarWidth, opts.MinWidth, opts.MaxWidth),
		header:       header,
	}, nil
}

// Shell renders the full page for the current state.
func (p *Page) Shell(basePath string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	nav, err := p.render.Nav(p.nav)
	if err != nil {
		return "", err
	}
	return p.render.Shell(ShellData{
		Title:        "Pod-Search",
		BasePath:     basePath,
		SidebarWidth: p.resizer.Width(),
		Nav:          template.HTML(nav),
		Header:       template.HTML(p.header),
	})
}

// Setup sends the whole current state: sidebar, header, results, active
// tab and layout. Calling it again resends the same state.
func (p *Page) Setup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	nav, err := p.render.Nav(p.nav)
	if err != nil {
		p.logger.Error("rendering sidebar", "err", err)
		return
	}
	patches := []Patch{
		setHTML(navID, nav),
		{Op: OpHTML, Target: headerSelector, HTML: p.header},
		setHTML(resultsID, p.results),
	}
	patches = append(patches, p.tabPatches()...)
	patches = append(patches, p.layoutPatches()...)
	patches = append(patches, setStyle(popupID, "", "display", "none"))
	p.emit.Emit(patches...)
}

// Episode returns the "series/episode" key of the loaded episode, if any.
func (p *Page) Episode() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.episode
}

// Results returns the markup of the main results area.
func (p *Page) Results() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.results
}

// ResetHeader puts back the site title.
func (p *Page) ResetHeader() {
	p.mu.Lock()
	defer p.mu.Unlock()

	header, err := p.render.DefaultHeader()
	if err != nil {
		p.logger.Error("rendering header", "err", err)
		return
	}
	p.header = header
	p.emit.Emit(Patch{Op: OpHTML, Target: headerSelector, HTML: header})
}

// LoadEpisode fetches and shows a transcript. When target is set, the row
// starting at that time is scrolled to once the transcript is shown.
func (p *Page) LoadEpisode(ctx context.Context, series, episode, target string) {
	p.mu.Lock()
	p.loadSeq++
	seq := p.loadSeq
	p.results = loadingHTML
	p.emit.Emit(setHTML(resultsID, loadingHTML))
	p.mu.Unlock()

	p.logger.Debug("loading episode", "series", series, "episode", episode, "target", target)
	t, err := p.src.Transcript(ctx, series, episode)

	p.mu.Lock()
	defer p.mu.Unlock()

	if seq != p.loadSeq {
		p.logger.Debug("dropping stale episode load", "series", series, "episode", episode)
		return
	}
	if err != nil {
		p.logger.Warn("loading episode", "series", series, "episode", episode, "err", err)
		p.showLoadError(series, episode, err)
		return
	}

	header, err := p.render.EpisodeHeader(series, episode)
	if err != nil {
		p.showLoadError(series, episode, err)
		return
	}
	rows, err := p.render.Transcript(t.Rows)
	if err != nil {
		p.showLoadError(series, episode, err)
		return
	}

	p.header = header
	p.results = rows
	p.episode = series + "/" + episode
	p.emit.Emit(
		Patch{Op: OpHTML, Target: headerSelector, HTML: header},
		setHTML(resultsID, rows),
	)
	p.logger.Debug("episode loaded", "series", series, "episode", episode, "rows", len(t.Rows))

	if target != "" {
		p.scrollLocked(target)
	}
}

// showLoadError replaces the results area with an inline error. The header
// and sidebar are left alone.
func (p *Page) showLoadError(series, episode string, loadErr error) {
	msg, err := p.render.LoadError(series, episode, loadErr)
	if err != nil {
		p.logger.Error("rendering load error", "err", err)
		return
	}
	p.results = msg
	p.episode = ""
	p.emit.Emit(setHTML(resultsID, msg))
}

// ScrollTo brings the row starting at t into view and highlights it
// briefly. A time with no row only logs.
func (p *Page) ScrollTo(t string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scrollLocked(t)
}

func (p *Page) scrollLocked(t string) bool {
	id, ok := FindRow(p.results, t)
	if !ok {
		p.logger.Warn("target paragraph not found", "time", t)
		return false
	}

	p.emit.Emit(
		Patch{Op: OpScroll, ID: id},
		setStyle(id, "", "transition", "background-color 0.5s ease"),
		setStyle(id, "", "background-color", HighlightColor),
	)
	p.after(p.highlight, func() {
		p.emit.Emit(setStyle(id, "", "background-color", ""))
	})
	p.logger.Debug("scrolled to paragraph", "time", t)
	return true
}

// ToggleSeries expands or collapses a series in the sidebar.
func (p *Page) ToggleSeries(index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	node, err := p.nav.Toggle(index)
	if err != nil {
		return err
	}
	display := "none"
	if node.Expanded {
		display = "block"
	}
	sel := "[" + seriesIndexAttr + `="` + strconv.Itoa(index) + `"]`
	p.emit.Emit(
		Patch{Op: OpAttr, Target: sel, Name: "aria-expanded", Value: strconv.FormatBool(node.Expanded)},
		Patch{Op: OpStyle, Target: sel + " + .episodes", Name: "display", Value: display},
	)
	return nil
}

// ActivateTab switches the sidebar to the named tab.
func (p *Page) ActivateTab(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.activateTabLocked(name)
}

func (p *Page) activateTabLocked(name string) bool {
	if !p.tabs.Activate(name) {
		p.logger.Warn("target panel not found", "panel", PanelID(name))
		return false
	}
	p.emit.Emit(p.tabPatches()...)
	return true
}

func (p *Page) tabPatches() []Patch {
	var patches []Patch
	for _, name := range p.tabs.Names() {
		on := name == p.tabs.Active()
		patches = append(patches,
			Patch{Op: OpClass, Target: tabButtonPrefix + name + `"]`, Name: "active", On: on},
			Patch{Op: OpClass, ID: PanelID(name), Name: "active", On: on},
		)
	}
	return patches
}

// ActiveTab returns the visible sidebar tab.
func (p *Page) ActiveTab() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tabs.Active()
}

// Search runs a sidebar search and renders its results. A blank query
// clears the results without any request.
func (p *Page) Search(ctx context.Context, query string) {
	p.mu.Lock()
	p.searchSeq++
	seq := p.searchSeq
	if strings.TrimSpace(query) == "" {
		p.emit.Emit(setHTML(searchResultsID, ""))
		p.mu.Unlock()
		return
	}
	p.emit.Emit(setHTML(searchResultsID, searchingHTML))
	p.mu.Unlock()

	results, outcome := p.search.Search(ctx, query)

	p.mu.Lock()
	defer p.mu.Unlock()
	if seq != p.searchSeq {
		return
	}
	html, err := p.render.Results(results)
	if err != nil {
		p.logger.Error("rendering search results", "err", err)
		p.emit.Emit(setHTML(searchResultsID, `<div style="color: red; padding: 8px;">Search failed. Please try again.</div>`))
		return
	}
	p.logger.Debug("search finished", "query", query, "outcome", outcome, "results", len(results))
	p.emit.Emit(setHTML(searchResultsID, html))
}

// MouseUp handles the end of a possible text selection.
func (p *Page) MouseUp(selection string, mouseX float64, sel Rect, size Size, vp Viewport) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.popup.MouseUp(selection, mouseX, sel, size, vp) {
		p.emit.Emit(setStyle(popupID, "", "display", "none"))
		return
	}
	left, top := p.popup.Position()
	p.emit.Emit(
		setStyle(popupID, "", "left", px(left)),
		setStyle(popupID, "", "top", px(top)),
		setStyle(popupID, "", "display", "block"),
	)
}

// MouseDown hides the popup when the press is outside it.
func (p *Page) MouseDown(insidePopup bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.popup.MouseDown(insidePopup) {
		p.emit.Emit(setStyle(popupID, "", "display", "none"))
	}
}

// Selection returns the text captured by the last mouse-up.
func (p *Page) Selection() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.popup.Selected()
}

// SearchSelection switches to the search tab and searches for the selected
// text.
func (p *Page) SearchSelection(ctx context.Context) {
	p.mu.Lock()
	text := p.popup.Selected()
	if text == "" {
		p.mu.Unlock()
		return
	}
	p.activateTabLocked("search")
	p.popup.Hide()
	p.emit.Emit(
		Patch{Op: OpValue, ID: searchInputID, Value: text},
		Patch{Op: OpFocus, ID: searchInputID},
		setStyle(popupID, "", "display", "none"),
	)
	p.mu.Unlock()

	p.Search(ctx, text)
}

// CopySelection asks the browser to put the selected text on the
// clipboard. The browser answers through CopyResult.
func (p *Page) CopySelection() {
	p.mu.Lock()
	defer p.mu.Unlock()

	text := p.popup.Selected()
	if text == "" {
		return
	}
	p.popup.Hide()
	p.emit.Emit(
		Patch{Op: OpClipboard, Value: text},
		setStyle(popupID, "", "display", "none"),
	)
}

// CopyResult reports how the clipboard write went. Success flashes a
// confirmation on the copy button; failure is only logged.
func (p *Page) CopyResult(ok bool, reason string) {
	if !ok {
		p.logger.Error("failed to copy text", "err", reason)
		return
	}
	p.emit.Emit(Patch{Op: OpText, ID: copyButtonID, Value: CopiedLabel})
	p.after(p.copyFeedback, func() {
		p.emit.Emit(Patch{Op: OpText, ID: copyButtonID, Value: CopyLabel})
	})
}

// ResizeStart begins a sidebar drag at cursor x.
func (p *Page) ResizeStart(x int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resizer.Start(x)
}

// ResizeMove follows the drag and relayouts the sidebar and content.
func (p *Page) ResizeMove(x int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.resizer.Move(x); !ok {
		return
	}
	p.emit.Emit(p.layoutPatches()...)
}

// ResizeStop ends the drag.
func (p *Page) ResizeStop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resizer.Stop()
}

// SidebarWidth returns the current sidebar width.
func (p *Page) SidebarWidth() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.resizer.Width()
}

func (p *Page) layoutPatches() []Patch {
	l := LayoutFor(p.resizer.Width())
	return []Patch{
		setStyle("", sidebarSelector, sidebarWidthProp, l.SidebarWidth),
		setStyle("", contentSelector, "margin-left", l.MarginLeft),
		setStyle("", contentSelector, "width", l.ContentWidth),
	}
}

func px(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "px"
}
