package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ziadkadry99/pod-search/internal/archive"
	"github.com/ziadkadry99/pod-search/internal/search"
)

func strptr(s string) *string { return &s }

type fakeSource struct {
	transcripts map[string][]archive.TranscriptRow
	gate        map[string]chan struct{}
}

func (f *fakeSource) SeriesMap(context.Context) (*archive.SeriesMap, error) {
	return testSeries(), nil
}

func (f *fakeSource) Transcript(ctx context.Context, series, episode string) (*archive.Transcript, error) {
	key := series + "/" + episode
	if ch, ok := f.gate[key]; ok {
		<-ch
	}
	rows, ok := f.transcripts[key]
	if !ok {
		return nil, archive.NewFetchError(key, 404)
	}
	return &archive.Transcript{Series: series, Episode: episode, Rows: rows}, nil
}

type recorder struct {
	mu      sync.Mutex
	patches []Patch
}

func (r *recorder) Emit(p ...Patch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patches = append(r.patches, p...)
}

func (r *recorder) all() []Patch {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Patch(nil), r.patches...)
}

func (r *recorder) find(op PatchOp, id string) []Patch {
	var out []Patch
	for _, p := range r.all() {
		if p.Op == op && p.ID == id {
			out = append(out, p)
		}
	}
	return out
}

func (r *recorder) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.patches = nil
}

type timers struct {
	mu    sync.Mutex
	delay []time.Duration
	fns   []func()
}

func (t *timers) after(d time.Duration, f func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.delay = append(t.delay, d)
	t.fns = append(t.fns, f)
}

func (t *timers) fire() {
	t.mu.Lock()
	fns := t.fns
	t.fns = nil
	t.mu.Unlock()
	for _, f := range fns {
		f()
	}
}

func testSeries() *archive.SeriesMap {
	return archive.NewSeriesMap(
		archive.Series{Name: "Paradigm_Podcast", Episodes: []string{"Episode 5: The Covenant", "Episode 6: Law"}},
		archive.Series{Name: "Genesis", Episodes: []string{"Episode 1: In The Beginning"}},
	)
}

func newTestPage(t *testing.T, src *fakeSource) (*Page, *recorder, *timers) {
	t.Helper()
	rec := &recorder{}
	tm := &timers{}
	p, err := NewPage(testSeries(), Options{
		Source:  src,
		Emitter: rec,
		After:   tm.after,
	})
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	return p, rec, tm
}

func defaultSource() *fakeSource {
	return &fakeSource{transcripts: map[string][]archive.TranscriptRow{
		"Paradigm_Podcast/Episode 5: The Covenant": {
			{Start: strptr("00:00:01"), End: strptr("00:00:05"), Text: strptr("Welcome to the *show*.")},
			{Start: strptr("01:02:03"), Text: strptr("The covenant <script>x</script> matters.")},
			{Text: strptr("No timestamp here")},
		},
		"Paradigm_Podcast/Episode 6: Law": {
			{Start: strptr("00:00:09"), Text: strptr("Law")},
		},
	}}
}

func TestLoadEpisodeRendersRowsAndHeader(t *testing.T) {
	p, rec, _ := newTestPage(t, defaultSource())
	p.LoadEpisode(context.Background(), "Paradigm_Podcast", "Episode 5: The Covenant", "")

	html := p.Results()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatal(err)
	}

	rows := doc.Find(".transcript-row")
	if rows.Length() != 3 {
		t.Fatalf("rows = %d, want 3", rows.Length())
	}
	if doc.Find("#time-01-02-03").Length() != 1 {
		t.Error("expected a row with id time-01-02-03")
	}
	if doc.Find("#time-para-2 .timestamp").Length() != 0 {
		t.Error("row without start should have a blank timestamp column")
	}
	if got := doc.Find("#time-00-00-01").AttrOr("data-end", ""); got != "00:00:05" {
		t.Errorf("data-end = %q", got)
	}
	if doc.Find("#time-00-00-01 em").Text() != "show" {
		t.Error("inline markup in row text should be rendered")
	}
	if doc.Find("script").Length() != 0 {
		t.Error("raw HTML in row text must not be rendered")
	}

	var header string
	for _, patch := range rec.all() {
		if patch.Op == OpHTML && patch.Target == headerSelector {
			header = patch.HTML
		}
	}
	hdoc, _ := goquery.NewDocumentFromReader(strings.NewReader(header))
	if got := hdoc.Find(".episode-title").Text(); got != "The Covenant" {
		t.Errorf("title = %q, want The Covenant", got)
	}
	if got := hdoc.Find(".series-name").Text(); !strings.HasSuffix(got, ", Episode 5") || !strings.HasPrefix(got, "Paradigm Podcast") {
		t.Errorf("series line = %q", got)
	}

	loading := rec.find(OpHTML, resultsID)
	if len(loading) != 2 || loading[0].HTML != loadingHTML {
		t.Errorf("expected a loading placeholder before the transcript, got %+v", loading)
	}
	if p.Episode() != "Paradigm_Podcast/Episode 5: The Covenant" {
		t.Errorf("Episode = %q", p.Episode())
	}
}

func TestLoadEpisodeScrollsToTarget(t *testing.T) {
	p, rec, tm := newTestPage(t, defaultSource())
	p.LoadEpisode(context.Background(), "Paradigm_Podcast", "Episode 5: The Covenant", "01:02:03")

	scrolls := rec.find(OpScroll, "time-01-02-03")
	if len(scrolls) != 1 {
		t.Fatalf("scroll patches = %d, want 1", len(scrolls))
	}
	styles := rec.find(OpStyle, "time-01-02-03")
	var highlighted bool
	for _, s := range styles {
		if s.Name == "background-color" && s.Value == HighlightColor {
			highlighted = true
		}
	}
	if !highlighted {
		t.Error("target row was not highlighted")
	}
	if len(tm.delay) != 1 || tm.delay[0] != HighlightDuration {
		t.Fatalf("highlight timer = %v, want one of %v", tm.delay, HighlightDuration)
	}

	rec.reset()
	tm.fire()
	reverted := rec.find(OpStyle, "time-01-02-03")
	if len(reverted) != 1 || reverted[0].Value != "" {
		t.Errorf("highlight not reverted: %+v", reverted)
	}
}

func TestScrollToMissingRowOnlyLogs(t *testing.T) {
	p, rec, tm := newTestPage(t, defaultSource())
	p.LoadEpisode(context.Background(), "Paradigm_Podcast", "Episode 6: Law", "")
	rec.reset()

	if p.ScrollTo("09:09:09") {
		t.Error("ScrollTo should report a miss")
	}
	if len(rec.all()) != 0 || len(tm.delay) != 0 {
		t.Errorf("a miss should have no visible effect, got %+v", rec.all())
	}
}

func TestLoadEpisodeError(t *testing.T) {
	p, rec, _ := newTestPage(t, defaultSource())
	rec.reset()
	p.LoadEpisode(context.Background(), "Genesis", "Episode 1: In The Beginning", "")

	if !strings.Contains(p.Results(), "Could not load episode content: HTTP 404: Not Found") {
		t.Errorf("results = %q", p.Results())
	}
	if !strings.Contains(p.Results(), "<strong>Genesis:</strong> Episode 1: In The Beginning") {
		t.Errorf("error should name the episode: %q", p.Results())
	}
	for _, patch := range rec.all() {
		if patch.Target == headerSelector {
			t.Error("a failed load must not touch the header")
		}
	}
}

func TestStaleLoadIsDropped(t *testing.T) {
	src := defaultSource()
	release := make(chan struct{})
	src.gate = map[string]chan struct{}{"Paradigm_Podcast/Episode 5: The Covenant": release}
	p, _, _ := newTestPage(t, src)

	done := make(chan struct{})
	go func() {
		p.LoadEpisode(context.Background(), "Paradigm_Podcast", "Episode 5: The Covenant", "")
		close(done)
	}()

	// Wait until the slow load has registered itself.
	deadline := time.Now().Add(2 * time.Second)
	for p.Results() != loadingHTML && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	p.LoadEpisode(context.Background(), "Paradigm_Podcast", "Episode 6: Law", "")
	close(release)
	<-done

	if !strings.Contains(p.Results(), "time-00-00-09") {
		t.Errorf("the later request should win, results = %q", p.Results())
	}
	if p.Episode() != "Paradigm_Podcast/Episode 6: Law" {
		t.Errorf("Episode = %q", p.Episode())
	}
}

type countingRemote struct{ calls int }

func (c *countingRemote) Query(context.Context, string) ([]search.Result, error) {
	c.calls++
	return nil, errors.New("unreachable")
}

func TestSearch(t *testing.T) {
	remote := &countingRemote{}
	rec := &recorder{}
	p, err := NewPage(testSeries(), Options{
		Source:  defaultSource(),
		Search:  search.NewService(remote, testSeries()),
		Emitter: rec,
	})
	if err != nil {
		t.Fatal(err)
	}

	p.Search(context.Background(), "   ")
	if remote.calls != 0 {
		t.Error("blank query must not reach the search service")
	}
	cleared := rec.find(OpHTML, searchResultsID)
	if len(cleared) != 1 || cleared[0].HTML != "" {
		t.Errorf("blank query should clear results, got %+v", cleared)
	}

	rec.reset()
	p.Search(context.Background(), "BEGINNING")
	out := rec.find(OpHTML, searchResultsID)
	if len(out) != 2 || out[0].HTML != searchingHTML {
		t.Fatalf("expected searching placeholder then results, got %+v", out)
	}
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader(out[1].HTML))
	res := doc.Find(".sidebar-search-result")
	if res.Length() != 1 {
		t.Fatalf("results = %d, want 1", res.Length())
	}
	if res.AttrOr("data-series", "") != "Genesis" || res.AttrOr("data-episode", "") != "Episode 1: In The Beginning" {
		t.Errorf("result attrs = %v %v", res.AttrOr("data-series", ""), res.AttrOr("data-episode", ""))
	}

	rec.reset()
	p.Search(context.Background(), "zzz")
	out = rec.find(OpHTML, searchResultsID)
	if !strings.Contains(out[len(out)-1].HTML, "No results found.") {
		t.Errorf("expected no-results line, got %q", out[len(out)-1].HTML)
	}
}

func TestTabs(t *testing.T) {
	r := MustRenderer()
	shell, err := r.Shell(ShellData{SidebarWidth: 300})
	if err != nil {
		t.Fatal(err)
	}
	tabs, err := DiscoverTabs(shell)
	if err != nil {
		t.Fatal(err)
	}
	if names := tabs.Names(); len(names) != 2 || names[0] != "browse" || names[1] != "search" {
		t.Errorf("names = %v", names)
	}
	if tabs.Active() != "browse" {
		t.Errorf("initial tab = %q, want browse", tabs.Active())
	}
	if !tabs.Activate("search") || tabs.Active() != "search" {
		t.Error("Activate(search) failed")
	}
	if tabs.Activate("settings") || tabs.Active() != "search" {
		t.Error("unknown tab should leave state unchanged")
	}
}

func TestNewTabs(t *testing.T) {
	tabs := NewTabs([]string{"browse", "search"}, "search")
	if tabs.Active() != "search" || !tabs.Has("browse") || tabs.Has("settings") {
		t.Errorf("unexpected tabs state: names=%v active=%q", tabs.Names(), tabs.Active())
	}
}

func TestActivateTabPatches(t *testing.T) {
	p, rec, _ := newTestPage(t, defaultSource())
	if !p.ActivateTab("search") {
		t.Fatal("ActivateTab(search) = false")
	}
	for _, patch := range rec.all() {
		if patch.Op != OpClass {
			continue
		}
		want := strings.Contains(patch.Target, `"search"`) || patch.ID == "search-tab"
		if patch.On != want {
			t.Errorf("patch %+v: on = %v, want %v", patch, patch.On, want)
		}
	}
}

func TestResizerClamps(t *testing.T) {
	r := NewResizer(300, MinSidebarWidth, MaxSidebarWidth)
	if _, ok := r.Move(500); ok {
		t.Error("Move before Start should be ignored")
	}

	r.Start(100)
	if w, _ := r.Move(500); w != 600 {
		t.Errorf("width = %d, want clamp to 600", w)
	}
	if w, _ := r.Move(-150); w != 200 {
		t.Errorf("width = %d, want clamp to 200", w)
	}
	if w, _ := r.Move(150); w != 350 {
		t.Errorf("width = %d, want 350", w)
	}
	r.Stop()
	if r.Resizing() {
		t.Error("still resizing after Stop")
	}
	if w, ok := r.Move(900); ok || w != 350 {
		t.Errorf("Move after Stop = %d, %v", w, ok)
	}

	l := LayoutFor(350)
	if l.MarginLeft != "350px" || l.ContentWidth != "calc(100vw - 350px)" || l.SidebarWidth != "350px" {
		t.Errorf("layout = %+v", l)
	}
}

func TestPageResizePatches(t *testing.T) {
	p, rec, _ := newTestPage(t, defaultSource())
	p.ResizeStart(300)
	p.ResizeMove(700)
	p.ResizeStop()
	p.ResizeMove(100)

	if p.SidebarWidth() != 600 {
		t.Errorf("width = %d, want 600", p.SidebarWidth())
	}
	var margins []string
	for _, patch := range rec.all() {
		if patch.Target == contentSelector && patch.Name == "margin-left" {
			margins = append(margins, patch.Value)
		}
	}
	if len(margins) != 1 || margins[0] != "600px" {
		t.Errorf("margin patches = %v", margins)
	}
}

func TestPlacePopup(t *testing.T) {
	vp := Viewport{Width: 1000, Height: 800}
	size := Size{Width: 100, Height: 40}

	left, top := PlacePopup(500, Rect{Top: 100, Bottom: 120}, size, vp)
	if left != 450 || top != 130 {
		t.Errorf("centered = (%v, %v), want (450, 130)", left, top)
	}

	left, _ = PlacePopup(5, Rect{Top: 100, Bottom: 120}, size, vp)
	if left != 10 {
		t.Errorf("left edge clamp = %v, want 10", left)
	}

	left, _ = PlacePopup(995, Rect{Top: 100, Bottom: 120}, size, vp)
	if left != 890 {
		t.Errorf("right edge clamp = %v, want 890", left)
	}

	_, top = PlacePopup(500, Rect{Top: 760, Bottom: 780}, size, vp)
	if top != 710 {
		t.Errorf("flip above = %v, want 710", top)
	}

	_, top = PlacePopup(500, Rect{Top: 100, Bottom: 120}, size, Viewport{Width: 1000, Height: 800, ScrollY: 400})
	if top != 530 {
		t.Errorf("scrolled = %v, want 530", top)
	}
}

func TestPopupLifecycle(t *testing.T) {
	var p Popup
	vp := Viewport{Width: 1000, Height: 800}
	if p.MouseUp("   ", 0, Rect{}, Size{}, vp) || p.Visible() {
		t.Error("blank selection should hide the popup")
	}
	if !p.MouseUp("  grace  ", 500, Rect{Top: 10, Bottom: 20}, Size{Width: 10, Height: 10}, vp) {
		t.Fatal("selection should show the popup")
	}
	if p.Selected() != "grace" {
		t.Errorf("selected = %q", p.Selected())
	}
	if p.MouseDown(true) || !p.Visible() {
		t.Error("press inside the popup must not hide it")
	}
	if !p.MouseDown(false) || p.Visible() || p.Selected() != "" {
		t.Error("press outside should hide the popup and clear the selection")
	}
}

func TestSearchSelection(t *testing.T) {
	p, rec, _ := newTestPage(t, defaultSource())
	p.MouseUp("covenant", 200, Rect{Top: 10, Bottom: 20}, Size{Width: 80, Height: 30}, Viewport{Width: 1000, Height: 800})

	p.SearchSelection(context.Background())
	if p.ActiveTab() != "search" {
		t.Errorf("active tab = %q", p.ActiveTab())
	}
	values := rec.find(OpValue, searchInputID)
	if len(values) != 1 || values[0].Value != "covenant" {
		t.Errorf("search input = %+v", values)
	}
	if len(rec.find(OpFocus, searchInputID)) != 1 {
		t.Error("search input should be focused")
	}
	results := rec.find(OpHTML, searchResultsID)
	if len(results) == 0 || !strings.Contains(results[len(results)-1].HTML, "Episode 5: The Covenant") {
		t.Errorf("selection search results = %+v", results)
	}
}

func TestCopySelection(t *testing.T) {
	p, rec, tm := newTestPage(t, defaultSource())
	p.CopySelection()
	if len(rec.all()) != 0 {
		t.Error("copy without a selection should do nothing")
	}

	p.MouseUp("mercy", 200, Rect{Top: 10, Bottom: 20}, Size{Width: 80, Height: 30}, Viewport{Width: 1000, Height: 800})
	rec.reset()
	p.CopySelection()

	var clip []Patch
	for _, patch := range rec.all() {
		if patch.Op == OpClipboard {
			clip = append(clip, patch)
		}
	}
	if len(clip) != 1 || clip[0].Value != "mercy" {
		t.Fatalf("clipboard patches = %+v", clip)
	}

	rec.reset()
	p.CopyResult(false, "denied")
	if len(rec.all()) != 0 {
		t.Error("clipboard failure should only be logged")
	}

	p.CopyResult(true, "")
	labels := rec.find(OpText, copyButtonID)
	if len(labels) != 1 || labels[0].Value != CopiedLabel {
		t.Errorf("labels = %+v", labels)
	}
	if len(tm.delay) != 1 || tm.delay[0] != CopyFeedbackDuration {
		t.Errorf("feedback timer = %v", tm.delay)
	}
	tm.fire()
	labels = rec.find(OpText, copyButtonID)
	if labels[len(labels)-1].Value != CopyLabel {
		t.Errorf("label not restored: %+v", labels)
	}
}

func TestNavAndToggle(t *testing.T) {
	nav := BuildNav(testSeries())
	if len(nav.Series) != 2 {
		t.Fatalf("series = %d", len(nav.Series))
	}
	first := nav.Series[0]
	if first.Display != "Paradigm Podcast" || first.Key != "Paradigm_Podcast" {
		t.Errorf("first = %+v", first)
	}
	if first.Expanded {
		t.Error("series should start collapsed")
	}
	if first.Episodes[0].Series != "Paradigm_Podcast" {
		t.Error("episode should keep the raw series key")
	}

	r := MustRenderer()
	html, err := r.Nav(nav)
	if err != nil {
		t.Fatal(err)
	}
	doc, _ := goquery.NewDocumentFromReader(strings.NewReader(html))
	if doc.Find(".series").First().AttrOr("aria-expanded", "") != "false" {
		t.Error("aria-expanded should start false")
	}
	if doc.Find("li.episode").Length() != 3 {
		t.Errorf("episodes = %d", doc.Find("li.episode").Length())
	}

	p, rec, _ := newTestPage(t, defaultSource())
	if err := p.ToggleSeries(1); err != nil {
		t.Fatal(err)
	}
	var expanded, display string
	for _, patch := range rec.all() {
		switch {
		case patch.Op == OpAttr && patch.Name == "aria-expanded":
			expanded = patch.Value
		case patch.Op == OpStyle && patch.Name == "display" && strings.HasSuffix(patch.Target, ".episodes"):
			display = patch.Value
		}
	}
	if expanded != "true" || display != "block" {
		t.Errorf("toggle patches: expanded=%q display=%q", expanded, display)
	}
	if err := p.ToggleSeries(9); err == nil {
		t.Error("expected error for unknown series index")
	}
}

func TestSetupIsRepeatable(t *testing.T) {
	p, rec, _ := newTestPage(t, defaultSource())
	p.Setup()
	first := len(rec.all())
	p.Setup()
	if len(rec.all()) != 2*first {
		t.Errorf("second Setup emitted %d patches, first %d", len(rec.all())-first, first)
	}
}
