package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/ziadkadry99/pod-search/internal/archive"
	"github.com/ziadkadry99/pod-search/internal/search"
)

// Renderer turns page state into HTML fragments.
type Renderer struct {
	tmpl *template.Template
	md   goldmark.Markdown
}

// NewRenderer parses the page templates.
func NewRenderer() (*Renderer, error) {
	tmpl := template.New("page")
	for _, src := range []string{
		defaultHeaderTemplate,
		episodeHeaderTemplate,
		transcriptTemplate,
		loadErrorTemplate,
		navTemplate,
		resultsTemplate,
	} {
		if _, err := tmpl.Parse(src); err != nil {
			return nil, fmt.Errorf("parsing templates: %w", err)
		}
	}
	if _, err := tmpl.New("shell").Parse(shellTemplate); err != nil {
		return nil, fmt.Errorf("parsing shell template: %w", err)
	}

	return &Renderer{tmpl: tmpl, md: newRowMarkdown()}, nil
}

// MustRenderer is NewRenderer for package-level use; the templates are
// constants so a parse failure is a programming error.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.String(), nil
}

// ShellData fills the page skeleton.
type ShellData struct {
	Title        string
	BasePath     string
	SidebarWidth int
	Nav          template.HTML
	Header       template.HTML
	CopyLabel    string
}

// Shell renders the full page.
func (r *Renderer) Shell(d ShellData) (string, error) {
	if d.Header == "" {
		h, err := r.DefaultHeader()
		if err != nil {
			return "", err
		}
		d.Header = template.HTML(h)
	}
	if d.CopyLabel == "" {
		d.CopyLabel = CopyLabel
	}
	return r.execute("shell", d)
}

// DefaultHeader renders the header shown before any episode is loaded.
func (r *Renderer) DefaultHeader() (string, error) {
	return r.execute("default-header", nil)
}

// EpisodeHeader renders the clean title and series line.
func (r *Renderer) EpisodeHeader(series, episode string) (string, error) {
	t := archive.ParseEpisodeTitle(episode)
	return r.execute("episode-header", struct {
		Title      string
		SeriesLine string
	}{t.Title, archive.SeriesLine(series, t)})
}

type rowView struct {
	ID    string
	Start string
	End   string
	Text  template.HTML
}

// Transcript renders the rows of an episode.
func (r *Renderer) Transcript(rows []archive.TranscriptRow) (string, error) {
	views := make([]rowView, len(rows))
	for i, row := range rows {
		text, err := r.text(row.TextValue())
		if err != nil {
			return "", err
		}
		views[i] = rowView{
			ID:    archive.RowID(row, i),
			Start: row.StartValue(),
			End:   row.EndValue(),
			Text:  text,
		}
	}
	return r.execute("transcript", views)
}

// text renders lightly marked-up row text as a single paragraph. An empty
// row still gets its paragraph so the columns line up.
func (r *Renderer) text(s string) (template.HTML, error) {
	if strings.TrimSpace(s) == "" {
		return "<p></p>", nil
	}
	var buf bytes.Buffer
	s = blankLinesRe.ReplaceAllString(strings.TrimSpace(s), "\n")
	if err := r.md.Convert([]byte(s), &buf); err != nil {
		return "", fmt.Errorf("converting row text: %w", err)
	}
	return template.HTML(strings.TrimSpace(buf.String())), nil
}

// LoadError renders the inline message shown when an episode fails to load.
func (r *Renderer) LoadError(series, episode string, err error) (string, error) {
	return r.execute("load-error", struct {
		Series, Episode string
		Err             string
	}{series, episode, err.Error()})
}

// Nav renders the series tree.
func (r *Renderer) Nav(nav *Nav) (string, error) {
	return r.execute("nav", nav.Series)
}

type resultView struct {
	search.Result
	Display search.Display
}

// Results renders search results, or a "no results" line.
func (r *Renderer) Results(results []search.Result) (string, error) {
	views := make([]resultView, len(results))
	for i, res := range results {
		views[i] = resultView{Result: res, Display: search.Format(res)}
	}
	return r.execute("results", views)
}
