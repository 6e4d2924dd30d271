package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"
	"time"
)

// Source provides the navigation data and transcripts of an archive.
type Source interface {
	// SeriesMap loads the navigation data.
	SeriesMap(ctx context.Context) (*SeriesMap, error)

	// Transcript loads the rows of one episode.
	Transcript(ctx context.Context, series, episode string) (*Transcript, error)
}

// HTTPSource reads the archive from a web server, the same way the page does.
type HTTPSource struct {
	BaseURL      string
	TemplateRoot string
	SeriesFile   string
	Client       *http.Client
}

// NewHTTPSource creates an HTTPSource rooted at baseURL.
func NewHTTPSource(baseURL, templateRoot string) *HTTPSource {
	return &HTTPSource{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		TemplateRoot: templateRoot,
		SeriesFile:   DefaultSeriesFile,
		Client:       &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *HTTPSource) SeriesMap(ctx context.Context) (*SeriesMap, error) {
	var m SeriesMap
	if err := s.getJSON(ctx, s.BaseURL+"/"+s.seriesFile(), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *HTTPSource) Transcript(ctx context.Context, series, episode string) (*Transcript, error) {
	url := s.BaseURL + "/" + EpisodePath(s.TemplateRoot, series, episode)
	var rows []TranscriptRow
	if err := s.getJSON(ctx, url, &rows); err != nil {
		return nil, err
	}
	return &Transcript{Series: series, Episode: episode, Rows: rows}, nil
}

func (s *HTTPSource) seriesFile() string {
	if s.SeriesFile == "" {
		return DefaultSeriesFile
	}
	return s.SeriesFile
}

func (s *HTTPSource) getJSON(ctx context.Context, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return NewFetchError(url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &ParseError{URL: url, Err: err}
	}
	return nil
}

// DirSource reads the archive from a directory laid out like the site:
// the series file at the top and transcripts under the template root.
type DirSource struct {
	FS           fs.FS
	TemplateRoot string
	SeriesFile   string
}

// NewDirSource creates a DirSource over dir.
func NewDirSource(dir, templateRoot string) *DirSource {
	return &DirSource{
		FS:           os.DirFS(dir),
		TemplateRoot: templateRoot,
		SeriesFile:   DefaultSeriesFile,
	}
}

func (s *DirSource) SeriesMap(ctx context.Context) (*SeriesMap, error) {
	name := s.SeriesFile
	if name == "" {
		name = DefaultSeriesFile
	}
	var m SeriesMap
	if err := s.readJSON(name, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *DirSource) Transcript(ctx context.Context, series, episode string) (*Transcript, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var rows []TranscriptRow
	if err := s.readJSON(FilePath(s.TemplateRoot, series, episode), &rows); err != nil {
		return nil, err
	}
	return &Transcript{Series: series, Episode: episode, Rows: rows}, nil
}

func (s *DirSource) readJSON(name string, v any) error {
	name = path.Clean(name)
	data, err := fs.ReadFile(s.FS, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewFetchError(name, http.StatusNotFound)
		}
		if errors.Is(err, fs.ErrInvalid) {
			return NewFetchError(name, http.StatusBadRequest)
		}
		return &NetworkError{URL: name, Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &ParseError{URL: name, Err: err}
	}
	return nil
}
