package archive

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DefaultTemplateRoot is the directory transcript files live under.
const DefaultTemplateRoot = "Template"

// DefaultSeriesFile is the navigation data file served next to the page.
const DefaultSeriesFile = "seriesData.json"

// Series is one named collection of episodes.
type Series struct {
	Name     string
	Episodes []string
}

// SeriesMap maps series names to their episode names. Order follows the
// navigation file, since the sidebar lists series the way they were written.
type SeriesMap struct {
	series []Series
	index  map[string]int
}

// NewSeriesMap builds a SeriesMap from an ordered list of series.
func NewSeriesMap(series ...Series) *SeriesMap {
	m := &SeriesMap{index: make(map[string]int, len(series))}
	for _, s := range series {
		m.add(s.Name, s.Episodes)
	}
	return m
}

func (m *SeriesMap) add(name string, episodes []string) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[name]; ok {
		m.series[i].Episodes = episodes
		return
	}
	m.index[name] = len(m.series)
	m.series = append(m.series, Series{Name: name, Episodes: episodes})
}

// All returns the series in navigation order.
func (m *SeriesMap) All() []Series {
	if m == nil {
		return nil
	}
	return m.series
}

// Episodes returns the episodes of the named series.
func (m *SeriesMap) Episodes(series string) ([]string, bool) {
	if m == nil {
		return nil, false
	}
	i, ok := m.index[series]
	if !ok {
		return nil, false
	}
	return m.series[i].Episodes, true
}

// Len returns the number of series.
func (m *SeriesMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.series)
}

// EpisodeCount returns the total number of episodes across all series.
func (m *SeriesMap) EpisodeCount() int {
	n := 0
	for _, s := range m.All() {
		n += len(s.Episodes)
	}
	return n
}

// UnmarshalJSON decodes a JSON object while keeping key order.
func (m *SeriesMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("series data: expected object, got %v", tok)
	}

	*m = SeriesMap{index: make(map[string]int)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("series data: expected series name, got %v", tok)
		}
		var episodes []string
		if err := dec.Decode(&episodes); err != nil {
			return fmt.Errorf("series data: episodes of %q: %w", name, err)
		}
		m.add(name, episodes)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// MarshalJSON encodes the map as a JSON object in navigation order.
func (m *SeriesMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range m.All() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Name)
		if err != nil {
			return nil, err
		}
		episodes := s.Episodes
		if episodes == nil {
			episodes = []string{}
		}
		val, err := json.Marshal(episodes)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// TranscriptRow is one timestamped unit of spoken text. Absent fields are
// nil so that a missing start can be told apart from an empty one.
type TranscriptRow struct {
	Start *string `json:"start,omitempty"`
	End   *string `json:"end,omitempty"`
	Text  *string `json:"text,omitempty"`
}

// StartValue returns the start time or "".
func (r TranscriptRow) StartValue() string { return deref(r.Start) }

// EndValue returns the end time or "".
func (r TranscriptRow) EndValue() string { return deref(r.End) }

// TextValue returns the row text or "".
func (r TranscriptRow) TextValue() string { return deref(r.Text) }

// HasStart reports whether the row carries a non-empty start time.
func (r TranscriptRow) HasStart() bool { return r.Start != nil && *r.Start != "" }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Transcript is the ordered content of one episode.
type Transcript struct {
	Series  string
	Episode string
	Rows    []TranscriptRow
}

// Title returns the parsed episode title.
func (t *Transcript) Title() EpisodeTitle {
	return ParseEpisodeTitle(t.Episode)
}
