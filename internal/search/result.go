package search

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/pod-search/internal/archive"
)

// Result is one search hit, in the single shape the rest of the app uses.
type Result struct {
	Series     string   `json:"series"`
	Episode    string   `json:"episode"`
	Text       string   `json:"text,omitempty"`
	Start      string   `json:"start,omitempty"`
	Similarity *float64 `json:"similarity_score,omitempty"`
}

// rawResult accepts both the local-match shape (series/episode) and the
// search service shape (series_title/episode_title/similarity_score).
type rawResult struct {
	Series          string   `json:"series"`
	SeriesTitle     string   `json:"series_title"`
	Episode         string   `json:"episode"`
	EpisodeTitle    string   `json:"episode_title"`
	Text            string   `json:"text"`
	Start           string   `json:"start"`
	SimilarityScore *float64 `json:"similarity_score"`
}

// Normalize coalesces the two accepted shapes into a Result.
func (r rawResult) Normalize() Result {
	res := Result{
		Series:     r.Series,
		Episode:    r.Episode,
		Text:       r.Text,
		Start:      r.Start,
		Similarity: r.SimilarityScore,
	}
	if res.Series == "" {
		res.Series = r.SeriesTitle
	}
	if res.Episode == "" {
		res.Episode = r.EpisodeTitle
	}
	return res
}

// SnippetLength is the number of characters of matched text shown per result.
const SnippetLength = 100

// Display holds the rendered pieces of a result line.
type Display struct {
	Series     string
	Episode    string
	Time       string
	Similarity string
	Snippet    string
}

// Format renders a result the way the results panel shows it.
func Format(r Result) Display {
	d := Display{
		Series:  archive.DisplayName(r.Series),
		Episode: r.Episode,
	}
	if r.Start != "" {
		d.Time = " [" + r.Start + "]"
	}
	// A zero score is treated like a missing one.
	if r.Similarity != nil && *r.Similarity != 0 {
		d.Similarity = fmt.Sprintf(" (%.1f%%)", *r.Similarity*100)
	}
	if r.Text != "" {
		d.Snippet = ` - "` + Snippet(r.Text, SnippetLength) + `"`
	}
	return d
}

// String renders the result as one plain-text line.
func (d Display) String() string {
	return d.Series + ": " + d.Episode + d.Time + d.Similarity + d.Snippet
}

// Snippet returns the first n characters of text, ellipsized when longer.
func Snippet(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}

// LocalMatch scans episode names for a case-insensitive substring match.
// Results carry no snippet and no score.
func LocalMatch(series *archive.SeriesMap, query string) []Result {
	q := strings.ToLower(query)
	var results []Result
	for _, s := range series.All() {
		for _, ep := range s.Episodes {
			if strings.Contains(strings.ToLower(ep), q) {
				results = append(results, Result{Series: s.Name, Episode: ep})
			}
		}
	}
	return results
}
