package ui

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/ziadkadry99/pod-search/internal/archive"
)

// HighlightColor is the background applied to a row jumped to.
const HighlightColor = "#e3f2fd"

// HighlightDuration is how long the jump highlight stays.
const HighlightDuration = 2 * time.Second

// FindRow looks up the transcript row for a time in rendered results
// markup and returns its element id.
func FindRow(markup, t string) (string, bool) {
	if t == "" {
		return "", false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return "", false
	}
	id := archive.TargetID(t)
	sel := doc.Find(".transcript-row").FilterFunction(func(_ int, s *goquery.Selection) bool {
		v, _ := s.Attr("id")
		return v == id
	})
	if sel.Length() == 0 {
		return "", false
	}
	return id, true
}
