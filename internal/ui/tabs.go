package ui

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Tabs tracks which of a set of mutually exclusive panels is shown.
type Tabs struct {
	names  []string
	active string
}

// NewTabs creates a controller over names with initial as the active tab.
func NewTabs(names []string, initial string) *Tabs {
	return &Tabs{names: names, active: initial}
}

// DiscoverTabs reads the tab set from markup: every .tab-button names a tab
// through data-tab, and the initial tab is the .tab-panel carrying "active".
func DiscoverTabs(markup string) (*Tabs, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parsing tab markup: %w", err)
	}

	var names []string
	doc.Find(".tab-button[data-tab]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("data-tab")
		names = append(names, name)
	})
	var active string
	if id, ok := doc.Find(".tab-panel.active").First().Attr("id"); ok {
		active = strings.TrimSuffix(id, "-tab")
	}
	return NewTabs(names, active), nil
}

// Names returns the known tabs in markup order.
func (t *Tabs) Names() []string { return t.names }

// Active returns the visible tab.
func (t *Tabs) Active() string { return t.active }

// Has reports whether name is a known tab.
func (t *Tabs) Has(name string) bool {
	for _, n := range t.names {
		if n == name {
			return true
		}
	}
	return false
}

// Activate shows the named tab and hides every other one. It reports false,
// leaving the state unchanged, when no panel has that name.
func (t *Tabs) Activate(name string) bool {
	if !t.Has(name) {
		return false
	}
	t.active = name
	return true
}

// PanelID returns the element id of a tab's panel.
func PanelID(name string) string { return name + "-tab" }
