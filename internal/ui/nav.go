package ui

import (
	"fmt"

	"github.com/ziadkadry99/pod-search/internal/archive"
)

// EpisodeItem is one clickable episode in the sidebar.
type EpisodeItem struct {
	Series  string
	Episode string
	Display string
}

// SeriesNode is an expandable series header and its episode list.
type SeriesNode struct {
	Key      string
	Display  string
	Expanded bool
	Episodes []EpisodeItem
}

// Nav is the sidebar navigation tree.
type Nav struct {
	Series []*SeriesNode
}

// BuildNav builds a collapsed tree from the navigation data. Display names
// get their underscores turned back into spaces; keys keep them.
func BuildNav(m *archive.SeriesMap) *Nav {
	nav := &Nav{}
	for _, s := range m.All() {
		node := &SeriesNode{
			Key:      s.Name,
			Display:  archive.DisplayName(s.Name),
			Episodes: make([]EpisodeItem, len(s.Episodes)),
		}
		for i, ep := range s.Episodes {
			node.Episodes[i] = EpisodeItem{Series: s.Name, Episode: ep, Display: ep}
		}
		nav.Series = append(nav.Series, node)
	}
	return nav
}

// Toggle flips the expanded state of the series at index and returns it.
func (n *Nav) Toggle(index int) (*SeriesNode, error) {
	if index < 0 || index >= len(n.Series) {
		return nil, fmt.Errorf("no series at index %d", index)
	}
	node := n.Series[index]
	node.Expanded = !node.Expanded
	return node, nil
}
