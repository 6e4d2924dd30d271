package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/pod-search/internal/archive"
	"github.com/ziadkadry99/pod-search/internal/search"
)

// handleListSeries lists series with their episode counts, or the episodes
// of one series.
func (s *Server) handleListSeries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if name := request.GetString("series", ""); name != "" {
		episodes, ok := s.series.Episodes(name)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("unknown series %q", name)), nil
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "%s (%d episodes):\n", archive.DisplayName(name), len(episodes))
		for _, ep := range episodes {
			fmt.Fprintf(&sb, "- %s\n", ep)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}

	if s.series.Len() == 0 {
		return mcp.NewToolResultText("The archive has no series."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d series, %d episodes:\n", s.series.Len(), s.series.EpisodeCount())
	for _, series := range s.series.All() {
		fmt.Fprintf(&sb, "- %s (key %q, %d episodes)\n", archive.DisplayName(series.Name), series.Name, len(series.Episodes))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetTranscript returns the rows of one episode, one per line.
func (s *Server) handleGetTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	series, err := request.RequireString("series")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: series"), nil
	}
	episode, err := request.RequireString("episode")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: episode"), nil
	}

	t, err := s.source.Transcript(ctx, series, episode)
	if err != nil {
		if archive.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("no transcript for %q / %q", series, episode)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to load transcript: %v", err)), nil
	}

	return mcp.NewToolResultText(formatTranscript(t, request.GetString("start", ""))), nil
}

// handleSearchEpisodes runs a search with the remote-then-local fallback.
func (s *Server) handleSearchEpisodes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	results, outcome := s.search.Search(ctx, query)
	if outcome == search.OutcomeEmpty {
		return mcp.NewToolResultError("query must not be blank"), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("No results found."), nil
	}
	if len(results) > limit {
		results = results[:limit]
	}

	return mcp.NewToolResultText(formatSearchResults(results, outcome)), nil
}

// formatTranscript renders a transcript as a header followed by
// "[start] text" lines. Rows before from are skipped.
func formatTranscript(t *archive.Transcript, from string) string {
	title := t.Title()
	var sb strings.Builder
	sb.WriteString(title.Title + "\n")
	if title.Number != "" {
		sb.WriteString(archive.SeriesLine(t.Series, title) + "\n")
	} else {
		sb.WriteString(archive.DisplayName(t.Series) + "\n")
	}
	sb.WriteString("\n")

	for _, row := range t.Rows {
		// Zero-padded timestamps compare correctly as strings.
		if from != "" && row.HasStart() && row.StartValue() < from {
			continue
		}
		if row.HasStart() {
			sb.WriteString("[" + row.StartValue() + "] ")
		}
		sb.WriteString(row.TextValue() + "\n")
	}
	return sb.String()
}

func formatSearchResults(results []search.Result, outcome search.Outcome) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s)", len(results))
	if outcome == search.OutcomeFallback {
		sb.WriteString(" by episode name (search service unavailable)")
	}
	sb.WriteString(":\n")
	for _, r := range results {
		fmt.Fprintf(&sb, "- %s\n", search.Format(r))
	}
	return sb.String()
}
