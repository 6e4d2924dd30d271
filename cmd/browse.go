package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/pod-search/internal/archive"
	"github.com/ziadkadry99/pod-search/internal/search"
)

var clipboardWrite = clipboard.WriteAll

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse and search the archive in the terminal",
	Long: `An interactive terminal front end: pick a series and an episode to read
its transcript, search, and copy a row to the clipboard.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		source, series, err := openArchive(ctx, cfg)
		if err != nil {
			return err
		}

		b := &browser{
			series: series,
			source: source,
			search: newSearchService(cfg, series),
			out:    os.Stdout,
		}
		err = b.run(ctx)
		if isPromptExit(err) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

// browser is the terminal counterpart of the page: the same archive source
// and search service behind promptui menus.
type browser struct {
	series *archive.SeriesMap
	source archive.Source
	search *search.Service
	out    io.Writer
}

const (
	menuBrowse = "Browse series"
	menuSearch = "Search"
	menuQuit   = "Quit"
)

func (b *browser) run(ctx context.Context) error {
	for {
		menu := promptui.Select{
			Label: "pod-search",
			Items: []string{menuBrowse, menuSearch, menuQuit},
		}
		_, choice, err := menu.Run()
		if err != nil {
			return err
		}

		switch choice {
		case menuBrowse:
			err = b.browseSeries(ctx)
		case menuSearch:
			err = b.searchPrompt(ctx)
		case menuQuit:
			return nil
		}
		if err != nil && !errors.Is(err, promptui.ErrInterrupt) {
			return err
		}
	}
}

func (b *browser) browseSeries(ctx context.Context) error {
	all := b.series.All()
	if len(all) == 0 {
		fmt.Fprintln(b.out, "The archive has no series.")
		return nil
	}
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = archive.DisplayName(s.Name)
	}

	seriesPrompt := promptui.Select{
		Label:    "Series",
		Items:    names,
		Size:     15,
		Searcher: containsSearcher(names),
	}
	idx, _, err := seriesPrompt.Run()
	if err != nil {
		return err
	}
	chosen := all[idx]

	episodePrompt := promptui.Select{
		Label:    names[idx],
		Items:    chosen.Episodes,
		Size:     15,
		Searcher: containsSearcher(chosen.Episodes),
	}
	epIdx, _, err := episodePrompt.Run()
	if err != nil {
		return err
	}

	return b.openEpisode(ctx, chosen.Name, chosen.Episodes[epIdx], "")
}

func (b *browser) searchPrompt(ctx context.Context) error {
	queryPrompt := promptui.Prompt{Label: "Search"}
	query, err := queryPrompt.Run()
	if err != nil {
		return err
	}

	results, outcome := b.search.Search(ctx, query)
	switch {
	case outcome == search.OutcomeEmpty:
		return nil
	case len(results) == 0:
		fmt.Fprintln(b.out, "No results found.")
		return nil
	case outcome == search.OutcomeFallback:
		fmt.Fprintln(b.out, "Search service unavailable; matching episode names.")
	}

	labels := make([]string, len(results))
	for i, r := range results {
		labels[i] = search.Format(r).String()
	}
	resultPrompt := promptui.Select{
		Label: fmt.Sprintf("%d result(s)", len(results)),
		Items: labels,
		Size:  15,
	}
	idx, _, err := resultPrompt.Run()
	if err != nil {
		return err
	}
	r := results[idx]
	return b.openEpisode(ctx, r.Series, r.Episode, r.Start)
}

func (b *browser) openEpisode(ctx context.Context, series, episode, at string) error {
	t, err := b.source.Transcript(ctx, series, episode)
	if err != nil {
		fmt.Fprintf(b.out, "Error loading episode: %v\n", err)
		return nil
	}
	printTranscript(b.out, t, at)

	for {
		actions := promptui.Select{
			Label: "Episode",
			Items: []string{"Copy a row", "Back"},
		}
		_, action, err := actions.Run()
		if err != nil || action == "Back" {
			return err
		}
		if err := b.copyRow(t); err != nil {
			return err
		}
	}
}

func (b *browser) copyRow(t *archive.Transcript) error {
	if len(t.Rows) == 0 {
		return nil
	}
	labels := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		labels[i] = rowLabel(row)
	}
	rowPrompt := promptui.Select{
		Label:    "Row to copy",
		Items:    labels,
		Size:     15,
		Searcher: containsSearcher(labels),
	}
	idx, _, err := rowPrompt.Run()
	if err != nil {
		return err
	}
	b.copyText(t.Rows[idx].TextValue())
	return nil
}

// copyText writes text to the clipboard. Failure is logged only.
func (b *browser) copyText(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if err := clipboardWrite(text); err != nil {
		slog.Warn("copy failed", "err", err)
		return
	}
	fmt.Fprintln(b.out, "✅ Copied!")
}

// printTranscript writes the episode header and its rows. The row at
// (or first after) at is marked.
func printTranscript(w io.Writer, t *archive.Transcript, at string) {
	title := t.Title()
	fmt.Fprintln(w)
	fmt.Fprintln(w, title.Title)
	fmt.Fprintln(w, archive.SeriesLine(t.Series, title))
	fmt.Fprintln(w)

	marked := at == ""
	for _, row := range t.Rows {
		prefix := "  "
		if !marked && row.HasStart() && row.StartValue() >= at {
			prefix = "> "
			marked = true
		}
		fmt.Fprintln(w, prefix+rowLabel(row))
	}
	fmt.Fprintln(w)
}

func rowLabel(row archive.TranscriptRow) string {
	if row.HasStart() {
		return "[" + row.StartValue() + "] " + row.TextValue()
	}
	return row.TextValue()
}

func containsSearcher(items []string) func(string, int) bool {
	return func(input string, index int) bool {
		return strings.Contains(strings.ToLower(items[index]), strings.ToLower(input))
	}
}

func isPromptExit(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF)
}
