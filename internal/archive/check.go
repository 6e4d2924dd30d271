package archive

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// IssueKind classifies a problem found while checking an archive.
type IssueKind string

const (
	IssueMissing    IssueKind = "missing"
	IssueUnreadable IssueKind = "unreadable"
	IssueDuplicate  IssueKind = "duplicate_row"
	IssueOrphan     IssueKind = "orphan"
)

// Issue is one problem found by a Checker.
type Issue struct {
	Kind    IssueKind
	Series  string
	Episode string
	Path    string
	Detail  string
}

func (i Issue) String() string {
	if i.Series == "" {
		return fmt.Sprintf("%s: %s %s", i.Kind, i.Path, i.Detail)
	}
	return fmt.Sprintf("%s: %s / %s (%s) %s", i.Kind, i.Series, i.Episode, i.Path, i.Detail)
}

// Report summarizes an archive check.
type Report struct {
	Series   int
	Episodes int
	Rows     int
	Issues   []Issue
}

// OK reports whether the check found nothing wrong.
func (r *Report) OK() bool { return len(r.Issues) == 0 }

// ProgressFunc is called after each episode is checked.
type ProgressFunc func(done, total int, current string)

// Checker validates that a directory archive is consistent with its
// navigation data. It never writes.
type Checker struct {
	src      *DirSource
	progress ProgressFunc
}

// NewChecker creates a Checker over src.
func NewChecker(src *DirSource) *Checker {
	return &Checker{src: src}
}

// SetProgressFunc registers a progress callback.
func (c *Checker) SetProgressFunc(fn ProgressFunc) { c.progress = fn }

// Run checks every episode of the navigation data, then looks for transcript
// files that no episode points at.
func (c *Checker) Run(ctx context.Context) (*Report, error) {
	series, err := c.src.SeriesMap(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading series data: %w", err)
	}

	report := &Report{Series: series.Len(), Episodes: series.EpisodeCount()}
	referenced := make(map[string]bool, report.Episodes)
	done := 0

	for _, s := range series.All() {
		for _, ep := range s.Episodes {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			p := FilePath(c.src.TemplateRoot, s.Name, ep)
			referenced[path.Clean(p)] = true

			t, err := c.src.Transcript(ctx, s.Name, ep)
			switch {
			case IsNotFound(err):
				report.Issues = append(report.Issues, Issue{Kind: IssueMissing, Series: s.Name, Episode: ep, Path: p})
			case err != nil:
				report.Issues = append(report.Issues, Issue{Kind: IssueUnreadable, Series: s.Name, Episode: ep, Path: p, Detail: err.Error()})
			default:
				report.Rows += len(t.Rows)
				for _, id := range DuplicateRowIDs(t.Rows) {
					report.Issues = append(report.Issues, Issue{Kind: IssueDuplicate, Series: s.Name, Episode: ep, Path: p, Detail: id})
				}
			}

			done++
			if c.progress != nil {
				c.progress(done, report.Episodes, s.Name+" / "+ep)
			}
		}
	}

	orphans, err := c.orphans(referenced)
	if err != nil {
		return nil, err
	}
	report.Issues = append(report.Issues, orphans...)
	return report, nil
}

func (c *Checker) orphans(referenced map[string]bool) ([]Issue, error) {
	root := c.src.TemplateRoot
	if root == "" {
		root = DefaultTemplateRoot
	}
	if _, err := fs.Stat(c.src.FS, root); err != nil {
		return nil, nil
	}

	files, err := doublestar.Glob(c.src.FS, root+"/**/*.json", doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	sort.Strings(files)

	var issues []Issue
	for _, f := range files {
		if !referenced[path.Clean(f)] {
			issues = append(issues, Issue{Kind: IssueOrphan, Path: f})
		}
	}
	return issues, nil
}

// DuplicateRowIDs returns the row ids that occur more than once, in order of
// their second occurrence. Duplicates make jump-to-time ambiguous.
func DuplicateRowIDs(rows []TranscriptRow) []string {
	seen := make(map[string]bool, len(rows))
	var dups []string
	for i, r := range rows {
		id := RowID(r, i)
		if seen[id] {
			dups = append(dups, id)
			continue
		}
		seen[id] = true
	}
	return dups
}
