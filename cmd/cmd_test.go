package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ziadkadry99/pod-search/internal/archive"
	"github.com/ziadkadry99/pod-search/internal/config"
)

func str(s string) *string { return &s }

func testTranscript() *archive.Transcript {
	return &archive.Transcript{
		Series:  "Paradigm_Podcast",
		Episode: "Episode 5: The Covenant",
		Rows: []archive.TranscriptRow{
			{Start: str("00:00:01"), Text: str("Welcome.")},
			{Text: str("Untimed aside.")},
			{Start: str("00:02:00"), Text: str("The covenant.")},
		},
	}
}

func TestPrintTranscript(t *testing.T) {
	var buf bytes.Buffer
	printTranscript(&buf, testTranscript(), "")

	out := buf.String()
	for _, want := range []string{
		"The Covenant\n",
		"Paradigm Podcast, Episode 5\n",
		"  [00:00:01] Welcome.\n",
		"  Untimed aside.\n",
		"  [00:02:00] The covenant.\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "> ") {
		t.Error("no row should be marked without a target time")
	}
}

func TestPrintTranscriptMarksTarget(t *testing.T) {
	var buf bytes.Buffer
	printTranscript(&buf, testTranscript(), "00:01:00")

	if !strings.Contains(buf.String(), "> [00:02:00] The covenant.") {
		t.Errorf("expected first row at or after target marked:\n%s", buf.String())
	}
	if strings.Count(buf.String(), "> ") != 1 {
		t.Error("exactly one row should be marked")
	}
}

func TestCopyText(t *testing.T) {
	orig := clipboardWrite
	t.Cleanup(func() { clipboardWrite = orig })

	tests := []struct {
		name      string
		text      string
		writeErr  error
		wantWrite string
		wantOut   string
	}{
		{"copies trimmed text", "  hello  ", nil, "hello", "✅ Copied!\n"},
		{"blank is ignored", "   ", nil, "", ""},
		{"failure is logged only", "hello", errors.New("no clipboard"), "hello", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var written string
			clipboardWrite = func(s string) error {
				written = s
				return tt.writeErr
			}
			var buf bytes.Buffer
			b := &browser{out: &buf}
			b.copyText(tt.text)

			if written != tt.wantWrite {
				t.Errorf("clipboard got %q, want %q", written, tt.wantWrite)
			}
			if buf.String() != tt.wantOut {
				t.Errorf("output %q, want %q", buf.String(), tt.wantOut)
			}
		})
	}
}

func TestContainsSearcher(t *testing.T) {
	items := []string{"Episode 1: In The Beginning", "Episode 2: The Flood"}
	s := containsSearcher(items)
	if !s("flood", 1) {
		t.Error("expected case-insensitive match")
	}
	if s("flood", 0) {
		t.Error("unexpected match")
	}
}

func TestNewSource(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ArchiveDir = t.TempDir()
	if _, ok := newSource(cfg).(*archive.DirSource); !ok {
		t.Error("expected DirSource for archive_dir")
	}

	cfg.ArchiveURL = "http://localhost:5000"
	src, ok := newSource(cfg).(*archive.HTTPSource)
	if !ok {
		t.Fatal("expected HTTPSource when archive_url is set")
	}
	if src.BaseURL != "http://localhost:5000" {
		t.Errorf("BaseURL = %q", src.BaseURL)
	}
}

func TestOpenArchive(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "seriesData.json"), []byte(`{"A": ["1", "2"], "B": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.ArchiveDir = dir

	_, series, err := openArchive(t.Context(), cfg)
	if err != nil {
		t.Fatalf("openArchive: %v", err)
	}
	if series.Len() != 2 || series.EpisodeCount() != 2 {
		t.Errorf("got %d series, %d episodes", series.Len(), series.EpisodeCount())
	}

	cfg.ArchiveDir = t.TempDir()
	if _, _, err := openArchive(t.Context(), cfg); !archive.IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, &archive.Report{Series: 1, Episodes: 2, Rows: 10})
	if !strings.Contains(buf.String(), "No issues found.") {
		t.Errorf("unexpected report:\n%s", buf.String())
	}

	buf.Reset()
	printReport(&buf, &archive.Report{Issues: []archive.Issue{{Kind: archive.IssueOrphan, Path: "Template/X/y.json"}}})
	if !strings.Contains(buf.String(), "1 issue(s):") || !strings.Contains(buf.String(), "orphan: Template/X/y.json") {
		t.Errorf("unexpected report:\n%s", buf.String())
	}
}

func TestCheckSampleArchive(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ArchiveDir = filepath.Join("..", "testdata", "archive")

	src, ok := newSource(cfg).(*archive.DirSource)
	if !ok {
		t.Fatal("expected DirSource")
	}
	report, err := archive.NewChecker(src).Run(t.Context())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !report.OK() {
		t.Errorf("sample archive should be clean, got %v", report.Issues)
	}
	if report.Series != 2 || report.Episodes != 4 || report.Rows != 6 {
		t.Errorf("report = %+v", report)
	}
}
