package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/pod-search/internal/archive"
	"github.com/ziadkadry99/pod-search/internal/progress"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the archive for missing, broken and orphaned transcripts",
	Long: `Walks every episode in the series data and loads its transcript, then
looks for transcript files no episode points at. Only local archives
(archive_dir) can be checked. Nothing is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.ArchiveURL != "" {
			return fmt.Errorf("check needs a local archive; unset archive_url to use archive_dir %q", cfg.ArchiveDir)
		}

		src, ok := newSource(cfg).(*archive.DirSource)
		if !ok {
			return fmt.Errorf("check needs a local archive")
		}

		checker := archive.NewChecker(src)
		reporter := progress.NewReporter("Checking archive")
		checker.SetProgressFunc(progress.Func(reporter))

		report, err := checker.Run(cmd.Context())
		reporter.Finish()
		if err != nil {
			return err
		}

		printReport(os.Stdout, report)
		if !report.OK() {
			return fmt.Errorf("%d issue(s) found", len(report.Issues))
		}
		return nil
	},
}

func printReport(w io.Writer, r *archive.Report) {
	fmt.Fprintf(w, "Series:   %d\n", r.Series)
	fmt.Fprintf(w, "Episodes: %d\n", r.Episodes)
	fmt.Fprintf(w, "Rows:     %d\n", r.Rows)
	if r.OK() {
		fmt.Fprintln(w, "No issues found.")
		return
	}
	fmt.Fprintf(w, "\n%d issue(s):\n", len(r.Issues))
	for _, issue := range r.Issues {
		fmt.Fprintf(w, "  %s\n", issue)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
