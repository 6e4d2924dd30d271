package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/pod-search/internal/live"
	"github.com/ziadkadry99/pod-search/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the transcript browser",
	Long: `Starts the HTTP server: the browser page, its live session endpoint,
the archive files and a small JSON API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		source, series, err := openArchive(ctx, cfg)
		if err != nil {
			return err
		}
		svc := newSearchService(cfg, series)

		page, err := live.New(series, source, svc, live.Settings{
			SidebarWidth: cfg.UI.SidebarWidth,
			MinWidth:     cfg.UI.MinSidebarWidth,
			MaxWidth:     cfg.UI.MaxSidebarWidth,
			Highlight:    cfg.UI.Highlight,
			CopyFeedback: cfg.UI.CopyFeedback,
		})
		if err != nil {
			return fmt.Errorf("building page: %w", err)
		}

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAllOrigins,
		}, series, source, svc, page)

		// Graceful shutdown.
		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				slog.Error("shutdown", "err", err)
			}
		}()

		fmt.Fprintf(os.Stderr, "pod-search %s starting on port %d\n", Version, cfg.Server.Port)
		fmt.Fprintf(os.Stderr, "  Series: %d (%d episodes)\n", series.Len(), series.EpisodeCount())
		fmt.Fprintf(os.Stderr, "  Search: %s\n", cfg.Search.Endpoint)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 5000, "port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}
