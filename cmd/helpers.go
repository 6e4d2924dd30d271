package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ziadkadry99/pod-search/internal/archive"
	"github.com/ziadkadry99/pod-search/internal/config"
	"github.com/ziadkadry99/pod-search/internal/search"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `podsearch init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newSource picks the archive source the config points at. A URL wins over
// a directory.
func newSource(cfg *config.Config) archive.Source {
	if cfg.ArchiveURL != "" {
		src := archive.NewHTTPSource(cfg.ArchiveURL, cfg.TemplateRoot)
		src.SeriesFile = cfg.SeriesFile
		return src
	}
	src := archive.NewDirSource(cfg.ArchiveDir, cfg.TemplateRoot)
	src.SeriesFile = cfg.SeriesFile
	return src
}

// openArchive loads the series map once; every command works from it.
func openArchive(ctx context.Context, cfg *config.Config) (archive.Source, *archive.SeriesMap, error) {
	src := newSource(cfg)
	series, err := src.SeriesMap(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("loading series data: %w", err)
	}
	slog.Debug("archive loaded", "series", series.Len(), "episodes", series.EpisodeCount())
	return src, series, nil
}

// newSearchService builds the remote client with the local fallback.
func newSearchService(cfg *config.Config, series *archive.SeriesMap) *search.Service {
	client := search.NewClient(cfg.Search.Endpoint, cfg.Search.K, cfg.Search.Timeout)
	slog.Debug("search service", "endpoint", client.Endpoint(), "k", cfg.Search.K)
	return search.NewService(client, series)
}
