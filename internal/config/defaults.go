package config

import (
	"github.com/ziadkadry99/pod-search/internal/archive"
	"github.com/ziadkadry99/pod-search/internal/search"
	"github.com/ziadkadry99/pod-search/internal/ui"
)

// DefaultConfigFile is the config path used when --config is not given.
const DefaultConfigFile = ".podsearch.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ArchiveDir:   "site",
		TemplateRoot: archive.DefaultTemplateRoot,
		SeriesFile:   archive.DefaultSeriesFile,
		Search: SearchConfig{
			Endpoint: search.DefaultEndpoint,
			K:        search.DefaultK,
		},
		Server: ServerConfig{
			Port:            5000,
			AllowAllOrigins: true,
		},
		UI: UIConfig{
			SidebarWidth:    ui.DefaultSidebarWidth,
			MinSidebarWidth: ui.MinSidebarWidth,
			MaxSidebarWidth: ui.MaxSidebarWidth,
			Highlight:       ui.HighlightDuration,
			CopyFeedback:    ui.CopyFeedbackDuration,
		},
	}
}
