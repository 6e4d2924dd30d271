package config

import "time"

// Config is the top-level pod-search configuration, corresponding to .podsearch.yml.
type Config struct {
	// ArchiveDir is the site root holding the series file and the
	// transcript tree.
	ArchiveDir string `yaml:"archive_dir" koanf:"archive_dir"`
	// ArchiveURL, when set, reads the archive from a web server instead of
	// ArchiveDir.
	ArchiveURL   string       `yaml:"archive_url" koanf:"archive_url"`
	TemplateRoot string       `yaml:"template_root" koanf:"template_root"`
	SeriesFile   string       `yaml:"series_file" koanf:"series_file"`
	Search       SearchConfig `yaml:"search" koanf:"search"`
	Server       ServerConfig `yaml:"server" koanf:"server"`
	UI           UIConfig     `yaml:"ui" koanf:"ui"`
}

// SearchConfig points at the remote search service.
type SearchConfig struct {
	Endpoint string        `yaml:"endpoint" koanf:"endpoint"`
	K        int           `yaml:"k" koanf:"k"`
	Timeout  time.Duration `yaml:"timeout" koanf:"timeout"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// UIConfig holds page layout and feedback timings.
type UIConfig struct {
	SidebarWidth    int           `yaml:"sidebar_width" koanf:"sidebar_width"`
	MinSidebarWidth int           `yaml:"min_sidebar_width" koanf:"min_sidebar_width"`
	MaxSidebarWidth int           `yaml:"max_sidebar_width" koanf:"max_sidebar_width"`
	Highlight       time.Duration `yaml:"highlight" koanf:"highlight"`
	CopyFeedback    time.Duration `yaml:"copy_feedback" koanf:"copy_feedback"`
}
