package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides. Nested keys use a double
// underscore: PODSEARCH_SEARCH__ENDPOINT sets search.endpoint.
const EnvPrefix = "PODSEARCH_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (PODSEARCH_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps PODSEARCH_SEARCH__ENDPOINT to search.endpoint.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.ArchiveDir == "" && c.ArchiveURL == "" {
		return fmt.Errorf("archive_dir or archive_url is required")
	}
	if c.ArchiveURL != "" {
		if u, err := url.Parse(c.ArchiveURL); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid archive_url %q", c.ArchiveURL)
		}
	}

	if c.Search.Endpoint == "" {
		return fmt.Errorf("search.endpoint is required")
	}
	if u, err := url.Parse(c.Search.Endpoint); err != nil || u.Scheme == "" {
		return fmt.Errorf("invalid search.endpoint %q", c.Search.Endpoint)
	}
	if c.Search.K <= 0 {
		return fmt.Errorf("search.k must be positive")
	}
	if c.Search.Timeout < 0 {
		return fmt.Errorf("search.timeout must be non-negative")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	ui := c.UI
	if ui.MinSidebarWidth <= 0 || ui.MaxSidebarWidth < ui.MinSidebarWidth {
		return fmt.Errorf("ui sidebar bounds [%d, %d] are invalid", ui.MinSidebarWidth, ui.MaxSidebarWidth)
	}
	if ui.SidebarWidth < ui.MinSidebarWidth || ui.SidebarWidth > ui.MaxSidebarWidth {
		return fmt.Errorf("ui.sidebar_width %d must be within [%d, %d]", ui.SidebarWidth, ui.MinSidebarWidth, ui.MaxSidebarWidth)
	}
	if ui.Highlight < 0 || ui.CopyFeedback < 0 {
		return fmt.Errorf("ui durations must be non-negative")
	}

	return nil
}
