package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/pod-search/internal/archive"
)

// detectArchiveDir looks for a directory holding the series file.
func detectArchiveDir() string {
	for _, dir := range []string{".", "site", "public"} {
		if _, err := os.Stat(filepath.Join(dir, archive.DefaultSeriesFile)); err == nil {
			return dir
		}
	}
	return "site"
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to pod-search! Let's point it at your transcript archive.")
	fmt.Println()

	cfg := DefaultConfig()

	sourcePrompt := promptui.Select{
		Label: "Where is the archive?",
		Items: []string{"a local directory", "a web server"},
	}
	sourceIdx, _, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("archive source: %w", err)
	}

	if sourceIdx == 0 {
		dirPrompt := promptui.Prompt{
			Label:   "Archive directory (holds " + archive.DefaultSeriesFile + ")",
			Default: detectArchiveDir(),
		}
		cfg.ArchiveDir, err = dirPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("archive directory: %w", err)
		}
		if _, statErr := os.Stat(filepath.Join(cfg.ArchiveDir, cfg.SeriesFile)); statErr != nil {
			fmt.Printf("Note: %s not found in %s yet.\n", cfg.SeriesFile, cfg.ArchiveDir)
		}
	} else {
		urlPrompt := promptui.Prompt{
			Label: "Archive base URL",
			Validate: func(s string) error {
				c := DefaultConfig()
				c.ArchiveURL = s
				return c.Validate()
			},
		}
		cfg.ArchiveURL, err = urlPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("archive url: %w", err)
		}
	}

	endpointPrompt := promptui.Prompt{
		Label:   "Search service endpoint",
		Default: cfg.Search.Endpoint,
	}
	cfg.Search.Endpoint, err = endpointPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("search endpoint: %w", err)
	}

	portPrompt := promptui.Prompt{
		Label:   "Port to serve the site on",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 || n > 65535 {
				return fmt.Errorf("not a port: %q", s)
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
