// Package config handles TOML-based configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"filmwatch/internal/httputil"
)

// Config holds all application configuration.
type Config struct {
	DirectoryURL string `toml:"directory_url"`
	SearchURL    string `toml:"search_url"`
	IconURL      string `toml:"icon_url"`
	EmbedWidth   int    `toml:"embed_width"`
	EmbedHeight  int    `toml:"embed_height"`
	FetchTimeout int    `toml:"fetch_timeout"` // seconds
	Format       string `toml:"format"`
	Listen       string `toml:"listen"`
	History      bool   `toml:"history"`
	Debug        bool   `toml:"debug"`

	// AllowDirectoryOverride lets HTTP requests pick their own directory.
	AllowDirectoryOverride bool `toml:"allow_directory_override"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DirectoryURL: "",
		SearchURL:    "https://www.justwatch.com/au/search",
		IconURL:      "https://filebucketdave.s3.amazonaws.com/banner.js/images/icons8-movie-beginning-64.png",
		EmbedWidth:   640,
		EmbedHeight:  480,
		FetchTimeout: 30,
		Format:       "text",
		Listen:       "127.0.0.1:8080",
		History:      true,
		Debug:        false,

		AllowDirectoryOverride: false,
	}
}

// configDir returns the XDG-compliant config directory.
func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "filmwatch"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "filmwatch"), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
// DirectoryURL is not checked here: a bad directory is reported and skipped
// at resolution time rather than refusing to start.
func (c *Config) Validate() error {
	validFormats := map[string]bool{
		"text": true, "html": true, "json": true,
	}
	if !validFormats[strings.ToLower(c.Format)] {
		return fmt.Errorf("unsupported format %q (valid: text, html, json)", c.Format)
	}

	if err := httputil.ValidateURL(c.SearchURL); err != nil {
		return fmt.Errorf("search_url: %w", err)
	}

	if c.EmbedWidth <= 0 || c.EmbedHeight <= 0 {
		return fmt.Errorf("embed size must be positive, got %dx%d", c.EmbedWidth, c.EmbedHeight)
	}

	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got %d", c.FetchTimeout)
	}

	if c.Listen == "" {
		return fmt.Errorf("listen address cannot be empty")
	}

	return nil
}

// Timeout returns FetchTimeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.FetchTimeout) * time.Second
}

// HistoryPath returns the path to the history database.
func HistoryPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "filmwatch", "history.db"), nil
}
