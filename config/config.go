package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config is the sitesearch configuration file.
type Config struct {
	Site   SiteConfig   `toml:"site" yaml:"site"`
	Search SearchConfig `toml:"search" yaml:"search"`
	Build  BuildConfig  `toml:"build" yaml:"build"`
	Server ServerConfig `toml:"server" yaml:"server"`
}

// SiteConfig locates the site on disk and on the web.
type SiteConfig struct {
	BaseURL    string `toml:"base_url" yaml:"base_url"`
	ContentDir string `toml:"content_dir" yaml:"content_dir"`
	OutputDir  string `toml:"output_dir" yaml:"output_dir"`
	DataDir    string `toml:"data_dir" yaml:"data_dir"`
}

// SearchConfig tunes the search client.
type SearchConfig struct {
	IndexURL       string `toml:"index_url" yaml:"index_url"`
	MaxResults     int    `toml:"max_results" yaml:"max_results"`
	MinQueryLength int    `toml:"min_query_length" yaml:"min_query_length"`
	SummaryLength  int    `toml:"summary_length" yaml:"summary_length"`
	DebounceMS     int    `toml:"debounce_ms" yaml:"debounce_ms"`
}

// BuildConfig tunes the index builder.
type BuildConfig struct {
	SummaryWords  int  `toml:"summary_words" yaml:"summary_words"`
	IncludeDrafts bool `toml:"include_drafts" yaml:"include_drafts"`
}

// ServerConfig configures the preview server.
type ServerConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Site: SiteConfig{
			ContentDir: "content",
			OutputDir:  "public",
			DataDir:    ".sitesearch",
		},
		Search: SearchConfig{
			MaxResults:     10,
			MinQueryLength: 2,
			SummaryLength:  150,
			DebounceMS:     200,
		},
		Build: BuildConfig{
			SummaryWords: 70,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:1414",
		},
	}
}

// Load reads path over the defaults. A missing file yields the defaults. Files ending in .yaml or .yml are
// YAML, everything else is TOML.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode yaml config %s: %w", path, err)
		}
	default:
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("failed to decode toml config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the value ranges.
func (c *Config) Validate() error {
	if c.Search.MaxResults <= 0 {
		return fmt.Errorf("%w: search.max_results must be positive", ErrInvalidConfig)
	}
	if c.Search.MinQueryLength <= 0 {
		return fmt.Errorf("%w: search.min_query_length must be positive", ErrInvalidConfig)
	}
	if c.Search.SummaryLength <= 0 {
		return fmt.Errorf("%w: search.summary_length must be positive", ErrInvalidConfig)
	}
	if c.Search.DebounceMS < 0 {
		return fmt.Errorf("%w: search.debounce_ms must not be negative", ErrInvalidConfig)
	}
	if c.Build.SummaryWords <= 0 {
		return fmt.Errorf("%w: build.summary_words must be positive", ErrInvalidConfig)
	}
	return nil
}

// Debounce returns the search debounce window.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Search.DebounceMS) * time.Millisecond
}

// IndexPath returns where the builder writes index.json.
func (c *Config) IndexPath() string {
	return filepath.Join(c.Site.OutputDir, "index.json")
}

// CataloguePath returns the bbolt catalogue file.
func (c *Config) CataloguePath() string {
	return filepath.Join(c.Site.DataDir, "catalogue.db")
}
