// Package config loads host configuration for the browser frontends.
// Everything here has a working default: a missing config file is not an
// error, and a zero Config is usable after Normalize.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultSearchURL receives the query appended as a url-encoded suffix.
const DefaultSearchURL = "https://duckduckgo.com/html/?q="

// DefaultHome is the document loaded when no URL is given.
const DefaultHome = "file:///welcome.nova"

// Redis configures the optional shared fetch cache. An empty Addr keeps the
// in-process cache.
type Redis struct {
	Addr   string `yaml:"addr" json:"addr"`
	DB     int    `yaml:"db" json:"db"`
	Prefix string `yaml:"prefix" json:"prefix"`
}

// Config is the on-disk configuration (YAML by default, JSON by extension).
type Config struct {
	Theme      string `yaml:"theme" json:"theme"`
	Storage    string `yaml:"storage" json:"storage"` // file, sqlite or memory
	Home       string `yaml:"home" json:"home"`
	SearchURL  string `yaml:"search_url" json:"search_url"`
	CacheTTL   string `yaml:"cache_ttl" json:"cache_ttl"`
	LogLevel   string `yaml:"log_level" json:"log_level"`
	LibraryDir string `yaml:"library_dir" json:"library_dir"`
	DataDir    string `yaml:"data_dir" json:"data_dir"`
	Redis      Redis  `yaml:"redis" json:"redis"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Theme:     "default",
		Storage:   "file",
		Home:      DefaultHome,
		SearchURL: DefaultSearchURL,
		CacheTTL:  "5m",
		LogLevel:  "info",
	}
}

// DefaultDir is the per-user state directory, ~/.nova.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".nova"), nil
}

// DefaultPath is the default config file location, ~/.nova/config.yaml.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads a configuration file (YAML or JSON by extension). A missing
// file yields the defaults; a present but malformed file is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
		}
	}

	cfg.Normalize()
	return cfg, nil
}

// Normalize fills empty fields with their defaults so partial files stay
// valid.
func (c *Config) Normalize() {
	def := Default()
	if c.Theme == "" {
		c.Theme = def.Theme
	}
	if c.Storage == "" {
		c.Storage = def.Storage
	}
	if c.Home == "" {
		c.Home = def.Home
	}
	if c.SearchURL == "" {
		c.SearchURL = def.SearchURL
	}
	if c.CacheTTL == "" {
		c.CacheTTL = def.CacheTTL
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// CacheTTLDuration parses CacheTTL, falling back to five minutes on any
// unparsable value.
func (c *Config) CacheTTLDuration() time.Duration {
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}
