// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// blueprint TUI.
//
// Configuration is read from ~/.blueprint/config.toml with built-in
// defaults and environment variable overrides:
//
//	BLUEPRINT_API_URL     overrides backend.base_url
//	BLUEPRINT_PAGE_SIZE   overrides feed.page_size
//	BLUEPRINT_TOKEN_FILE  overrides backend.token_file
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/planhaus/blueprint-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete blueprint configuration.
type Config struct {
	Version string `toml:"version"`

	// Backend holds generation service connection settings.
	Backend BackendConfig `toml:"backend"`

	// Feed holds discovery feed settings.
	Feed FeedConfig `toml:"feed"`

	// History holds local archive settings.
	History HistoryConfig `toml:"history"`

	// UI holds presentation settings.
	UI UIConfig `toml:"ui"`
}

// BackendConfig contains generation service connection settings.
type BackendConfig struct {
	// BaseURL is the root URL of the floor plan service.
	BaseURL string `toml:"base_url"`
	// TokenFile is the path of the persisted bearer token. An absent or
	// empty file means requests go out unauthenticated; the server decides
	// what that is allowed to do.
	TokenFile string `toml:"token_file"`
	// RequestTimeoutSecs bounds a single HTTP request. Generation is slow
	// on the backend (diffusion pass), so the default is generous.
	RequestTimeoutSecs int `toml:"request_timeout_secs"`
}

// FeedConfig contains discovery feed settings.
type FeedConfig struct {
	// PageSize is the limit parameter sent with every page request. A page
	// shorter than this marks the feed exhausted.
	PageSize int `toml:"page_size"`
}

// HistoryConfig contains local generation archive settings.
type HistoryConfig struct {
	// Enabled controls whether successful generations are archived.
	Enabled bool `toml:"enabled"`
	// MaxEntries caps the archive; oldest rows are pruned past it.
	// 0 means unlimited.
	MaxEntries int `toml:"max_entries"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// AltScreen runs the program on the terminal's alternate screen.
	AltScreen bool `toml:"alt_screen"`
	// MouseEnabled turns on mouse wheel scrolling in the feed.
	MouseEnabled bool `toml:"mouse_enabled"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// DefaultBaseURL matches the development deployment of the service.
	DefaultBaseURL = "http://localhost:8000"

	// DefaultPageSize matches the page size the web frontend requests.
	DefaultPageSize = 10

	// DefaultRequestTimeout bounds one backend call.
	DefaultRequestTimeout = 120 * time.Second

	configVersion = "1"
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: configVersion,
		Backend: BackendConfig{
			BaseURL:            DefaultBaseURL,
			TokenFile:          "", // resolved against the config dir in Load
			RequestTimeoutSecs: int(DefaultRequestTimeout.Seconds()),
		},
		Feed: FeedConfig{
			PageSize: DefaultPageSize,
		},
		History: HistoryConfig{
			Enabled:    true,
			MaxEntries: 200,
		},
		UI: UIConfig{
			AltScreen:    true,
			MouseEnabled: true,
		},
	}
}

// =============================================================================
// LOADING
// =============================================================================

// Dir returns the configuration directory (~/.blueprint), creating it if
// needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	dir := filepath.Join(home, ".blueprint")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// Load reads the configuration from the default location, applies
// environment overrides, and validates the result. A missing file is not
// an error; defaults are used.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(dir, "config.toml"))
}

// LoadFrom reads the configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Backend.TokenFile == "" {
		cfg.Backend.TokenFile = filepath.Join(filepath.Dir(path), "auth_token")
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies BLUEPRINT_* environment variables on top of the
// file values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BLUEPRINT_API_URL"); v != "" {
		cfg.Backend.BaseURL = v
	}
	if v := os.Getenv("BLUEPRINT_TOKEN_FILE"); v != "" {
		cfg.Backend.TokenFile = v
	}
	if v := os.Getenv("BLUEPRINT_PAGE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Feed.PageSize = n
		}
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values that cannot work, fixing up
// what has a sane fallback and rejecting what does not.
func (c *Config) Validate() error {
	c.Backend.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.Backend.BaseURL), "/")
	if c.Backend.BaseURL == "" {
		return errors.New("backend.base_url must not be empty")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("backend.base_url %q is not an absolute URL", c.Backend.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend.base_url scheme %q is not supported", u.Scheme)
	}

	if c.Feed.PageSize <= 0 {
		c.Feed.PageSize = DefaultPageSize
	}
	if c.Backend.RequestTimeoutSecs <= 0 {
		c.Backend.RequestTimeoutSecs = int(DefaultRequestTimeout.Seconds())
	}
	if c.History.MaxEntries < 0 {
		c.History.MaxEntries = 0
	}
	return nil
}

// RequestTimeout returns the configured request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Backend.RequestTimeoutSecs) * time.Second
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration back to the default location atomically.
func (c *Config) Save() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return c.SaveTo(filepath.Join(dir, "config.toml"))
}

// SaveTo writes the configuration to an explicit path atomically.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
