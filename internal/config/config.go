// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for chatwidget.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.chatwidget/config.toml
//   - ~/.chatwidget/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/advitiya-sood/RAG-chatbot-frontend-test/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete chatwidget configuration.
type Config struct {
	// Backend connection
	API APIConfig `toml:"api" json:"api"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Logging configuration
	Log LogConfig `toml:"log" json:"log"`
}

// APIConfig contains backend connection settings.
type APIConfig struct {
	// BaseURL is the question-answering backend, without the endpoint path
	BaseURL string `toml:"base_url" json:"base_url"`
	// TimeoutSecs bounds a single question
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// RateLimitPerMinute throttles questions client-side (0 disables)
	RateLimitPerMinute int `toml:"rate_limit_per_minute" json:"rate_limit_per_minute"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// StartOpen opens the chat box on launch instead of showing the launcher
	StartOpen bool `toml:"start_open" json:"start_open"`
	// ShowTimestamps shows HH:MM under each message
	ShowTimestamps bool `toml:"show_timestamps" json:"show_timestamps"`
	// NoColor disables colors entirely
	NoColor bool `toml:"no_color" json:"no_color"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// File receives debug logs; empty discards them in the TUI
	File string `toml:"file" json:"file"`
	// Debug enables verbose logging
	Debug bool `toml:"debug" json:"debug"`
}

// Timeout returns the API timeout as a duration.
func (a APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSecs) * time.Second
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// DefaultBaseURL is the backend used when nothing is configured.
const DefaultBaseURL = "http://localhost:8000"

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:            DefaultBaseURL,
			TimeoutSecs:        60,
			RateLimitPerMinute: 0,
		},
		UI: UIConfig{
			Theme:          "auto",
			StartOpen:      true,
			ShowTimestamps: true,
		},
		Log: LogConfig{
			File:  "",
			Debug: false,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the chatwidget configuration directory path.
// CHATWIDGET_CONFIG_DIR overrides the default ~/.chatwidget.
func ConfigDir() (string, error) {
	if dir := os.Getenv("CHATWIDGET_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".chatwidget"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ActivePath returns the config file Load would read, or the TOML path if
// neither file exists.
func ActivePath() (string, error) {
	tomlPath, err := ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	jsonPath, err := ConfigPathJSON()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	return tomlPath, nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// LoadDotEnv loads KEY=value pairs from .env files into the process
// environment. Variables that are already set win. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	var loadErr error

	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			cfg, err := LoadFromPath(tomlPath)
			if err == nil {
				return cfg, nil
			}
			loadErr = err
		}
	}

	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			cfg, err := LoadFromPath(jsonPath)
			if err == nil {
				return cfg, nil
			}
			loadErr = err
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Return defaults (with any load error for informational purposes)
	return cfg, loadErr
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaults.API.BaseURL
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	if cfg.API.TimeoutSecs == 0 {
		cfg.API.TimeoutSecs = defaults.API.TimeoutSecs
	}
	if cfg.UI.Theme == "" {
		cfg.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file atomically.
func SaveTOML(cfg *Config, path string) error {
	var b strings.Builder
	b.WriteString("# chatwidget configuration file\n")
	b.WriteString("# Environment variables CHATWIDGET_* override these values.\n\n")

	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if err := validateBaseURL(c.API.BaseURL); err != "" {
		errs = append(errs, ValidationError{Field: "api.base_url", Message: err})
	}
	if c.API.TimeoutSecs < 1 || c.API.TimeoutSecs > 600 {
		errs = append(errs, ValidationError{
			Field:   "api.timeout_secs",
			Message: fmt.Sprintf("must be between 1 and 600, got %d", c.API.TimeoutSecs),
		})
	}
	if c.API.RateLimitPerMinute < 0 {
		errs = append(errs, ValidationError{
			Field:   "api.rate_limit_per_minute",
			Message: fmt.Sprintf("must not be negative, got %d", c.API.RateLimitPerMinute),
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateBaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Sprintf("invalid URL '%s': %v", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Sprintf("invalid scheme in '%s', must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Sprintf("missing host in '%s'", raw)
	}
	return ""
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - CHATWIDGET_API_URL: overrides api.base_url
//   - VITE_API_URL: overrides api.base_url when CHATWIDGET_API_URL is unset
//   - CHATWIDGET_TIMEOUT: overrides api.timeout_secs
//   - CHATWIDGET_RATE_LIMIT: overrides api.rate_limit_per_minute
//   - CHATWIDGET_THEME: overrides ui.theme
//   - CHATWIDGET_LOG_FILE: overrides log.file
//   - CHATWIDGET_DEBUG: overrides log.debug
//   - NO_COLOR: sets ui.no_color
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("CHATWIDGET_API_URL"); u != "" {
		c.API.BaseURL = strings.TrimRight(u, "/")
	} else if u := os.Getenv("VITE_API_URL"); u != "" {
		c.API.BaseURL = strings.TrimRight(u, "/")
	}

	if timeout := os.Getenv("CHATWIDGET_TIMEOUT"); timeout != "" {
		if secs, err := strconv.Atoi(timeout); err == nil {
			c.API.TimeoutSecs = secs
		}
	}

	if limit := os.Getenv("CHATWIDGET_RATE_LIMIT"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			c.API.RateLimitPerMinute = n
		}
	}

	if theme := os.Getenv("CHATWIDGET_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	if file := os.Getenv("CHATWIDGET_LOG_FILE"); file != "" {
		c.Log.File = file
	}

	if debug := os.Getenv("CHATWIDGET_DEBUG"); debug != "" {
		c.Log.Debug = debug == "1" || strings.ToLower(debug) == "true"
	}

	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.UI.NoColor = true
	}
}

// =============================================================================
// DISPLAY
// =============================================================================

// Clone returns a copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the config as TOML.
func (c *Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("<unencodable config: %v>", err)
	}
	return b.String()
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
