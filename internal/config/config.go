// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for BuzzLink.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.buzzlink/config.toml
//   - ~/.buzzlink/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/gt-buzzlink/buzzlink/internal/model"
	"github.com/gt-buzzlink/buzzlink/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete BuzzLink configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Chat backend
	Endpoint EndpointConfig `toml:"endpoint" json:"endpoint"`

	// Profile card fallbacks
	Profiles ProfilesConfig `toml:"profiles" json:"profiles"`

	// Terminal UI
	UI UIConfig `toml:"ui" json:"ui"`

	// Diagnostic log
	Logging LoggingConfig `toml:"logging" json:"logging"`
}

// EndpointConfig describes where and how to reach the chat backend.
type EndpointConfig struct {
	// URL is the backend base URL
	URL string `toml:"url" json:"url"`
	// Path of the chat endpoint under URL
	Path string `toml:"path" json:"path"`
	// TimeoutSecs bounds one chat request
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// UserAgent sent with each request; empty uses the Go default
	UserAgent string `toml:"user_agent" json:"user_agent,omitempty"`
	// RequestsPerMinute caps outgoing requests; 0 means unlimited
	RequestsPerMinute int `toml:"requests_per_minute" json:"requests_per_minute"`
}

// ProfilesConfig holds the values shown for missing profile fields.
type ProfilesConfig struct {
	PlaceholderImage string `toml:"placeholder_image" json:"placeholder_image"`
	NoSummaryText    string `toml:"no_summary_text" json:"no_summary_text"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "auto", "dark", "light"
	Theme string `toml:"theme" json:"theme"`
	// ShowWelcome shows the intro banner while the transcript is empty
	ShowWelcome bool `toml:"show_welcome" json:"show_welcome"`
	// RenderMarkdown renders assistant replies through glamour
	RenderMarkdown bool `toml:"render_markdown" json:"render_markdown"`
	// AltScreen runs the TUI in the terminal's alternate screen
	AltScreen bool `toml:"alt_screen" json:"alt_screen"`
}

// LoggingConfig controls the diagnostic log.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `toml:"level" json:"level"`
	// File is the log destination; empty means ~/.buzzlink/buzzlink.log
	// for the TUI and stderr for line-mode commands
	File string `toml:"file" json:"file,omitempty"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1",

		Endpoint: EndpointConfig{
			URL:         "http://localhost:8000",
			Path:        "/chat",
			TimeoutSecs: 30,
		},

		Profiles: ProfilesConfig{
			PlaceholderImage: model.DefaultImageURL,
			NoSummaryText:    model.NoSummaryText,
		},

		UI: UIConfig{
			Theme:          "auto",
			ShowWelcome:    true,
			RenderMarkdown: false,
			AltScreen:      true,
		},

		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Endpoint.TimeoutSecs) * time.Second
}

// Fallbacks returns the profile fallbacks for the normalizer.
func (c *Config) Fallbacks() model.Fallbacks {
	return model.Fallbacks{
		ImageURL:  c.Profiles.PlaceholderImage,
		NoSummary: c.Profiles.NoSummaryText,
	}
}

// ChatURL returns the full chat endpoint URL.
func (c *Config) ChatURL() string {
	return strings.TrimRight(c.Endpoint.URL, "/") + "/" + strings.TrimLeft(c.Endpoint.Path, "/")
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the BuzzLink configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".buzzlink"), nil
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

// DefaultLogPath returns the TUI's log file path.
func DefaultLogPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "buzzlink.log"), nil
}

// ActivePath returns the config file Load would read, or "" if none exists.
func ActivePath() string {
	for _, pathFn := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		path, err := pathFn()
		if err != nil {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
//
// A file that fails to parse is reported with the defaults still returned,
// so callers can warn and carry on.
func Load() (*Config, error) {
	if path := ActivePath(); path != "" {
		cfg, err := LoadFromPath(path)
		if err == nil {
			return cfg, nil
		}
		var verrs ValidateErrors
		if errors.As(err, &verrs) {
			return nil, err
		}
		fallback, ferr := finish(Default())
		if ferr != nil {
			return nil, ferr
		}
		return fallback, err
	}
	return finish(Default())
}

// LoadFromPath loads configuration from a specific file path with full validation.
// Files ending in .json are decoded as JSON, anything else as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(strings.ToLower(path), ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// finish applies env overrides, migration, defaults and validation.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.Migrate()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
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

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# BuzzLink configuration file\n")
	buf.WriteString("# Environment variables (BUZZLINK_*) override these values.\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, buf.Bytes(), 0644, 0755); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, append(data, '\n'), 0644, 0755); err != nil {
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
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if u, err := url.Parse(c.Endpoint.URL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, ValidationError{
			Field:   "endpoint.url",
			Message: fmt.Sprintf("invalid URL '%s', must be an absolute http(s) URL", c.Endpoint.URL),
		})
	}

	if !strings.HasPrefix(c.Endpoint.Path, "/") {
		errs = append(errs, ValidationError{
			Field:   "endpoint.path",
			Message: fmt.Sprintf("invalid path '%s', must start with '/'", c.Endpoint.Path),
		})
	}

	if c.Endpoint.TimeoutSecs < 1 || c.Endpoint.TimeoutSecs > 600 {
		errs = append(errs, ValidationError{
			Field:   "endpoint.timeout_secs",
			Message: fmt.Sprintf("timeout %d out of range, must be between 1 and 600", c.Endpoint.TimeoutSecs),
		})
	}

	if c.Endpoint.RequestsPerMinute < 0 {
		errs = append(errs, ValidationError{
			Field:   "endpoint.requests_per_minute",
			Message: "must not be negative",
		})
	}

	validThemes := map[string]bool{"auto": true, "dark": true, "light": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Logging.Level),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults sets default values for any missing or zero-value configuration fields.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Version == "" {
		c.Version = defaults.Version
	}

	if c.Endpoint.URL == "" {
		c.Endpoint.URL = defaults.Endpoint.URL
	}
	if c.Endpoint.Path == "" {
		c.Endpoint.Path = defaults.Endpoint.Path
	}
	if c.Endpoint.TimeoutSecs == 0 {
		c.Endpoint.TimeoutSecs = defaults.Endpoint.TimeoutSecs
	}

	if c.Profiles.PlaceholderImage == "" {
		c.Profiles.PlaceholderImage = defaults.Profiles.PlaceholderImage
	}
	if c.Profiles.NoSummaryText == "" {
		c.Profiles.NoSummaryText = defaults.Profiles.NoSummaryText
	}

	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
}

// Migrate normalizes older or hand-written values.
// A URL that already ends in the chat path has the path trimmed so it is
// not doubled.
func (c *Config) Migrate() {
	c.Endpoint.URL = strings.TrimSpace(c.Endpoint.URL)
	c.Endpoint.Path = strings.TrimSpace(c.Endpoint.Path)
	if c.Endpoint.Path != "" && !strings.HasPrefix(c.Endpoint.Path, "/") {
		c.Endpoint.Path = "/" + c.Endpoint.Path
	}

	path := c.Endpoint.Path
	if path == "" {
		path = Default().Endpoint.Path
	}
	base := strings.TrimRight(c.Endpoint.URL, "/")
	if strings.HasSuffix(base, path) && len(base) > len(path) {
		c.Endpoint.URL = strings.TrimSuffix(base, path)
	}

	c.UI.Theme = strings.ToLower(strings.TrimSpace(c.UI.Theme))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - BUZZLINK_ENDPOINT: overrides endpoint.url
//   - BUZZLINK_CHAT_PATH: overrides endpoint.path
//   - BUZZLINK_TIMEOUT: overrides endpoint.timeout_secs
//   - BUZZLINK_THEME: overrides ui.theme
//   - BUZZLINK_LOG_LEVEL: overrides logging.level
//   - BUZZLINK_LOG_FILE: overrides logging.file
//   - BUZZLINK_NO_WELCOME: set to "1" or "true" to hide the welcome banner
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("BUZZLINK_ENDPOINT"); v != "" {
		c.Endpoint.URL = v
	}
	if v := os.Getenv("BUZZLINK_CHAT_PATH"); v != "" {
		c.Endpoint.Path = v
	}
	if v := os.Getenv("BUZZLINK_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			c.Endpoint.TimeoutSecs = secs
		}
	}
	if v := os.Getenv("BUZZLINK_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("BUZZLINK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("BUZZLINK_LOG_FILE"); v != "" {
		c.Logging.File = v
	}
	if v := os.Getenv("BUZZLINK_NO_WELCOME"); v != "" {
		c.UI.ShowWelcome = !(v == "1" || strings.ToLower(v) == "true")
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "endpoint.url").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "endpoint.url").
// String values are converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

// lookup walks the dotted key down the struct tree.
func (c *Config) lookup(key string) (reflect.Value, error) {
	if strings.TrimSpace(key) == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			if field.Kind() == reflect.Struct {
				return reflect.Value{}, fmt.Errorf("'%s' is a section, not a value", key)
			}
			return field, nil
		}

		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a section", strings.Join(parts[:i+1], "."))
		}
		v = field
	}

	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Bool:
			boolVal, err := strconv.ParseBool(strVal)
			if err != nil {
				switch strings.ToLower(strVal) {
				case "yes", "on":
					boolVal = true
				case "no", "off":
					boolVal = false
				default:
					return fmt.Errorf("invalid boolean value: %q", strVal)
				}
			}
			field.SetBool(boolVal)
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) && field.Kind() != reflect.String {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"endpoint.url",
		"endpoint.path",
		"endpoint.timeout_secs",
		"endpoint.user_agent",
		"endpoint.requests_per_minute",
		"profiles.placeholder_image",
		"profiles.no_summary_text",
		"ui.theme",
		"ui.show_welcome",
		"ui.render_markdown",
		"ui.alt_screen",
		"logging.level",
		"logging.file",
	}
}

// String returns the config as indented JSON for display.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
