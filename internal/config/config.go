// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides unified configuration loading and management for warm.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.warm/config.toml
//   - ~/.warm/config.json
//   - Built-in defaults
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete warm configuration.
type Config struct {
	// General settings
	Version string `toml:"version" json:"version"`

	// Backend connection configuration
	Backend BackendConfig `toml:"backend" json:"backend"`

	// Chat configuration
	Chat ChatConfig `toml:"chat" json:"chat"`

	// Entity search configuration
	Search SearchConfig `toml:"search" json:"search"`

	// Document upload configuration
	Upload UploadConfig `toml:"upload" json:"upload"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`
}

// BackendConfig contains backend connection configuration.
type BackendConfig struct {
	// URL is the base URL of the Warm AI backend
	URL string `toml:"url" json:"url"`
	// TimeoutSecs is the timeout for non-streaming requests in seconds
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// HealthCheckOnStartup pings /health before entering the UI
	HealthCheckOnStartup bool `toml:"health_check_on_startup" json:"health_check_on_startup"`
}

// ChatConfig contains chat behavior configuration.
type ChatConfig struct {
	// DefaultMode is the input mode at startup: "chat", "web_search",
	// "file_search", "people_search", "company_search"
	DefaultMode string `toml:"default_mode" json:"default_mode"`
	// Model is the model name sent with chat turns (empty = backend default)
	Model string `toml:"model" json:"model"`
	// TypewriterSpeed is how many characters each frame reveals (0 disables
	// the typewriter and shows tokens as they arrive)
	TypewriterSpeed int `toml:"typewriter_speed" json:"typewriter_speed"`
}

// SearchConfig contains entity search configuration.
type SearchConfig struct {
	// NumResults is how many cards to request per search
	NumResults int `toml:"num_results" json:"num_results"`
	// RatePerSec limits search submissions per second
	RatePerSec float64 `toml:"rate_per_sec" json:"rate_per_sec"`
}

// UploadConfig contains document upload configuration.
type UploadConfig struct {
	// MaxSizeMB rejects larger files locally before any network round trip.
	// The backend enforces its own limit; this just fails fast.
	MaxSizeMB int `toml:"max_size_mb" json:"max_size_mb"`
	// AllowedExtensions is the set of file extensions offered for upload
	AllowedExtensions []string `toml:"allowed_extensions" json:"allowed_extensions"`
}

// UIConfig contains UI configuration.
type UIConfig struct {
	// Theme is the UI theme: "dark", "light", "auto"
	Theme string `toml:"theme" json:"theme"`
	// ShowSidebar displays the session history sidebar at startup
	ShowSidebar bool `toml:"show_sidebar" json:"show_sidebar"`
	// CompactMode uses a more compact UI layout
	CompactMode bool `toml:"compact_mode" json:"compact_mode"`
	// ShowSuggestions displays suggested queries on the welcome screen
	ShowSuggestions bool `toml:"show_suggestions" json:"show_suggestions"`
	// SessionPageSize is how many sessions the sidebar fetches per page
	SessionPageSize int `toml:"session_page_size" json:"session_page_size"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Backend: BackendConfig{
			URL:                  "http://127.0.0.1:8000",
			TimeoutSecs:          30,
			HealthCheckOnStartup: true,
		},

		Chat: ChatConfig{
			DefaultMode:     "chat",
			Model:           "",
			TypewriterSpeed: 3,
		},

		Search: SearchConfig{
			NumResults: 5,
			RatePerSec: 2,
		},

		Upload: UploadConfig{
			MaxSizeMB:         20,
			AllowedExtensions: []string{".pdf", ".txt", ".md", ".docx", ".csv"},
		},

		UI: UIConfig{
			Theme:           "dark",
			ShowSidebar:     true,
			CompactMode:     false,
			ShowSuggestions: true,
			SessionPageSize: 20,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the warm configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".warm"), nil
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

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	cfg := Default()
	var loadErr error

	// Try TOML first
	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	// Try JSON as fallback
	jsonPath, err := ConfigPathJSON()
	if err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	cfg, err = finish(cfg)
	if err != nil {
		return nil, err
	}

	// Return defaults (with any load error for informational purposes)
	return cfg, loadErr
}

// finish applies env overrides, defaults, and validation to a loaded config.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
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
		// Default to TOML
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
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
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	// Write header comment
	fmt.Fprintln(file, "# warm configuration file")
	fmt.Fprintln(file, "# Generated by warm - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
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

	// Validate backend URL
	if c.Backend.URL != "" {
		parsed, err := url.Parse(c.Backend.URL)
		if err != nil || parsed.Scheme == "" || parsed.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "backend.url",
				Message: fmt.Sprintf("invalid URL '%s'", c.Backend.URL),
			})
		}
	}

	if c.Backend.TimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "backend.timeout_secs",
			Message: "must be non-negative",
		})
	}

	// Validate default mode
	validModes := map[string]bool{
		"chat": true, "web_search": true, "file_search": true,
		"people_search": true, "company_search": true,
	}
	if !validModes[strings.ToLower(c.Chat.DefaultMode)] {
		errs = append(errs, ValidationError{
			Field:   "chat.default_mode",
			Message: fmt.Sprintf("invalid mode '%s', must be one of: chat, web_search, file_search, people_search, company_search", c.Chat.DefaultMode),
		})
	}

	if c.Chat.TypewriterSpeed < 0 {
		errs = append(errs, ValidationError{
			Field:   "chat.typewriter_speed",
			Message: "must be non-negative",
		})
	}

	// Validate search settings
	if c.Search.NumResults < 1 || c.Search.NumResults > 20 {
		errs = append(errs, ValidationError{
			Field:   "search.num_results",
			Message: fmt.Sprintf("must be 1-20, got %d", c.Search.NumResults),
		})
	}
	if c.Search.RatePerSec <= 0 {
		errs = append(errs, ValidationError{
			Field:   "search.rate_per_sec",
			Message: "must be positive",
		})
	}

	// Validate upload settings
	if c.Upload.MaxSizeMB < 1 {
		errs = append(errs, ValidationError{
			Field:   "upload.max_size_mb",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Upload.MaxSizeMB),
		})
	}
	for _, ext := range c.Upload.AllowedExtensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, ValidationError{
				Field:   "upload.allowed_extensions",
				Message: fmt.Sprintf("extension '%s' must start with a dot", ext),
			})
		}
	}

	// Validate UI theme
	validThemes := map[string]bool{"dark": true, "light": true, "auto": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light, auto", c.UI.Theme),
		})
	}

	if c.UI.SessionPageSize < 1 || c.UI.SessionPageSize > 100 {
		errs = append(errs, ValidationError{
			Field:   "ui.session_page_size",
			Message: fmt.Sprintf("must be 1-100, got %d", c.UI.SessionPageSize),
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

	if c.Backend.URL == "" {
		c.Backend.URL = defaults.Backend.URL
	}
	if c.Backend.TimeoutSecs == 0 {
		c.Backend.TimeoutSecs = defaults.Backend.TimeoutSecs
	}

	if c.Chat.DefaultMode == "" {
		c.Chat.DefaultMode = defaults.Chat.DefaultMode
	}

	if c.Search.NumResults == 0 {
		c.Search.NumResults = defaults.Search.NumResults
	}
	if c.Search.RatePerSec == 0 {
		c.Search.RatePerSec = defaults.Search.RatePerSec
	}

	if c.Upload.MaxSizeMB == 0 {
		c.Upload.MaxSizeMB = defaults.Upload.MaxSizeMB
	}
	if len(c.Upload.AllowedExtensions) == 0 {
		c.Upload.AllowedExtensions = defaults.Upload.AllowedExtensions
	}

	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.SessionPageSize == 0 {
		c.UI.SessionPageSize = defaults.UI.SessionPageSize
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - WARM_BACKEND_URL: overrides backend.url
//   - WARM_MODEL: overrides chat.model
//   - WARM_MODE: overrides chat.default_mode
//   - WARM_THEME: overrides ui.theme
//   - WARM_TIMEOUT_SECS: overrides backend.timeout_secs
//   - WARM_NUM_RESULTS: overrides search.num_results
func (c *Config) ApplyEnvOverrides() {
	if backendURL := os.Getenv("WARM_BACKEND_URL"); backendURL != "" {
		c.Backend.URL = backendURL
	}

	if model := os.Getenv("WARM_MODEL"); model != "" {
		c.Chat.Model = model
	}

	if mode := os.Getenv("WARM_MODE"); mode != "" {
		c.Chat.DefaultMode = mode
	}

	if theme := os.Getenv("WARM_THEME"); theme != "" {
		c.UI.Theme = theme
	}

	if timeout := os.Getenv("WARM_TIMEOUT_SECS"); timeout != "" {
		if secs, err := strconv.Atoi(timeout); err == nil && secs > 0 {
			c.Backend.TimeoutSecs = secs
		}
	}

	if num := os.Getenv("WARM_NUM_RESULTS"); num != "" {
		if n, err := strconv.Atoi(num); err == nil && n > 0 {
			c.Search.NumResults = n
		}
	}
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// Timeout returns the backend request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSecs) * time.Second
}

// MaxUploadBytes returns the local upload size limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Upload.MaxSizeMB) * 1024 * 1024
}

// ExtensionAllowed reports whether a file extension may be uploaded.
func (c *Config) ExtensionAllowed(ext string) bool {
	lower := strings.ToLower(ext)
	for _, allowed := range c.Upload.AllowedExtensions {
		if strings.ToLower(allowed) == lower {
			return true
		}
	}
	return false
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "backend.url").
func (c *Config) Get(key string) (interface{}, error) {
	parts := strings.Split(key, ".")
	if len(parts) == 0 {
		return nil, errors.New("empty key")
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})

		if !field.IsValid() {
			return nil, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			return field.Interface(), nil
		}

		if field.Kind() == reflect.Struct {
			v = field
		} else {
			return nil, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
	}

	return nil, fmt.Errorf("invalid key: %s", key)
}

// Set sets a configuration value using dot notation (e.g., "backend.url").
func (c *Config) Set(key string, value interface{}) error {
	parts := strings.Split(key, ".")
	if len(parts) == 0 {
		return errors.New("empty key")
	}

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)

		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})

		if !field.IsValid() {
			return fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}

		if i == len(parts)-1 {
			if !field.CanSet() {
				return fmt.Errorf("cannot set field: %s", key)
			}
			return setFieldValue(field, value)
		}

		if field.Kind() == reflect.Struct {
			v = field
		} else {
			return fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
	}

	return fmt.Errorf("invalid key: %s", key)
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
	// Handle string input with type conversion
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
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			boolVal := strVal == "1" || strings.ToLower(strVal) == "true" || strings.ToLower(strVal) == "yes"
			field.SetBool(boolVal)
			return nil
		}
	}

	// Direct assignment for matching types
	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}

	// Type conversion for compatible types
	if val.Type().ConvertibleTo(field.Type()) {
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
		"backend.url",
		"backend.timeout_secs",
		"backend.health_check_on_startup",
		"chat.default_mode",
		"chat.model",
		"chat.typewriter_speed",
		"search.num_results",
		"search.rate_per_sec",
		"upload.max_size_mb",
		"upload.allowed_extensions",
		"ui.theme",
		"ui.show_sidebar",
		"ui.compact_mode",
		"ui.show_suggestions",
		"ui.session_page_size",
	}
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Upload.AllowedExtensions != nil {
		clone.Upload.AllowedExtensions = make([]string, len(c.Upload.AllowedExtensions))
		copy(clone.Upload.AllowedExtensions, c.Upload.AllowedExtensions)
	}
	return &clone
}

// String returns a string representation of the config for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
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
			// Log but don't fail - use defaults
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
		}
		if cfg == nil {
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
