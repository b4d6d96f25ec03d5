// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - configuration structures, loading, validation, and overrides

package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/pathforge/internal/render"
	"github.com/jeranaias/pathforge/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete pathforge configuration.
type Config struct {
	// Version of the config schema
	Version string `toml:"version" json:"version"`

	// LLM (Groq) configuration
	LLM LLMConfig `toml:"llm" json:"llm"`

	// Render configuration for the roadmap chart
	Render RenderConfig `toml:"render" json:"render"`

	// Output configuration for generated artifacts
	Output OutputConfig `toml:"output" json:"output"`

	// Server configuration for serve mode
	Server ServerConfig `toml:"server" json:"server"`
}

// LLMConfig contains Groq client configuration.
type LLMConfig struct {
	// APIKey is the Groq API key (gsk_ prefix)
	APIKey string `toml:"api_key" json:"api_key"`
	// BaseURL overrides the Groq endpoint, e.g. for a proxy
	BaseURL string `toml:"base_url" json:"base_url"`
	// Model is the chat model used for generation
	Model string `toml:"model" json:"model"`
	// TimeoutSecs is the per-request timeout in seconds
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
	// MaxRetries is the retry budget for rate limits and server errors
	MaxRetries int `toml:"max_retries" json:"max_retries"`
	// FallbackEnabled writes the canned roadmap when generation fails
	FallbackEnabled bool `toml:"fallback_enabled" json:"fallback_enabled"`
}

// RenderConfig contains chart rendering configuration.
type RenderConfig struct {
	// Theme is the color theme name: purple, blue, dark
	Theme string `toml:"theme" json:"theme"`
	// Width is the canvas width in pixels
	Width int `toml:"width" json:"width"`
	// BoxWidth is the step box width in pixels
	BoxWidth int `toml:"box_width" json:"box_width"`
	// WrapChars is the character budget per wrapped line
	WrapChars int `toml:"wrap_chars" json:"wrap_chars"`
	// FontPath points at a TTF file (empty = bundled Go Regular)
	FontPath string `toml:"font_path" json:"font_path"`
	// FontSize is the text size in points
	FontSize float64 `toml:"font_size" json:"font_size"`
}

// OutputConfig contains artifact output configuration.
type OutputConfig struct {
	// Dir is the directory artifacts are written to
	Dir string `toml:"dir" json:"dir"`
	// PNGName is the chart file name
	PNGName string `toml:"png_name" json:"png_name"`
	// TxtName is the plain-text step list file name
	TxtName string `toml:"txt_name" json:"txt_name"`
	// Timestamped adds a generation timestamp to artifact names
	Timestamped bool `toml:"timestamped" json:"timestamped"`
}

// ServerConfig contains serve-mode configuration.
type ServerConfig struct {
	// Host is the bind address
	Host string `toml:"host" json:"host"`
	// Port is the listen port
	Port int `toml:"port" json:"port"`
	// AuthToken protects the API when non-empty (Bearer token)
	AuthToken string `toml:"auth_token" json:"auth_token"`
	// RateLimit is requests per minute per client (0 = unlimited)
	RateLimit int `toml:"rate_limit" json:"rate_limit"`
	// CORSOrigin is the allowed origin for browser calls (empty = none)
	CORSOrigin string `toml:"cors_origin" json:"cors_origin"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		LLM: LLMConfig{
			APIKey:          "",
			BaseURL:         "",
			Model:           "llama-3.3-70b-versatile",
			TimeoutSecs:     60,
			MaxRetries:      3,
			FallbackEnabled: false,
		},

		Render: RenderConfig{
			Theme:     "purple",
			Width:     1000,
			BoxWidth:  620,
			WrapChars: 38,
			FontPath:  "",
			FontSize:  15,
		},

		Output: OutputConfig{
			Dir:         ".",
			PNGName:     "roadmap.png",
			TxtName:     "roadmap.txt",
			Timestamped: false,
		},

		Server: ServerConfig{
			Host:       "127.0.0.1",
			Port:       8080,
			AuthToken:  "",
			RateLimit:  60,
			CORSOrigin: "",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the pathforge configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".pathforge"), nil
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

// EnsureConfigDir ensures the config directory exists. The directory is
// 0700 because the config files inside hold the API key.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// ensureSecurePermissions checks and fixes permissions on config files.
// Config files hold the API key and must be 0600.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	mode := info.Mode().Perm()
	if mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}

	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

var dotenvOnce sync.Once

// loadDotenv pulls a local .env file into the process environment once.
// A missing file is fine, and explicit environment variables always win
// because godotenv never overwrites existing ones.
func loadDotenv() {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})
}

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied after the file.
func Load() (*Config, error) {
	loadDotenv()

	cfg := Default()
	var loadErr error

	// Try TOML first
	tomlPath, err := ConfigPathTOML()
	if err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finishLoad(cfg)
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
				return finishLoad(cfg)
			}
		}
	}

	// Defaults (with any load error kept for informational purposes)
	cfg, err = finishLoad(cfg)
	if err != nil {
		return nil, err
	}
	return cfg, loadErr
}

// finishLoad applies env overrides, fills defaults, and validates.
func finishLoad(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	fillDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		// Permissions might not be fixable on all systems.
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	fillDefaults(cfg)
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	if err := ensureSecurePermissions(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

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

// LoadFromPath loads configuration from a specific file path with full
// validation.
func LoadFromPath(path string) (*Config, error) {
	loadDotenv()

	cfg := &Config{}

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finishLoad(cfg)
}

// fillDefaults fills in any missing values with defaults.
func fillDefaults(cfg *Config) {
	defaults := Default()

	if cfg.Version == "" {
		cfg.Version = defaults.Version
	}

	// LLM
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = defaults.LLM.Model
	}
	if cfg.LLM.TimeoutSecs == 0 {
		cfg.LLM.TimeoutSecs = defaults.LLM.TimeoutSecs
	}
	if cfg.LLM.MaxRetries == 0 {
		cfg.LLM.MaxRetries = defaults.LLM.MaxRetries
	}

	// Render
	if cfg.Render.Theme == "" {
		cfg.Render.Theme = defaults.Render.Theme
	}
	if cfg.Render.Width == 0 {
		cfg.Render.Width = defaults.Render.Width
	}
	if cfg.Render.BoxWidth == 0 {
		cfg.Render.BoxWidth = defaults.Render.BoxWidth
	}
	if cfg.Render.WrapChars == 0 {
		cfg.Render.WrapChars = defaults.Render.WrapChars
	}
	if cfg.Render.FontSize == 0 {
		cfg.Render.FontSize = defaults.Render.FontSize
	}

	// Output
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = defaults.Output.Dir
	}
	if cfg.Output.PNGName == "" {
		cfg.Output.PNGName = defaults.Output.PNGName
	}
	if cfg.Output.TxtName == "" {
		cfg.Output.TxtName = defaults.Output.TxtName
	}

	// Server
	if cfg.Server.Host == "" {
		cfg.Server.Host = defaults.Server.Host
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaults.Server.Port
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

// SaveTOML saves the configuration to a TOML file. The write is atomic
// and the file ends up 0600 under a 0700 directory; it holds the API key.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "# pathforge configuration file")
	fmt.Fprintln(&buf, "# Generated by pathforge - edit with care")
	fmt.Fprintln(&buf, "#")
	fmt.Fprintln(&buf, "# Documentation: https://github.com/jeranaias/pathforge")
	fmt.Fprintln(&buf, "")

	encoder := toml.NewEncoder(&buf)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFileWithDir(path, buf.Bytes(), 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveJSON saves the configuration to a JSON file atomically.
func SaveJSON(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFile(path, data, 0600); err != nil {
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

	// LLM settings
	if c.LLM.TimeoutSecs < 1 || c.LLM.TimeoutSecs > 600 {
		errs = append(errs, ValidationError{
			Field:   "llm.timeout_secs",
			Message: fmt.Sprintf("must be 1-600 seconds, got %d", c.LLM.TimeoutSecs),
		})
	}
	// MaxRetries counts total attempts, so zero would mean no request at
	// all; fillDefaults maps an absent value to the default.
	if c.LLM.MaxRetries < 1 || c.LLM.MaxRetries > 10 {
		errs = append(errs, ValidationError{
			Field:   "llm.max_retries",
			Message: fmt.Sprintf("must be 1-10, got %d", c.LLM.MaxRetries),
		})
	}
	if c.LLM.BaseURL != "" {
		if u, err := url.Parse(c.LLM.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, ValidationError{
				Field:   "llm.base_url",
				Message: fmt.Sprintf("invalid URL %q", c.LLM.BaseURL),
			})
		}
	}

	// Render settings. Unknown themes are a hard error here, never a
	// silent default.
	if _, err := render.LookupTheme(c.Render.Theme); err != nil {
		errs = append(errs, ValidationError{
			Field:   "render.theme",
			Message: err.Error(),
		})
	}
	if c.Render.Width < 400 || c.Render.Width > 4000 {
		errs = append(errs, ValidationError{
			Field:   "render.width",
			Message: fmt.Sprintf("must be 400-4000 pixels, got %d", c.Render.Width),
		})
	}
	if c.Render.BoxWidth < 100 || c.Render.BoxWidth > c.Render.Width {
		errs = append(errs, ValidationError{
			Field:   "render.box_width",
			Message: fmt.Sprintf("must be 100-width pixels, got %d (width %d)", c.Render.BoxWidth, c.Render.Width),
		})
	}
	if c.Render.WrapChars < 8 || c.Render.WrapChars > 120 {
		errs = append(errs, ValidationError{
			Field:   "render.wrap_chars",
			Message: fmt.Sprintf("must be 8-120 characters, got %d", c.Render.WrapChars),
		})
	}
	if c.Render.FontSize < 6 || c.Render.FontSize > 72 {
		errs = append(errs, ValidationError{
			Field:   "render.font_size",
			Message: fmt.Sprintf("must be 6-72 points, got %g", c.Render.FontSize),
		})
	}

	// Output settings
	if c.Output.Dir == "" {
		errs = append(errs, ValidationError{
			Field:   "output.dir",
			Message: "cannot be empty",
		})
	}
	if c.Output.PNGName == "" {
		errs = append(errs, ValidationError{
			Field:   "output.png_name",
			Message: "cannot be empty",
		})
	}
	if c.Output.TxtName == "" {
		errs = append(errs, ValidationError{
			Field:   "output.txt_name",
			Message: "cannot be empty",
		})
	}

	// Server settings
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, ValidationError{
			Field:   "server.port",
			Message: fmt.Sprintf("must be 1-65535, got %d", c.Server.Port),
		})
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, ValidationError{
			Field:   "server.rate_limit",
			Message: "cannot be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// RENDER OPTIONS BRIDGE
// =============================================================================

// RenderOptions builds render.Options from the configuration. The
// center line follows the configured width so overridden canvases stay
// symmetric.
func (c *Config) RenderOptions() (render.Options, error) {
	theme, err := render.LookupTheme(c.Render.Theme)
	if err != nil {
		return render.Options{}, err
	}

	opts := render.DefaultOptions()
	opts.Theme = theme
	opts.Width = c.Render.Width
	opts.CenterX = float64(c.Render.Width) / 2
	opts.BoxWidth = float64(c.Render.BoxWidth)
	opts.WrapChars = c.Render.WrapChars
	opts.FontPath = c.Render.FontPath
	opts.FontSize = c.Render.FontSize
	return opts, nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the
// config.
//
// Supported environment variables:
//   - PATHFORGE_API_KEY: overrides llm.api_key
//   - GROQ_API_KEY: alias for PATHFORGE_API_KEY (lower precedence)
//   - PATHFORGE_MODEL: overrides llm.model
//   - PATHFORGE_BASE_URL: overrides llm.base_url
//   - PATHFORGE_FALLBACK: "1" or "true" enables the fallback roadmap
//   - PATHFORGE_THEME: overrides render.theme
//   - PATHFORGE_OUTPUT_DIR: overrides output.dir
//   - PATHFORGE_SERVER_ADDR: overrides server host:port
//   - PATHFORGE_AUTH_TOKEN: overrides server.auth_token
func (c *Config) ApplyEnvOverrides() {
	// GROQ_API_KEY first so PATHFORGE_API_KEY wins when both are set.
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if key := os.Getenv("PATHFORGE_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}

	if model := os.Getenv("PATHFORGE_MODEL"); model != "" {
		c.LLM.Model = model
	}

	if baseURL := os.Getenv("PATHFORGE_BASE_URL"); baseURL != "" {
		c.LLM.BaseURL = baseURL
	}

	if fallback := os.Getenv("PATHFORGE_FALLBACK"); fallback != "" {
		c.LLM.FallbackEnabled = fallback == "1" || strings.ToLower(fallback) == "true"
	}

	if theme := os.Getenv("PATHFORGE_THEME"); theme != "" {
		c.Render.Theme = theme
	}

	if dir := os.Getenv("PATHFORGE_OUTPUT_DIR"); dir != "" {
		c.Output.Dir = dir
	}

	if addr := os.Getenv("PATHFORGE_SERVER_ADDR"); addr != "" {
		if host, port, err := net.SplitHostPort(addr); err == nil {
			if p, err := strconv.Atoi(port); err == nil {
				c.Server.Host = host
				c.Server.Port = p
			}
		}
	}

	if token := os.Getenv("PATHFORGE_AUTH_TOKEN"); token != "" {
		c.Server.AuthToken = token
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g.,
// "render.theme").
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

// Set sets a configuration value using dot notation (e.g.,
// "render.theme").
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

// normalizeFieldName converts a snake_case or kebab-case name to its Go
// field equivalent.
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

// setFieldValue sets a reflect.Value from an interface{} value with
// type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	// String input gets converted to the field's type; this is the
	// path the `config set` command uses.
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

	val := reflect.ValueOf(value)
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}

	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}

	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"llm.api_key",
		"llm.base_url",
		"llm.model",
		"llm.timeout_secs",
		"llm.max_retries",
		"llm.fallback_enabled",
		"render.theme",
		"render.width",
		"render.box_width",
		"render.wrap_chars",
		"render.font_path",
		"render.font_size",
		"output.dir",
		"output.png_name",
		"output.txt_name",
		"output.timestamped",
		"server.host",
		"server.port",
		"server.auth_token",
		"server.rate_limit",
		"server.cors_origin",
	}
}

// Clone creates a copy of the configuration. Config holds only value
// types, so a struct copy is a full copy.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns a string representation of the config for display.
// The API key and auth token are redacted so the output is safe to log.
func (c *Config) String() string {
	safe := c.Clone()

	if safe.LLM.APIKey != "" {
		safe.LLM.APIKey = "[REDACTED]"
	}
	if safe.Server.AuthToken != "" {
		safe.Server.AuthToken = "[REDACTED]"
	}

	data, _ := json.MarshalIndent(safe, "", "  ")
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
//
// Load problems degrade to a stderr warning; commands that need to fail
// on a bad config load it themselves and map the error to an exit code.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
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
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
