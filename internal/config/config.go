package config

import (
	"fmt"
	"net/url"
	"time"
)

// DefaultTimestampFormat renders e.g. "10/16/26, 3:04 PM"
const DefaultTimestampFormat = "1/2/06, 3:04 PM"

// Config holds the complete application configuration
type Config struct {
	Version string        `yaml:"version" json:"version"`
	Service ServiceConfig `yaml:"service" json:"service"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Log     LogConfig     `yaml:"log" json:"log"`
	Proxy   ProxyConfig   `yaml:"proxy" json:"proxy"`
	Backend BackendConfig `yaml:"backend" json:"backend"`
}

// ServiceConfig configures the client side of the analysis service
type ServiceConfig struct {
	Endpoint string        `yaml:"endpoint" json:"endpoint"` // base URL serving /api/ai/{kind}
	Timeout  time.Duration `yaml:"timeout" json:"timeout"`   // 0 disables the client timeout
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat   string `yaml:"default_format" json:"default_format"`     // text|json|markdown|html|csv
	ColorMode       string `yaml:"color_mode" json:"color_mode"`             // auto|always|never
	Verbose         bool   `yaml:"verbose" json:"verbose"`                   // default verbosity
	NoEmoji         bool   `yaml:"no_emoji" json:"no_emoji"`                 // ASCII fallbacks for icons
	TimestampFormat string `yaml:"timestamp_format" json:"timestamp_format"` // Go time layout for entry timestamps
}

// LogConfig configures the logger sinks
type LogConfig struct {
	Level      string `yaml:"level" json:"level"`   // debug|info|warn|error
	Format     string `yaml:"format" json:"format"` // text|json
	File       string `yaml:"file" json:"file"`     // rotated log file, empty disables
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days" json:"max_age_days"`
	Compress   bool   `yaml:"compress" json:"compress"`
}

// ProxyConfig configures the front proxy started by "textlens serve"
type ProxyConfig struct {
	Addr        string        `yaml:"addr" json:"addr"`
	BackendURL  string        `yaml:"backend_url" json:"backend_url"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
	CORSOrigins []string      `yaml:"cors_origins" json:"cors_origins"`
}

// BackendConfig configures the analysis service started by "textlens backend"
type BackendConfig struct {
	Addr        string        `yaml:"addr" json:"addr"`
	Provider    string        `yaml:"provider" json:"provider"` // openai or ollama
	BaseURL     string        `yaml:"base_url" json:"base_url"` // OpenAI-compatible endpoint
	APIKey      string        `yaml:"api_key" json:"api_key"`
	Model       string        `yaml:"model" json:"model"`
	Temperature float64       `yaml:"temperature" json:"temperature"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Service: ServiceConfig{
			Endpoint: "http://localhost:5000",
			Timeout:  0,
		},
		Output: OutputConfig{
			DefaultFormat:   "text",
			ColorMode:       "auto",
			Verbose:         false,
			NoEmoji:         false,
			TimestampFormat: DefaultTimestampFormat,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			File:       "",
			MaxSizeMB:  10,
			MaxBackups: 10,
			MaxAgeDays: 30,
			Compress:   true,
		},
		Proxy: ProxyConfig{
			Addr:        ":5000",
			BackendURL:  "http://localhost:8080",
			Timeout:     30 * time.Second,
			CORSOrigins: []string{"*"},
		},
		Backend: BackendConfig{
			Addr:        ":8080",
			Provider:    "ollama",
			BaseURL:     "http://localhost:11434/v1",
			APIKey:      "",
			Model:       "gemma3:4b",
			Temperature: 0.7,
			Timeout:     2 * time.Minute,
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateServiceConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateLogConfig(); err != nil {
		return err
	}
	if err := c.validateProxyConfig(); err != nil {
		return err
	}
	return c.validateBackendConfig()
}

// validateServiceConfig validates client-side service settings
func (c *Config) validateServiceConfig() error {
	if err := validateURL("service.endpoint", c.Service.Endpoint); err != nil {
		return err
	}
	if c.Service.Timeout < 0 {
		return fmt.Errorf("service.timeout must be non-negative")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"text":     true,
			"json":     true,
			"markdown": true,
			"html":     true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: text, json, markdown, html, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}

// validateLogConfig validates logger settings
func (c *Config) validateLogConfig() error {
	validLevels := map[string]bool{"": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.Log.Level)
	}
	if c.Log.Format != "" && c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be one of: text, json)", c.Log.Format)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return fmt.Errorf("log rotation settings must be non-negative")
	}
	return nil
}

// validateProxyConfig validates proxy settings
func (c *Config) validateProxyConfig() error {
	if c.Proxy.Addr == "" {
		return fmt.Errorf("proxy.addr is required")
	}
	if err := validateURL("proxy.backend_url", c.Proxy.BackendURL); err != nil {
		return err
	}
	if c.Proxy.Timeout <= 0 {
		return fmt.Errorf("proxy.timeout must be positive")
	}
	return nil
}

var validProviders = map[string]bool{"openai": true, "ollama": true}

// validateBackendConfig validates analysis backend settings
func (c *Config) validateBackendConfig() error {
	if c.Backend.Addr == "" {
		return fmt.Errorf("backend.addr is required")
	}
	if !validProviders[c.Backend.Provider] {
		return fmt.Errorf("invalid backend provider: %s (must be one of: openai, ollama)", c.Backend.Provider)
	}
	if err := validateURL("backend.base_url", c.Backend.BaseURL); err != nil {
		return err
	}
	if c.Backend.Model == "" {
		return fmt.Errorf("backend.model is required")
	}
	if c.Backend.Temperature < 0 || c.Backend.Temperature > 2 {
		return fmt.Errorf("backend.temperature must be between 0 and 2")
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("backend.timeout must be non-negative")
	}
	return nil
}

func validateURL(field, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s is required", field)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid %s: scheme must be http or https", field)
	}
	return nil
}
