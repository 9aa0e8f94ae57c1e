package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.textlens.yaml",               // Project-specific config (highest priority)
	"~/.config/textlens/config.yaml", // User config
	"/etc/textlens/config.yaml",      // System config (lowest priority)
}

// EnvPrefix is prepended to every environment override
const EnvPrefix = "TEXTLENS_"

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	getenv      func(string) string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		getenv:      os.Getenv,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. TEXTLENS_* environment variables
// 3. ./.textlens.yaml
// 4. ~/.config/textlens/config.yaml
// 5. /etc/textlens/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if !fileExists(expandedPath) {
				continue
			}
			if err := l.loadFromFile(config, expandedPath); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile decodes a YAML file over the existing config. Keys absent from
// the file keep their current values, including booleans.
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Service
		"SERVICE_ENDPOINT": func(v string) error { config.Service.Endpoint = v; return nil },
		"SERVICE_TIMEOUT":  func(v string) error { return parseDuration(v, &config.Service.Timeout) },

		// Output
		"OUTPUT_DEFAULT_FORMAT":   func(v string) error { config.Output.DefaultFormat = v; return nil },
		"OUTPUT_COLOR_MODE":       func(v string) error { config.Output.ColorMode = v; return nil },
		"OUTPUT_VERBOSE":          func(v string) error { return parseBool(v, &config.Output.Verbose) },
		"OUTPUT_NO_EMOJI":         func(v string) error { return parseBool(v, &config.Output.NoEmoji) },
		"OUTPUT_TIMESTAMP_FORMAT": func(v string) error { config.Output.TimestampFormat = v; return nil },

		// Log
		"LOG_LEVEL":  func(v string) error { config.Log.Level = v; return nil },
		"LOG_FORMAT": func(v string) error { config.Log.Format = v; return nil },
		"LOG_FILE":   func(v string) error { config.Log.File = v; return nil },

		// Proxy
		"PROXY_ADDR":        func(v string) error { config.Proxy.Addr = v; return nil },
		"PROXY_BACKEND_URL": func(v string) error { config.Proxy.BackendURL = v; return nil },
		"PROXY_TIMEOUT":     func(v string) error { return parseDuration(v, &config.Proxy.Timeout) },
		"PROXY_CORS_ORIGINS": func(v string) error {
			config.Proxy.CORSOrigins = splitList(v)
			return nil
		},

		// Backend
		"BACKEND_ADDR":        func(v string) error { config.Backend.Addr = v; return nil },
		"BACKEND_PROVIDER":    func(v string) error { config.Backend.Provider = v; return nil },
		"BACKEND_BASE_URL":    func(v string) error { config.Backend.BaseURL = v; return nil },
		"BACKEND_API_KEY":     func(v string) error { config.Backend.APIKey = v; return nil },
		"BACKEND_MODEL":       func(v string) error { config.Backend.Model = v; return nil },
		"BACKEND_TEMPERATURE": func(v string) error { return parseFloat(v, &config.Backend.Temperature) },
		"BACKEND_TIMEOUT":     func(v string) error { return parseDuration(v, &config.Backend.Timeout) },
	}

	for suffix, setter := range envMappings {
		envVar := EnvPrefix + suffix
		if value := l.getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	return nil
}

// Save writes cfg as YAML to path, creating parent directories
func Save(cfg *Config, path string) error {
	if err := validateConfigPath(path); err != nil {
		return fmt.Errorf("invalid config path: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/proc/") || strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Type conversion helpers

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseFloat(s string, dst *float64) error {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
