package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.phishscan.yaml",               // Project-specific config (highest priority)
	"~/.config/phishscan/config.yaml", // User config
	"/etc/phishscan/config.yaml",      // System config (lowest priority)
}

// EnvPrefix prefixes every environment override
const EnvPrefix = "PHISHSCAN_"

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	envFile     string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		envFile:     ".env",
	}
}

// WithEnvFile sets the dotenv file read before environment overrides.
// An empty path disables dotenv loading.
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables (a .env file fills in unset ones)
// 3. ./.phishscan.yaml
// 4. ~/.config/phishscan/config.yaml
// 5. /etc/phishscan/config.yaml
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
			if fileExists(expandedPath) {
				if err := l.loadFromFile(config, expandedPath); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
				}
			}
		}
	}

	if err := l.loadEnvFile(); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", l.envFile, err)
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadFromFile decodes a YAML file on top of config. Keys absent from the
// file keep their current value.
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	return nil
}

// loadEnvFile loads the dotenv file without overriding variables already set
func (l *Loader) loadEnvFile() error {
	if l.envFile == "" {
		return nil
	}
	err := godotenv.Load(l.envFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	envMappings := map[string]func(string) error{
		// Analysis Config
		"ANALYSIS_PROVIDER":   func(v string) error { config.Analysis.Provider = v; return nil },
		"ANALYSIS_ENDPOINT":   func(v string) error { config.Analysis.Endpoint = v; return nil },
		"ANALYSIS_USE_MOCK":   func(v string) error { return parseBool(v, &config.Analysis.UseMock) },
		"ANALYSIS_TIMEOUT":    func(v string) error { return parseDuration(v, &config.Analysis.Timeout) },
		"ANALYSIS_API_KEY":    func(v string) error { config.Analysis.APIKey = v; return nil },
		"ANALYSIS_MODEL":      func(v string) error { config.Analysis.Model = v; return nil },
		"ANALYSIS_MOCK_DELAY": func(v string) error { return parseDuration(v, &config.Analysis.MockDelay) },

		// Server Config
		"SERVER_ADDRESS":          func(v string) error { config.Server.Address = v; return nil },
		"SERVER_READ_TIMEOUT":     func(v string) error { return parseDuration(v, &config.Server.ReadTimeout) },
		"SERVER_WRITE_TIMEOUT":    func(v string) error { return parseDuration(v, &config.Server.WriteTimeout) },
		"SERVER_SHUTDOWN_TIMEOUT": func(v string) error { return parseDuration(v, &config.Server.ShutdownTimeout) },
		"SERVER_MAX_BODY_BYTES":   func(v string) error { return parseInt64(v, &config.Server.MaxBodyBytes) },

		// Output Config
		"OUTPUT_DEFAULT_FORMAT": func(v string) error { config.Output.DefaultFormat = v; return nil },
		"OUTPUT_COLOR_MODE":     func(v string) error { config.Output.ColorMode = v; return nil },
		"OUTPUT_VERBOSE":        func(v string) error { return parseBool(v, &config.Output.Verbose) },
		"OUTPUT_EMOJI":          func(v string) error { return parseBool(v, &config.Output.Emoji) },

		// UI, Logging and Storage Config
		"UI_THEME":          func(v string) error { config.UI.Theme = v; return nil },
		"UI_ALT_SCREEN":     func(v string) error { return parseBool(v, &config.UI.AltScreen) },
		"LOGGING_FILE":      func(v string) error { config.Logging.File = v; return nil },
		"STORAGE_CACHE_DIR": func(v string) error { config.Storage.CacheDir = v; return nil },
	}

	for suffix, setter := range envMappings {
		envVar := EnvPrefix + suffix
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	// PORT is honored for hosting platforms that only set a port
	if port := os.Getenv("PORT"); port != "" && os.Getenv(EnvPrefix+"SERVER_ADDRESS") == "" {
		if _, err := strconv.Atoi(port); err != nil {
			return fmt.Errorf("invalid value for PORT: %w", err)
		}
		config.Server.Address = ":" + port
	}

	// Comma-separated origin list
	if origins := os.Getenv(EnvPrefix + "SERVER_ALLOWED_ORIGINS"); origins != "" {
		config.Server.AllowedOrigins = strings.Split(origins, ",")
		for i, origin := range config.Server.AllowedOrigins {
			config.Server.AllowedOrigins[i] = strings.TrimSpace(origin)
		}
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

// Helper functions

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

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Type conversion helpers

func parseInt64(s string, dst *int64) error {
	val, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
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
