package config

import (
	"fmt"
	"net"
	"net/url"
	"slices"
	"time"

	"github.com/yildizm/phishscan/internal/analysis"
)

// Config holds the complete application configuration
type Config struct {
	Version  string         `yaml:"version" json:"version"`
	Analysis AnalysisConfig `yaml:"analysis" json:"analysis"`
	Server   ServerConfig   `yaml:"server" json:"server"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	UI       UIConfig       `yaml:"ui" json:"ui"`
	Logging  LoggingConfig  `yaml:"logging" json:"logging"`
	Storage  StorageConfig  `yaml:"storage" json:"storage"`
}

// AnalysisConfig selects and configures the analysis backend
type AnalysisConfig struct {
	Provider  string        `yaml:"provider" json:"provider"`     // mock|http|flask|huggingface|ollama
	Endpoint  string        `yaml:"endpoint" json:"endpoint"`     // analysis endpoint URL
	UseMock   bool          `yaml:"use_mock" json:"use_mock"`     // bypass the network entirely
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`       // bound on a single request
	APIKey    string        `yaml:"api_key" json:"api_key"`       // bearer token for hosted providers
	Model     string        `yaml:"model" json:"model"`           // model name for LLM providers
	MockDelay time.Duration `yaml:"mock_delay" json:"mock_delay"` // simulated processing time
}

// ServerConfig configures the demo analysis backend
type ServerConfig struct {
	Address         string        `yaml:"address" json:"address"`
	AllowedOrigins  []string      `yaml:"allowed_origins" json:"allowed_origins"`
	ReadTimeout     time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" json:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"` // text|json|markdown|csv
	ColorMode     string `yaml:"color_mode" json:"color_mode"`         // auto|always|never
	Verbose       bool   `yaml:"verbose" json:"verbose"`
	Emoji         bool   `yaml:"emoji" json:"emoji"`
}

// UIConfig configures the interactive scanner
type UIConfig struct {
	Theme     string `yaml:"theme" json:"theme"` // default|high-contrast|minimal
	AltScreen bool   `yaml:"alt_screen" json:"alt_screen"`
}

// LoggingConfig configures where diagnostics go
type LoggingConfig struct {
	// File receives log lines while the interactive UI owns the terminal.
	// Empty means <storage.cache_dir>/phishscan.log.
	File string `yaml:"file" json:"file"`
}

// StorageConfig configures local state
type StorageConfig struct {
	CacheDir string `yaml:"cache_dir" json:"cache_dir"`
}

// Themes lists the accepted ui.theme values
var Themes = []string{"default", "high-contrast", "minimal"}

// Providers lists the accepted analysis.provider values
var Providers = []string{
	analysis.ProviderMock,
	analysis.ProviderHTTP,
	analysis.ProviderFlask,
	analysis.ProviderHuggingFace,
	analysis.ProviderOllama,
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	defaults := analysis.DefaultConfig()

	return &Config{
		Version: "1.0",
		Analysis: AnalysisConfig{
			Provider:  defaults.Provider,
			Endpoint:  defaults.EndpointURL,
			UseMock:   defaults.UseMock,
			Timeout:   defaults.RequestTimeout,
			MockDelay: defaults.MockDelay,
		},
		Server: ServerConfig{
			Address:         ":5000",
			AllowedOrigins:  []string{"*"},
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    64 << 10,
		},
		Output: OutputConfig{
			DefaultFormat: "text",
			ColorMode:     "auto",
			Verbose:       false,
			Emoji:         true,
		},
		UI: UIConfig{
			Theme:     "default",
			AltScreen: true,
		},
		Storage: StorageConfig{
			CacheDir: "~/.cache/phishscan",
		},
	}
}

// ToAnalysisConfig builds the explicit client configuration
func (c *Config) ToAnalysisConfig() *analysis.Config {
	return &analysis.Config{
		Provider:       c.Analysis.Provider,
		EndpointURL:    c.Analysis.Endpoint,
		UseMock:        c.Analysis.UseMock,
		RequestTimeout: c.Analysis.Timeout,
		APIKey:         c.Analysis.APIKey,
		Model:          c.Analysis.Model,
		MockDelay:      c.Analysis.MockDelay,
	}
}

// LogFile returns the resolved log file path
func (c *Config) LogFile() string {
	if c.Logging.File != "" {
		return expandPath(c.Logging.File)
	}
	return expandPath(c.Storage.CacheDir + "/phishscan.log")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateAnalysisConfig(); err != nil {
		return err
	}
	if err := c.validateServerConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	return nil
}

// validateAnalysisConfig validates analysis-related configuration
func (c *Config) validateAnalysisConfig() error {
	if c.Analysis.Provider != "" && !slices.Contains(Providers, c.Analysis.Provider) {
		return fmt.Errorf("invalid analysis provider: %s (must be one of: %v)", c.Analysis.Provider, Providers)
	}

	if c.Analysis.Endpoint != "" {
		u, err := url.Parse(c.Analysis.Endpoint)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid analysis endpoint: %q", c.Analysis.Endpoint)
		}
	}

	if err := c.ToAnalysisConfig().Validate(); err != nil {
		return fmt.Errorf("invalid analysis configuration: %w", err)
	}
	return nil
}

// validateServerConfig validates server-related configuration
func (c *Config) validateServerConfig() error {
	if _, _, err := net.SplitHostPort(c.Server.Address); err != nil {
		return fmt.Errorf("invalid server address %q: %w", c.Server.Address, err)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("server timeouts must be non-negative")
	}
	if c.Server.MaxBodyBytes < 1 {
		return fmt.Errorf("max_body_bytes must be greater than 0")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, csv)", c.Output.DefaultFormat)
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

// validateUIConfig validates the interactive UI configuration
func (c *Config) validateUIConfig() error {
	if c.UI.Theme != "" && !slices.Contains(Themes, c.UI.Theme) {
		return fmt.Errorf("invalid theme: %s (must be one of: %v)", c.UI.Theme, Themes)
	}
	return nil
}
