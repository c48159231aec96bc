package ollama

import (
	"time"

	"github.com/yildizm/phishscan/internal/analysis"
)

// Config holds Ollama-specific configuration
type Config struct {
	// BaseURL is the Ollama API endpoint
	BaseURL string `json:"base_url"`

	// Model to classify with
	Model string `json:"model"`

	// Timeout for HTTP requests
	Timeout time.Duration `json:"timeout"`

	// Temperature for requests
	Temperature float64 `json:"temperature"`

	// MaxTokens bounds the generated answer
	MaxTokens int `json:"max_tokens"`
}

// DefaultConfig returns a default Ollama configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:     "http://localhost:11434",
		Model:       "llama3.2",
		Timeout:     30 * time.Second,
		Temperature: 0.1,
		MaxTokens:   256,
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return analysis.NewConfigurationError(analysis.ProviderOllama, "base_url", "base URL is required")
	}

	if c.Model == "" {
		return analysis.NewConfigurationError(analysis.ProviderOllama, "model", "model is required")
	}

	if c.Timeout <= 0 {
		return analysis.NewConfigurationError(analysis.ProviderOllama, "timeout", "timeout must be positive")
	}

	if c.Temperature < 0 || c.Temperature > 1 {
		return analysis.NewConfigurationError(analysis.ProviderOllama, "temperature", "temperature must be between 0 and 1")
	}

	return nil
}

// FromAnalysisConfig creates Ollama config from the client configuration
func FromAnalysisConfig(ac *analysis.Config) *Config {
	config := DefaultConfig()

	if ac == nil {
		return config
	}

	if ac.EndpointURL != "" {
		config.BaseURL = ac.EndpointURL
	}

	if ac.Model != "" {
		config.Model = ac.Model
	}

	if ac.RequestTimeout > 0 {
		config.Timeout = ac.RequestTimeout
	}

	return config
}
