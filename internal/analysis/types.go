package analysis

import (
	"context"
	"time"
)

// Classification is one of the three canonical labels the rest of the system
// reasons about
type Classification string

const (
	ClassificationSafe       Classification = "SAFE"
	ClassificationSuspicious Classification = "SUSPICIOUS"
	ClassificationPhishing   Classification = "PHISHING"
)

// String returns the label text
func (c Classification) String() string {
	return string(c)
}

// Valid reports whether c is a canonical label
func (c Classification) Valid() bool {
	switch c {
	case ClassificationSafe, ClassificationSuspicious, ClassificationPhishing:
		return true
	default:
		return false
	}
}

// Result is the normalized outcome of one successful analysis
type Result struct {
	// Classification is always canonical
	Classification Classification `json:"classification" yaml:"classification"`

	// Confidence is a percentage in [0,100]
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// Details is a human-readable explanation, possibly empty
	Details string `json:"details,omitempty" yaml:"details,omitempty"`

	// Timestamp is when the client received the response
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// Provider that produced the verdict
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`
}

// ConfidenceScale tells the normalizer how a provider expresses confidence
type ConfidenceScale int

const (
	// ScaleAuto treats values in [0,1] as fractions and larger values as
	// percentages
	ScaleAuto ConfidenceScale = iota

	// ScaleFraction means the value is always in [0,1]
	ScaleFraction

	// ScalePercent means the value is always in [0,100]
	ScalePercent
)

// Verdict is a provider's raw answer, before normalization
type Verdict struct {
	// Label in the provider's own vocabulary (SCAM, LABEL_1, phishing, ...)
	Label string

	// Confidence in the provider's own scale
	Confidence float64

	// Scale of Confidence
	Scale ConfidenceScale

	// Details is an optional explanation
	Details string
}

// Provider sends one message to an analysis backend and returns its raw verdict
type Provider interface {
	// Name returns the provider name (e.g., "mock", "flask")
	Name() string

	// Classify performs exactly one request for message
	Classify(ctx context.Context, message string) (*Verdict, error)
}

// HealthChecker is implemented by providers that can probe their backend
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Config is the explicit configuration object handed to the client at
// construction
type Config struct {
	// Provider is the registered provider name
	Provider string `json:"provider" yaml:"provider"`

	// EndpointURL is where requests are sent
	EndpointURL string `json:"endpoint_url" yaml:"endpoint_url"`

	// UseMock bypasses the network and forces the mock provider. It may
	// only be combined with Provider "mock" or an empty Provider.
	UseMock bool `json:"use_mock" yaml:"use_mock"`

	// RequestTimeout bounds a single request
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`

	// APIKey is sent as a bearer token by providers that need one
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Model selects a model for LLM-backed providers
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// MockDelay is the simulated processing time of the mock provider
	MockDelay time.Duration `json:"mock_delay" yaml:"mock_delay"`
}

// Provider names known to the default registry
const (
	ProviderMock        = "mock"
	ProviderHTTP        = "http"
	ProviderFlask       = "flask"
	ProviderHuggingFace = "huggingface"
	ProviderOllama      = "ollama"
)

// DefaultConfig returns a configuration that works without any backend
func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderMock,
		EndpointURL:    "http://localhost:5000/api/analyze",
		RequestTimeout: 30 * time.Second,
		MockDelay:      3 * time.Second,
	}
}

// ProviderName resolves which provider the configuration selects
func (c *Config) ProviderName() string {
	if c.UseMock || c.Provider == "" {
		return ProviderMock
	}
	return c.Provider
}

// Validate validates the configuration
func (c *Config) Validate() error {
	name := c.ProviderName()

	if c.RequestTimeout <= 0 {
		return NewConfigurationError(name, "request_timeout", "request timeout must be positive")
	}

	if c.UseMock && c.Provider != "" && c.Provider != ProviderMock {
		return NewConfigurationError(c.Provider, "use_mock", "use_mock cannot be combined with a remote provider")
	}

	if c.MockDelay < 0 {
		return NewConfigurationError(name, "mock_delay", "mock delay must not be negative")
	}

	if name != ProviderMock && c.EndpointURL == "" {
		return NewConfigurationError(name, "endpoint_url", "endpoint URL is required")
	}

	return nil
}
