package huggingface

import (
	"github.com/yildizm/phishscan/internal/analysis"
)

// Factory implements the ProviderFactory interface for hosted Hugging Face models
type Factory struct{}

// NewFactory creates a new Hugging Face provider factory
func NewFactory() *Factory {
	return &Factory{}
}

// Create creates a new Hugging Face provider instance with the given config
func (f *Factory) Create(config *analysis.Config) (analysis.Provider, error) {
	provider, err := New(config)
	if err != nil {
		return nil, err
	}
	return provider, nil
}

// Type returns the provider type this factory creates
func (f *Factory) Type() string {
	return analysis.ProviderHuggingFace
}

// ValidateConfig validates configuration for this provider type
func (f *Factory) ValidateConfig(config *analysis.Config) error {
	if config == nil {
		return analysis.NewConfigurationError(analysis.ProviderHuggingFace, "config", "configuration is required")
	}
	if config.EndpointURL == "" {
		return analysis.NewConfigurationError(analysis.ProviderHuggingFace, "endpoint_url", "endpoint URL is required")
	}
	return nil
}

// Register registers the Hugging Face provider with reg
func Register(reg analysis.Registry) error {
	return reg.Register(analysis.ProviderHuggingFace, NewFactory())
}
