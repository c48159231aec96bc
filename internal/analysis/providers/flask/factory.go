package flask

import (
	"github.com/yildizm/phishscan/internal/analysis"
)

// Factory implements the ProviderFactory interface for the Flask backend
type Factory struct{}

// NewFactory creates a new Flask provider factory
func NewFactory() *Factory {
	return &Factory{}
}

// Create creates a new Flask provider instance with the given config
func (f *Factory) Create(config *analysis.Config) (analysis.Provider, error) {
	provider, err := New(config)
	if err != nil {
		return nil, err
	}
	return provider, nil
}

// Type returns the provider type this factory creates
func (f *Factory) Type() string {
	return analysis.ProviderFlask
}

// ValidateConfig validates configuration for this provider type
func (f *Factory) ValidateConfig(config *analysis.Config) error {
	if config == nil {
		return analysis.NewConfigurationError(analysis.ProviderFlask, "config", "configuration is required")
	}
	if config.EndpointURL == "" {
		return analysis.NewConfigurationError(analysis.ProviderFlask, "endpoint_url", "endpoint URL is required")
	}
	return nil
}

// Register registers the Flask provider with reg
func Register(reg analysis.Registry) error {
	return reg.Register(analysis.ProviderFlask, NewFactory())
}
