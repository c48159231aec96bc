package mock

import (
	"github.com/yildizm/phishscan/internal/analysis"
)

// Factory implements the ProviderFactory interface for the mock provider
type Factory struct{}

// NewFactory creates a new mock provider factory
func NewFactory() *Factory {
	return &Factory{}
}

// Create creates a new mock provider instance with the given config
func (f *Factory) Create(config *analysis.Config) (analysis.Provider, error) {
	if config == nil {
		config = analysis.DefaultConfig()
	}
	return New(WithDelay(config.MockDelay)), nil
}

// Type returns the provider type this factory creates
func (f *Factory) Type() string {
	return analysis.ProviderMock
}

// ValidateConfig validates configuration for this provider type
func (f *Factory) ValidateConfig(config *analysis.Config) error {
	if config == nil {
		return analysis.NewConfigurationError(analysis.ProviderMock, "config", "configuration is required")
	}
	if config.MockDelay < 0 {
		return analysis.NewConfigurationError(analysis.ProviderMock, "mock_delay", "mock delay must not be negative")
	}
	return nil
}

// Register registers the mock provider with reg
func Register(reg analysis.Registry) error {
	return reg.Register(analysis.ProviderMock, NewFactory())
}
