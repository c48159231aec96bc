package ollama

import (
	"github.com/yildizm/phishscan/internal/analysis"
)

// Factory implements the ProviderFactory interface for Ollama
type Factory struct{}

// NewFactory creates a new Ollama provider factory
func NewFactory() *Factory {
	return &Factory{}
}

// Create creates a new Ollama provider instance with the given config
func (f *Factory) Create(config *analysis.Config) (analysis.Provider, error) {
	provider, err := New(FromAnalysisConfig(config))
	if err != nil {
		return nil, err
	}
	return provider, nil
}

// Type returns the provider type this factory creates
func (f *Factory) Type() string {
	return analysis.ProviderOllama
}

// ValidateConfig validates configuration for this provider type
func (f *Factory) ValidateConfig(config *analysis.Config) error {
	if config == nil {
		return analysis.NewConfigurationError(analysis.ProviderOllama, "config", "configuration is required")
	}

	return FromAnalysisConfig(config).Validate()
}

// Register registers the Ollama provider with reg
func Register(reg analysis.Registry) error {
	return reg.Register(analysis.ProviderOllama, NewFactory())
}
