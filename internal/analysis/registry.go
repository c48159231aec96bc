package analysis

import (
	"sort"
	"sync"
)

// ProviderFactory creates provider instances
type ProviderFactory interface {
	// Create creates a new provider instance with the given config
	Create(config *Config) (Provider, error)

	// Type returns the provider type this factory creates
	Type() string

	// ValidateConfig validates configuration for this provider type
	ValidateConfig(config *Config) error
}

// Registry manages available analysis providers
type Registry interface {
	// Register adds a provider factory to the registry
	Register(name string, factory ProviderFactory) error

	// Create builds a provider by name with the given configuration
	Create(name string, config *Config) (Provider, error)

	// List returns all registered provider names, sorted
	List() []string

	// IsRegistered checks if a provider is registered
	IsRegistered(name string) bool
}

// defaultRegistry implements Registry interface
type defaultRegistry struct {
	mu        sync.RWMutex
	factories map[string]ProviderFactory
}

// NewRegistry creates a new provider registry
func NewRegistry() Registry {
	return &defaultRegistry{
		factories: make(map[string]ProviderFactory),
	}
}

// Register adds a provider factory to the registry
func (r *defaultRegistry) Register(name string, factory ProviderFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return &RegistryError{
			Type:     ErrTypeRegistration,
			Provider: name,
			Message:  "provider already registered",
		}
	}

	r.factories[name] = factory
	return nil
}

// Create builds a fresh provider; providers are cheap and hold no state that
// needs sharing between clients
func (r *defaultRegistry) Create(name string, config *Config) (Provider, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, &RegistryError{
			Type:     ErrTypeNotFound,
			Provider: name,
			Message:  "provider not registered",
		}
	}

	if config == nil {
		config = DefaultConfig()
	}

	if err := factory.ValidateConfig(config); err != nil {
		return nil, err
	}

	return factory.Create(config)
}

// List returns all registered provider names
func (r *defaultRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a provider is registered
func (r *defaultRegistry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[name]
	return exists
}

// Global registry instance
var globalRegistry = NewRegistry()

// GlobalRegistry returns the global provider registry
func GlobalRegistry() Registry {
	return globalRegistry
}

// RegisterProvider registers a provider in the global registry
func RegisterProvider(name string, factory ProviderFactory) error {
	return globalRegistry.Register(name, factory)
}
