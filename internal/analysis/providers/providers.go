// Package providers wires every built-in analysis backend into a registry.
package providers

import (
	"errors"
	"sync"

	"github.com/yildizm/phishscan/internal/analysis"
	"github.com/yildizm/phishscan/internal/analysis/providers/flask"
	"github.com/yildizm/phishscan/internal/analysis/providers/httpapi"
	"github.com/yildizm/phishscan/internal/analysis/providers/huggingface"
	"github.com/yildizm/phishscan/internal/analysis/providers/mock"
	"github.com/yildizm/phishscan/internal/analysis/providers/ollama"
)

var registrations = []func(analysis.Registry) error{
	mock.Register,
	httpapi.Register,
	flask.Register,
	huggingface.Register,
	ollama.Register,
}

// RegisterAll registers the built-in providers with reg
func RegisterAll(reg analysis.Registry) error {
	var errs []error
	for _, register := range registrations {
		if err := register(reg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	defaultOnce sync.Once
	defaultErr  error
)

// Default returns the global registry with the built-in providers registered
func Default() (analysis.Registry, error) {
	defaultOnce.Do(func() {
		defaultErr = RegisterAll(analysis.GlobalRegistry())
	})
	return analysis.GlobalRegistry(), defaultErr
}
