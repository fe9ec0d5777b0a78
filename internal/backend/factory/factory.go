package factory

import (
	"fmt"
	"log/slog"

	"netstorctl/internal/backend/registry"
	"netstorctl/internal/collection"
	"netstorctl/pkg/backend"
)

type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	return &Factory{logger: logger}
}

// New initializes the backend declared by a collection role. The display
// name (collection/role) travels into the backend so its configuration
// errors can identify the offender.
func (f *Factory) New(displayName string, spec collection.BackendSpec) (backend.Backend, error) {
	registration, exists := registry.GetRegistration(spec.Type)
	if !exists {
		return nil, fmt.Errorf("unsupported backend type %q for %s. Supported types are: %v",
			spec.Type, displayName, registry.SupportedTypes())
	}

	backendLogger := f.logger.With("backend", displayName, "type", spec.Type)

	b, err := registration.Initializer(displayName, spec.Options, backendLogger)
	if err != nil {
		return nil, fmt.Errorf("initializing %s backend %s: %w", spec.Type, displayName, err)
	}
	return b, nil
}
