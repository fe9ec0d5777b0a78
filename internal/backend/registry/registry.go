package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"netstorctl/pkg/backend"
)

// Initializer builds a live backend from the raw options of a collection
// role. The name is the backend's display name (collection/role) and is used
// in configuration errors.
type Initializer func(name string, options map[string]any, logger *slog.Logger) (backend.Backend, error)

// Registration holds what the factory needs to construct a backend type.
type Registration struct {
	Initializer Initializer
}

var (
	// Keyed by the lowercase backend type name.
	backendRegistry = make(map[string]Registration)
	registryMu      sync.RWMutex
)

// Register allows a backend implementation package to register itself during
// initialization (init()).
func Register(t backend.Type, registration Registration) {
	registryMu.Lock()
	defer registryMu.Unlock()

	name := strings.ToLower(string(t))
	if _, exists := backendRegistry[name]; exists {
		panic(fmt.Sprintf("backend type %s already registered", name))
	}
	if registration.Initializer == nil {
		panic(fmt.Sprintf("backend type %s registration missing Initializer", name))
	}

	backendRegistry[name] = registration
}

// SupportedTypes returns a sorted list of all registered backend type names.
func SupportedTypes() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	types := make([]string, 0, len(backendRegistry))
	for name := range backendRegistry {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

// IsSupported checks whether a backend type name has been registered.
func IsSupported(typeName string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()

	_, exists := backendRegistry[strings.ToLower(typeName)]
	return exists
}

// GetRegistration retrieves the registration for a backend type.
func GetRegistration(typeName string) (Registration, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	registration, exists := backendRegistry[strings.ToLower(typeName)]
	return registration, exists
}
