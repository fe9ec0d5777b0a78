package collection

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// BackendSpec declares one role's backend in the collections file. Options
// are decoded and validated by the backend implementation itself.
type BackendSpec struct {
	Type    string         `yaml:"type" validate:"required"`
	Options map[string]any `yaml:"options"`
}

// Spec pairs the two roles a collection may carry. Either role may be
// absent.
type Spec struct {
	Storage *BackendSpec `yaml:"storage"`
	Target  *BackendSpec `yaml:"target"`
}

type file struct {
	Collections map[string]Spec `yaml:"collections" validate:"required,dive"`
}

// Registry resolves collection names to their declared backends.
type Registry struct {
	collections map[string]Spec
}

// Load reads and validates a collections YAML file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading collections file: %w", err)
	}
	return Parse(data)
}

// Parse builds a registry from raw YAML.
func Parse(data []byte) (*Registry, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing collections file: %w", err)
	}

	if err := validator.New().Struct(f); err != nil {
		return nil, fmt.Errorf("invalid collections file: %w", err)
	}

	for name, spec := range f.Collections {
		if spec.Storage == nil && spec.Target == nil {
			return nil, fmt.Errorf("collection %q declares no backend for either role", name)
		}
	}

	return &Registry{collections: f.Collections}, nil
}

// Get returns the spec for a collection name.
func (r *Registry) Get(name string) (Spec, bool) {
	spec, exists := r.collections[name]
	return spec, exists
}

// Names returns all declared collection names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.collections))
	for name := range r.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
