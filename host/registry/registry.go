// Package registry provides a schema registry for host function request
// models. Hosts register the Go structs their handlers accept; embedders
// and tooling can then introspect the JSON Schema of every operation.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/calcplug-dev/calcplug-sdk/schema"
)

// registryConfig holds configuration for the Registry.
type registryConfig struct {
	strictMode bool // Fail on duplicate registrations
}

func defaultRegistryConfig() registryConfig {
	return registryConfig{
		strictMode: true, // Secure default: prevent accidental overwrites
	}
}

// RegistryOption configures a Registry instance.
type RegistryOption func(*registryConfig)

// WithStrictMode enables/disables strict mode for duplicate registrations.
// Default is true (fail on duplicates). Disable only for testing or
// hot-reloading.
func WithStrictMode(enabled bool) RegistryOption {
	return func(c *registryConfig) {
		c.strictMode = enabled
	}
}

// Registry maps operation names to the JSON Schemas of their request
// models.
type Registry struct {
	config  registryConfig
	schemas sync.Map // map[string]string (json schema)
	models  sync.Map // map[string]interface{}
}

// NewRegistry creates a new Registry with the given options.
func NewRegistry(opts ...RegistryOption) *Registry {
	cfg := defaultRegistryConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Registry{config: cfg}
}

// Register adds a schema generated from a Go struct.
func (r *Registry) Register(op string, model interface{}) error {
	if r.config.strictMode {
		if _, exists := r.schemas.Load(op); exists {
			return fmt.Errorf("operation %q already registered", op)
		}
	}

	r.models.Store(op, model)

	data, err := schema.GenerateSchema(model)
	if err != nil {
		return fmt.Errorf("failed to generate schema for %s: %w", op, err)
	}
	r.schemas.Store(op, string(data))
	return nil
}

// GetSchema retrieves the JSON Schema for an operation's request model.
func (r *Registry) GetSchema(op string) (string, bool) {
	v, ok := r.schemas.Load(op)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// List returns all registered operation names, sorted.
func (r *Registry) List() []string {
	var keys []string
	r.schemas.Range(func(k, v interface{}) bool {
		keys = append(keys, k.(string))
		return true
	})
	sort.Strings(keys)
	return keys
}
