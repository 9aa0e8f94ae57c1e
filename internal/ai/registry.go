package ai

import (
	"sort"
	"sync"
)

// Registry maps provider type names to factories
type Registry struct {
	mu        sync.RWMutex
	factories map[string]ProviderFactory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]ProviderFactory)}
}

// Register adds a factory under name
func (r *Registry) Register(name string, factory ProviderFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return &ProviderError{
			Type:     ErrTypeRegistration,
			Message:  "provider already registered",
			Provider: name,
		}
	}
	r.factories[name] = factory
	return nil
}

// Create builds a provider for config.Type. Empty fields in config are
// filled from the factory's defaults.
func (r *Registry) Create(config *ProviderConfig) (Provider, error) {
	if config == nil {
		return nil, NewConfigurationError("", "config", "configuration is required")
	}

	r.mu.RLock()
	factory, exists := r.factories[config.Type]
	r.mu.RUnlock()

	if !exists {
		return nil, &ProviderError{
			Type:     ErrTypeNotFound,
			Message:  "provider not registered",
			Provider: config.Type,
		}
	}

	merged := withDefaults(config, factory.DefaultConfig())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return factory.Create(merged)
}

// List returns the registered provider names, sorted
func (r *Registry) List() []string {
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
func (r *Registry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[name]
	return exists
}

func withDefaults(config, defaults *ProviderConfig) *ProviderConfig {
	merged := *config
	if defaults == nil {
		return &merged
	}
	if merged.APIKey == "" {
		merged.APIKey = defaults.APIKey
	}
	if merged.BaseURL == "" {
		merged.BaseURL = defaults.BaseURL
	}
	if merged.DefaultModel == "" {
		merged.DefaultModel = defaults.DefaultModel
	}
	if merged.DefaultTemperature == 0 {
		merged.DefaultTemperature = defaults.DefaultTemperature
	}
	if merged.Timeout == 0 {
		merged.Timeout = defaults.Timeout
	}
	return &merged
}
