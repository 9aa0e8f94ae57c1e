package ai

import (
	"context"
)

// Provider is a chat completion backend
type Provider interface {
	// Name returns the provider name (e.g. "openai", "ollama")
	Name() string

	// Complete performs a single non-streaming completion
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)

	// HealthCheck verifies provider connectivity
	HealthCheck(ctx context.Context) error

	// Close releases provider resources
	Close() error
}

// ProviderFactory creates provider instances
type ProviderFactory interface {
	// Create creates a new provider instance with the given config
	Create(config *ProviderConfig) (Provider, error)

	// Type returns the provider type this factory creates
	Type() string

	// DefaultConfig returns a default configuration
	DefaultConfig() *ProviderConfig
}
