// Package ollama configures the OpenAI-compatible provider for a local
// Ollama server.
package ollama

import (
	"time"

	"github.com/yildizm/TextLens/internal/ai"
	"github.com/yildizm/TextLens/internal/ai/providers/openai"
)

const (
	DefaultBaseURL     = "http://localhost:11434/v1"
	DefaultModel       = "gemma3:4b"
	DefaultTemperature = 0.7
	DefaultTimeout     = 2 * time.Minute

	// placeholderKey is sent when none is configured; Ollama ignores it
	placeholderKey = "ollama"
)

// Factory implements ai.ProviderFactory for Ollama
type Factory struct{}

// NewFactory creates a new Ollama provider factory
func NewFactory() *Factory {
	return &Factory{}
}

// Create creates an Ollama provider instance with the given config
func (f *Factory) Create(config *ai.ProviderConfig) (ai.Provider, error) {
	if config == nil {
		config = f.DefaultConfig()
	}

	cfg := *config
	if cfg.APIKey == "" {
		cfg.APIKey = placeholderKey
	}
	return openai.NewNamed("ollama", &cfg)
}

func (f *Factory) Type() string {
	return "ollama"
}

func (f *Factory) DefaultConfig() *ai.ProviderConfig {
	return &ai.ProviderConfig{
		Type:               "ollama",
		BaseURL:            DefaultBaseURL,
		DefaultModel:       DefaultModel,
		DefaultTemperature: DefaultTemperature,
		Timeout:            DefaultTimeout,
	}
}

// Register adds the factory to registry
func Register(registry *ai.Registry) error {
	return registry.Register("ollama", NewFactory())
}
