package openai

import (
	"time"

	"github.com/yildizm/TextLens/internal/ai"
)

const (
	DefaultBaseURL     = "https://api.openai.com/v1"
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.7
	DefaultTimeout     = 60 * time.Second
)

// Factory implements ai.ProviderFactory for the OpenAI API
type Factory struct{}

// NewFactory creates a new OpenAI provider factory
func NewFactory() *Factory {
	return &Factory{}
}

// Create requires an API key; the hosted API rejects anonymous requests
func (f *Factory) Create(config *ai.ProviderConfig) (ai.Provider, error) {
	if config == nil {
		config = f.DefaultConfig()
	}
	if config.APIKey == "" {
		return nil, ai.NewConfigurationError("openai", "api_key", "API key is required")
	}
	return New(config)
}

func (f *Factory) Type() string {
	return "openai"
}

func (f *Factory) DefaultConfig() *ai.ProviderConfig {
	return &ai.ProviderConfig{
		Type:               "openai",
		BaseURL:            DefaultBaseURL,
		DefaultModel:       DefaultModel,
		DefaultTemperature: DefaultTemperature,
		Timeout:            DefaultTimeout,
	}
}

// Register adds the factory to registry
func Register(registry *ai.Registry) error {
	return registry.Register("openai", NewFactory())
}
