package ai

import (
	"time"
)

// CompletionRequest represents a single chat completion
type CompletionRequest struct {
	// Prompt is the user message
	Prompt string `json:"prompt"`

	// SystemPrompt provides system-level instructions
	SystemPrompt string `json:"system_prompt,omitempty"`

	// Model overrides the provider's default model
	Model string `json:"model,omitempty"`

	// MaxTokens limits the response length, 0 leaves it to the server
	MaxTokens int `json:"max_tokens,omitempty"`

	// Temperature controls randomness (0.0 to 2.0)
	Temperature float64 `json:"temperature,omitempty"`

	RequestID string `json:"request_id,omitempty"`
}

// Validate checks the request before it is sent
func (r *CompletionRequest) Validate() error {
	if r.Prompt == "" {
		return NewValidationError("prompt", "", "prompt is required")
	}
	if r.MaxTokens < 0 {
		return NewValidationError("max_tokens", "", "max tokens must not be negative")
	}
	if r.Temperature < 0 || r.Temperature > 2 {
		return NewValidationError("temperature", "", "temperature must be between 0 and 2")
	}
	return nil
}

// CompletionResponse represents the response from a completion request
type CompletionResponse struct {
	// Content is the generated text
	Content string `json:"content"`

	// FinishReason indicates why the completion finished
	FinishReason string `json:"finish_reason"`

	Usage *TokenUsage `json:"usage,omitempty"`

	// Model indicates which model was used
	Model string `json:"model"`

	RequestID string    `json:"request_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenUsage tracks token consumption
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ProviderConfig contains configuration for a provider
type ProviderConfig struct {
	// Type is the registered provider name (openai, ollama)
	Type string `json:"type"`

	// APIKey for authentication
	APIKey string `json:"api_key,omitempty"`

	// BaseURL for the OpenAI-compatible API, including the /v1 prefix
	BaseURL string `json:"base_url,omitempty"`

	// DefaultModel is used when a request names no model
	DefaultModel string `json:"default_model,omitempty"`

	// DefaultTemperature is used when a request leaves temperature at zero
	DefaultTemperature float64 `json:"default_temperature,omitempty"`

	// Timeout for requests, 0 means none
	Timeout time.Duration `json:"timeout,omitempty"`
}

// Validate checks the fields every provider needs
func (c *ProviderConfig) Validate() error {
	if c.BaseURL == "" {
		return NewConfigurationError(c.Type, "base_url", "base URL is required")
	}
	if c.DefaultModel == "" {
		return NewConfigurationError(c.Type, "default_model", "default model is required")
	}
	if c.DefaultTemperature < 0 || c.DefaultTemperature > 2 {
		return NewConfigurationError(c.Type, "default_temperature", "temperature must be between 0 and 2")
	}
	if c.Timeout < 0 {
		return NewConfigurationError(c.Type, "timeout", "timeout must not be negative")
	}
	return nil
}
