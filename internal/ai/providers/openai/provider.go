package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/yildizm/TextLens/internal/ai"
)

// ChatClient is the subset of the go-openai client the provider uses
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)
	ListModels(ctx context.Context) (goopenai.ModelsList, error)
}

// Provider talks to any OpenAI-compatible chat completion API
type Provider struct {
	name   string
	config *ai.ProviderConfig
	client ChatClient
}

// New creates a provider named "openai"
func New(config *ai.ProviderConfig) (*Provider, error) {
	return NewNamed("openai", config)
}

// NewNamed creates a provider that reports name in errors and logs.
// It is used for OpenAI-compatible servers such as Ollama.
func NewNamed(name string, config *ai.ProviderConfig) (*Provider, error) {
	if config == nil {
		return nil, ai.NewConfigurationError(name, "config", "configuration is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	clientConfig := goopenai.DefaultConfig(config.APIKey)
	clientConfig.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.Timeout > 0 {
		clientConfig.HTTPClient = &http.Client{Timeout: config.Timeout}
	}

	return NewWithClient(name, config, goopenai.NewClientWithConfig(clientConfig)), nil
}

// NewWithClient creates a provider around an existing client
func NewWithClient(name string, config *ai.ProviderConfig, client ChatClient) *Provider {
	return &Provider{name: name, config: config, client: client}
}

func (p *Provider) Name() string {
	return p.name
}

func (p *Provider) Complete(ctx context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	if req == nil {
		return nil, ai.NewValidationError("request", "nil", "completion request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	resp, err := p.client.CreateChatCompletion(ctx, p.buildChatRequest(req))
	if err != nil {
		return nil, p.mapError(ctx, err)
	}
	if len(resp.Choices) == 0 {
		return nil, ai.NewProviderError(ai.ErrTypeInternal, "response contained no choices", p.name, nil)
	}

	choice := resp.Choices[0]
	return &ai.CompletionResponse{
		Content:      choice.Message.Content,
		FinishReason: string(choice.FinishReason),
		Usage: &ai.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
		Model:     resp.Model,
		RequestID: req.RequestID,
		CreatedAt: createdAt(resp.Created),
	}, nil
}

// HealthCheck lists the server's models
func (p *Provider) HealthCheck(ctx context.Context) error {
	if _, err := p.client.ListModels(ctx); err != nil {
		return p.mapError(ctx, err)
	}
	return nil
}

func (p *Provider) Close() error {
	return nil
}

func (p *Provider) buildChatRequest(req *ai.CompletionRequest) goopenai.ChatCompletionRequest {
	model := req.Model
	if model == "" {
		model = p.config.DefaultModel
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = p.config.DefaultTemperature
	}

	messages := make([]goopenai.ChatCompletionMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleSystem,
			Content: req.SystemPrompt,
		})
	}
	messages = append(messages, goopenai.ChatCompletionMessage{
		Role:    goopenai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	return goopenai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: float32(temperature),
	}
}

func (p *Provider) mapError(ctx context.Context, err error) error {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		pe := ai.NewProviderError(ai.ErrorTypeForStatus(apiErr.HTTPStatusCode), apiErr.Message, p.name, err)
		pe.StatusCode = apiErr.HTTPStatusCode
		return pe
	}

	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		pe := ai.NewProviderError(ai.ErrorTypeForStatus(reqErr.HTTPStatusCode), "request failed", p.name, err)
		pe.StatusCode = reqErr.HTTPStatusCode
		return pe
	}

	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return ai.NewProviderError(ai.ErrTypeTimeout, "request timed out", p.name, err)
	}
	if errors.Is(err, context.Canceled) {
		return ai.NewProviderError(ai.ErrTypeInternal, "request canceled", p.name, err)
	}
	return ai.NewProviderError(ai.ErrTypeNetwork, "request failed", p.name, err)
}

func createdAt(unix int64) time.Time {
	if unix == 0 {
		return time.Now()
	}
	return time.Unix(unix, 0)
}
