// Package backend serves the four text analyses over HTTP on top of an
// OpenAI-compatible chat model.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yildizm/TextLens/internal/ai"
	"github.com/yildizm/TextLens/internal/ai/providers/ollama"
	"github.com/yildizm/TextLens/internal/ai/providers/openai"
	"github.com/yildizm/TextLens/internal/analysis"
	"github.com/yildizm/TextLens/internal/config"
	"github.com/yildizm/TextLens/internal/logger"
	"github.com/yildizm/go-promptfmt"
)

// ErrUnparsableReply is returned when the model reply is not the expected JSON
var ErrUnparsableReply = errors.New("failed to parse AI response as JSON")

// Analyzer turns text into analysis results using a chat model
type Analyzer struct {
	provider    ai.Provider
	temperature float64
	maxTokens   int
	logger      *logger.Logger
}

// AnalyzerOption configures an Analyzer
type AnalyzerOption func(*Analyzer)

// WithAnalyzerLogger sets the analyzer logger
func WithAnalyzerLogger(l *logger.Logger) AnalyzerOption {
	return func(a *Analyzer) { a.logger = l }
}

// WithMaxTokens caps the reply length
func WithMaxTokens(n int) AnalyzerOption {
	return func(a *Analyzer) { a.maxTokens = n }
}

// NewAnalyzer wraps an existing provider
func NewAnalyzer(provider ai.Provider, temperature float64, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		provider:    provider,
		temperature: temperature,
		logger:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewRegistry returns a registry with the openai and ollama providers
func NewRegistry() (*ai.Registry, error) {
	registry := ai.NewRegistry()
	if err := openai.Register(registry); err != nil {
		return nil, err
	}
	if err := ollama.Register(registry); err != nil {
		return nil, err
	}
	return registry, nil
}

// NewAnalyzerFromConfig creates the configured provider and wraps it
func NewAnalyzerFromConfig(cfg config.BackendConfig, opts ...AnalyzerOption) (*Analyzer, error) {
	registry, err := NewRegistry()
	if err != nil {
		return nil, err
	}

	provider, err := registry.Create(&ai.ProviderConfig{
		Type:               cfg.Provider,
		APIKey:             cfg.APIKey,
		BaseURL:            cfg.BaseURL,
		DefaultModel:       cfg.Model,
		DefaultTemperature: cfg.Temperature,
		Timeout:            cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s provider: %w", cfg.Provider, err)
	}
	return NewAnalyzer(provider, cfg.Temperature, opts...), nil
}

// Provider returns the underlying chat provider
func (a *Analyzer) Provider() ai.Provider { return a.provider }

// Analyze runs the kind's prompt against the model and decodes the reply
func (a *Analyzer) Analyze(ctx context.Context, kind analysis.Kind, text string) (analysis.Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &analysis.EmptyInputError{}
	}
	prompt, ok := buildPrompt(kind, text)
	if !ok {
		return nil, analysis.NewValidationError("kind", string(kind), "unknown analysis kind")
	}

	log := a.logger.WithComponent("backend")
	start := time.Now()

	resp, err := a.provider.Complete(ctx, &ai.CompletionRequest{
		Prompt:       prompt.String(),
		SystemPrompt: prompt.SystemPrompt,
		MaxTokens:    a.maxTokens,
		Temperature:  a.temperature,
		RequestID:    uuid.NewString(),
	})
	if err != nil {
		return nil, fmt.Errorf("%s completion failed: %w", kind, err)
	}

	result, err := parseReply(kind, resp.Content)
	if err != nil {
		log.WarnWithFields("unparsable model reply", []logger.Field{
			logger.F("kind", string(kind)),
			logger.F("reply", truncate(resp.Content, 200)),
		})
		return nil, err
	}

	fields := []logger.Field{
		logger.F("kind", string(kind)),
		logger.F("model", resp.Model),
		logger.Duration(time.Since(start)),
	}
	if resp.Usage != nil {
		fields = append(fields, logger.F("tokens", resp.Usage.TotalTokens))
	}
	log.DebugWithFields("analysis complete", fields)
	return result, nil
}

// parseReply strips markdown code fences and decodes the JSON object
func parseReply(kind analysis.Kind, content string) (analysis.Result, error) {
	cleaned := stripCodeFence(content)

	var obj map[string]any
	if parsed := promptfmt.NewResponse(cleaned).TryParseJSON(&obj); !parsed.Success || obj == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnparsableReply, truncate(cleaned, 80))
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnparsableReply, err)
	}
	result, err := analysis.Decode(kind, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnparsableReply, err)
	}
	return result, nil
}

func stripCodeFence(content string) string {
	s := strings.TrimSpace(content)
	switch {
	case strings.HasPrefix(s, "```json"):
		s = s[len("```json"):]
	case strings.HasPrefix(s, "```"):
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// HealthCheck checks that the model server is reachable
func (a *Analyzer) HealthCheck(ctx context.Context) error {
	return a.provider.HealthCheck(ctx)
}
