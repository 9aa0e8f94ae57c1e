package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	config *ProviderConfig
}

func (s *stubProvider) Name() string { return s.config.Type }
func (s *stubProvider) Complete(context.Context, *CompletionRequest) (*CompletionResponse, error) {
	return &CompletionResponse{Content: "stub"}, nil
}
func (s *stubProvider) HealthCheck(context.Context) error { return nil }
func (s *stubProvider) Close() error                      { return nil }

type stubFactory struct{}

func (stubFactory) Create(config *ProviderConfig) (Provider, error) {
	return &stubProvider{config: config}, nil
}
func (stubFactory) Type() string { return "stub" }
func (stubFactory) DefaultConfig() *ProviderConfig {
	return &ProviderConfig{Type: "stub", BaseURL: "http://stub/v1", DefaultModel: "stub-model", DefaultTemperature: 0.5}
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("stub", stubFactory{}))
	assert.True(t, r.IsRegistered("stub"))
	assert.Equal(t, []string{"stub"}, r.List())

	err := r.Register("stub", stubFactory{})
	assert.ErrorIs(t, err, &ProviderError{Type: ErrTypeRegistration})
}

func TestRegistryCreateFillsDefaults(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("stub", stubFactory{}))

	p, err := r.Create(&ProviderConfig{Type: "stub", DefaultModel: "custom"})
	require.NoError(t, err)

	cfg := p.(*stubProvider).config
	assert.Equal(t, "http://stub/v1", cfg.BaseURL)
	assert.Equal(t, "custom", cfg.DefaultModel)
	assert.Equal(t, 0.5, cfg.DefaultTemperature)
}

func TestRegistryCreateErrors(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("stub", stubFactory{}))

	_, err := r.Create(nil)
	assert.True(t, IsConfigurationError(err))

	_, err = r.Create(&ProviderConfig{Type: "missing"})
	assert.ErrorIs(t, err, &ProviderError{Type: ErrTypeNotFound})

	_, err = r.Create(&ProviderConfig{Type: "stub", DefaultTemperature: 9})
	assert.True(t, IsConfigurationError(err))
}

func TestCompletionRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     CompletionRequest
		wantErr bool
	}{
		{"valid", CompletionRequest{Prompt: "p", MaxTokens: 100, Temperature: 0.7}, false},
		{"empty prompt", CompletionRequest{MaxTokens: 100}, true},
		{"negative max tokens", CompletionRequest{Prompt: "p", MaxTokens: -1}, true},
		{"temperature too high", CompletionRequest{Prompt: "p", Temperature: 2.5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			assert.Equal(t, tt.wantErr, err != nil, "Validate() = %v", err)
			if err != nil {
				assert.True(t, IsValidationError(err))
			}
		})
	}
}

func TestErrorTypeForStatus(t *testing.T) {
	assert.Equal(t, ErrTypeAuthentication, ErrorTypeForStatus(401))
	assert.Equal(t, ErrTypeAuthentication, ErrorTypeForStatus(403))
	assert.Equal(t, ErrTypeRateLimit, ErrorTypeForStatus(429))
	assert.Equal(t, ErrTypeNotFound, ErrorTypeForStatus(404))
	assert.Equal(t, ErrTypeValidation, ErrorTypeForStatus(400))
	assert.Equal(t, ErrTypeTimeout, ErrorTypeForStatus(504))
	assert.Equal(t, ErrTypeProvider, ErrorTypeForStatus(500))
}

func TestProviderErrorFormatting(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := NewProviderError(ErrTypeNetwork, "request failed", "ollama", cause)
	err.StatusCode = 502

	assert.Equal(t, "provider=ollama: type=network: status=502: request failed: cause=dial tcp: refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsRetryableError(err))
	assert.False(t, IsRetryableError(NewProviderError(ErrTypeAuthentication, "no", "x", nil)))
}
