package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yildizm/TextLens/internal/ai"
)

const testAPIKey = "test-api-key"

type mockChatClient struct {
	mock.Mock
}

func (m *mockChatClient) CreateChatCompletion(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(goopenai.ChatCompletionResponse), args.Error(1)
}

func (m *mockChatClient) ListModels(ctx context.Context) (goopenai.ModelsList, error) {
	args := m.Called(ctx)
	return args.Get(0).(goopenai.ModelsList), args.Error(1)
}

func testConfig(baseURL string) *ai.ProviderConfig {
	return &ai.ProviderConfig{
		Type:               "openai",
		APIKey:             testAPIKey,
		BaseURL:            baseURL,
		DefaultModel:       "test-model",
		DefaultTemperature: 0.7,
		Timeout:            5 * time.Second,
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		config  *ai.ProviderConfig
		wantErr bool
	}{
		{name: "nil config", config: nil, wantErr: true},
		{name: "valid config", config: testConfig(DefaultBaseURL)},
		{name: "missing base URL", config: &ai.ProviderConfig{DefaultModel: "m"}, wantErr: true},
		{name: "missing model", config: &ai.ProviderConfig{BaseURL: DefaultBaseURL}, wantErr: true},
		{name: "temperature out of range", config: &ai.ProviderConfig{BaseURL: DefaultBaseURL, DefaultModel: "m", DefaultTemperature: 3}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.config)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, ai.IsConfigurationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "openai", p.Name())
			assert.NoError(t, p.Close())
		})
	}
}

func TestCompleteBuildsChatRequest(t *testing.T) {
	client := &mockChatClient{}
	p := NewWithClient("openai", testConfig(DefaultBaseURL), client)

	client.On("CreateChatCompletion", mock.Anything, mock.MatchedBy(func(req goopenai.ChatCompletionRequest) bool {
		return req.Model == "test-model" &&
			req.Temperature == float32(0.7) &&
			len(req.Messages) == 2 &&
			req.Messages[0].Role == goopenai.ChatMessageRoleSystem &&
			req.Messages[0].Content == "be brief" &&
			req.Messages[1].Role == goopenai.ChatMessageRoleUser &&
			req.Messages[1].Content == "hello"
	})).Return(goopenai.ChatCompletionResponse{
		Model:   "test-model",
		Created: 1700000000,
		Choices: []goopenai.ChatCompletionChoice{{
			Message:      goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleAssistant, Content: "hi"},
			FinishReason: goopenai.FinishReasonStop,
		}},
		Usage: goopenai.Usage{PromptTokens: 3, CompletionTokens: 1, TotalTokens: 4},
	}, nil)

	resp, err := p.Complete(context.Background(), &ai.CompletionRequest{
		Prompt:       "hello",
		SystemPrompt: "be brief",
		RequestID:    "req-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "hi", resp.Content)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, "req-1", resp.RequestID)
	assert.Equal(t, 4, resp.Usage.TotalTokens)
	assert.Equal(t, time.Unix(1700000000, 0), resp.CreatedAt)
	client.AssertExpectations(t)
}

func TestCompleteOverridesModelAndTemperature(t *testing.T) {
	client := &mockChatClient{}
	p := NewWithClient("openai", testConfig(DefaultBaseURL), client)

	client.On("CreateChatCompletion", mock.Anything, mock.MatchedBy(func(req goopenai.ChatCompletionRequest) bool {
		return req.Model == "other" && req.Temperature == float32(0.2) && len(req.Messages) == 1
	})).Return(goopenai.ChatCompletionResponse{
		Choices: []goopenai.ChatCompletionChoice{{Message: goopenai.ChatCompletionMessage{Content: "ok"}}},
	}, nil)

	_, err := p.Complete(context.Background(), &ai.CompletionRequest{Prompt: "x", Model: "other", Temperature: 0.2})
	require.NoError(t, err)
	client.AssertExpectations(t)
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantType  ai.ErrorType
		wantRetry bool
	}{
		{"unauthorized", &goopenai.APIError{HTTPStatusCode: http.StatusUnauthorized, Message: "bad key"}, ai.ErrTypeAuthentication, false},
		{"rate limited", &goopenai.APIError{HTTPStatusCode: http.StatusTooManyRequests, Message: "slow down"}, ai.ErrTypeRateLimit, true},
		{"server error", &goopenai.RequestError{HTTPStatusCode: http.StatusBadGateway, Err: errors.New("bad gateway")}, ai.ErrTypeProvider, false},
		{"deadline", context.DeadlineExceeded, ai.ErrTypeTimeout, true},
		{"network", errors.New("connection refused"), ai.ErrTypeNetwork, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockChatClient{}
			p := NewWithClient("openai", testConfig(DefaultBaseURL), client)
			client.On("CreateChatCompletion", mock.Anything, mock.Anything).
				Return(goopenai.ChatCompletionResponse{}, tt.err)

			_, err := p.Complete(context.Background(), &ai.CompletionRequest{Prompt: "x"})
			require.Error(t, err)

			var pe *ai.ProviderError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.wantType, pe.Type)
			assert.Equal(t, tt.wantRetry, ai.IsRetryableError(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestCompleteNoChoices(t *testing.T) {
	client := &mockChatClient{}
	p := NewWithClient("openai", testConfig(DefaultBaseURL), client)
	client.On("CreateChatCompletion", mock.Anything, mock.Anything).
		Return(goopenai.ChatCompletionResponse{}, nil)

	_, err := p.Complete(context.Background(), &ai.CompletionRequest{Prompt: "x"})
	assert.ErrorIs(t, err, &ai.ProviderError{Type: ai.ErrTypeInternal})
}

func TestCompleteValidatesRequest(t *testing.T) {
	p := NewWithClient("openai", testConfig(DefaultBaseURL), &mockChatClient{})

	_, err := p.Complete(context.Background(), nil)
	assert.True(t, ai.IsValidationError(err))

	_, err = p.Complete(context.Background(), &ai.CompletionRequest{})
	assert.True(t, ai.IsValidationError(err))

	_, err = p.Complete(context.Background(), &ai.CompletionRequest{Prompt: "x", Temperature: 5})
	assert.True(t, ai.IsValidationError(err))
}

func TestHealthCheck(t *testing.T) {
	client := &mockChatClient{}
	p := NewWithClient("openai", testConfig(DefaultBaseURL), client)
	client.On("ListModels", mock.Anything).Return(goopenai.ModelsList{}, nil).Once()
	client.On("ListModels", mock.Anything).Return(goopenai.ModelsList{}, errors.New("down")).Once()

	assert.NoError(t, p.HealthCheck(context.Background()))
	assert.Error(t, p.HealthCheck(context.Background()))
}

func TestProviderAgainstServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer "+testAPIKey, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/v1/chat/completions":
			var req goopenai.ChatCompletionRequest
			if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if req.Messages[len(req.Messages)-1].Content == "fail" {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":{"message":"invalid key","type":"invalid_request_error"}}`))
				return
			}
			_ = json.NewEncoder(w).Encode(goopenai.ChatCompletionResponse{
				ID:     "chatcmpl-test",
				Object: "chat.completion",
				Model:  req.Model,
				Choices: []goopenai.ChatCompletionChoice{{
					Message:      goopenai.ChatCompletionMessage{Role: "assistant", Content: "from server"},
					FinishReason: goopenai.FinishReasonStop,
				}},
			})
		case "/v1/models":
			_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"test-model","object":"model"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	p, err := New(testConfig(server.URL + "/v1"))
	require.NoError(t, err)

	resp, err := p.Complete(context.Background(), &ai.CompletionRequest{Prompt: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "from server", resp.Content)
	assert.Equal(t, "test-model", resp.Model)

	_, err = p.Complete(context.Background(), &ai.CompletionRequest{Prompt: "fail"})
	var pe *ai.ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, ai.ErrTypeAuthentication, pe.Type)
	assert.Equal(t, http.StatusUnauthorized, pe.StatusCode)

	assert.NoError(t, p.HealthCheck(context.Background()))
}

func TestFactory(t *testing.T) {
	f := NewFactory()
	assert.Equal(t, "openai", f.Type())
	assert.Equal(t, DefaultBaseURL, f.DefaultConfig().BaseURL)

	_, err := f.Create(f.DefaultConfig())
	assert.True(t, ai.IsConfigurationError(err), "hosted API needs a key")

	cfg := f.DefaultConfig()
	cfg.APIKey = testAPIKey
	p, err := f.Create(cfg)
	require.NoError(t, err)
	assert.Equal(t, "openai", p.Name())
}
