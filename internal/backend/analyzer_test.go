package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yildizm/TextLens/internal/ai"
	"github.com/yildizm/TextLens/internal/analysis"
	"github.com/yildizm/TextLens/internal/config"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Complete(ctx context.Context, req *ai.CompletionRequest) (*ai.CompletionResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*ai.CompletionResponse)
	return resp, args.Error(1)
}

func (m *mockProvider) HealthCheck(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockProvider) Close() error { return nil }

func reply(content string) *ai.CompletionResponse {
	return &ai.CompletionResponse{Content: content, Model: "test-model", Usage: &ai.TokenUsage{TotalTokens: 42}}
}

func TestAnalyzeEachKind(t *testing.T) {
	tests := []struct {
		kind        analysis.Kind
		instruction string
		content     string
		want        analysis.Result
	}{
		{
			kind:        analysis.KindSummarize,
			instruction: "Summarize the following text concisely.",
			content:     "```json\n{\"summary\": \"Short.\", \"keyPoints\": [\"a\"], \"wordCount\": 1}\n```",
			want:        analysis.NewSummary("Short.", []string{"a"}, 1),
		},
		{
			kind:        analysis.KindSentiment,
			instruction: "Analyze the sentiment of the following text.",
			content:     `{"overallSentiment": "positive", "sentimentScore": 0.8, "emotions": ["joy"], "confidence": 0.9}`,
			want:        analysis.NewSentiment("positive", 0.8, []string{"joy"}, 0.9),
		},
		{
			kind:        analysis.KindIntent,
			instruction: "Detect the intent behind the following text.",
			content:     "```\n{\"primaryIntent\": \"ask\", \"secondaryIntents\": [], \"intentCategory\": \"question\", \"confidence\": 0.7}\n```",
			want:        analysis.NewIntent("ask", "question", nil, 0.7),
		},
		{
			kind:        analysis.KindClassify,
			instruction: "Analyze the following text and classify it with appropriate labels and tags.",
			content:     `  {"labels": ["tech"], "primaryCategory": "technology", "confidence": 0.95}  `,
			want:        analysis.NewClassification("technology", []string{"tech"}, 0.95),
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			provider := &mockProvider{}
			provider.On("Complete", mock.Anything, mock.MatchedBy(func(req *ai.CompletionRequest) bool {
				return assert.Contains(t, req.Prompt, tt.instruction) &&
					assert.Contains(t, req.Prompt, "Text: the input") &&
					assert.Contains(t, req.Prompt, "Respond with ONLY valid JSON") &&
					assert.Contains(t, req.SystemPrompt, "text analysis assistant") &&
					req.Temperature == 0.3 &&
					req.RequestID != ""
			})).Return(reply(tt.content), nil)

			a := NewAnalyzer(provider, 0.3)
			got, err := a.Analyze(context.Background(), tt.kind, "the input")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			provider.AssertExpectations(t)
		})
	}
}

func TestAnalyzeRejectsInput(t *testing.T) {
	a := NewAnalyzer(&mockProvider{}, 0.7)

	_, err := a.Analyze(context.Background(), analysis.KindSummarize, "   ")
	assert.True(t, analysis.IsEmptyInputError(err))

	_, err = a.Analyze(context.Background(), analysis.Kind("translate"), "text")
	assert.True(t, analysis.IsValidationError(err))
}

func TestAnalyzeProviderError(t *testing.T) {
	provider := &mockProvider{}
	cause := ai.NewProviderError(ai.ErrTypeNetwork, "request failed", "mock", errors.New("refused"))
	provider.On("Complete", mock.Anything, mock.Anything).Return(nil, cause)

	_, err := NewAnalyzer(provider, 0.7).Analyze(context.Background(), analysis.KindIntent, "text")
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "intent completion failed")
}

func TestAnalyzeUnparsableReply(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"prose", "I am unable to help with that.", ErrUnparsableReply},
		{"missing discriminator", `{"keyPoints": ["a"]}`, analysis.ErrMissingDiscriminator},
		{"array", `["summary"]`, ErrUnparsableReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &mockProvider{}
			provider.On("Complete", mock.Anything, mock.Anything).Return(reply(tt.content), nil)

			_, err := NewAnalyzer(provider, 0.7).Analyze(context.Background(), analysis.KindSummarize, "text")
			assert.ErrorIs(t, err, ErrUnparsableReply)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  \n```json{\"a\":1}```  ", `{"a":1}`},
		{"```json\n{\"a\":1}", `{"a":1}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripCodeFence(tt.in), tt.in)
	}
}

func TestNewAnalyzerFromConfig(t *testing.T) {
	cfg := config.DefaultConfig().Backend

	a, err := NewAnalyzerFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "ollama", a.Provider().Name())

	cfg.Provider = "openai"
	_, err = NewAnalyzerFromConfig(cfg)
	assert.True(t, ai.IsConfigurationError(err), "openai needs an API key")

	cfg.APIKey = "sk-test"
	a, err = NewAnalyzerFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "openai", a.Provider().Name())

	cfg.Provider = "anthropic"
	_, err = NewAnalyzerFromConfig(cfg)
	assert.Error(t, err)
}

func TestBuildPromptUnknownKind(t *testing.T) {
	_, ok := buildPrompt(analysis.Kind("translate"), "text")
	assert.False(t, ok)

	for _, kind := range analysis.Kinds() {
		p, ok := buildPrompt(kind, "sample")
		require.True(t, ok, kind)
		assert.Contains(t, p.String(), promptTemplates[kind].example)
	}
}
