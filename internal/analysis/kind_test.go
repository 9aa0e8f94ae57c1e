package analysis

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yildizm/TextLens/internal/emoji"
)

func TestKindsOrder(t *testing.T) {
	assert.Equal(t, []Kind{KindSummarize, KindSentiment, KindIntent, KindClassify}, Kinds())

	// callers cannot reorder the canonical list
	ks := Kinds()
	ks[0] = KindClassify
	assert.Equal(t, KindSummarize, Kinds()[0])

	for i, k := range Kinds() {
		assert.Equal(t, i, k.Index())
	}
	assert.Equal(t, -1, Kind("translate").Index())
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"summarize", KindSummarize, false},
		{" Sentiment ", KindSentiment, false},
		{"INTENT", KindIntent, false},
		{"classify", KindClassify, false},
		{"classification", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKindLabelAndIcon(t *testing.T) {
	t.Cleanup(func() { emoji.SetEmojiDisabled(false) })

	assert.Equal(t, "Summarize", KindSummarize.Label())
	assert.Equal(t, "Sentiment", KindSentiment.Label())
	assert.Equal(t, "Intent", KindIntent.Label())
	assert.Equal(t, "Classify", KindClassify.Label())

	assert.Equal(t, "🎯", KindIntent.Icon())
	emoji.SetEmojiDisabled(true)
	assert.Equal(t, "[INT]", KindIntent.Icon())
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"service message wins", NewServiceError(KindSentiment, 500, "model overloaded"), "model overloaded"},
		{"service without message", NewServiceError(KindSentiment, 502, ""), "Sentiment analysis failed"},
		{"wrapped service error", fmt.Errorf("outer: %w", NewServiceError(KindIntent, 400, "bad text")), "bad text"},
		{"transport", NewTransportError(KindIntent, "connection refused", errors.New("dial tcp")), "Intent analysis failed"},
		{"empty input", &EmptyInputError{}, EmptyInputMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind := KindSentiment
			var svc *ServiceError
			if errors.As(tt.err, &svc) {
				kind = svc.Kind
			}
			var tr *TransportError
			if errors.As(tt.err, &tr) {
				kind = tr.Kind
			}
			assert.Equal(t, tt.want, UserMessage(kind, tt.err))
		})
	}
}

func TestErrorPredicates(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	tr := NewTransportError(KindSummarize, "cannot reach analysis service", cause)

	assert.True(t, IsTransportError(tr))
	assert.False(t, IsServiceError(tr))
	assert.ErrorIs(t, tr, cause)
	assert.ErrorIs(t, tr, &TransportError{})
	assert.Contains(t, tr.Error(), "kind=summarize")
	assert.Contains(t, tr.Error(), "cause=dial tcp: refused")

	svc := NewServiceError(KindClassify, 503, "")
	assert.True(t, IsServiceError(svc))
	assert.ErrorIs(t, svc, &ServiceError{})
	assert.Equal(t, "kind=classify: type=service: status=503: Classify analysis failed", svc.Error())

	assert.True(t, IsEmptyInputError(&EmptyInputError{}))
	assert.False(t, IsEmptyInputError(ErrBusy))
}
