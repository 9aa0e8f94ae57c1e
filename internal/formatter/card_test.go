package formatter

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yildizm/TextLens/internal/analysis"
)

func TestFormatConfidence(t *testing.T) {
	tests := map[float64]string{
		0.873:  "87.3%",
		0.95:   "95.0%",
		1:      "100.0%",
		0:      "0.0%",
		0.8765: "87.7%",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatConfidence(in), "confidence %v", in)
	}
}

func TestFormatScore(t *testing.T) {
	assert.Equal(t, "0.46", FormatScore(0.455))
	assert.Equal(t, "0.85", FormatScore(0.85))
	assert.Equal(t, "-0.30", FormatScore(-0.3))
	assert.Equal(t, "1.00", FormatScore(1))
}

func TestSentimentClass(t *testing.T) {
	assert.Equal(t, "sentiment-positive", SentimentClass("Positive"))
	assert.Equal(t, "sentiment-negative", SentimentClass("negative"))
	assert.Equal(t, "sentiment-neutral", SentimentClass("neutral"))
	assert.Equal(t, "sentiment-neutral", SentimentClass("mixed"))
}

func TestFormatEachKind(t *testing.T) {
	tests := []struct {
		kind     analysis.Kind
		payload  string
		contains []string
	}{
		{
			kind:    analysis.KindSummarize,
			payload: `{"summary":"Short.","keyPoints":["first","second"],"wordCount":25}`,
			contains: []string{
				`<div class="summary-result">`,
				"<p>Short.</p>",
				"<li>first</li><li>second</li>",
				"Word Count: 25",
			},
		},
		{
			kind:    analysis.KindSentiment,
			payload: `{"overallSentiment":"Positive","sentimentScore":0.455,"emotions":["joy"],"confidence":0.873}`,
			contains: []string{
				`<div class="sentiment-main sentiment-positive">`,
				"Score: 0.46",
				`<span class="tag emotion-tag">joy</span>`,
				"Confidence: 87.3%",
			},
		},
		{
			kind:    analysis.KindIntent,
			payload: `{"primaryIntent":"find_restaurant","intentCategory":"question","secondaryIntents":["location_search"],"confidence":0.88}`,
			contains: []string{
				`<p class="primary-value">find_restaurant</p>`,
				`<span class="tag category-tag">question</span>`,
				`<span class="tag">location_search</span>`,
				"Confidence: 88.0%",
			},
		},
		{
			kind:    analysis.KindClassify,
			payload: `{"labels":["technology","news"],"primaryCategory":"technology","confidence":0.95}`,
			contains: []string{
				`<div class="classification-result">`,
				`<span class="tag label-tag">news</span>`,
				"Confidence: 95.0%",
			},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			card, err := Format(tt.kind, json.RawMessage(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.kind, card.Result.Kind())
			for _, want := range tt.contains {
				assert.Contains(t, string(card.Body), want)
			}
		})
	}
}

func TestFormatEscapesUntrustedText(t *testing.T) {
	payload := `{"summary":"<script>alert(1)</script>","keyPoints":["<b>bold</b>"],"wordCount":2}`

	card, err := Format(analysis.KindSummarize, json.RawMessage(payload))
	require.NoError(t, err)

	body := string(card.Body)
	assert.NotContains(t, body, "<script>")
	assert.NotContains(t, body, "<b>")
	assert.Contains(t, body, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, body, "&lt;b&gt;bold&lt;/b&gt;")
}

func TestFormatMissingArraysRenderEmpty(t *testing.T) {
	card, err := Format(analysis.KindSentiment, json.RawMessage(`{"overallSentiment":"neutral","sentimentScore":0,"confidence":0.5}`))
	require.NoError(t, err)
	assert.Contains(t, string(card.Body), `<div class="tags"></div>`)

	card, err = Format(analysis.KindSummarize, json.RawMessage(`{"summary":"x"}`))
	require.NoError(t, err)
	assert.Contains(t, string(card.Body), `<ul class="key-points"></ul>`)
}

func TestFormatAbsent(t *testing.T) {
	payloads := map[analysis.Kind]string{
		analysis.KindSummarize: `{"keyPoints":["a"]}`,
		analysis.KindSentiment: `{"confidence":0.9}`,
		analysis.KindIntent:    `{"intentCategory":"question"}`,
		analysis.KindClassify:  `{"labels":["x"]}`,
	}
	for _, kind := range analysis.Kinds() {
		t.Run(string(kind), func(t *testing.T) {
			_, err := Format(kind, json.RawMessage(payloads[kind]))
			assert.ErrorIs(t, err, analysis.ErrMissingDiscriminator)
		})
	}

	_, err := Format(analysis.KindSummarize, json.RawMessage(`{"summary":null,"keyPoints":["a"]}`))
	assert.ErrorIs(t, err, analysis.ErrMissingDiscriminator, "null discriminator counts as absent")
}

func TestFormatMalformed(t *testing.T) {
	payloads := map[string]string{
		"not json":     `not json`,
		"array":        `[1,2,3]`,
		"wrong type":   `{"overallSentiment":"positive","sentimentScore":0.5,"confidence":"high"}`,
		"string field": `{"overallSentiment":7}`,
	}
	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			_, err := Format(analysis.KindSentiment, json.RawMessage(payload))
			require.Error(t, err)
			assert.NotErrorIs(t, err, analysis.ErrMissingDiscriminator)
		})
	}
}

func TestRenderBodyNil(t *testing.T) {
	_, err := RenderBody(nil)
	assert.Error(t, err)
}

func TestBodyHasNoLeadingWhitespace(t *testing.T) {
	card, err := Format(analysis.KindClassify, json.RawMessage(`{"primaryCategory":"x"}`))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(card.Body), "<div"))
}
