package analysis

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// Result is a decoded analysis payload. The set of implementations is closed:
// Summary, Sentiment, Intent and Classification.
type Result interface {
	Kind() Kind
	isResult()
}

// Summary is the result of a summarize request
type Summary struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"keyPoints"`
	WordCount int      `json:"wordCount"`
}

// NewSummary creates a summary result
func NewSummary(summary string, keyPoints []string, wordCount int) Summary {
	return Summary{
		Summary:   summary,
		KeyPoints: cloneStrings(keyPoints),
		WordCount: wordCount,
	}
}

func (Summary) Kind() Kind { return KindSummarize }
func (Summary) isResult()  {}

// SentimentLabel is the normalized overall sentiment
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentOther    SentimentLabel = "other"
)

// ParseSentimentLabel maps free text onto the closed label set
func ParseSentimentLabel(s string) SentimentLabel {
	switch SentimentLabel(strings.ToLower(strings.TrimSpace(s))) {
	case SentimentPositive:
		return SentimentPositive
	case SentimentNegative:
		return SentimentNegative
	case SentimentNeutral:
		return SentimentNeutral
	default:
		return SentimentOther
	}
}

// Sentiment is the result of a sentiment request.
// OverallSentiment keeps the service's wording; Label normalizes it.
type Sentiment struct {
	OverallSentiment string   `json:"overallSentiment"`
	SentimentScore   float64  `json:"sentimentScore"`
	Emotions         []string `json:"emotions"`
	Confidence       float64  `json:"confidence"`
}

// NewSentiment creates a sentiment result
func NewSentiment(overall string, score float64, emotions []string, confidence float64) Sentiment {
	return Sentiment{
		OverallSentiment: overall,
		SentimentScore:   score,
		Emotions:         cloneStrings(emotions),
		Confidence:       confidence,
	}
}

func (Sentiment) Kind() Kind { return KindSentiment }
func (Sentiment) isResult()  {}

// Label returns the normalized sentiment label
func (s Sentiment) Label() SentimentLabel {
	return ParseSentimentLabel(s.OverallSentiment)
}

// Intent is the result of an intent request
type Intent struct {
	PrimaryIntent    string   `json:"primaryIntent"`
	IntentCategory   string   `json:"intentCategory"`
	SecondaryIntents []string `json:"secondaryIntents"`
	Confidence       float64  `json:"confidence"`
}

// NewIntent creates an intent result
func NewIntent(primary, category string, secondary []string, confidence float64) Intent {
	return Intent{
		PrimaryIntent:    primary,
		IntentCategory:   category,
		SecondaryIntents: cloneStrings(secondary),
		Confidence:       confidence,
	}
}

func (Intent) Kind() Kind { return KindIntent }
func (Intent) isResult()  {}

// Classification is the result of a classify request
type Classification struct {
	PrimaryCategory string   `json:"primaryCategory"`
	Labels          []string `json:"labels"`
	Confidence      float64  `json:"confidence"`
}

// NewClassification creates a classification result
func NewClassification(primary string, labels []string, confidence float64) Classification {
	return Classification{
		PrimaryCategory: primary,
		Labels:          cloneStrings(labels),
		Confidence:      confidence,
	}
}

func (Classification) Kind() Kind { return KindClassify }
func (Classification) isResult()  {}

// Wire shapes. Discriminators are pointers so absence can be told apart from "".

type summaryWire struct {
	Summary   *string  `json:"summary"`
	KeyPoints []string `json:"keyPoints"`
	WordCount float64  `json:"wordCount"`
}

type sentimentWire struct {
	OverallSentiment *string  `json:"overallSentiment"`
	SentimentScore   float64  `json:"sentimentScore"`
	Emotions         []string `json:"emotions"`
	Confidence       float64  `json:"confidence"`
}

type intentWire struct {
	PrimaryIntent    *string  `json:"primaryIntent"`
	IntentCategory   string   `json:"intentCategory"`
	SecondaryIntents []string `json:"secondaryIntents"`
	Confidence       float64  `json:"confidence"`
}

type classificationWire struct {
	PrimaryCategory *string  `json:"primaryCategory"`
	Labels          []string `json:"labels"`
	Confidence      float64  `json:"confidence"`
}

// Decode parses a raw service payload for kind. It returns ErrMissingDiscriminator
// when the kind's required field is absent.
func Decode(kind Kind, data []byte) (Result, error) {
	switch kind {
	case KindSummarize:
		var w summaryWire
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("failed to decode %s payload: %w", kind, err)
		}
		if w.Summary == nil {
			return nil, ErrMissingDiscriminator
		}
		return NewSummary(*w.Summary, w.KeyPoints, int(math.Round(w.WordCount))), nil
	case KindSentiment:
		var w sentimentWire
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("failed to decode %s payload: %w", kind, err)
		}
		if w.OverallSentiment == nil {
			return nil, ErrMissingDiscriminator
		}
		return NewSentiment(*w.OverallSentiment, w.SentimentScore, w.Emotions, w.Confidence), nil
	case KindIntent:
		var w intentWire
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("failed to decode %s payload: %w", kind, err)
		}
		if w.PrimaryIntent == nil {
			return nil, ErrMissingDiscriminator
		}
		return NewIntent(*w.PrimaryIntent, w.IntentCategory, w.SecondaryIntents, w.Confidence), nil
	case KindClassify:
		var w classificationWire
		if err := json.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("failed to decode %s payload: %w", kind, err)
		}
		if w.PrimaryCategory == nil {
			return nil, ErrMissingDiscriminator
		}
		return NewClassification(*w.PrimaryCategory, w.Labels, w.Confidence), nil
	default:
		return nil, NewValidationError("kind", string(kind), "unknown analysis kind")
	}
}

// cloneStrings copies s, turning nil into an empty slice
func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
