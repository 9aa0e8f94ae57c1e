package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/TextLens/internal/analysis"
	"github.com/yildizm/TextLens/internal/results"
)

// csvFormatter formats one row per entry
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(entries []results.Entry) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{
		"ID",
		"Kind",
		"Timestamp",
		"Primary",
		"Details",
		"Confidence",
	}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, entry := range entries {
		primary, details, confidence := csvColumns(entry.Result())
		record := []string{
			entry.ID(),
			string(entry.Kind()),
			entry.Timestamp().Format(time.RFC3339),
			escapeCSVString(primary),
			escapeCSVString(details),
			confidence,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}

func csvColumns(result analysis.Result) (primary, details, confidence string) {
	switch r := result.(type) {
	case analysis.Summary:
		return r.Summary, strings.Join(r.KeyPoints, "; "), ""
	case analysis.Sentiment:
		return r.OverallSentiment, "score=" + FormatScore(r.SentimentScore) + "; emotions=" + strings.Join(r.Emotions, "|"), FormatConfidence(r.Confidence)
	case analysis.Intent:
		return r.PrimaryIntent, "category=" + r.IntentCategory + "; secondary=" + strings.Join(r.SecondaryIntents, "|"), FormatConfidence(r.Confidence)
	case analysis.Classification:
		return r.PrimaryCategory, strings.Join(r.Labels, "; "), FormatConfidence(r.Confidence)
	default:
		return "", "", ""
	}
}

// escapeCSVString flattens newlines so each entry stays on one line
func escapeCSVString(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}
