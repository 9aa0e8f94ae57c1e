package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/yildizm/TextLens/internal/analysis"
	"github.com/yildizm/go-termfmt"
)

// FormatConfidence renders a [0,1] confidence as a percentage, e.g. "87.3%"
func FormatConfidence(confidence float64) string {
	return fmt.Sprintf("%.1f%%", roundTo(confidence*100, 1))
}

// FormatScore renders a sentiment score with two decimals, e.g. "0.46"
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f", roundTo(score, 2))
}

// SentimentClass maps an overall sentiment onto its display class
func SentimentClass(overall string) string {
	switch analysis.ParseSentimentLabel(overall) {
	case analysis.SentimentPositive:
		return "sentiment-positive"
	case analysis.SentimentNegative:
		return "sentiment-negative"
	default:
		return "sentiment-neutral"
	}
}

// roundTo rounds half away from zero so 0.455 becomes 0.46
func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p+math.Copysign(1e-9, v)) / p
}

// joinOrNone joins items for single-line output
func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

// createConfidenceBar creates ASCII confidence bar using go-termfmt
func createConfidenceBar(confidence float64, opts *termfmt.TerminalOptions) string {
	return termfmt.CreateConfidenceBar(confidence, opts)
}
