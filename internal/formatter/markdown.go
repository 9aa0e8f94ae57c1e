package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/TextLens/internal/analysis"
	"github.com/yildizm/TextLens/internal/results"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(entries []results.Entry) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Text Analysis Report\n\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	if len(entries) == 0 {
		b.WriteString("_No results._\n")
		return []byte(b.String()), nil
	}

	for _, entry := range entries {
		f.writeEntry(&b, entry)
	}
	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeEntry(b *strings.Builder, entry results.Entry) {
	kind := entry.Kind()
	fmt.Fprintf(b, "## %s %s\n\n", kind.Icon(), kind.Label())
	fmt.Fprintf(b, "_%s_\n\n", entry.TimestampDisplay())

	switch r := entry.Result().(type) {
	case analysis.Summary:
		fmt.Fprintf(b, "**Summary:** %s\n\n", escapeMarkdown(r.Summary))
		if len(r.KeyPoints) > 0 {
			b.WriteString("**Key Points:**\n\n")
			for _, p := range r.KeyPoints {
				fmt.Fprintf(b, "- %s\n", escapeMarkdown(p))
			}
			b.WriteString("\n")
		}
		fmt.Fprintf(b, "Word Count: %d\n\n", r.WordCount)
	case analysis.Sentiment:
		b.WriteString("| Field | Value |\n|-------|-------|\n")
		fmt.Fprintf(b, "| Sentiment | %s |\n", escapeTableCell(r.OverallSentiment))
		fmt.Fprintf(b, "| Score | %s |\n", FormatScore(r.SentimentScore))
		fmt.Fprintf(b, "| Emotions | %s |\n", escapeTableCell(joinOrNone(r.Emotions)))
		fmt.Fprintf(b, "| Confidence | %s |\n\n", FormatConfidence(r.Confidence))
	case analysis.Intent:
		b.WriteString("| Field | Value |\n|-------|-------|\n")
		fmt.Fprintf(b, "| Primary Intent | %s |\n", escapeTableCell(r.PrimaryIntent))
		fmt.Fprintf(b, "| Intent Category | %s |\n", escapeTableCell(r.IntentCategory))
		fmt.Fprintf(b, "| Secondary Intents | %s |\n", escapeTableCell(joinOrNone(r.SecondaryIntents)))
		fmt.Fprintf(b, "| Confidence | %s |\n\n", FormatConfidence(r.Confidence))
	case analysis.Classification:
		b.WriteString("| Field | Value |\n|-------|-------|\n")
		fmt.Fprintf(b, "| Primary Category | %s |\n", escapeTableCell(r.PrimaryCategory))
		fmt.Fprintf(b, "| Labels | %s |\n", escapeTableCell(joinOrNone(r.Labels)))
		fmt.Fprintf(b, "| Confidence | %s |\n\n", FormatConfidence(r.Confidence))
	}
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`, "<", "&lt;", ">", "&gt;",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(strings.ReplaceAll(s, "\n", " "))
}

func escapeTableCell(s string) string {
	return strings.ReplaceAll(escapeMarkdown(s), "|", `\|`)
}
