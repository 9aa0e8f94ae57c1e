package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/TextLens/internal/analysis"
	"github.com/yildizm/TextLens/internal/emoji"
	"github.com/yildizm/TextLens/internal/results"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats entries as trees for terminal display using go-termfmt
type terminalFormatter struct {
	opts   *termfmt.TerminalOptions
	header lipgloss.Style
	muted  lipgloss.Style
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()

	f := &terminalFormatter{opts: opts, header: lipgloss.NewStyle(), muted: lipgloss.NewStyle()}
	if color {
		f.header = f.header.Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#3B82F6"})
		f.muted = f.muted.Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
	}
	return f
}

func (f *terminalFormatter) Format(entries []results.Entry) ([]byte, error) {
	var b strings.Builder

	if len(entries) == 0 {
		b.WriteString(emoji.GetEmoji("empty") + " No results yet\n")
		return []byte(b.String()), nil
	}

	for i, entry := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		f.writeEntry(&b, entry)
	}
	return []byte(b.String()), nil
}

// writeEntry writes one entry header followed by its field tree
func (f *terminalFormatter) writeEntry(b *strings.Builder, entry results.Entry) {
	kind := entry.Kind()
	title := f.header.Render(kind.Icon() + " " + kind.Label())
	fmt.Fprintf(b, "%s  %s\n", title, f.muted.Render(entry.TimestampDisplay()))

	items := f.treeItems(entry.Result())
	if len(items) > 0 {
		items[len(items)-1].Last = true
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
}

func (f *terminalFormatter) treeItems(result analysis.Result) []termfmt.TreeItem {
	switch r := result.(type) {
	case analysis.Summary:
		return []termfmt.TreeItem{
			{Label: "Summary", Value: r.Summary},
			{Label: "Key Points", Value: fmt.Sprintf("%d", len(r.KeyPoints)), Children: listItems(r.KeyPoints)},
			{Label: "Word Count", Value: fmt.Sprintf("%d", r.WordCount)},
		}
	case analysis.Sentiment:
		return []termfmt.TreeItem{
			{Label: "Sentiment", Value: r.OverallSentiment},
			{Label: "Score", Value: FormatScore(r.SentimentScore)},
			{Label: "Emotions", Value: joinOrNone(r.Emotions)},
			{Label: "Confidence", Value: f.confidence(r.Confidence)},
		}
	case analysis.Intent:
		return []termfmt.TreeItem{
			{Label: "Primary Intent", Value: r.PrimaryIntent},
			{Label: "Intent Category", Value: r.IntentCategory},
			{Label: "Secondary Intents", Value: joinOrNone(r.SecondaryIntents)},
			{Label: "Confidence", Value: f.confidence(r.Confidence)},
		}
	case analysis.Classification:
		return []termfmt.TreeItem{
			{Label: "Primary Category", Value: r.PrimaryCategory},
			{Label: "Labels", Value: joinOrNone(r.Labels)},
			{Label: "Confidence", Value: f.confidence(r.Confidence)},
		}
	default:
		return nil
	}
}

func (f *terminalFormatter) confidence(c float64) string {
	return FormatConfidence(c) + " " + createConfidenceBar(c, f.opts)
}

func listItems(values []string) []termfmt.TreeItem {
	items := make([]termfmt.TreeItem, 0, len(values))
	for i, v := range values {
		items = append(items, termfmt.TreeItem{Label: v, Last: i == len(values)-1})
	}
	return items
}
