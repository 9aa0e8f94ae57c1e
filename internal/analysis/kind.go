package analysis

import (
	"fmt"
	"strings"

	"github.com/yildizm/TextLens/internal/emoji"
)

// Kind identifies one of the remote analysis operations
type Kind string

const (
	KindSummarize Kind = "summarize"
	KindSentiment Kind = "sentiment"
	KindIntent    Kind = "intent"
	KindClassify  Kind = "classify"
)

// kinds is the fixed fan-out order
var kinds = [...]Kind{KindSummarize, KindSentiment, KindIntent, KindClassify}

var kindLabels = map[Kind]string{
	KindSummarize: "Summarize",
	KindSentiment: "Sentiment",
	KindIntent:    "Intent",
	KindClassify:  "Classify",
}

// Kinds returns every kind in fan-out order: summarize, sentiment, intent, classify.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds[:])
	return out
}

// ParseKind converts user or URL input into a Kind
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", NewValidationError("kind", s, fmt.Sprintf("invalid analysis type: %s", s))
	}
	return k, nil
}

// Valid reports whether k belongs to the closed set of kinds
func (k Kind) Valid() bool {
	_, ok := kindLabels[k]
	return ok
}

// Label returns the display label, e.g. "Summarize"
func (k Kind) Label() string {
	if label, ok := kindLabels[k]; ok {
		return label
	}
	return string(k)
}

// Icon returns the kind's glyph, honoring the global no-emoji switch
func (k Kind) Icon() string {
	return emoji.GetEmoji(string(k))
}

func (k Kind) String() string {
	return string(k)
}

// Index returns the kind's position in fan-out order, or -1
func (k Kind) Index() int {
	for i, candidate := range kinds {
		if candidate == k {
			return i
		}
	}
	return -1
}
