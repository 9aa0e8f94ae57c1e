package formatter

import (
	"encoding/json"
	"time"

	"github.com/yildizm/TextLens/internal/results"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// JSONOutput is the document written by the JSON formatter
type JSONOutput struct {
	GeneratedAt time.Time       `json:"generatedAt"`
	Count       int             `json:"count"`
	Results     []results.Entry `json:"results"`
}

func (f *jsonFormatter) Format(entries []results.Entry) ([]byte, error) {
	if entries == nil {
		entries = []results.Entry{}
	}
	output := &JSONOutput{
		GeneratedAt: time.Now().UTC(),
		Count:       len(entries),
		Results:     entries,
	}
	return json.MarshalIndent(output, "", "  ")
}
