package results

import (
	"encoding/json"
	"html/template"
	"time"

	"github.com/google/uuid"
	"github.com/yildizm/TextLens/internal/analysis"
)

// Entry is one rendered analysis result. It is immutable once created.
type Entry struct {
	id               string
	kind             analysis.Kind
	result           analysis.Result
	body             template.HTML
	timestamp        time.Time
	timestampDisplay string
}

// NewEntry creates an entry for result rendered as body at the given time.
// layout is a Go time layout used for the display timestamp.
func NewEntry(result analysis.Result, body template.HTML, at time.Time, layout string) Entry {
	return Entry{
		id:               uuid.NewString(),
		kind:             result.Kind(),
		result:           result,
		body:             body,
		timestamp:        at,
		timestampDisplay: at.Format(layout),
	}
}

func (e Entry) ID() string               { return e.id }
func (e Entry) Kind() analysis.Kind      { return e.kind }
func (e Entry) Result() analysis.Result  { return e.result }
func (e Entry) Body() template.HTML      { return e.body }
func (e Entry) Timestamp() time.Time     { return e.timestamp }
func (e Entry) TimestampDisplay() string { return e.timestampDisplay }

type entryJSON struct {
	ID               string          `json:"id"`
	Kind             analysis.Kind   `json:"kind"`
	Timestamp        time.Time       `json:"timestamp"`
	TimestampDisplay string          `json:"timestampDisplay"`
	Result           analysis.Result `json:"result"`
}

// MarshalJSON exposes the entry without its rendered markup
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		ID:               e.id,
		Kind:             e.kind,
		Timestamp:        e.timestamp,
		TimestampDisplay: e.timestampDisplay,
		Result:           e.result,
	})
}
