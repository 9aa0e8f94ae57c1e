package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/TextLens/internal/results"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(entries []results.Entry) ([]byte, error)
}

// Formats lists the accepted output format names
var Formats = []string{"text", "json", "markdown", "html", "csv"}

// New returns the formatter for format. color only affects "text".
func New(format string, color bool) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", "text", "terminal":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "html":
		return NewHTML(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
}
