package formatter

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yildizm/TextLens/internal/results"
)

var cardTemplate = template.Must(template.New("card").Parse(`
{{- define "card" -}}
<div class="result-card" data-type="{{.Kind}}">
  <div class="result-header">
    <span class="result-type">
      <span class="type-icon">{{.Kind.Icon}}</span>
      {{.Kind.Label}}
    </span>
    <span class="result-time">{{.TimestampDisplay}}</span>
  </div>
  <div class="result-content">
    {{.Body}}
  </div>
</div>
{{- end -}}

{{- define "page" -}}
<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Text Analysis Results</title>
</head>
<body>
<div id="results-list">
{{- range .}}
{{template "card" .}}
{{- else}}
<div class="empty-state">No results yet</div>
{{- end}}
</div>
</body>
</html>
{{end -}}
`))

// RenderCard renders the full card markup for an entry, header included
func RenderCard(entry results.Entry) (template.HTML, error) {
	var buf bytes.Buffer
	if err := cardTemplate.ExecuteTemplate(&buf, "card", entry); err != nil {
		return "", fmt.Errorf("failed to render card: %w", err)
	}
	// #nosec G203 - produced by html/template with contextual escaping
	return template.HTML(buf.String()), nil
}

// htmlFormatter writes a standalone page with one card per entry
type htmlFormatter struct{}

// NewHTML creates a new HTML formatter
func NewHTML() Formatter {
	return &htmlFormatter{}
}

func (f *htmlFormatter) Format(entries []results.Entry) ([]byte, error) {
	var buf bytes.Buffer
	if err := cardTemplate.ExecuteTemplate(&buf, "page", entries); err != nil {
		return nil, fmt.Errorf("failed to render page: %w", err)
	}
	return buf.Bytes(), nil
}
