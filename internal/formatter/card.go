package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"github.com/yildizm/TextLens/internal/analysis"
)

// Card is a decoded result together with its rendered body markup
type Card struct {
	Result analysis.Result
	Body   template.HTML
}

var funcs = template.FuncMap{
	"confidence":     FormatConfidence,
	"score":          FormatScore,
	"sentimentClass": SentimentClass,
}

// html/template escapes every interpolated string, so analysis text can
// never become markup.
var bodyTemplates = template.Must(template.New("bodies").Funcs(funcs).Parse(`
{{- define "summarize" -}}
<div class="summary-result">
  <div class="result-field">
    <label>Summary</label>
    <p>{{.Summary}}</p>
  </div>
  <div class="result-field">
    <label>Key Points</label>
    <ul class="key-points">{{range .KeyPoints}}<li>{{.}}</li>{{end}}</ul>
  </div>
  <div class="result-meta">
    <span class="meta-item">Word Count: {{.WordCount}}</span>
  </div>
</div>
{{- end -}}

{{- define "sentiment" -}}
<div class="sentiment-result">
  <div class="sentiment-main {{sentimentClass .OverallSentiment}}">
    <span class="sentiment-label">{{.OverallSentiment}}</span>
    <span class="sentiment-score">Score: {{score .SentimentScore}}</span>
  </div>
  <div class="result-field">
    <label>Emotions Detected</label>
    <div class="tags">{{range .Emotions}}<span class="tag emotion-tag">{{.}}</span>{{end}}</div>
  </div>
  <div class="result-meta">
    <span class="meta-item">Confidence: {{confidence .Confidence}}</span>
  </div>
</div>
{{- end -}}

{{- define "intent" -}}
<div class="intent-result">
  <div class="result-field">
    <label>Primary Intent</label>
    <p class="primary-value">{{.PrimaryIntent}}</p>
  </div>
  <div class="result-field">
    <label>Intent Category</label>
    <span class="tag category-tag">{{.IntentCategory}}</span>
  </div>
  <div class="result-field">
    <label>Secondary Intents</label>
    <div class="tags">{{range .SecondaryIntents}}<span class="tag">{{.}}</span>{{end}}</div>
  </div>
  <div class="result-meta">
    <span class="meta-item">Confidence: {{confidence .Confidence}}</span>
  </div>
</div>
{{- end -}}

{{- define "classify" -}}
<div class="classification-result">
  <div class="result-field">
    <label>Primary Category</label>
    <p class="primary-value">{{.PrimaryCategory}}</p>
  </div>
  <div class="result-field">
    <label>Labels</label>
    <div class="tags">{{range .Labels}}<span class="tag label-tag">{{.}}</span>{{end}}</div>
  </div>
  <div class="result-meta">
    <span class="meta-item">Confidence: {{confidence .Confidence}}</span>
  </div>
</div>
{{- end -}}
`))

// Format decodes payload as kind and renders its body. A payload without the
// kind's discriminator fails with analysis.ErrMissingDiscriminator.
func Format(kind analysis.Kind, payload json.RawMessage) (Card, error) {
	result, err := analysis.Decode(kind, payload)
	if err != nil {
		return Card{}, err
	}
	body, err := RenderBody(result)
	if err != nil {
		return Card{}, err
	}
	return Card{Result: result, Body: body}, nil
}

// RenderBody renders the markup for an already decoded result
func RenderBody(result analysis.Result) (template.HTML, error) {
	if result == nil {
		return "", fmt.Errorf("nil result")
	}
	var buf bytes.Buffer
	if err := bodyTemplates.ExecuteTemplate(&buf, string(result.Kind()), result); err != nil {
		return "", fmt.Errorf("failed to render %s body: %w", result.Kind(), err)
	}
	// #nosec G203 - produced by html/template with contextual escaping
	return template.HTML(buf.String()), nil
}
