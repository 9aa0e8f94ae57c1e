package backend

import (
	"github.com/yildizm/TextLens/internal/analysis"
	"github.com/yildizm/go-promptfmt"
)

const systemPrompt = "You are a text analysis assistant. You answer with a single JSON object and nothing else."

const jsonOnly = "Respond with ONLY valid JSON, no additional text or explanation."

// promptTemplate is the per-kind instruction, reply shape and example reply
type promptTemplate struct {
	instruction string
	schema      any
	example     string
}

var promptTemplates = map[analysis.Kind]promptTemplate{
	analysis.KindSummarize: {
		instruction: "Summarize the following text concisely.",
		schema:      &analysis.Summary{},
		example:     `{"summary": "your summary here", "keyPoints": ["point1", "point2", "point3"], "wordCount": 25}`,
	},
	analysis.KindSentiment: {
		instruction: "Analyze the sentiment of the following text.",
		schema:      &analysis.Sentiment{},
		example:     `{"overallSentiment": "positive", "sentimentScore": 0.8, "emotions": ["joy", "excitement"], "confidence": 0.9}`,
	},
	analysis.KindIntent: {
		instruction: "Detect the intent behind the following text.",
		schema:      &analysis.Intent{},
		example:     `{"primaryIntent": "main_intent", "secondaryIntents": ["intent1", "intent2"], "intentCategory": "question", "confidence": 0.9}`,
	},
	analysis.KindClassify: {
		instruction: "Analyze the following text and classify it with appropriate labels and tags.",
		schema:      &analysis.Classification{},
		example:     `{"labels": ["label1", "label2"], "primaryCategory": "category", "confidence": 0.9}`,
	},
}

// buildPrompt returns the prompt for kind. ok is false for an unknown kind.
func buildPrompt(kind analysis.Kind, text string) (*promptfmt.Prompt, bool) {
	tmpl, ok := promptTemplates[kind]
	if !ok {
		return nil, false
	}

	return promptfmt.New().
		System(systemPrompt).
		User("%s %s\n\nText: %s\n\nReturn JSON in this exact format:\n%s", tmpl.instruction, jsonOnly, text, tmpl.example).
		ExpectJSON(tmpl.schema).
		Build(), true
}
