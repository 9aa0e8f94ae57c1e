package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yildizm/TextLens/internal/analysis"
)

var payloads = map[string]string{
	"summarize": `{"summary":"A short summary.","keyPoints":["one"],"wordCount":3}`,
	"sentiment": `{"overallSentiment":"positive","sentimentScore":0.8,"emotions":["joy"],"confidence":0.9}`,
	"intent":    `{"primaryIntent":"ask","intentCategory":"question","confidence":0.7}`,
	"classify":  `{"primaryCategory":"technology","labels":["technology"],"confidence":0.95}`,
}

func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand("1.2.3", "abc123", "2025-01-01")
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeConfig writes a config pointing the client at endpoint
func writeConfig(t *testing.T, endpoint string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "textlens.yaml")
	content := fmt.Sprintf("service:\n  endpoint: %q\n  timeout: 5s\n", endpoint)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newAnalysisServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		kind := strings.TrimPrefix(r.URL.Path, "/api/ai/")
		var req analysis.TextRequest
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &req); err != nil || req.Text == "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Text must not be empty"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payloads[kind]))
	}))
	t.Cleanup(server.Close)
	return server
}

type jsonReport struct {
	Count   int `json:"count"`
	Results []struct {
		Kind string `json:"kind"`
	} `json:"results"`
}

func TestVersionCommand(t *testing.T) {
	out, _, err := executeCommand(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "TextLens 1.2.3 (abc123) built on 2025-01-01")
	assert.Contains(t, out, "Go version:")
}

func TestAnalyzeSingleKind(t *testing.T) {
	server := newAnalysisServer(t)
	cfg := writeConfig(t, server.URL)

	out, _, err := executeCommand(t, "", "--config", cfg, "--no-emoji", "--output", "json",
		"analyze", "--kind", "sentiment", "What", "a", "great", "day")
	require.NoError(t, err)

	var report jsonReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report.Count)
	assert.Equal(t, "sentiment", report.Results[0].Kind)
}

func TestAnalyzeAllFromStdin(t *testing.T) {
	server := newAnalysisServer(t)
	cfg := writeConfig(t, server.URL)

	out, _, err := executeCommand(t, "text from a pipe\n", "--config", cfg, "-o", "json", "analyze", "--all")
	require.NoError(t, err)

	var report jsonReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 4, report.Count)
}

func TestAnalyzeTextOutput(t *testing.T) {
	server := newAnalysisServer(t)
	cfg := writeConfig(t, server.URL)

	out, _, err := executeCommand(t, "", "--config", cfg, "--no-color", "--no-emoji", "analyze", "hello")
	require.NoError(t, err)
	assert.Contains(t, out, "A short summary.")
}

func TestAnalyzeWritesOutputFile(t *testing.T) {
	server := newAnalysisServer(t)
	cfg := writeConfig(t, server.URL)
	target := filepath.Join(t.TempDir(), "report.md")

	out, _, err := executeCommand(t, "", "--config", cfg, "-o", "markdown",
		"analyze", "--kind", "classify", "--output-file", target, "new GPU benchmarks")
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "technology")
}

func TestAnalyzeEmptyInput(t *testing.T) {
	server := newAnalysisServer(t)
	cfg := writeConfig(t, server.URL)

	_, stderr, err := executeCommand(t, "   \n", "--config", cfg, "analyze")
	require.Error(t, err)

	var emptyErr *analysis.EmptyInputError
	assert.True(t, errors.As(err, &emptyErr))
	assert.Contains(t, stderr, analysis.EmptyInputMessage)
}

func TestAnalyzeServiceFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Model unavailable"}`))
	}))
	t.Cleanup(server.Close)
	cfg := writeConfig(t, server.URL)

	_, stderr, err := executeCommand(t, "", "--config", cfg, "analyze", "--kind", "intent", "hello")
	require.Error(t, err)
	assert.NotEmpty(t, stderr)
}

func TestAnalyzeAllFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)
	cfg := writeConfig(t, server.URL)

	_, stderr, err := executeCommand(t, "", "--config", cfg, "analyze", "--all", "hello")
	require.Error(t, err)
	assert.Contains(t, stderr, "All analyses failed")
}

func TestReadInputLimit(t *testing.T) {
	text, err := readInput(strings.NewReader(strings.Repeat("a", maxInputBytes)), nil)
	require.NoError(t, err)
	assert.Len(t, text, maxInputBytes)

	_, err = readInput(strings.NewReader(strings.Repeat("a", maxInputBytes+1)), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input exceeds")

	text, err = readInput(strings.NewReader("ignored"), []string{"from", "args"})
	require.NoError(t, err)
	assert.Equal(t, "from args", text)
}

func TestAnalyzeRejectsOversizedStdin(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	cfg := writeConfig(t, server.URL)

	_, _, err := executeCommand(t, strings.Repeat("x", maxInputBytes+10), "--config", cfg, "analyze", "--kind", "summarize")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input exceeds")
	assert.Zero(t, requests.Load(), "oversized input is never sent")
}

func TestAnalyzeRejectsBadFlags(t *testing.T) {
	_, _, err := executeCommand(t, "", "analyze", "--kind", "translate", "hello")
	assert.Error(t, err)

	_, _, err = executeCommand(t, "", "--output", "pdf", "analyze", "hello")
	assert.Error(t, err)
}

func TestInteractiveRejectsUnknownTheme(t *testing.T) {
	_, _, err := executeCommand(t, "", "interactive", "--theme", "neon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown theme")
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, _, err := executeCommand(t, "", "--no-emoji", "config", "init", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, _, err = executeCommand(t, "", "config", "init", "--path", path)
	assert.Error(t, err, "existing file requires --force")

	_, _, err = executeCommand(t, "", "config", "init", "--path", path, "--force")
	assert.NoError(t, err)

	out, _, err = executeCommand(t, "", "config", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "ollama")
}

func TestConfigValidateReportsErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend:\n  provider: anthropic\n"), 0o600))

	out, _, err := executeCommand(t, "", "config", "validate", path)
	require.Error(t, err)
	assert.Contains(t, out, "Configuration validation failed")
}

func TestConfigShow(t *testing.T) {
	cfg := writeConfig(t, "http://analysis.internal:9000")

	out, _, err := executeCommand(t, "", "--config", cfg, "config", "show", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "http://analysis.internal:9000")

	out, _, err = executeCommand(t, "", "--config", cfg, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "endpoint:")
	assert.Contains(t, out, "analysis.internal:9000")

	_, _, err = executeCommand(t, "", "config", "show", "--format", "toml")
	assert.Error(t, err)
}

func TestConfigPath(t *testing.T) {
	out, _, err := executeCommand(t, "", "config", "path")
	require.NoError(t, err)
	assert.Contains(t, out, ".textlens.yaml")
	assert.Contains(t, out, "TEXTLENS_")
}
