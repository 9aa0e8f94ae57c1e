package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yildizm/TextLens/internal/analysis"
	"github.com/yildizm/TextLens/internal/logger"
)

// maxResponseBytes caps how much of a response body is read
const maxResponseBytes = 4 << 20

// Service is the remote analysis operation: POST kind, text -> payload | error
type Service interface {
	Analyze(ctx context.Context, kind analysis.Kind, text string) (json.RawMessage, error)
}

// Config holds the client settings
type Config struct {
	Endpoint string        // base URL, e.g. http://localhost:5000
	Timeout  time.Duration // 0 means no client-side timeout
}

// Client calls an analysis service over HTTP
type Client struct {
	client  *http.Client
	baseURL *url.URL
	logger  *logger.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithLogger sets the client logger
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the service at cfg.Endpoint
func New(cfg Config, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, analysis.NewValidationError("endpoint", cfg.Endpoint, "endpoint is required")
	}
	baseURL, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, analysis.NewValidationError("endpoint", cfg.Endpoint, fmt.Sprintf("invalid endpoint: %v", err))
	}
	if baseURL.Scheme != "http" && baseURL.Scheme != "https" {
		return nil, analysis.NewValidationError("endpoint", cfg.Endpoint, "endpoint scheme must be http or https")
	}

	c := &Client{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: baseURL,
		logger:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Analyze sends text to the kind's endpoint and returns the raw success body.
// Non-200 responses become *analysis.ServiceError; failures to reach the
// service or read a JSON body become *analysis.TransportError.
func (c *Client) Analyze(ctx context.Context, kind analysis.Kind, text string) (json.RawMessage, error) {
	if !kind.Valid() {
		return nil, analysis.NewValidationError("kind", string(kind), "unsupported analysis type")
	}

	body, err := json.Marshal(analysis.TextRequest{Text: text})
	if err != nil {
		return nil, analysis.NewTransportError(kind, "failed to marshal request", err)
	}

	endpoint := c.baseURL.JoinPath(analysis.EndpointPath(kind))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, analysis.NewTransportError(kind, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, analysis.NewTransportError(kind, "cannot reach analysis service", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, analysis.NewTransportError(kind, "failed to read response", err)
	}

	c.logger.DebugWithFields("analysis response", []logger.Field{
		logger.F("kind", string(kind)),
		logger.F("status", resp.StatusCode),
		logger.Duration(time.Since(start)),
	})

	if resp.StatusCode != http.StatusOK {
		return nil, analysis.NewServiceError(kind, resp.StatusCode, errorMessage(data))
	}

	if !json.Valid(data) {
		return nil, analysis.NewTransportError(kind, "malformed response", nil)
	}
	return json.RawMessage(data), nil
}

// errorMessage extracts {"error": "..."} from a failure body, or "" when absent
func errorMessage(data []byte) string {
	var errResp analysis.ErrorResponse
	if err := json.Unmarshal(data, &errResp); err != nil {
		return ""
	}
	return strings.TrimSpace(errResp.Error)
}
