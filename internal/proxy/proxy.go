// Package proxy forwards analysis requests from the browser or CLI to the
// analysis backend.
package proxy

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yildizm/TextLens/internal/analysis"
	"github.com/yildizm/TextLens/internal/config"
	"github.com/yildizm/TextLens/internal/httpserver"
	"github.com/yildizm/TextLens/internal/logger"
	"github.com/yildizm/TextLens/internal/monitor"
)

const maxBodyBytes = 1 << 20

const (
	msgCannotConnect = "Cannot connect to backend service"
	msgTimedOut      = "Backend service timed out"
)

// Proxy relays POST /api/ai/{kind} to the backend. The backend URL and
// timeout can be swapped while serving.
type Proxy struct {
	mu         sync.RWMutex
	backendURL *url.URL
	timeout    time.Duration

	client  *http.Client
	logger  *logger.Logger
	metrics *monitor.Collector
	router  *gin.Engine
}

// Option configures a Proxy
type Option func(*Proxy)

// WithHTTPClient sets the client used to reach the backend
func WithHTTPClient(c *http.Client) Option {
	return func(p *Proxy) { p.client = c }
}

// WithLogger sets the proxy logger
func WithLogger(l *logger.Logger) Option {
	return func(p *Proxy) { p.logger = l }
}

// WithCollector records request metrics into c
func WithCollector(c *monitor.Collector) Option {
	return func(p *Proxy) { p.metrics = c }
}

// New creates a proxy for cfg
func New(cfg config.ProxyConfig, opts ...Option) (*Proxy, error) {
	p := &Proxy{
		client:  &http.Client{},
		logger:  logger.Discard(),
		metrics: monitor.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if err := p.Update(cfg); err != nil {
		return nil, err
	}

	p.router = httpserver.NewRouter(p.logger.WithComponent("proxy-http"), cfg.CORSOrigins)
	p.router.GET("/metrics", p.metrics.Handler())
	api := p.router.Group("/api/ai")
	{
		api.POST("/:kind", p.metrics.Middleware(), p.forward)
	}
	return p, nil
}

// Metrics returns the request metrics collector
func (p *Proxy) Metrics() *monitor.Collector {
	return p.metrics
}

// Update replaces the backend URL and timeout. CORS origins and the listen
// address only take effect on restart.
func (p *Proxy) Update(cfg config.ProxyConfig) error {
	u, err := url.Parse(cfg.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid backend URL %q", cfg.BackendURL)
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("proxy timeout must be positive")
	}

	p.mu.Lock()
	p.backendURL = u
	p.timeout = cfg.Timeout
	p.mu.Unlock()
	return nil
}

// Backend returns the current backend URL and timeout
func (p *Proxy) Backend() (string, time.Duration) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.backendURL.String(), p.timeout
}

// Handler returns the HTTP handler
func (p *Proxy) Handler() http.Handler {
	return p.router
}

// Run serves on addr until ctx is cancelled
func (p *Proxy) Run(ctx context.Context, addr string) error {
	return httpserver.Run(ctx, addr, p.router, p.logger.WithComponent("proxy"))
}

// WatchConfig applies backend changes from the config file at path until
// ctx is cancelled.
func (p *Proxy) WatchConfig(ctx context.Context, path string) error {
	log := p.logger.WithComponent("proxy")
	return config.Watch(ctx, path,
		func(cfg *config.Config) {
			if err := p.Update(cfg.Proxy); err != nil {
				log.Warn("ignoring config change: %v", err)
				return
			}
			backendURL, timeout := p.Backend()
			log.InfoWithFields("backend settings reloaded", []logger.Field{
				logger.F("backend_url", backendURL),
				logger.F("timeout", timeout.String()),
			})
		},
		func(err error) {
			log.Warn("config reload failed: %v", err)
		},
	)
}

func (p *Proxy) forward(c *gin.Context) {
	name := c.Param("kind")
	kind, err := analysis.ParseKind(name)
	if err != nil || string(kind) != name {
		httpserver.Abort(c, http.StatusBadRequest, "Invalid analysis type: "+name)
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		httpserver.Abort(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	p.mu.RLock()
	target := p.backendURL.JoinPath(analysis.EndpointPath(kind))
	timeout := p.timeout
	p.mu.RUnlock()

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(body))
	if err != nil {
		httpserver.Abort(c, http.StatusInternalServerError, err.Error())
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log := p.logger.WithComponent("proxy")
	resp, err := p.client.Do(req)
	if err != nil {
		status, message := classify(err)
		log.WarnWithFields("backend request failed", []logger.Field{
			logger.F("kind", string(kind)),
			logger.F("status", status),
			logger.Error(err),
		})
		httpserver.Abort(c, status, message)
		return
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4*maxBodyBytes))
	if err != nil {
		status, message := classify(err)
		httpserver.Abort(c, status, message)
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(resp.StatusCode, contentType, data)
}

// classify maps a backend call failure onto the proxy's status and message
func classify(err error) (int, string) {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, msgTimedOut
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return http.StatusGatewayTimeout, msgTimedOut
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return http.StatusBadGateway, msgCannotConnect
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return http.StatusBadGateway, msgCannotConnect
	}
	return http.StatusInternalServerError, err.Error()
}
