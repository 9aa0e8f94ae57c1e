package backend

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yildizm/TextLens/internal/analysis"
	"github.com/yildizm/TextLens/internal/httpserver"
	"github.com/yildizm/TextLens/internal/logger"
	"github.com/yildizm/TextLens/internal/monitor"
)

// TextAnalyzer produces a result for one kind
type TextAnalyzer interface {
	Analyze(ctx context.Context, kind analysis.Kind, text string) (analysis.Result, error)
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Server exposes a TextAnalyzer as POST /api/ai/{kind}
type Server struct {
	analyzer TextAnalyzer
	logger   *logger.Logger
	origins  []string
	metrics  *monitor.Collector
	router   *gin.Engine
}

// ServerOption configures a Server
type ServerOption func(*Server)

// WithServerLogger sets the server logger
func WithServerLogger(l *logger.Logger) ServerOption {
	return func(s *Server) { s.logger = l }
}

// WithCORSOrigins enables CORS for origins
func WithCORSOrigins(origins []string) ServerOption {
	return func(s *Server) { s.origins = origins }
}

// WithCollector records request metrics into c
func WithCollector(c *monitor.Collector) ServerOption {
	return func(s *Server) { s.metrics = c }
}

// NewServer builds the router for analyzer
func NewServer(analyzer TextAnalyzer, opts ...ServerOption) *Server {
	s := &Server{
		analyzer: analyzer,
		logger:   logger.Discard(),
		metrics:  monitor.New(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router = httpserver.NewRouter(s.logger.WithComponent("backend-http"), s.origins)
	if hc, ok := analyzer.(healthChecker); ok {
		s.router.GET("/health/model", func(c *gin.Context) {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
			defer cancel()
			if err := hc.HealthCheck(ctx); err != nil {
				httpserver.Abort(c, http.StatusServiceUnavailable, err.Error())
				return
			}
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
	}

	s.router.GET("/metrics", s.metrics.Handler())

	api := s.router.Group("/api/ai")
	{
		api.POST("/:kind", s.metrics.Middleware(), s.analyze)
	}
	return s
}

// Metrics returns the request metrics collector
func (s *Server) Metrics() *monitor.Collector {
	return s.metrics
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is cancelled
func (s *Server) Run(ctx context.Context, addr string) error {
	return httpserver.Run(ctx, addr, s.router, s.logger.WithComponent("backend"))
}

func (s *Server) analyze(c *gin.Context) {
	kind, err := analysis.ParseKind(c.Param("kind"))
	if err != nil {
		httpserver.Abort(c, http.StatusBadRequest, "Invalid analysis type: "+c.Param("kind"))
		return
	}

	var req analysis.TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpserver.Abort(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		httpserver.Abort(c, http.StatusBadRequest, "Text must not be empty")
		return
	}

	result, err := s.analyzer.Analyze(c.Request.Context(), kind, req.Text)
	if err != nil {
		s.logger.WithComponent("backend").ErrorWithFields("analysis failed", []logger.Field{
			logger.F("kind", string(kind)),
			logger.Error(err),
		})
		status := http.StatusInternalServerError
		if errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusGatewayTimeout
		}
		httpserver.Abort(c, status, err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}
