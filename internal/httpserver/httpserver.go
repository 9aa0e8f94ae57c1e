// Package httpserver holds the gin setup shared by the proxy and the
// analysis backend.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yildizm/TextLens/internal/analysis"
	"github.com/yildizm/TextLens/internal/logger"
)

// ShutdownTimeout bounds graceful shutdown in Run
const ShutdownTimeout = 10 * time.Second

// NewRouter returns a gin engine with recovery, request logging, CORS for
// origins and a /health route. An empty origins list disables CORS.
func NewRouter(log *logger.Logger, origins []string) *gin.Engine {
	if gin.Mode() == gin.DebugMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))

	if len(origins) > 0 {
		corsConfig := cors.Config{
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}
		if slices.Contains(origins, "*") {
			corsConfig.AllowAllOrigins = true
		} else {
			corsConfig.AllowOrigins = origins
		}
		router.Use(cors.New(corsConfig))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})

	return router
}

// Abort writes the {"error": message} body used by every endpoint
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, analysis.ErrorResponse{Error: message})
}

// Run serves handler on addr until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, addr string, handler http.Handler, log *logger.Logger) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server on %s failed: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down %s", addr)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []logger.Field{
			logger.F("method", c.Request.Method),
			logger.F("path", c.Request.URL.Path),
			logger.F("status", c.Writer.Status()),
			logger.Duration(time.Since(start)),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.WarnWithFields("request failed", fields)
			return
		}
		log.InfoWithFields("request", fields)
	}
}
