package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yildizm/TextLens/internal/backend"
	"github.com/yildizm/TextLens/internal/config"
	"github.com/yildizm/TextLens/internal/logger"
	"github.com/yildizm/TextLens/internal/proxy"
)

var (
	serveAddr       string
	serveBackendURL string
	serveNoWatch    bool

	backendAddr     string
	backendProvider string
	backendModel    string
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis proxy",
		Long: `Run the HTTP proxy that accepts POST /api/ai/{kind} and forwards it to the
analysis backend.

The backend URL and timeout are reloaded when the config file changes.

Examples:
  textlens serve
  textlens serve --addr :5000 --backend-url http://localhost:8080`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&serveBackendURL, "backend-url", "", "analysis backend base URL (default from config)")
	cmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "do not reload the config file on change")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig().Proxy
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if serveBackendURL != "" {
		cfg.BackendURL = serveBackendURL
	}

	log := newLogger("serve")
	p, err := proxy.New(cfg, proxy.WithLogger(log))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if path := configPath(); path != "" && !serveNoWatch && serveBackendURL == "" {
		go func() {
			if err := p.WatchConfig(ctx, path); err != nil && !errors.Is(err, ctx.Err()) {
				log.Warn("config watcher stopped: %v", err)
			}
		}()
	}

	log.InfoWithFields("proxy starting", []logger.Field{
		logger.F("addr", cfg.Addr),
		logger.F("backend", cfg.BackendURL),
	})
	return p.Run(ctx, cfg.Addr)
}

func newBackendCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backend",
		Short: "Run the model-backed analysis service",
		Long: `Run the analysis service behind the proxy. Each POST /api/ai/{kind} is turned
into a prompt for an OpenAI-compatible chat model and answered with the
parsed JSON result.

Examples:
  textlens backend
  textlens backend --provider openai --model gpt-4o-mini
  OPENAI_API_KEY=... textlens backend --provider openai`,
		Args: cobra.NoArgs,
		RunE: runBackend,
	}

	cmd.Flags().StringVar(&backendAddr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&backendProvider, "provider", "", "model provider: openai or ollama (default from config)")
	cmd.Flags().StringVar(&backendModel, "model", "", "model name (default from config)")

	return cmd
}

func runBackend(cmd *cobra.Command, args []string) error {
	global := GetGlobalConfig()
	cfg := global.Backend
	if backendAddr != "" {
		cfg.Addr = backendAddr
	}
	if backendProvider != "" {
		cfg.Provider = backendProvider
	}
	if backendModel != "" {
		cfg.Model = backendModel
	}
	if cfg.APIKey == "" && cfg.Provider == "openai" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	log := newLogger("backend")
	analyzer, err := backend.NewAnalyzerFromConfig(cfg, backend.WithAnalyzerLogger(log))
	if err != nil {
		return err
	}
	defer func() { _ = analyzer.Provider().Close() }()

	server := backend.NewServer(analyzer,
		backend.WithServerLogger(log),
		backend.WithCORSOrigins(global.Proxy.CORSOrigins),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.InfoWithFields("backend starting", []logger.Field{
		logger.F("addr", cfg.Addr),
		logger.F("provider", cfg.Provider),
		logger.F("model", cfg.Model),
	})
	return server.Run(ctx, cfg.Addr)
}

// configPath returns the file the running command loaded, if any
func configPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if path, found := config.FindConfigFile(); found {
		return path
	}
	return ""
}
