package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/TextLens/internal/analysis"
	"github.com/yildizm/TextLens/internal/client"
	"github.com/yildizm/TextLens/internal/controller"
	"github.com/yildizm/TextLens/internal/emoji"
	"github.com/yildizm/TextLens/internal/formatter"
	"github.com/yildizm/TextLens/internal/results"
)

const maxInputBytes = 1 << 20

var (
	analyzeKind       string
	analyzeAll        bool
	analyzeEndpoint   string
	analyzeTimeout    time.Duration
	analyzeOutputFile string
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Analyze text from arguments or stdin",
		Long: `Send text to the analysis service and print the result.

If no text is given as arguments, reads it from stdin. Use --kind to pick an
analysis or --all to run every analysis concurrently.

Examples:
  textlens analyze "The new release fixed every crash I reported"
  textlens analyze --kind sentiment < review.txt
  textlens analyze --all --output json < notes.txt
  echo "Where can I get pizza?" | textlens analyze --kind intent`,
		RunE: runAnalyze,
	}

	cmd.Flags().StringVarP(&analyzeKind, "kind", "k", string(analysis.KindSummarize), "analysis kind (summarize, sentiment, intent, classify)")
	cmd.Flags().BoolVarP(&analyzeAll, "all", "a", false, "run every analysis concurrently")
	cmd.Flags().StringVar(&analyzeEndpoint, "endpoint", "", "analysis service base URL (default from config)")
	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "request timeout, 0 waits indefinitely (default from config)")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := newLogger("cli")

	kind, err := analysis.ParseKind(analyzeKind)
	if err != nil {
		return err
	}

	f, err := formatter.New(getOutputFormat(), colorEnabled() && analyzeOutputFile == "")
	if err != nil {
		return err
	}

	text, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	ctrl, err := newController(cmd, nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if analyzeAll {
		err = ctrl.AnalyzeAll(ctx, text)
	} else {
		err = ctrl.AnalyzeOne(ctx, kind, text)
	}
	if err != nil {
		if message, ok := ctrl.Sink().Error(); ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", emoji.GetEmoji("error"), message)
		}
		return err
	}
	log.Debug("analysis finished in %v", time.Since(start))

	output, err := f.Format(ctrl.Sink().Entries())
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}
	if analyzeOutputFile != "" {
		if err := os.WriteFile(analyzeOutputFile, output, 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if isVerbose() {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s Output written to %s\n", emoji.GetEmoji("success"), analyzeOutputFile)
		}
		return nil
	}

	_, err = cmd.OutOrStdout().Write(output)
	return err
}

// newController builds a controller talking to the configured service.
// Flags override the config when set.
func newController(cmd *cobra.Command, surface results.Surface) (*controller.Controller, error) {
	cfg := GetGlobalConfig()

	endpoint := cfg.Service.Endpoint
	timeout := cfg.Service.Timeout
	if f := cmd.Flags().Lookup("endpoint"); f != nil && f.Changed {
		endpoint = analyzeEndpoint
	}
	if f := cmd.Flags().Lookup("timeout"); f != nil && f.Changed {
		timeout = analyzeTimeout
	}

	svc, err := client.New(client.Config{Endpoint: endpoint, Timeout: timeout}, client.WithLogger(newLogger("client")))
	if err != nil {
		return nil, err
	}

	opts := []controller.Option{
		controller.WithLogger(newLogger("controller")),
		controller.WithTimestampFormat(cfg.Output.TimestampFormat),
	}
	return controller.New(svc, surface, opts...), nil
}

// readInput joins args, or reads stdin when there are none
func readInput(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(io.LimitReader(stdin, maxInputBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) > maxInputBytes {
		return "", fmt.Errorf("input exceeds %d bytes", maxInputBytes)
	}
	return string(data), nil
}
