package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/TextLens/internal/ui"
)

var interactiveTheme string

func newInteractiveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"tui"},
		Short:   "Start the interactive terminal UI",
		Long: `Start a full-screen terminal UI for composing text and browsing results.

Logs go only to the configured log file while the UI is running.

Keys:
  tab / shift+tab   select analysis
  ctrl+s            analyze with the selected analysis
  ctrl+a            run every analysis
  ctrl+l            clear text, error and results
  ctrl+r            clear results
  ↑ ↓ pgup pgdown   scroll results
  esc / ctrl+c      quit`,
		Args: cobra.NoArgs,
		RunE: runInteractive,
	}

	cmd.Flags().StringVar(&interactiveTheme, "theme", "default", "color theme ("+strings.Join(ui.AvailableThemes(), ", ")+")")
	cmd.Flags().StringVar(&analyzeEndpoint, "endpoint", "", "analysis service base URL (default from config)")
	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "request timeout, 0 waits indefinitely (default from config)")

	return cmd
}

func runInteractive(cmd *cobra.Command, args []string) error {
	theme, ok := ui.ThemeByName(interactiveTheme)
	if !ok {
		return fmt.Errorf("unknown theme: %s (available: %s)", interactiveTheme, strings.Join(ui.AvailableThemes(), ", "))
	}

	if err := configureLogging(GetGlobalConfig().Log, false); err != nil {
		return err
	}

	surface := ui.NewProgramSurface()
	ctrl, err := newController(cmd, surface)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := newLogger("cli")
	start := time.Now()
	log.Info("interactive session started")
	defer func() { log.Info("interactive session ended after %v", time.Since(start).Round(time.Second)) }()

	return ui.Run(ctx, ctrl, surface, ui.Options{
		Theme:  theme,
		Color:  colorEnabled(),
		Logger: log,
	})
}
