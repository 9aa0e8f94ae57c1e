package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/yildizm/TextLens/internal/config"
	"github.com/yildizm/TextLens/internal/emoji"
	"github.com/yildizm/TextLens/internal/logger"
	"github.com/yildizm/TextLens/internal/ui"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "textlens",
		Short: "AI text analysis from the terminal",
		Long: `TextLens sends text to an AI analysis service and renders the results.

It supports four analyses: summarize, sentiment, intent and classify. Run one
at a time or all four concurrently, from the command line or the interactive
terminal UI. The serve and backend commands run the HTTP proxy and the
model-backed analysis service.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}

			cfg, err := config.NewLoader().LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			globalConfig = cfg

			if cfg.Output.NoEmoji && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)

			if !cmd.Flag("output").Changed && cfg.Output.DefaultFormat != "" {
				outputFmt = cfg.Output.DefaultFormat
			}
			if cfg.Output.Verbose && !cmd.Flag("verbose").Changed {
				verbose = true
			}
			return configureLogging(cfg.Log, true)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Close()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "output format (text, json, markdown, html, csv)")

	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newInteractiveCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newBackendCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "TextLens %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// configureLogging applies the log section. console=false keeps stderr clean
// for the terminal UI.
func configureLogging(cfg config.LogConfig, console bool) error {
	level := cfg.Level
	if verbose {
		level = "debug"
	}
	err := logger.Configure(logger.Options{
		Level:      level,
		Format:     cfg.Format,
		Console:    console,
		File:       cfg.File,
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAgeDays: cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	})
	if err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}
	return nil
}

// Global helpers
func isVerbose() bool {
	return verbose
}

func getOutputFormat() string {
	return outputFmt
}

// GetGlobalConfig returns the configuration loaded for the running command
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

func newLogger(component string) *logger.Logger {
	return logger.NewWithCallback(component, isVerbose)
}

// colorEnabled resolves --no-color, output.color_mode and NO_COLOR
func colorEnabled() bool {
	if noColor {
		return false
	}
	switch GetGlobalConfig().Output.ColorMode {
	case "never":
		return false
	case "always":
		return true
	default:
		return !ui.IsColorDisabled()
	}
}
