package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mj1618/dock-cli/internal/config"
	"github.com/mj1618/dock-cli/internal/logging"
	"github.com/mj1618/dock-cli/internal/output"
	"github.com/mj1618/dock-cli/internal/version"
)

// cfg is the configuration loaded by the root command before any subcommand runs.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "dock-cli",
	Short: "Inspect and drive the macOS dock",
	Long: `A CLI tool that mirrors the macOS dock: pinned items in dock order, running
applications, and notification badges. Reconciles the running process list with
the dock preferences and keeps badge counts fresh.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output (no-op for YAML)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $DOCK_CONFIG or ~/.config/dock-cli/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text, json (overrides config)")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")

		loaded, err := config.Load(configPath())
		if err != nil {
			return err
		}
		cfg = loaded

		level, _ := rootCmd.PersistentFlags().GetString("log-level")
		if level == "" {
			level = cfg.Logging.Level
		}
		logFormat, _ := rootCmd.PersistentFlags().GetString("log-format")
		if logFormat == "" {
			logFormat = cfg.Logging.Format
		}
		logging.Configure(logging.Options{Level: level, Format: logFormat, Output: cmd.ErrOrStderr()})
		return nil
	}
}

// configPath returns the --config flag value or the default location.
func configPath() string {
	if p, _ := rootCmd.PersistentFlags().GetString("config"); p != "" {
		return p
	}
	return config.DefaultPath()
}
