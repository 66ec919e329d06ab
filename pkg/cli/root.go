// Package cli implements the burphist command-line interface. It is a thin
// collaborator over the core packages: file handling and presentation live
// here, parsing and querying live in pkg/history and pkg/query.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/burphist/burphist/pkg/history"
	"github.com/burphist/burphist/pkg/logging"
)

var (
	logLevel   string
	logFormat  string
	configPath string

	flagWorkers     int
	flagFailFast    bool
	flagMinSeverity string
)

var rootCmd = &cobra.Command{
	Use:           "burphist",
	Short:         "Load, query, and re-export Burp Suite HTTP history files",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "log format: text or json")
	pf.StringVar(&configPath, "config", "", "path to a YAML config file")
	pf.IntVar(&flagWorkers, "workers", 0, "concurrent load workers (0 = sequential)")
	pf.BoolVar(&flagFailFast, "fail-fast", false, "treat any entry error as a fatal load error")
	pf.StringVar(&flagMinSeverity, "min-severity", "", "retain diagnostics at or above this severity: warning, error")
}

// newLogger builds the operational logger from config file values overridden
// by flags.
func newLogger(cfg *fileConfig) *slog.Logger {
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	format := logging.FormatText
	if f := firstNonEmpty(logFormat, cfg.LogFormat); f == string(logging.FormatJSON) {
		format = logging.FormatJSON
	}
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(level),
		Format: format,
	})
}

// loadOptions merges the config file and flags into history load options.
func loadOptions(cmd *cobra.Command, cfg *fileConfig) *history.Options {
	opts := &history.Options{
		Workers:  cfg.Workers,
		FailFast: cfg.FailFast,
		Logger:   newLogger(cfg),
	}
	if cmd.Flags().Changed("workers") {
		opts.Workers = flagWorkers
	}
	if cmd.Flags().Changed("fail-fast") {
		opts.FailFast = flagFailFast
	}
	if s := firstNonEmpty(flagMinSeverity, cfg.MinSeverity); s != "" {
		opts.MinSeverity = history.Severity(s)
	}
	return opts
}

// loadStore opens path and loads it into a store using the merged options.
func loadStore(cmd *cobra.Command, path string) (*history.Store, error) {
	cfg, err := readConfig(configPath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return history.Load(cmd.Context(), f, loadOptions(cmd, cfg))
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
