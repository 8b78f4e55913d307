package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/timvw/dir-diff/internal/config"
	"github.com/timvw/dir-diff/internal/loader"
	"github.com/timvw/dir-diff/internal/logging"
	telem "github.com/timvw/dir-diff/internal/otel"
)

var (
	// Global flags.
	flagLogLevel string
	flagLogFile  string
	flagNoSort   bool
)

var rootCmd = &cobra.Command{
	Use:   "dir-diff [left] [right]",
	Short: "Compare the entries of two directories or exported listings",
	Long: `dir-diff shows two panes side by side, each loaded from a directory or
from a previously exported JSON listing, and highlights the entries that
exist only on one side.

Only the names of direct children are compared. Either pane can be
re-opened, imported, exported or reloaded from inside the UI.

Configuration is loaded from .dir-diff.yaml, ~/.config/dir-diff/config.yaml
or DIR_DIFF_* environment variables.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI(cmd, args)
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error (default: from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "write logs to this file (default: from config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoSort, "no-sort", false, "keep listings in directory order instead of sorting them")
}

// app bundles the process-wide services every command needs.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	tel       *telem.Telemetry
	metrics   *telem.Metrics
	sessionID string
	closeLog  func() error
}

// setup loads configuration, builds the logger and starts telemetry.
// Interactive commands log to a file because the UI owns the terminal;
// the others log to stderr unless a log file is configured.
func setup(ctx context.Context, interactive bool) (*app, error) {
	// Load configuration: defaults -> config file -> env vars -> flags.
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	if flagLogFile != "" {
		cfg.LogFile = flagLogFile
	}
	if flagNoSort {
		cfg.Sort = new(bool)
	}

	sessionID := uuid.NewString()

	opts := logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, SessionID: sessionID}
	if opts.File == "" {
		if interactive {
			opts.File = logging.DefaultPath()
		} else {
			opts.Writer = os.Stderr
		}
	}
	logger, closeLog, err := logging.New(opts)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	if cfg.ConfigFile != "" {
		logger.Debug("loaded config", "path", cfg.ConfigFile)
	}

	// Wire build version into OTEL service metadata
	telem.Version = Version

	// Initialize OTEL (no-op if no endpoint configured)
	tel, err := telem.Init(ctx, telem.OTELConfig{
		Endpoint:  cfg.OTELEndpoint,
		Headers:   cfg.OTELHeaders,
		SessionID: sessionID,
	})
	if err != nil {
		logger.Warn("otel init failed", "err", err)
	}

	var metrics *telem.Metrics
	if tel != nil {
		metrics = tel.Metrics
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		tel:       tel,
		metrics:   metrics,
		sessionID: sessionID,
		closeLog:  closeLog,
	}, nil
}

func (a *app) close(ctx context.Context) {
	if a.tel != nil {
		a.tel.Shutdown(ctx)
	}
	_ = a.closeLog()
}

func (a *app) newLoader() *loader.Loader {
	return loader.New(loader.NewOSSource(),
		loader.WithLogger(a.logger),
		loader.WithMetrics(a.metrics))
}

// out is where non-interactive commands print results.
var out io.Writer = os.Stdout
