// Package logging builds the process-wide slog logger.
//
// The interactive UI owns the terminal, so by default it logs to a file under
// the XDG state directory. Non-interactive commands log to stderr.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Options configures New.
type Options struct {
	Level     string    // debug, info, warn, error; empty means info
	File      string    // log file path; empty means Writer
	Writer    io.Writer // used when File is empty; nil means io.Discard
	SessionID string    // attached to every record when set
}

// DefaultPath returns dir-diff/dir-diff.log under the XDG state directory
// ($XDG_STATE_HOME, or the platform default such as ~/.local/state).
func DefaultPath() string {
	if xdg.StateHome == "" {
		return filepath.Join(os.TempDir(), fmt.Sprintf("dir-diff-%d.log", os.Getuid()))
	}
	return filepath.Join(xdg.StateHome, "dir-diff", "dir-diff.log")
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q (supported: debug, info, warn, error)", s)
	}
}

// New returns a text logger and a close func for the underlying file.
// The close func is never nil.
func New(opts Options) (*slog.Logger, func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	w := opts.Writer
	closeFn := func() error { return nil }
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o700); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}
	if w == nil {
		w = io.Discard
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	if opts.SessionID != "" {
		logger = logger.With("session", opts.SessionID)
	}
	return logger, closeFn, nil
}

// Discard returns a logger that drops everything. Used as a nil-safe default.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
