package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timvw/dir-diff/internal/control"
	"github.com/timvw/dir-diff/internal/model"
	"github.com/timvw/dir-diff/internal/pane"
	"github.com/timvw/dir-diff/internal/tui"
)

var (
	flagTheme         string
	flagControlSocket string
)

func init() {
	rootCmd.Flags().StringVar(&flagTheme, "theme", "",
		"Color theme: dark, light (default: from config)")
	rootCmd.Flags().StringVar(&flagControlSocket, "control-socket", "",
		"Unix datagram socket path for reload commands (\"off\" disables)")
}

func runUI(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel() // stops the control listener when the UI exits

	a, err := setup(ctx, true)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	theme := a.cfg.Theme
	if flagTheme != "" {
		theme = flagTheme
	}
	if flagControlSocket != "" {
		a.cfg.ControlSocket = flagControlSocket
	}

	ui := &tui.TUI{
		Prompt:        tui.NewPrompt(),
		Theme:         theme,
		ShowHidden:    a.cfg.ShowHiddenEnabled(),
		StatusTimeout: a.cfg.StatusTimeoutDuration,
		Logger:        a.logger,
	}

	ui.State = pane.New(a.newLoader(), ui.Prompt,
		pane.WithContext(ctx),
		pane.WithSorted(a.cfg.SortEnabled()),
		pane.WithLogger(a.logger),
		pane.WithMetrics(a.metrics),
		pane.WithExportObserver(ui.ReportExport),
	)

	// Initial paths from the command line.
	for i, path := range args {
		ui.State.Load(model.Panes[i], path)
	}

	if !a.cfg.ControlSocketDisabled() {
		socketPath := a.cfg.ControlSocket
		if socketPath == "" {
			socketPath = control.DefaultSocketPath()
		}
		listener := control.NewListener(socketPath, a.logger)
		if err := listener.Start(ctx); err != nil {
			a.logger.Warn("control socket unavailable", "path", socketPath, "err", err)
		} else {
			ui.Control = listener.Commands()
			a.logger.Info("control socket listening", "path", listener.SocketPath())
		}
	}

	a.logger.Info("starting ui", "left", argAt(args, 0), "right", argAt(args, 1))
	if err := ui.Run(ctx); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
