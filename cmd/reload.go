package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timvw/dir-diff/internal/config"
	"github.com/timvw/dir-diff/internal/control"
)

var flagReloadSocket string

var reloadCmd = &cobra.Command{
	Use:   "reload [left|right|both]",
	Short: "Ask a running dir-diff UI to reload a pane",
	Long: `Send a reload command to the control socket of a running dir-diff UI.
The pane is re-read from the path it was last loaded from.

Handy as a hook after a build or sync step. Defaults to both panes.`,
	Args:         cobra.MaximumNArgs(1),
	ValidArgs:    []string{"left", "right", "both"},
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		target := control.PaneBoth
		if len(args) == 1 {
			target = args[0]
		}

		socketPath := flagReloadSocket
		if socketPath == "" {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			if cfg.ControlSocketDisabled() {
				return fmt.Errorf("control socket is disabled in config")
			}
			socketPath = cfg.ControlSocket
		}
		if socketPath == "" {
			socketPath = control.DefaultSocketPath()
		}

		return control.Send(socketPath, control.Command{Op: control.OpReload, Pane: target})
	},
}

func init() {
	reloadCmd.Flags().StringVar(&flagReloadSocket, "socket", "", "control socket path (default: from config)")
	rootCmd.AddCommand(reloadCmd)
}
