package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagExportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <path> -o <file>",
	Short: "Write a path's entries as a JSON listing",
	Long: `Load a directory (or listing) and write its entries to a JSON file that
can later be imported into a pane or passed to diff.

Unlike the interactive export, a failed write is reported and the
command exits non-zero.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := setup(ctx, false)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		ld := a.newLoader()
		slot := ld.Load(ctx, args[0])
		if err := ld.Export(ctx, flagExportOutput, slot.Entries); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %d entries to %s\n", slot.Entries.Len(), flagExportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "destination file")
	_ = exportCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(exportCmd)
}
