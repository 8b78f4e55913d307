package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timvw/dir-diff/internal/loader"
)

var flagListJSON bool

var listCmd = &cobra.Command{
	Use:   "list <path>",
	Short: "Print the entries a path loads as",
	Long: `Load a directory or exported listing the same way a pane does and
print one entry per line, sorted.

Useful for checking what an exported listing contains before importing it.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := setup(ctx, false)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		slot := a.newLoader().Load(ctx, args[0])
		if flagListJSON {
			data, err := loader.Encode(slot.Entries)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		}
		for _, name := range slot.Entries.Sorted() {
			fmt.Fprintln(out, name)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&flagListJSON, "json", false, "print the entries in export format")
	rootCmd.AddCommand(listCmd)
}
