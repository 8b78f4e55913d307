package cmd

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/timvw/dir-diff/internal/model"
	"github.com/timvw/dir-diff/internal/pane"
)

var flagDiffJSON bool

var diffCmd = &cobra.Command{
	Use:   "diff <left> <right>",
	Short: "Print the entries found on only one side",
	Long: `Load two directories or exported listings and print, for each side,
the entries that the other side does not have.

Each path is read as a directory first and as a JSON listing second.
Unreadable paths compare as empty; the reason is logged to stderr.`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := setup(ctx, false)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		state := pane.New(a.newLoader(), nil,
			pane.WithContext(ctx),
			pane.WithSorted(a.cfg.SortEnabled()),
			pane.WithLogger(a.logger),
			pane.WithMetrics(a.metrics))

		// Each slot has its own lock, so both sides load concurrently.
		var wg sync.WaitGroup
		for i, id := range model.Panes {
			wg.Add(1)
			go func(id model.PaneID, path string) {
				defer wg.Done()
				state.Load(id, path)
			}(id, args[i])
		}
		wg.Wait()

		views := []model.View{state.View(model.Left), state.View(model.Right)}
		if flagDiffJSON {
			return writeDiffJSON(views)
		}
		for _, v := range views {
			fmt.Fprintf(out, "only in %s (%d):\n", v.Title, len(v.Diff))
			for _, l := range v.Diff {
				fmt.Fprintf(out, "  %s\n", l.Text)
			}
		}
		return nil
	},
}

// diffSide is the JSON shape of one side of a diff.
type diffSide struct {
	Pane   model.PaneID `json:"pane"`
	Origin string       `json:"origin"`
	Only   []string     `json:"only"`
}

func writeDiffJSON(views []model.View) error {
	sides := make([]diffSide, len(views))
	for i, v := range views {
		only := make([]string, len(v.Diff))
		for j, l := range v.Diff {
			only[j] = l.Text
		}
		sides[i] = diffSide{Pane: v.Pane, Origin: v.Title, Only: only}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(sides)
}

func init() {
	diffCmd.Flags().BoolVar(&flagDiffJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(diffCmd)
}
