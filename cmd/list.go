package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/brk3/streaks/internal/tracker"
	"github.com/brk3/streaks/pkg/habit"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List habits",
	Long: `The "list" command shows every habit with its current streak, whether it is
done today, and today's completion rate.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc tracker.Service) error {
			snap, err := svc.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), snap)
		})
	},
}

func printSnapshot(w io.Writer, snap habit.Snapshot) error {
	if listJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	fmt.Fprintf(w, "%s  %d%% done today\n", snap.Today, snap.CompletionRate)
	if len(snap.Habits) == 0 {
		fmt.Fprintln(w, "No habits yet. Add one with \"streaks add <name>\".")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, h := range snap.Habits {
		box := "[ ]"
		if h.DoneToday {
			box = "[x]"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%d day streak\n", box, h.ID, h.Name, h.Streak)
	}
	return tw.Flush()
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print the snapshot as JSON")
	rootCmd.AddCommand(listCmd)
}
