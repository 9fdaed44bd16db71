package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/brk3/streaks/internal/tracker"
)

var trackCmd = &cobra.Command{
	Use:     "track <id>",
	Aliases: []string{"toggle", "done"},
	Short:   "Toggle today's completion for a habit",
	Long: `The "track" command marks a habit done for today, or un-marks it if it was
already done. Use "streaks list" to find habit ids.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withService(func(svc tracker.Service) error {
			snap, err := svc.ToggleToday(cmd.Context(), id)
			if err != nil {
				return err
			}
			if _, ok := snap.Find(id); !ok {
				cmd.PrintErrf("No habit with id %d\n", id)
			}
			return printSnapshot(cmd.OutOrStdout(), snap)
		})
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("habit id must be an integer, got %q", s)
	}
	return id, nil
}

func init() {
	rootCmd.AddCommand(trackCmd)
}
