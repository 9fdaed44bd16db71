package cmd

import (
	"github.com/spf13/cobra"

	"github.com/brk3/streaks/internal/tracker"
	"github.com/brk3/streaks/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive habit list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc tracker.Service) error {
			return tui.Run(cmd.Context(), svc)
		})
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
