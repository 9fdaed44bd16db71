package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/brk3/streaks/internal/tracker"
)

var addCmd = &cobra.Command{
	Use:   "add <name...>",
	Short: "Add a habit",
	Long: `The "add" command creates a habit. Arguments are joined with spaces and
trimmed; a blank name is ignored.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")
		return withService(func(svc tracker.Service) error {
			snap, err := svc.Create(cmd.Context(), name)
			if err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), snap)
		})
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
