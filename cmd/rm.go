package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/brk3/streaks/internal/tracker"
)

var rmYes bool

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a habit and its history",
	Long: `The "rm" command deletes a habit together with its whole history. This
cannot be undone, so it asks for confirmation unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		return withService(func(svc tracker.Service) error {
			snap, err := svc.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			h, ok := snap.Find(id)
			if !ok {
				cmd.PrintErrf("No habit with id %d\n", id)
				return nil
			}
			if !rmYes && !confirm(cmd, fmt.Sprintf("Delete %q and its history? [y/N] ", h.Name)) {
				cmd.Println("Cancelled")
				return nil
			}
			snap, err = svc.Delete(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printSnapshot(cmd.OutOrStdout(), snap)
		})
	},
}

func confirm(cmd *cobra.Command, prompt string) bool {
	cmd.Print(prompt)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func init() {
	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "delete without asking")
	rootCmd.AddCommand(rmCmd)
}
