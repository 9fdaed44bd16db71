package cmd

import (
	"github.com/spf13/cobra"

	"github.com/brk3/streaks/internal/apiclient"
	"github.com/brk3/streaks/pkg/versioninfo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `The "version" command displays the current version info for the client,
and for the server at api_base_url when --remote is set.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		version(cmd)
	},
}

func version(cmd *cobra.Command) {
	cmd.Printf("Client Version: %s\n", versioninfo.Version)
	if !remote {
		return
	}

	info, err := apiclient.New(cfg.APIBaseURL).Version(cmd.Context())
	if err != nil {
		cmd.Println("Error fetching server version:", err)
		return
	}
	cmd.Printf("Server Version: %s\n", info.Version)
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
