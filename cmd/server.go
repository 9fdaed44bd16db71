package cmd

import (
	"github.com/spf13/cobra"

	"github.com/brk3/streaks/internal/logger"
	"github.com/brk3/streaks/internal/server"
	"github.com/brk3/streaks/internal/tracker"
)

var serverAddr string

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long: `The "server" command serves the habit list over HTTP from the local store.
It holds the store open until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Server.Addr
		if serverAddr != "" {
			addr = serverAddr
		}
		st, kv, err := openLocal()
		if err != nil {
			return err
		}
		defer func() {
			if err := kv.Close(); err != nil {
				logger.Error("Failed to close storage", "err", err)
			}
		}()
		return server.New(tracker.NewLocal(st)).ListenAndServe(cmd.Context(), addr)
	},
}

func init() {
	serverCmd.Flags().StringVar(&serverAddr, "addr", "", "listen address (default server.addr)")
	rootCmd.AddCommand(serverCmd)
}
