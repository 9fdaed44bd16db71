package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/brk3/streaks/internal/clock"
	"github.com/brk3/streaks/internal/nudge"
	"github.com/brk3/streaks/internal/nudge/resend"
	"github.com/brk3/streaks/internal/tracker"
)

var nudgeCmd = &cobra.Command{
	Use:   "nudge",
	Short: "Send a reminder for habit streaks expiring within a certain window",
	Long: `The "nudge" command emails a reminder listing habits with a live streak
that are not done today, once the day has no more than nudge.threshold_hours
left. The day is the one reported by the store (or the server, with --remote),
read in the configured timezone. Run it from cron every hour or so.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Nudge.ResendAPIKey == "" {
			return fmt.Errorf("nudge.resend_api_key or HABITS_RESEND_API_KEY must be set")
		}
		if cfg.Nudge.Email == "" {
			return fmt.Errorf("nudge.email or HABITS_NOTIFY_EMAIL must be set")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := clock.Load(cfg.Timezone)
		if err != nil {
			return err
		}
		n := &resend.ResendNotifier{
			ApiKey: cfg.Nudge.ResendAPIKey,
			Email:  cfg.Nudge.Email,
			From:   cfg.Nudge.From,
		}
		threshold := time.Duration(cfg.Nudge.ThresholdHours) * time.Hour

		return withService(func(svc tracker.Service) error {
			sent, err := nudge.Nudge(cmd.Context(), svc, n, clock.NewLocal(loc).Now(), threshold)
			if err != nil {
				return err
			}
			if len(sent) > 0 {
				cmd.Printf("Nudged about: %s\n", strings.Join(sent, ", "))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(nudgeCmd)
}
