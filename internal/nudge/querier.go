package nudge

import (
	"context"

	"github.com/brk3/streaks/pkg/habit"
)

// Querier is satisfied by tracker.Local and apiclient.Client.
type Querier interface {
	Snapshot(ctx context.Context) (habit.Snapshot, error)
}

type Notifier interface {
	SendNudge(habits []string, hoursTillExpiry int) error
}
