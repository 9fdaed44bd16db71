package nudge

import (
	"context"

	"github.com/brk3/streaks/pkg/habit"
)

type mockClient struct {
	snapshot habit.Snapshot
	err      error
	calls    int
}

func (f *mockClient) Snapshot(ctx context.Context) (habit.Snapshot, error) {
	f.calls++
	return f.snapshot, f.err
}
