// Package nudge reminds the user about streaks that will break at midnight.
package nudge

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/brk3/streaks/internal/logger"
	"github.com/brk3/streaks/pkg/habit"
)

// AtRisk returns the names of habits with a live streak that are not yet
// done today.
func AtRisk(s habit.Snapshot) []string {
	var out []string
	for _, h := range s.Habits {
		if h.Streak > 0 && !h.DoneToday {
			out = append(out, h.Name)
		}
	}
	return out
}

// UntilMidnight is the time left in now's calendar day, in now's location.
func UntilMidnight(now time.Time) time.Duration {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location()).Sub(now)
}

// UntilEndOf is the time from now until the end of day, a DayLayout date
// read in now's location. A malformed day falls back to now's own day.
func UntilEndOf(day string, now time.Time) time.Duration {
	d, err := time.ParseInLocation(habit.DayLayout, day, now.Location())
	if err != nil {
		return UntilMidnight(now)
	}
	return d.AddDate(0, 0, 1).Sub(now)
}

// Nudge sends one notification listing at-risk habits when the service's
// current day has at most threshold left. The day comes from the snapshot,
// so a remote service's calendar wins over now's. It returns the habits it
// nudged about.
func Nudge(ctx context.Context, q Querier, n Notifier, now time.Time, threshold time.Duration) ([]string, error) {
	snap, err := q.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("query habits: %w", err)
	}

	left := UntilEndOf(snap.Today, now)
	if left <= 0 || left > threshold {
		logger.Debug("Not nudging", "today", snap.Today, "time_left", left, "threshold", threshold)
		return nil, nil
	}
	habits := AtRisk(snap)
	if len(habits) == 0 {
		logger.Debug("No streaks at risk", "today", snap.Today)
		return nil, nil
	}

	hours := int(math.Ceil(left.Hours()))
	if err := n.SendNudge(habits, hours); err != nil {
		return nil, fmt.Errorf("send nudge: %w", err)
	}
	logger.Info("Sent nudge", "habits", habits, "hours_left", hours)
	return habits, nil
}
