// Package streak derives display values from habit histories.
package streak

import (
	"math"
	"time"

	"github.com/brk3/streaks/pkg/habit"
)

// MaxStreakDays bounds the backward walk. Longer streaks are reported capped.
const MaxStreakDays = 365

// ComputeStreak counts consecutive completed days walking back from today.
// Today not yet being done does not break the streak; any earlier missing day
// does. A malformed today yields 0.
func ComputeStreak(h habit.History, today string) int {
	day, err := time.Parse(habit.DayLayout, today)
	if err != nil {
		return 0
	}

	streak := 0
	for i := 0; i < MaxStreakDays; i++ {
		key := day.Format(habit.DayLayout)
		if h.Done(key) {
			streak++
		} else if key != today {
			break
		}
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// ComputeCompletionRate returns the percentage (0-100) of habits done today,
// rounded half away from zero. An empty collection is 0.
func ComputeCompletionRate(habits []habit.Habit, today string) int {
	if len(habits) == 0 {
		return 0
	}
	done := 0
	for _, h := range habits {
		if h.History.Done(today) {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(habits))))
}
