package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/brk3/streaks/pkg/habit"
)

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name    string
		history habit.History
		today   string
		want    int
	}{
		{"empty", habit.History{}, "2024-01-10", 0},
		{"nil", nil, "2024-01-10", 0},
		{"today pending", habit.History{"2024-01-09": true, "2024-01-08": true}, "2024-01-10", 2},
		{"today done", habit.History{"2024-01-10": true, "2024-01-09": true}, "2024-01-10", 2},
		{"yesterday missing", habit.History{"2024-01-08": true}, "2024-01-10", 0},
		{"only today", habit.History{"2024-01-10": true}, "2024-01-10", 1},
		{"break in the past", habit.History{"2024-01-10": true, "2024-01-09": true, "2024-01-07": true}, "2024-01-10", 2},
		{"false value counts as missing", habit.History{"2024-01-09": false, "2024-01-08": true}, "2024-01-10", 0},
		{"across month boundary", habit.History{"2024-03-01": true, "2024-02-29": true, "2024-02-28": true}, "2024-03-01", 3},
		{"future entries ignored", habit.History{"2024-01-11": true, "2024-01-10": true}, "2024-01-10", 1},
		{"malformed today", habit.History{"2024-01-10": true}, "10/01/2024", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeStreak(tt.history, tt.today))
		})
	}
}

func fillDays(from time.Time, n int) habit.History {
	h := habit.History{}
	for i := 0; i < n; i++ {
		h[from.AddDate(0, 0, -i).Format(habit.DayLayout)] = true
	}
	return h
}

func TestComputeStreak_Capped(t *testing.T) {
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	h := fillDays(today, 500)
	assert.Equal(t, MaxStreakDays, ComputeStreak(h, "2024-06-01"))

	// With today pending the skipped day still uses one step of the walk.
	delete(h, "2024-06-01")
	assert.Equal(t, MaxStreakDays-1, ComputeStreak(h, "2024-06-01"))
}

func TestComputeCompletionRate(t *testing.T) {
	today := "2024-01-10"
	done := habit.Habit{History: habit.History{today: true}}
	pending := habit.Habit{History: habit.History{}}

	tests := []struct {
		name   string
		habits []habit.Habit
		want   int
	}{
		{"empty", nil, 0},
		{"half", []habit.Habit{done, pending}, 50},
		{"all", []habit.Habit{done, done}, 100},
		{"none", []habit.Habit{pending, pending, pending}, 0},
		{"one third rounds down", []habit.Habit{done, pending, pending}, 33},
		{"two thirds rounds up", []habit.Habit{done, done, pending}, 67},
		{"half rounds away from zero", append([]habit.Habit{done}, make([]habit.Habit, 7)...), 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeCompletionRate(tt.habits, today))
		})
	}
}
