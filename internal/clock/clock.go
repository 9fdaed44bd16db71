// Package clock supplies "today" as a local calendar-day string.
package clock

import (
	"time"

	"github.com/brk3/streaks/pkg/habit"
)

type Clock interface {
	Today() string
}

// Local reads the wall clock in Location, or time.Local when nil.
type Local struct {
	Location *time.Location
	now      func() time.Time
}

func NewLocal(loc *time.Location) *Local {
	return &Local{Location: loc, now: time.Now}
}

func (l *Local) Now() time.Time {
	now := time.Now
	if l.now != nil {
		now = l.now
	}
	loc := l.Location
	if loc == nil {
		loc = time.Local
	}
	return now().In(loc)
}

func (l *Local) Today() string {
	return l.Now().Format(habit.DayLayout)
}

// Fixed always reports the same day.
type Fixed string

func (f Fixed) Today() string { return string(f) }

// Load resolves an IANA zone name. Empty means the host's local zone.
func Load(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}
