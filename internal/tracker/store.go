// Package tracker owns the habit collection and its persistence.
//
// A Store is a plain single-threaded object: every mutation is applied to a
// copy of the collection, written to the slot, and only then made current, so
// a failed write never leaves memory and disk disagreeing. Use Local when
// events can arrive concurrently.
package tracker

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/brk3/streaks/internal/clock"
	"github.com/brk3/streaks/internal/logger"
	"github.com/brk3/streaks/internal/storage"
	"github.com/brk3/streaks/internal/streak"
	"github.com/brk3/streaks/pkg/habit"
)

// DefaultKey is the slot the collection lives under.
const DefaultKey = "streaks_habits_v1"

// ErrCorruptData means the persisted slot could not be decoded.
var ErrCorruptData = errors.New("persisted habit data is corrupt")

// DefaultHabits are seeded when no collection has been persisted yet.
var DefaultHabits = []string{"Drink Water", "Read 10 Pages"}

type Store struct {
	kv     storage.KV
	clock  clock.Clock
	key    string
	habits []habit.Habit
}

type Option func(*Store)

// WithKey stores the collection under key instead of DefaultKey.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func New(kv storage.KV, clk clock.Clock, opts ...Option) *Store {
	s := &Store{kv: kv, clock: clk, key: DefaultKey}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Load replaces the in-memory collection with the persisted one, seeding and
// persisting the defaults when the slot has never been written.
func (s *Store) Load() error {
	data, found, err := s.kv.Get(s.key)
	if err != nil {
		return fmt.Errorf("load habits: %w", err)
	}
	if !found {
		return s.seed()
	}

	habits, err := Decode(data)
	if err != nil {
		s.habits = nil
		return err
	}
	s.habits = habits
	logger.Debug("Loaded habits", "key", s.key, "count", len(habits))
	return nil
}

func (s *Store) seed() error {
	next := make([]habit.Habit, 0, len(DefaultHabits))
	for _, name := range DefaultHabits {
		id, err := s.nextID(next)
		if err != nil {
			return err
		}
		next = append(next, habit.Habit{ID: id, Name: name, History: habit.History{}})
	}
	if err := s.persist(next); err != nil {
		return err
	}
	s.habits = next
	logger.Info("Seeded default habits", "key", s.key, "count", len(next))
	return nil
}

// Save writes the full in-memory collection to the slot.
func (s *Store) Save() error {
	return s.persist(s.habits)
}

func (s *Store) persist(habits []habit.Habit) error {
	data, err := Encode(habits)
	if err != nil {
		return err
	}
	if err := s.kv.Put(s.key, data); err != nil {
		logger.Error("Failed to persist habits", "key", s.key, "error", err)
		return fmt.Errorf("save habits: %w", err)
	}
	return nil
}

// Create appends a habit named name (trimmed). An empty name is ignored and
// reported with created == false.
func (s *Store) Create(name string) (h habit.Habit, created bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		logger.Debug("Ignoring habit with empty name")
		return habit.Habit{}, false, nil
	}

	next := s.clone()
	id, err := s.nextID(next)
	if err != nil {
		return habit.Habit{}, false, err
	}
	h = habit.Habit{ID: id, Name: name, History: habit.History{}}
	next = append(next, h)

	if err := s.persist(next); err != nil {
		return habit.Habit{}, false, err
	}
	s.habits = next
	logger.Info("Created habit", "habit_id", id, "habit_name", name)
	return h.Clone(), true, nil
}

// ToggleToday flips today's completion for the habit with id. Calling it twice
// restores the original state. found is false for an unknown id.
func (s *Store) ToggleToday(id int64) (h habit.Habit, found bool, err error) {
	i := s.index(id)
	if i < 0 {
		logger.Debug("Toggle for unknown habit", "habit_id", id)
		return habit.Habit{}, false, nil
	}

	today := s.clock.Today()
	next := s.clone()
	target := &next[i]
	if target.History.Done(today) {
		delete(target.History, today)
	} else {
		// Also replaces a stray false value read from disk.
		target.History[today] = true
	}

	if err := s.persist(next); err != nil {
		return habit.Habit{}, false, err
	}
	s.habits = next
	logger.Info("Toggled habit", "habit_id", id, "day", today, "done", target.History.Done(today))
	return target.Clone(), true, nil
}

// Delete removes the habit with id and its history. found is false for an
// unknown id.
func (s *Store) Delete(id int64) (found bool, err error) {
	i := s.index(id)
	if i < 0 {
		logger.Debug("Delete for unknown habit", "habit_id", id)
		return false, nil
	}

	next := s.clone()
	name := next[i].Name
	next = append(next[:i], next[i+1:]...)

	if err := s.persist(next); err != nil {
		return false, err
	}
	s.habits = next
	logger.Info("Deleted habit", "habit_id", id, "habit_name", name)
	return true, nil
}

// Habits returns a copy of the collection in display order.
func (s *Store) Habits() []habit.Habit {
	return s.clone()
}

// Get returns a copy of the habit with id.
func (s *Store) Get(id int64) (habit.Habit, bool) {
	i := s.index(id)
	if i < 0 {
		return habit.Habit{}, false
	}
	return s.habits[i].Clone(), true
}

// Snapshot derives the renderer's display values for today.
func (s *Store) Snapshot() habit.Snapshot {
	today := s.clock.Today()
	snap := habit.Snapshot{
		Today:          today,
		Habits:         make([]habit.Summary, 0, len(s.habits)),
		CompletionRate: streak.ComputeCompletionRate(s.habits, today),
	}
	for _, h := range s.habits {
		snap.Habits = append(snap.Habits, habit.Summary{
			ID:        h.ID,
			Name:      h.Name,
			Streak:    streak.ComputeStreak(h.History, today),
			DoneToday: h.History.Done(today),
		})
	}
	return snap
}

func (s *Store) index(id int64) int {
	for i := range s.habits {
		if s.habits[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) clone() []habit.Habit {
	out := make([]habit.Habit, len(s.habits))
	for i, h := range s.habits {
		out[i] = h.Clone()
	}
	return out
}

// nextID draws from the slot's persisted sequence, skipping past ids already
// in use (collections imported from elsewhere may carry large ids).
func (s *Store) nextID(existing []habit.Habit) (int64, error) {
	seq, err := s.kv.NextSequence()
	if err != nil {
		return 0, fmt.Errorf("allocate habit id: %w", err)
	}
	id := int64(seq)
	for _, h := range existing {
		if h.ID >= id {
			id = h.ID + 1
		}
	}
	return id, nil
}

// Encode serialises the collection in the persisted layout.
func Encode(habits []habit.Habit) ([]byte, error) {
	if habits == nil {
		habits = []habit.Habit{}
	}
	data, err := json.Marshal(habits)
	if err != nil {
		return nil, fmt.Errorf("encode habits: %w", err)
	}
	return data, nil
}

// Decode parses the persisted layout as-is. Failures wrap ErrCorruptData.
func Decode(data []byte) ([]habit.Habit, error) {
	var habits []habit.Habit
	if err := json.Unmarshal(data, &habits); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	if habits == nil {
		habits = []habit.Habit{}
	}
	return habits, nil
}
