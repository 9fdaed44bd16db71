package tracker

import (
	"context"
	"sync"

	"github.com/brk3/streaks/pkg/habit"
)

// Service is the event surface a renderer drives. Every call returns the
// display values to redraw from.
type Service interface {
	Snapshot(ctx context.Context) (habit.Snapshot, error)
	Create(ctx context.Context, name string) (habit.Snapshot, error)
	ToggleToday(ctx context.Context, id int64) (habit.Snapshot, error)
	Delete(ctx context.Context, id int64) (habit.Snapshot, error)
}

// Local serves a Store in-process. Events are serialised so each mutation,
// write and recompute finishes before the next one starts.
type Local struct {
	mu    sync.Mutex
	store *Store
}

func NewLocal(store *Store) *Local {
	return &Local{store: store}
}

func (l *Local) Snapshot(ctx context.Context) (habit.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return habit.Snapshot{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.store.Snapshot(), nil
}

func (l *Local) Create(ctx context.Context, name string) (habit.Snapshot, error) {
	return l.apply(ctx, func() error {
		_, _, err := l.store.Create(name)
		return err
	})
}

func (l *Local) ToggleToday(ctx context.Context, id int64) (habit.Snapshot, error) {
	return l.apply(ctx, func() error {
		_, _, err := l.store.ToggleToday(id)
		return err
	})
}

func (l *Local) Delete(ctx context.Context, id int64) (habit.Snapshot, error) {
	return l.apply(ctx, func() error {
		_, err := l.store.Delete(id)
		return err
	})
}

func (l *Local) apply(ctx context.Context, fn func() error) (habit.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return habit.Snapshot{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := fn(); err != nil {
		return habit.Snapshot{}, err
	}
	return l.store.Snapshot(), nil
}

// WithStore runs fn with exclusive access to the underlying store.
func (l *Local) WithStore(fn func(*Store) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(l.store)
}

var _ Service = (*Local)(nil)
