// Package memory is a process-local slot store. Nothing survives Close.
package memory

import (
	"sync"

	"github.com/brk3/streaks/internal/storage"
)

type Store struct {
	mu     sync.RWMutex
	data   map[string][]byte
	seq    uint64
	closed bool

	// FailPuts makes every Put return this error. Used to exercise write failures.
	FailPuts error
}

func New() *Store {
	return &Store{data: map[string][]byte{}}
}

func (m *Store) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, false, storage.ErrClosed
	}

	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Store) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return storage.ErrClosed
	}
	if m.FailPuts != nil {
		return m.FailPuts
	}

	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Store) NextSequence() (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, storage.ErrClosed
	}

	m.seq++
	return m.seq, nil
}

func (m *Store) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

var _ storage.KV = (*Store)(nil)
