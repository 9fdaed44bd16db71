package storage

import "errors"

var ErrClosed = errors.New("storage: closed")

// KV is a persistent key-value slot store with a monotonic id sequence.
type KV interface {
	// Get returns the value under key; found is false when the key was never written.
	Get(key string) (value []byte, found bool, err error)
	Put(key string, value []byte) error
	// NextSequence returns a persisted, strictly increasing integer. Values
	// are never handed out twice, even across restarts.
	NextSequence() (uint64, error)
	Close() error
}
