// Package redis keeps slots in a Redis server, for hosts where the data
// directory is not writable.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/brk3/streaks/internal/storage"
)

type Options struct {
	Addr     string
	Password string
	DB       int
	// Prefix namespaces every key, e.g. "streaks:".
	Prefix string
}

type Store struct {
	rdb    *redis.Client
	prefix string
	ctx    context.Context
}

// Open connects and pings the server.
func Open(opts Options) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	s := New(rdb, opts.Prefix)
	if err := rdb.Ping(s.ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}
	return s, nil
}

// New wraps an existing client.
func New(rdb *redis.Client, prefix string) *Store {
	return &Store{rdb: rdb, prefix: prefix, ctx: context.Background()}
}

// Slots live under <prefix>slot:, so no slot name can reach the id counter.
func (s *Store) slotKey(key string) string {
	return s.prefix + "slot:" + key
}

func (s *Store) sequenceKey() string {
	return s.prefix + "sequence"
}

func (s *Store) Get(key string) ([]byte, bool, error) {
	v, err := s.rdb.Get(s.ctx, s.slotKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *Store) Put(key string, value []byte) error {
	if err := s.rdb.Set(s.ctx, s.slotKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *Store) NextSequence() (uint64, error) {
	n, err := s.rdb.Incr(s.ctx, s.sequenceKey()).Uint64()
	if err != nil {
		return 0, fmt.Errorf("redis incr: %w", err)
	}
	return n, nil
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

var _ storage.KV = (*Store)(nil)
