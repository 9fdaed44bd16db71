package cmd

import (
	"fmt"

	"github.com/brk3/streaks/internal/config"
	"github.com/brk3/streaks/internal/storage"
	"github.com/brk3/streaks/internal/storage/bolt"
	"github.com/brk3/streaks/internal/storage/file"
	"github.com/brk3/streaks/internal/storage/memory"
	"github.com/brk3/streaks/internal/storage/redis"
)

func openKV(s config.Storage) (storage.KV, error) {
	switch s.Driver {
	case config.DriverBolt:
		return bolt.Open(s.Path)
	case config.DriverFile:
		return file.Open(s.Path)
	case config.DriverRedis:
		return redis.Open(redis.Options{
			Addr:     s.Redis.Addr,
			Password: s.Redis.Password,
			DB:       s.Redis.DB,
			Prefix:   s.Redis.Prefix,
		})
	case config.DriverMemory:
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", s.Driver)
	}
}
