package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"go.yaml.in/yaml/v4"
)

const (
	DefaultConfigFile = "config.yaml"
	DefaultStorageKey = "streaks_habits_v1"

	// Default paths when storage.path is unset. They differ so switching
	// driver never points a directory store at a bolt file or vice versa.
	DefaultBoltPath = "habits.db"
	DefaultFileDir  = "habits.d"
)

// Storage drivers.
const (
	DriverBolt   = "bolt"
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

type Config struct {
	Storage    Storage `yaml:"storage" toml:"storage"`
	Timezone   string  `yaml:"timezone" toml:"timezone"`
	Log        Log     `yaml:"log" toml:"log"`
	Server     Server  `yaml:"server" toml:"server"`
	APIBaseURL string  `yaml:"api_base_url" toml:"api_base_url"`
	Nudge      Nudge   `yaml:"nudge" toml:"nudge"`
}

type Storage struct {
	Driver string `yaml:"driver" toml:"driver"`
	// Path is the bbolt file for the bolt driver and a directory for the file driver.
	Path  string `yaml:"path" toml:"path"`
	Key   string `yaml:"key" toml:"key"`
	Redis Redis  `yaml:"redis" toml:"redis"`
}

type Redis struct {
	Addr     string `yaml:"addr" toml:"addr"`
	Password string `yaml:"password" toml:"password"`
	DB       int    `yaml:"db" toml:"db"`
	Prefix   string `yaml:"prefix" toml:"prefix"`
}

type Log struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

type Server struct {
	Addr string `yaml:"addr" toml:"addr"`
}

type Nudge struct {
	Email          string `yaml:"email" toml:"email"`
	From           string `yaml:"from" toml:"from"`
	ResendAPIKey   string `yaml:"resend_api_key" toml:"resend_api_key"`
	ThresholdHours int    `yaml:"threshold_hours" toml:"threshold_hours"`
}

func Default() *Config {
	return &Config{
		Storage: Storage{
			Driver: DriverBolt,
			Key:    DefaultStorageKey,
			Redis: Redis{
				Addr:   "localhost:6379",
				Prefix: "streaks:",
			},
		},
		Log:        Log{Level: "info", Format: "text"},
		Server:     Server{Addr: ":8080"},
		APIBaseURL: "http://localhost:8080",
		Nudge: Nudge{
			From:           "onboarding@resend.dev",
			ThresholdHours: 4,
		},
	}
}

// Load reads the config file, then applies environment overrides. The file
// is path, else $HABITS_CONFIG, else config.yaml. Only a missing default
// file is tolerated.
func Load(path string) (*Config, error) {
	explicit := true
	if path == "" {
		path = os.Getenv("HABITS_CONFIG")
	}
	if path == "" {
		path = DefaultConfigFile
		explicit = false
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.Storage.applyDefaultPath()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		_, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
		return err
	default:
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		return yaml.Unmarshal(data, cfg)
	}
}

func (c *Config) applyEnvOverrides() error {
	setenv(&c.Storage.Path, "HABITS_DB_PATH")
	setenv(&c.Storage.Driver, "HABITS_STORAGE_DRIVER")
	setenv(&c.APIBaseURL, "HABITS_API_BASE")
	setenv(&c.Log.Level, "HABITS_LOG_LEVEL")
	setenv(&c.Timezone, "HABITS_TIMEZONE")
	setenv(&c.Nudge.ResendAPIKey, "HABITS_RESEND_API_KEY")
	setenv(&c.Nudge.Email, "HABITS_NOTIFY_EMAIL")

	if v := os.Getenv("HABITS_NUDGE_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("HABITS_NUDGE_THRESHOLD must be a valid integer: %w", err)
		}
		c.Nudge.ThresholdHours = n
	}
	return nil
}

// applyDefaultPath fills an unset path for the chosen driver.
func (s *Storage) applyDefaultPath() {
	if s.Path != "" {
		return
	}
	switch s.Driver {
	case DriverBolt:
		s.Path = DefaultBoltPath
	case DriverFile:
		s.Path = DefaultFileDir
	}
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverBolt, DriverFile, DriverRedis, DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Key == "" {
		return fmt.Errorf("storage key must not be empty")
	}
	if (c.Storage.Driver == DriverBolt || c.Storage.Driver == DriverFile) && c.Storage.Path == "" {
		return fmt.Errorf("storage path is required for the %s driver", c.Storage.Driver)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("bad log level %q", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("bad log format %q", c.Log.Format)
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("bad timezone: %w", err)
		}
	}
	if c.Nudge.ThresholdHours < 0 || c.Nudge.ThresholdHours > 24 {
		return fmt.Errorf("nudge threshold must be 0-24 hours")
	}
	return nil
}

func setenv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
