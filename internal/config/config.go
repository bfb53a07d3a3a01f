package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/garrettladley/huddle/internal/dispatch"
)

const DefaultServerURL = "http://localhost:5000/api/v1"

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
	BackendMemory Backend = "memory"
)

type Config struct {
	ServerURL            string          `env:"HUDDLE_SERVER_URL" envDefault:"http://localhost:5000/api/v1"`
	Token                string          `env:"HUDDLE_TOKEN"`
	PollInterval         time.Duration   `env:"HUDDLE_POLL_INTERVAL" envDefault:"30s"`
	SeenBackend          Backend         `env:"HUDDLE_SEEN_BACKEND" envDefault:"sqlite"`
	RedisURL             string          `env:"HUDDLE_REDIS_URL" envDefault:"redis://localhost:6379/0"`
	RedisNamespace       string          `env:"HUDDLE_REDIS_NAMESPACE"`
	SeenCapacity         int             `env:"HUDDLE_SEEN_CAPACITY" envDefault:"1000"`
	NotifyMethod         dispatch.Method `env:"HUDDLE_NOTIFY_METHOD" envDefault:"auto"`
	NotificationsEnabled bool            `env:"HUDDLE_NOTIFICATIONS_ENABLED" envDefault:"true"`
	HTTPTimeout          time.Duration   `env:"HUDDLE_HTTP_TIMEOUT" envDefault:"30s"`
}

func Read() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.SeenBackend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("invalid HUDDLE_SEEN_BACKEND %q", c.SeenBackend)
	}
	if _, err := dispatch.ParseMethod(string(c.NotifyMethod)); err != nil {
		return fmt.Errorf("invalid HUDDLE_NOTIFY_METHOD: %w", err)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("HUDDLE_POLL_INTERVAL must be positive, got %s", c.PollInterval)
	}
	if c.SeenCapacity <= 0 {
		return fmt.Errorf("HUDDLE_SEEN_CAPACITY must be positive, got %d", c.SeenCapacity)
	}
	if c.ServerURL == "" {
		return fmt.Errorf("HUDDLE_SERVER_URL must be set")
	}
	return nil
}
