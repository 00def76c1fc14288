package hacker

import (
	"log/slog"
	"time"

	"github.com/gobeaver/cipherkit/config"
)

// Config holds search and service settings
type Config struct {
	// Workers is the number of candidates decoded concurrently; 0 uses GOMAXPROCS
	Workers int `env:"WORKERS" envDefault:"0"`

	// CacheTTL bounds how long a cached result is served
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"24h"`

	// Journal records every run in the attempt store when a database is configured
	Journal bool `env:"JOURNAL" envDefault:"false"`

	// LogLevel for the service logger: debug, info, warn, error
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// GetConfig loads configuration from environment variables (prefix BEAVER_HACKER_)
func GetConfig(opts ...config.Option) (*Config, error) {
	o := config.Apply(append([]config.Option{config.WithPrefix("BEAVER_HACKER_")}, opts...)...)
	cfg := &Config{}
	if err := config.Load(cfg, o); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Options converts the configuration into Hacker options.
func (c Config) Options() []Option {
	var opts []Option
	if c.Workers > 0 {
		opts = append(opts, WithWorkers(c.Workers))
	}
	return opts
}

// Level parses LogLevel, falling back to info.
func (c Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}
