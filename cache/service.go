package cache

import (
	"errors"

	"github.com/gobeaver/cipherkit/cache/driver/memory"
	"github.com/gobeaver/cipherkit/cache/driver/redis"
	"github.com/gobeaver/cipherkit/config"
)

// Common errors
var (
	ErrInvalidDriver = errors.New("invalid cache driver")
	// ErrKeyNotFound is returned by every driver for a missing or expired key.
	ErrKeyNotFound = memory.ErrKeyNotFound
)

// IsNotFound reports whether err means the key is absent, whichever driver produced it.
func IsNotFound(err error) bool {
	return errors.Is(err, memory.ErrKeyNotFound) || errors.Is(err, redis.ErrKeyNotFound)
}

// New creates a cache instance for the configured driver. The "none" driver returns
// a nil Cache, which callers treat as caching disabled.
func New(cfg Config) (Cache, error) {
	switch cfg.Driver {
	case "", "memory", "builtin":
		return memoryRegister(cfg)
	case "redis":
		return redisRegister(cfg)
	case "none", "off", "disabled":
		return nil, nil
	default:
		return nil, ErrInvalidDriver
	}
}

// NewFromEnv creates a cache instance from environment variables
func NewFromEnv(opts ...config.Option) (Cache, error) {
	cfg, err := GetConfig(opts...)
	if err != nil {
		return nil, err
	}
	return New(*cfg)
}
