package cache

import (
	"strings"
	"time"

	"github.com/gobeaver/cipherkit/config"
)

// Config holds cache configuration
type Config struct {
	// Driver specifies cache backend: "memory", "redis" or "none"
	Driver string `env:"DRIVER" envDefault:"memory"`

	// Redis specific settings
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"6379"`
	Password string `env:"PASSWORD"`
	Database int    `env:"DATABASE" envDefault:"0"`

	// Connection URL (overrides host/port/password)
	URL string `env:"URL"`

	// Connection pool settings
	MaxRetries   int `env:"MAX_RETRIES" envDefault:"3"`
	PoolSize     int `env:"POOL_SIZE" envDefault:"10"`
	MinIdleConns int `env:"MIN_IDLE_CONNS" envDefault:"2"`

	// TLS settings for Redis
	UseTLS   bool   `env:"USE_TLS" envDefault:"false"`
	CertFile string `env:"CERT_FILE"`
	KeyFile  string `env:"KEY_FILE"`

	// Memory cache specific
	MaxKeys         int    `env:"MAX_KEYS" envDefault:"10000"`
	DefaultTTL      string `env:"DEFAULT_TTL" envDefault:"1h"`
	CleanupInterval string `env:"CLEANUP_INTERVAL" envDefault:"1m"`

	// Common settings
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"cipherkit:"`
	Namespace string `env:"NAMESPACE"`
}

// GetConfig loads configuration from environment variables (prefix BEAVER_CACHE_).
func GetConfig(opts ...config.Option) (*Config, error) {
	o := config.Apply(append([]config.Option{config.WithPrefix("BEAVER_CACHE_")}, opts...)...)
	cfg := &Config{}
	if err := config.Load(cfg, o); err != nil {
		return nil, err
	}

	// Normalize driver
	cfg.Driver = strings.ToLower(cfg.Driver)

	return cfg, nil
}

// ParsedDefaultTTL returns the default TTL as a time.Duration
func (c Config) ParsedDefaultTTL() time.Duration {
	if d, err := time.ParseDuration(c.DefaultTTL); err == nil {
		return d
	}
	return 0
}

// ParsedCleanupInterval returns the cleanup interval as a time.Duration
func (c Config) ParsedCleanupInterval() time.Duration {
	if d, err := time.ParseDuration(c.CleanupInterval); err == nil && d > 0 {
		return d
	}
	return time.Minute
}

// prefix combines namespace and key prefix
func (c Config) prefix() string {
	if c.Namespace == "" {
		return c.KeyPrefix
	}
	return c.Namespace + ":" + c.KeyPrefix
}
