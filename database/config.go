// database/config.go
package database

import (
	"strings"

	"github.com/gobeaver/cipherkit/config"
)

// Config holds database configuration
type Config struct {
	// Driver: postgres, mysql, sqlite, turso, libsql
	Driver string `env:"DRIVER" envDefault:"sqlite"`

	// Connection details (for traditional databases)
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT"`
	Database string `env:"DATABASE" envDefault:"cipherkit.db"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`

	// URL for direct connection string (overrides individual settings).
	// The scheme selects the driver when Driver is left empty.
	URL string `env:"URL"`

	// Auth token for Turso/LibSQL
	AuthToken string `env:"AUTH_TOKEN"`

	// SSL/TLS Configuration
	SSLMode string `env:"SSL_MODE" envDefault:"disable"` // For PostgreSQL

	// Connection Pool Settings
	MaxOpenConns    int `env:"MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int `env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime int `env:"CONN_MAX_LIFETIME" envDefault:"300"` // seconds
	ConnMaxIdleTime int `env:"CONN_MAX_IDLE_TIME" envDefault:"60"` // seconds

	// Additional driver-specific parameters
	Params string `env:"PARAMS"`

	// Debug mode
	Debug bool `env:"DEBUG" envDefault:"false"`

	// ORM Support (optional)
	UseORM        string `env:"ORM"`                                 // "gorm" or empty
	DisableORMLog bool   `env:"DISABLE_ORM_LOG" envDefault:"true"` // Only applies when UseORM is set

	// AutoMigrate lets the attempt journal create its table on open
	AutoMigrate bool `env:"AUTO_MIGRATE" envDefault:"true"`
}

// GetConfig loads configuration from environment variables (prefix BEAVER_DB_)
func GetConfig(opts ...config.Option) (*Config, error) {
	o := config.Apply(append([]config.Option{config.WithPrefix("BEAVER_DB_")}, opts...)...)
	cfg := &Config{}
	if err := config.Load(cfg, o); err != nil {
		return nil, err
	}
	cfg.Driver = strings.ToLower(cfg.Driver)
	return cfg, nil
}
