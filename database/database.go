// Package database opens SQL connections for dictionary word tables and the attempt
// journal. It uses pure Go database drivers to ensure CGO-free builds, enabling easy
// cross-compilation and deployment across different platforms.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	// Database drivers - pure Go implementations for CGO-free builds
	_ "github.com/go-sql-driver/mysql"                   // MySQL - already pure Go
	_ "github.com/jackc/pgx/v5/stdlib"                   // PostgreSQL - pure Go, performant
	_ "github.com/tursodatabase/libsql-client-go/libsql" // LibSQL/Turso - pure Go
	_ "modernc.org/sqlite"                               // SQLite - pure Go alternative to go-sqlite3

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Common errors
var (
	ErrInvalidDriver  = errors.New("invalid database driver")
	ErrInvalidConfig  = errors.New("invalid database configuration")
	ErrGORMNotEnabled = errors.New("GORM not enabled - set BEAVER_DB_ORM=gorm")
)

// Database wraps both sql.DB and gorm.DB providing unified access
type Database struct {
	sqlDB  *sql.DB
	gormDB *gorm.DB
}

// Open connects with cfg and, when cfg.UseORM asks for it, layers GORM on the same pool.
func Open(cfg Config) (*Database, error) {
	sqlDB, err := NewSQL(cfg)
	if err != nil {
		return nil, err
	}
	db := &Database{sqlDB: sqlDB}
	if shouldInitGORM(&cfg) {
		db.gormDB, err = NewGORM(cfg, sqlDB)
		if err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to initialize GORM: %w", err)
		}
	}
	return db, nil
}

// OpenFromEnv opens a database configured by BEAVER_DB_* variables.
func OpenFromEnv() (*Database, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	return Open(*cfg)
}

// SQL returns the underlying sql.DB instance
func (db *Database) SQL() *sql.DB {
	return db.sqlDB
}

// GORM returns the GORM instance or error if not enabled
func (db *Database) GORM() (*gorm.DB, error) {
	if db.gormDB == nil {
		return nil, ErrGORMNotEnabled
	}
	return db.gormDB, nil
}

// Close closes the database connection
func (db *Database) Close() error {
	if db.sqlDB != nil {
		return db.sqlDB.Close()
	}
	return nil
}

// PingContext verifies the database connection is alive with context
func (db *Database) PingContext(ctx context.Context) error {
	return db.sqlDB.PingContext(ctx)
}

// Stats returns connection pool statistics
func (db *Database) Stats() sql.DBStats {
	return db.sqlDB.Stats()
}

// NewSQL creates a new SQL database connection with given config
func NewSQL(cfg Config) (*sql.DB, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	driverName, dsn, err := resolveDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Second)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// NewGORM creates a GORM instance from an existing SQL connection
func NewGORM(cfg Config, sqlDB *sql.DB) (*gorm.DB, error) {
	if sqlDB == nil {
		return nil, fmt.Errorf("sql.DB instance is required for GORM")
	}

	driver := cfg.Driver
	if driver == "" && cfg.URL != "" {
		driver, _ = parseURLForDriver(cfg.URL)
	}

	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.New(mysql.Config{Conn: sqlDB})
	case "postgres", "postgresql", "pgx":
		dialector = postgres.New(postgres.Config{Conn: sqlDB})
	case "sqlite", "sqlite3", "libsql", "turso":
		dialector = sqlite.Dialector{Conn: sqlDB}
	default:
		return nil, fmt.Errorf("%w: unsupported driver for GORM: %s", ErrInvalidDriver, driver)
	}

	gormCfg := &gorm.Config{}
	if cfg.Debug && !cfg.DisableORMLog {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	} else {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	return gorm.Open(dialector, gormCfg)
}

// Helper functions

func shouldInitGORM(cfg *Config) bool {
	return cfg.UseORM == "gorm" || strings.ToLower(cfg.UseORM) == "true"
}

func resolveDSN(cfg Config) (driverName, dsn string, err error) {
	if cfg.Driver == "" && cfg.URL != "" {
		driverName, dsn = parseURLForDriver(cfg.URL)
		if driverName == "" {
			return "", "", fmt.Errorf("%w: cannot infer driver from URL", ErrInvalidDriver)
		}
		return driverName, dsn, nil
	}

	switch cfg.Driver {
	case "mysql":
		return "mysql", buildMySQLDSN(cfg), nil

	case "postgres", "postgresql":
		return "pgx", buildPostgresDSN(cfg), nil

	case "sqlite", "sqlite3":
		dsn = cfg.Database
		if cfg.URL != "" {
			_, dsn = parseURLForDriver(cfg.URL)
		}
		if dsn == "" {
			dsn = "file:cipherkit.db?cache=shared&mode=rwc"
		}
		return "sqlite", dsn, nil

	case "libsql", "turso":
		dsn = cfg.URL
		if cfg.AuthToken != "" {
			dsn = fmt.Sprintf("%s?authToken=%s", cfg.URL, url.QueryEscape(cfg.AuthToken))
		}
		return "libsql", dsn, nil

	default:
		return "", "", fmt.Errorf("%w: %s", ErrInvalidDriver, cfg.Driver)
	}
}

// parseURLForDriver maps a connection URL to a database/sql driver name and the DSN
// that driver expects. An unrecognized scheme returns an empty driver.
func parseURLForDriver(raw string) (driver, dsn string) {
	switch {
	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		return "pgx", raw

	case strings.HasPrefix(raw, "mysql://"):
		u, err := url.Parse(raw)
		if err != nil {
			return "mysql", strings.TrimPrefix(raw, "mysql://")
		}
		host := u.Host
		if u.Port() == "" {
			host += ":3306"
		}
		var userinfo string
		if u.User != nil {
			userinfo = u.User.Username()
			if pw, ok := u.User.Password(); ok {
				userinfo += ":" + pw
			}
			userinfo += "@"
		}
		dsn = fmt.Sprintf("%stcp(%s)/%s", userinfo, host, strings.TrimPrefix(u.Path, "/"))
		if u.RawQuery != "" {
			dsn += "?" + u.RawQuery
		}
		return "mysql", dsn

	case strings.HasPrefix(raw, "sqlite://"):
		return "sqlite", strings.TrimPrefix(raw, "sqlite://")

	case strings.HasPrefix(raw, "file:"):
		return "sqlite", raw

	// https:// is too broad to imply libsql; set the driver explicitly for it.
	case strings.HasPrefix(raw, "libsql://"):
		return "libsql", raw
	}
	return "", raw
}

func validateConfig(cfg Config) error {
	driver := cfg.Driver
	if driver == "" {
		if cfg.URL == "" {
			return errors.New("database driver required")
		}
		return nil
	}

	switch driver {
	case "libsql", "turso":
		// For turso/libsql, URL is required
		if cfg.URL == "" {
			return errors.New("turso requires URL to be set")
		}
	case "sqlite", "sqlite3":
	default:
		if cfg.URL == "" && (cfg.Host == "" || cfg.Database == "") {
			return errors.New("database connection details required")
		}
	}
	return nil
}

func buildMySQLDSN(cfg Config) string {
	if cfg.URL != "" {
		if _, dsn := parseURLForDriver(cfg.URL); strings.HasPrefix(cfg.URL, "mysql://") {
			return dsn
		}
		return cfg.URL
	}

	port := cfg.Port
	if port == "" {
		port = "3306"
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s",
		cfg.Username, cfg.Password, cfg.Host, port, cfg.Database)

	params := []string{
		"charset=utf8mb4",
		"parseTime=True",
		"loc=Local",
	}
	if cfg.Params != "" {
		params = append(params, cfg.Params)
	}

	return dsn + "?" + strings.Join(params, "&")
}

func buildPostgresDSN(cfg Config) string {
	if cfg.URL != "" {
		return cfg.URL
	}

	port := cfg.Port
	if port == "" {
		port = "5432"
	}

	parts := []string{
		fmt.Sprintf("host=%s", cfg.Host),
		fmt.Sprintf("port=%s", port),
		fmt.Sprintf("user=%s", cfg.Username),
		fmt.Sprintf("password=%s", cfg.Password),
		fmt.Sprintf("dbname=%s", cfg.Database),
		fmt.Sprintf("sslmode=%s", cfg.SSLMode),
	}
	if cfg.Params != "" {
		parts = append(parts, cfg.Params)
	}

	return strings.Join(parts, " ")
}
