// Package config loads struct-based configuration from environment variables and
// optional .env files.
//
// # Basic Usage
//
// Define a configuration struct with environment variable tags:
//
//	type Config struct {
//	    Alphabet string        `env:"ALPHABET" envDefault:"printable"`
//	    Workers  int           `env:"WORKERS" envDefault:"4"`
//	    Timeout  time.Duration `env:"TIMEOUT" envDefault:"30s"`
//	    Sources  []string      `env:"SOURCES" envSeparator:"|"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// # Prefixes
//
// Every variable name is prefixed, "BEAVER_" by default. Packages in this module pick
// their own prefix in GetConfig, for example BEAVER_CIPHER_ or BEAVER_HACKER_, and accept
// config.WithPrefix to override it:
//
//	cfg, err := cipher.GetConfig(config.WithPrefix("DEMO_CIPHER_"))
//
// # Supported Types
//
//   - string
//   - int, int8, int16, int32, int64 and the unsigned variants
//   - float32, float64
//   - bool ("true", "false", "1", "0", ...)
//   - time.Duration ("1h30m", "45s", ...)
//   - []string (comma-separated unless envSeparator says otherwise)
//
// # Environment Files
//
// .env files are read with github.com/joho/godotenv before the environment is
// consulted. Variables already set in the process environment are never overwritten.
//
// # Debug Mode
//
// Set BEAVER_CONFIG_DEBUG=true or LoadOptions.Debug to print every resolved variable.
package config
