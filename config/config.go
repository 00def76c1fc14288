package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultPrefix is prepended to every variable name unless LoadOptions says otherwise.
const DefaultPrefix = "BEAVER_"

// ErrNotStructPointer is returned when Load is given anything but a pointer to a struct.
var ErrNotStructPointer = errors.New("config: target must be a non-nil pointer to a struct")

// LoadOptions defines options for loading configuration from environment variables.
type LoadOptions struct {
	Prefix   string   // Prefix to prepend to environment variable names (default: "BEAVER_")
	Debug    bool     // Print every resolved variable
	EnvFiles []string // .env files to read before the environment (default: ".env")
}

// Option mutates LoadOptions. Package-level GetConfig helpers accept these.
type Option func(*LoadOptions)

// WithPrefix sets the variable name prefix.
func WithPrefix(prefix string) Option {
	return func(o *LoadOptions) { o.Prefix = prefix }
}

// WithDebug enables printing of resolved variables.
func WithDebug() Option {
	return func(o *LoadOptions) { o.Debug = true }
}

// WithEnvFiles replaces the default .env file list.
func WithEnvFiles(files ...string) Option {
	return func(o *LoadOptions) { o.EnvFiles = files }
}

// Apply folds opts into a LoadOptions value starting from the defaults.
func Apply(opts ...Option) LoadOptions {
	o := LoadOptions{Prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Load populates a struct from .env files and environment variables using reflection.
//
// The function uses struct field tags to determine environment variable names:
//   - `env:"VAR_NAME"`: Maps the field to the specified environment variable
//   - `envDefault:"value"`: Value used when the variable is unset or empty
//   - `envSeparator:"|"`: Separator for []string fields (default ",")
//
// Variable names are prefixed with LoadOptions.Prefix. Values already present in the
// process environment win over .env files; a missing .env file is not an error.
//
// Example:
//
//	type Config struct {
//	    Alphabet string `env:"ALPHABET" envDefault:"printable"`
//	    Workers  int    `env:"WORKERS" envDefault:"4"`
//	}
//
//	var cfg Config
//	err := config.Load(&cfg, config.LoadOptions{Prefix: "CIPHERKIT_"})
//	// Will look for CIPHERKIT_ALPHABET, CIPHERKIT_WORKERS
func Load(cfg interface{}, opts ...LoadOptions) error {
	options := LoadOptions{Prefix: DefaultPrefix}
	if len(opts) > 0 {
		options = opts[0]
	}

	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}

	files := options.EnvFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		// Silently skip missing files
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("config: reading %s: %w", f, err)
		}
	}

	printDebug := options.Debug || os.Getenv(DefaultPrefix+"CONFIG_DEBUG") == "true"
	return loadStruct(v.Elem(), options.Prefix, printDebug)
}

func loadStruct(v reflect.Value, prefix string, debug bool) error {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		envTag := field.Tag.Get("env")
		if envTag == "" {
			continue
		}

		// Legacy form: env:"NAME,default:value"
		parts := strings.Split(envTag, ",")
		envName := parts[0]
		defaultValue, hasDefault := field.Tag.Lookup("envDefault")
		for _, part := range parts[1:] {
			if strings.HasPrefix(part, "default:") && !hasDefault {
				defaultValue = strings.TrimPrefix(part, "default:")
			}
		}

		fullEnvName := prefix + envName
		value := os.Getenv(fullEnvName)
		if value == "" {
			value = defaultValue
		}
		if debug {
			fmt.Printf("[BEAVER] %s=%s\n", fullEnvName, value)
		}
		if value == "" {
			continue
		}

		sep := field.Tag.Get("envSeparator")
		if sep == "" {
			sep = ","
		}
		if err := setFieldValue(v.Field(i), value, sep); err != nil {
			return fmt.Errorf("config: %s: %w", fullEnvName, err)
		}
	}
	return nil
}

// setFieldValue converts the string value into the field's type.
// Unsupported kinds are skipped silently.
func setFieldValue(field reflect.Value, value, sep string) error {
	if field.Type() == reflect.TypeOf(time.Duration(0)) {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return nil
		}
		items := strings.Split(value, sep)
		out := make([]string, 0, len(items))
		for _, item := range items {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		field.Set(reflect.ValueOf(out))
	}
	return nil
}
