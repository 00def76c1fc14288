package dictionary

import (
	"context"
	"fmt"

	"github.com/gobeaver/cipherkit/config"
	"github.com/gobeaver/cipherkit/corpus"
)

// Config selects where the word list comes from.
type Config struct {
	// Path of the word list inside the corpus source
	Path string `env:"PATH" envDefault:"english_words.txt"`

	// Query loads the list from SQL instead when set, e.g.
	// "SELECT word FROM words ORDER BY id"
	Query string `env:"QUERY"`
}

// GetConfig loads configuration from environment variables (prefix BEAVER_DICTIONARY_).
func GetConfig(opts ...config.Option) (*Config, error) {
	o := config.Apply(append([]config.Option{config.WithPrefix("BEAVER_DICTIONARY_")}, opts...)...)
	cfg := &Config{}
	if err := config.Load(cfg, o); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Open loads the dictionary described by cfg from the corpus source described by
// src. The source is closed before Open returns.
func Open(ctx context.Context, cfg Config, src corpus.Config) (*Dictionary, error) {
	s, err := corpus.New(src)
	if err != nil {
		return nil, fmt.Errorf("dictionary: %w", err)
	}
	defer s.Close()
	return Load(ctx, s, cfg.Path, src.MaxFileSize)
}
