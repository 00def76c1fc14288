package cipher

import (
	"fmt"

	"github.com/gobeaver/cipherkit/alphabet"
	"github.com/gobeaver/cipherkit/config"
)

// Config holds cipher configuration
type Config struct {
	// Alphabet names a reference alphabet: "uppercase" or "printable"
	Alphabet string `env:"ALPHABET" envDefault:"printable"`

	// Family: identity, caesar, multiplication, affine, keyword
	Family string `env:"FAMILY" envDefault:"caesar"`

	// Key material. Which fields apply depends on Family.
	Shift      int    `env:"SHIFT" envDefault:"0"`
	Multiplier int    `env:"MULTIPLIER" envDefault:"1"`
	Keyword    string `env:"KEYWORD"`

	// Verify runs the self-test when the cipher is built
	Verify bool `env:"VERIFY" envDefault:"false"`
}

// GetConfig loads configuration from environment variables (prefix BEAVER_CIPHER_).
func GetConfig(opts ...config.Option) (*Config, error) {
	o := config.Apply(append([]config.Option{config.WithPrefix("BEAVER_CIPHER_")}, opts...)...)
	cfg := &Config{}
	if err := config.Load(cfg, o); err != nil {
		return nil, err
	}
	return cfg, nil
}

// New builds a cipher from configuration.
func New(cfg Config) (Cipher, error) {
	a, err := alphabet.Lookup(cfg.Alphabet)
	if err != nil {
		return nil, err
	}
	return NewWithAlphabet(a, cfg)
}

// NewWithAlphabet builds a cipher over an explicit alphabet, ignoring cfg.Alphabet.
func NewWithAlphabet(a *alphabet.Alphabet, cfg Config) (Cipher, error) {
	if a == nil {
		return nil, ErrNilAlphabet
	}
	family, err := ParseFamily(cfg.Family)
	if err != nil {
		return nil, err
	}

	var c Cipher
	switch family {
	case FamilyIdentity:
		c = NewIdentity(a)
	case FamilyCaesar:
		c = NewCaesar(a, cfg.Shift)
	case FamilyMultiplication:
		c = NewMultiplication(a, cfg.Multiplier)
	case FamilyAffine:
		c = NewAffine(a, cfg.Shift, cfg.Multiplier)
	case FamilyKeyword:
		c = NewKeyword(a, cfg.Keyword)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFamily, family)
	}

	if cfg.Verify {
		if err := c.Verify(); err != nil {
			return nil, err
		}
	}
	return c, nil
}
