package cipher

import (
	"fmt"

	"github.com/gobeaver/cipherkit/alphabet"
	"github.com/gobeaver/cipherkit/krypto"
)

// Multiplication multiplies every symbol index by a fixed multiplier modulo N.
// Decoding requires the multiplier to be coprime to N.
type Multiplication struct {
	base
	multiplier int
}

// NewMultiplication returns a Multiplication cipher. The multiplier is not validated
// here; Decode reports krypto.ErrNotInvertible for a multiplier sharing a factor with N.
func NewMultiplication(a *alphabet.Alphabet, multiplier int) *Multiplication {
	return &Multiplication{base: newBase(a), multiplier: krypto.Mod(multiplier, a.Size())}
}

// Multiplier returns the normalized multiplier.
func (c *Multiplication) Multiplier() int { return c.multiplier }

// Inverse returns the multiplicative inverse of the multiplier modulo N.
func (c *Multiplication) Inverse() (int, error) {
	inv, err := krypto.ModularInverse(c.multiplier, c.alpha.Size())
	if err != nil {
		return 0, fmt.Errorf("multiplication cipher: multiplier %d: %w", c.multiplier, err)
	}
	return inv, nil
}

func (c *Multiplication) Encode(text string) (string, error) {
	return c.alpha.Map(text, func(_, i int) (int, error) { return i * c.multiplier, nil })
}

func (c *Multiplication) Decode(text string) (string, error) {
	inv, err := c.Inverse()
	if err != nil {
		return "", err
	}
	return c.alpha.Map(text, func(_, i int) (int, error) { return i * inv, nil })
}

func (c *Multiplication) Verify() error  { return verify(c) }
func (c *Multiplication) Name() string   { return "Multiplication" }
func (c *Multiplication) Family() Family { return FamilyMultiplication }
