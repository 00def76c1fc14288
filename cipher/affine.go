package cipher

import (
	"github.com/gobeaver/cipherkit/alphabet"
)

// Affine composes a Caesar shift and a Multiplication.
//
// Encode shifts first and multiplies second: c = (p + shift) * multiplier mod N.
// Decode undoes them in reverse: p = c * multiplier⁻¹ - shift mod N.
type Affine struct {
	base
	caesar *Caesar
	mult   *Multiplication
}

// NewAffine returns an Affine cipher with the given shift and multiplier.
func NewAffine(a *alphabet.Alphabet, shift, multiplier int) *Affine {
	return &Affine{
		base:   newBase(a),
		caesar: NewCaesar(a, shift),
		mult:   NewMultiplication(a, multiplier),
	}
}

// Shift returns the normalized shift.
func (c *Affine) Shift() int { return c.caesar.Shift() }

// Multiplier returns the normalized multiplier.
func (c *Affine) Multiplier() int { return c.mult.Multiplier() }

func (c *Affine) Encode(text string) (string, error) {
	shift, mult := c.caesar.Shift(), c.mult.Multiplier()
	return c.alpha.Map(text, func(_, i int) (int, error) { return (i + shift) * mult, nil })
}

func (c *Affine) Decode(text string) (string, error) {
	inv, err := c.mult.Inverse()
	if err != nil {
		return "", err
	}
	shift := c.caesar.Shift()
	return c.alpha.Map(text, func(_, i int) (int, error) { return i*inv - shift, nil })
}

func (c *Affine) Verify() error  { return verify(c) }
func (c *Affine) Name() string   { return "Affine" }
func (c *Affine) Family() Family { return FamilyAffine }
