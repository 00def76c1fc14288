package cipher

import (
	"github.com/gobeaver/cipherkit/alphabet"
	"github.com/gobeaver/cipherkit/krypto"
)

// Caesar shifts every symbol index by a fixed amount modulo N.
type Caesar struct {
	base
	shift int
}

// NewCaesar returns a Caesar cipher. Any integer shift is valid; it is normalized
// into [0, N).
func NewCaesar(a *alphabet.Alphabet, shift int) *Caesar {
	return &Caesar{base: newBase(a), shift: krypto.Mod(shift, a.Size())}
}

// Shift returns the normalized shift.
func (c *Caesar) Shift() int { return c.shift }

func (c *Caesar) Encode(text string) (string, error) {
	return c.alpha.Map(text, func(_, i int) (int, error) { return i + c.shift, nil })
}

func (c *Caesar) Decode(text string) (string, error) {
	return c.alpha.Map(text, func(_, i int) (int, error) { return i - c.shift, nil })
}

func (c *Caesar) Verify() error  { return verify(c) }
func (c *Caesar) Name() string   { return "Caesar" }
func (c *Caesar) Family() Family { return FamilyCaesar }
