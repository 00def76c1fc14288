package cipher

import "github.com/gobeaver/cipherkit/alphabet"

// Identity leaves text unchanged apart from enforcing the alphabet's symbol policy.
type Identity struct {
	base
}

// NewIdentity returns the identity cipher over a.
func NewIdentity(a *alphabet.Alphabet) *Identity {
	return &Identity{base: newBase(a)}
}

func (c *Identity) Encode(text string) (string, error) {
	return c.alpha.Map(text, func(_, i int) (int, error) { return i, nil })
}

func (c *Identity) Decode(text string) (string, error) {
	return c.Encode(text)
}

func (c *Identity) Verify() error  { return verify(c) }
func (c *Identity) Name() string   { return "Identity" }
func (c *Identity) Family() Family { return FamilyIdentity }
