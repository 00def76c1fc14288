// Package cipher implements the classical substitution ciphers: Identity, Caesar,
// Multiplication, Affine and Keyword (a Vigenère-style polyalphabetic shift).
//
// Every cipher is bound to an *alphabet.Alphabet, is immutable after construction and
// is cheap to build, so callers can create one per trial key. For every valid key
// Decode(Encode(m)) == m for all messages m drawn from the alphabet.
package cipher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobeaver/cipherkit/alphabet"
)

// Common errors
var (
	ErrVerifyFailed  = errors.New("cipher self-test failed")
	ErrEmptyKeyword  = errors.New("keyword must not be empty")
	ErrUnknownFamily = errors.New("unknown cipher family")
	ErrNilAlphabet   = errors.New("alphabet is required")
)

// VerifyProbe is the message round-tripped by Verify.
const VerifyProbe = "CODE"

// Family tags a cipher variant.
type Family int

const (
	FamilyIdentity Family = iota
	FamilyCaesar
	FamilyMultiplication
	FamilyAffine
	FamilyKeyword
)

func (f Family) String() string {
	switch f {
	case FamilyIdentity:
		return "identity"
	case FamilyCaesar:
		return "caesar"
	case FamilyMultiplication:
		return "multiplication"
	case FamilyAffine:
		return "affine"
	case FamilyKeyword:
		return "keyword"
	default:
		return fmt.Sprintf("family(%d)", int(f))
	}
}

// MarshalText encodes the family by name.
func (f Family) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText accepts any name ParseFamily does.
func (f *Family) UnmarshalText(text []byte) error {
	v, err := ParseFamily(string(text))
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// ParseFamily maps a configuration name to a Family. "unbreakable" and "vigenere" are
// accepted as names of the keyword cipher.
func ParseFamily(name string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "identity", "none":
		return FamilyIdentity, nil
	case "caesar", "shift":
		return FamilyCaesar, nil
	case "multiplication", "multiplicative":
		return FamilyMultiplication, nil
	case "affine":
		return FamilyAffine, nil
	case "keyword", "unbreakable", "vigenere":
		return FamilyKeyword, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}
}

// Cipher is the closed set of cipher variants defined in this package.
type Cipher interface {
	// Encode maps plaintext to ciphertext.
	Encode(text string) (string, error)
	// Decode maps ciphertext back to plaintext.
	Decode(text string) (string, error)
	// Verify round-trips VerifyProbe and reports ErrVerifyFailed on mismatch.
	Verify() error
	// Name returns a display name such as "Caesar".
	Name() string
	// Family returns the variant tag.
	Family() Family
	// Alphabet returns the alphabet the cipher operates over.
	Alphabet() *alphabet.Alphabet

	sealed()
}

// base carries the alphabet shared by every variant.
type base struct {
	alpha *alphabet.Alphabet
}

func (b base) Alphabet() *alphabet.Alphabet { return b.alpha }

func (base) sealed() {}

func newBase(a *alphabet.Alphabet) base {
	if a == nil {
		panic(ErrNilAlphabet)
	}
	return base{alpha: a}
}

// verify implements Verify for all variants.
func verify(c Cipher) error {
	encoded, err := c.Encode(VerifyProbe)
	if err != nil {
		return fmt.Errorf("%s: %w: encode: %w", c.Name(), ErrVerifyFailed, err)
	}
	decoded, err := c.Decode(encoded)
	if err != nil {
		return fmt.Errorf("%s: %w: decode: %w", c.Name(), ErrVerifyFailed, err)
	}
	if decoded != VerifyProbe {
		return fmt.Errorf("%s: %w: got %q, want %q", c.Name(), ErrVerifyFailed, decoded, VerifyProbe)
	}
	return nil
}
