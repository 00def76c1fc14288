// Package person provides the sender and receiver roles that run a configured cipher
// over a held message.
package person

import (
	"errors"

	"github.com/gobeaver/cipherkit/cipher"
)

// ErrNoCipher is returned when a role is operated without a cipher.
var ErrNoCipher = errors.New("person: no cipher configured")

// Person holds a cipher and an optional key label.
type Person struct {
	Key    string
	Cipher cipher.Cipher
}

// SetKey replaces the key label.
func (p *Person) SetKey(key string) { p.Key = key }

// GetKey returns the key label.
func (p *Person) GetKey() string { return p.Key }

// Check runs the cipher's self-test.
func (p *Person) Check() error {
	if p.Cipher == nil {
		return ErrNoCipher
	}
	return p.Cipher.Verify()
}

// Sender encodes its message.
type Sender struct {
	Person
	Text string
}

// NewSender returns a Sender holding c and text.
func NewSender(c cipher.Cipher, text string) *Sender {
	return &Sender{Person: Person{Cipher: c}, Text: text}
}

// Operate returns the ciphertext of the held message.
func (s *Sender) Operate() (string, error) {
	if s.Cipher == nil {
		return "", ErrNoCipher
	}
	return s.Cipher.Encode(s.Text)
}

// Receiver decodes its message.
type Receiver struct {
	Person
	Text string
}

// NewReceiver returns a Receiver holding c and text.
func NewReceiver(c cipher.Cipher, text string) *Receiver {
	return &Receiver{Person: Person{Cipher: c}, Text: text}
}

// Operate returns the plaintext of the held message.
func (r *Receiver) Operate() (string, error) {
	if r.Cipher == nil {
		return "", ErrNoCipher
	}
	return r.Cipher.Decode(r.Text)
}
