package person

import (
	"errors"
	"testing"

	"github.com/gobeaver/cipherkit/alphabet"
	"github.com/gobeaver/cipherkit/cipher"
	"github.com/gobeaver/cipherkit/krypto"
)

func TestSenderReceiver(t *testing.T) {
	p := alphabet.Printable()
	const msg = "This is a sentence."
	for _, c := range []cipher.Cipher{
		cipher.NewCaesar(p, 23),
		cipher.NewMultiplication(p, 3),
		cipher.NewAffine(p, 2, 3),
		cipher.NewKeyword(p, "aahed"),
	} {
		t.Run(c.Name(), func(t *testing.T) {
			s := NewSender(c, msg)
			enc, err := s.Operate()
			if err != nil {
				t.Fatalf("Sender.Operate() error = %v", err)
			}
			if enc == msg {
				t.Errorf("Sender.Operate() did not transform the message")
			}
			r := NewReceiver(c, enc)
			dec, err := r.Operate()
			if err != nil {
				t.Fatalf("Receiver.Operate() error = %v", err)
			}
			if dec != msg {
				t.Errorf("Receiver.Operate() = %q, want %q", dec, msg)
			}
			if s.Text != msg || r.Text != enc {
				t.Errorf("roles mutated their held message")
			}
		})
	}
}

func TestReceiverSurfacesErrors(t *testing.T) {
	r := NewReceiver(cipher.NewMultiplication(alphabet.Uppercase(), 2), "ABC")
	out, err := r.Operate()
	if !errors.Is(err, krypto.ErrNotInvertible) || out != "" {
		t.Errorf("Operate() = %q, %v", out, err)
	}
}

func TestPerson(t *testing.T) {
	var s Sender
	if _, err := s.Operate(); !errors.Is(err, ErrNoCipher) {
		t.Errorf("Operate() without cipher error = %v", err)
	}
	if err := s.Check(); !errors.Is(err, ErrNoCipher) {
		t.Errorf("Check() without cipher error = %v", err)
	}

	s.Cipher = cipher.NewCaesar(alphabet.Uppercase(), 4)
	s.SetKey("k-4")
	if s.GetKey() != "k-4" {
		t.Errorf("GetKey() = %q", s.GetKey())
	}
	if err := s.Check(); err != nil {
		t.Errorf("Check() error = %v", err)
	}
}
