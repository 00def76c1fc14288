package cipher

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gobeaver/cipherkit/alphabet"
	"github.com/gobeaver/cipherkit/krypto"
)

func allCiphers(a *alphabet.Alphabet) []Cipher {
	var out []Cipher
	out = append(out, NewIdentity(a))
	for _, s := range []int{0, 1, 5, a.Size() - 1, -3, 2*a.Size() + 7} {
		out = append(out, NewCaesar(a, s))
	}
	for m := 1; m < a.Size(); m++ {
		if krypto.Invertible(m, a.Size()) {
			out = append(out, NewMultiplication(a, m))
			out = append(out, NewAffine(a, m+3, m))
		}
	}
	for _, kw := range []string{"K", "KEY", "CIPHERTEXTLONGERTHANMESSAGE"} {
		out = append(out, NewKeyword(a, kw))
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	messages := map[*alphabet.Alphabet][]string{
		alphabet.Uppercase(): {"", "A", "Z", "THIS IS A TEST", "ATTACK AT DAWN"},
		alphabet.Printable(): {"", " ", "~", "This is a sentence.", `{"json": [1, 2]} \ ok`},
	}
	for a, msgs := range messages {
		for _, c := range allCiphers(a) {
			for _, m := range msgs {
				name := fmt.Sprintf("%s/%s/%s/%q", a.Name(), c.Name(), describe(c), m)
				t.Run(name, func(t *testing.T) {
					enc, err := c.Encode(m)
					if err != nil {
						t.Fatalf("Encode() error = %v", err)
					}
					if len([]rune(enc)) != len([]rune(m)) {
						t.Errorf("Encode() changed length: %q -> %q", m, enc)
					}
					dec, err := c.Decode(enc)
					if err != nil {
						t.Fatalf("Decode() error = %v", err)
					}
					if dec != m {
						t.Errorf("Decode(Encode(%q)) = %q", m, dec)
					}
				})
			}
		}
	}
}

func describe(c Cipher) string {
	switch v := c.(type) {
	case *Caesar:
		return fmt.Sprintf("s=%d", v.Shift())
	case *Multiplication:
		return fmt.Sprintf("m=%d", v.Multiplier())
	case *Affine:
		return fmt.Sprintf("s=%d,m=%d", v.Shift(), v.Multiplier())
	case *Keyword:
		return v.Keyword()
	default:
		return "-"
	}
}

func TestVerify(t *testing.T) {
	p := alphabet.Printable()
	for _, c := range []Cipher{
		NewIdentity(p),
		NewCaesar(p, 23),
		NewMultiplication(p, 23),
		NewAffine(p, 2, 23),
		NewKeyword(p, "PIZZA"),
	} {
		if err := c.Verify(); err != nil {
			t.Errorf("%s.Verify() error = %v", c.Name(), err)
		}
	}
}

func TestVerifyFailures(t *testing.T) {
	u := alphabet.Uppercase()
	tests := []struct {
		name  string
		c     Cipher
		cause error
	}{
		{"non-invertible multiplier", NewMultiplication(u, 2), krypto.ErrNotInvertible},
		{"non-invertible affine", NewAffine(u, 1, 13), krypto.ErrNotInvertible},
		{"empty keyword", NewKeyword(u, ""), ErrEmptyKeyword},
		{"keyword outside alphabet", NewKeyword(u, "pizza"), alphabet.ErrSymbolNotFound},
		{"probe outside alphabet", NewCaesar(alphabet.MustNew("bin", []rune("01")), 1), alphabet.ErrSymbolNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Verify()
			if !errors.Is(err, ErrVerifyFailed) {
				t.Fatalf("Verify() error = %v, want ErrVerifyFailed", err)
			}
			if !errors.Is(err, tt.cause) {
				t.Errorf("Verify() error = %v, want cause %v", err, tt.cause)
			}
		})
	}
}

func TestCaesarKnownValues(t *testing.T) {
	u := alphabet.Uppercase()
	got, err := NewCaesar(u, 3).Encode("HELLO WORLD")
	if err != nil || got != "KHOOR ZRUOG" {
		t.Errorf("Encode() = %q, %v", got, err)
	}
	got, err = NewCaesar(u, -1).Encode("A")
	if err != nil || got != "Z" {
		t.Errorf("negative shift Encode(A) = %q, %v", got, err)
	}
}

func TestCaesarGroupAction(t *testing.T) {
	u := alphabet.Uppercase()
	const msg = "THE QUICK BROWN FOX"
	for s1 := -30; s1 <= 30; s1 += 7 {
		for s2 := 0; s2 < 26; s2 += 5 {
			inner, err := NewCaesar(u, s2).Encode(msg)
			if err != nil {
				t.Fatal(err)
			}
			twice, err := NewCaesar(u, s1).Encode(inner)
			if err != nil {
				t.Fatal(err)
			}
			once, err := NewCaesar(u, krypto.Mod(s1+s2, 26)).Encode(msg)
			if err != nil {
				t.Fatal(err)
			}
			if twice != once {
				t.Errorf("Caesar(%d)∘Caesar(%d) = %q, Caesar(%d) = %q", s1, s2, twice, s1+s2, once)
			}
		}
	}
}

func TestMultiplicationNotInvertible(t *testing.T) {
	u := alphabet.Uppercase()
	for _, m := range []int{0, 2, 4, 13, 26} {
		c := NewMultiplication(u, m)
		enc, err := c.Encode("HELLO")
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}
		dec, err := c.Decode(enc)
		if !errors.Is(err, krypto.ErrNotInvertible) {
			t.Errorf("m=%d: Decode() error = %v, want ErrNotInvertible", m, err)
		}
		if dec != "" {
			t.Errorf("m=%d: Decode() returned partial output %q", m, dec)
		}
	}
}

func TestMultiplicationKnownValues(t *testing.T) {
	u := alphabet.Uppercase()
	// B=1 -> 3 = D, C=2 -> 6 = G, Z=25 -> 75 mod 26 = 23 = X
	got, err := NewMultiplication(u, 3).Encode("ABCZ")
	if err != nil || got != "ADGX" {
		t.Errorf("Encode() = %q, %v", got, err)
	}
}

func TestAffineCompositionOrder(t *testing.T) {
	u := alphabet.Uppercase()
	c := NewAffine(u, 2, 3)

	// B=1: (1+2)*3 = 9 = J. The opposite order would give 1*3+2 = 5 = F.
	got, err := c.Encode("B")
	if err != nil {
		t.Fatal(err)
	}
	if got != "J" {
		t.Fatalf("Affine(2,3).Encode(B) = %q, want J", got)
	}

	const msg = "AFFINE CIPHERS COMPOSE"
	shifted, _ := NewCaesar(u, 2).Encode(msg)
	want, _ := NewMultiplication(u, 3).Encode(shifted)
	enc, err := c.Encode(msg)
	if err != nil || enc != want {
		t.Errorf("Encode() = %q, %v; want Multiplication(Caesar(m)) = %q", enc, err, want)
	}

	unmult, _ := NewMultiplication(u, 3).Decode(enc)
	wantPlain, _ := NewCaesar(u, 2).Decode(unmult)
	dec, err := c.Decode(enc)
	if err != nil || dec != wantPlain || dec != msg {
		t.Errorf("Decode() = %q, %v; want %q", dec, err, msg)
	}
}

func TestKeywordCycling(t *testing.T) {
	u := alphabet.Uppercase()
	c := NewKeyword(u, "KEY")
	got, err := c.KeyStream(7)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{10, 4, 24, 10, 4, 24, 10} // K E Y K E Y K
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("KeyStream(7) = %v, want %v", got, want)
		}
	}
	if s := CycleKeyword("KEY", 7); s != "KEYKEYK" {
		t.Errorf("CycleKeyword() = %q", s)
	}
	if s := CycleKeyword("KEY", 0); s != "" {
		t.Errorf("CycleKeyword(n=0) = %q", s)
	}

	enc, err := c.Encode("AAAAAAA")
	if err != nil || enc != "KEYKEYK" {
		t.Errorf("Encode(AAAAAAA) = %q, %v", enc, err)
	}
}

func TestKeywordDegenerates(t *testing.T) {
	u := alphabet.Uppercase()
	const msg = "SINGLE LETTER KEYS"

	single, err := NewKeyword(u, "F").Encode(msg)
	if err != nil {
		t.Fatal(err)
	}
	caesar, _ := NewCaesar(u, 5).Encode(msg)
	if single != caesar {
		t.Errorf("Keyword(F) = %q, Caesar(5) = %q", single, caesar)
	}

	long := NewKeyword(u, "AVERYLONGKEYWORDINDEED")
	enc, err := long.Encode("HI")
	if err != nil {
		t.Fatal(err)
	}
	if enc != "HD" {
		t.Errorf("Encode(HI) with long keyword = %q, want HD", enc)
	}
}

func TestKeywordSeparatorsConsumeKey(t *testing.T) {
	u := alphabet.Uppercase()
	// The space at offset 1 consumes the B shift
	enc, err := NewKeyword(u, "AB").Encode("A A")
	if err != nil || enc != "A A" {
		t.Errorf("Encode() = %q, %v", enc, err)
	}
}

func TestRejectsUnknownSymbols(t *testing.T) {
	u := alphabet.Uppercase()
	for _, c := range allCiphers(u) {
		out, err := c.Encode("HELLO, WORLD")
		if !errors.Is(err, alphabet.ErrSymbolNotFound) {
			t.Errorf("%s: Encode() error = %v, want ErrSymbolNotFound", c.Name(), err)
		}
		if out != "" {
			t.Errorf("%s: Encode() returned partial output %q", c.Name(), out)
		}
	}
}

func TestSkipUnknownCompatibility(t *testing.T) {
	a := alphabet.MustNew("compat", []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ"), alphabet.WithSkipUnknown())
	got, err := NewCaesar(a, 1).Encode("HI, YOU")
	if err != nil || got != "IJZPV" {
		t.Errorf("Encode() = %q, %v; want IJZPV", got, err)
	}
}

func TestParseFamily(t *testing.T) {
	tests := map[string]Family{
		"caesar":         FamilyCaesar,
		"Multiplication": FamilyMultiplication,
		" affine ":       FamilyAffine,
		"unbreakable":    FamilyKeyword,
		"keyword":        FamilyKeyword,
		"identity":       FamilyIdentity,
	}
	for in, want := range tests {
		got, err := ParseFamily(in)
		if err != nil || got != want {
			t.Errorf("ParseFamily(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFamily("rsa"); !errors.Is(err, ErrUnknownFamily) {
		t.Errorf("ParseFamily(rsa) error = %v", err)
	}
	if FamilyAffine.String() != "affine" {
		t.Errorf("String() = %q", FamilyAffine.String())
	}
}
