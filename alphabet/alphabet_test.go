package alphabet

import (
	"errors"
	"testing"
)

func TestReferenceAlphabets(t *testing.T) {
	if got := Uppercase().Size(); got != 26 {
		t.Errorf("Uppercase().Size() = %d, want 26", got)
	}
	if got := Printable().Size(); got != 95 {
		t.Errorf("Printable().Size() = %d, want 95", got)
	}
	if Printable().At(0) != ' ' || Printable().At(94) != '~' {
		t.Errorf("Printable() spans %q..%q", Printable().At(0), Printable().At(94))
	}
	for _, name := range []string{"uppercase", "UPPERCASE", "printable", "ascii"} {
		if _, err := Lookup(name); err != nil {
			t.Errorf("Lookup(%q) error = %v", name, err)
		}
	}
	if _, err := Lookup("cyrillic"); !errors.Is(err, ErrUnknownAlphabet) {
		t.Errorf("Lookup(cyrillic) error = %v, want ErrUnknownAlphabet", err)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		symbols string
		wantErr error
	}{
		{"valid", "ABC", nil},
		{"too small", "A", ErrTooSmall},
		{"empty", "", ErrTooSmall},
		{"duplicate", "ABA", ErrDuplicateSymbol},
		{"multibyte", "αβγ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.name, []rune(tt.symbols))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New(%q) error = %v, want %v", tt.symbols, err, tt.wantErr)
			}
		})
	}
}

func TestIndexOf(t *testing.T) {
	a := MustNew("greek", []rune("αβγ"))
	i, err := a.IndexOf('γ')
	if err != nil || i != 2 {
		t.Errorf("IndexOf(γ) = %d, %v", i, err)
	}
	_, err = a.IndexOf('x')
	var symErr *SymbolError
	if !errors.As(err, &symErr) || symErr.Symbol != 'x' {
		t.Fatalf("IndexOf(x) error = %v, want *SymbolError", err)
	}
	if !errors.Is(err, ErrSymbolNotFound) {
		t.Errorf("IndexOf(x) error does not wrap ErrSymbolNotFound")
	}
}

func TestAtWraps(t *testing.T) {
	a := Uppercase()
	cases := map[int]rune{0: 'A', 25: 'Z', 26: 'A', -1: 'Z', -27: 'Z', 53: 'B'}
	for i, want := range cases {
		if got := a.At(i); got != want {
			t.Errorf("At(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestMapPolicies(t *testing.T) {
	shift := func(_, i int) (int, error) { return i + 1, nil }

	got, err := Uppercase().Map("AB Z", shift)
	if err != nil || got != "BC A" {
		t.Errorf("passthrough Map = %q, %v; want %q", got, err, "BC A")
	}

	_, err = Uppercase().Map("AB,Z", shift)
	var symErr *SymbolError
	if !errors.As(err, &symErr) || symErr.Offset != 2 {
		t.Errorf("reject Map error = %v, want symbol error at offset 2", err)
	}

	skip := MustNew("skip", []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ"), WithSkipUnknown())
	got, err = skip.Map("A,B Z", shift)
	if err != nil || got != "BCA" {
		t.Errorf("skip Map = %q, %v; want %q", got, err, "BCA")
	}
}

func TestPassthroughIgnoresMembers(t *testing.T) {
	a := MustNew("spaced", []rune(" AB"), WithPassthrough(" "))
	if a.PolicyFor(' ') != Reject {
		t.Errorf("member symbol should not be passthrough")
	}
	if a.Size() != 3 {
		t.Errorf("Size() = %d, want 3", a.Size())
	}
}

func TestValidate(t *testing.T) {
	if err := Uppercase().Validate("HELLO WORLD"); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	if err := Uppercase().Validate("hello"); !errors.Is(err, ErrSymbolNotFound) {
		t.Errorf("Validate(lowercase) error = %v", err)
	}
	if err := Printable().Validate("This is a sentence."); err != nil {
		t.Errorf("Printable().Validate() error = %v", err)
	}
}
