// Package alphabet defines the ordered symbol sets every cipher operates over.
//
// An Alphabet is immutable once built and safe to share between goroutines. Symbol
// lookup is by value, so nothing assumes contiguous code points.
package alphabet

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	ErrSymbolNotFound  = errors.New("symbol not in alphabet")
	ErrDuplicateSymbol = errors.New("duplicate symbol in alphabet")
	ErrTooSmall        = errors.New("alphabet needs at least two symbols")
	ErrUnknownAlphabet = errors.New("unknown alphabet")
)

// SymbolError reports a symbol that cannot be represented in an alphabet.
type SymbolError struct {
	Alphabet string
	Symbol   rune
	Offset   int // rune offset in the processed text, -1 when not applicable
}

func (e *SymbolError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("alphabet %s: symbol %q: %v", e.Alphabet, e.Symbol, ErrSymbolNotFound)
	}
	return fmt.Sprintf("alphabet %s: symbol %q at offset %d: %v", e.Alphabet, e.Symbol, e.Offset, ErrSymbolNotFound)
}

func (e *SymbolError) Unwrap() error { return ErrSymbolNotFound }

// Policy decides what happens to a symbol that is not part of the alphabet.
type Policy int

const (
	// Reject fails the whole operation with ErrSymbolNotFound.
	Reject Policy = iota
	// Passthrough copies the symbol unchanged. Only symbols declared with
	// WithPassthrough are eligible; everything else is still rejected.
	Passthrough
	// Skip drops the symbol from the output.
	Skip
)

// Alphabet is an ordered, duplicate-free sequence of symbols.
type Alphabet struct {
	name        string
	symbols     []rune
	index       map[rune]int
	passthrough map[rune]struct{}
	skipUnknown bool
}

// Option configures an Alphabet at construction.
type Option func(*Alphabet)

// WithPassthrough declares separator symbols that ciphers copy unchanged.
// They are not part of the alphabet and do not count towards its size.
func WithPassthrough(symbols string) Option {
	return func(a *Alphabet) {
		for _, r := range symbols {
			a.passthrough[r] = struct{}{}
		}
	}
}

// WithSkipUnknown makes ciphers drop symbols that are neither in the alphabet nor
// declared passthrough, instead of failing. Output can then be shorter than input.
func WithSkipUnknown() Option {
	return func(a *Alphabet) { a.skipUnknown = true }
}

// New builds an alphabet from symbols in order.
func New(name string, symbols []rune, opts ...Option) (*Alphabet, error) {
	if len(symbols) < 2 {
		return nil, fmt.Errorf("alphabet %s: %w", name, ErrTooSmall)
	}
	a := &Alphabet{
		name:        name,
		symbols:     make([]rune, len(symbols)),
		index:       make(map[rune]int, len(symbols)),
		passthrough: make(map[rune]struct{}),
	}
	copy(a.symbols, symbols)
	for i, r := range symbols {
		if _, dup := a.index[r]; dup {
			return nil, fmt.Errorf("alphabet %s: %q: %w", name, r, ErrDuplicateSymbol)
		}
		a.index[r] = i
	}
	for _, opt := range opts {
		opt(a)
	}
	// A symbol cannot be both encoded and passed through
	for r := range a.passthrough {
		if _, ok := a.index[r]; ok {
			delete(a.passthrough, r)
		}
	}
	return a, nil
}

// MustNew is like New but panics on error. Intended for package-level values.
func MustNew(name string, symbols []rune, opts ...Option) *Alphabet {
	a, err := New(name, symbols, opts...)
	if err != nil {
		panic(err)
	}
	return a
}

// Name returns the configuration name of the alphabet.
func (a *Alphabet) Name() string { return a.name }

// Size returns N, the number of symbols.
func (a *Alphabet) Size() int { return len(a.symbols) }

// Symbols returns a copy of the symbols in order.
func (a *Alphabet) Symbols() []rune {
	out := make([]rune, len(a.symbols))
	copy(out, a.symbols)
	return out
}

// String returns the symbols as a string.
func (a *Alphabet) String() string { return string(a.symbols) }

// Contains reports whether r is one of the alphabet's symbols.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// IndexOf returns the position of r.
func (a *Alphabet) IndexOf(r rune) (int, error) {
	i, ok := a.index[r]
	if !ok {
		return 0, &SymbolError{Alphabet: a.name, Symbol: r, Offset: -1}
	}
	return i, nil
}

// At returns the symbol at position i, taken modulo the alphabet size.
func (a *Alphabet) At(i int) rune {
	n := len(a.symbols)
	i %= n
	if i < 0 {
		i += n
	}
	return a.symbols[i]
}

// PolicyFor tells a cipher how to treat r when it is not in the alphabet.
func (a *Alphabet) PolicyFor(r rune) Policy {
	if _, ok := a.passthrough[r]; ok {
		return Passthrough
	}
	if a.skipUnknown {
		return Skip
	}
	return Reject
}

// Validate checks that every symbol of text can be processed under the alphabet's
// policy. It returns a *SymbolError for the first offending symbol.
func (a *Alphabet) Validate(text string) error {
	offset := 0
	for _, r := range text {
		if !a.Contains(r) && a.PolicyFor(r) == Reject {
			return &SymbolError{Alphabet: a.name, Symbol: r, Offset: offset}
		}
		offset++
	}
	return nil
}

// Map rewrites text one symbol at a time. fn receives the rune offset of the symbol in
// text and its alphabet index and returns the output index. Symbols outside the
// alphabet follow PolicyFor. On error the returned string is empty.
func (a *Alphabet) Map(text string, fn func(offset, index int) (int, error)) (string, error) {
	var b strings.Builder
	b.Grow(len(text))
	offset := 0
	for _, r := range text {
		i, ok := a.index[r]
		if !ok {
			switch a.PolicyFor(r) {
			case Passthrough:
				b.WriteRune(r)
			case Skip:
			default:
				return "", &SymbolError{Alphabet: a.name, Symbol: r, Offset: offset}
			}
			offset++
			continue
		}
		j, err := fn(offset, i)
		if err != nil {
			return "", err
		}
		b.WriteRune(a.At(j))
		offset++
	}
	return b.String(), nil
}
