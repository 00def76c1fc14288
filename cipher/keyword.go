package cipher

import (
	"fmt"

	"github.com/gobeaver/cipherkit/alphabet"
)

// Keyword shifts the symbol at text offset i by the alphabet index of
// keyword[i mod len(keyword)]. Offsets count every symbol of the input, including
// passthrough separators, so Encode and Decode derive the same shift sequence for any
// message length.
type Keyword struct {
	base
	keyword string
	shifts  []int
	err     error
}

// NewKeyword returns a Keyword cipher. An empty keyword or one containing symbols
// outside the alphabet is not rejected here; Encode and Decode report the problem.
func NewKeyword(a *alphabet.Alphabet, keyword string) *Keyword {
	c := &Keyword{base: newBase(a), keyword: keyword}
	c.shifts, c.err = keywordShifts(a, keyword)
	return c
}

// Keyword returns the keyword.
func (c *Keyword) Keyword() string { return c.keyword }

// Shifts returns the shift sequence derived from the keyword, one per keyword symbol.
func (c *Keyword) Shifts() ([]int, error) {
	if c.err != nil {
		return nil, c.err
	}
	out := make([]int, len(c.shifts))
	copy(out, c.shifts)
	return out, nil
}

// KeyStream returns the shifts applied to the first n symbols of a message.
func (c *Keyword) KeyStream(n int) ([]int, error) {
	if c.err != nil {
		return nil, c.err
	}
	out := make([]int, n)
	for i := range out {
		out[i] = c.shifts[i%len(c.shifts)]
	}
	return out, nil
}

func (c *Keyword) Encode(text string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return c.alpha.Map(text, func(offset, i int) (int, error) {
		return i + c.shifts[offset%len(c.shifts)], nil
	})
}

func (c *Keyword) Decode(text string) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return c.alpha.Map(text, func(offset, i int) (int, error) {
		return i - c.shifts[offset%len(c.shifts)], nil
	})
}

func (c *Keyword) Verify() error  { return verify(c) }
func (c *Keyword) Name() string   { return "Keyword" }
func (c *Keyword) Family() Family { return FamilyKeyword }

func keywordShifts(a *alphabet.Alphabet, keyword string) ([]int, error) {
	if keyword == "" {
		return nil, fmt.Errorf("keyword cipher: %w", ErrEmptyKeyword)
	}
	shifts := make([]int, 0, len(keyword))
	for _, r := range keyword {
		i, err := a.IndexOf(r)
		if err != nil {
			return nil, fmt.Errorf("keyword cipher: keyword %q: %w", keyword, err)
		}
		shifts = append(shifts, i)
	}
	return shifts, nil
}

// CycleKeyword repeats keyword until it is exactly n symbols long.
func CycleKeyword(keyword string, n int) string {
	src := []rune(keyword)
	if len(src) == 0 || n <= 0 {
		return ""
	}
	out := make([]rune, n)
	for i := range out {
		out[i] = src[i%len(src)]
	}
	return string(out)
}
