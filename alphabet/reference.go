package alphabet

import (
	"fmt"
	"strings"
)

// Names accepted by Lookup.
const (
	UppercaseName = "uppercase"
	PrintableName = "printable"
)

// Whitespace is passed through unchanged by the uppercase alphabet so that word
// boundaries survive encoding.
const Whitespace = " \t\r\n"

var (
	uppercase = MustNew(UppercaseName, runeRange('A', 'Z'), WithPassthrough(Whitespace))
	printable = MustNew(PrintableName, runeRange(' ', '~'))
)

// Uppercase returns the 26-symbol alphabet A..Z.
func Uppercase() *Alphabet { return uppercase }

// Printable returns the 95-symbol alphabet spanning space through tilde.
func Printable() *Alphabet { return printable }

// Lookup returns a reference alphabet by name, case-insensitively.
func Lookup(name string) (*Alphabet, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case UppercaseName, "upper", "english":
		return uppercase, nil
	case PrintableName, "ascii", "":
		return printable, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlphabet, name)
	}
}

func runeRange(from, to rune) []rune {
	out := make([]rune, 0, to-from+1)
	for r := from; r <= to; r++ {
		out = append(out, r)
	}
	return out
}
