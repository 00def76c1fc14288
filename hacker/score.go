package hacker

import (
	"strings"

	"github.com/gobeaver/cipherkit/dictionary"
)

// Scorer rates a candidate plaintext; higher is more plausible. Implementations are
// called from several goroutines at once.
type Scorer interface {
	Score(text string) int
}

// ScorerFunc adapts a plain function to Scorer.
type ScorerFunc func(text string) int

// Score calls f(text).
func (f ScorerFunc) Score(text string) int { return f(text) }

// DictionaryScorer counts whitespace-separated tokens that are dictionary words.
type DictionaryScorer struct {
	dict *dictionary.Dictionary
}

// NewDictionaryScorer returns a scorer backed by d.
func NewDictionaryScorer(d *dictionary.Dictionary) *DictionaryScorer {
	return &DictionaryScorer{dict: d}
}

// Score returns the number of tokens of text whose normalized form is in the
// dictionary. Repeated words count every time.
func (s *DictionaryScorer) Score(text string) int {
	n := 0
	for _, tok := range strings.Fields(text) {
		if s.dict.Contains(tok) {
			n++
		}
	}
	return n
}
