// Package hacker recovers plaintext and key from a ciphertext by exhausting the key
// space of a cipher family and ranking candidates by how many dictionary words they
// contain.
package hacker

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"runtime"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gobeaver/cipherkit/alphabet"
	"github.com/gobeaver/cipherkit/cipher"
	"github.com/gobeaver/cipherkit/dictionary"
	"github.com/gobeaver/cipherkit/krypto"
)

// Common errors
var (
	ErrUnknownFamily    = cipher.ErrUnknownFamily
	ErrEmptyDictionary  = errors.New("dictionary is empty")
	ErrNoCandidateFound = errors.New("no candidate contains a dictionary word")
)

// Key holds the recovered key. Only the fields of the result's family are set.
type Key struct {
	Shift      int    `json:"shift,omitempty"`
	Multiplier int    `json:"multiplier,omitempty"`
	Keyword    string `json:"keyword,omitempty"`
}

// Result is the best candidate found by Hack.
type Result struct {
	Family    cipher.Family `json:"family"`
	Plaintext string        `json:"plaintext"`
	Key       Key           `json:"key"`
	Score     int           `json:"score"`
	// Trials counts candidate keys that were decoded and scored, in key order, up to
	// the one that ended the search.
	Trials    int  `json:"trials"`
	Skipped   int  `json:"skipped"`
	EarlyExit bool `json:"early_exit"`
	Cached    bool `json:"cached,omitempty"`
}

// Cipher rebuilds the cipher that encrypts Plaintext to the hacked ciphertext.
func (r *Result) Cipher(a *alphabet.Alphabet) (cipher.Cipher, error) {
	return cipher.NewWithAlphabet(a, cipher.Config{
		Family:     r.Family.String(),
		Shift:      r.Key.Shift,
		Multiplier: r.Key.Multiplier,
		Keyword:    r.Key.Keyword,
	})
}

// Hacker runs key space searches over one alphabet and dictionary. It is safe for
// concurrent use.
type Hacker struct {
	alpha   *alphabet.Alphabet
	dict    *dictionary.Dictionary
	scorer  Scorer
	workers int
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Hacker.
type Option func(*Hacker)

// WithWorkers sets how many candidates are decoded concurrently. Values below 1 mean 1.
func WithWorkers(n int) Option {
	return func(h *Hacker) {
		if n < 1 {
			n = 1
		}
		h.workers = n
	}
}

// WithScorer replaces the dictionary scorer.
func WithScorer(s Scorer) Option {
	return func(h *Hacker) { h.scorer = s }
}

// WithLogger sets the logger used for per-run summaries.
func WithLogger(l *slog.Logger) Option {
	return func(h *Hacker) { h.logger = l }
}

// WithMetrics records run statistics into m.
func WithMetrics(m *Metrics) Option {
	return func(h *Hacker) { h.metrics = m }
}

// New returns a Hacker for ciphertexts over a, scored against d.
func New(a *alphabet.Alphabet, d *dictionary.Dictionary, opts ...Option) (*Hacker, error) {
	if a == nil {
		return nil, cipher.ErrNilAlphabet
	}
	if d == nil || d.Len() == 0 {
		return nil, ErrEmptyDictionary
	}

	h := &Hacker{
		alpha:   a,
		dict:    d,
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.scorer == nil {
		h.scorer = NewDictionaryScorer(d)
	}
	return h, nil
}

// Alphabet returns the alphabet ciphertexts are read over.
func (h *Hacker) Alphabet() *alphabet.Alphabet { return h.alpha }

// Dictionary returns the dictionary candidates are scored against.
func (h *Hacker) Dictionary() *dictionary.Dictionary { return h.dict }

// Metrics returns the metrics sink, or nil.
func (h *Hacker) Metrics() *Metrics { return h.metrics }

// Hack searches the key space of family for the key under which ciphertext decodes to
// the most dictionary words. Identity has no key and reports ErrUnknownFamily. A
// ciphertext symbol the alphabet rejects fails before any candidate is tried.
func (h *Hacker) Hack(ctx context.Context, ciphertext string, family cipher.Family) (*Result, error) {
	start := time.Now()

	res, err := h.hack(ctx, ciphertext, family)

	h.metrics.recordRun(res, err)
	attrs := []slog.Attr{
		slog.String("family", family.String()),
		slog.Int("symbols", utf8.RuneCountInString(ciphertext)),
		slog.Duration("elapsed", time.Since(start)),
	}
	if err != nil {
		h.logger.LogAttrs(ctx, slog.LevelDebug, "hack failed", append(attrs, slog.Any("error", err))...)
		return nil, err
	}
	h.logger.LogAttrs(ctx, slog.LevelDebug, "hack finished", append(attrs,
		slog.Int("score", res.Score),
		slog.Int("trials", res.Trials),
		slog.Bool("early_exit", res.EarlyExit),
	)...)
	return res, nil
}

func (h *Hacker) hack(ctx context.Context, ciphertext string, family cipher.Family) (*Result, error) {
	if err := h.alpha.Validate(ciphertext); err != nil {
		return nil, fmt.Errorf("hacker: ciphertext: %w", err)
	}

	var (
		res *Result
		err error
	)
	switch family {
	case cipher.FamilyCaesar:
		res, err = h.hackCaesar(ctx, ciphertext)
	case cipher.FamilyMultiplication:
		res, err = h.hackMultiplication(ctx, ciphertext)
	case cipher.FamilyAffine:
		res, err = h.hackAffine(ctx, ciphertext)
	case cipher.FamilyKeyword:
		res, err = h.hackKeyword(ctx, ciphertext)
	default:
		return nil, fmt.Errorf("hacker: %w: %s", ErrUnknownFamily, family)
	}
	if err != nil {
		return nil, fmt.Errorf("hacker: %s: %w", family, err)
	}
	res.Family = family
	return res, nil
}

func (h *Hacker) hackCaesar(ctx context.Context, ct string) (*Result, error) {
	out, err := search(ctx, h.workers, span(h.alpha.Size()), func(s int) (trial, error) {
		return h.try(cipher.NewCaesar(h.alpha, s), ct)
	}, nil)
	if err != nil {
		return nil, err
	}
	return finish(out, Key{Shift: out.key})
}

func (h *Hacker) hackMultiplication(ctx context.Context, ct string) (*Result, error) {
	out, err := search(ctx, h.workers, span(h.alpha.Size()), func(m int) (trial, error) {
		return h.try(cipher.NewMultiplication(h.alpha, m), ct)
	}, nil)
	if err != nil {
		return nil, err
	}
	return finish(out, Key{Multiplier: out.key})
}

type affineKey struct {
	shift, multiplier int
}

func (h *Hacker) hackAffine(ctx context.Context, ct string) (*Result, error) {
	n := h.alpha.Size()
	var keys iter.Seq[affineKey] = func(yield func(affineKey) bool) {
		for s := range n {
			for m := range n {
				if !yield(affineKey{shift: s, multiplier: m}) {
					return
				}
			}
		}
	}
	out, err := search(ctx, h.workers, keys, func(k affineKey) (trial, error) {
		return h.try(cipher.NewAffine(h.alpha, k.shift, k.multiplier), ct)
	}, nil)
	if err != nil {
		return nil, err
	}
	return finish(out, Key{Shift: out.key.shift, Multiplier: out.key.multiplier})
}

func (h *Hacker) hackKeyword(ctx context.Context, ct string) (*Result, error) {
	symbols := utf8.RuneCountInString(ct)
	// score > symbols/5 in exact arithmetic
	stop := func(score int) bool { return 5*score > symbols }

	out, err := search(ctx, h.workers, h.keywords(), func(kw string) (trial, error) {
		if kw == "" {
			return trial{skipped: true}, nil
		}
		return h.try(cipher.NewKeyword(h.alpha, kw), ct)
	}, stop)
	if err != nil {
		return nil, err
	}
	return finish(out, Key{Keyword: out.key})
}

// keywords yields the dictionary words as keyword candidates, in dictionary order. A
// word with symbols outside the alphabet is tried upper-cased; if that fails too it is
// yielded as "" so the search counts it as skipped.
func (h *Hacker) keywords() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, w := range h.dict.Words() {
			kw := w
			if !h.representable(kw) {
				kw = strings.ToUpper(w)
				if !h.representable(kw) {
					kw = ""
				}
			}
			if !yield(kw) {
				return
			}
		}
	}
}

func (h *Hacker) representable(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !h.alpha.Contains(r) {
			return false
		}
	}
	return true
}

// try decodes ct with c and scores the result. Keys that cannot decode are skipped.
func (h *Hacker) try(c cipher.Cipher, ct string) (trial, error) {
	pt, err := c.Decode(ct)
	if err != nil {
		if errors.Is(err, krypto.ErrNotInvertible) {
			return trial{skipped: true}, nil
		}
		return trial{}, err
	}
	return trial{plaintext: pt, score: h.scorer.Score(pt)}, nil
}

func finish[K any](out outcome[K], key Key) (*Result, error) {
	if !out.found || out.score == 0 {
		return nil, ErrNoCandidateFound
	}
	return &Result{
		Plaintext: out.plaintext,
		Key:       key,
		Score:     out.score,
		Trials:    out.trials,
		Skipped:   out.skipped,
		EarlyExit: out.earlyExit,
	}, nil
}
