// Package dictionary holds the reference word list used to score candidate
// plaintexts.
package dictionary

import (
	"bufio"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/gobeaver/cipherkit/corpus"
)

// Dictionary is an ordered, deduplicated set of normalized words. It is read-only
// after construction and safe for concurrent use.
type Dictionary struct {
	words       []string
	set         map[string]struct{}
	fingerprint string
}

// Normalize maps a token to its dictionary form: lower-cased with trailing periods
// removed. Scoring applies the same normalization to decoded tokens.
func Normalize(token string) string {
	return strings.TrimRight(strings.ToLower(token), ".")
}

// normalizeEntry is the stricter form used for word list entries, which also drops
// other trailing punctuation.
func normalizeEntry(word string) string {
	return strings.TrimRightFunc(strings.ToLower(strings.TrimSpace(word)), unicode.IsPunct)
}

// New builds a dictionary from words in order. Empty entries and duplicates are
// dropped; the first occurrence keeps its position.
func New(words ...string) *Dictionary {
	d := &Dictionary{set: make(map[string]struct{}, len(words))}
	for _, w := range words {
		d.add(w)
	}
	d.seal()
	return d
}

// Parse reads whitespace-delimited words from r.
func Parse(r io.Reader) (*Dictionary, error) {
	d := &Dictionary{set: make(map[string]struct{})}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		d.add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dictionary: read: %w", err)
	}
	d.seal()
	return d, nil
}

// Load reads the word list at path from src. max bounds the bytes read; 0 disables
// the bound.
func Load(ctx context.Context, src corpus.Source, path string, max int64) (*Dictionary, error) {
	rc, err := corpus.OpenLimited(ctx, src, path, max)
	if err != nil {
		return nil, fmt.Errorf("dictionary: %w", err)
	}
	defer rc.Close()
	return Parse(rc)
}

// LoadSQL builds a dictionary from the first column of every row returned by query.
// Rows are taken in result order, so the query should carry an ORDER BY when the
// keyword search order matters.
func LoadSQL(ctx context.Context, db *sql.DB, query string, args ...any) (*Dictionary, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("dictionary: query: %w", err)
	}
	defer rows.Close()

	d := &Dictionary{set: make(map[string]struct{})}
	for rows.Next() {
		var w sql.NullString
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("dictionary: scan: %w", err)
		}
		if w.Valid {
			d.add(w.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dictionary: rows: %w", err)
	}
	d.seal()
	return d, nil
}

func (d *Dictionary) add(word string) {
	w := normalizeEntry(word)
	if w == "" {
		return
	}
	if _, dup := d.set[w]; dup {
		return
	}
	d.set[w] = struct{}{}
	d.words = append(d.words, w)
}

func (d *Dictionary) seal() {
	h := sha256.New()
	for _, w := range d.words {
		io.WriteString(h, w)
		h.Write([]byte{0})
	}
	d.fingerprint = hex.EncodeToString(h.Sum(nil))
}

// Contains reports whether the normalized form of token is in the dictionary.
func (d *Dictionary) Contains(token string) bool {
	_, ok := d.set[Normalize(token)]
	return ok
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int { return len(d.words) }

// Words returns the words in insertion order. The slice must not be modified.
func (d *Dictionary) Words() []string { return d.words }

// Fingerprint identifies the dictionary's content and order.
func (d *Dictionary) Fingerprint() string { return d.fingerprint }
