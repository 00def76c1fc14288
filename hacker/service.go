package hacker

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/gobeaver/cipherkit/cache"
	"github.com/gobeaver/cipherkit/cipher"
	"github.com/gobeaver/cipherkit/store"
)

// Journal receives one record per Hack call. *store.Repository implements it.
type Journal interface {
	Save(ctx context.Context, a *store.Attempt) error
}

// Service puts a result cache and an attempt journal in front of a Hacker.
type Service struct {
	hacker  *Hacker
	cache   cache.Cache
	ttl     time.Duration
	journal Journal
	logger  *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithCache serves repeated requests from c. A ttl of 0 uses the cache default.
func WithCache(c cache.Cache, ttl time.Duration) ServiceOption {
	return func(s *Service) {
		s.cache = c
		s.ttl = ttl
	}
}

// WithJournal records every run in j.
func WithJournal(j Journal) ServiceOption {
	return func(s *Service) { s.journal = j }
}

// WithServiceLogger sets the logger; the Hacker's logger is used otherwise.
func WithServiceLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

// NewService wraps h. Without options it behaves exactly like h.
func NewService(h *Hacker, opts ...ServiceOption) *Service {
	s := &Service{hacker: h, logger: h.logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hacker returns the wrapped engine.
func (s *Service) Hacker() *Hacker { return s.hacker }

// Hack returns a cached result for the same ciphertext, family, alphabet and
// dictionary when one exists, and runs the search otherwise. Failed searches are not
// cached. Cache and journal failures are logged, never returned.
func (s *Service) Hack(ctx context.Context, ciphertext string, family cipher.Family) (*Result, error) {
	start := time.Now()
	key := s.cacheKey(ciphertext, family)

	if res, ok := s.lookup(ctx, key); ok {
		s.hacker.metrics.RecordCacheHit()
		s.logger.InfoContext(ctx, "hack served from cache",
			slog.String("family", family.String()),
			slog.Int("score", res.Score),
		)
		s.record(ctx, ciphertext, family, res, nil, time.Since(start))
		return res, nil
	}
	if s.cache != nil {
		s.hacker.metrics.RecordCacheMiss()
	}

	res, err := s.hacker.Hack(ctx, ciphertext, family)
	s.record(ctx, ciphertext, family, res, err, time.Since(start))
	if err != nil {
		if !errors.Is(err, ErrNoCandidateFound) && !errors.Is(err, context.Canceled) {
			s.logger.WarnContext(ctx, "hack failed",
				slog.String("family", family.String()),
				slog.Any("error", err),
			)
		}
		return nil, err
	}

	s.logger.InfoContext(ctx, "hack finished",
		slog.String("family", family.String()),
		slog.Int("score", res.Score),
		slog.Int("trials", res.Trials),
		slog.Duration("elapsed", time.Since(start)),
	)
	s.save(ctx, key, res)
	return res, nil
}

// cacheKey identifies a search by everything its result depends on.
func (s *Service) cacheKey(ciphertext string, family cipher.Family) string {
	h := sha256.New()
	for _, part := range []string{
		family.String(),
		s.hacker.alpha.Name(),
		s.hacker.alpha.String(),
		s.hacker.dict.Fingerprint(),
		ciphertext,
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return "hack:" + hex.EncodeToString(h.Sum(nil))
}

func (s *Service) lookup(ctx context.Context, key string) (*Result, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !cache.IsNotFound(err) {
			s.logger.WarnContext(ctx, "cache read failed", slog.Any("error", err))
		}
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		s.logger.WarnContext(ctx, "cached result unreadable", slog.Any("error", err))
		return nil, false
	}
	res.Cached = true
	return &res, true
}

func (s *Service) save(ctx context.Context, key string, res *Result) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(res)
	if err != nil {
		s.logger.WarnContext(ctx, "encode result", slog.Any("error", err))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.WarnContext(ctx, "cache write failed", slog.Any("error", err))
	}
}

func (s *Service) record(ctx context.Context, ciphertext string, family cipher.Family, res *Result, runErr error, elapsed time.Duration) {
	if s.journal == nil {
		return
	}
	a := &store.Attempt{
		Family:     family.String(),
		Alphabet:   s.hacker.alpha.Name(),
		Dictionary: s.hacker.dict.Fingerprint(),
		Ciphertext: ciphertext,
		Duration:   elapsed,
	}
	if res != nil {
		a.Plaintext = res.Plaintext
		a.Shift = res.Key.Shift
		a.Multiplier = res.Key.Multiplier
		a.Keyword = res.Key.Keyword
		a.Score = res.Score
		a.Trials = res.Trials
		a.EarlyExit = res.EarlyExit
		a.Cached = res.Cached
	}
	if runErr != nil {
		a.Error = runErr.Error()
	}
	// A cancelled request still gets its journal entry.
	if err := s.journal.Save(context.WithoutCancel(ctx), a); err != nil {
		s.logger.WarnContext(ctx, "journal write failed", slog.Any("error", err))
	}
}
