package hacker_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gobeaver/cipherkit/alphabet"
	"github.com/gobeaver/cipherkit/cache"
	"github.com/gobeaver/cipherkit/cipher"
	"github.com/gobeaver/cipherkit/database"
	"github.com/gobeaver/cipherkit/hacker"
	"github.com/gobeaver/cipherkit/store"
)

type memoryJournal struct {
	mu       sync.Mutex
	attempts []store.Attempt
}

func (j *memoryJournal) Save(_ context.Context, a *store.Attempt) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.attempts = append(j.attempts, *a)
	return nil
}

func newMemoryCache(t *testing.T) cache.Cache {
	t.Helper()
	c, err := cache.New(cache.Config{Driver: "memory", MaxKeys: 100, DefaultTTL: "1m"})
	if err != nil {
		t.Fatalf("cache.New: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestServiceCachesResults(t *testing.T) {
	a := alphabet.Uppercase()
	words := []string{"this", "is", "a", "test"}
	ct := encode(t, cipher.NewCaesar(a, 5), "THIS IS A TEST")

	var calls atomic.Int64
	m := hacker.NewMetrics()
	h := newHacker(t, a, words, hacker.WithScorer(countingScorer(words, &calls)), hacker.WithMetrics(m))
	j := &memoryJournal{}
	svc := hacker.NewService(h, hacker.WithCache(newMemoryCache(t), time.Minute), hacker.WithJournal(j))

	first, err := svc.Hack(context.Background(), ct, cipher.FamilyCaesar)
	if err != nil {
		t.Fatalf("first Hack: %v", err)
	}
	if first.Cached {
		t.Error("first result should not come from the cache")
	}
	scored := calls.Load()

	second, err := svc.Hack(context.Background(), ct, cipher.FamilyCaesar)
	if err != nil {
		t.Fatalf("second Hack: %v", err)
	}
	if !second.Cached {
		t.Error("second result should come from the cache")
	}
	if calls.Load() != scored {
		t.Errorf("cached request scored %d more candidates", calls.Load()-scored)
	}
	if second.Plaintext != first.Plaintext || second.Key != first.Key || second.Family != first.Family {
		t.Errorf("cached result %+v differs from %+v", second, first)
	}

	// A different family is a different search.
	if _, err := svc.Hack(context.Background(), ct, cipher.FamilyAffine); err != nil {
		t.Fatalf("affine Hack: %v", err)
	}

	stats := m.GetStats()
	if stats.CacheHits != 1 || stats.CacheMisses != 2 || stats.Runs != 2 {
		t.Errorf("stats = %+v, want 1 hit, 2 misses, 2 runs", stats)
	}
	if len(j.attempts) != 3 {
		t.Fatalf("journal has %d attempts, want 3", len(j.attempts))
	}
	if !j.attempts[1].Cached || j.attempts[0].Shift != 5 || j.attempts[0].Alphabet != alphabet.UppercaseName {
		t.Errorf("unexpected journal entries: %+v", j.attempts[:2])
	}
}

func TestServiceDoesNotCacheFailures(t *testing.T) {
	c := newMemoryCache(t)
	h := newHacker(t, alphabet.Uppercase(), []string{"zzzzzz"})
	j := &memoryJournal{}
	svc := hacker.NewService(h, hacker.WithCache(c, 0), hacker.WithJournal(j))

	for range 2 {
		if _, err := svc.Hack(context.Background(), "AB", cipher.FamilyCaesar); !errors.Is(err, hacker.ErrNoCandidateFound) {
			t.Fatalf("error = %v, want %v", err, hacker.ErrNoCandidateFound)
		}
	}
	if len(j.attempts) != 2 || j.attempts[1].Error == "" || j.attempts[1].Cached {
		t.Errorf("journal = %+v, want two failed uncached attempts", j.attempts)
	}
}

func TestServiceWithoutCache(t *testing.T) {
	a := alphabet.Uppercase()
	h := newHacker(t, a, []string{"this", "is", "a", "test"})
	svc := hacker.NewService(h)

	ct := encode(t, cipher.NewCaesar(a, 9), "THIS IS A TEST")
	for range 2 {
		res, err := svc.Hack(context.Background(), ct, cipher.FamilyCaesar)
		if err != nil {
			t.Fatalf("Hack: %v", err)
		}
		if res.Cached || res.Key.Shift != 9 {
			t.Errorf("got %+v, want uncached shift 9", res)
		}
	}
}

func TestServiceJournalsToStore(t *testing.T) {
	db, err := database.Open(database.Config{
		Driver:   "sqlite",
		Database: filepath.Join(t.TempDir(), "journal.db"),
		UseORM:   "gorm",
	})
	if err != nil {
		t.Fatalf("database.Open: %v", err)
	}
	defer db.Close()

	gdb, err := db.GORM()
	if err != nil {
		t.Fatalf("GORM: %v", err)
	}
	repo, err := store.New(gdb, true)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}

	a := alphabet.Uppercase()
	words := []string{"key", "this", "is", "a", "test"}
	h := newHacker(t, a, words)
	svc := hacker.NewService(h, hacker.WithJournal(repo))

	ct := encode(t, cipher.NewKeyword(a, "KEY"), "THIS IS A TEST")
	if _, err := svc.Hack(context.Background(), ct, cipher.FamilyKeyword); err != nil {
		t.Fatalf("Hack: %v", err)
	}

	recent, err := repo.Recent(context.Background(), "keyword", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 1 || recent[0].Keyword != "KEY" || !recent[0].EarlyExit {
		t.Errorf("journal = %+v, want one early-exit KEY attempt", recent)
	}
}

func TestGetConfig(t *testing.T) {
	t.Setenv("BEAVER_HACKER_WORKERS", "3")
	t.Setenv("BEAVER_HACKER_LOG_LEVEL", "debug")

	cfg, err := hacker.GetConfig()
	if err != nil {
		t.Fatalf("GetConfig: %v", err)
	}
	if cfg.Workers != 3 || len(cfg.Options()) != 1 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if cfg.CacheTTL != 24*time.Hour {
		t.Errorf("CacheTTL = %v, want 24h", cfg.CacheTTL)
	}
	if cfg.Level().String() != "DEBUG" {
		t.Errorf("Level = %v, want DEBUG", cfg.Level())
	}
}
