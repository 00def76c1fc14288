package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// Errors returned by the memory cache
var (
	ErrKeyNotFound = errors.New("key not found")
	ErrMaxKeys     = errors.New("max keys limit reached")
	ErrCacheClosed = errors.New("cache closed")
)

// item represents a cached item with expiration
type item struct {
	value      []byte
	expiration int64
}

func (it *item) expired(now int64) bool {
	return it.expiration > 0 && now > it.expiration
}

// MemoryCache implements an in-memory cache
type MemoryCache struct {
	mu              sync.RWMutex
	items           map[string]*item
	maxKeys         int
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	closeOnce       sync.Once
	keyPrefix       string
}

// Config holds memory cache specific configuration
type Config struct {
	MaxKeys         int
	DefaultTTL      time.Duration
	CleanupInterval time.Duration
	KeyPrefix       string
}

// New creates a new memory cache instance and starts its cleanup goroutine.
func New(cfg Config) (*MemoryCache, error) {
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Minute
	}

	mc := &MemoryCache{
		items:           make(map[string]*item),
		maxKeys:         cfg.MaxKeys,
		defaultTTL:      cfg.DefaultTTL,
		cleanupInterval: cfg.CleanupInterval,
		stopCleanup:     make(chan struct{}),
		keyPrefix:       cfg.KeyPrefix,
	}

	go mc.cleanupExpired()

	return mc, nil
}

// Get retrieves a value by key
func (mc *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	it, ok := mc.items[mc.keyPrefix+key]
	if !ok || it.expired(time.Now().UnixNano()) {
		return nil, ErrKeyNotFound
	}

	out := make([]byte, len(it.value))
	copy(out, it.value)
	return out, nil
}

// Set stores a value with optional TTL
func (mc *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	fullKey := mc.keyPrefix + key
	if mc.maxKeys > 0 && len(mc.items) >= mc.maxKeys {
		if _, exists := mc.items[fullKey]; !exists {
			mc.removeExpiredLocked(time.Now().UnixNano())
			if len(mc.items) >= mc.maxKeys {
				return ErrMaxKeys
			}
		}
	}

	if ttl == 0 {
		ttl = mc.defaultTTL
	}
	var expiration int64
	if ttl > 0 {
		expiration = time.Now().Add(ttl).UnixNano()
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	mc.items[fullKey] = &item{value: stored, expiration: expiration}
	return nil
}

// Delete removes a key
func (mc *MemoryCache) Delete(ctx context.Context, key string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	delete(mc.items, mc.keyPrefix+key)
	return nil
}

// Exists checks if a key exists
func (mc *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	it, ok := mc.items[mc.keyPrefix+key]
	return ok && !it.expired(time.Now().UnixNano()), nil
}

// Clear removes all keys with our prefix
func (mc *MemoryCache) Clear(ctx context.Context) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if mc.keyPrefix == "" {
		mc.items = make(map[string]*item)
		return nil
	}
	for key := range mc.items {
		if strings.HasPrefix(key, mc.keyPrefix) {
			delete(mc.items, key)
		}
	}
	return nil
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (mc *MemoryCache) Close() error {
	mc.closeOnce.Do(func() { close(mc.stopCleanup) })
	return nil
}

// Ping reports ErrCacheClosed after Close.
func (mc *MemoryCache) Ping(ctx context.Context) error {
	select {
	case <-mc.stopCleanup:
		return ErrCacheClosed
	default:
		return nil
	}
}

// Len returns the number of stored keys, expired ones included until cleanup runs.
func (mc *MemoryCache) Len() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return len(mc.items)
}

func (mc *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(mc.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			mc.mu.Lock()
			mc.removeExpiredLocked(time.Now().UnixNano())
			mc.mu.Unlock()
		case <-mc.stopCleanup:
			return
		}
	}
}

func (mc *MemoryCache) removeExpiredLocked(now int64) {
	for key, it := range mc.items {
		if it.expired(now) {
			delete(mc.items, key)
		}
	}
}
