package hacker

import (
	"errors"
	"sync/atomic"
)

// Metrics tracks search activity. A nil *Metrics records nothing.
type Metrics struct {
	runs        atomic.Int64
	failures    atomic.Int64
	notFound    atomic.Int64
	trials      atomic.Int64
	skipped     atomic.Int64
	earlyExits  atomic.Int64
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
}

// NewMetrics creates a new metrics instance
func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) recordRun(res *Result, err error) {
	if m == nil {
		return
	}
	m.runs.Add(1)
	if err != nil {
		m.failures.Add(1)
		if errors.Is(err, ErrNoCandidateFound) {
			m.notFound.Add(1)
		}
		return
	}
	m.trials.Add(int64(res.Trials))
	m.skipped.Add(int64(res.Skipped))
	if res.EarlyExit {
		m.earlyExits.Add(1)
	}
}

// RecordCacheHit records a result served from the cache
func (m *Metrics) RecordCacheHit() {
	if m != nil {
		m.cacheHits.Add(1)
	}
}

// RecordCacheMiss records a lookup that had to run a search
func (m *Metrics) RecordCacheMiss() {
	if m != nil {
		m.cacheMisses.Add(1)
	}
}

// GetStats returns current statistics
func (m *Metrics) GetStats() Stats {
	if m == nil {
		return Stats{}
	}
	return Stats{
		Runs:        m.runs.Load(),
		Failures:    m.failures.Load(),
		NotFound:    m.notFound.Load(),
		Trials:      m.trials.Load(),
		Skipped:     m.skipped.Load(),
		EarlyExits:  m.earlyExits.Load(),
		CacheHits:   m.cacheHits.Load(),
		CacheMisses: m.cacheMisses.Load(),
	}
}

// Stats is a snapshot of Metrics
type Stats struct {
	Runs        int64
	Failures    int64
	NotFound    int64
	Trials      int64
	Skipped     int64
	EarlyExits  int64
	CacheHits   int64
	CacheMisses int64
}
