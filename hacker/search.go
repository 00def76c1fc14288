package hacker

import (
	"context"
	"iter"

	"golang.org/x/sync/errgroup"
)

// trial is the outcome of decoding the ciphertext under one candidate key.
type trial struct {
	plaintext string
	score     int
	skipped   bool
}

// outcome is the reduced result of a search.
type outcome[K any] struct {
	key       K
	plaintext string
	score     int
	found     bool
	trials    int
	skipped   int
	earlyExit bool
}

// search evaluates every key produced by keys and keeps the highest scoring trial.
//
// Keys are evaluated in rounds of up to workers goroutines. Each round is reduced in
// key order, so ties go to the earliest key and stop sees scores in the same order a
// sequential scan would; the result does not depend on workers. When stop reports
// true for a trial the search ends with that trial as the best. An error from eval
// aborts the search.
func search[K any](ctx context.Context, workers int, keys iter.Seq[K], eval func(K) (trial, error), stop func(score int) bool) (outcome[K], error) {
	if workers < 1 {
		workers = 1
	}

	var best outcome[K]
	batch := make([]K, 0, workers)
	results := make([]trial, workers)

	round := func() (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}

		var g errgroup.Group
		for i, k := range batch {
			g.Go(func() error {
				t, err := eval(k)
				if err != nil {
					return err
				}
				results[i] = t
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return false, err
		}

		for i, k := range batch {
			t := results[i]
			if t.skipped {
				best.skipped++
				continue
			}
			best.trials++
			if !best.found || t.score > best.score {
				best.key = k
				best.plaintext = t.plaintext
				best.score = t.score
				best.found = true
			}
			if stop != nil && stop(t.score) {
				best.earlyExit = true
				return true, nil
			}
		}
		batch = batch[:0]
		return false, nil
	}

	for k := range keys {
		batch = append(batch, k)
		if len(batch) < workers {
			continue
		}
		done, err := round()
		if err != nil || done {
			return best, err
		}
	}
	if len(batch) > 0 {
		if _, err := round(); err != nil {
			return best, err
		}
	}
	return best, nil
}

// span yields 0, 1, ..., n-1.
func span(n int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range n {
			if !yield(i) {
				return
			}
		}
	}
}
