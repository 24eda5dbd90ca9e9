package sim

import (
	"context"
	"fmt"
	"sync"
)

// Builder returns a fresh simulator whose noise is seeded with seed.
type Builder func(seed int64) (*Simulator, error)

// Ensemble repeats a scenario across consecutive seeds. Each run gets its own
// simulator and noise, so runs never share mutable state.
type Ensemble struct {
	build     Builder
	numRuns   int
	seedStart int64
}

func NewEnsemble(build Builder, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, steps int) ([]*Result, error) {
	if e.numRuns <= 0 {
		return nil, fmt.Errorf("ensemble needs at least one run, got %d", e.numRuns)
	}

	sims := make([]*Simulator, e.numRuns)
	for i := range sims {
		s, err := e.build(e.seedStart + int64(i))
		if err != nil {
			return nil, fmt.Errorf("build run %d: %w", i, err)
		}
		sims[i] = s
	}

	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := range sims {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = sims[idx].Run(ctx, steps)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
