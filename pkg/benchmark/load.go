package benchmark

import (
	"context"
	"sync"
)

// LoadGenerator runs a fixed number of operations inside one trial
// with bounded concurrency. This is author-owned concurrency within
// a trial body — trial scheduling itself stays strictly sequential.
// The generator increments nothing; the operation closure owns the
// benchmark's counters.
type LoadGenerator struct {
	// Workers is the maximum number of concurrent operations.
	// Values below one are treated as one.
	Workers int
}

// Run executes ops operations, at most Workers at a time, and
// returns the first operation error observed. Remaining operations
// still run to completion so counter values stay comparable across
// trials; a cancelled context stops admission of new operations.
func (g LoadGenerator) Run(
	ctx context.Context,
	ops int,
	op func(ctx context.Context, i int) error,
) error {
	workers := g.Workers
	if workers <= 0 {
		workers = 1
	}

	sem := make(chan struct{}, workers)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for i := 0; i < ops; i++ {
		// Cancellation check before admission so a cancelled
		// context never admits another operation.
		select {
		case <-ctx.Done():
			wg.Wait()
			if firstErr != nil {
				return firstErr
			}
			return ctx.Err()
		default:
		}

		// Acquire semaphore slot before spawning.
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			if firstErr != nil {
				return firstErr
			}
			return ctx.Err()
		}

		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := op(ctx, idx); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(i)
	}

	wg.Wait()
	return firstErr
}
