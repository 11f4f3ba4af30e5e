package scan

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const (
	// DefaultWorkers is the number of concurrent evaluations.
	DefaultWorkers = 8

	// DefaultBatchSize is the number of links handed to a worker at once.
	DefaultBatchSize = 10
)

// Pool is a fixed-size set of workers. Links are handed out in batches
// to cut channel traffic, but every verdict is delivered as soon as it
// is ready, so batching never shows in the output order.
type Pool struct {
	workers int
	batch   int
}

// NewPool creates a pool of workers goroutines receiving batch links at
// a time. Non-positive values select the defaults.
func NewPool(workers, batch int) *Pool {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	return &Pool{workers: workers, batch: batch}
}

// Run evaluates every link with fn and returns the verdicts in completion
// order. The channel is closed once all workers have exited. The caller
// must drain it.
//
// Cancelling ctx stops dispatch; workers finish their current link and
// exit without starting another.
func (p *Pool) Run(ctx context.Context, links []string, fn func(context.Context, string) Verdict) <-chan Verdict {
	batches := make(chan []string, p.workers)
	results := make(chan Verdict, p.workers*p.batch)

	var g errgroup.Group
	g.Go(func() error {
		defer close(batches)
		for i := 0; i < len(links); i += p.batch {
			select {
			case batches <- links[i:min(i+p.batch, len(links))]:
			case <-ctx.Done():
				return nil
			}
		}
		return nil
	})

	for range p.workers {
		g.Go(func() error {
			for batch := range batches {
				for _, link := range batch {
					if ctx.Err() != nil {
						return nil
					}
					select {
					case results <- fn(ctx, link):
					case <-ctx.Done():
						return nil
					}
				}
			}
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(results)
	}()
	return results
}
