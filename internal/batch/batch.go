// Package batch runs a bounded number of tasks concurrently over a list of
// inputs, in fixed-size batches, reporting progress after each batch. It is
// the single concurrency primitive shared by directory traversal and
// cross-file searching.
package batch

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Result carries one processor outcome. A single item's failure never aborts
// the batch or the run; the caller interprets failures.
type Result[R any] struct {
	Value R
	Err   error
}

// Options configures one run
type Options[T, R any] struct {
	Items     []T
	Processor func(ctx context.Context, item T) (R, error)

	// BatchSize partitions Items; zero means one batch for everything
	BatchSize int

	// Concurrency bounds in-flight processor calls within a batch;
	// zero means unbounded within the batch
	Concurrency int

	// OnBatchComplete is invoked after each batch with cumulative counts
	OnBatchComplete func(processed, total int)
}

// Run processes all items and returns one result per item. Result order
// within a batch follows item order, but completion order is unspecified.
func Run[T, R any](ctx context.Context, opts Options[T, R]) []Result[R] {
	total := len(opts.Items)
	if total == 0 {
		return nil
	}

	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = total
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = batchSize
	}

	results := make([]Result[R], total)
	sem := semaphore.NewWeighted(int64(concurrency))

	for start := 0; start < total; start += batchSize {
		end := start + batchSize
		if end > total {
			end = total
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			if err := sem.Acquire(ctx, 1); err != nil {
				results[i] = Result[R]{Err: err}
				continue
			}
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				defer sem.Release(1)
				results[i] = runOne(ctx, opts.Processor, opts.Items[i])
			}(i)
		}

		// The whole batch settles before progress is reported
		wg.Wait()

		if opts.OnBatchComplete != nil {
			opts.OnBatchComplete(end, total)
		}
	}

	return results
}

// runOne shields the runner from a panicking processor
func runOne[T, R any](ctx context.Context, processor func(context.Context, T) (R, error), item T) (res Result[R]) {
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("processor panic: %v", r)
		}
	}()
	res.Value, res.Err = processor(ctx, item)
	return res
}
