package batch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunProcessesEveryItemInOrder(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	results := Run(context.Background(), Options[int, int]{
		Items:       items,
		BatchSize:   3,
		Concurrency: 2,
		Processor: func(_ context.Context, item int) (int, error) {
			return item * 10, nil
		},
	})

	require.Len(t, results, len(items))
	for i, item := range items {
		assert.NoError(t, results[i].Err)
		assert.Equal(t, item*10, results[i].Value)
	}
}

func TestRunEmptyItems(t *testing.T) {
	results := Run(context.Background(), Options[string, string]{
		Processor: func(_ context.Context, item string) (string, error) { return item, nil },
	})
	assert.Nil(t, results)
}

func TestRunBoundsConcurrency(t *testing.T) {
	var current, peak int64

	items := make([]int, 40)
	Run(context.Background(), Options[int, struct{}]{
		Items:       items,
		BatchSize:   10,
		Concurrency: 3,
		Processor: func(_ context.Context, _ int) (struct{}, error) {
			n := atomic.AddInt64(&current, 1)
			for {
				p := atomic.LoadInt64(&peak)
				if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
					break
				}
			}
			atomic.AddInt64(&current, -1)
			return struct{}{}, nil
		},
	})

	assert.LessOrEqual(t, atomic.LoadInt64(&peak), int64(3))
}

func TestRunReportsBatchBoundaries(t *testing.T) {
	var mu sync.Mutex
	var reports [][2]int

	Run(context.Background(), Options[int, struct{}]{
		Items:     make([]int, 10),
		BatchSize: 4,
		Processor: func(_ context.Context, _ int) (struct{}, error) { return struct{}{}, nil },
		OnBatchComplete: func(processed, total int) {
			mu.Lock()
			reports = append(reports, [2]int{processed, total})
			mu.Unlock()
		},
	})

	assert.Equal(t, [][2]int{{4, 10}, {8, 10}, {10, 10}}, reports)
}

func TestRunCollectsErrorsWithoutAborting(t *testing.T) {
	failing := errors.New("boom")

	results := Run(context.Background(), Options[int, int]{
		Items: []int{1, 2, 3},
		Processor: func(_ context.Context, item int) (int, error) {
			if item == 2 {
				return 0, failing
			}
			return item, nil
		},
	})

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, failing)
	assert.NoError(t, results[2].Err)
}

func TestRunRecoversProcessorPanic(t *testing.T) {
	results := Run(context.Background(), Options[int, int]{
		Items: []int{1, 2},
		Processor: func(_ context.Context, item int) (int, error) {
			if item == 1 {
				panic("bad item")
			}
			return item, nil
		},
	})

	require.Len(t, results, 2)
	require.Error(t, results[0].Err)
	assert.Contains(t, results[0].Err.Error(), "bad item")
	assert.NoError(t, results[1].Err)
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := Run(ctx, Options[int, int]{
		Items:       []int{1, 2, 3},
		Concurrency: 1,
		Processor: func(_ context.Context, item int) (int, error) {
			return item, nil
		},
	})

	require.Len(t, results, 3)
	for _, r := range results {
		assert.Error(t, r.Err)
	}
}
