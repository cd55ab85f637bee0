package strategy

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/pbench/primebench/internal/partition"
	"github.com/pbench/primebench/internal/prime"
	"github.com/pbench/primebench/internal/progress"
)

// SharedPool is the thread fan-out strategy: the range is partitioned into
// chunks, one task per chunk runs on a pool bounded to the worker count, and
// every task appends its primes into a single shared slice guarded by a
// mutex. The lock is held only for the append, never during the oracle work.
// The errgroup join is the barrier between the last append and the sort.
type SharedPool struct{}

// NewSharedPool creates the shared-collection fan-out strategy.
func NewSharedPool() *SharedPool { return &SharedPool{} }

// Name returns "shared".
func (*SharedPool) Name() string { return NameShared }

// FindPrimes dispatches one task per chunk to a pool of at most workers
// goroutines. The first task error cancels the group and propagates; no
// partial result is returned.
func (*SharedPool) FindPrimes(ctx context.Context, r partition.Range, workers int, report progress.Callback) ([]int64, error) {
	chunks := partition.Split(r, workers)
	if len(chunks) == 0 {
		report(1.0)
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var (
		mu     sync.Mutex
		primes []int64
		done   atomic.Int64
	)

	for _, chunk := range chunks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			found := prime.PrimesInRange(chunk.Start, chunk.End)

			mu.Lock()
			primes = append(primes, found...)
			mu.Unlock()

			report(float64(done.Add(1)) / float64(len(chunks)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Workers finish in arbitrary order; the contract is a sorted list.
	slices.Sort(primes)
	return primes, nil
}
