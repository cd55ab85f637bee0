package strategy

import (
	"context"
	"slices"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/pbench/primebench/internal/partition"
	"github.com/pbench/primebench/internal/prime"
	"github.com/pbench/primebench/internal/progress"
)

// ChunkRunner evaluates one chunk in an isolated execution context and
// returns a self-contained result. The boundary is what makes the isolated
// strategy's tasks transferable: a runner may compute in-process, or hand the
// chunk bounds to a worker subprocess and read the primes back.
type ChunkRunner interface {
	RunChunk(ctx context.Context, chunk partition.Range) ([]int64, error)
}

// ChunkRunnerFunc adapts a function to the ChunkRunner interface.
type ChunkRunnerFunc func(ctx context.Context, chunk partition.Range) ([]int64, error)

// RunChunk calls the underlying function.
func (f ChunkRunnerFunc) RunChunk(ctx context.Context, chunk partition.Range) ([]int64, error) {
	return f(ctx, chunk)
}

// InProcessRunner returns a ChunkRunner that evaluates the chunk on the
// calling goroutine. With true parallel threads there is no interpreter lock
// to escape, so in-process evaluation preserves the process-pool semantics
// (no shared mutable state) without the exec overhead.
func InProcessRunner() ChunkRunner {
	return ChunkRunnerFunc(func(_ context.Context, chunk partition.Range) ([]int64, error) {
		return prime.PrimesInRange(chunk.Start, chunk.End), nil
	})
}

// IsolatedPool is the process fan-out strategy: one task per chunk, each task
// producing its own result slice with no shared mutable state. The
// coordinator stores each slice at the chunk's dispatch index, waits for
// every task, then flattens and sorts. Fan-out width is bounded by a weighted
// semaphore sized to the worker count.
type IsolatedPool struct {
	runner ChunkRunner
}

// NewIsolatedPool creates the isolated fan-out strategy backed by the given
// chunk runner.
func NewIsolatedPool(runner ChunkRunner) *IsolatedPool {
	return &IsolatedPool{runner: runner}
}

// Name returns "isolated".
func (*IsolatedPool) Name() string { return NameIsolated }

// FindPrimes dispatches one task per chunk, at most workers in flight.
// Results are collected in dispatch order before the final flatten+sort, so
// aggregation never races with computation. The first task error aborts the
// run.
func (p *IsolatedPool) FindPrimes(ctx context.Context, r partition.Range, workers int, report progress.Callback) ([]int64, error) {
	chunks := partition.Split(r, workers)
	if len(chunks) == 0 {
		report(1.0)
		return nil, nil
	}

	sem := semaphore.NewWeighted(int64(workers))
	g, ctx := errgroup.WithContext(ctx)

	perChunk := make([][]int64, len(chunks))
	var done atomic.Int64

	for i, chunk := range chunks {
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			found, err := p.runner.RunChunk(ctx, chunk)
			if err != nil {
				return err
			}
			perChunk[i] = found
			report(float64(done.Add(1)) / float64(len(chunks)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, found := range perChunk {
		total += len(found)
	}
	primes := make([]int64, 0, total)
	for _, found := range perChunk {
		primes = append(primes, found...)
	}
	slices.Sort(primes)
	return primes, nil
}
