package strategy

import (
	"context"

	"github.com/pbench/primebench/internal/partition"
	"github.com/pbench/primebench/internal/prime"
	"github.com/pbench/primebench/internal/progress"
)

// sequentialBlockSize is the number of integers evaluated between context
// checks and progress reports. Large enough that the bookkeeping is invisible
// next to the trial divisions it brackets.
const sequentialBlockSize = 4096

// Sequential evaluates the oracle over every integer in the range on the
// calling goroutine. It is the correctness and timing baseline against which
// the fan-out strategies' speedups are computed.
type Sequential struct{}

// NewSequential creates the sequential baseline strategy.
func NewSequential() *Sequential { return &Sequential{} }

// Name returns "sequential".
func (*Sequential) Name() string { return NameSequential }

// FindPrimes iterates the range directly through the oracle. The workers
// argument is ignored; there is no partitioning. The context is checked
// between blocks so a timeout set by the harness still takes effect.
func (*Sequential) FindPrimes(ctx context.Context, r partition.Range, _ int, report progress.Callback) ([]int64, error) {
	if r.Empty() {
		report(1.0)
		return nil, nil
	}

	total := r.Len()
	var primes []int64
	for blockStart := r.Start; blockStart <= r.End; blockStart += sequentialBlockSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		blockEnd := blockStart + sequentialBlockSize - 1
		if blockEnd > r.End {
			blockEnd = r.End
		}
		primes = append(primes, prime.PrimesInRange(blockStart, blockEnd)...)
		report(float64(blockEnd-r.Start+1) / float64(total))
	}
	return primes, nil
}
