// Package strategy provides the interchangeable execution strategies that
// evaluate the primality oracle over a range: direct sequential iteration,
// a bounded goroutine pool merging into one mutex-guarded slice, and an
// isolated fan-out where every chunk produces a self-contained result.
//
// All strategies honor the same contract: for a given range they return the
// identical set of primes, sorted ascending, regardless of worker count or
// interleaving. The first worker error aborts the whole run; there is no
// partial-result recovery.
package strategy

import (
	"context"
	"fmt"
	"sort"

	"github.com/pbench/primebench/internal/partition"
	"github.com/pbench/primebench/internal/progress"
)

// Registry names of the standard strategies.
const (
	NameSequential = "sequential"
	NameShared     = "shared"
	NameIsolated   = "isolated"
)

// Strategy is the common contract implemented by every execution strategy.
type Strategy interface {
	// Name returns the registry identifier (e.g. "sequential").
	Name() string

	// FindPrimes returns all primes in r, sorted ascending. workers is the
	// fan-out width; the sequential strategy ignores it. report receives
	// normalized completion fractions and must be non-nil (use progress.Nop).
	FindPrimes(ctx context.Context, r partition.Range, workers int, report progress.Callback) ([]int64, error)
}

// Factory provides access to the registered strategies.
type Factory interface {
	// Get returns the strategy registered under name.
	Get(name string) (Strategy, error)
	// List returns the registered names in sorted order.
	List() []string
	// GetAll returns all strategies in List() order.
	GetAll() []Strategy
}

type defaultFactory struct {
	strategies map[string]Strategy
}

// NewDefaultFactory creates a factory with the three standard strategies:
// sequential, shared and isolated (in-process chunk runner).
func NewDefaultFactory() Factory {
	return NewFactory(
		NewSequential(),
		NewSharedPool(),
		NewIsolatedPool(InProcessRunner()),
	)
}

// NewFactory creates a factory from an explicit strategy set. Later entries
// with a duplicate name replace earlier ones, which is how the application
// swaps the isolated strategy's chunk runner for the subprocess variant.
func NewFactory(strategies ...Strategy) Factory {
	m := make(map[string]Strategy, len(strategies))
	for _, s := range strategies {
		m[s.Name()] = s
	}
	return &defaultFactory{strategies: m}
}

func (f *defaultFactory) Get(name string) (Strategy, error) {
	s, ok := f.strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (available: %v)", name, f.List())
	}
	return s, nil
}

func (f *defaultFactory) List() []string {
	names := make([]string, 0, len(f.strategies))
	for name := range f.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (f *defaultFactory) GetAll() []Strategy {
	names := f.List()
	all := make([]Strategy, 0, len(names))
	for _, name := range names {
		all = append(all, f.strategies[name])
	}
	return all
}
