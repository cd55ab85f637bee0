package bench

import (
	"io"
	"sync"
	"time"

	"github.com/pbench/primebench/internal/progress"
)

// StrategyResult encapsulates the outcome of one timed strategy run.
// It is the shared domain type between the harness and presentation layers.
type StrategyResult struct {
	// Name is the registry identifier of the strategy (e.g. "shared").
	Name string
	// Primes is the sorted list of primes found. Nil if an error occurred.
	Primes []int64
	// Duration is the wall-clock time of the run.
	Duration time.Duration
	// Workers is the fan-out width the strategy ran with.
	Workers int
	// Err contains any error that aborted the run.
	Err error
}

// ProgressReporter defines the interface for displaying benchmark progress.
// It decouples the harness from the presentation layer; implementations
// render spinners, progress bars or nothing at all.
type ProgressReporter interface {
	// DisplayProgress consumes progress updates from the channel until it is
	// closed. It should be called in a separate goroutine.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numStrategies int, out io.Writer)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		// Drain channel silently
	}
}

// ResultPresenter defines the interface for presenting benchmark results,
// allowing different output formats without modifying the harness logic.
type ResultPresenter interface {
	// PresentComparisonTable displays the per-strategy summary table.
	PresentComparisonTable(results []StrategyResult, baseline time.Duration, out io.Writer)
}

// NullResultPresenter discards the comparison table. Used in quiet mode
// where only the machine-readable lines are wanted.
type NullResultPresenter struct{}

// PresentComparisonTable does nothing.
func (NullResultPresenter) PresentComparisonTable([]StrategyResult, time.Duration, io.Writer) {}

// Observer receives completion notifications for successful strategy runs.
// The Prometheus metrics endpoint implements this; NullObserver is the
// default.
type Observer interface {
	RunCompleted(strategy string, duration time.Duration, primesFound int)
}

// NullObserver discards completion notifications.
type NullObserver struct{}

// RunCompleted does nothing.
func (NullObserver) RunCompleted(string, time.Duration, int) {}
