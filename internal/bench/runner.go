package bench

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/pbench/primebench/internal/errors"
	"github.com/pbench/primebench/internal/partition"
	"github.com/pbench/primebench/internal/progress"
	"github.com/pbench/primebench/internal/strategy"
)

// tracerName identifies this instrumentation scope in exported spans.
const tracerName = "primebench/bench"

// ProgressBufferMultiplier defines the buffer size multiplier for the progress
// channel. A larger buffer reduces the likelihood of blocking strategy
// goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// SelectStrategies determines which strategies should be executed based on
// the configured method. For "all" it returns every registered strategy with
// the sequential baseline moved to the front, so speedup ratios can be
// computed against a run that has already happened.
func SelectStrategies(method string, factory strategy.Factory) []strategy.Strategy {
	if method == "all" {
		keys := factory.List() // List() returns sorted keys
		strategies := make([]strategy.Strategy, 0, len(keys))
		for _, k := range keys {
			if s, err := factory.Get(k); err == nil {
				strategies = append(strategies, s)
			}
		}
		// The sequential run is the speedup baseline and must finish first.
		for i, s := range strategies {
			if s.Name() == strategy.NameSequential && i != 0 {
				strategies = append(strategies[:i], strategies[i+1:]...)
				strategies = append([]strategy.Strategy{s}, strategies...)
				break
			}
		}
		return strategies
	}
	if s, err := factory.Get(method); err == nil {
		return []strategy.Strategy{s}
	}
	return nil
}

// ExecuteBenchmarks runs each strategy in turn against the same range and
// times it.
//
// Unlike a comparison of algorithms racing each other, a benchmark must give
// every strategy the whole machine, so strategies run one after another, not
// concurrently. Progress updates are forwarded to the reporter goroutine;
// successful runs are notified to the observer.
//
// Returns one StrategyResult per strategy, in execution order.
func ExecuteBenchmarks(ctx context.Context, strategies []strategy.Strategy, r partition.Range, workers int, reporter ProgressReporter, observer Observer, out io.Writer) []StrategyResult {
	if observer == nil {
		observer = NullObserver{}
	}
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "bench.run", trace.WithAttributes(
		attribute.Int64("range.start", r.Start),
		attribute.Int64("range.end", r.End),
		attribute.Int("workers", workers),
	))
	defer span.End()

	results := make([]StrategyResult, len(strategies))
	progressChan := make(chan progress.Update, len(strategies)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go reporter.DisplayProgress(&displayWg, progressChan, len(strategies), out)

	for i, strat := range strategies {
		idx := i
		report := func(v float64) {
			select {
			case progressChan <- progress.Update{StrategyIndex: idx, Value: v}:
			default:
				// Never block a timed run on a slow display.
			}
		}

		stratCtx, stratSpan := tracer.Start(ctx, "bench.strategy",
			trace.WithAttributes(attribute.String("strategy", strat.Name())))
		startTime := time.Now()
		primes, err := strat.FindPrimes(stratCtx, r, workers, report)
		elapsed := time.Since(startTime)
		if err != nil {
			err = &apperrors.StrategyError{Strategy: strat.Name(), Cause: err}
			stratSpan.RecordError(err)
		} else {
			stratSpan.SetAttributes(attribute.Int("primes.found", len(primes)))
			observer.RunCompleted(strat.Name(), elapsed, len(primes))
		}
		stratSpan.End()

		results[idx] = StrategyResult{
			Name: strat.Name(), Primes: primes, Duration: elapsed,
			Workers: recordedWorkers(strat.Name(), workers), Err: err,
		}

		if ctx.Err() != nil {
			// Abandon the remaining strategies once the run is canceled.
			for j := idx + 1; j < len(strategies); j++ {
				results[j] = StrategyResult{
					Name: strategies[j].Name(), Workers: recordedWorkers(strategies[j].Name(), workers),
					Err:  &apperrors.StrategyError{Strategy: strategies[j].Name(), Cause: ctx.Err()},
				}
			}
			break
		}
	}

	close(progressChan)
	displayWg.Wait()

	return results
}

// AnalyzeResults validates consistency across successful runs and displays a
// comparative table.
//
// Every strategy searches the same range, so all successful runs must agree
// on the exact list of primes. A disagreement means one of the strategies is
// broken and is reported as a critical failure.
//
// Returns an exit code indicating success (0) or the type of failure.
func AnalyzeResults(results []StrategyResult, presenter ResultPresenter, out io.Writer) int {
	var firstValid *StrategyResult
	var firstError error
	successCount := 0

	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else {
			successCount++
			if firstValid == nil {
				firstValid = &results[i]
			}
		}
	}

	presenter.PresentComparisonTable(results, BaselineDuration(results), out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No strategy could complete the search.\n")
		return apperrors.HandleBenchmarkError(firstError, out)
	}

	mismatch := false
	for _, res := range results {
		if res.Err == nil && !slices.Equal(res.Primes, firstValid.Primes) {
			mismatch = true
			break
		}
	}
	if mismatch {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The strategies disagree on the primes in the range.\n")
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All strategies found the same %d primes.\n", len(firstValid.Primes))
	if firstError != nil {
		return apperrors.HandleBenchmarkError(firstError, out)
	}
	return apperrors.ExitSuccess
}

// recordedWorkers returns the fan-out width to report for a run. The
// sequential strategy iterates on one goroutine whatever the configured
// width, so its record always states a single worker.
func recordedWorkers(name string, workers int) int {
	if name == strategy.NameSequential {
		return 1
	}
	return workers
}

// BaselineDuration returns the duration of the successful sequential run, or
// zero when no baseline is available (single-strategy runs, failures).
func BaselineDuration(results []StrategyResult) time.Duration {
	for _, res := range results {
		if res.Name == strategy.NameSequential && res.Err == nil {
			return res.Duration
		}
	}
	return 0
}
