package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pbench/primebench/internal/bench"
	"github.com/pbench/primebench/internal/format"
	"github.com/pbench/primebench/internal/progress"
	"github.com/pbench/primebench/internal/ui"
)

// CLIProgressReporter implements bench.ProgressReporter for CLI output.
// It wraps the DisplayProgress function to provide a spinner and progress bar
// display while the benchmark runs.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements bench.ProgressReporter.
var _ bench.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for the ongoing runs.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numStrategies int, out io.Writer) {
	DisplayProgress(wg, progressChan, numStrategies, out)
}

// CLIResultPresenter implements bench.ResultPresenter for CLI output.
// It provides formatted, colorized output for benchmark results in the
// command-line interface.
type CLIResultPresenter struct{}

// Verify interface compliance.
var _ bench.ResultPresenter = CLIResultPresenter{}

// PresentComparisonTable displays the benchmark summary table with strategy
// names, durations, speedups, and status in a formatted tabular layout.
// Uses manual padding to correctly handle ANSI color codes.
func (CLIResultPresenter) PresentComparisonTable(results []bench.StrategyResult, baseline time.Duration, out io.Writer) {
	fmt.Fprintf(out, "\n--- Benchmark Summary ---\n")

	// Find the maximum column widths for proper alignment
	maxNameLen := 8     // "Strategy" header length
	maxDurationLen := 8 // "Duration" header length
	maxSpeedupLen := 7  // "Speedup" header length
	for _, res := range results {
		if len(res.Name) > maxNameLen {
			maxNameLen = len(res.Name)
		}
		duration := formatDurationCell(res.Duration)
		if len(duration) > maxDurationLen {
			maxDurationLen = len(duration)
		}
		speedup := formatSpeedupCell(res, baseline)
		if len(speedup) > maxSpeedupLen {
			maxSpeedupLen = len(speedup)
		}
	}

	// Print header with proper padding
	fmt.Fprintf(out, "%sStrategy%s%s   %sDuration%s%s   %sSpeedup%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-8),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-8),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxSpeedupLen-7),
		ui.ColorUnderline(), ui.ColorReset())

	// Print each result row
	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ %d primes%s", ui.ColorGreen(), len(res.Primes), ui.ColorReset())
		}
		duration := formatDurationCell(res.Duration)
		speedup := formatSpeedupCell(res, baseline)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			ui.ColorCyan(), speedup, ui.ColorReset(), padRight("", maxSpeedupLen-len(speedup)),
			status)
	}
}

func formatDurationCell(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

func formatSpeedupCell(res bench.StrategyResult, baseline time.Duration) string {
	if res.Err != nil || baseline <= 0 || res.Duration <= 0 {
		return format.FormatSpeedup(0)
	}
	return format.FormatSpeedup(baseline.Seconds() / res.Duration.Seconds())
}

// padRight returns a string of spaces with the given length.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// DisplayMemoryStats shows process memory statistics after a benchmark.
func DisplayMemoryStats(heapAlloc, totalAlloc uint64, numGC uint32, pauseTotalNs uint64, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(heapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(totalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", numGC)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(pauseTotalNs)/1e6)
}

// DisplaySystemStats shows system-wide CPU and memory usage in verbose mode.
func DisplaySystemStats(cpuPercent, memPercent float64, out io.Writer) {
	fmt.Fprintf(out, "\nSystem Stats:\n")
	fmt.Fprintf(out, "  CPU usage:       %.1f%%\n", cpuPercent)
	fmt.Fprintf(out, "  Memory usage:    %.1f%%\n", memPercent)
}
