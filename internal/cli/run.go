package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/pbench/primebench/internal/config"
	"github.com/pbench/primebench/internal/strategy"
	"github.com/pbench/primebench/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the
// user: the search range, timeout, worker count, and environment details.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Searching primes in %s[%d, %d]%s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), cfg.Start, cfg.End, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Workers: %s%d%s.\n", ui.ColorCyan(), cfg.Workers, ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single strategy vs full
// benchmark) and whether the isolated strategy spawns real subprocesses.
func PrintExecutionMode(strategies []strategy.Strategy, isolate bool, out io.Writer) {
	var modeDesc string
	if len(strategies) > 1 {
		modeDesc = "Benchmark of all strategies"
	} else {
		modeDesc = fmt.Sprintf("Single run with the %s%s%s strategy",
			ui.ColorGreen(), strategies[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	if isolate {
		fmt.Fprintf(out, "Isolation: %ssubprocess per chunk%s.\n", ui.ColorYellow(), ui.ColorReset())
	}
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
