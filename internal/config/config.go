// Package config parses and validates the application configuration from
// command-line flags and environment variables. Resolution priority is
// CLI flags > PRIMEBENCH_* environment variables > defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"time"

	apperrors "github.com/pbench/primebench/internal/errors"
)

// EnvPrefix is the prefix for all environment variable overrides.
const EnvPrefix = "PRIMEBENCH_"

// Default values applied before flag and environment resolution.
const (
	DefaultStart   = 1
	DefaultEnd     = 100_000
	DefaultMethod  = "all"
	DefaultOutput  = "results.json"
	DefaultTimeout = 10 * time.Minute
)

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	// Start and End are the inclusive bounds of the search range. Start > End
	// is a valid empty range, not an error.
	Start int64
	End   int64
	// Workers is the fan-out width for the concurrent strategies.
	Workers int
	// Method selects a single strategy by name, or "all" to benchmark every
	// registered strategy against the sequential baseline.
	Method string
	// SavePrimes embeds the raw prime list in the result document.
	SavePrimes bool
	// OutputFile is the path of the JSON result document ("" disables it).
	OutputFile string
	// Timeout bounds the whole benchmark run.
	Timeout time.Duration
	// Isolate runs the isolated strategy's chunks in worker subprocesses
	// instead of in-process tasks.
	Isolate bool
	// MetricsAddr, when non-empty, serves Prometheus metrics on this address.
	MetricsAddr string
	// TUI launches the interactive dashboard instead of plain CLI output.
	TUI bool
	// Quiet suppresses everything except the per-strategy summary lines.
	Quiet bool
	// Verbose adds environment, system and memory details to the output.
	Verbose bool
	// NoColor disables ANSI colors (also honors NO_COLOR).
	NoColor bool
	// WorkerChunk is the hidden subprocess-worker mode argument ("start:end").
	WorkerChunk string
}

// ParseConfig parses command-line arguments into an AppConfig, applies
// environment overrides for flags that were not set explicitly, and validates
// the result. availableMethods is the sorted strategy list used to validate
// --method and to render usage text.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableMethods []string) (AppConfig, error) {
	cfg := AppConfig{
		Start:      DefaultStart,
		End:        DefaultEnd,
		Workers:    DefaultWorkerCount(),
		Method:     DefaultMethod,
		OutputFile: DefaultOutput,
		Timeout:    DefaultTimeout,
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.Int64Var(&cfg.Start, "start", cfg.Start, "Start of the search range (inclusive)")
	fs.Int64Var(&cfg.End, "end", cfg.End, "End of the search range (inclusive)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of concurrent workers")
	fs.StringVar(&cfg.Method, "method", cfg.Method,
		fmt.Sprintf("Strategy to benchmark: %v or \"all\"", availableMethods))
	fs.BoolVar(&cfg.SavePrimes, "save-primes", cfg.SavePrimes, "Embed the raw prime list in the result file")
	fs.StringVar(&cfg.OutputFile, "output", cfg.OutputFile, "Result file path (empty to disable)")
	fs.StringVar(&cfg.OutputFile, "o", cfg.OutputFile, "Result file path (shorthand)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Overall benchmark timeout")
	fs.BoolVar(&cfg.Isolate, "isolate", cfg.Isolate, "Run isolated-strategy chunks in worker subprocesses")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "Serve Prometheus metrics on this address (e.g. :9090)")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "Launch the interactive dashboard")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "Minimal output suitable for scripting")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "Minimal output (shorthand)")
	fs.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "Show environment and memory details")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Show environment and memory details (shorthand)")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable ANSI color output")
	fs.StringVar(&cfg.WorkerChunk, "worker-chunk", cfg.WorkerChunk, "") // hidden subprocess worker mode

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := validate(cfg, availableMethods); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// validate rejects configurations the core is not allowed to see: worker
// counts below 1 and unknown strategy names. Reversed ranges pass through
// deliberately; they mean an empty result, not a failure.
func validate(cfg AppConfig, availableMethods []string) error {
	if cfg.WorkerChunk != "" {
		// Worker mode ignores the benchmark flags entirely.
		return nil
	}
	if cfg.Workers < 1 {
		return apperrors.NewConfigError("workers must be >= 1, got %d", cfg.Workers)
	}
	if cfg.Method != "all" && !slices.Contains(availableMethods, cfg.Method) {
		return apperrors.NewConfigError("unknown method %q (available: %v or \"all\")",
			cfg.Method, availableMethods)
	}
	if cfg.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", cfg.Timeout)
	}
	return nil
}
