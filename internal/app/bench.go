package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/pbench/primebench/internal/bench"
	"github.com/pbench/primebench/internal/cli"
	apperrors "github.com/pbench/primebench/internal/errors"
	"github.com/pbench/primebench/internal/logging"
	"github.com/pbench/primebench/internal/metrics"
	"github.com/pbench/primebench/internal/partition"
	"github.com/pbench/primebench/internal/server"
	"github.com/pbench/primebench/internal/sysmon"
	"github.com/pbench/primebench/internal/tui"
)

// runBench orchestrates the CLI benchmark: lifecycle, execution, analysis
// and output.
func (a *Application) runBench(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	logger := logging.NewLogger(a.ErrWriter, "bench")

	factory, err := a.effectiveFactory()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	strategiesToRun := bench.SelectStrategies(a.Config.Method, factory)
	if len(strategiesToRun) == 0 {
		fmt.Fprintf(a.ErrWriter, "Error: no strategy matches method %q\n", a.Config.Method)
		return apperrors.ExitErrorConfig
	}

	observer := a.startMetricsServer(ctx, logger)

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(strategiesToRun, a.Config.Isolate, out)
	}

	// Choose progress reporter based on quiet mode
	var reporter bench.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		reporter = bench.NullProgressReporter{}
	} else {
		reporter = cli.CLIProgressReporter{}
	}

	memCollector := metrics.NewMemoryCollector()
	memBefore := memCollector.Snapshot()

	logger.Debug("starting benchmark",
		logging.Int64("start", a.Config.Start),
		logging.Int64("end", a.Config.End),
		logging.Int("workers", a.Config.Workers))

	searchRange := partition.Range{Start: a.Config.Start, End: a.Config.End}
	results := bench.ExecuteBenchmarks(ctx, strategiesToRun, searchRange,
		a.Config.Workers, reporter, observer, progressOut)

	summary := bench.BuildSummary(results, a.configurationEcho(), a.Config.SavePrimes)

	var exitCode int
	if a.Config.Quiet {
		exitCode = bench.AnalyzeResults(results, bench.NullResultPresenter{}, io.Discard)
		cli.DisplayQuietResult(out, results, summary)
	} else {
		exitCode = bench.AnalyzeResults(results, cli.CLIResultPresenter{}, out)
	}

	if a.Config.OutputFile != "" {
		if err := cli.WriteSummaryToFile(summary, a.Config.OutputFile); err != nil {
			logger.Error("failed to save results", err, logging.String("path", a.Config.OutputFile))
			return apperrors.ExitErrorGeneric
		}
		if !a.Config.Quiet {
			cli.DisplaySavedNotice(out, a.Config.OutputFile)
		}
	}

	if a.Config.Verbose && !a.Config.Quiet {
		delta := memCollector.Snapshot().Delta(memBefore)
		cli.DisplayMemoryStats(delta.HeapAlloc, delta.TotalAlloc, delta.NumGC, delta.PauseTotalNs, out)
		sys := sysmon.Sample()
		cli.DisplaySystemStats(sys.CPUPercent, sys.MemPercent, out)
	}

	return exitCode
}

// runTUI launches the interactive dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	logger := logging.NewLogger(a.ErrWriter, "tui")

	factory, err := a.effectiveFactory()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	strategiesToRun := bench.SelectStrategies(a.Config.Method, factory)
	if len(strategiesToRun) == 0 {
		fmt.Fprintf(a.ErrWriter, "Error: no strategy matches method %q\n", a.Config.Method)
		return apperrors.ExitErrorConfig
	}

	observer := a.startMetricsServer(ctx, logger)

	onComplete := func(results []bench.StrategyResult) {
		if a.Config.OutputFile == "" {
			return
		}
		summary := bench.BuildSummary(results, a.configurationEcho(), a.Config.SavePrimes)
		if err := cli.WriteSummaryToFile(summary, a.Config.OutputFile); err != nil {
			logger.Error("failed to save results", err, logging.String("path", a.Config.OutputFile))
		}
	}

	return tui.Run(ctx, strategiesToRun, a.Config, Version, observer, onComplete)
}

// startMetricsServer starts the Prometheus endpoint when configured and
// returns the observer the harness should report completions to. The server
// shuts down when ctx is canceled.
func (a *Application) startMetricsServer(ctx context.Context, logger logging.Logger) bench.Observer {
	if a.Config.MetricsAddr == "" {
		return bench.NullObserver{}
	}
	srv := server.New(a.Config.MetricsAddr, logger)
	go func() {
		if err := srv.Start(ctx); err != nil {
			logger.Error("metrics server stopped", err)
		}
	}()
	return srv.Metrics()
}

// configurationEcho builds the configuration block embedded in the report.
func (a *Application) configurationEcho() bench.Configuration {
	return bench.Configuration{
		StartRange: a.Config.Start,
		EndRange:   a.Config.End,
		CPUCount:   runtime.NumCPU(),
	}
}
