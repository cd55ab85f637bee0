// Package app wires configuration, strategies, presentation and lifecycle
// into the primebench executable.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/pbench/primebench/internal/config"
	"github.com/pbench/primebench/internal/strategy"
	"github.com/pbench/primebench/internal/ui"
)

// Application represents the primebench application instance.
type Application struct {
	Config    config.AppConfig
	Factory   strategy.Factory
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom strategy factory for the application.
func WithFactory(f strategy.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = strategy.NewDefaultFactory()
	}

	availableMethods := app.Factory.List()

	programName := "primebench"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableMethods)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	// Worker mode computes one chunk and exits before any UI setup.
	if a.Config.WorkerChunk != "" {
		return a.runWorkerChunk(out)
	}

	switch {
	case a.Config.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case a.Config.Quiet:
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(a.Config.NoColor)

	if a.Config.TUI {
		return a.runTUI(ctx)
	}

	return a.runBench(ctx, out)
}

// effectiveFactory returns the strategy factory to benchmark with. When
// --isolate is set, the isolated strategy is replaced by a variant that
// spawns one worker subprocess of this binary per chunk.
func (a *Application) effectiveFactory() (strategy.Factory, error) {
	if !a.Config.Isolate {
		return a.Factory, nil
	}
	binPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("cannot locate own binary for worker mode: %w", err)
	}
	strategies := append(a.Factory.GetAll(),
		strategy.NewIsolatedPool(strategy.NewExecRunner(binPath)))
	return strategy.NewFactory(strategies...), nil
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
