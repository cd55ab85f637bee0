package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pbench/primebench/internal/app"
	apperrors "github.com/pbench/primebench/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		var cfgErr apperrors.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(apperrors.ExitErrorConfig)
		}
		os.Exit(apperrors.ExitErrorGeneric)
	}

	exitCode := application.Run(context.Background(), os.Stdout)
	os.Exit(exitCode)
}
