package app

import (
	"encoding/json"
	"fmt"
	"io"

	apperrors "github.com/pbench/primebench/internal/errors"
	"github.com/pbench/primebench/internal/prime"
	"github.com/pbench/primebench/internal/strategy"
)

// runWorkerChunk executes the hidden subprocess-worker mode: compute the
// primes of one chunk and emit them as a JSON array on stdout. The coordinator
// parses stdout, so nothing else may be written there.
func (a *Application) runWorkerChunk(out io.Writer) int {
	chunk, err := strategy.ParseChunkSpec(a.Config.WorkerChunk)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	primes := prime.PrimesInRange(chunk.Start, chunk.End)
	if primes == nil {
		// An empty chunk is still a valid result and must decode as [].
		primes = []int64{}
	}

	if err := json.NewEncoder(out).Encode(primes); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
