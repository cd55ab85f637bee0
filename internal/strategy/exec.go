package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/pbench/primebench/internal/partition"
)

// WorkerChunkFlag is the hidden flag that switches the binary into worker
// mode: it computes the primes of a single chunk, writes them as a JSON array
// to stdout, and exits. ExecRunner spawns the binary with this flag once per
// chunk.
const WorkerChunkFlag = "--worker-chunk"

// ExecRunner is a ChunkRunner that evaluates chunks in worker subprocesses of
// the given binary. Each chunk crosses the process boundary as "start:end"
// and comes back as a JSON array on stdout, so coordinator and worker share
// no memory at all.
type ExecRunner struct {
	binPath string
}

// NewExecRunner creates an ExecRunner spawning workers from binPath
// (typically os.Executable()).
func NewExecRunner(binPath string) *ExecRunner {
	return &ExecRunner{binPath: binPath}
}

// RunChunk spawns one worker process for the chunk and decodes its output.
// A worker failing to launch or exiting non-zero is fatal to the whole
// strategy run, matching the no-partial-results contract.
func (e *ExecRunner) RunChunk(ctx context.Context, chunk partition.Range) ([]int64, error) {
	cmd := exec.CommandContext(ctx, e.binPath, WorkerChunkFlag, FormatChunkSpec(chunk))
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("worker %s failed: %s", FormatChunkSpec(chunk), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("worker %s failed: %w", FormatChunkSpec(chunk), err)
	}

	var primes []int64
	if err := json.Unmarshal(out, &primes); err != nil {
		return nil, fmt.Errorf("worker %s returned malformed output: %w", FormatChunkSpec(chunk), err)
	}
	return primes, nil
}

// FormatChunkSpec renders a chunk as the "start:end" wire form passed to
// worker processes.
func FormatChunkSpec(chunk partition.Range) string {
	return fmt.Sprintf("%d:%d", chunk.Start, chunk.End)
}

// ParseChunkSpec parses the "start:end" wire form back into a chunk. It is
// the worker-side counterpart of FormatChunkSpec.
func ParseChunkSpec(spec string) (partition.Range, error) {
	lo, hi, ok := strings.Cut(spec, ":")
	if !ok {
		return partition.Range{}, fmt.Errorf("chunk spec %q: want start:end", spec)
	}
	start, err := strconv.ParseInt(lo, 10, 64)
	if err != nil {
		return partition.Range{}, fmt.Errorf("chunk spec %q: bad start: %w", spec, err)
	}
	end, err := strconv.ParseInt(hi, 10, 64)
	if err != nil {
		return partition.Range{}, fmt.Errorf("chunk spec %q: bad end: %w", spec, err)
	}
	return partition.Range{Start: start, End: end}, nil
}
