// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayQuietResult], [DisplayProgress], [DisplayMemoryStats].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatQuietResult].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteSummaryToFile].

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pbench/primebench/internal/bench"
	"github.com/pbench/primebench/internal/ui"
)

// WriteSummaryToFile writes the benchmark summary to a JSON file, creating
// parent directories as needed.
func WriteSummaryToFile(summary bench.Summary, path string) error {
	if path == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// FormatQuietResult formats the summary for quiet mode output. It returns one
// line per strategy in execution order, suitable for scripting. The sequential
// baseline has no speedup ratio and prints a dash:
//
//	sequential 168 0.002134 -
//	shared 168 0.000811 2.63
func FormatQuietResult(results []bench.StrategyResult, summary bench.Summary) string {
	var builder strings.Builder
	for _, res := range results {
		rec, ok := summary.Records[res.Name]
		if !ok {
			continue
		}
		speedup := "-"
		if rec.Speedup > 0 {
			speedup = fmt.Sprintf("%.2f", rec.Speedup)
		}
		fmt.Fprintf(&builder, "%s %d %.6f %s\n", res.Name, rec.PrimesFound, rec.ExecutionTime, speedup)
	}
	return builder.String()
}

// DisplayQuietResult outputs the summary in quiet mode (minimal output).
func DisplayQuietResult(out io.Writer, results []bench.StrategyResult, summary bench.Summary) {
	fmt.Fprint(out, FormatQuietResult(results, summary))
}

// DisplaySavedNotice confirms where the JSON report was written.
func DisplaySavedNotice(out io.Writer, path string) {
	fmt.Fprintf(out, "\n%s✓ Results saved to: %s%s%s\n",
		ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
}
