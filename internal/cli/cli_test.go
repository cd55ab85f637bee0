package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/pbench/primebench/internal/bench"
	"github.com/pbench/primebench/internal/config"
	"github.com/pbench/primebench/internal/progress"
	"github.com/pbench/primebench/internal/strategy"
	"github.com/pbench/primebench/internal/ui"
)

// MockSpinner for testing
type MockSpinner struct {
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() {
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.suffix = suffix
}

func TestProgressState(t *testing.T) {
	ps := NewProgressState(2)
	ps.Update(0, 1.0)
	ps.Update(1, 0.5)
	if avg := ps.CalculateAverage(); avg != 0.75 {
		t.Errorf("average = %f, want 0.75", avg)
	}

	// Out-of-range updates are ignored
	ps.Update(-1, 1.0)
	ps.Update(2, 1.0)
	if avg := ps.CalculateAverage(); avg != 0.75 {
		t.Errorf("average after invalid updates = %f, want 0.75", avg)
	}
}

func TestProgressStateEmpty(t *testing.T) {
	ps := NewProgressState(0)
	if avg := ps.CalculateAverage(); avg != 0.0 {
		t.Errorf("average of empty state = %f, want 0", avg)
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		progress float64
		filled   int
	}{
		{0.0, 0},
		{0.5, 5},
		{1.0, 10},
		{1.5, 10},  // clamped
		{-0.5, 0},  // clamped
	}
	for _, tt := range tests {
		bar := progressBar(tt.progress, 10)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("progressBar(%f, 10) has %d filled cells, want %d", tt.progress, got, tt.filled)
		}
	}
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	s := spinner.New(spinner.CharSets[11], 100*time.Millisecond)
	rs := &realSpinner{s}

	// Just verify these methods don't panic
	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
}

func TestDisplayProgress(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	mockS := &MockSpinner{}
	newSpinner = func(options ...spinner.Option) Spinner {
		return mockS
	}

	var wg sync.WaitGroup
	wg.Add(1)

	progressChan := make(chan progress.Update)
	go func() {
		progressChan <- progress.Update{StrategyIndex: 0, Value: 0.5}
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, 1, io.Discard)
	wg.Wait()

	if !mockS.started {
		t.Error("Spinner should have started")
	}
	if !mockS.stopped {
		t.Error("Spinner should have stopped")
	}
	if !strings.Contains(mockS.suffix, "50.0%") {
		t.Errorf("suffix = %q, want the completion percentage", mockS.suffix)
	}
}

func TestDisplayProgressZeroStrategies(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan progress.Update)
	close(progressChan)

	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
}

func TestPresentComparisonTable(t *testing.T) {
	ui.InitTheme(true) // no color, so the output is easy to assert on

	var buf bytes.Buffer
	results := []bench.StrategyResult{
		{Name: "sequential", Primes: make([]int64, 168), Duration: 10 * time.Millisecond},
		{Name: "shared", Primes: make([]int64, 168), Duration: 5 * time.Millisecond},
		{Name: "isolated", Err: os.ErrDeadlineExceeded},
	}

	CLIResultPresenter{}.PresentComparisonTable(results, 10*time.Millisecond, &buf)

	output := buf.String()
	for _, s := range []string{"Strategy", "Duration", "Speedup", "Status",
		"sequential", "shared", "isolated", "168 primes", "2.00x", "1.00x", "Failure"} {
		if !strings.Contains(output, s) {
			t.Errorf("Expected output to contain %q, but got:\n%s", s, output)
		}
	}
	// Failed runs have no speedup
	if !strings.Contains(output, "-") {
		t.Errorf("Expected a dash for the failed run's speedup:\n%s", output)
	}
}

func TestWriteSummaryToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "results.json")

	summary := bench.Summary{
		Records: map[string]bench.Record{
			"sequential": {PrimesFound: 25, ExecutionTime: 0.001, Workers: 4},
		},
		Configuration: bench.Configuration{StartRange: 1, EndRange: 100, CPUCount: 4},
	}

	if err := WriteSummaryToFile(summary, path); err != nil {
		t.Fatalf("WriteSummaryToFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back the file failed: %v", err)
	}
	var back bench.Summary
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("written file is not valid JSON: %v", err)
	}
	if back.Records["sequential"].PrimesFound != 25 {
		t.Errorf("round trip lost data: %+v", back)
	}
}

func TestWriteSummaryToFileEmptyPath(t *testing.T) {
	if err := WriteSummaryToFile(bench.Summary{}, ""); err != nil {
		t.Errorf("empty path should be a no-op, got %v", err)
	}
}

func TestFormatQuietResult(t *testing.T) {
	results := []bench.StrategyResult{
		{Name: "sequential"},
		{Name: "shared"},
		{Name: "failed"},
	}
	summary := bench.Summary{
		Records: map[string]bench.Record{
			"sequential": {PrimesFound: 168, ExecutionTime: 0.002134, Workers: 1},
			"shared":     {PrimesFound: 168, ExecutionTime: 0.000811, Workers: 4, Speedup: 2.63},
		},
	}

	got := FormatQuietResult(results, summary)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines (failed run skipped), got %d: %q", len(lines), got)
	}
	if lines[0] != "sequential 168 0.002134 -" {
		t.Errorf("line 0 = %q", lines[0])
	}
	if lines[1] != "shared 168 0.000811 2.63" {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestPrintExecutionConfig(t *testing.T) {
	ui.InitTheme(true)

	var buf bytes.Buffer
	cfg := config.AppConfig{Start: 1, End: 1000, Workers: 4, Timeout: time.Minute}
	PrintExecutionConfig(cfg, &buf)

	output := buf.String()
	for _, s := range []string{"[1, 1000]", "1m0s", "Workers", "logical processors"} {
		if !strings.Contains(output, s) {
			t.Errorf("Expected output to contain %q, but got:\n%s", s, output)
		}
	}
}

func TestPrintExecutionMode(t *testing.T) {
	ui.InitTheme(true)

	var buf bytes.Buffer
	factory := strategy.NewDefaultFactory()
	PrintExecutionMode(factory.GetAll(), true, &buf)

	output := buf.String()
	if !strings.Contains(output, "Benchmark of all strategies") {
		t.Errorf("missing mode description:\n%s", output)
	}
	if !strings.Contains(output, "subprocess per chunk") {
		t.Errorf("missing isolation notice:\n%s", output)
	}

	buf.Reset()
	single, _ := factory.Get(strategy.NameShared)
	PrintExecutionMode([]strategy.Strategy{single}, false, &buf)
	if !strings.Contains(buf.String(), "Single run with the shared strategy") {
		t.Errorf("missing single mode description:\n%s", buf.String())
	}
}
