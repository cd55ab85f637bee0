package bench

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/pbench/primebench/internal/partition"
	"github.com/pbench/primebench/internal/strategy"
)

func TestBuildSummarySpeedup(t *testing.T) {
	results := []StrategyResult{
		{Name: strategy.NameSequential, Primes: []int64{2, 3, 5, 7}, Duration: 100 * time.Millisecond, Workers: 1},
		{Name: strategy.NameShared, Primes: []int64{2, 3, 5, 7}, Duration: 25 * time.Millisecond, Workers: 4},
	}
	cfg := Configuration{StartRange: 1, EndRange: 10, CPUCount: 4}

	summary := BuildSummary(results, cfg, false)

	seq, ok := summary.Records[strategy.NameSequential]
	if !ok {
		t.Fatal("missing sequential record")
	}
	if seq.Speedup != 0 {
		t.Errorf("sequential speedup = %f, want none (the baseline has no ratio)", seq.Speedup)
	}
	if seq.Workers != 1 {
		t.Errorf("sequential workers = %d, want 1", seq.Workers)
	}

	shared, ok := summary.Records[strategy.NameShared]
	if !ok {
		t.Fatal("missing shared record")
	}
	if math.Abs(shared.Speedup-4.0) > 1e-9 {
		t.Errorf("shared speedup = %f, want 4.0", shared.Speedup)
	}
	if shared.PrimesFound != 4 {
		t.Errorf("shared primes_found = %d, want 4", shared.PrimesFound)
	}
	if shared.Workers != 4 {
		t.Errorf("shared workers = %d, want 4", shared.Workers)
	}
	if summary.Primes != nil {
		t.Error("primes embedded without savePrimes")
	}
}

func TestBuildSummaryFromHarnessRun(t *testing.T) {
	factory := strategy.NewDefaultFactory()
	strategies := SelectStrategies("all", factory)

	results := ExecuteBenchmarks(context.Background(), strategies,
		partition.Range{Start: 1, End: 1000}, 4, NullProgressReporter{}, nil, io.Discard)
	summary := BuildSummary(results, Configuration{StartRange: 1, EndRange: 1000, CPUCount: 4}, false)

	data, err := json.Marshal(summary)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}

	var seq map[string]any
	if err := json.Unmarshal(doc[strategy.NameSequential], &seq); err != nil {
		t.Fatalf("sequential record malformed: %v", err)
	}
	if _, ok := seq["speedup"]; ok {
		t.Errorf("sequential record must not carry a speedup ratio: %s", doc[strategy.NameSequential])
	}
	if got, _ := seq["workers"].(float64); got != 1 {
		t.Errorf("sequential workers = %v, want 1", seq["workers"])
	}

	shared := summary.Records[strategy.NameShared]
	if shared.Workers != 4 {
		t.Errorf("shared workers = %d, want 4", shared.Workers)
	}
	if shared.Speedup <= 0 {
		t.Errorf("shared speedup = %f, want > 0", shared.Speedup)
	}
}

func TestBuildSummaryWithoutBaseline(t *testing.T) {
	results := []StrategyResult{
		{Name: strategy.NameIsolated, Primes: []int64{2, 3}, Duration: 10 * time.Millisecond, Workers: 2},
	}

	summary := BuildSummary(results, Configuration{}, false)

	rec := summary.Records[strategy.NameIsolated]
	if rec.Speedup != 0 {
		t.Errorf("speedup without baseline = %f, want 0", rec.Speedup)
	}
}

func TestBuildSummaryExcludesFailures(t *testing.T) {
	results := []StrategyResult{
		{Name: strategy.NameSequential, Primes: []int64{2, 3}, Duration: time.Millisecond},
		{Name: strategy.NameShared, Err: errTest},
	}

	summary := BuildSummary(results, Configuration{}, true)

	if _, ok := summary.Records[strategy.NameShared]; ok {
		t.Error("failed run must not appear in the summary")
	}
	if len(summary.Primes) != 2 {
		t.Errorf("savePrimes should embed the prime list, got %v", summary.Primes)
	}
}

var errTest = &jsonTestError{}

type jsonTestError struct{}

func (*jsonTestError) Error() string { return "test error" }

func TestSummaryJSONContract(t *testing.T) {
	summary := Summary{
		Records: map[string]Record{
			strategy.NameSequential: {PrimesFound: 168, ExecutionTime: 0.002, Workers: 1},
			strategy.NameShared:     {PrimesFound: 168, ExecutionTime: 0.001, Workers: 8, Speedup: 2.0},
		},
		Configuration: Configuration{StartRange: 1, EndRange: 1000, CPUCount: 8},
		Primes:        []int64{2, 3, 5},
	}

	data, err := json.Marshal(summary)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	doc := string(data)
	for _, field := range []string{
		`"primes_found"`, `"execution_time"`, `"workers"`, `"speedup"`,
		`"configuration"`, `"start_range"`, `"end_range"`, `"cpu_count"`, `"primes"`,
	} {
		if !strings.Contains(doc, field) {
			t.Errorf("JSON document missing field %s: %s", field, doc)
		}
	}
	// Speedup is omitted when no baseline exists.
	if strings.Contains(doc, `"sequential":{"primes_found":168,"execution_time":0.002,"workers":1,"speedup"`) {
		t.Errorf("sequential record should omit zero speedup: %s", doc)
	}

	var back Summary
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back.Configuration != summary.Configuration {
		t.Errorf("configuration round trip = %+v, want %+v", back.Configuration, summary.Configuration)
	}
	if back.Records[strategy.NameShared].Speedup != 2.0 {
		t.Errorf("shared speedup round trip = %f, want 2.0", back.Records[strategy.NameShared].Speedup)
	}
	if len(back.Primes) != 3 {
		t.Errorf("primes round trip = %v", back.Primes)
	}
}
