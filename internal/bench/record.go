package bench

import (
	"encoding/json"

	"github.com/pbench/primebench/internal/strategy"
)

// Record is the per-strategy entry of the JSON report.
type Record struct {
	// PrimesFound is the number of primes found in the range.
	PrimesFound int `json:"primes_found"`
	// ExecutionTime is the wall-clock duration of the run in seconds.
	ExecutionTime float64 `json:"execution_time"`
	// Workers is the fan-out width the strategy ran with.
	Workers int `json:"workers"`
	// Speedup is the ratio of the sequential baseline duration to this run's
	// duration. Zero (omitted) for the baseline itself and when no sequential
	// baseline exists.
	Speedup float64 `json:"speedup,omitempty"`
}

// Configuration echoes the benchmark parameters into the report so a results
// file is interpretable on its own.
type Configuration struct {
	StartRange int64 `json:"start_range"`
	EndRange   int64 `json:"end_range"`
	CPUCount   int   `json:"cpu_count"`
}

// Summary is the complete benchmark report. Its JSON form keys each record
// by strategy name alongside the configuration echo, e.g.:
//
//	{
//	  "sequential": {"primes_found": 168, "execution_time": 0.0021, "workers": 1},
//	  "shared":     {"primes_found": 168, "execution_time": 0.0008, "workers": 8, "speedup": 2.63},
//	  "configuration": {"start_range": 1, "end_range": 1000, "cpu_count": 8}
//	}
type Summary struct {
	// Records maps strategy name to its benchmark record.
	Records map[string]Record
	// Configuration echoes the run parameters.
	Configuration Configuration
	// Primes optionally carries the raw prime list (--save-primes).
	Primes []int64
}

// MarshalJSON flattens the summary into a single object keyed by strategy
// name, with "configuration" and optional "primes" entries alongside.
func (s Summary) MarshalJSON() ([]byte, error) {
	doc := make(map[string]any, len(s.Records)+2)
	for name, rec := range s.Records {
		doc[name] = rec
	}
	doc["configuration"] = s.Configuration
	if s.Primes != nil {
		doc["primes"] = s.Primes
	}
	return json.Marshal(doc)
}

// UnmarshalJSON reverses MarshalJSON. Unknown keys holding objects are read
// back as strategy records.
func (s *Summary) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Records = make(map[string]Record)
	for key, val := range raw {
		switch key {
		case "configuration":
			if err := json.Unmarshal(val, &s.Configuration); err != nil {
				return err
			}
		case "primes":
			if err := json.Unmarshal(val, &s.Primes); err != nil {
				return err
			}
		default:
			var rec Record
			if err := json.Unmarshal(val, &rec); err != nil {
				return err
			}
			s.Records[key] = rec
		}
	}
	return nil
}

// BuildSummary converts raw strategy results into the report document.
// Speedup is computed against the sequential baseline when one succeeded;
// the baseline record itself carries no speedup. Failed runs are excluded.
// When savePrimes is set the prime list of the first successful run is
// embedded.
func BuildSummary(results []StrategyResult, cfg Configuration, savePrimes bool) Summary {
	baseline := BaselineDuration(results)
	summary := Summary{
		Records:       make(map[string]Record, len(results)),
		Configuration: cfg,
	}
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		rec := Record{
			PrimesFound:   len(res.Primes),
			ExecutionTime: res.Duration.Seconds(),
			Workers:       res.Workers,
		}
		if res.Name != strategy.NameSequential && baseline > 0 && res.Duration > 0 {
			rec.Speedup = baseline.Seconds() / res.Duration.Seconds()
		}
		summary.Records[res.Name] = rec
		if savePrimes && summary.Primes == nil {
			summary.Primes = res.Primes
		}
	}
	return summary
}
