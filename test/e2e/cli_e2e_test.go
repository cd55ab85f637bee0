package e2e

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// TestCLI_E2E verifies the built binary functions correctly.
func TestCLI_E2E(t *testing.T) {
	tmpDir := t.TempDir()
	binName := "primebench"
	if runtime.GOOS == "windows" {
		binName = "primebench.exe"
	}
	binPath := filepath.Join(tmpDir, binName)

	// go test runs with the package directory as CWD; build from the module root.
	cmd := exec.Command("go", "build", "-o", binPath, "./cmd/primebench")
	cmd.Dir = "../.."
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Failed to build primebench: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		wantOut  string // substring match (case-insensitive)
		wantCode int
	}{
		{
			name:     "Full Benchmark",
			args:     []string{"--start", "1", "--end", "1000", "--workers", "2", "-o", ""},
			wantOut:  "168 primes",
			wantCode: 0,
		},
		{
			name:     "Help",
			args:     []string{"--help"},
			wantOut:  "usage",
			wantCode: 0,
		},
		{
			name:     "Single Method",
			args:     []string{"--method", "shared", "--start", "1", "--end", "100", "-o", ""},
			wantOut:  "25 primes",
			wantCode: 0,
		},
		{
			name:     "Quiet Mode",
			args:     []string{"-q", "--start", "1", "--end", "100", "-o", ""},
			wantOut:  "sequential 25",
			wantCode: 0,
		},
		{
			name:     "Reversed Range Is Empty",
			args:     []string{"-q", "--start", "100", "--end", "1", "-o", ""},
			wantOut:  "sequential 0",
			wantCode: 0,
		},
		{
			name:     "Subprocess Isolation",
			args:     []string{"-q", "--isolate", "--method", "isolated", "--start", "1", "--end", "1000", "--workers", "2", "-o", ""},
			wantOut:  "isolated 168",
			wantCode: 0,
		},
		{
			name:     "Worker Chunk Mode",
			args:     []string{"--worker-chunk", "1:10"},
			wantOut:  "[2,3,5,7]",
			wantCode: 0,
		},
		{
			name:     "Very Short Timeout",
			args:     []string{"--start", "1", "--end", "100000000", "--timeout", "1ns", "-o", ""},
			wantOut:  "",
			wantCode: 2,
		},
		{
			name:     "Unknown Method",
			args:     []string{"--method", "bogus"},
			wantOut:  "unknown method",
			wantCode: 4,
		},
		{
			name:     "Version Flag",
			args:     []string{"--version"},
			wantOut:  "primebench",
			wantCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binPath, tt.args...)
			cmd.Env = append(os.Environ(), "NO_COLOR=1")
			output, err := cmd.CombinedOutput()

			outStr := string(output)

			if tt.wantCode == 0 {
				if err != nil {
					t.Errorf("Command failed unexpectedly: %v\nOutput: %s", err, outStr)
				}
			} else {
				if err == nil {
					t.Errorf("Expected non-zero exit code, but command succeeded.\nOutput: %s", outStr)
				} else if exitErr, ok := err.(*exec.ExitError); ok {
					if exitErr.ExitCode() != tt.wantCode {
						t.Errorf("Exit code = %d, want %d.\nOutput: %s", exitErr.ExitCode(), tt.wantCode, outStr)
					}
				}
			}

			if tt.wantOut != "" {
				if !strings.Contains(strings.ToLower(outStr), strings.ToLower(tt.wantOut)) {
					t.Errorf("Output missing expected string.\nExpected: %q\nGot:\n%s", tt.wantOut, outStr)
				}
			}
		})
	}
}

// TestCLI_E2E_ResultsFile verifies the JSON report written by the binary.
func TestCLI_E2E_ResultsFile(t *testing.T) {
	tmpDir := t.TempDir()
	binPath := filepath.Join(tmpDir, "primebench")
	if runtime.GOOS == "windows" {
		binPath += ".exe"
	}

	build := exec.Command("go", "build", "-o", binPath, "./cmd/primebench")
	build.Dir = "../.."
	if out, err := build.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build primebench: %v\n%s", err, out)
	}

	resultsPath := filepath.Join(tmpDir, "results.json")
	cmd := exec.Command(binPath,
		"-q", "--start", "1", "--end", "1000", "--workers", "2",
		"--save-primes", "-o", resultsPath)
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("benchmark failed: %v\n%s", err, out)
	}

	data, err := os.ReadFile(resultsPath)
	if err != nil {
		t.Fatalf("results file missing: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("results file is not valid JSON: %v", err)
	}

	for _, key := range []string{"sequential", "shared", "isolated", "configuration", "primes"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("results file missing %q key:\n%s", key, data)
		}
	}

	var rec struct {
		PrimesFound   int     `json:"primes_found"`
		ExecutionTime float64 `json:"execution_time"`
		Workers       int     `json:"workers"`
		Speedup       float64 `json:"speedup"`
	}
	if err := json.Unmarshal(doc["shared"], &rec); err != nil {
		t.Fatalf("shared record malformed: %v", err)
	}
	if rec.PrimesFound != 168 {
		t.Errorf("shared primes_found = %d, want 168", rec.PrimesFound)
	}
	if rec.ExecutionTime <= 0 {
		t.Errorf("shared execution_time = %f, want > 0", rec.ExecutionTime)
	}

	var seq map[string]any
	if err := json.Unmarshal(doc["sequential"], &seq); err != nil {
		t.Fatalf("sequential record malformed: %v", err)
	}
	if _, ok := seq["speedup"]; ok {
		t.Errorf("sequential record must not carry a speedup key: %s", doc["sequential"])
	}
	if workers, _ := seq["workers"].(float64); workers != 1 {
		t.Errorf("sequential workers = %v, want 1", seq["workers"])
	}

	var primes []int64
	if err := json.Unmarshal(doc["primes"], &primes); err != nil {
		t.Fatalf("primes list malformed: %v", err)
	}
	if len(primes) != 168 || primes[0] != 2 || primes[len(primes)-1] != 997 {
		t.Errorf("primes list wrong: len=%d first=%d last=%d", len(primes), primes[0], primes[len(primes)-1])
	}
}
