package config

import "runtime"

// Worker count resolution chain (highest priority first):
//  1. CLI flag (--workers)
//  2. Environment variable (PRIMEBENCH_WORKERS)
//  3. Hardware default (this file)

// DefaultWorkerCount returns the default fan-out width for the concurrent
// strategies. One worker per logical CPU is the sweet spot for a CPU-bound
// predicate like trial division: fewer leaves cores idle, more only adds
// scheduling churn without additional throughput.
func DefaultWorkerCount() int {
	n := runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}
