package tui

import (
	"time"

	"github.com/pbench/primebench/internal/bench"
)

// ProgressMsg carries a single progress update from a running strategy.
type ProgressMsg struct {
	StrategyIndex int
	Value         float64
}

// ProgressDoneMsg signals that the progress channel has been drained.
type ProgressDoneMsg struct{}

// ResultsMsg carries the finished benchmark results.
type ResultsMsg struct {
	Results  []bench.StrategyResult
	Baseline time.Duration
}

// BenchCompleteMsg signals that the whole benchmark has finished.
type BenchCompleteMsg struct {
	ExitCode int
}

// TickMsg drives the periodic refresh of elapsed time and system stats.
type TickMsg time.Time

// SysStatsMsg carries a system-wide CPU and memory usage sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}
