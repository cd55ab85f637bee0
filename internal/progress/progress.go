// Package progress defines the progress reporting types shared between the
// execution strategies and the presentation layers (CLI spinner, TUI).
package progress

// Update carries a single progress report from one strategy run.
type Update struct {
	// StrategyIndex identifies which concurrent strategy slot the update
	// belongs to (0 to numStrategies-1).
	StrategyIndex int
	// Value is the normalized completion fraction (0.0 to 1.0).
	Value float64
}

// Callback receives incremental progress values (0.0 to 1.0) during a
// strategy run. Implementations must be safe for concurrent use; fan-out
// strategies invoke it from worker goroutines.
type Callback func(value float64)

// Nop is a Callback that discards updates. Strategies accept it instead of
// nil so call sites never need a nil check.
func Nop(float64) {}
