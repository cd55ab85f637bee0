package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pbench/primebench/internal/bench"
	"github.com/pbench/primebench/internal/progress"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the bridge goroutines can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIProgressReporter implements bench.ProgressReporter.
// It drains the progress channel and forwards updates as bubbletea messages.
type TUIProgressReporter struct {
	ref *programRef
}

// Verify interface compliance.
var _ bench.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains the progress channel and sends ProgressMsg to the TUI.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, _ int, _ io.Writer) {
	defer wg.Done()

	for update := range progressChan {
		t.ref.Send(ProgressMsg{
			StrategyIndex: update.StrategyIndex,
			Value:         update.Value,
		})
	}
	t.ref.Send(ProgressDoneMsg{})
}

// TUIResultPresenter implements bench.ResultPresenter.
// It sends result messages to the TUI instead of writing to stdout.
type TUIResultPresenter struct {
	ref *programRef
}

// Verify interface compliance.
var _ bench.ResultPresenter = (*TUIResultPresenter)(nil)

// PresentComparisonTable sends the benchmark results to the TUI.
func (t *TUIResultPresenter) PresentComparisonTable(results []bench.StrategyResult, baseline time.Duration, _ io.Writer) {
	t.ref.Send(ResultsMsg{Results: results, Baseline: baseline})
}
