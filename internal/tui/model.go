// Package tui renders the live benchmark dashboard: one progress bar per
// strategy while the benchmark runs, then the comparison table, refreshed
// with system-wide CPU and memory usage.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	bprogress "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pbench/primebench/internal/bench"
	"github.com/pbench/primebench/internal/config"
	apperrors "github.com/pbench/primebench/internal/errors"
	"github.com/pbench/primebench/internal/format"
	"github.com/pbench/primebench/internal/partition"
	"github.com/pbench/primebench/internal/strategy"
	"github.com/pbench/primebench/internal/sysmon"
)

const (
	tickInterval    = 500 * time.Millisecond
	defaultBarWidth = 40
)

// Model is the root bubbletea model for the benchmark dashboard.
type Model struct {
	version    string
	cfg        config.AppConfig
	strategies []strategy.Strategy
	names      []string
	fractions  []float64
	bar        bprogress.Model

	results  []bench.StrategyResult
	baseline time.Duration

	keymap    KeyMap
	startTime time.Time
	elapsed   time.Duration
	cpu       float64
	mem       float64
	width     int

	done     bool
	exitCode int

	ctx        context.Context
	cancel     context.CancelFunc
	ref        *programRef
	observer   bench.Observer
	onComplete func([]bench.StrategyResult)
}

// NewModel creates a dashboard model for the given strategies.
func NewModel(ctx context.Context, cancel context.CancelFunc, strategies []strategy.Strategy, cfg config.AppConfig, version string) Model {
	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = s.Name()
	}

	bar := bprogress.New(bprogress.WithDefaultGradient())
	bar.Width = defaultBarWidth

	return Model{
		version:    version,
		cfg:        cfg,
		strategies: strategies,
		names:      names,
		fractions:  make([]float64, len(strategies)),
		bar:        bar,
		keymap:     DefaultKeyMap(),
		startTime:  time.Now(),
		exitCode:   apperrors.ExitSuccess,
		ctx:        ctx,
		cancel:     cancel,
		ref:        &programRef{},
	}
}

// Init returns the initial commands: the refresh ticker and the benchmark
// itself.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startBenchmarkCmd(m.ref, m.ctx, m.strategies, m.cfg, m.observer, m.onComplete),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keymap.Quit) {
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 30
		if w < 10 {
			w = 10
		}
		if w > defaultBarWidth {
			w = defaultBarWidth
		}
		m.bar.Width = w
		return m, nil

	case ProgressMsg:
		if msg.StrategyIndex >= 0 && msg.StrategyIndex < len(m.fractions) {
			m.fractions[msg.StrategyIndex] = msg.Value
		}
		return m, nil

	case ProgressDoneMsg:
		for i := range m.fractions {
			m.fractions[i] = 1.0
		}
		return m, nil

	case ResultsMsg:
		m.results = msg.Results
		m.baseline = msg.Baseline
		return m, nil

	case BenchCompleteMsg:
		m.done = true
		m.exitCode = msg.ExitCode
		m.elapsed = time.Since(m.startTime)
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		m.elapsed = time.Since(m.startTime)
		return m, tea.Batch(sampleSysStatsCmd(), tickCmd())

	case SysStatsMsg:
		m.cpu = msg.CPUPercent
		m.mem = msg.MemPercent
		return m, nil
	}

	return m, nil
}

// View renders the entire dashboard.
func (m Model) View() string {
	var b strings.Builder

	title := titleStyle.Render("primebench")
	version := versionStyle.Render(m.version)
	elapsed := valueStyle.Render(m.elapsed.Truncate(time.Millisecond).String())
	b.WriteString(fmt.Sprintf("%s %s  %s %s\n\n", title, version, labelStyle.Render("elapsed"), elapsed))

	b.WriteString(labelStyle.Render(fmt.Sprintf("range [%d, %d]  workers %d", m.cfg.Start, m.cfg.End, m.cfg.Workers)))
	b.WriteString("\n\n")

	for i, name := range m.names {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			strategyStyle.Render(padName(name, m.names)),
			m.bar.ViewAs(m.fractions[i]),
			valueStyle.Render(fmt.Sprintf("%5.1f%%", m.fractions[i]*100))))
	}

	if m.results != nil {
		b.WriteString("\n")
		b.WriteString(m.renderResults())
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("cpu %5.1f%%  mem %5.1f%%", m.cpu, m.mem)))
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return panelStyle.Render(b.String())
}

// renderResults renders the comparison table once the benchmark is finished.
func (m Model) renderResults() string {
	rows := make([]string, 0, len(m.results)+1)
	rows = append(rows, labelStyle.Render(fmt.Sprintf("%-12s %-10s %-8s %s", "strategy", "duration", "speedup", "result")))
	for _, res := range m.results {
		var outcome string
		if res.Err != nil {
			outcome = errorStyle.Render(fmt.Sprintf("failure: %v", res.Err))
		} else {
			outcome = successStyle.Render(fmt.Sprintf("%d primes", len(res.Primes)))
		}
		speedup := format.FormatSpeedup(0)
		if res.Err == nil && m.baseline > 0 && res.Duration > 0 {
			speedup = format.FormatSpeedup(m.baseline.Seconds() / res.Duration.Seconds())
		}
		rows = append(rows, fmt.Sprintf("%-12s %-10s %-8s %s",
			res.Name, format.FormatExecutionDuration(res.Duration), speedup, outcome))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderFooter renders the key help line and the run status.
func (m Model) renderFooter() string {
	status := valueStyle.Render("running")
	if m.done {
		if m.exitCode == apperrors.ExitSuccess {
			status = statusDoneStyle.Render("done")
		} else {
			status = statusErrorStyle.Render(fmt.Sprintf("failed (exit %d)", m.exitCode))
		}
	}
	help := footerKeyStyle.Render("q") + footerDescStyle.Render(" quit")
	return fmt.Sprintf("%s  %s", status, help)
}

// padName pads a strategy name to the longest name in the set.
func padName(name string, all []string) string {
	maxLen := 0
	for _, n := range all {
		if len(n) > maxLen {
			maxLen = len(n)
		}
	}
	return fmt.Sprintf("%-*s", maxLen, name)
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
// observer receives run completions (may be nil); onComplete is invoked with
// the raw results before the completion message, so the caller can persist
// the JSON report (may be nil).
func Run(parentCtx context.Context, strategies []strategy.Strategy, cfg config.AppConfig, version string, observer bench.Observer, onComplete func([]bench.StrategyResult)) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	model := NewModel(ctx, cancel, strategies, cfg, version)
	model.observer = observer
	model.onComplete = onComplete

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startBenchmarkCmd returns a tea.Cmd that launches the benchmark harness.
func startBenchmarkCmd(ref *programRef, ctx context.Context, strategies []strategy.Strategy, cfg config.AppConfig, observer bench.Observer, onComplete func([]bench.StrategyResult)) tea.Cmd {
	return func() tea.Msg {
		reporter := &TUIProgressReporter{ref: ref}
		presenter := &TUIResultPresenter{ref: ref}

		r := partition.Range{Start: cfg.Start, End: cfg.End}
		results := bench.ExecuteBenchmarks(ctx, strategies, r, cfg.Workers, reporter, observer, io.Discard)
		exitCode := bench.AnalyzeResults(results, presenter, io.Discard)
		if onComplete != nil {
			onComplete(results)
		}

		return BenchCompleteMsg{ExitCode: exitCode}
	}
}

// tickCmd returns a command that sends a TickMsg after the refresh interval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleSysStatsCmd reads system-wide CPU and memory stats.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent: s.CPUPercent,
			MemPercent: s.MemPercent,
		}
	}
}
