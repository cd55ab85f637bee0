package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/briandowns/spinner"

	"github.com/pbench/primebench/internal/progress"
)

// DisplayProgress renders a spinner and an aggregated progress bar while the
// benchmark runs. It consumes updates from progressChan until the channel is
// closed, refreshing the spinner suffix with the overall completion.
//
// It should be called in a separate goroutine; wg is released when the
// channel is drained and the spinner stopped.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.Update, numStrategies int, out io.Writer) {
	defer wg.Done()

	if numStrategies <= 0 {
		for range progressChan {
			// Drain channel
		}
		return
	}

	state := NewProgressState(numStrategies)
	sp := newSpinner(spinner.WithWriter(out))
	sp.UpdateSuffix(fmt.Sprintf(" %s   0.0%%", progressBar(0, ProgressBarWidth)))
	sp.Start()
	defer sp.Stop()

	for update := range progressChan {
		state.Update(update.StrategyIndex, update.Value)
		avg := state.CalculateAverage()
		sp.UpdateSuffix(fmt.Sprintf(" %s %5.1f%%", progressBar(avg, ProgressBarWidth), avg*100))
	}
}
