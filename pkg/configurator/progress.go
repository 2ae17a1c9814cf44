package configurator

import (
	"io"
	"time"

	"github.com/pterm/pterm"
)

// pollInterval is how often the spinner checks for completion
const pollInterval = 100 * time.Millisecond

// RunWithProgress runs the configurator on a worker goroutine and shows a
// spinner on out until it finishes. It returns only after the process has
// exited. With spinner false it behaves exactly like Run.
func RunWithProgress(r *Runner, out io.Writer, spinner bool) (*Result, error) {
	if !spinner {
		return r.Run()
	}

	type outcome struct {
		res *Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := r.Run()
		done <- outcome{res: res, err: err}
	}()

	sp, startErr := pterm.DefaultSpinner.WithWriter(out).Start("Running " + r.Binary)

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	started := time.Now()
	for {
		select {
		case o := <-done:
			if startErr == nil {
				if o.err != nil {
					sp.Fail(r.Binary + " failed")
				} else {
					sp.Success(r.Binary + " finished")
				}
			}
			return o.res, o.err
		case <-ticker.C:
			if startErr == nil {
				sp.UpdateText("Running " + r.Binary + " (" + time.Since(started).Round(time.Second).String() + ")")
			}
		}
	}
}

// ProgressRunner runs a configurator with a spinner
type ProgressRunner struct {
	runner *Runner
	out    io.Writer
}

// WithProgress wraps r so that Run shows a spinner on out
func (r *Runner) WithProgress(out io.Writer) *ProgressRunner {
	return &ProgressRunner{runner: r, out: out}
}

// Run blocks until the configurator exits
func (p *ProgressRunner) Run() (*Result, error) {
	return RunWithProgress(p.runner, p.out, true)
}
