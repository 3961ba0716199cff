// Package progress shows activity on the terminal while the CLI waits on
// the documents API.
package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Reporter signals that a request is in flight.
type Reporter interface {
	Start(description string)
	Finish()
}

// NewReporter returns a TerminalReporter for interactive use, or a
// CIReporter if the CI environment variable is set.
func NewReporter(w io.Writer) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{w: w}
	}
	return &TerminalReporter{w: w}
}

// TerminalReporter displays a spinner until Finish is called.
type TerminalReporter struct {
	w    io.Writer
	bar  *progressbar.ProgressBar
	done chan struct{}
}

func (r *TerminalReporter) Start(description string) {
	r.bar = progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(r.w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionClearOnFinish(),
	)
	r.done = make(chan struct{})

	go func(bar *progressbar.ProgressBar, done <-chan struct{}) {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}(r.bar, r.done)
}

func (r *TerminalReporter) Finish() {
	if r.bar == nil {
		return
	}
	close(r.done)
	_ = r.bar.Finish()
	r.bar = nil
}

// CIReporter prints one line per request, suitable for CI logs.
type CIReporter struct {
	w     io.Writer
	start time.Time
}

func (r *CIReporter) Start(description string) {
	r.start = time.Now()
	fmt.Fprintf(r.w, "%s...\n", description)
}

func (r *CIReporter) Finish() {
	fmt.Fprintf(r.w, "done in %s\n", time.Since(r.start).Round(time.Millisecond))
}
