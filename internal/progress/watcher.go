package progress

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Watcher shows an idle spinner between watch-mode revalidations. On
// non-TTY output it degrades to plain line output handled by the caller.
type Watcher struct {
	caps TerminalCapabilities
	spin *spinner.Spinner
}

// NewWatcher creates a watcher display for the given terminal.
func NewWatcher(caps TerminalCapabilities) *Watcher {
	return &Watcher{caps: caps}
}

// Idle starts the idle spinner with the given message.
func (w *Watcher) Idle(message string) {
	if !w.caps.IsTTY {
		return
	}
	w.Stop()
	w.spin = spinner.New(spinner.CharSets[SpinnerCharSet(w.caps)], 120*time.Millisecond)
	w.spin.Writer = os.Stderr
	w.spin.Suffix = " " + message
	w.spin.Start()
}

// Stop halts the spinner so regular output can be printed.
func (w *Watcher) Stop() {
	if w.spin != nil {
		w.spin.Stop()
		w.spin = nil
	}
}
