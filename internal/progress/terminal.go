// Package progress provides terminal capability detection and the spinner
// used by watch mode.
package progress

import (
	"os"

	"golang.org/x/term"
)

// TerminalCapabilities describes what the attached terminal supports.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// DetectTerminalCapabilities detects terminal features from stdout and the
// environment.
func DetectTerminalCapabilities() TerminalCapabilities {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("FORMFLOW_ASCII") == "1"

	width := 0
	if isTTY {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
		Width:           width,
	}
}

// SpinnerCharSet returns the spinner character set index appropriate for
// the terminal: unicode braille dots when supported, ASCII bars otherwise.
func SpinnerCharSet(caps TerminalCapabilities) int {
	if caps.SupportsUnicode {
		return 14 // ⠋ ⠙ ⠹ ⠸ ⠼ ⠴ ⠦ ⠧ ⠇ ⠏
	}
	return 9 // | / - \
}

// Symbols returns the status marks for the terminal.
func Symbols(caps TerminalCapabilities) (check, cross string) {
	if caps.SupportsUnicode {
		return "✓", "✗"
	}
	return "[OK]", "[FAIL]"
}
