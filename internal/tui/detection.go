// Package tui holds terminal detection helpers.
package tui

import (
	"os"

	"golang.org/x/term"
)

// isTerminalFn is a function variable so tests can simulate a terminal.
var isTerminalFn = term.IsTerminal

// IsTTY checks if stdout is a terminal.
func IsTTY() bool {
	return isTerminalFn(int(os.Stdout.Fd())) //nolint:gosec // G115: fd is a small value, no overflow risk
}

// ColorEnabled reports whether styled output should be produced: the user
// did not pass --no-color and stdout is a terminal.
func ColorEnabled(noColorFlag bool) bool {
	if noColorFlag {
		return false
	}
	return IsTTY()
}
