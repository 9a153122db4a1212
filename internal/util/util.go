// Package util holds small shared helpers.
package util

import (
	"os"

	"golang.org/x/term"
)

// IsInteractive reports whether stdout is attached to a terminal. Startup
// hints meant for a human at a console are skipped otherwise.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
