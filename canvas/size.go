package canvas

import (
	"os"

	"golang.org/x/term"
)

// DetectSize returns the terminal dimensions when stdout is a tty, else
// the provided fallbacks. Effects size their canvas from this unless the
// caller fixes dimensions explicitly.
func DetectSize(fallbackWidth, fallbackHeight int) (width, height int) {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, h, err := term.GetSize(fd); err == nil && w > 0 && h > 0 {
			return w, h
		}
	}
	return fallbackWidth, fallbackHeight
}
