package filerange

import (
	"os"

	"github.com/mattn/go-isatty"
)

// StreamIsTerminal reports whether stream is connected to a terminal
// device (spec.md §4.1 "Stream-is-terminal"). It falls back to false
// on any platform isatty can't answer for, rather than erroring,
// matching the spec's "falls back to false" clause.
func StreamIsTerminal(stream *os.File) bool {
	if stream == nil {
		return false
	}
	return isatty.IsTerminal(stream.Fd()) || isatty.IsCygwinTerminal(stream.Fd())
}
