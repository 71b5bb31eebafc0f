// Package tui decides whether terminal output is styled and holds the
// lipgloss styles used by the CLI.
package tui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// ColorEnabled reports whether output written to w should carry ANSI
// styling.
//
// Returns false if:
//   - NO_COLOR is set (https://no-color.org)
//   - TERM is "dumb"
//   - USHEADER_PLAIN=1 is set
//   - w is not a terminal (pipes, files, buffers in tests)
func ColorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	if os.Getenv("USHEADER_PLAIN") == "1" {
		return false
	}

	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of the terminal behind w, or fallback when
// w is not a terminal.
func TerminalWidth(w io.Writer, fallback int) int {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
