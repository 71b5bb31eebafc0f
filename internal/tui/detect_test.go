package tui

import (
	"bytes"
	"os"
	"testing"
)

func TestColorEnabled_NO_COLOR(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if ColorEnabled(os.Stdout) {
		t.Error("ColorEnabled() = true with NO_COLOR set")
	}
}

func TestColorEnabled_DumbTerminal(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "dumb")
	if ColorEnabled(os.Stdout) {
		t.Error("ColorEnabled() = true with TERM=dumb")
	}
}

func TestColorEnabled_PlainOverride(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("USHEADER_PLAIN", "1")
	if ColorEnabled(os.Stdout) {
		t.Error("ColorEnabled() = true with USHEADER_PLAIN=1")
	}
}

func TestColorEnabled_NotAFile(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("USHEADER_PLAIN", "")
	var buf bytes.Buffer
	if ColorEnabled(&buf) {
		t.Error("ColorEnabled() = true for a buffer")
	}
}

func TestColorEnabled_Pipe(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("USHEADER_PLAIN", "")
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	defer w.Close()

	if ColorEnabled(w) {
		t.Error("ColorEnabled() = true for a pipe")
	}
}

func TestTerminalWidth_Fallback(t *testing.T) {
	var buf bytes.Buffer
	if got := TerminalWidth(&buf, 80); got != 80 {
		t.Errorf("TerminalWidth() = %d, want 80", got)
	}
}
