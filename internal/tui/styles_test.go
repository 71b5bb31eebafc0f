package tui

import (
	"strings"
	"testing"
)

const header = "// ==UserScript==\n// @name X\n// @noframes true\n// ==/UserScript==\n"

func TestStyles_DisabledIsPlain(t *testing.T) {
	s := NewStyles(false)

	if got := s.Header(header); got != header {
		t.Errorf("Header() = %q, want unchanged", got)
	}
	if got := s.Render(s.Error, "boom\tx"); got != "boom\tx" {
		t.Errorf("Render() = %q, want unchanged", got)
	}
	if got := s.Check("ok"); got != SymbolCheck+" ok" {
		t.Errorf("Check() = %q", got)
	}
	if got := s.Cross("bad"); got != SymbolCross+" bad" {
		t.Errorf("Cross() = %q", got)
	}
}

func TestStyles_EnabledKeepsText(t *testing.T) {
	s := NewStyles(true)
	if !s.Enabled() {
		t.Fatal("Enabled() = false")
	}

	got := s.Header(header)
	for _, want := range []string{"@name", " X", "@noframes", "==UserScript=="} {
		if !strings.Contains(got, want) {
			t.Errorf("styled header misses %q: %q", want, got)
		}
	}
	if strings.Count(got, "\n") != strings.Count(header, "\n") {
		t.Errorf("styled header changed the line count: %q", got)
	}
}
