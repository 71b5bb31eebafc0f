package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

// Symbols for visual feedback.
const (
	SymbolCheck      = "✓"
	SymbolCross      = "✗"
	SymbolArrowRight = "→"
	SymbolBullet     = "•"
)

// Styles renders CLI output. A disabled Styles returns text unchanged.
type Styles struct {
	enabled bool

	Title   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Key     lipgloss.Style
	Path    lipgloss.Style
	Muted   lipgloss.Style
}

// NewStyles creates the CLI styles. Pass ColorEnabled(w) for enabled.
func NewStyles(enabled bool) *Styles {
	return &Styles{
		enabled: enabled,
		Title:   lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary),
		Success: lipgloss.NewStyle().Foreground(ColorSuccess),
		Error:   lipgloss.NewStyle().Foreground(ColorError).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(ColorWarning),
		Key:     lipgloss.NewStyle().Foreground(ColorPrimary),
		Path:    lipgloss.NewStyle().Foreground(ColorSecondary).Underline(true),
		Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
	}
}

// Enabled reports whether styling is applied.
func (s *Styles) Enabled() bool {
	return s.enabled
}

// Render applies style to text when styling is enabled.
func (s *Styles) Render(style lipgloss.Style, text string) string {
	if !s.enabled || text == "" {
		return text
	}
	return style.Render(text)
}

// Check renders a success line prefixed with a check mark.
func (s *Styles) Check(text string) string {
	return s.Render(s.Success, SymbolCheck) + " " + text
}

// Cross renders a failure line prefixed with a cross.
func (s *Styles) Cross(text string) string {
	return s.Render(s.Error, SymbolCross) + " " + text
}

// Header highlights the @keys of a rendered metadata block line by line.
// With styling disabled it returns the header unchanged.
func (s *Styles) Header(header string) string {
	if !s.enabled {
		return header
	}

	lines := strings.SplitAfter(header, "\n")
	var b strings.Builder
	for _, line := range lines {
		body := strings.TrimSuffix(line, "\n")
		nl := line[len(body):]

		rest, ok := strings.CutPrefix(body, "// @")
		switch {
		case ok:
			key, value, hasValue := strings.Cut(rest, " ")
			b.WriteString(s.Render(s.Muted, "//"))
			b.WriteString(" ")
			b.WriteString(s.Render(s.Key, "@"+key))
			if hasValue {
				b.WriteString(" ")
				b.WriteString(value)
			}
		case strings.HasPrefix(body, "// =="):
			b.WriteString(s.Render(s.Title, body))
		default:
			b.WriteString(body)
		}
		b.WriteString(nl)
	}
	return b.String()
}
