package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// styles colours the human-facing markers. When disabled every helper
// returns its input untouched so piped output and tests stay byte-stable.
type styles struct {
	enabled bool
	success lipgloss.Style
	pending lipgloss.Style
	info    lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	hint    lipgloss.Style
	header  lipgloss.Style
	title   lipgloss.Style
}

func newStyles(w io.Writer, enabled bool) styles {
	r := lipgloss.NewRenderer(w)
	if !enabled {
		r.SetColorProfile(termenv.Ascii)
	}
	return styles{
		enabled: enabled,
		success: r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		pending: r.NewStyle().Foreground(lipgloss.Color("3")),
		info:    r.NewStyle().Foreground(lipgloss.Color("4")),
		warning: r.NewStyle().Foreground(lipgloss.Color("3")),
		failure: r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		hint:    r.NewStyle().Faint(true),
		header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		title:   r.NewStyle().Bold(true).Italic(true),
	}
}

func (s styles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

// ColorEnabled reports whether styled output should be written to w:
// colour must not be disabled by flag or NO_COLOR, and w must be a terminal.
func ColorEnabled(w io.Writer, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
