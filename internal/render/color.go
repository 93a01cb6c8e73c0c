package render

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/custodia-labs/ecoreport/internal/core/domain"
)

// fdWriter is implemented by *os.File.
type fdWriter interface {
	Fd() uintptr
}

// ColorEnabled resolves a colour mode against the destination writer.
// In auto mode only terminals get colour.
func ColorEnabled(mode domain.ColorMode, w io.Writer) bool {
	switch mode {
	case domain.ColorAlways:
		return true
	case domain.ColorNever:
		return false
	}
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// newRenderer returns a lipgloss renderer for w.
// With colour disabled every style renders as plain text.
func newRenderer(w io.Writer, color bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	} else if r.ColorProfile() == termenv.Ascii {
		// Forced colour on a non-terminal.
		r.SetColorProfile(termenv.ANSI256)
	}
	return r
}
