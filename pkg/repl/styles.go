package repl

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrompt  = lipgloss.Color("#8B5CF6")
	colorValue   = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
)

type styles struct {
	prompt  lipgloss.Style
	value   lipgloss.Style
	warning lipgloss.Style
	err     lipgloss.Style
}

// newStyles binds the palette to out. A renderer on a non-terminal writer
// emits plain text, as does color=false.
func newStyles(out io.Writer, color bool) styles {
	r := lipgloss.NewRenderer(out)
	s := styles{
		prompt:  r.NewStyle(),
		value:   r.NewStyle(),
		warning: r.NewStyle(),
		err:     r.NewStyle(),
	}
	if !color {
		return s
	}
	s.prompt = s.prompt.Foreground(colorPrompt).Bold(true)
	s.value = s.value.Foreground(colorValue)
	s.warning = s.warning.Foreground(colorWarning)
	s.err = s.err.Foreground(colorError)
	return s
}
