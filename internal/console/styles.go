package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds every style the console draws with. They are bound to one
// lipgloss renderer so colour detection follows the output, not stdout.
type Styles struct {
	Header    lipgloss.Style
	Name      lipgloss.Style
	Dealer    lipgloss.Style
	RedCard   lipgloss.Style
	BlackCard lipgloss.Style
	Hidden    lipgloss.Style
	Total     lipgloss.Style
	Bust      lipgloss.Style
	Win       lipgloss.Style
	Info      lipgloss.Style
	Prompt    lipgloss.Style
	Error     lipgloss.Style
}

// NewRenderer returns a lipgloss renderer for w configured for theme. "auto"
// leaves colour and background detection to termenv.
func NewRenderer(w io.Writer, theme string) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch theme {
	case "plain":
		r.SetColorProfile(termenv.Ascii)
		r.SetHasDarkBackground(true)
	case "dark":
		r.SetHasDarkBackground(true)
	case "light":
		r.SetHasDarkBackground(false)
	}
	return r
}

// NewStyles builds the console styles on r
func NewStyles(r *lipgloss.Renderer) Styles {
	fg := func(light, dark string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: light, Dark: dark})
	}
	return Styles{
		Header:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Padding(0, 1),
		Name:      fg("#1A1A1A", "#FAFAFA").Bold(true),
		Dealer:    fg("#5A3FC0", "#B9A6FF").Bold(true),
		RedCard:   fg("#C0392B", "#FF6B6B").Bold(true),
		BlackCard: fg("#000000", "#FAFAFA").Bold(true),
		Hidden:    fg("#626262", "#626262").Italic(true),
		Total:     fg("#2E7D5B", "#96CEB4").Bold(true),
		Bust:      fg("#C0392B", "#FF6B6B").Bold(true),
		Win:       fg("#2E7D5B", "#96CEB4").Bold(true),
		Info:      fg("#626262", "#9A9A9A"),
		Prompt:    fg("#8A6D00", "#FFD700").Bold(true),
		Error:     fg("#C0392B", "#FF6B6B"),
	}
}
