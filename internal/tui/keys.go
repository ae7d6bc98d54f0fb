package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/lox/twentyone/internal/display"
)

type keyMap struct {
	Hit      key.Binding
	Stay     key.Binding
	Yes      key.Binding
	No       key.Binding
	Continue key.Binding
	Submit   key.Binding
	Scroll   key.Binding
	Quit     key.Binding
	Abort    key.Binding
}

func newKeyMap(text *display.Text) keyMap {
	return keyMap{
		Hit:      key.NewBinding(key.WithKeys("h"), key.WithHelp("h", text.T("prompt.key.hit"))),
		Stay:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", text.T("prompt.key.stay"))),
		Yes:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", text.T("prompt.key.yes"))),
		No:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", text.T("prompt.key.no"))),
		Continue: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", text.T("prompt.key.continue"))),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", text.T("prompt.key.submit"))),
		Scroll:   key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑/↓", text.T("prompt.key.scroll"))),
		Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", text.T("prompt.key.quit"))),
		Abort:    key.NewBinding(key.WithKeys("ctrl+c", "esc")),
	}
}

// bindings returns the keys worth showing in the help line for mode
func (k keyMap) bindings(m mode) []key.Binding {
	switch m {
	case modeDecide:
		return []key.Binding{k.Hit, k.Stay, k.Scroll, k.Quit}
	case modeAgain:
		return []key.Binding{k.Yes, k.No, k.Scroll}
	case modeContinue:
		return []key.Binding{k.Continue, k.Scroll, k.Quit}
	case modeName:
		return []key.Binding{k.Submit}
	default:
		return []key.Binding{k.Scroll, k.Quit}
	}
}
