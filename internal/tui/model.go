// Package tui is the full-screen front end. A Model renders the table and
// a scrolling game log; an Agent feeds it events and blocks the engine's
// decision calls until the player presses a key.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/twentyone/internal/config"
	"github.com/lox/twentyone/internal/display"
	"github.com/lox/twentyone/internal/game"
)

// maxRuleWidth caps the rules drawn between seats
const maxRuleWidth = 80

// mode is what the model is waiting for from the keyboard
type mode int

const (
	modeWaiting mode = iota
	modeName
	modeDecide
	modeContinue
	modeAgain
	modeDone
)

// reply carries the player's answer back to the Agent
type reply struct {
	decision game.Decision
	yes      bool
	name     string
	err      error
}

// eventMsg delivers a game event to the model
type eventMsg struct {
	event game.GameEvent
}

// promptMsg switches the model into a mode that waits for an answer
type promptMsg struct {
	mode mode
}

// doneMsg reports that the session ended, with its error if any
type doneMsg struct {
	err error
}

// Model is the Bubble Tea model for a game of twenty-one
type Model struct {
	text   *display.Text
	logger *log.Logger
	keys   keyMap
	help   help.Model

	logViewport viewport.Model
	nameInput   textinput.Model

	gameLog  []string
	table    game.Snapshot
	mode     mode
	notice   string
	replies  chan<- reply
	quitting bool

	width  int
	height int
}

// NewModel creates a model that sends answers on replies
func NewModel(text *display.Text, replies chan<- reply, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = text.T("prompt.name")
	ti.CharLimit = 32
	ti.Width = 32
	ti.Prompt = "> "
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)

	return &Model{
		text:        text,
		logger:      logger.WithPrefix("tui"),
		keys:        newKeyMap(text),
		help:        help.New(),
		logViewport: vp,
		nameInput:   ti,
		gameLog:     []string{},
		replies:     replies,
	}
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case eventMsg:
		m.handleEvent(msg.event)
		return m, nil

	case promptMsg:
		m.mode = msg.mode
		m.notice = ""
		if m.mode == modeName {
			m.nameInput.SetValue("")
			return m, m.nameInput.Focus()
		}
		return m, nil

	case doneMsg:
		m.mode = modeDone
		if msg.err != nil {
			m.AddLogEntry(ErrorStyle.Render(msg.err.Error()))
		}
		m.AddLogEntry(m.text.T("game.goodbye"))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Abort) || (m.mode != modeName && key.Matches(msg, m.keys.Quit)) {
		return m.quit()
	}

	switch m.mode {
	case modeDone:
		return m.quit()

	case modeName:
		if key.Matches(msg, m.keys.Submit) {
			name := strings.TrimSpace(m.nameInput.Value())
			if !config.IsValidName(name) {
				m.notice = m.text.T("prompt.name_invalid")
				return m, nil
			}
			m.nameInput.Blur()
			m.answer(reply{name: name})
			return m, nil
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd

	case modeDecide:
		switch {
		case key.Matches(msg, m.keys.Hit):
			m.answer(reply{decision: game.Hit})
			return m, nil
		case key.Matches(msg, m.keys.Stay):
			m.answer(reply{decision: game.Stay})
			return m, nil
		}

	case modeAgain:
		switch {
		case key.Matches(msg, m.keys.Yes):
			m.answer(reply{yes: true})
			return m, nil
		case key.Matches(msg, m.keys.No):
			m.answer(reply{yes: false})
			return m, nil
		}

	case modeContinue:
		if key.Matches(msg, m.keys.Continue) {
			m.answer(reply{})
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// answer hands r to the waiting Agent and stops listening for answers
func (m *Model) answer(r reply) {
	m.mode = modeWaiting
	m.notice = ""
	select {
	case m.replies <- r:
	default:
		m.logger.Warn("Dropped answer, nobody is waiting", "decision", r.decision)
	}
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	select {
	case m.replies <- reply{err: game.ErrQuit}:
	default:
	}
	return m, tea.Quit
}

func (m *Model) handleEvent(event game.GameEvent) {
	if len(event.Table().Participants) > 0 {
		m.table = event.Table()
	}

	line := m.text.Event(event)
	if line == "" {
		return
	}
	switch e := event.(type) {
	case game.RoundStartEvent:
		line = HeaderStyle.Render(line)
	case game.RoundEndEvent, game.GameOverEvent:
		line = SuccessStyle.Render(line)
	case game.BustEvent:
		line = ErrorStyle.Render(line)
	case game.CardDealtEvent:
		line += " " + m.renderCard(e.Card)
	}
	m.AddLogEntry(line)
}

// AddLogEntry adds an entry to the game log and scrolls to it
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Log returns the game log lines
func (m *Model) Log() []string {
	return append([]string(nil), m.gameLog...)
}

func (m *Model) resize() {
	tableHeight := lipgloss.Height(m.renderTable())
	footerHeight := lipgloss.Height(m.renderFooter())
	width := max(m.width-2, 1)
	height := max(m.height-tableHeight-footerHeight-4, 1)

	m.logViewport.Width = width
	m.logViewport.Height = height
	m.logViewport.GotoBottom()
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	paneWidth := max(m.width-2, 1)
	tablePane := PaneStyle.Width(paneWidth).Render(m.renderTable())

	logStyle := PaneStyle
	if m.mode == modeWaiting {
		logStyle = ActivePaneStyle
	}
	logPane := logStyle.Width(paneWidth).Render(m.logViewport.View())

	return lipgloss.JoinVertical(lipgloss.Left, tablePane, logPane, m.renderFooter())
}

// renderTable draws one block per seat, dealer last, with the rules the
// snapshot asks for between them
func (m *Model) renderTable() string {
	if len(m.table.Participants) == 0 {
		return HeaderStyle.Render(m.text.T("game.title"))
	}

	blocks := make([]string, 0, len(m.table.Participants)+len(m.table.Dividers))
	for i, p := range m.table.Participants {
		nameStyle := SeatStyle
		if p.Role == game.RoleDealer {
			nameStyle = DealerSeatStyle
		}
		cards := make([]string, len(p.Cards))
		for j, cv := range p.Cards {
			cards[j] = m.renderCard(cv)
		}
		if len(cards) == 0 {
			cards = append(cards, InfoStyle.Render(m.text.T("game.empty")))
		}

		blocks = append(blocks, fmt.Sprintf("%s  %s\n%s: %s\n%s: %s",
			nameStyle.Render(m.text.Name(p.Name, p.Role)),
			InfoStyle.Render(fmt.Sprintf("%s %d", m.text.T("game.score"), p.Score)),
			m.text.T("game.hand"), strings.Join(cards, " "),
			m.text.T("game.total"), m.renderTotal(p)))

		for _, d := range m.table.Dividers {
			if d.After == i {
				blocks = append(blocks, m.renderRule(d.Kind))
			}
		}
	}
	return strings.Join(blocks, "\n")
}

func (m *Model) renderRule(kind game.DividerKind) string {
	width := min(max(m.width-2, 1), maxRuleWidth)
	if kind == game.DividerTable {
		return TableRuleStyle.Render(strings.Repeat("=", width))
	}
	return SeatRuleStyle.Render(strings.Repeat("-", width))
}

func (m *Model) renderCard(cv game.CardView) string {
	if cv.Hidden {
		return HiddenCardStyle.Render("[" + m.text.Hidden() + "]")
	}
	style := BlackCardStyle
	if cv.Card.IsRed() {
		style = RedCardStyle
	}
	return style.Render("[" + m.text.CardLabel(cv.Card) + "]")
}

func (m *Model) renderTotal(p game.ParticipantView) string {
	switch {
	case p.TotalHidden:
		return HiddenCardStyle.Render(m.text.Hidden())
	case p.Busted:
		return ErrorStyle.Render(fmt.Sprintf("%d", p.Total))
	default:
		return TotalStyle.Render(fmt.Sprintf("%d", p.Total))
	}
}

// renderFooter shows the current question and the keys that answer it
func (m *Model) renderFooter() string {
	var b strings.Builder

	switch m.mode {
	case modeName:
		b.WriteString(PromptStyle.Render(m.text.T("prompt.name")))
		b.WriteString("\n")
		b.WriteString(m.nameInput.View())
	case modeDecide:
		b.WriteString(PromptStyle.Render(m.text.T("prompt.decision")))
	case modeAgain:
		b.WriteString(PromptStyle.Render(m.text.T("prompt.play_again")))
	case modeContinue:
		b.WriteString(PromptStyle.Render(m.text.T("prompt.continue")))
	case modeDone:
		b.WriteString(InfoStyle.Render(m.text.T("prompt.game_over")))
	default:
		b.WriteString(InfoStyle.Render(m.text.T("prompt.waiting")))
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.notice))
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(m.keys.bindings(m.mode)))
	return b.String()
}
