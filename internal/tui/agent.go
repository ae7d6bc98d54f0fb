package tui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/twentyone/internal/display"
	"github.com/lox/twentyone/internal/game"
)

// Sender delivers messages to a running Bubble Tea program
type Sender interface {
	Send(msg tea.Msg)
}

// Options configures New
type Options struct {
	DealDelay time.Duration
	Clock     quartz.Clock
	Logger    *log.Logger
}

// Agent bridges the engine's blocking calls to the model. It is the
// session's event subscriber, decision provider and continuation provider.
type Agent struct {
	sender  Sender
	replies chan reply
	delay   time.Duration
	clock   quartz.Clock
	logger  *log.Logger
	ctx     context.Context
	err     error
}

// New creates a model and the agent that drives it. Call Attach with the
// program running the model before the session starts.
func New(text *display.Text, opts Options) (*Model, *Agent) {
	if opts.Clock == nil {
		opts.Clock = quartz.NewReal()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	replies := make(chan reply, 1)
	model := NewModel(text, replies, opts.Logger)
	agent := &Agent{
		replies: replies,
		delay:   opts.DealDelay,
		clock:   opts.Clock,
		logger:  opts.Logger.WithPrefix("agent"),
		ctx:     context.Background(),
	}
	return model, agent
}

// Attach sets where the agent sends model messages, usually a *tea.Program
func (a *Agent) Attach(sender Sender) {
	a.sender = sender
}

// Bind sets the context used by waits triggered from events
func (a *Agent) Bind(ctx context.Context) {
	a.ctx = ctx
}

// OnEvent forwards event to the model. Visible cards are paced by the deal
// delay and an intermission waits for the player to continue.
func (a *Agent) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.CardDealtEvent:
		if e.Card.Hidden || a.delay <= 0 {
			break
		}
		timer := a.clock.NewTimer(a.delay, "tui", "deal")
		defer timer.Stop()
		a.sender.Send(eventMsg{event: event})
		select {
		case <-timer.C:
		case <-a.ctx.Done():
		}
		return
	case game.IntermissionEvent:
		a.sender.Send(eventMsg{event: event})
		if a.err != nil {
			return
		}
		if _, err := a.ask(a.ctx, modeContinue); err != nil {
			a.logger.Debug("Intermission ended without an answer", "error", err)
		}
		return
	}
	a.sender.Send(eventMsg{event: event})
}

// Decide waits for the player to press hit or stay
func (a *Agent) Decide(ctx context.Context, state game.TurnState) (game.Decision, error) {
	a.logger.Debug("Waiting for decision", "total", state.Self.Total)
	r, err := a.ask(ctx, modeDecide)
	if err != nil {
		return 0, err
	}
	return r.decision, nil
}

// PlayAgain waits for the player to choose whether to play another game
func (a *Agent) PlayAgain(ctx context.Context, result game.GameResult) (bool, error) {
	a.logger.Debug("Waiting for play again", "winner", result.Winner)
	r, err := a.ask(ctx, modeAgain)
	if err != nil {
		return false, err
	}
	return r.yes, nil
}

// AskName waits for the player to type a name
func (a *Agent) AskName(ctx context.Context) (string, error) {
	r, err := a.ask(ctx, modeName)
	if err != nil {
		return "", err
	}
	return r.name, nil
}

// Finish tells the model the session is over
func (a *Agent) Finish(err error) {
	a.sender.Send(doneMsg{err: err})
}

// ask puts the model in m and blocks until it answers. A quit answer sticks:
// every later question fails with the same error.
func (a *Agent) ask(ctx context.Context, m mode) (reply, error) {
	if a.err != nil {
		return reply{}, a.err
	}
	a.sender.Send(promptMsg{mode: m})

	select {
	case <-ctx.Done():
		return reply{}, ctx.Err()
	case r := <-a.replies:
		if r.err != nil {
			a.err = r.err
			return reply{}, r.err
		}
		return r, nil
	}
}
