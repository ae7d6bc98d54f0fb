package game

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/twentyone/internal/deck"
)

// scriptedProvider answers with a fixed list of decisions and records every
// state it was asked about.
type scriptedProvider struct {
	decisions []Decision
	err       error
	calls     []TurnState
}

func (p *scriptedProvider) Decide(_ context.Context, state TurnState) (Decision, error) {
	p.calls = append(p.calls, state)
	if p.err != nil {
		return 0, p.err
	}
	if len(p.decisions) == 0 {
		return Stay, nil
	}
	d := p.decisions[0]
	p.decisions = p.decisions[1:]
	return d, nil
}

func stays() *scriptedProvider {
	return &scriptedProvider{}
}

func hits(n int) *scriptedProvider {
	p := &scriptedProvider{}
	for range n {
		p.decisions = append(p.decisions, Hit)
	}
	return p
}

// eventRecorder keeps every event published on a bus
type eventRecorder struct {
	events []GameEvent
}

func (r *eventRecorder) OnEvent(event GameEvent) {
	r.events = append(r.events, event)
}

func (r *eventRecorder) types() []EventType {
	types := make([]EventType, len(r.events))
	for i, e := range r.events {
		types[i] = e.EventType()
	}
	return types
}

func (r *eventRecorder) ofType(t EventType) []GameEvent {
	var out []GameEvent
	for _, e := range r.events {
		if e.EventType() == t {
			out = append(out, e)
		}
	}
	return out
}

// newTestTable seats Alice against the dealer Harpo
func newTestTable(provider DecisionProvider) *Table {
	return NewTable(NewPlayer("Alice", provider), NewDealer("Harpo"))
}

// newTestEngine returns an engine with a recorder subscribed
func newTestEngine(t *testing.T, table *Table, opts ...EngineOption) (*Engine, *eventRecorder) {
	t.Helper()
	rec := &eventRecorder{}
	opts = append([]EngineOption{WithLogger(log.New(io.Discard))}, opts...)
	engine := NewEngine(table, opts...)
	engine.GetEventBus().Subscribe(rec)
	return engine, rec
}

// stacked returns a full deck dealing cards first
func stacked(t *testing.T, cards string) *deck.Stacked {
	t.Helper()
	s, err := deck.NewStacked(deck.MustParseCards(cards)...)
	require.NoError(t, err)
	return s
}

func hand(cards string) *Hand {
	return NewHand(deck.MustParseCards(cards)...)
}

// emptyShoe has nothing to deal
type emptyShoe struct{}

func (emptyShoe) Draw() (deck.Card, error) { return deck.Card{}, deck.ErrEmptyDeck }
func (emptyShoe) Remaining() int           { return 0 }

// leakyShoe miscounts its cards
type leakyShoe struct {
	*deck.Stacked
}

func (s leakyShoe) Remaining() int { return s.Stacked.Remaining() + 1 }
