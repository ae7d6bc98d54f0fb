package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/lox/twentyone/internal/deck"
)

// HouseRule is the total at which the dealer stops drawing
const HouseRule = 17

var (
	// ErrInvalidDecision is returned when a decision provider answers with
	// something other than Hit or Stay.
	ErrInvalidDecision = errors.New("invalid decision")

	// ErrQuit is returned by providers when the person at the keyboard
	// leaves mid-game. The round in progress is abandoned.
	ErrQuit = errors.New("player quit")
)

// Decision is a participant's choice on its turn. The zero value is not a
// valid decision.
type Decision int

const (
	Hit Decision = iota + 1
	Stay
)

// String returns the string representation of a decision
func (d Decision) String() string {
	switch d {
	case Hit:
		return "hit"
	case Stay:
		return "stay"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// Valid reports whether d is Hit or Stay
func (d Decision) Valid() bool {
	return d == Hit || d == Stay
}

// HandView is the read-only state of the acting participant's own hand
type HandView struct {
	Name  string
	Cards []deck.Card
	Total int
	Soft  bool
	Score int
}

// TurnState is everything a decision is made from: the actor's own hand in
// full and the table as the actor is allowed to see it.
type TurnState struct {
	Self  HandView
	Table Snapshot
}

// DealerUpcard returns the dealer's first card, which is never hidden
func (ts TurnState) DealerUpcard() (deck.Card, bool) {
	for _, p := range ts.Table.Participants {
		if p.Role == RoleDealer && len(p.Cards) > 0 && !p.Cards[0].Hidden {
			return p.Cards[0].Card, true
		}
	}
	return deck.Card{}, false
}

// DecisionProvider supplies hit/stay decisions for the player seat, usually
// by asking a human. Providers must resolve their own input retries; the
// engine calls Decide once per turn step and never retries.
type DecisionProvider interface {
	Decide(ctx context.Context, state TurnState) (Decision, error)
}

// DecisionFunc adapts a function to the DecisionProvider interface
type DecisionFunc func(ctx context.Context, state TurnState) (Decision, error)

// Decide calls f
func (f DecisionFunc) Decide(ctx context.Context, state TurnState) (Decision, error) {
	return f(ctx, state)
}

// Policy decides whether a participant stops drawing. Every participant
// carries one; the engine only ever asks ShouldStay.
type Policy interface {
	ShouldStay(ctx context.Context, state TurnState) (bool, error)
}

// PlayerPolicy defers each decision to an external provider
type PlayerPolicy struct {
	Provider DecisionProvider
}

// ShouldStay asks the provider and validates the answer
func (p PlayerPolicy) ShouldStay(ctx context.Context, state TurnState) (bool, error) {
	if p.Provider == nil {
		return false, fmt.Errorf("%s has no decision provider: %w", state.Self.Name, ErrInvalidDecision)
	}
	d, err := p.Provider.Decide(ctx, state)
	if err != nil {
		return false, err
	}
	if !d.Valid() {
		return false, fmt.Errorf("%s answered %s: %w", state.Self.Name, d, ErrInvalidDecision)
	}
	return d == Stay, nil
}

// DealerPolicy is the house rule: stay on HouseRule or more, otherwise hit
type DealerPolicy struct{}

// ShouldStay never consults anything but the dealer's own total
func (DealerPolicy) ShouldStay(_ context.Context, state TurnState) (bool, error) {
	return state.Self.Total >= HouseRule, nil
}
