package game

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/twentyone/internal/deck"
)

// initialDeal is the number of cards dealt before anyone acts:
// player, dealer, player, dealer.
const initialDeal = 4

// ErrHandsNotEmpty is returned when a round is started before the previous
// round's hands were cleared.
var ErrHandsNotEmpty = errors.New("hands must be empty at round start")

// Shoe is the card source for one round
type Shoe interface {
	Draw() (deck.Card, error)
	Remaining() int
}

// Outcome is the settled result of a round
type Outcome struct {
	Round       int
	Tie         bool
	Winner      string // empty on a tie
	WinnerRole  Role
	Busted      string // name of the participant who went over 21, if any
	PlayerTotal int
	DealerTotal int
}

// String returns a short description of the outcome
func (o Outcome) String() string {
	switch {
	case o.Tie:
		return fmt.Sprintf("tie at %d", o.PlayerTotal)
	case o.Busted != "":
		return fmt.Sprintf("%s wins, %s busted", o.Winner, o.Busted)
	default:
		return fmt.Sprintf("%s wins %d to %d", o.Winner, o.PlayerTotal, o.DealerTotal)
	}
}

// Engine plays rounds between the two participants at a table. Each call to
// PlayRound runs Dealing -> PlayerTurns -> Showdown -> Settled to completion
// unless the shoe or a decision provider fails.
type Engine struct {
	table  *Table
	bus    EventBus
	logger *log.Logger
	clock  quartz.Clock
	newID  func() string

	rounds  int
	roundID string
	phase   Phase
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithEventBus publishes round events to bus
func WithEventBus(bus EventBus) EngineOption {
	return func(e *Engine) { e.bus = bus }
}

// WithLogger sets the engine logger
func WithLogger(logger *log.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger.WithPrefix("round") }
}

// WithClock sets the clock used to timestamp events
func WithClock(clock quartz.Clock) EngineOption {
	return func(e *Engine) { e.clock = clock }
}

// WithRoundIDs replaces the generator for round IDs
func WithRoundIDs(newID func() string) EngineOption {
	return func(e *Engine) { e.newID = newID }
}

// NewEngine creates an engine for table
func NewEngine(table *Table, opts ...EngineOption) *Engine {
	e := &Engine{
		table:  table,
		bus:    NewEventBus(),
		logger: log.New(io.Discard),
		clock:  quartz.NewReal(),
		newID:  newRoundID,
		phase:  PhaseSettled,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func newRoundID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// GetEventBus returns the event bus for subscribing to round events
func (e *Engine) GetEventBus() EventBus {
	return e.bus
}

// Table returns the table the engine plays at
func (e *Engine) Table() *Table {
	return e.table
}

// Phase returns the phase of the current or last round
func (e *Engine) Phase() Phase {
	return e.phase
}

// Rounds returns the number of rounds started
func (e *Engine) Rounds() int {
	return e.rounds
}

// PlayRound deals a round from shoe and plays it to settlement. Both hands
// must be empty. The winner's scoreboard is incremented before returning.
func (e *Engine) PlayRound(ctx context.Context, shoe Shoe) (Outcome, error) {
	if e.table.CardsHeld() != 0 {
		return Outcome{}, ErrHandsNotEmpty
	}

	e.rounds++
	e.roundID = e.newID()
	e.phase = PhaseDealing
	e.logger.Debug("Starting round", "round", e.rounds, "roundID", e.roundID)
	e.bus.Publish(RoundStartEvent{eventBase: e.event(nil), Round: e.rounds})

	if err := e.deal(shoe); err != nil {
		return Outcome{}, fmt.Errorf("round %d dealing: %w", e.rounds, err)
	}

	var busted *Participant
	if e.table.Player.Hand.Blackjack() {
		e.logger.Debug("Player dealt 21, skipping turns", "player", e.table.Player.Name)
	} else {
		e.phase = PhasePlayerTurns
		var err error
		busted, err = e.playTurns(ctx, shoe)
		if err != nil {
			return Outcome{}, fmt.Errorf("round %d turns: %w", e.rounds, err)
		}
	}

	e.phase = PhaseShowdown
	e.bus.Publish(ShowdownEvent{eventBase: e.event(nil)})
	winner, outcome := e.showdown(busted)

	if err := e.validateCardConservation(shoe); err != nil {
		e.logger.Error("Card conservation violation detected!", "error", err)
		return Outcome{}, fmt.Errorf("round %d: %w", e.rounds, err)
	}

	e.settle(winner)
	e.logger.Debug("Round complete", "round", e.rounds, "outcome", outcome.String())
	e.bus.Publish(RoundEndEvent{eventBase: e.event(nil), Outcome: outcome})
	return outcome, nil
}

// deal gives two cards each, alternating player and dealer
func (e *Engine) deal(shoe Shoe) error {
	order := e.table.Participants()
	for i := 0; i < initialDeal; i++ {
		if err := e.drawTo(order[i%len(order)], shoe); err != nil {
			return err
		}
	}
	return nil
}

// playTurns runs each participant's turn in order. It returns the
// participant who busted, ending every remaining turn at once.
func (e *Engine) playTurns(ctx context.Context, shoe Shoe) (*Participant, error) {
	for _, p := range e.table.Participants() {
		if p.Hand.Blackjack() {
			e.logger.Debug("Skipping turn on 21", "participant", p.Name)
			continue
		}
		busted, err := e.takeTurn(ctx, p, shoe)
		if err != nil {
			return nil, err
		}
		if busted {
			return p, nil
		}
	}
	return nil, nil
}

// takeTurn lets p draw until its policy stays, it reaches 21 or it busts
func (e *Engine) takeTurn(ctx context.Context, p *Participant, shoe Shoe) (bool, error) {
	e.bus.Publish(TurnStartEvent{eventBase: e.event(p), Participant: p.Name, Role: p.Role})

	for {
		decision := Stay
		if !p.Hand.Blackjack() {
			stay, err := p.Policy.ShouldStay(ctx, e.turnState(p))
			if err != nil {
				return false, fmt.Errorf("%s decision: %w", p.Name, err)
			}
			if !stay {
				decision = Hit
			}
		}

		e.logger.Debug("Decision", "participant", p.Name, "decision", decision, "total", p.Hand.Total())
		e.bus.Publish(DecisionEvent{eventBase: e.event(p), Participant: p.Name, Role: p.Role, Decision: decision})
		if decision == Stay {
			return false, nil
		}

		if err := e.drawTo(p, shoe); err != nil {
			return false, err
		}
		if p.Hand.Busted() {
			e.logger.Debug("Bust", "participant", p.Name, "total", p.Hand.Total())
			e.bus.Publish(BustEvent{eventBase: e.event(p), Participant: p.Name, Role: p.Role, Total: p.Hand.Total()})
			return true, nil
		}
	}
}

// drawTo moves one card from the shoe into p's hand
func (e *Engine) drawTo(p *Participant, shoe Shoe) error {
	card, err := shoe.Draw()
	if err != nil {
		return fmt.Errorf("draw for %s: %w", p.Name, err)
	}
	p.Hand.Add(card)

	ev := CardDealtEvent{eventBase: e.event(p), Recipient: p.Name, Role: p.Role}
	view, _ := ev.table.Participant(p.Role)
	ev.Card = view.Cards[len(view.Cards)-1]
	e.bus.Publish(ev)
	return nil
}

// showdown decides the round. A bust loses outright; otherwise the higher
// total wins and equal totals tie.
func (e *Engine) showdown(busted *Participant) (*Participant, Outcome) {
	player, dealer := e.table.Player, e.table.Dealer
	outcome := Outcome{
		Round:       e.rounds,
		PlayerTotal: player.Hand.Total(),
		DealerTotal: dealer.Hand.Total(),
	}

	var winner *Participant
	switch {
	case busted != nil:
		outcome.Busted = busted.Name
		winner = e.table.Opponent(busted)
	case outcome.PlayerTotal > outcome.DealerTotal:
		winner = player
	case outcome.DealerTotal > outcome.PlayerTotal:
		winner = dealer
	default:
		outcome.Tie = true
		return nil, outcome
	}

	outcome.Winner = winner.Name
	outcome.WinnerRole = winner.Role
	return winner, outcome
}

// settle scores the round; a tie scores nobody
func (e *Engine) settle(winner *Participant) {
	if winner != nil {
		winner.Score.Increment()
	}
	e.phase = PhaseSettled
}

// validateCardConservation checks that no card was lost or duplicated
func (e *Engine) validateCardConservation(shoe Shoe) error {
	if total := shoe.Remaining() + e.table.CardsHeld(); total != deck.Size {
		return fmt.Errorf("card conservation violation: %d in shoe + %d in hands = %d, want %d",
			shoe.Remaining(), e.table.CardsHeld(), total, deck.Size)
	}
	return nil
}

// masked reports whether the dealer's hole card is hidden from the table
// while actor is acting.
func (e *Engine) masked(actor *Participant) bool {
	switch e.phase {
	case PhaseDealing:
		return true
	case PhasePlayerTurns:
		return actor != nil && !actor.IsDealer()
	default:
		return false
	}
}

// snapshot pictures the table as seen while actor acts
func (e *Engine) snapshot(actor *Participant) Snapshot {
	return NewSnapshot(e.roundID, e.rounds, e.phase, actor, e.masked(actor), e.table.Participants()...)
}

func (e *Engine) event(actor *Participant) eventBase {
	return eventBase{table: e.snapshot(actor), timestamp: e.clock.Now()}
}

// turnState is what p's policy decides from: its own hand in full, the
// table with the hole card hidden unless p is the dealer.
func (e *Engine) turnState(p *Participant) TurnState {
	return TurnState{
		Self:  p.handView(),
		Table: e.snapshot(p),
	}
}
