package game

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
)

// DefaultWinThreshold is the number of round wins that ends a game
const DefaultWinThreshold = 5

// GameResult describes a finished game, passed to the continuation provider
type GameResult struct {
	Winner string
	Role   Role
	Rounds int
	Table  Snapshot
}

// ContinuationProvider decides whether a new game starts once one ends
type ContinuationProvider interface {
	PlayAgain(ctx context.Context, result GameResult) (bool, error)
}

// ContinuationFunc adapts a function to the ContinuationProvider interface
type ContinuationFunc func(ctx context.Context, result GameResult) (bool, error)

// PlayAgain calls f
func (f ContinuationFunc) PlayAgain(ctx context.Context, result GameResult) (bool, error) {
	return f(ctx, result)
}

// ShoeFactory opens a new full deck for each round
type ShoeFactory func() Shoe

// Session plays rounds at one table until a scoreboard reaches the win
// threshold, then asks whether to play another game.
type Session struct {
	id        string
	table     *Table
	engine    *Engine
	newShoe   ShoeFactory
	again     ContinuationProvider
	threshold int
	bus       EventBus
	logger    *log.Logger
	clock     quartz.Clock
	games     int
}

// SessionOption configures a Session
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	threshold int
	bus       EventBus
	logger    *log.Logger
	clock     quartz.Clock
}

// WithWinThreshold sets the number of round wins that ends a game
func WithWinThreshold(n int) SessionOption {
	return func(c *sessionConfig) { c.threshold = n }
}

// WithSessionEventBus publishes round and session events to bus
func WithSessionEventBus(bus EventBus) SessionOption {
	return func(c *sessionConfig) { c.bus = bus }
}

// WithSessionLogger sets the session logger; the engine logs under it too
func WithSessionLogger(logger *log.Logger) SessionOption {
	return func(c *sessionConfig) { c.logger = logger }
}

// WithSessionClock sets the clock used to timestamp events
func WithSessionClock(clock quartz.Clock) SessionOption {
	return func(c *sessionConfig) { c.clock = clock }
}

// NewSession creates a session. newShoe is called once per round; again is
// consulted each time a game is won.
func NewSession(table *Table, newShoe ShoeFactory, again ContinuationProvider, opts ...SessionOption) *Session {
	cfg := sessionConfig{
		threshold: DefaultWinThreshold,
		bus:       NewEventBus(),
		logger:    log.New(io.Discard),
		clock:     quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.threshold < 1 {
		cfg.threshold = DefaultWinThreshold
	}

	return &Session{
		id:        uuid.NewString(),
		table:     table,
		engine:    NewEngine(table, WithEventBus(cfg.bus), WithLogger(cfg.logger), WithClock(cfg.clock)),
		newShoe:   newShoe,
		again:     again,
		threshold: cfg.threshold,
		bus:       cfg.bus,
		logger:    cfg.logger.WithPrefix("session"),
		clock:     cfg.clock,
	}
}

// ID returns the session identifier used in logs
func (s *Session) ID() string {
	return s.id
}

// Engine returns the round engine the session drives
func (s *Session) Engine() *Engine {
	return s.engine
}

// Threshold returns the win threshold
func (s *Session) Threshold() int {
	return s.threshold
}

// Games returns the number of games finished
func (s *Session) Games() int {
	return s.games
}

// Run plays rounds until the continuation provider declines another game or
// a round fails. Cancelling ctx stops the session between rounds; a round in
// progress is only interrupted if a provider gives up on ctx.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Info("Session started", "session", s.id, "threshold", s.threshold,
		"player", s.table.Player.Name, "dealer", s.table.Dealer.Name)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.table.ResetHands()
		if _, err := s.engine.PlayRound(ctx, s.newShoe()); err != nil {
			return fmt.Errorf("session %s: %w", s.id, err)
		}

		leader := s.table.Leader(s.threshold)
		if leader == nil {
			s.bus.Publish(IntermissionEvent{eventBase: s.event(), Threshold: s.threshold})
			continue
		}

		s.games++
		result := GameResult{
			Winner: leader.Name,
			Role:   leader.Role,
			Rounds: s.engine.Rounds(),
			Table:  s.engine.snapshot(nil),
		}
		s.logger.Info("Game over", "winner", leader.Name, "rounds", result.Rounds,
			"player", s.table.Player.Score.Wins(), "dealer", s.table.Dealer.Score.Wins())
		s.bus.Publish(GameOverEvent{eventBase: s.event(), Winner: leader.Name, WinnerRole: leader.Role, Rounds: result.Rounds})

		again, err := s.again.PlayAgain(ctx, result)
		if err != nil {
			return fmt.Errorf("session %s: %w", s.id, err)
		}
		if !again {
			s.logger.Info("Session finished", "games", s.games, "rounds", s.engine.Rounds())
			return nil
		}

		s.table.ResetScores()
		s.bus.Publish(ScoresResetEvent{eventBase: s.event()})
	}
}

func (s *Session) event() eventBase {
	return eventBase{table: s.engine.snapshot(nil), timestamp: s.clock.Now()}
}
