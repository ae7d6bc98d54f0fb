package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/lox/twentyone/internal/bot"
	"github.com/lox/twentyone/internal/config"
	"github.com/lox/twentyone/internal/deck"
	"github.com/lox/twentyone/internal/game"
	"github.com/lox/twentyone/internal/randutil"
)

// botName seats an unnamed bot
const botName = "Robot"

// frontEnd is a screen a person plays through
type frontEnd interface {
	game.EventSubscriber
	game.DecisionProvider
	game.ContinuationProvider
	AskName(ctx context.Context) (string, error)
}

// match is a session wired for an interactive command
type match struct {
	session *game.Session
	history *game.RoundHistory
	seed    int64
}

// newMatch seats the player and a randomly named dealer and subscribes ui
// and the optional history writer to the session's events
func newMatch(ctx context.Context, cfg *config.Config, ui frontEnd, logger *log.Logger) (*match, error) {
	seed := cfg.Game.Seed
	if seed == 0 {
		seed = randutil.NewSeed()
	}
	logger.Info("Using seed", "seed", seed)
	rng := randutil.New(seed)

	provider, name, err := seatPlayer(ctx, cfg, seed, ui, logger)
	if err != nil {
		return nil, err
	}
	dealer := game.RandomDealerName(rng, cfg.Dealer.Names)
	table := game.NewTable(game.NewPlayer(name, provider), game.NewDealer(dealer))

	bus := game.NewEventBus()
	bus.Subscribe(ui)

	m := &match{seed: seed}
	if cfg.Game.HistoryDir != "" {
		m.history = game.NewRoundHistory(game.NewFileHistoryWriter(cfg.Game.HistoryDir))
		bus.Subscribe(m.history)
	}

	shoeRNG := randutil.New(randutil.Derive(seed, 0))
	m.session = game.NewSession(table, func() game.Shoe {
		return deck.New(shoeRNG)
	}, ui,
		game.WithWinThreshold(cfg.Game.WinThreshold),
		game.WithSessionEventBus(bus),
		game.WithSessionLogger(logger),
	)
	return m, nil
}

// seatPlayer returns who decides for the player seat and under which name
func seatPlayer(ctx context.Context, cfg *config.Config, seed int64, ui frontEnd, logger *log.Logger) (game.DecisionProvider, string, error) {
	name := cfg.Player.Name
	if cfg.Player.Strategy != "" {
		provider, err := bot.New(cfg.Player.Strategy, randutil.New(randutil.Derive(seed, 1)), logger)
		if err != nil {
			return nil, "", err
		}
		if name == "" {
			name = botName
		}
		return provider, name, nil
	}

	if name == "" {
		var err error
		if name, err = ui.AskName(ctx); err != nil {
			return nil, "", err
		}
	}
	return ui, name, nil
}

// run plays until the player stops. Quitting is a normal way to leave.
func (m *match) run(ctx context.Context, logger *log.Logger) error {
	err := m.session.Run(ctx)
	for _, herr := range m.historyErrors() {
		logger.Warn("Failed to write round history", "error", herr)
	}

	if err != nil {
		if left(err) {
			logger.Info("Player left", "reason", err, "rounds", m.session.Engine().Rounds())
			return nil
		}
		return fmt.Errorf("game failed (seed %d): %w", m.seed, err)
	}
	logger.Info("Session over", "games", m.session.Games(), "rounds", m.session.Engine().Rounds())
	return nil
}

func (m *match) historyErrors() []error {
	if m.history == nil {
		return nil
	}
	return m.history.Errors()
}

// left reports whether err means the player walked away rather than
// something breaking
func left(err error) bool {
	return errors.Is(err, game.ErrQuit) || errors.Is(err, context.Canceled)
}
