package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/twentyone/internal/game"
)

// RandBot is a simple bot that hits or stays with equal odds
type RandBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand, logger *log.Logger) *RandBot {
	return &RandBot{rng: rng, logger: logger}
}

func (r *RandBot) Decide(_ context.Context, state game.TurnState) (game.Decision, error) {
	d := game.Stay
	if r.rng.IntN(2) == 0 {
		d = game.Hit
	}
	r.logger.Debug("rand-bot random decision", "total", state.Self.Total, "decision", d)
	return d, nil
}
