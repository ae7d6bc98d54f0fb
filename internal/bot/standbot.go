package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/twentyone/internal/game"
)

// StandBot hits below a fixed total and stays at or above it
type StandBot struct {
	threshold int
	logger    *log.Logger
}

// NewStandBot creates a new StandBot instance
func NewStandBot(threshold int, logger *log.Logger) *StandBot {
	return &StandBot{threshold: threshold, logger: logger}
}

func (s *StandBot) Decide(_ context.Context, state game.TurnState) (game.Decision, error) {
	if state.Self.Total >= s.threshold {
		s.logger.Debug("stand-bot staying", "total", state.Self.Total, "threshold", s.threshold)
		return game.Stay, nil
	}
	s.logger.Debug("stand-bot hitting", "total", state.Self.Total, "threshold", s.threshold)
	return game.Hit, nil
}
