// Package bot provides automated decision providers for the player seat,
// used by the simulator and for unattended games.
package bot

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/twentyone/internal/game"
)

// Strategy names accepted by New
const (
	StrategyStand  = "stand-on-"
	StrategyRandom = "random"
	StrategyBasic  = "basic"
)

// DefaultStrategy mirrors the house rule
const DefaultStrategy = "stand-on-17"

// Names lists the strategies New understands, for help text
func Names() []string {
	return []string{StrategyStand + "N", StrategyRandom, StrategyBasic}
}

// New returns the provider for strategy. rng is only used by strategies
// that need one and may be nil otherwise.
func New(strategy string, rng *rand.Rand, logger *log.Logger) (game.DecisionProvider, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.WithPrefix("bot")
	name := strings.ToLower(strings.TrimSpace(strategy))

	switch {
	case strings.HasPrefix(name, StrategyStand):
		n, err := strconv.Atoi(strings.TrimPrefix(name, StrategyStand))
		if err != nil {
			return nil, fmt.Errorf("invalid stand threshold in %q: %w", strategy, err)
		}
		if n < 2 || n > game.Twentyone {
			return nil, fmt.Errorf("stand threshold %d out of range 2-%d", n, game.Twentyone)
		}
		return NewStandBot(n, logger), nil
	case name == StrategyRandom:
		if rng == nil {
			return nil, fmt.Errorf("strategy %q needs a random source", strategy)
		}
		return NewRandBot(rng, logger), nil
	case name == StrategyBasic:
		return NewBasicBot(logger), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want one of %s)", strategy, strings.Join(Names(), ", "))
	}
}

// Validate reports whether New would accept strategy
func Validate(strategy string) error {
	_, err := New(strategy, rand.New(rand.NewPCG(0, 0)), nil)
	return err
}
