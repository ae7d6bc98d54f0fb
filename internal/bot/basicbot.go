package bot

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/twentyone/internal/deck"
	"github.com/lox/twentyone/internal/game"
)

// BasicBot plays the hit/stay half of the usual basic strategy chart,
// reading the dealer's upcard. Without an upcard it stands on 17.
type BasicBot struct {
	logger *log.Logger
}

// NewBasicBot creates a new BasicBot instance
func NewBasicBot(logger *log.Logger) *BasicBot {
	return &BasicBot{logger: logger}
}

func (b *BasicBot) Decide(_ context.Context, state game.TurnState) (game.Decision, error) {
	total := state.Self.Total
	upcard, ok := state.DealerUpcard()
	if !ok {
		return standOn(total, game.HouseRule), nil
	}

	up := upcardValue(upcard)
	var d game.Decision
	if state.Self.Soft {
		d = b.soft(total, up)
	} else {
		d = b.hard(total, up)
	}
	b.logger.Debug("basic-bot decision", "total", total, "soft", state.Self.Soft, "upcard", upcard, "decision", d)
	return d, nil
}

func (b *BasicBot) hard(total, up int) game.Decision {
	switch {
	case total >= 17:
		return game.Stay
	case total >= 13:
		// dealer showing a bust card
		return standWhen(up <= 6)
	case total == 12:
		return standWhen(up >= 4 && up <= 6)
	default:
		return game.Hit
	}
}

func (b *BasicBot) soft(total, up int) game.Decision {
	switch {
	case total >= 19:
		return game.Stay
	case total == 18:
		return standWhen(up <= 8)
	default:
		return game.Hit
	}
}

// upcardValue counts an ace as eleven
func upcardValue(c deck.Card) int {
	if v, ok := c.Value(); ok {
		return v
	}
	return deck.AceHigh
}

func standOn(total, threshold int) game.Decision {
	return standWhen(total >= threshold)
}

func standWhen(stay bool) game.Decision {
	if stay {
		return game.Stay
	}
	return game.Hit
}
