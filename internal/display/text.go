// Package display turns game events and snapshots into localised text.
// The console and the terminal UI share it and add their own styling.
package display

import (
	"strings"

	"github.com/lox/twentyone/internal/catalog"
	"github.com/lox/twentyone/internal/deck"
	"github.com/lox/twentyone/internal/game"
)

// Text formats game values with one locale's messages
type Text struct {
	msgs *catalog.Printer
}

// NewText creates a formatter backed by msgs
func NewText(msgs *catalog.Printer) *Text {
	return &Text{msgs: msgs}
}

// T formats the catalog message key
func (t *Text) T(key string, args ...any) string {
	return t.msgs.T(key, args...)
}

// Name returns the display name for a seat; the dealer's is prefixed,
// e.g. "Dealer: Harpo".
func (t *Text) Name(name string, role game.Role) string {
	if role == game.RoleDealer {
		return t.msgs.T("game.dealer") + name
	}
	return name
}

// CardLabel is the short form of a card shown in a hand, e.g. "King♥"
func (t *Text) CardLabel(card deck.Card) string {
	return t.rank(card.Rank) + card.Suit.String()
}

// CardName spells a card out, e.g. "King of hearts"
func (t *Text) CardName(card deck.Card) string {
	return t.msgs.T("game.card", t.rank(card.Rank), t.msgs.T("game.suit."+card.Suit.Name()))
}

func (t *Text) rank(r deck.Rank) string {
	label := r.Label()
	if r >= deck.Jack {
		return t.msgs.T("game.rank." + strings.ToLower(label))
	}
	return label
}

// Hidden is shown in place of the hole card and the masked total
func (t *Text) Hidden() string {
	return t.msgs.T("game.hidden")
}

// Outcome describes a settled round
func (t *Text) Outcome(o game.Outcome) string {
	switch {
	case o.Tie:
		return t.msgs.T("game.tie", o.PlayerTotal)
	case o.Busted != "":
		busted := game.RolePlayer
		if o.WinnerRole == game.RolePlayer {
			busted = game.RoleDealer
		}
		return t.msgs.T("game.win_bust", t.Name(o.Busted, busted), t.Name(o.Winner, o.WinnerRole))
	default:
		total := o.PlayerTotal
		if o.WinnerRole == game.RoleDealer {
			total = o.DealerTotal
		}
		return t.msgs.T("game.win_round", t.Name(o.Winner, o.WinnerRole), total)
	}
}

// Event returns the narration for event, or "" for events that only
// change what the table looks like. A dealt card is narrated as the
// "dealing to" notice; the hole card gets none.
func (t *Text) Event(event game.GameEvent) string {
	switch e := event.(type) {
	case game.RoundStartEvent:
		return t.msgs.T("game.round", e.Round)
	case game.CardDealtEvent:
		if e.Card.Hidden {
			return ""
		}
		return t.msgs.T("game.dealing", t.Name(e.Recipient, e.Role))
	case game.DecisionEvent:
		if e.Decision == game.Stay {
			return t.msgs.T("game.stays", t.Name(e.Participant, e.Role))
		}
		return t.msgs.T("game.hits", t.Name(e.Participant, e.Role))
	case game.BustEvent:
		return t.msgs.T("game.busts", t.Name(e.Participant, e.Role), e.Total)
	case game.RoundEndEvent:
		return t.Outcome(e.Outcome)
	case game.GameOverEvent:
		return t.msgs.T("game.win_game", t.Name(e.Winner, e.WinnerRole), e.Rounds)
	case game.ScoresResetEvent:
		return t.msgs.T("game.scores_reset")
	default:
		return ""
	}
}
