package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/twentyone/internal/catalog"
	"github.com/lox/twentyone/internal/deck"
	"github.com/lox/twentyone/internal/game"
)

func newText(t *testing.T, locale string) *Text {
	t.Helper()
	bundle, err := catalog.LoadEmbedded()
	require.NoError(t, err)
	return NewText(bundle.Printer(locale))
}

func card(s string) deck.Card {
	return deck.MustParseCards(s)[0]
}

func TestCards(t *testing.T) {
	en := newText(t, "en-US")
	assert.Equal(t, "King♥", en.CardLabel(card("Kh")))
	assert.Equal(t, "10♣", en.CardLabel(card("Tc")))
	assert.Equal(t, "Ace of spades", en.CardName(card("As")))
	assert.Equal(t, "7 of diamonds", en.CardName(card("7d")))

	es := newText(t, "es-ES")
	assert.Equal(t, "Rey♥", es.CardLabel(card("Kh")))
	assert.Equal(t, "As de picas", es.CardName(card("As")))
}

func TestName(t *testing.T) {
	en := newText(t, "en-US")
	assert.Equal(t, "Alice", en.Name("Alice", game.RolePlayer))
	assert.Equal(t, "Dealer: Harpo", en.Name("Harpo", game.RoleDealer))
}

func TestOutcome(t *testing.T) {
	en := newText(t, "en-US")

	tests := []struct {
		name    string
		outcome game.Outcome
		want    string
	}{
		{"tie", game.Outcome{Tie: true, PlayerTotal: 19, DealerTotal: 19}, "It's a tie at 19."},
		{"player wins", game.Outcome{Winner: "Alice", WinnerRole: game.RolePlayer, PlayerTotal: 20, DealerTotal: 18}, "Alice wins the round with 20."},
		{"dealer wins", game.Outcome{Winner: "Harpo", WinnerRole: game.RoleDealer, PlayerTotal: 17, DealerTotal: 20}, "Dealer: Harpo wins the round with 20."},
		{"player busts", game.Outcome{Winner: "Harpo", WinnerRole: game.RoleDealer, Busted: "Alice"}, "Alice busted, Dealer: Harpo wins the round."},
		{"dealer busts", game.Outcome{Winner: "Alice", WinnerRole: game.RolePlayer, Busted: "Harpo"}, "Dealer: Harpo busted, Alice wins the round."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, en.Outcome(tt.outcome))
		})
	}
}

func TestEvent(t *testing.T) {
	en := newText(t, "en-US")

	tests := []struct {
		name  string
		event game.GameEvent
		want  string
	}{
		{"round start", game.RoundStartEvent{Round: 3}, "Round 3"},
		{"card", game.CardDealtEvent{Recipient: "Alice", Role: game.RolePlayer, Card: game.CardView{Card: card("Kh")}}, "Dealing to Alice..."},
		{"hole card", game.CardDealtEvent{Recipient: "Harpo", Role: game.RoleDealer, Card: game.CardView{Hidden: true}}, ""},
		{"hit", game.DecisionEvent{Participant: "Harpo", Role: game.RoleDealer, Decision: game.Hit}, "Dealer: Harpo hits"},
		{"stay", game.DecisionEvent{Participant: "Alice", Role: game.RolePlayer, Decision: game.Stay}, "Alice stays"},
		{"bust", game.BustEvent{Participant: "Alice", Role: game.RolePlayer, Total: 25}, "Alice busts with 25!"},
		{"game over", game.GameOverEvent{Winner: "Alice", WinnerRole: game.RolePlayer, Rounds: 7}, "Alice wins the game after 7 rounds!"},
		{"scores reset", game.ScoresResetEvent{}, "Scores have been reset."},
		{"showdown", game.ShowdownEvent{}, ""},
		{"intermission", game.IntermissionEvent{Threshold: 5}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, en.Event(tt.event))
		})
	}
}
