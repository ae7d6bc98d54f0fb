package game

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/twentyone/internal/deck"
)

func TestEventBusSubscribeUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	first, second := &eventRecorder{}, &eventRecorder{}
	bus.Subscribe(first)
	bus.Subscribe(second)

	bus.Publish(ShowdownEvent{})
	bus.Unsubscribe(first)
	bus.Publish(ShowdownEvent{})

	assert.Len(t, first.events, 1)
	assert.Len(t, second.events, 2)
}

func TestEventFormatter(t *testing.T) {
	ef := NewEventFormatter(FormattingOptions{ShowDecisions: true})
	card := deck.MustParseCards("Kd")[0]

	tests := []struct {
		name     string
		event    GameEvent
		expected string
	}{
		{"round start", RoundStartEvent{Round: 3}, "*** ROUND 3 ***"},
		{"card", CardDealtEvent{Recipient: "Alice", Role: RolePlayer, Card: CardView{Card: card}}, "Alice: dealt K♦"},
		{"hole card", CardDealtEvent{Recipient: "Harpo", Role: RoleDealer, Card: CardView{Hidden: true}}, "Dealer Harpo: dealt [hidden]"},
		{"decision", DecisionEvent{Participant: "Alice", Role: RolePlayer, Decision: Hit}, "Alice: hits"},
		{"stay", DecisionEvent{Participant: "Harpo", Role: RoleDealer, Decision: Stay}, "Dealer Harpo: stays"},
		{"bust", BustEvent{Participant: "Alice", Role: RolePlayer, Total: 24}, "Alice: busts with 24"},
		{"tie", RoundEndEvent{Outcome: Outcome{Tie: true, PlayerTotal: 18, DealerTotal: 18}}, "Push at 18"},
		{"win", RoundEndEvent{Outcome: Outcome{Winner: "Alice", PlayerTotal: 20, DealerTotal: 18}}, "Alice wins (20 to 18)"},
		{"game over", GameOverEvent{Winner: "Harpo", WinnerRole: RoleDealer, Rounds: 7}, "Dealer Harpo wins the game after 7 rounds"},
		{"intermission is silent", IntermissionEvent{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ef.Format(tt.event))
		})
	}
}

func TestEventFormatterHidesDecisions(t *testing.T) {
	ef := NewEventFormatter(FormattingOptions{})

	assert.Equal(t, "Alice: busts with 22", ef.Format(BustEvent{Participant: "Alice", Total: 22}))
	assert.Empty(t, ef.Format(DecisionEvent{Participant: "Alice", Decision: Hit}), "decisions hidden by default")
}

func TestFormatTableHidesHoleCard(t *testing.T) {
	table := seated(t, "Th7s", "9c6d")
	s := NewSnapshot("r1", 1, PhasePlayerTurns, table.Player, true, table.Participants()...)

	ef := NewEventFormatter(FormattingOptions{})
	assert.Equal(t, "Alice: [T♥ 7♠] (17)\nDealer Harpo: [9♣ ??] (?)", ef.FormatTable(s))
}

type memoryHistory struct {
	rounds map[string]string
	err    error
}

func (m *memoryHistory) WriteRoundHistory(roundID, content string) error {
	if m.err != nil {
		return m.err
	}
	if m.rounds == nil {
		m.rounds = map[string]string{}
	}
	m.rounds[roundID] = content
	return nil
}

func TestRoundHistoryRecordsRound(t *testing.T) {
	writer := &memoryHistory{}
	table := newTestTable(stays())
	engine, _ := newTestEngine(t, table, WithRoundIDs(func() string { return "abc" }))
	engine.GetEventBus().Subscribe(NewRoundHistory(writer))

	_, err := engine.PlayRound(context.Background(), stacked(t, "Th9c7s6d5h"))
	require.NoError(t, err)

	text, ok := writer.rounds["abc"]
	require.True(t, ok)
	assert.Contains(t, text, "=== ROUND 1 (abc) ===")
	assert.Contains(t, text, "Dealer Harpo: dealt [hidden]")
	assert.Contains(t, text, "Alice: stays")
	assert.Contains(t, text, "Dealer Harpo: hits")
	assert.Contains(t, text, "Dealer Harpo: dealt 5♥")
	assert.Contains(t, text, "*** SHOWDOWN ***")
	assert.Contains(t, text, "Dealer Harpo: [9♣ 6♦ 5♥] (20)")
	assert.Contains(t, text, "Dealer Harpo wins (17 to 20)")
}

func TestRoundHistoryKeepsWriteErrors(t *testing.T) {
	history := NewRoundHistory(&memoryHistory{err: errors.New("disk full")})
	table := newTestTable(stays())
	engine, _ := newTestEngine(t, table)
	engine.GetEventBus().Subscribe(history)

	_, err := engine.PlayRound(context.Background(), stacked(t, "Th9c9sTd"))
	require.NoError(t, err, "history failures never fail the round")
	assert.Len(t, history.Errors(), 1)
}

func TestFileHistoryWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "history")
	w := NewFileHistoryWriter(dir)

	require.NoError(t, w.WriteRoundHistory("abc", "hello\n"))
	data, err := os.ReadFile(filepath.Join(dir, "round_abc.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))

	require.NoError(t, w.WriteRoundHistory("abc", "again\n"))
	data, err = os.ReadFile(filepath.Join(dir, "round_abc.txt"))
	require.NoError(t, err)
	assert.Equal(t, "again\n", string(data), "a rewrite replaces the whole file")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}
