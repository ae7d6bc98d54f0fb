package statistics

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/twentyone/internal/deck"
	"github.com/lox/twentyone/internal/game"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.WinRate())
	assert.Zero(t, stats.MeanPlayerTotal())
	assert.Error(t, stats.Validate(), "no rounds recorded")
}

func TestStatistics_SingleValue(t *testing.T) {
	stats := &Statistics{}
	stats.Add(RoundResult{Net: 1, PlayerTotal: 20, DealerTotal: 18, PlayerCards: 2})

	assert.Equal(t, 1, stats.Rounds)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 1.0, stats.Mean())
	assert.Zero(t, stats.Variance(), "single value has no variance")
	assert.Equal(t, 20.0, stats.MeanPlayerTotal())
	assert.Equal(t, 18.0, stats.MeanDealerTotal())
	assert.NoError(t, stats.Validate())
}

func TestStatistics_MultipleValues(t *testing.T) {
	stats := &Statistics{}
	results := []RoundResult{
		{Net: 1, PlayerTotal: 20, DealerTotal: 26, DealerBust: true, PlayerCards: 2},
		{Net: -1, PlayerTotal: 24, DealerTotal: 10, PlayerBust: true, PlayerCards: 3},
		{Net: 0, PlayerTotal: 19, DealerTotal: 19, PlayerCards: 2},
		{Net: 1, PlayerTotal: 21, DealerTotal: 17, Natural: true, PlayerCards: 2},
	}
	for _, r := range results {
		stats.Add(r)
	}

	assert.Equal(t, 4, stats.Rounds)
	assert.Equal(t, 2, stats.Wins)
	assert.Equal(t, 1, stats.Losses)
	assert.Equal(t, 1, stats.Ties)
	assert.Equal(t, 1, stats.PlayerBusts)
	assert.Equal(t, 1, stats.DealerBusts)
	assert.Equal(t, 1, stats.Naturals)
	assert.InDelta(t, 0.25, stats.Mean(), 1e-9)
	assert.InDelta(t, 0.5, stats.WinRate(), 1e-9)
	assert.InDelta(t, 0.25, stats.BustRate(), 1e-9)
	assert.InDelta(t, 2.25, stats.AverageCards(), 1e-9)
	assert.InDelta(t, 21.0, stats.MeanPlayerTotal(), 1e-9)

	// values 1, -1, 0, 1: mean 0.25, sum of squares 3
	expectedVariance := (3 - 4*0.25*0.25) / 3
	assert.InDelta(t, expectedVariance, stats.Variance(), 1e-9)
	assert.InDelta(t, math.Sqrt(expectedVariance)/2, stats.StdError(), 1e-9)

	lower, upper := stats.ConfidenceInterval95()
	assert.Less(t, lower, stats.Mean())
	assert.Greater(t, upper, stats.Mean())
	assert.NoError(t, stats.Validate())
}

func TestStatistics_Merge(t *testing.T) {
	a, b, all := &Statistics{}, &Statistics{}, &Statistics{}
	results := []RoundResult{
		{Net: 1, PlayerTotal: 20, DealerTotal: 18},
		{Net: -1, PlayerTotal: 22, DealerTotal: 10, PlayerBust: true},
		{Net: 0, PlayerTotal: 18, DealerTotal: 18},
	}
	for i, r := range results {
		all.Add(r)
		if i%2 == 0 {
			a.Add(r)
		} else {
			b.Add(r)
		}
	}

	a.Merge(b)
	assert.Equal(t, all, a)
}

func TestStatistics_ValidateCatchesCorruption(t *testing.T) {
	stats := &Statistics{}
	stats.Add(RoundResult{Net: 1, PlayerTotal: 20, DealerTotal: 18})
	require.NoError(t, stats.Validate())

	stats.SumNet = 5
	assert.ErrorContains(t, stats.Validate(), "ledger mismatch")

	stats.SumNet = 1
	stats.PlayerBusts = 1
	assert.ErrorContains(t, stats.Validate(), "player busts")

	stats.PlayerBusts = 0
	stats.PlayerTotals[20] = 0
	assert.ErrorContains(t, stats.Validate(), "histogram")
}

func TestResultFromOutcome(t *testing.T) {
	tests := []struct {
		name    string
		outcome game.Outcome
		want    RoundResult
	}{
		{
			name:    "player wins",
			outcome: game.Outcome{Winner: "Alice", WinnerRole: game.RolePlayer, PlayerTotal: 20, DealerTotal: 18},
			want:    RoundResult{Net: 1, PlayerTotal: 20, DealerTotal: 18},
		},
		{
			name:    "player busts",
			outcome: game.Outcome{Winner: "Harpo", WinnerRole: game.RoleDealer, Busted: "Alice", PlayerTotal: 25, DealerTotal: 18},
			want:    RoundResult{Net: -1, PlayerTotal: 25, DealerTotal: 18, PlayerBust: true},
		},
		{
			name:    "dealer busts",
			outcome: game.Outcome{Winner: "Alice", WinnerRole: game.RolePlayer, Busted: "Harpo", PlayerTotal: 15, DealerTotal: 22},
			want:    RoundResult{Net: 1, PlayerTotal: 15, DealerTotal: 22, DealerBust: true},
		},
		{
			name:    "tie",
			outcome: game.Outcome{Tie: true, PlayerTotal: 19, DealerTotal: 19},
			want:    RoundResult{PlayerTotal: 19, DealerTotal: 19},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResultFromOutcome(tt.outcome, game.Snapshot{}, 0))
		})
	}
}

func TestCollector(t *testing.T) {
	stats := &Statistics{}
	collector := NewCollector(stats)

	provider := game.DecisionFunc(func(context.Context, game.TurnState) (game.Decision, error) {
		return game.Stay, nil
	})
	table := game.NewTable(game.NewPlayer("Alice", provider), game.NewDealer("Harpo"))
	engine := game.NewEngine(table)
	engine.GetEventBus().Subscribe(collector)

	// Player dealt 21, then a dealer win
	for _, cards := range []string{"AhKcTs9d", "Th9c7s6d5h"} {
		table.ResetHands()
		shoe, err := deck.NewStacked(deck.MustParseCards(cards)...)
		require.NoError(t, err)
		collector.SetSeed(42)
		_, err = engine.PlayRound(context.Background(), shoe)
		require.NoError(t, err)
	}

	assert.Equal(t, 2, stats.Rounds)
	assert.Equal(t, 1, stats.Wins)
	assert.Equal(t, 1, stats.Losses)
	assert.Equal(t, 1, stats.Naturals)
	assert.Equal(t, 4, stats.PlayerCards)
	assert.NoError(t, stats.Validate())
}
