package statistics

import (
	"fmt"
	"math"

	"github.com/lox/twentyone/internal/game"
)

// maxTotal bounds the totals histogram; the worst possible hand is a hard
// 20 hit with a ten.
const maxTotal = 30

// RoundResult represents the outcome of a single round from the player's side
type RoundResult struct {
	Net         float64 // +1 for a player win, -1 for a loss, 0 for a tie
	Seed        int64   // RNG seed for this round (for replay)
	PlayerTotal int
	DealerTotal int
	PlayerBust  bool
	DealerBust  bool
	Natural     bool // Player was dealt 21 in two cards
	PlayerCards int
}

// ResultFromOutcome converts a settled round into a result for the player seat
func ResultFromOutcome(o game.Outcome, table game.Snapshot, seed int64) RoundResult {
	r := RoundResult{
		Seed:        seed,
		PlayerTotal: o.PlayerTotal,
		DealerTotal: o.DealerTotal,
	}
	switch {
	case o.Tie:
	case o.WinnerRole == game.RolePlayer:
		r.Net = 1
	default:
		r.Net = -1
	}
	if o.Busted != "" {
		r.PlayerBust = o.WinnerRole == game.RoleDealer
		r.DealerBust = o.WinnerRole == game.RolePlayer
	}
	if p, ok := table.Participant(game.RolePlayer); ok {
		r.PlayerCards = len(p.Cards)
		r.Natural = r.PlayerCards == 2 && p.Total == game.Twentyone
	}
	return r
}

// Statistics tracks round outcomes for the player seat over a simulation
type Statistics struct {
	Rounds  int
	SumNet  float64
	SumNet2 float64 // Sum of squares for variance calculation

	Wins   int
	Losses int
	Ties   int

	PlayerBusts int
	DealerBusts int
	Naturals    int

	PlayerCards int // Cards held by the player, summed over rounds

	PlayerTotals [maxTotal + 1]int // Final player total histogram
	DealerTotals [maxTotal + 1]int // Final dealer total histogram
}

// Add incorporates a new round result into the statistics
func (s *Statistics) Add(result RoundResult) {
	s.Rounds++
	s.SumNet += result.Net
	s.SumNet2 += result.Net * result.Net

	switch {
	case result.Net > 0:
		s.Wins++
	case result.Net < 0:
		s.Losses++
	default:
		s.Ties++
	}

	if result.PlayerBust {
		s.PlayerBusts++
	}
	if result.DealerBust {
		s.DealerBusts++
	}
	if result.Natural {
		s.Naturals++
	}
	s.PlayerCards += result.PlayerCards

	s.PlayerTotals[clampTotal(result.PlayerTotal)]++
	s.DealerTotals[clampTotal(result.DealerTotal)]++
}

func clampTotal(t int) int {
	return max(0, min(t, maxTotal))
}

// Merge folds other into s. Workers keep their own Statistics and merge
// once at the end.
func (s *Statistics) Merge(other *Statistics) {
	s.Rounds += other.Rounds
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Ties += other.Ties
	s.PlayerBusts += other.PlayerBusts
	s.DealerBusts += other.DealerBusts
	s.Naturals += other.Naturals
	s.PlayerCards += other.PlayerCards
	for i := range s.PlayerTotals {
		s.PlayerTotals[i] += other.PlayerTotals[i]
		s.DealerTotals[i] += other.DealerTotals[i]
	}
}

// Mean returns the expected result per round (+1 win, -1 loss)
func (s *Statistics) Mean() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.SumNet / float64(s.Rounds)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Rounds < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Rounds)*mean*mean) / float64(s.Rounds-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Rounds))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the fraction of rounds the player won
func (s *Statistics) WinRate() float64 {
	return s.rate(s.Wins)
}

// LossRate returns the fraction of rounds the player lost
func (s *Statistics) LossRate() float64 {
	return s.rate(s.Losses)
}

// TieRate returns the fraction of rounds that tied
func (s *Statistics) TieRate() float64 {
	return s.rate(s.Ties)
}

// BustRate returns the fraction of rounds the player busted
func (s *Statistics) BustRate() float64 {
	return s.rate(s.PlayerBusts)
}

// DealerBustRate returns the fraction of rounds the dealer busted
func (s *Statistics) DealerBustRate() float64 {
	return s.rate(s.DealerBusts)
}

func (s *Statistics) rate(n int) float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(n) / float64(s.Rounds)
}

// AverageCards returns the mean number of cards the player ended a round with
func (s *Statistics) AverageCards() float64 {
	return s.rate(s.PlayerCards)
}

// MeanPlayerTotal returns the mean final player total
func (s *Statistics) MeanPlayerTotal() float64 {
	return s.meanOf(s.PlayerTotals[:])
}

// MeanDealerTotal returns the mean final dealer total
func (s *Statistics) MeanDealerTotal() float64 {
	return s.meanOf(s.DealerTotals[:])
}

func (s *Statistics) meanOf(hist []int) float64 {
	if s.Rounds == 0 {
		return 0
	}
	sum := 0
	for total, n := range hist {
		sum += total * n
	}
	return float64(sum) / float64(s.Rounds)
}

// IsLedgerBalanced checks that the net result matches the win/loss counts
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.SumNet-float64(s.Wins-s.Losses)) <= 1e-6
}

// Validate performs comprehensive validation of statistics data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: SumNet=%.6f, Wins=%d, Losses=%d", s.SumNet, s.Wins, s.Losses)
	}

	if s.Rounds <= 0 {
		return fmt.Errorf("invalid rounds count: %d", s.Rounds)
	}

	if s.Wins+s.Losses+s.Ties != s.Rounds {
		return fmt.Errorf("wins (%d) + losses (%d) + ties (%d) does not match rounds (%d)",
			s.Wins, s.Losses, s.Ties, s.Rounds)
	}

	// a bust always decides the round
	if s.PlayerBusts > s.Losses {
		return fmt.Errorf("player busts (%d) exceed losses (%d)", s.PlayerBusts, s.Losses)
	}
	if s.DealerBusts > s.Wins {
		return fmt.Errorf("dealer busts (%d) exceed wins (%d)", s.DealerBusts, s.Wins)
	}

	for _, hist := range [][]int{s.PlayerTotals[:], s.DealerTotals[:]} {
		n := 0
		for _, c := range hist {
			n += c
		}
		if n != s.Rounds {
			return fmt.Errorf("totals histogram holds %d rounds, want %d", n, s.Rounds)
		}
	}

	return nil
}

// Collector gathers statistics from an engine's event bus
type Collector struct {
	stats *Statistics
	seed  int64
}

// NewCollector creates a collector adding to stats
func NewCollector(stats *Statistics) *Collector {
	return &Collector{stats: stats}
}

// SetSeed records the seed of the round about to be played
func (c *Collector) SetSeed(seed int64) {
	c.seed = seed
}

// OnEvent implements game.EventSubscriber
func (c *Collector) OnEvent(event game.GameEvent) {
	if e, ok := event.(game.RoundEndEvent); ok {
		c.stats.Add(ResultFromOutcome(e.Outcome, e.Table(), c.seed))
	}
}
