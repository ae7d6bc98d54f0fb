package simulator

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/twentyone/internal/bot"
	"github.com/lox/twentyone/internal/deck"
	"github.com/lox/twentyone/internal/fileutil"
	"github.com/lox/twentyone/internal/game"
	"github.com/lox/twentyone/internal/randutil"
	"github.com/lox/twentyone/internal/statistics"
)

// Config holds configuration for running simulations
type Config struct {
	Rounds   int
	Workers  int
	Strategy string
	Seed     int64
	Timeout  time.Duration // Zero means no limit
	Logger   *log.Logger
}

// Result is the outcome of a simulation run
type Result struct {
	Stats    *statistics.Statistics
	Strategy string
	Seed     int64
	Workers  int
	Duration time.Duration
}

// Simulator plays many independent rounds of a bot against the dealer
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Strategy == "" {
		config.Strategy = bot.DefaultStrategy
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}
}

// Run executes the simulation. Round r is always dealt from the seed
// randutil.Derive(Seed, r), so results do not depend on the worker count.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if s.config.Rounds <= 0 {
		return nil, fmt.Errorf("rounds must be positive, got %d", s.config.Rounds)
	}
	// Fail on a bad strategy before starting any worker
	if _, err := bot.New(s.config.Strategy, randutil.New(s.config.Seed), s.config.Logger); err != nil {
		return nil, err
	}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	workers := min(s.config.Workers, s.config.Rounds)
	perWorker := make([]*statistics.Statistics, workers)

	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		stats := &statistics.Statistics{}
		perWorker[w] = stats
		g.Go(func() error {
			return s.work(ctx, w, workers, stats)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := &statistics.Statistics{}
	for _, stats := range perWorker {
		total.Merge(stats)
	}
	if err := total.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	result := &Result{
		Stats:    total,
		Strategy: s.config.Strategy,
		Seed:     s.config.Seed,
		Workers:  workers,
		Duration: time.Since(start),
	}
	s.config.Logger.Info("Simulation complete", "rounds", total.Rounds, "workers", workers,
		"strategy", s.config.Strategy, "duration", result.Duration)
	return result, nil
}

// work plays every round r with r % workers == worker on its own table
func (s *Simulator) work(ctx context.Context, worker, workers int, stats *statistics.Statistics) error {
	logger := s.config.Logger.With("worker", worker)
	seat := &botSeat{}
	table := game.NewTable(game.NewPlayer("Bot", seat), game.NewDealer("Dealer"))
	engine := game.NewEngine(table, game.WithLogger(logger))
	collector := statistics.NewCollector(stats)
	engine.GetEventBus().Subscribe(collector)

	for r := worker; r < s.config.Rounds; r += workers {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("simulation stopped at round %d: %w", r, err)
		}

		roundSeed := randutil.Derive(s.config.Seed, r)
		provider, err := bot.New(s.config.Strategy, randutil.New(randutil.Derive(roundSeed, 0)), logger)
		if err != nil {
			return err
		}
		seat.provider = provider
		collector.SetSeed(roundSeed)

		table.ResetHands()
		if _, err := engine.PlayRound(ctx, deck.New(randutil.New(roundSeed))); err != nil {
			return fmt.Errorf("round %d (seed %d): %w", r, roundSeed, err)
		}
	}
	logger.Debug("Worker finished", "rounds", engine.Rounds())
	return nil
}

// botSeat lets one table swap in a freshly seeded bot each round
type botSeat struct {
	provider game.DecisionProvider
}

func (b *botSeat) Decide(ctx context.Context, state game.TurnState) (game.Decision, error) {
	return b.provider.Decide(ctx, state)
}

// RunSimulation is a convenience function for running a simulation with basic parameters
func RunSimulation(ctx context.Context, rounds int, strategy string, seed int64, logger *log.Logger) (*Result, error) {
	return New(Config{
		Rounds:   rounds,
		Workers:  1,
		Strategy: strategy,
		Seed:     seed,
		Logger:   logger,
	}).Run(ctx)
}

// Report is the JSON form of a Result
type Report struct {
	Strategy       string     `json:"strategy"`
	Seed           int64      `json:"seed"`
	Rounds         int        `json:"rounds"`
	Workers        int        `json:"workers"`
	DurationMillis int64      `json:"duration_ms"`
	Wins           int        `json:"wins"`
	Losses         int        `json:"losses"`
	Ties           int        `json:"ties"`
	PlayerBusts    int        `json:"player_busts"`
	DealerBusts    int        `json:"dealer_busts"`
	Naturals       int        `json:"naturals"`
	WinRate        float64    `json:"win_rate"`
	Mean           float64    `json:"mean"`
	StdError       float64    `json:"std_error"`
	CI95           [2]float64 `json:"ci95"`
	MeanPlayer     float64    `json:"mean_player_total"`
	MeanDealer     float64    `json:"mean_dealer_total"`
	PlayerTotals   []int      `json:"player_totals"`
	DealerTotals   []int      `json:"dealer_totals"`
}

// NewReport summarises a result for serialisation
func NewReport(r *Result) Report {
	s := r.Stats
	low, high := s.ConfidenceInterval95()
	return Report{
		Strategy:       r.Strategy,
		Seed:           r.Seed,
		Rounds:         s.Rounds,
		Workers:        r.Workers,
		DurationMillis: r.Duration.Milliseconds(),
		Wins:           s.Wins,
		Losses:         s.Losses,
		Ties:           s.Ties,
		PlayerBusts:    s.PlayerBusts,
		DealerBusts:    s.DealerBusts,
		Naturals:       s.Naturals,
		WinRate:        s.WinRate(),
		Mean:           s.Mean(),
		StdError:       s.StdError(),
		CI95:           [2]float64{low, high},
		MeanPlayer:     s.MeanPlayerTotal(),
		MeanDealer:     s.MeanDealerTotal(),
		PlayerTotals:   s.PlayerTotals[:],
		DealerTotals:   s.DealerTotals[:],
	}
}

// WriteReport writes the JSON report to path atomically
func WriteReport(path string, r *Result) error {
	return fileutil.WriteJSONAtomic(path, NewReport(r), 0o644)
}

// PrintSummary prints a summary of simulation results
func PrintSummary(w io.Writer, r *Result) {
	s := r.Stats
	low, high := s.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS for %s ===\n", r.Strategy)
	fmt.Fprintf(w, "Rounds played: %d (seed %d, %d workers, %s)\n", s.Rounds, r.Seed, r.Workers, r.Duration.Round(time.Millisecond))

	fmt.Fprintf(w, "\n=== OUTCOMES ===\n")
	fmt.Fprintf(w, "Wins: %d (%.1f%%)\n", s.Wins, s.WinRate()*100)
	fmt.Fprintf(w, "Losses: %d (%.1f%%)\n", s.Losses, s.LossRate()*100)
	fmt.Fprintf(w, "Ties: %d (%.1f%%)\n", s.Ties, s.TieRate()*100)
	fmt.Fprintf(w, "Dealt 21: %d\n", s.Naturals)

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %+.4f per round\n", s.Mean())
	fmt.Fprintf(w, "Std Dev: %.4f\n", s.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f\n", s.StdError())
	fmt.Fprintf(w, "95%% CI: [%+.4f, %+.4f]\n", low, high)

	fmt.Fprintf(w, "\n=== BUST ANALYSIS ===\n")
	fmt.Fprintf(w, "Player busts: %d (%.1f%%)\n", s.PlayerBusts, s.BustRate()*100)
	fmt.Fprintf(w, "Dealer busts: %d (%.1f%%)\n", s.DealerBusts, s.DealerBustRate()*100)
	fmt.Fprintf(w, "Average final totals: player %.2f, dealer %.2f\n", s.MeanPlayerTotal(), s.MeanDealerTotal())
	fmt.Fprintf(w, "Average player cards: %.2f\n", s.AverageCards())
}
