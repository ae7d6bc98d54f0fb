package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/lox/twentyone/internal/randutil"
	"github.com/lox/twentyone/internal/simulator"
)

// SimulateCmd plays many unattended rounds with a bot in the player seat
type SimulateCmd struct {
	Rounds  int           `default:"100000" help:"Number of rounds to play"`
	Workers int           `default:"0" help:"Parallel workers (0 uses every CPU)"`
	Timeout time.Duration `default:"0s" help:"Give up after this long (0 for no limit)"`
	Report  string        `type:"path" help:"Write a JSON report to this file"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	logger, err := newLogger(os.Stderr, cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = randutil.NewSeed()
	}
	workers := c.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger.Info("Starting simulation", "rounds", c.Rounds, "workers", workers,
		"strategy", cfg.Player.Strategy, "seed", seed)

	result, err := simulator.New(simulator.Config{
		Rounds:   c.Rounds,
		Workers:  workers,
		Strategy: cfg.Player.Strategy,
		Seed:     seed,
		Timeout:  c.Timeout,
		Logger:   logger,
	}).Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	simulator.PrintSummary(os.Stdout, result)
	if c.Report != "" {
		if err := simulator.WriteReport(c.Report, result); err != nil {
			return err
		}
		logger.Info("Wrote report", "path", c.Report)
	}
	return nil
}
