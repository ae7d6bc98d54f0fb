package main

import (
	"os"

	"github.com/lox/twentyone/internal/console"
)

// PlayCmd plays on a line-oriented console
type PlayCmd struct{}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	logger, closeLog, err := setupLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	msgs, err := messages(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	con := console.New(os.Stdin, os.Stdout, msgs, console.Options{
		Theme:       cfg.UI.Theme,
		DealDelay:   cfg.UI.DealDelay,
		ClearScreen: true,
		Logger:      logger,
	})
	con.Bind(ctx)
	defer con.Close()
	defer con.Goodbye()

	if cfg.UI.ShowRules {
		if err := con.Welcome(ctx, cfg.Game.WinThreshold); err != nil {
			return quit(err)
		}
	}

	m, err := newMatch(ctx, cfg, con, logger)
	if err != nil {
		return quit(err)
	}
	return m.run(ctx, logger)
}

// quit swallows errors that only mean the player left
func quit(err error) error {
	if left(err) {
		return nil
	}
	return err
}
