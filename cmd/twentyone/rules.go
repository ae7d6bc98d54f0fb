package main

import (
	"fmt"
	"os"
)

// RulesCmd prints the rules in the configured locale
type RulesCmd struct{}

func (c *RulesCmd) Run(g *Globals) error {
	cfg, err := g.load()
	if err != nil {
		return err
	}
	msgs, err := messages(cfg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, msgs.T("game.rules", cfg.Game.WinThreshold))
	return err
}
