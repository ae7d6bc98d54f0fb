package main

import (
	"fmt"
	"time"

	"github.com/lox/twentyone/internal/catalog"
	"github.com/lox/twentyone/internal/config"
)

// Globals are the flags shared by every command. Set flags win over the
// environment, which wins over the config file.
type Globals struct {
	Config     string         `short:"c" type:"path" default:"${config_file}" help:"HCL config file"`
	Name       string         `help:"Player name, letters only"`
	Threshold  int            `help:"Rounds needed to win a game"`
	Seed       *int64         `help:"Deterministic RNG seed"`
	Strategy   string         `help:"Let a bot play the player seat (stand-on-N, random, basic)"`
	Locale     string         `help:"Message locale, e.g. en-US or es-ES"`
	Theme      string         `help:"Colour theme: auto, dark, light or plain"`
	DealDelay  *time.Duration `help:"Pause after each card is dealt"`
	NoRules    bool           `help:"Skip the welcome and rules screen"`
	HistoryDir string         `type:"path" help:"Write a transcript of every round to this directory"`
	LogLevel   string         `help:"Log level: debug, info, warn or error"`
	LogFile    string         `type:"path" help:"Log file for the interactive commands"`
}

// load builds the configuration from file, environment and flags
func (g *Globals) load() (*config.Config, error) {
	cfg, err := config.Load(g.Config, nil)
	if err != nil {
		return nil, err
	}
	g.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (g *Globals) apply(cfg *config.Config) {
	if g.Name != "" {
		cfg.Player.Name = g.Name
	}
	if g.Threshold != 0 {
		cfg.Game.WinThreshold = g.Threshold
	}
	if g.Seed != nil {
		cfg.Game.Seed = *g.Seed
	}
	if g.Strategy != "" {
		cfg.Player.Strategy = g.Strategy
	}
	if g.Locale != "" {
		cfg.UI.Locale = g.Locale
	}
	if g.Theme != "" {
		cfg.UI.Theme = g.Theme
	}
	if g.DealDelay != nil {
		cfg.UI.DealDelay = *g.DealDelay
	}
	if g.NoRules {
		cfg.UI.ShowRules = false
	}
	if g.HistoryDir != "" {
		cfg.Game.HistoryDir = g.HistoryDir
	}
	if g.LogLevel != "" {
		cfg.UI.LogLevel = g.LogLevel
	}
	if g.LogFile != "" {
		cfg.UI.LogFile = g.LogFile
	}
}

// messages returns the printer for the configured locale
func messages(cfg *config.Config) (*catalog.Printer, error) {
	bundle, err := catalog.LoadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	return bundle.Printer(cfg.UI.Locale), nil
}
