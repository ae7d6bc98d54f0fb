package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/twentyone/internal/config"
	"github.com/lox/twentyone/internal/game"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "twentyone.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestGlobalsOverrideFile(t *testing.T) {
	path := writeConfig(t, `
game {
  win_threshold = 3
  seed          = 11
}
player {
  name = "Alice"
}
ui {
  locale        = "es-ES"
  deal_delay_ms = 250
}
`)

	seed := int64(99)
	delay := time.Duration(0)
	g := &Globals{Config: path, Name: "Bob", Seed: &seed, DealDelay: &delay, NoRules: true}
	cfg, err := g.load()
	require.NoError(t, err)

	assert.Equal(t, "Bob", cfg.Player.Name)
	assert.Equal(t, int64(99), cfg.Game.Seed)
	assert.Equal(t, 3, cfg.Game.WinThreshold, "unset flags keep the file's value")
	assert.Equal(t, "es-ES", cfg.UI.Locale)
	assert.Zero(t, cfg.UI.DealDelay)
	assert.False(t, cfg.UI.ShowRules)
}

func TestGlobalsRejectInvalid(t *testing.T) {
	g := &Globals{Config: filepath.Join(t.TempDir(), "missing.hcl"), Name: "R2D2"}
	_, err := g.load()
	assert.ErrorContains(t, err, "letters only")

	g = &Globals{Config: filepath.Join(t.TempDir(), "missing.hcl"), Strategy: "card-counting"}
	_, err = g.load()
	assert.ErrorContains(t, err, "unknown strategy")
}

func TestMessagesFallBackToBaseLocale(t *testing.T) {
	cfg := config.Default()
	cfg.UI.Locale = "fr-FR"
	msgs, err := messages(cfg)
	require.NoError(t, err)
	assert.Equal(t, "en-US", msgs.Locale())
}

// screen stands in for a front end. It never plays the player seat
// itself, so it only answers the name and play-again questions.
type screen struct {
	name   string
	asked  int
	events []game.GameEvent
}

func (s *screen) OnEvent(e game.GameEvent) { s.events = append(s.events, e) }

func (s *screen) Decide(context.Context, game.TurnState) (game.Decision, error) {
	return game.Stay, nil
}

func (s *screen) PlayAgain(context.Context, game.GameResult) (bool, error) {
	return false, nil
}

func (s *screen) AskName(context.Context) (string, error) {
	s.asked++
	if s.name == "" {
		return "", game.ErrQuit
	}
	return s.name, nil
}

func TestMatchWithBotAndHistory(t *testing.T) {
	cfg := config.Default()
	cfg.Game.WinThreshold = 2
	cfg.Game.Seed = 42
	cfg.Game.HistoryDir = t.TempDir()
	cfg.Player.Strategy = "stand-on-17"
	logger := log.New(io.Discard)

	ui := &screen{}
	m, err := newMatch(context.Background(), cfg, ui, logger)
	require.NoError(t, err)
	require.NoError(t, m.run(context.Background(), logger))

	assert.Zero(t, ui.asked, "a bot needs no name")
	assert.Equal(t, botName, m.session.Engine().Table().Player.Name)
	assert.Equal(t, 1, m.session.Games())

	files, err := filepath.Glob(filepath.Join(cfg.Game.HistoryDir, "round_*.txt"))
	require.NoError(t, err)
	assert.Len(t, files, m.session.Engine().Rounds())
	assert.Empty(t, m.historyErrors())

	var over int
	for _, e := range ui.events {
		if _, ok := e.(game.GameOverEvent); ok {
			over++
		}
	}
	assert.Equal(t, 1, over)
}

func TestMatchAsksForName(t *testing.T) {
	cfg := config.Default()
	cfg.Game.Seed = 7
	ui := &screen{name: "Zed"}

	m, err := newMatch(context.Background(), cfg, ui, log.New(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, 1, ui.asked)

	table := m.session.Engine().Table()
	assert.Equal(t, "Zed", table.Player.Name)
	assert.Contains(t, cfg.Dealer.Names, table.Dealer.Name)
}

func TestMatchSameSeedSameDealer(t *testing.T) {
	cfg := config.Default()
	cfg.Game.Seed = 1234
	cfg.Player.Name = "Alice"

	first, err := newMatch(context.Background(), cfg, &screen{}, log.New(io.Discard))
	require.NoError(t, err)
	second, err := newMatch(context.Background(), cfg, &screen{}, log.New(io.Discard))
	require.NoError(t, err)
	assert.Equal(t, first.session.Engine().Table().Dealer.Name, second.session.Engine().Table().Dealer.Name)
}

func TestQuitIsNotAFailure(t *testing.T) {
	cfg := config.Default()
	_, err := newMatch(context.Background(), cfg, &screen{}, log.New(io.Discard))
	require.ErrorIs(t, err, game.ErrQuit)
	assert.NoError(t, quit(err))
	assert.NoError(t, quit(context.Canceled))
	assert.Error(t, quit(io.ErrUnexpectedEOF))
}
