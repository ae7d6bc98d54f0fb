package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/sync/errgroup"

	"github.com/lox/twentyone/internal/display"
	"github.com/lox/twentyone/internal/tui"
)

// TUICmd plays in a full-screen Bubble Tea interface
type TUICmd struct{}

func (c *TUICmd) Run(g *Globals) error {
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
	switch cfg.UI.Theme {
	case "plain":
		lipgloss.SetColorProfile(termenv.Ascii)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}

	ctx, cancel := signalContext(logger)
	defer cancel()

	model, agent := tui.New(display.NewText(msgs), tui.Options{
		DealDelay: cfg.UI.DealDelay,
		Logger:    logger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	agent.Attach(p)

	sessionCtx, stopSession := context.WithCancel(ctx)
	defer stopSession()
	agent.Bind(sessionCtx)

	var eg errgroup.Group
	eg.Go(func() error {
		m, err := newMatch(sessionCtx, cfg, agent, logger)
		if err == nil {
			err = m.run(sessionCtx, logger)
		}
		err = quit(err)
		agent.Finish(err)
		return err
	})
	eg.Go(func() error {
		// the session may be blocked on a key press nobody can make now
		defer stopSession()
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return fmt.Errorf("failed to run interface: %w", err)
		}
		return nil
	})
	return eg.Wait()
}
