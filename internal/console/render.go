package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/twentyone/internal/deck"
	"github.com/lox/twentyone/internal/game"
)

// OnEvent draws event. Card deals are paced by the deal delay, and an
// intermission waits for the player to press Enter.
func (c *Console) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.RoundStartEvent:
		c.clear()
		c.println(c.styles.Header.Render(c.text.Event(e)))
	case game.CardDealtEvent:
		c.announceCard(e)
		// a hit changes the hand the next decision is made on
		if e.Table().Phase == game.PhasePlayerTurns {
			c.drawTable(e.Table())
		}
	case game.TurnStartEvent, game.ShowdownEvent:
		c.drawTable(e.Table())
	case game.DecisionEvent, game.ScoresResetEvent:
		c.prompt(c.text.Event(e))
	case game.BustEvent:
		c.prompt(c.styles.Bust.Render(c.text.Event(e)))
	case game.RoundEndEvent:
		c.prompt(c.styles.Win.Render(c.text.Event(e)))
	case game.IntermissionEvent:
		c.waitForEnter()
	case game.GameOverEvent:
		c.drawTable(e.Table())
		c.prompt(c.styles.Win.Render(c.text.Event(e)))
	}
}

// announceCard prints "dealing to X..." and the card for every card but
// the dealer's hole card, then holds the screen for the deal delay.
func (c *Console) announceCard(e game.CardDealtEvent) {
	notice := c.text.Event(e)
	if notice == "" {
		return
	}
	if c.opts.DealDelay <= 0 {
		c.prompt(notice)
		c.prompt(c.cardStyle(e.Card.Card).Render(c.text.CardName(e.Card.Card)))
		return
	}

	timer := c.clock.NewTimer(c.opts.DealDelay, "console", "deal")
	defer timer.Stop()
	c.prompt(notice)
	c.prompt(c.cardStyle(e.Card.Card).Render(c.text.CardName(e.Card.Card)))
	select {
	case <-timer.C:
	case <-c.ctx.Done():
	}
}

func (c *Console) waitForEnter() {
	if c.err != nil {
		return
	}
	c.prompt(c.styles.Info.Render(c.text.T("prompt.continue")))
	if _, err := c.readLine(c.ctx); err != nil {
		c.logger.Debug("Input closed during intermission", "error", err)
	}
}

// drawTable prints every seat followed by the dividers the snapshot asks for
func (c *Console) drawTable(s game.Snapshot) {
	c.clear()
	for i, p := range s.Participants {
		style := c.styles.Name
		if p.Role == game.RoleDealer {
			style = c.styles.Dealer
		}
		c.println(fmt.Sprintf("%s (%s: %d)", style.Render(c.text.Name(p.Name, p.Role)), c.text.T("game.score"), p.Score))
		c.println(fmt.Sprintf("%s: %s", c.text.T("game.hand"), c.formatCards(p.Cards)))
		c.println(fmt.Sprintf("%s: %s", c.text.T("game.total"), c.formatTotal(p)))

		for _, d := range s.Dividers {
			if d.After != i {
				continue
			}
			ch := playerDivider
			if d.Kind == game.DividerTable {
				ch = tableDivider
			}
			c.println(strings.Repeat(string(ch), ScreenWidth))
		}
	}
}

func (c *Console) formatCards(cards []game.CardView) string {
	if len(cards) == 0 {
		return c.styles.Info.Render(c.text.T("game.empty"))
	}
	parts := make([]string, len(cards))
	for i, cv := range cards {
		if cv.Hidden {
			parts[i] = c.styles.Hidden.Render(c.text.Hidden())
			continue
		}
		parts[i] = c.cardStyle(cv.Card).Render(c.text.CardLabel(cv.Card))
	}
	return strings.Join(parts, ", ")
}

func (c *Console) cardStyle(card deck.Card) lipgloss.Style {
	if card.IsRed() {
		return c.styles.RedCard
	}
	return c.styles.BlackCard
}

func (c *Console) formatTotal(p game.ParticipantView) string {
	switch {
	case p.TotalHidden:
		return c.styles.Hidden.Render(c.text.Hidden())
	case p.Busted:
		return c.styles.Bust.Render(fmt.Sprintf("%d", p.Total))
	default:
		return c.styles.Total.Render(fmt.Sprintf("%d", p.Total))
	}
}

func (c *Console) clear() {
	if c.opts.ClearScreen {
		c.term.ClearScreen()
	}
}

func (c *Console) prompt(msg string) {
	c.println("=> " + msg)
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}
