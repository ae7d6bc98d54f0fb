package console

import (
	"context"
	"strings"

	"github.com/lox/twentyone/internal/config"
	"github.com/lox/twentyone/internal/game"
)

// Decide asks the player to hit or stay until a valid answer arrives.
// "q" or the end of input quits the game.
func (c *Console) Decide(ctx context.Context, state game.TurnState) (game.Decision, error) {
	for {
		c.prompt(c.styles.Prompt.Render(c.text.T("prompt.decision")))
		answer, err := c.readLine(ctx)
		if err != nil {
			return 0, err
		}

		switch firstLetter(answer) {
		case 'h':
			c.logger.Debug("Player hits", "total", state.Self.Total)
			return game.Hit, nil
		case 's':
			c.logger.Debug("Player stays", "total", state.Self.Total)
			return game.Stay, nil
		case 'q':
			c.err = game.ErrQuit
			return 0, game.ErrQuit
		}
		c.prompt(c.styles.Error.Render(c.text.T("prompt.decision_invalid")))
	}
}

// PlayAgain asks whether to start a new game after result
func (c *Console) PlayAgain(ctx context.Context, result game.GameResult) (bool, error) {
	c.logger.Debug("Asking to play again", "winner", result.Winner, "rounds", result.Rounds)
	return c.confirm(ctx, c.text.T("prompt.play_again"))
}

// AskName prompts until the player types a name made only of letters
func (c *Console) AskName(ctx context.Context) (string, error) {
	c.clear()
	c.prompt(c.styles.Prompt.Render(c.text.T("prompt.name")))
	for {
		name, err := c.readLine(ctx)
		if err != nil {
			return "", err
		}
		name = strings.TrimSpace(name)
		if config.IsValidName(name) {
			return name, nil
		}
		c.prompt(c.styles.Error.Render(c.text.T("prompt.name_invalid")))
	}
}

// Welcome offers the rules before the first round. Answering "r" shows
// them for a game played to threshold wins.
func (c *Console) Welcome(ctx context.Context, threshold int) error {
	c.println(c.styles.Header.Render(c.text.T("game.title")))
	c.prompt(c.text.T("prompt.begin"))
	answer, err := c.readLine(ctx)
	if err != nil {
		return err
	}
	if firstLetter(answer) != 'r' {
		return nil
	}

	c.clear()
	c.ShowRules(threshold)
	c.println("")
	c.prompt(c.styles.Info.Render(c.text.T("prompt.continue")))
	_, err = c.readLine(ctx)
	return err
}

// ShowRules prints the rules for a game played to threshold wins
func (c *Console) ShowRules(threshold int) {
	c.println(c.text.T("game.rules", threshold))
}

// Goodbye prints the farewell line
func (c *Console) Goodbye() {
	c.prompt(c.text.T("game.goodbye"))
}

func (c *Console) confirm(ctx context.Context, question string) (bool, error) {
	for {
		c.prompt(c.styles.Prompt.Render(question))
		answer, err := c.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch firstLetter(answer) {
		case 'y':
			return true, nil
		case 'n':
			return false, nil
		}
		c.prompt(c.styles.Error.Render(c.text.T("prompt.yes_no_invalid")))
	}
}

// firstLetter returns the lower-cased first non-space rune of s, or 0
func firstLetter(s string) rune {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, r := range s {
		return r
	}
	return 0
}
