package game

import (
	"fmt"
	"strings"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowDecisions bool // Include every hit/stay, not just the cards they produce
}

// EventFormatter renders events as plain English lines. It is used for
// round histories and logs; interactive front ends use the message catalog.
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format returns the line for event, or "" when the event has nothing to say
// under the current options.
func (ef *EventFormatter) Format(event GameEvent) string {
	switch e := event.(type) {
	case RoundStartEvent:
		return fmt.Sprintf("*** ROUND %d ***", e.Round)
	case CardDealtEvent:
		return ef.FormatCard(e)
	case TurnStartEvent:
		return fmt.Sprintf("%s to act", ef.name(e.Participant, e.Role))
	case DecisionEvent:
		if !ef.opts.ShowDecisions {
			return ""
		}
		return fmt.Sprintf("%s: %ss", ef.name(e.Participant, e.Role), e.Decision)
	case BustEvent:
		return fmt.Sprintf("%s: busts with %d", ef.name(e.Participant, e.Role), e.Total)
	case ShowdownEvent:
		return ef.FormatTable(e.Table())
	case RoundEndEvent:
		return ef.FormatOutcome(e.Outcome)
	case GameOverEvent:
		return fmt.Sprintf("%s wins the game after %d rounds", ef.name(e.Winner, e.WinnerRole), e.Rounds)
	case ScoresResetEvent:
		return "Scores reset"
	default:
		return ""
	}
}

// FormatCard formats a dealt card; the dealer's hole card stays face down
func (ef *EventFormatter) FormatCard(e CardDealtEvent) string {
	card := "[hidden]"
	if !e.Card.Hidden {
		card = e.Card.Card.String()
	}
	return fmt.Sprintf("%s: dealt %s", ef.name(e.Recipient, e.Role), card)
}

// FormatOutcome formats a settled round
func (ef *EventFormatter) FormatOutcome(o Outcome) string {
	switch {
	case o.Tie:
		return fmt.Sprintf("Push at %d", o.PlayerTotal)
	case o.Busted != "":
		return fmt.Sprintf("%s wins, %s busted", ef.name(o.Winner, o.WinnerRole), o.Busted)
	default:
		return fmt.Sprintf("%s wins (%d to %d)", ef.name(o.Winner, o.WinnerRole), o.PlayerTotal, o.DealerTotal)
	}
}

// FormatTable formats each seat as "name: cards (total)", one per line
func (ef *EventFormatter) FormatTable(s Snapshot) string {
	lines := make([]string, 0, len(s.Participants))
	for _, p := range s.Participants {
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", ef.name(p.Name, p.Role), FormatCards(p.Cards), formatTotal(p)))
	}
	return strings.Join(lines, "\n")
}

// FormatCards joins card views, showing hidden cards as "??"
func FormatCards(cards []CardView) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		if c.Hidden {
			parts[i] = "??"
			continue
		}
		parts[i] = c.Card.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatTotal(p ParticipantView) string {
	switch {
	case p.TotalHidden:
		return "?"
	case p.Busted:
		return fmt.Sprintf("%d, bust", p.Total)
	default:
		return fmt.Sprintf("%d", p.Total)
	}
}

func (ef *EventFormatter) name(name string, role Role) string {
	if role == RoleDealer {
		return "Dealer " + name
	}
	return name
}
