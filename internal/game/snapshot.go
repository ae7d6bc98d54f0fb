package game

import (
	"fmt"

	"github.com/lox/twentyone/internal/deck"
)

// holeCardIndex is the position of the dealer's face-down card
const holeCardIndex = 1

// Phase is where a round is in its lifecycle
type Phase int

const (
	PhaseDealing Phase = iota
	PhasePlayerTurns
	PhaseShowdown
	PhaseSettled
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseDealing:
		return "dealing"
	case PhasePlayerTurns:
		return "player_turns"
	case PhaseShowdown:
		return "showdown"
	case PhaseSettled:
		return "settled"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// CardView is a card as the table sees it. A hidden card carries no identity.
type CardView struct {
	Card   deck.Card
	Hidden bool
}

// ParticipantView is one seat in a Snapshot
type ParticipantView struct {
	Name        string
	Role        Role
	Score       int
	Cards       []CardView
	Total       int
	TotalHidden bool
	Busted      bool
}

// DividerKind tells a renderer which rule to draw
type DividerKind int

const (
	// DividerPlayer separates one seat from the next
	DividerPlayer DividerKind = iota
	// DividerTable closes the table
	DividerTable
)

// Divider marks a rule drawn after the participant at index After
type Divider struct {
	After int
	Kind  DividerKind
}

// Snapshot is an immutable picture of the table for renderers and
// decision providers.
type Snapshot struct {
	RoundID      string
	Round        int
	Phase        Phase
	Actor        string // name of the participant whose turn it is, if any
	Participants []ParticipantView
	Dividers     []Divider
}

// Participant returns the view for role
func (s Snapshot) Participant(role Role) (ParticipantView, bool) {
	for _, p := range s.Participants {
		if p.Role == role {
			return p, true
		}
	}
	return ParticipantView{}, false
}

// NewSnapshot builds the table picture. When mask is set a dealer holding
// exactly two cards shows its second card and total as hidden. The hands
// themselves are never touched.
func NewSnapshot(roundID string, round int, phase Phase, actor *Participant, mask bool, participants ...*Participant) Snapshot {
	s := Snapshot{
		RoundID:      roundID,
		Round:        round,
		Phase:        phase,
		Participants: make([]ParticipantView, 0, len(participants)),
		Dividers:     make([]Divider, 0, len(participants)),
	}
	if actor != nil {
		s.Actor = actor.Name
	}

	for i, p := range participants {
		s.Participants = append(s.Participants, viewOf(p, mask))
		kind := DividerPlayer
		if i == len(participants)-1 {
			kind = DividerTable
		}
		s.Dividers = append(s.Dividers, Divider{After: i, Kind: kind})
	}
	return s
}

func viewOf(p *Participant, mask bool) ParticipantView {
	hide := mask && p.IsDealer() && p.Hand.Len() == holeCardIndex+1

	cards := p.Hand.Cards()
	views := make([]CardView, len(cards))
	for i, c := range cards {
		if hide && i == holeCardIndex {
			views[i] = CardView{Hidden: true}
			continue
		}
		views[i] = CardView{Card: c}
	}

	v := ParticipantView{
		Name:        p.Name,
		Role:        p.Role,
		Score:       p.Score.Wins(),
		Cards:       views,
		Total:       p.Hand.Total(),
		TotalHidden: hide,
		Busted:      p.Hand.Busted(),
	}
	if hide {
		v.Total = 0
	}
	return v
}
