package game

import (
	"fmt"
	rand "math/rand/v2"
)

// Role is the fixed seat a participant occupies
type Role int

const (
	RolePlayer Role = iota
	RoleDealer
)

// String returns the string representation of a role
func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleDealer:
		return "dealer"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// DefaultDealerNames are the names a dealer is picked from when none is configured
var DefaultDealerNames = []string{"Chico", "Harpo", "Groucho", "Gummo", "Zeppo"}

// Participant is one side of the table: a hand, a scoreboard and the
// policy that plays the hand.
type Participant struct {
	Name   string
	Role   Role
	Hand   *Hand
	Score  *Scoreboard
	Policy Policy
}

// NewParticipant seats a participant with an empty hand and score
func NewParticipant(name string, role Role, policy Policy) *Participant {
	return &Participant{
		Name:   name,
		Role:   role,
		Hand:   &Hand{},
		Score:  &Scoreboard{},
		Policy: policy,
	}
}

// NewPlayer seats the player, whose decisions come from provider
func NewPlayer(name string, provider DecisionProvider) *Participant {
	return NewParticipant(name, RolePlayer, PlayerPolicy{Provider: provider})
}

// NewDealer seats a dealer playing the house rule
func NewDealer(name string) *Participant {
	return NewParticipant(name, RoleDealer, DealerPolicy{})
}

// IsDealer returns true for the dealer seat
func (p *Participant) IsDealer() bool {
	return p.Role == RoleDealer
}

// handView returns the participant's own unmasked view of their hand
func (p *Participant) handView() HandView {
	return HandView{
		Name:  p.Name,
		Cards: p.Hand.Cards(),
		Total: p.Hand.Total(),
		Soft:  p.Hand.Soft(),
		Score: p.Score.Wins(),
	}
}

// RandomDealerName picks a dealer name from names, or from
// DefaultDealerNames when names is empty.
func RandomDealerName(rng *rand.Rand, names []string) string {
	if len(names) == 0 {
		names = DefaultDealerNames
	}
	return names[rng.IntN(len(names))]
}
