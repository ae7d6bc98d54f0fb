package game

// Table seats exactly two participants, the player and the dealer, for the
// life of a session.
type Table struct {
	Player *Participant
	Dealer *Participant
}

// NewTable seats player and dealer
func NewTable(player, dealer *Participant) *Table {
	return &Table{Player: player, Dealer: dealer}
}

// Participants returns both participants in turn order: player, then dealer
func (t *Table) Participants() []*Participant {
	return []*Participant{t.Player, t.Dealer}
}

// Opponent returns the participant facing p
func (t *Table) Opponent(p *Participant) *Participant {
	if p == t.Player {
		return t.Dealer
	}
	return t.Player
}

// ResetHands empties both hands before the next deck is opened
func (t *Table) ResetHands() {
	for _, p := range t.Participants() {
		p.Hand.Reset()
	}
}

// ResetScores zeroes both scoreboards for a new game
func (t *Table) ResetScores() {
	for _, p := range t.Participants() {
		p.Score.Reset()
	}
}

// CardsHeld returns the number of cards in both hands
func (t *Table) CardsHeld() int {
	return t.Player.Hand.Len() + t.Dealer.Hand.Len()
}

// Leader returns the participant whose score has reached threshold, or nil
func (t *Table) Leader(threshold int) *Participant {
	for _, p := range t.Participants() {
		if p.Score.Wins() >= threshold {
			return p
		}
	}
	return nil
}
