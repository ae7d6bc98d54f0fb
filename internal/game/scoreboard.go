package game

// Scoreboard counts the rounds one participant has won this game
type Scoreboard struct {
	wins int
}

// Increment records a round win
func (s *Scoreboard) Increment() {
	s.wins++
}

// Reset sets the count back to zero for a new game
func (s *Scoreboard) Reset() {
	s.wins = 0
}

// Wins returns the number of rounds won
func (s *Scoreboard) Wins() int {
	return s.wins
}
