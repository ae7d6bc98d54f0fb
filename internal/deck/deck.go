package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"slices"
)

// Size is the number of cards in a full deck
const Size = 52

// ErrEmptyDeck is returned when drawing from a deck with no cards left
var ErrEmptyDeck = errors.New("deck is empty")

// Deck is a single 52-card deck held as suit -> remaining ranks.
// Cards leave the deck through Draw and never come back; a new round
// takes a new Deck.
type Deck struct {
	ranks     map[Suit][]Rank
	remaining int
	rng       *rand.Rand
}

// New creates a full deck that draws using rng
func New(rng *rand.Rand) *Deck {
	d := &Deck{
		ranks:     make(map[Suit][]Rank, len(Suits)),
		remaining: Size,
		rng:       rng,
	}
	for _, suit := range Suits {
		ranks := make([]Rank, 0, Ace-Two+1)
		for rank := Two; rank <= Ace; rank++ {
			ranks = append(ranks, rank)
		}
		d.ranks[suit] = ranks
	}
	return d
}

// Draw removes a card chosen uniformly at random from the remaining cards
func (d *Deck) Draw() (Card, error) {
	if d.remaining == 0 {
		return Card{}, ErrEmptyDeck
	}

	// Walk the suits in a fixed order so a given rng always yields the same card.
	n := d.rng.IntN(d.remaining)
	for _, suit := range Suits {
		ranks := d.ranks[suit]
		if n >= len(ranks) {
			n -= len(ranks)
			continue
		}
		rank := ranks[n]
		d.ranks[suit] = slices.Delete(ranks, n, n+1)
		d.remaining--
		return NewCard(suit, rank), nil
	}

	// remaining and the per-suit slices disagree
	return Card{}, fmt.Errorf("deck corrupted: %d cards counted but none found", d.remaining)
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return d.remaining
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return d.remaining == 0
}

// Contains reports whether c has not been drawn yet
func (d *Deck) Contains(c Card) bool {
	return slices.Contains(d.ranks[c.Suit], c.Rank)
}

// Stacked is a deck whose first cards are fixed in advance. It still holds
// all 52 cards: once the stacked cards run out the rest come off in suit
// then rank order. It exists for replays and tests.
type Stacked struct {
	cards []Card
}

// NewStacked returns a full deck that deals top first, in order
func NewStacked(top ...Card) (*Stacked, error) {
	seen := make(map[Card]bool, Size)
	cards := make([]Card, 0, Size)
	for _, c := range top {
		if !c.Rank.Valid() || c.Suit < Spades || c.Suit > Clubs {
			return nil, fmt.Errorf("invalid card %v", c)
		}
		if seen[c] {
			return nil, fmt.Errorf("card %s stacked twice", c)
		}
		seen[c] = true
		cards = append(cards, c)
	}
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			if c := NewCard(suit, rank); !seen[c] {
				cards = append(cards, c)
			}
		}
	}
	return &Stacked{cards: cards}, nil
}

// MustStack is NewStacked for fixtures; it panics on duplicate cards
func MustStack(top ...Card) *Stacked {
	s, err := NewStacked(top...)
	if err != nil {
		panic(err)
	}
	return s
}

// Draw removes and returns the next card
func (s *Stacked) Draw() (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := s.cards[0]
	s.cards = s.cards[1:]
	return card, nil
}

// Remaining returns the number of cards left
func (s *Stacked) Remaining() int {
	return len(s.cards)
}
