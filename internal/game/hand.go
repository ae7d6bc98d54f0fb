package game

import (
	"strconv"
	"strings"

	"github.com/lox/twentyone/internal/deck"
)

// Twentyone is the best possible total; anything above it is a bust
const Twentyone = 21

// Hand is the ordered set of cards one participant holds in a round.
// The total is derived from the cards on every Add and is never set
// directly.
type Hand struct {
	cards []deck.Card
	base  int // sum of the non-ace cards
	aces  int
	total int
}

// NewHand creates a hand holding cards, in order
func NewHand(cards ...deck.Card) *Hand {
	h := &Hand{}
	for _, c := range cards {
		h.Add(c)
	}
	return h
}

// Add appends a card and recomputes the total
func (h *Hand) Add(c deck.Card) {
	h.cards = append(h.cards, c)
	if v, ok := c.Value(); ok {
		h.base += v
	} else {
		h.aces++
	}
	h.total = resolveTotal(h.base, h.aces)
}

// resolveTotal counts at most one ace as eleven, and only if that does not
// bust the hand. All other aces count as one.
func resolveTotal(base, aces int) int {
	if aces == 0 {
		return base
	}
	high := base + deck.AceHigh + (aces-1)*deck.AceLow
	if high <= Twentyone {
		return high
	}
	return base + aces*deck.AceLow
}

// Reset empties the hand for the next round
func (h *Hand) Reset() {
	h.cards = h.cards[:0]
	h.base = 0
	h.aces = 0
	h.total = 0
}

// Cards returns a copy of the cards in draw order
func (h *Hand) Cards() []deck.Card {
	cards := make([]deck.Card, len(h.cards))
	copy(cards, h.cards)
	return cards
}

// Len returns the number of cards held
func (h *Hand) Len() int {
	return len(h.cards)
}

// Total returns the resolved total
func (h *Hand) Total() int {
	return h.total
}

// Soft reports whether an ace is currently counted as eleven
func (h *Hand) Soft() bool {
	return h.aces > 0 && h.total != h.base+h.aces*deck.AceLow
}

// Busted returns true if the total is over 21
func (h *Hand) Busted() bool {
	return h.total > Twentyone
}

// Blackjack returns true if the total is exactly 21, however many cards it took
func (h *Hand) Blackjack() bool {
	return h.total == Twentyone
}

// String returns the cards and total, e.g. "[A♠ T♥] 21"
func (h *Hand) String() string {
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, " ") + "] " + strconv.Itoa(h.total)
}
