package game

import (
	"fmt"
	"strings"

	"github.com/strayhat/pushjack/internal/deck"
)

// Role identifies whose hand this is. The role is fixed at construction; the
// dealer's first card is the face-up card.
type Role int

const (
	PlayerRole Role = iota
	DealerRole
)

// Hand is one side's cards for a single round. Hands start empty, are only
// ever mutated by AddCard, and go back to the shoe's discard pile at round
// end. All queries derive from the current cards; nothing is cached.
type Hand struct {
	role  Role
	cards []deck.Card
}

// NewHand creates an empty hand for the given role.
func NewHand(role Role) *Hand {
	return &Hand{role: role, cards: make([]deck.Card, 0, 8)}
}

// Role returns the hand's role.
func (h *Hand) Role() Role {
	return h.role
}

// AddCard appends a card to the hand.
func (h *Hand) AddCard(c deck.Card) {
	h.cards = append(h.cards, c)
}

// Cards returns the cards in insertion order.
func (h *Hand) Cards() []deck.Card {
	return h.cards
}

// CardCount returns the number of cards in the hand.
func (h *Hand) CardCount() int {
	return len(h.cards)
}

// Value returns the best blackjack total: aces count eleven, then drop to one
// one at a time while the total exceeds 21.
func (h *Hand) Value() int {
	total, aces := 0, 0
	for _, c := range h.cards {
		if c.IsAce() {
			aces++
		}
		total += c.BlackjackValue()
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// IsSoft reports whether an ace is still counted as eleven. A two-card 21
// (blackjack) is soft by this test, since its ace could still drop to one.
func (h *Hand) IsSoft() bool {
	minTotal, hasAce := 0, false
	for _, c := range h.cards {
		if c.IsAce() {
			hasAce = true
			minTotal++
		} else {
			minTotal += c.BlackjackValue()
		}
	}
	return hasAce && minTotal+10 <= 21
}

// IsBust reports whether the hand's value exceeds 21.
func (h *Hand) IsBust() bool {
	return h.Value() > 21
}

// IsBlackjack reports whether the hand is a natural: exactly two cards
// totalling 21.
func (h *Hand) IsBlackjack() bool {
	return len(h.cards) == 2 && h.Value() == 21
}

// UpCard returns the dealer's face-up first card. Player hands have no up
// card.
func (h *Hand) UpCard() (deck.Card, bool) {
	if h.role != DealerRole || len(h.cards) == 0 {
		return deck.Card{}, false
	}
	return h.cards[0], true
}

// String returns a display form like "[18 soft] A♠ 7♦".
func (h *Hand) String() string {
	if len(h.cards) == 0 {
		return "[empty]"
	}
	parts := make([]string, len(h.cards))
	for i, c := range h.cards {
		parts[i] = c.String()
	}
	soft := ""
	if h.IsSoft() {
		soft = " soft"
	}
	return fmt.Sprintf("[%d%s] %s", h.Value(), soft, strings.Join(parts, " "))
}
