package deck

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrShoeExhausted is returned when a draw is attempted and no cards remain
// even after a rebuild. Correct cutoff arithmetic makes this unreachable in
// normal play.
var ErrShoeExhausted = errors.New("deck: shoe exhausted")

// Standard returns a full 52-card deck in canonical order.
func Standard() []Card {
	cards := make([]Card, 0, 52)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, Card{Suit: suit, Rank: rank})
		}
	}
	return cards
}

// Shoe is the live supply of shuffled cards for a simulation run, built from
// numDecks full decks plus a discard pile that is folded back in on rebuild.
//
// Two modes:
//   - cutoff > 0: a full rebuild-and-shuffle runs before a draw once the
//     remaining cards drop to or below the cutoff.
//   - cutoff == 0 (continuous): ReturnToDiscard folds used cards straight
//     back into the shoe and reshuffles; Draw never rebuilds.
type Shoe struct {
	numDecks int
	cutoff   int
	cards    []Card
	discard  []Card
	rng      *rand.Rand
}

// NewShoe creates a shoe of numDecks decks with the given reshuffle cutoff.
// The rng must be owned by this shoe; pass a seeded rand.New for
// deterministic runs.
func NewShoe(numDecks, cutoff int, rng *rand.Rand) *Shoe {
	s := &Shoe{
		numDecks: numDecks,
		cutoff:   cutoff,
		discard:  make([]Card, 0, numDecks*52),
		rng:      rng,
	}
	s.BuildAndShuffle()
	return s
}

// Continuous reports whether the shoe reshuffles after every round instead of
// waiting for the cutoff.
func (s *Shoe) Continuous() bool {
	return s.cutoff == 0
}

// BuildAndShuffle resets the shoe to numDecks fresh decks plus whatever is in
// the discard pile, then shuffles. Called on construction and whenever the
// cutoff is crossed.
func (s *Shoe) BuildAndShuffle() {
	s.cards = s.cards[:0]
	for i := 0; i < s.numDecks; i++ {
		s.cards = append(s.cards, Standard()...)
	}
	s.cards = append(s.cards, s.discard...)
	s.discard = s.discard[:0]
	s.shuffle()
}

// Draw removes and returns the top card. In cutoff mode the shoe rebuilds
// first once the remaining cards have dropped to the cutoff, so the invariant
// that a round never runs dry holds as long as the cutoff covers a worst-case
// round.
func (s *Shoe) Draw() (Card, error) {
	if !s.Continuous() && len(s.cards) <= s.cutoff {
		s.BuildAndShuffle()
	}
	if len(s.cards) == 0 {
		return Card{}, ErrShoeExhausted
	}
	card := s.cards[0]
	s.cards = s.cards[1:]
	return card, nil
}

// ReturnToDiscard returns used cards at the end of a round. In continuous
// mode the cards go straight back into the shoe and it reshuffles
// immediately; in cutoff mode they accumulate until the next rebuild.
func (s *Shoe) ReturnToDiscard(cards []Card) {
	s.discard = append(s.discard, cards...)
	if s.Continuous() {
		s.cards = append(s.cards, s.discard...)
		s.discard = s.discard[:0]
		s.shuffle()
	}
}

// shuffle performs a Fisher-Yates shuffle over the live cards. A uniform
// permutation is a correctness requirement here: simulated edge depends on
// unbiased card order.
func (s *Shoe) shuffle() {
	for i := len(s.cards) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Remaining returns the number of cards left to draw.
func (s *Shoe) Remaining() int {
	return len(s.cards)
}

// DiscardSize returns the number of cards in the discard pile.
func (s *Shoe) DiscardSize() int {
	return len(s.discard)
}

// NumDecks returns the number of decks the shoe was built from.
func (s *Shoe) NumDecks() int {
	return s.numDecks
}

// String returns a summary like "shoe: 281/312 cards, 27 discarded".
func (s *Shoe) String() string {
	return fmt.Sprintf("shoe: %d/%d cards, %d discarded", len(s.cards), s.numDecks*52, len(s.discard))
}
