package deck

import (
	"fmt"
	"strings"
)

// ParseCards parses a compact card string like "AsKd" or "As Kd" into cards.
// Ranks are 2-9, T, J, Q, K, A; suits are s, h, d, c. Case insensitive.
func ParseCards(s string) ([]Card, error) {
	s = strings.ReplaceAll(s, " ", "")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("invalid card string length: %d (must be even)", len(s))
	}

	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		rank, err := parseRank(s[i])
		if err != nil {
			return nil, fmt.Errorf("invalid rank '%c' at position %d: %w", s[i], i, err)
		}
		suit, err := parseSuit(s[i+1])
		if err != nil {
			return nil, fmt.Errorf("invalid suit '%c' at position %d: %w", s[i+1], i+1, err)
		}
		cards = append(cards, Card{Suit: suit, Rank: rank})
	}
	return cards, nil
}

// MustParseCards parses a card string and panics on error. For tests and
// hard-coded scripts only.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

func parseRank(b byte) (Rank, error) {
	switch b {
	case '2', '3', '4', '5', '6', '7', '8', '9':
		return Rank(b - '0'), nil
	case 't', 'T':
		return Ten, nil
	case 'j', 'J':
		return Jack, nil
	case 'q', 'Q':
		return Queen, nil
	case 'k', 'K':
		return King, nil
	case 'a', 'A':
		return Ace, nil
	default:
		return 0, fmt.Errorf("unknown rank %q", string(b))
	}
}

func parseSuit(b byte) (Suit, error) {
	switch b {
	case 's', 'S':
		return Spades, nil
	case 'h', 'H':
		return Hearts, nil
	case 'd', 'D':
		return Diamonds, nil
	case 'c', 'C':
		return Clubs, nil
	default:
		return 0, fmt.Errorf("unknown suit %q", string(b))
	}
}
