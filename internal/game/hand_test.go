package game

import (
	"testing"

	"github.com/strayhat/pushjack/internal/deck"
)

func handOf(role Role, cards string) *Hand {
	h := NewHand(role)
	for _, c := range deck.MustParseCards(cards) {
		h.AddCard(c)
	}
	return h
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		name      string
		cards     string
		value     int
		soft      bool
		bust      bool
		blackjack bool
	}{
		{name: "blackjack", cards: "AsKd", value: 21, soft: true, blackjack: true},
		{name: "hard twenty", cards: "KhQd", value: 20},
		{name: "soft eighteen", cards: "As7d", value: 18, soft: true},
		{name: "ace demotes once", cards: "As7d9c", value: 17},
		{name: "two aces one high", cards: "As6dAh", value: 18, soft: true},
		{name: "all aces demote", cards: "AsAdAhAc8s", value: 12},
		{name: "three card twenty one is not blackjack", cards: "7s7d7h", value: 21},
		{name: "bust", cards: "KsQd5h", value: 25, bust: true},
		{name: "hard after demotion", cards: "As5d8h", value: 14},
		{name: "empty hand", cards: "", value: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handOf(PlayerRole, tt.cards)
			if got := h.Value(); got != tt.value {
				t.Errorf("Value() = %d, want %d", got, tt.value)
			}
			if got := h.IsSoft(); got != tt.soft {
				t.Errorf("IsSoft() = %v, want %v", got, tt.soft)
			}
			if got := h.IsBust(); got != tt.bust {
				t.Errorf("IsBust() = %v, want %v", got, tt.bust)
			}
			if got := h.IsBlackjack(); got != tt.blackjack {
				t.Errorf("IsBlackjack() = %v, want %v", got, tt.blackjack)
			}
		})
	}
}

func TestHandUpCard(t *testing.T) {
	dealer := handOf(DealerRole, "Th6c")
	up, ok := dealer.UpCard()
	if !ok {
		t.Fatal("dealer hand should expose an up card")
	}
	if up.BlackjackValue() != 10 {
		t.Errorf("up card value = %d, want 10", up.BlackjackValue())
	}

	player := handOf(PlayerRole, "Th6c")
	if _, ok := player.UpCard(); ok {
		t.Error("player hand should not expose an up card")
	}

	empty := NewHand(DealerRole)
	if _, ok := empty.UpCard(); ok {
		t.Error("empty dealer hand should not expose an up card")
	}
}

func TestHandString(t *testing.T) {
	tests := []struct {
		cards    string
		role     Role
		expected string
	}{
		{"As7d", PlayerRole, "[18 soft] A♠ 7♦"},
		{"KhQd", PlayerRole, "[20] K♥ Q♦"},
		{"", PlayerRole, "[empty]"},
	}
	for _, tt := range tests {
		if got := handOf(tt.role, tt.cards).String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
	}
}
