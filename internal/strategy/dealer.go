// Package strategy implements the hit/stand decision functions for both
// sides of the table: the fixed house rule for the dealer and a configurable
// threshold-plus-overrides rule for the player.
package strategy

import (
	"github.com/strayhat/pushjack/internal/deck"
	"github.com/strayhat/pushjack/internal/game"
)

// Dealer is the fixed house strategy: hit below 17, stand at 17 and above,
// with an optional hit on soft 17. The up card is ignored; it is only part
// of the signature so both strategies share the game.Strategy interface.
type Dealer struct {
	HitSoft17 bool
}

// ShouldHit implements game.Strategy.
func (d Dealer) ShouldHit(h *game.Hand, _ *deck.Card) bool {
	v := h.Value()
	if v < 17 {
		return true
	}
	return v == 17 && d.HitSoft17 && h.IsSoft()
}
