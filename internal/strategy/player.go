package strategy

import (
	"github.com/strayhat/pushjack/internal/deck"
	"github.com/strayhat/pushjack/internal/game"
)

// DefaultStandThreshold is the player total at which the default rule stands.
const DefaultStandThreshold = 17

// Player is the configurable bettor-side strategy. Explicit overrides are
// consulted first; when no override matches the decision falls back to a
// stand threshold with an optional hit on soft 17.
//
// Overrides only apply when a dealer up card is supplied and the table has
// entries, so the fallback is the complete behavior for up-card-blind calls.
type Player struct {
	StandThreshold int
	HitSoft17      bool
	Rules          *RuleTable
}

// ShouldHit implements game.Strategy.
func (p Player) ShouldHit(h *game.Hand, upCard *deck.Card) bool {
	if upCard != nil && p.Rules.Len() > 0 {
		if hit, ok := p.Rules.Lookup(Describe(h), upCard.BlackjackValue()); ok {
			return hit
		}
	}

	v := h.Value()
	if v < p.StandThreshold {
		return true
	}
	return v == 17 && p.HitSoft17 && h.IsSoft()
}
