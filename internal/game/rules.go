package game

// Rules holds the table rules the resolver needs to classify and pay a round.
type Rules struct {
	// CommissionPct is taken off a regular bettor win, e.g. 5.0 keeps 0.95
	// units of a one-unit win.
	CommissionPct float64

	// BlackjackPayout is the ratio paid when the dealer's blackjack wins for
	// the bettor.
	BlackjackPayout float64

	// CommissionOnBlackjack applies the commission to blackjack payouts too.
	CommissionOnBlackjack bool

	// HitAgainstBlackjack lets the player keep drawing against a dealer
	// blackjack. The classification and payout are unchanged; the extra cards
	// only matter for side-bet bookkeeping.
	HitAgainstBlackjack bool

	Sidebet SidebetRules
}

// CommissionMultiplier is the fraction of a winning unit kept after
// commission.
func (r Rules) CommissionMultiplier() float64 {
	return 1 - r.CommissionPct/100
}

// SidebetMode selects how a winning push side-wager is paid.
type SidebetMode int

const (
	// SidebetOff disables side-wager payouts. Push categories are still
	// recorded for cross-tabulation.
	SidebetOff SidebetMode = iota

	// SidebetTotals pays by the push's shared hand value.
	SidebetTotals

	// SidebetCards pays by the combined card count of both hands.
	SidebetCards
)

// String returns the string representation of a side-bet mode
func (m SidebetMode) String() string {
	switch m {
	case SidebetOff:
		return "off"
	case SidebetTotals:
		return "total"
	case SidebetCards:
		return "cards"
	default:
		return "?"
	}
}

// SidebetRules configures the push side-wager: the active mode and the payout
// multiplier per category. Missing entries pay nothing.
type SidebetRules struct {
	Mode         SidebetMode
	TotalPayouts map[PushCategory]float64
	CardPayouts  map[int]float64
}

// Payout returns the side-wager multiplier collected for a push in the given
// category and card-count bucket.
func (s SidebetRules) Payout(cat PushCategory, bucket int) float64 {
	switch s.Mode {
	case SidebetTotals:
		return s.TotalPayouts[cat]
	case SidebetCards:
		return s.CardPayouts[bucket]
	default:
		return 0
	}
}
