package game

import "strconv"

// Outcome classifies a round for the bettor. The bettor backs the dealer's
// hand, so a classic dealer win is a BettorWin and a classic player win is a
// BettorLoss.
type Outcome int

const (
	BettorWin Outcome = iota
	BettorLoss
	Push
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case BettorWin:
		return "win"
	case BettorLoss:
		return "loss"
	case Push:
		return "push"
	default:
		return "?"
	}
}

// PushCategory buckets a push by its shared hand value.
type PushCategory int

const (
	PushNone PushCategory = iota // not a push
	Push17
	Push18
	Push19
	Push20
	Push21
	PushBustBust
	PushBlackjacks
)

// Categories lists every real push category in display order.
var Categories = []PushCategory{
	Push17, Push18, Push19, Push20, Push21, PushBustBust, PushBlackjacks,
}

// String returns the string representation of a push category
func (p PushCategory) String() string {
	switch p {
	case Push17:
		return "17"
	case Push18:
		return "18"
	case Push19:
		return "19"
	case Push20:
		return "20"
	case Push21:
		return "21"
	case PushBustBust:
		return "bust-bust"
	case PushBlackjacks:
		return "blackjack-blackjack"
	case PushNone:
		return "none"
	default:
		return "?"
	}
}

// MaxCardBucket is the card-count bucket that absorbs every long push; a
// push deals at least four cards, so buckets run 4..MaxCardBucket.
const MaxCardBucket = 12

// CardCountBucket buckets the combined card count of both hands. Counts of
// twelve and above share the top bucket.
func CardCountBucket(n int) int {
	if n > MaxCardBucket-1 {
		return MaxCardBucket
	}
	return n
}

// CardBucketLabel formats a bucket for display: "4".."11" and "12+".
func CardBucketLabel(bucket int) string {
	if bucket >= MaxCardBucket {
		return "12+"
	}
	return strconv.Itoa(bucket)
}

// RoundResult is the immutable record produced once per resolved round and
// consumed by the aggregator and report writers.
type RoundResult struct {
	PlayerValue     int
	DealerValue     int
	Outcome         Outcome
	PlayerCards     int
	DealerCards     int
	PlayerBlackjack bool
	DealerBlackjack bool

	// Payout is the bettor's net primary-wager result in units: positive for
	// a win after commission, -1 for a loss, 0 for a push.
	Payout float64

	// Push bookkeeping, zero-valued unless Outcome == Push. CardBucket is
	// always set since it derives from the card counts.
	PushCategory  PushCategory
	CardBucket    int
	SidebetPayout float64
}
