// Package stats accumulates per-round results into the running counts,
// frequency matrices, and derived edge metrics for a simulation run.
package stats

import (
	"errors"
	"time"

	"github.com/strayhat/pushjack/internal/game"
)

// ErrNoRounds is returned when statistics are requested before any round has
// been recorded. Callers treat it as "no data yet", not a failure.
var ErrNoRounds = errors.New("stats: no rounds recorded")

// valueCap bounds the matrix dimensions; busted totals above it collapse
// into a single row/column.
const valueCap = 30

// OutcomeKey indexes the outcome frequency matrix by capped final values.
type OutcomeKey struct {
	Player int
	Dealer int
}

// DetailKey indexes the detailed outcome matrix.
type DetailKey struct {
	Player  int
	Dealer  int
	Outcome game.Outcome
}

// PushKey indexes the push detail matrix by category and card-count bucket.
type PushKey struct {
	Category   game.PushCategory
	CardBucket int
}

// Aggregator accumulates results for one simulation run. It is not safe for
// concurrent use; parallel runs each own one and merge at the end.
type Aggregator struct {
	rounds           int
	bettorWins       int
	bettorLosses     int
	pushes           int
	playerBusts      int
	dealerBusts      int
	playerBlackjacks int
	dealerBlackjacks int
	netWin           float64
	sidebetPayouts   float64

	outcomes       map[OutcomeKey]int
	details        map[DetailKey]int
	pushCategories map[game.PushCategory]int
	pushCardCounts map[int]int
	pushDetail     map[PushKey]int

	elapsed time.Duration
}

// New creates an empty aggregator.
func New() *Aggregator {
	return &Aggregator{
		outcomes:       make(map[OutcomeKey]int),
		details:        make(map[DetailKey]int),
		pushCategories: make(map[game.PushCategory]int),
		pushCardCounts: make(map[int]int),
		pushDetail:     make(map[PushKey]int),
	}
}

func capValue(v int) int {
	if v > valueCap {
		return valueCap
	}
	return v
}

// Add folds one round result into the running totals.
func (a *Aggregator) Add(r game.RoundResult) {
	a.rounds++
	switch r.Outcome {
	case game.BettorWin:
		a.bettorWins++
	case game.BettorLoss:
		a.bettorLosses++
	case game.Push:
		a.pushes++
	}
	if r.PlayerValue > 21 {
		a.playerBusts++
	}
	if r.DealerValue > 21 {
		a.dealerBusts++
	}
	if r.PlayerBlackjack {
		a.playerBlackjacks++
	}
	if r.DealerBlackjack {
		a.dealerBlackjacks++
	}
	a.netWin += r.Payout

	pk, dk := capValue(r.PlayerValue), capValue(r.DealerValue)
	a.outcomes[OutcomeKey{pk, dk}]++
	a.details[DetailKey{pk, dk, r.Outcome}]++

	if r.Outcome == game.Push {
		a.pushCategories[r.PushCategory]++
		a.pushCardCounts[r.CardBucket]++
		a.pushDetail[PushKey{r.PushCategory, r.CardBucket}]++
		a.sidebetPayouts += r.SidebetPayout
	}
}

// Rounds returns the number of rounds recorded so far.
func (a *Aggregator) Rounds() int {
	return a.rounds
}

// SetElapsed records the run's wall time for throughput reporting.
func (a *Aggregator) SetElapsed(d time.Duration) {
	a.elapsed = d
}

// Merge folds another aggregator's counts into this one. Merging is
// associative and commutative, so sharded runs combine in any order. The
// larger elapsed time wins, matching wall time of parallel shards.
func (a *Aggregator) Merge(other *Aggregator) {
	a.rounds += other.rounds
	a.bettorWins += other.bettorWins
	a.bettorLosses += other.bettorLosses
	a.pushes += other.pushes
	a.playerBusts += other.playerBusts
	a.dealerBusts += other.dealerBusts
	a.playerBlackjacks += other.playerBlackjacks
	a.dealerBlackjacks += other.dealerBlackjacks
	a.netWin += other.netWin
	a.sidebetPayouts += other.sidebetPayouts

	for k, v := range other.outcomes {
		a.outcomes[k] += v
	}
	for k, v := range other.details {
		a.details[k] += v
	}
	for k, v := range other.pushCategories {
		a.pushCategories[k] += v
	}
	for k, v := range other.pushCardCounts {
		a.pushCardCounts[k] += v
	}
	for k, v := range other.pushDetail {
		a.pushDetail[k] += v
	}
	if other.elapsed > a.elapsed {
		a.elapsed = other.elapsed
	}
}

// Snapshot is an immutable copy of the aggregate statistics, queryable at
// any point during a run.
type Snapshot struct {
	Rounds           int
	BettorWins       int
	BettorLosses     int
	Pushes           int
	PlayerBusts      int
	DealerBusts      int
	PlayerBlackjacks int
	DealerBlackjacks int

	// NetWin is the bettor's cumulative primary-wager result in units.
	NetWin float64

	// SidebetPayouts is the cumulative side-wager multiplier collected.
	SidebetPayouts float64

	// HouseEdge is -NetWin/Rounds*100: positive when the house profits.
	HouseEdge float64

	// SidebetEdge is (SidebetPayouts-Rounds)/Rounds*100, with every round
	// implicitly wagering one unit on the side bet.
	SidebetEdge float64

	Outcomes       map[OutcomeKey]int
	Details        map[DetailKey]int
	PushCategories map[game.PushCategory]int
	PushCardCounts map[int]int
	PushDetail     map[PushKey]int

	Elapsed time.Duration
}

// Snapshot copies the current totals. It returns ErrNoRounds before the
// first round has been recorded.
func (a *Aggregator) Snapshot() (Snapshot, error) {
	if a.rounds == 0 {
		return Snapshot{}, ErrNoRounds
	}

	s := Snapshot{
		Rounds:           a.rounds,
		BettorWins:       a.bettorWins,
		BettorLosses:     a.bettorLosses,
		Pushes:           a.pushes,
		PlayerBusts:      a.playerBusts,
		DealerBusts:      a.dealerBusts,
		PlayerBlackjacks: a.playerBlackjacks,
		DealerBlackjacks: a.dealerBlackjacks,
		NetWin:           a.netWin,
		SidebetPayouts:   a.sidebetPayouts,
		HouseEdge:        -a.netWin / float64(a.rounds) * 100,
		SidebetEdge:      (a.sidebetPayouts - float64(a.rounds)) / float64(a.rounds) * 100,
		Outcomes:         make(map[OutcomeKey]int, len(a.outcomes)),
		Details:          make(map[DetailKey]int, len(a.details)),
		PushCategories:   make(map[game.PushCategory]int, len(a.pushCategories)),
		PushCardCounts:   make(map[int]int, len(a.pushCardCounts)),
		PushDetail:       make(map[PushKey]int, len(a.pushDetail)),
		Elapsed:          a.elapsed,
	}
	for k, v := range a.outcomes {
		s.Outcomes[k] = v
	}
	for k, v := range a.details {
		s.Details[k] = v
	}
	for k, v := range a.pushCategories {
		s.PushCategories[k] = v
	}
	for k, v := range a.pushCardCounts {
		s.PushCardCounts[k] = v
	}
	for k, v := range a.pushDetail {
		s.PushDetail[k] = v
	}
	return s, nil
}

// PushRate returns pushes as a percentage of rounds.
func (s Snapshot) PushRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.Pushes) / float64(s.Rounds) * 100
}

// RoundsPerSecond returns throughput, or zero when no elapsed time was set.
func (s Snapshot) RoundsPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Rounds) / s.Elapsed.Seconds()
}
