// Package sim wires the shoe, strategies, resolver, and aggregator into
// complete simulation runs: configuration and validation, the round loop,
// and a parallel multi-configuration sweep.
package sim

import (
	"errors"
	"fmt"

	"github.com/strayhat/pushjack/internal/game"
	"github.com/strayhat/pushjack/internal/strategy"
)

// ErrInvalidConfig wraps every configuration validation failure. These are
// fatal and reported before any simulation work begins.
var ErrInvalidConfig = errors.New("sim: invalid config")

// Config holds every knob for a single simulation run.
type Config struct {
	// Rounds is the number of rounds to simulate.
	Rounds int

	// Decks is the number of 52-card decks in the shoe.
	Decks int

	// Players is the number of simultaneous player hands per round, all
	// resolved against the same dealer hand.
	Players int

	// ReshuffleCutoff is the remaining-card threshold that triggers a
	// rebuild before a draw. Zero selects continuous shuffling.
	ReshuffleCutoff int

	DealerHitsSoft17 bool
	PlayerHitsSoft17 bool

	// StandThreshold is the player total at which the default rule stands.
	StandThreshold int

	CommissionPct         float64
	BlackjackPayout       float64
	CommissionOnBlackjack bool
	HitAgainstBlackjack   bool

	// Overrides is the player's explicit (descriptor, up-card) rule table.
	Overrides *strategy.RuleTable

	SidebetMode  game.SidebetMode
	TotalPayouts map[game.PushCategory]float64
	CardPayouts  map[int]float64

	// Seed fixes the RNG for reproducible runs. Zero picks a time-based
	// seed.
	Seed int64
}

// Default returns the house configuration the game is normally dealt under:
// six decks, one player hand, cutoff 52, 5% commission, even-money blackjack
// payout, stand on 17 for both sides.
func Default() Config {
	return Config{
		Rounds:          100_000,
		Decks:           6,
		Players:         1,
		ReshuffleCutoff: 52,
		StandThreshold:  strategy.DefaultStandThreshold,
		CommissionPct:   5.0,
		BlackjackPayout: 1.0,
	}
}

// DefaultTotalPayouts returns the even-money side-bet table for total mode:
// every category pays 1.
func DefaultTotalPayouts() map[game.PushCategory]float64 {
	m := make(map[game.PushCategory]float64, len(game.Categories))
	for _, c := range game.Categories {
		m[c] = 1
	}
	return m
}

// DefaultCardPayouts returns the even-money side-bet table for card-count
// mode: buckets 4 through 12+ each pay 1.
func DefaultCardPayouts() map[int]float64 {
	m := make(map[int]float64, game.MaxCardBucket-3)
	for b := 4; b <= game.MaxCardBucket; b++ {
		m[b] = 1
	}
	return m
}

// Validate rejects configurations that cannot produce a correct simulation.
func (c Config) Validate() error {
	if c.Rounds < 1 {
		return fmt.Errorf("%w: rounds must be positive, got %d", ErrInvalidConfig, c.Rounds)
	}
	if c.Decks < 1 {
		return fmt.Errorf("%w: decks must be positive, got %d", ErrInvalidConfig, c.Decks)
	}
	if c.Players < 1 {
		return fmt.Errorf("%w: players must be positive, got %d", ErrInvalidConfig, c.Players)
	}
	if c.ReshuffleCutoff < 0 {
		return fmt.Errorf("%w: reshuffle cutoff must not be negative, got %d", ErrInvalidConfig, c.ReshuffleCutoff)
	}
	// A worst-case round can consume a lot of cards; the shoe must always
	// cover one round past the cutoff check.
	if worst := worstCaseRoundCards(c.Players); c.Decks*52 < worst {
		return fmt.Errorf("%w: %d decks cannot cover a %d-hand round (up to %d cards)",
			ErrInvalidConfig, c.Decks, c.Players, worst)
	}
	if c.CommissionPct < 0 || c.CommissionPct > 100 {
		return fmt.Errorf("%w: commission must be in [0,100], got %v", ErrInvalidConfig, c.CommissionPct)
	}
	if c.BlackjackPayout < 0 {
		return fmt.Errorf("%w: blackjack payout must not be negative, got %v", ErrInvalidConfig, c.BlackjackPayout)
	}
	if c.StandThreshold < 4 || c.StandThreshold > 21 {
		return fmt.Errorf("%w: stand threshold must be in [4,21], got %d", ErrInvalidConfig, c.StandThreshold)
	}
	switch c.SidebetMode {
	case game.SidebetOff, game.SidebetTotals, game.SidebetCards:
	default:
		return fmt.Errorf("%w: unknown sidebet mode %d", ErrInvalidConfig, c.SidebetMode)
	}
	return nil
}

// worstCaseRoundCards bounds the cards one round can consume: every hand can
// draw to 21+ starting from aces, which caps a single hand around a dozen
// cards.
func worstCaseRoundCards(players int) int {
	const perHand = 12
	return perHand * (players + 1)
}

// Rules assembles the resolver's table rules from the configuration,
// substituting the even-money default payout tables when the active mode has
// none configured.
func (c Config) Rules() game.Rules {
	sidebet := game.SidebetRules{
		Mode:         c.SidebetMode,
		TotalPayouts: c.TotalPayouts,
		CardPayouts:  c.CardPayouts,
	}
	if sidebet.Mode == game.SidebetTotals && sidebet.TotalPayouts == nil {
		sidebet.TotalPayouts = DefaultTotalPayouts()
	}
	if sidebet.Mode == game.SidebetCards && sidebet.CardPayouts == nil {
		sidebet.CardPayouts = DefaultCardPayouts()
	}
	return game.Rules{
		CommissionPct:         c.CommissionPct,
		BlackjackPayout:       c.BlackjackPayout,
		CommissionOnBlackjack: c.CommissionOnBlackjack,
		HitAgainstBlackjack:   c.HitAgainstBlackjack,
		Sidebet:               sidebet,
	}
}

// DealerStrategy builds the house strategy from the configuration.
func (c Config) DealerStrategy() strategy.Dealer {
	return strategy.Dealer{HitSoft17: c.DealerHitsSoft17}
}

// PlayerStrategy builds the bettor-side strategy from the configuration.
func (c Config) PlayerStrategy() strategy.Player {
	return strategy.Player{
		StandThreshold: c.StandThreshold,
		HitSoft17:      c.PlayerHitsSoft17,
		Rules:          c.Overrides,
	}
}

// String summarizes the configuration for logs and report headers.
func (c Config) String() string {
	shuffle := fmt.Sprintf("reshuffle at %d cards", c.ReshuffleCutoff)
	if c.ReshuffleCutoff == 0 {
		shuffle = "continuous shuffle"
	}
	rules := "default"
	if c.Overrides.Len() > 0 {
		rules = fmt.Sprintf("%d overrides", c.Overrides.Len())
	}
	return fmt.Sprintf("rounds=%d decks=%d players=%d %s commission=%.1f%% bj-payout=%.2f sidebet=%s rules=%s",
		c.Rounds, c.Decks, c.Players, shuffle, c.CommissionPct, c.BlackjackPayout, c.SidebetMode, rules)
}
