package game

import (
	"errors"

	"github.com/strayhat/pushjack/internal/deck"
)

// Phase is the stage of a single stepped round.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseDealt
	PhasePlayerTurn
	PhaseDealerTurn
	PhaseResult
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseDealt:
		return "dealt"
	case PhasePlayerTurn:
		return "player_turn"
	case PhaseDealerTurn:
		return "dealer_turn"
	case PhaseResult:
		return "result"
	default:
		return "?"
	}
}

// ErrWrongPhase is returned when an action is not valid in the round's
// current phase.
var ErrWrongPhase = errors.New("game: action not valid in current phase")

// Round steps a single player hand against the dealer one action at a time,
// sharing the resolver's classification and payout logic. It exists for the
// interactive stepping front end; the batch simulator goes through
// Resolver.PlayRound instead.
//
// Phases advance Init -> Dealt -> PlayerTurn -> DealerTurn -> Result, with a
// direct Dealt -> Result jump when either opening hand is a blackjack. The
// player and dealer turns self-loop on each hit.
type Round struct {
	resolver *Resolver
	phase    Phase
	player   *Hand
	dealer   *Hand
	result   *RoundResult
	steps    int
}

// NewRound creates a fresh round in PhaseInit.
func NewRound(resolver *Resolver) *Round {
	return &Round{
		resolver: resolver,
		phase:    PhaseInit,
		player:   NewHand(PlayerRole),
		dealer:   NewHand(DealerRole),
	}
}

// Phase returns the round's current phase.
func (r *Round) Phase() Phase { return r.phase }

// PlayerHand returns the player's hand.
func (r *Round) PlayerHand() *Hand { return r.player }

// DealerHand returns the dealer's hand.
func (r *Round) DealerHand() *Hand { return r.dealer }

// Steps returns the number of cards dealt so far, for display.
func (r *Round) Steps() int { return r.steps }

// Result returns the round's result, or nil before PhaseResult.
func (r *Round) Result() *RoundResult { return r.result }

// Deal deals the opening two cards to each side. An immediate blackjack on
// either side completes the round.
func (r *Round) Deal() error {
	if r.phase != PhaseInit {
		return ErrWrongPhase
	}
	if err := r.resolver.dealInitial([]*Hand{r.player}, r.dealer); err != nil {
		return err
	}
	r.steps += 4
	r.phase = PhaseDealt
	if r.player.IsBlackjack() || r.dealer.IsBlackjack() {
		return r.complete()
	}
	return nil
}

// PlayerHit draws for the player if the strategy agrees; a strategy stand
// hands play to the dealer instead. Busting or reaching 21 also ends the
// player's turn.
func (r *Round) PlayerHit() error {
	if r.phase != PhaseDealt && r.phase != PhasePlayerTurn {
		return ErrWrongPhase
	}
	r.phase = PhasePlayerTurn

	var up *deck.Card
	if c, ok := r.dealer.UpCard(); ok {
		up = &c
	}
	if !r.resolver.player.ShouldHit(r.player, up) {
		r.phase = PhaseDealerTurn
		return nil
	}

	c, err := r.resolver.source.Draw()
	if err != nil {
		return err
	}
	r.player.AddCard(c)
	r.steps++

	if r.player.IsBust() || r.player.Value() == 21 {
		r.phase = PhaseDealerTurn
	}
	return nil
}

// PlayerStand ends the player's turn unconditionally.
func (r *Round) PlayerStand() error {
	if r.phase != PhaseDealt && r.phase != PhasePlayerTurn {
		return ErrWrongPhase
	}
	r.phase = PhaseDealerTurn
	return nil
}

// DealerStep draws one dealer card, completing the round once the dealer
// strategy stands.
func (r *Round) DealerStep() error {
	if r.phase != PhaseDealerTurn {
		return ErrWrongPhase
	}
	if !r.resolver.dealer.ShouldHit(r.dealer, nil) {
		return r.complete()
	}

	c, err := r.resolver.source.Draw()
	if err != nil {
		return err
	}
	r.dealer.AddCard(c)
	r.steps++

	if !r.resolver.dealer.ShouldHit(r.dealer, nil) {
		return r.complete()
	}
	return nil
}

// complete classifies the hands as they stand, records the result, and sends
// the used cards back to the source.
func (r *Round) complete() error {
	res := r.resolver.result(r.player, r.dealer, classify(r.player, r.dealer))
	r.result = &res
	r.phase = PhaseResult

	used := make([]deck.Card, 0, r.player.CardCount()+r.dealer.CardCount())
	used = append(used, r.player.Cards()...)
	used = append(used, r.dealer.Cards()...)
	r.resolver.source.ReturnToDiscard(used)
	return nil
}
