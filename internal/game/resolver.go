package game

import (
	"fmt"

	"github.com/strayhat/pushjack/internal/deck"
)

// CardSource supplies cards to a round and takes them back afterwards. A
// *deck.Shoe is the production implementation; tests script one.
type CardSource interface {
	Draw() (deck.Card, error)
	ReturnToDiscard(cards []deck.Card)
}

// Strategy decides whether a hand should take another card. The dealer's up
// card is nil when the decision is for the dealer's own hand.
type Strategy interface {
	ShouldHit(h *Hand, upCard *deck.Card) bool
}

// Resolver plays complete rounds against a card source: deal, draw per
// strategy, classify for the bettor, and compute the wager payoffs.
type Resolver struct {
	rules  Rules
	source CardSource
	player Strategy
	dealer Strategy
}

// NewResolver creates a resolver bound to a card source and a strategy pair.
func NewResolver(rules Rules, source CardSource, player, dealer Strategy) *Resolver {
	return &Resolver{rules: rules, source: source, player: player, dealer: dealer}
}

// Rules returns the table rules the resolver plays under.
func (r *Resolver) Rules() Rules {
	return r.rules
}

// PlayRound deals fresh hands, resolves each player hand against the dealer,
// returns every used card to the source's discard, and produces one result
// per player hand.
func (r *Resolver) PlayRound(numHands int) ([]RoundResult, error) {
	if numHands < 1 {
		return nil, fmt.Errorf("game: at least one player hand required, got %d", numHands)
	}

	players := make([]*Hand, numHands)
	for i := range players {
		players[i] = NewHand(PlayerRole)
	}
	dealer := NewHand(DealerRole)

	if err := r.dealInitial(players, dealer); err != nil {
		return nil, err
	}

	results := make([]RoundResult, 0, numHands)
	for _, ph := range players {
		res, err := r.resolve(ph, dealer)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	used := make([]deck.Card, 0, 4+2*numHands)
	for _, ph := range players {
		used = append(used, ph.Cards()...)
	}
	used = append(used, dealer.Cards()...)
	r.source.ReturnToDiscard(used)

	return results, nil
}

// dealInitial deals the opening two cards: first card to each player, the
// dealer's up card, second card to each player, then the dealer's hole card.
// The order is fixed so seeded runs replay identically.
func (r *Resolver) dealInitial(players []*Hand, dealer *Hand) error {
	for _, ph := range players {
		if err := r.deal(ph); err != nil {
			return err
		}
	}
	if err := r.deal(dealer); err != nil {
		return err
	}
	for _, ph := range players {
		if err := r.deal(ph); err != nil {
			return err
		}
	}
	return r.deal(dealer)
}

func (r *Resolver) deal(h *Hand) error {
	c, err := r.source.Draw()
	if err != nil {
		return err
	}
	h.AddCard(c)
	return nil
}

// resolve plays one player hand to completion against the dealer hand.
func (r *Resolver) resolve(player, dealer *Hand) (RoundResult, error) {
	playerBJ := player.IsBlackjack()
	dealerBJ := dealer.IsBlackjack()

	switch {
	case playerBJ && dealerBJ:
		return r.result(player, dealer, Push), nil
	case dealerBJ:
		// The dealer's blackjack wins for the bettor no matter what the
		// player draws afterwards; the extra cards only feed the side-bet
		// card counts.
		if r.rules.HitAgainstBlackjack {
			if err := r.drawWhile(player, r.player, dealer); err != nil {
				return RoundResult{}, err
			}
		}
		return r.result(player, dealer, BettorWin), nil
	case playerBJ:
		return r.result(player, dealer, BettorLoss), nil
	}

	if err := r.drawWhile(player, r.player, dealer); err != nil {
		return RoundResult{}, err
	}
	// The dealer always completes its draw, even after a player bust has
	// settled the primary bet: the side-bet categorization needs the
	// dealer's final hand.
	if err := r.drawWhile(dealer, r.dealer, dealer); err != nil {
		return RoundResult{}, err
	}

	return r.result(player, dealer, classify(player, dealer)), nil
}

// drawWhile hits the hand for as long as the strategy asks. Only player
// hands see the dealer's up card.
func (r *Resolver) drawWhile(h *Hand, strat Strategy, dealer *Hand) error {
	var up *deck.Card
	if h.Role() == PlayerRole {
		if c, ok := dealer.UpCard(); ok {
			up = &c
		}
	}
	for strat.ShouldHit(h, up) {
		c, err := r.source.Draw()
		if err != nil {
			return err
		}
		h.AddCard(c)
	}
	return nil
}

// classify determines the bettor outcome from two final hands.
func classify(player, dealer *Hand) Outcome {
	playerBJ := player.IsBlackjack()
	dealerBJ := dealer.IsBlackjack()
	switch {
	case playerBJ && dealerBJ:
		return Push
	case dealerBJ:
		return BettorWin
	case playerBJ:
		return BettorLoss
	}

	switch {
	case player.IsBust() && dealer.IsBust():
		return Push
	case player.IsBust():
		return BettorWin
	case dealer.IsBust():
		return BettorLoss
	}

	switch pv, dv := player.Value(), dealer.Value(); {
	case dv > pv:
		return BettorWin
	case pv > dv:
		return BettorLoss
	default:
		return Push
	}
}

// result builds the round record, including the primary payout and, on a
// push, the side-wager category and payout.
func (r *Resolver) result(player, dealer *Hand, outcome Outcome) RoundResult {
	res := RoundResult{
		PlayerValue:     player.Value(),
		DealerValue:     dealer.Value(),
		Outcome:         outcome,
		PlayerCards:     player.CardCount(),
		DealerCards:     dealer.CardCount(),
		PlayerBlackjack: player.IsBlackjack(),
		DealerBlackjack: dealer.IsBlackjack(),
	}
	res.CardBucket = CardCountBucket(res.PlayerCards + res.DealerCards)

	switch outcome {
	case BettorWin:
		if res.DealerBlackjack {
			res.Payout = r.rules.BlackjackPayout
			if r.rules.CommissionOnBlackjack {
				res.Payout *= r.rules.CommissionMultiplier()
			}
		} else {
			res.Payout = r.rules.CommissionMultiplier()
		}
	case BettorLoss:
		res.Payout = -1
	case Push:
		res.PushCategory = pushCategory(player, dealer)
		res.SidebetPayout = r.rules.Sidebet.Payout(res.PushCategory, res.CardBucket)
	}
	return res
}

// pushCategory buckets a push by its shared value or bust/blackjack status.
func pushCategory(player, dealer *Hand) PushCategory {
	switch {
	case player.IsBust():
		return PushBustBust
	case player.IsBlackjack() && dealer.IsBlackjack():
		return PushBlackjacks
	}
	switch player.Value() {
	case 17:
		return Push17
	case 18:
		return Push18
	case 19:
		return Push19
	case 20:
		return Push20
	case 21:
		return Push21
	}
	// Unreachable with the fixed dealer strategy: the dealer never stands
	// below 17, so no push can settle there.
	return PushNone
}
