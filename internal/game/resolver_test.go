package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strayhat/pushjack/internal/deck"
)

// scriptedSource deals a fixed card sequence and records what comes back.
type scriptedSource struct {
	cards    []deck.Card
	returned []deck.Card
}

func script(cards string) *scriptedSource {
	return &scriptedSource{cards: deck.MustParseCards(cards)}
}

func (s *scriptedSource) Draw() (deck.Card, error) {
	if len(s.cards) == 0 {
		return deck.Card{}, deck.ErrShoeExhausted
	}
	c := s.cards[0]
	s.cards = s.cards[1:]
	return c, nil
}

func (s *scriptedSource) ReturnToDiscard(cards []deck.Card) {
	s.returned = append(s.returned, cards...)
}

// thresholdStrategy hits below a fixed total, ignoring the up card.
type thresholdStrategy int

func (t thresholdStrategy) ShouldHit(h *Hand, _ *deck.Card) bool {
	return h.Value() < int(t)
}

func defaultRules() Rules {
	return Rules{CommissionPct: 5.0, BlackjackPayout: 1.0}
}

// playOne runs a single-hand round over a scripted deal. The script order is
// player first card, dealer up card, player second card, dealer hole card,
// then draws as the strategies request them.
func playOne(t *testing.T, rules Rules, cards string) RoundResult {
	t.Helper()
	source := script(cards)
	r := NewResolver(rules, source, thresholdStrategy(17), thresholdStrategy(17))
	results, err := r.PlayRound(1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	return results[0]
}

func TestResolveBothBlackjacks(t *testing.T) {
	// player A+K, dealer A+Q
	res := playOne(t, defaultRules(), "AsAhKdQc")

	assert.Equal(t, Push, res.Outcome)
	assert.Equal(t, PushBlackjacks, res.PushCategory)
	assert.Equal(t, 0.0, res.Payout)
	assert.True(t, res.PlayerBlackjack)
	assert.True(t, res.DealerBlackjack)
	assert.Equal(t, 4, res.CardBucket)
}

func TestResolveDealerBlackjackWins(t *testing.T) {
	// player T+9 stands pat against the natural
	res := playOne(t, defaultRules(), "TsAh9dKc")

	assert.Equal(t, BettorWin, res.Outcome)
	assert.Equal(t, 1.0, res.Payout, "blackjack payout carries no commission by default")
	assert.Equal(t, 2, res.PlayerCards)
}

func TestResolveDealerBlackjackPayoutVariants(t *testing.T) {
	t.Run("premium payout", func(t *testing.T) {
		rules := defaultRules()
		rules.BlackjackPayout = 1.5
		res := playOne(t, rules, "TsAh9dKc")
		assert.Equal(t, BettorWin, res.Outcome)
		assert.Equal(t, 1.5, res.Payout)
	})

	t.Run("commission on blackjack", func(t *testing.T) {
		rules := defaultRules()
		rules.CommissionOnBlackjack = true
		res := playOne(t, rules, "TsAh9dKc")
		assert.Equal(t, BettorWin, res.Outcome)
		assert.InDelta(t, 0.95, res.Payout, 1e-9)
	})
}

func TestResolveHitAgainstBlackjack(t *testing.T) {
	// player 9+5 would hit to 17 against the dealer's A+K natural
	rules := defaultRules()
	rules.HitAgainstBlackjack = true
	res := playOne(t, rules, "9sAh5dKc3s")

	assert.Equal(t, BettorWin, res.Outcome, "extra draws never change a dealer blackjack win")
	assert.Equal(t, 1.0, res.Payout)
	assert.Equal(t, 3, res.PlayerCards, "player draws against the natural when allowed")
	assert.Equal(t, 17, res.PlayerValue)
}

func TestResolveNoHitAgainstBlackjack(t *testing.T) {
	res := playOne(t, defaultRules(), "9sAh5dKc3s")

	assert.Equal(t, BettorWin, res.Outcome)
	assert.Equal(t, 2, res.PlayerCards, "players stand pat against a natural by default")
}

func TestResolvePlayerBlackjackLoses(t *testing.T) {
	// player A+K, dealer T+9
	res := playOne(t, defaultRules(), "AsThKd9c")

	assert.Equal(t, BettorLoss, res.Outcome)
	assert.Equal(t, -1.0, res.Payout)
	assert.True(t, res.PlayerBlackjack)
	assert.Equal(t, 2, res.DealerCards, "dealer stands on 19 with no extra draw")
}

func TestResolveRegularWinPaysCommission(t *testing.T) {
	// player 18 vs dealer 20: the bettor backs the dealer, so this wins
	res := playOne(t, defaultRules(), "TsTh8dQc")

	assert.Equal(t, BettorWin, res.Outcome)
	assert.InDelta(t, 0.95, res.Payout, 1e-9)
	assert.Equal(t, 18, res.PlayerValue)
	assert.Equal(t, 20, res.DealerValue)
}

func TestResolveRegularLoss(t *testing.T) {
	// player 20 vs dealer 18
	res := playOne(t, defaultRules(), "TsThQd8c")

	assert.Equal(t, BettorLoss, res.Outcome)
	assert.Equal(t, -1.0, res.Payout)
}

func TestResolvePlayerBustWins(t *testing.T) {
	// player T+6 hits K and busts; dealer T+8 stands
	res := playOne(t, defaultRules(), "TsTh6d8cKs")

	assert.Equal(t, BettorWin, res.Outcome)
	assert.Equal(t, 26, res.PlayerValue)
	assert.InDelta(t, 0.95, res.Payout, 1e-9)
}

func TestResolveDealerBustLoses(t *testing.T) {
	// player T+8 stands; dealer T+6 hits K and busts
	res := playOne(t, defaultRules(), "TsTh8d6cKs")

	assert.Equal(t, BettorLoss, res.Outcome)
	assert.Equal(t, 26, res.DealerValue)
	assert.Equal(t, -1.0, res.Payout)
}

func TestResolveBothBustPushes(t *testing.T) {
	// player T+6 hits K and busts; dealer T+6 hits Q and busts
	res := playOne(t, defaultRules(), "TsTh6d6cKsQh")

	assert.Equal(t, Push, res.Outcome)
	assert.Equal(t, PushBustBust, res.PushCategory)
	assert.Equal(t, 0.0, res.Payout)
	assert.Equal(t, 6, res.CardBucket)
}

func TestResolveDealerDrawsAfterPlayerBust(t *testing.T) {
	// The primary bet settles on the player bust, but the dealer still
	// completes its hand for the push bookkeeping.
	source := script("TsTh6d2cKs3hQd")
	r := NewResolver(defaultRules(), source, thresholdStrategy(17), thresholdStrategy(17))
	results, err := r.PlayRound(1)
	require.NoError(t, err)

	res := results[0]
	assert.Equal(t, Push, res.Outcome)
	assert.Equal(t, PushBustBust, res.PushCategory)
	assert.Equal(t, 4, res.DealerCards, "dealer kept drawing after the bust")
}

func TestResolveValuePushCategories(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		value    int
		category PushCategory
	}{
		{name: "push 17", cards: "Ts9h7d8c", value: 17, category: Push17},
		{name: "push 18", cards: "TsTh8d8c", value: 18, category: Push18},
		{name: "push 19", cards: "TsTh9d9c", value: 19, category: Push19},
		{name: "push 20", cards: "TsThQdQc", value: 20, category: Push20},
		{name: "push 21 three cards", cards: "TsTh5d6c6s5h", value: 21, category: Push21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := playOne(t, defaultRules(), tt.cards)
			require.Equal(t, Push, res.Outcome)
			assert.Equal(t, tt.value, res.PlayerValue)
			assert.Equal(t, tt.value, res.DealerValue)
			assert.Equal(t, tt.category, res.PushCategory)
		})
	}
}

func TestResolveSidebetPayouts(t *testing.T) {
	t.Run("totals mode", func(t *testing.T) {
		rules := defaultRules()
		rules.Sidebet = SidebetRules{
			Mode:         SidebetTotals,
			TotalPayouts: map[PushCategory]float64{Push18: 2.5},
		}
		res := playOne(t, rules, "TsTh8d8c")
		require.Equal(t, Push, res.Outcome)
		assert.Equal(t, 2.5, res.SidebetPayout)
	})

	t.Run("cards mode", func(t *testing.T) {
		rules := defaultRules()
		rules.Sidebet = SidebetRules{
			Mode:        SidebetCards,
			CardPayouts: map[int]float64{4: 1.5},
		}
		res := playOne(t, rules, "TsTh8d8c")
		require.Equal(t, Push, res.Outcome)
		assert.Equal(t, 4, res.CardBucket)
		assert.Equal(t, 1.5, res.SidebetPayout)
	})

	t.Run("unlisted category pays nothing", func(t *testing.T) {
		rules := defaultRules()
		rules.Sidebet = SidebetRules{
			Mode:         SidebetTotals,
			TotalPayouts: map[PushCategory]float64{Push17: 5},
		}
		res := playOne(t, rules, "TsTh8d8c")
		require.Equal(t, Push, res.Outcome)
		assert.Equal(t, 0.0, res.SidebetPayout)
	})

	t.Run("off mode records no payout", func(t *testing.T) {
		res := playOne(t, defaultRules(), "TsTh8d8c")
		require.Equal(t, Push, res.Outcome)
		assert.Equal(t, 0.0, res.SidebetPayout)
	})
}

func TestPlayRoundMultipleHands(t *testing.T) {
	// Two player hands against one dealer hand. Deal order is first card to
	// each player, dealer up, second card to each player, dealer hole.
	// Hand one: T+8 (18). Hand two: T+9 (19). Dealer: T+9 (19).
	source := script("TsTcTh8d9s9c")
	r := NewResolver(defaultRules(), source, thresholdStrategy(17), thresholdStrategy(17))

	results, err := r.PlayRound(2)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, BettorWin, results[0].Outcome, "dealer 19 beats 18")
	assert.Equal(t, Push, results[1].Outcome, "dealer 19 ties 19")
	assert.Len(t, source.returned, 6, "all dealt cards return to the discard")
}

func TestPlayRoundRejectsZeroHands(t *testing.T) {
	r := NewResolver(defaultRules(), script("AsAhKdQc"), thresholdStrategy(17), thresholdStrategy(17))
	_, err := r.PlayRound(0)
	assert.Error(t, err)
}

func TestPlayRoundPropagatesDrawErrors(t *testing.T) {
	r := NewResolver(defaultRules(), script("AsAh"), thresholdStrategy(17), thresholdStrategy(17))
	_, err := r.PlayRound(1)
	assert.ErrorIs(t, err, deck.ErrShoeExhausted)
}
