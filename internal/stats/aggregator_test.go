package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strayhat/pushjack/internal/game"
)

func winResult(payout float64) game.RoundResult {
	return game.RoundResult{
		PlayerValue: 18,
		DealerValue: 20,
		Outcome:     game.BettorWin,
		PlayerCards: 2,
		DealerCards: 2,
		Payout:      payout,
		CardBucket:  4,
	}
}

func lossResult() game.RoundResult {
	return game.RoundResult{
		PlayerValue: 20,
		DealerValue: 18,
		Outcome:     game.BettorLoss,
		PlayerCards: 2,
		DealerCards: 2,
		Payout:      -1,
		CardBucket:  4,
	}
}

func pushResult(cat game.PushCategory, bucket int, sidebet float64) game.RoundResult {
	return game.RoundResult{
		PlayerValue:   18,
		DealerValue:   18,
		Outcome:       game.Push,
		PlayerCards:   2,
		DealerCards:   2,
		PushCategory:  cat,
		CardBucket:    bucket,
		SidebetPayout: sidebet,
	}
}

func TestAggregatorEmpty(t *testing.T) {
	a := New()
	assert.Equal(t, 0, a.Rounds())

	_, err := a.Snapshot()
	assert.ErrorIs(t, err, ErrNoRounds)
}

func TestAggregatorCounts(t *testing.T) {
	a := New()
	a.Add(winResult(0.95))
	a.Add(winResult(0.95))
	a.Add(lossResult())
	a.Add(pushResult(game.Push18, 4, 1.5))

	snap, err := a.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, 4, snap.Rounds)
	assert.Equal(t, 2, snap.BettorWins)
	assert.Equal(t, 1, snap.BettorLosses)
	assert.Equal(t, 1, snap.Pushes)
	assert.InDelta(t, 0.9, snap.NetWin, 1e-9)
	assert.Equal(t, 1.5, snap.SidebetPayouts)
	assert.Equal(t, 25.0, snap.PushRate())

	assert.Equal(t, 2, snap.Outcomes[OutcomeKey{Player: 18, Dealer: 20}])
	assert.Equal(t, 2, snap.Details[DetailKey{Player: 18, Dealer: 20, Outcome: game.BettorWin}])
	assert.Equal(t, 1, snap.PushCategories[game.Push18])
	assert.Equal(t, 1, snap.PushCardCounts[4])
	assert.Equal(t, 1, snap.PushDetail[PushKey{Category: game.Push18, CardBucket: 4}])
}

func TestAggregatorBustAndBlackjackCounts(t *testing.T) {
	a := New()
	a.Add(game.RoundResult{PlayerValue: 25, DealerValue: 18, Outcome: game.BettorWin, Payout: 0.95, CardBucket: 5})
	a.Add(game.RoundResult{PlayerValue: 19, DealerValue: 23, Outcome: game.BettorLoss, Payout: -1, CardBucket: 5})
	a.Add(game.RoundResult{
		PlayerValue: 21, DealerValue: 21, Outcome: game.Push,
		PlayerBlackjack: true, DealerBlackjack: true,
		PushCategory: game.PushBlackjacks, CardBucket: 4,
	})

	snap, err := a.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, 1, snap.PlayerBusts)
	assert.Equal(t, 1, snap.DealerBusts)
	assert.Equal(t, 1, snap.PlayerBlackjacks)
	assert.Equal(t, 1, snap.DealerBlackjacks)
}

func TestAggregatorCapsMatrixValues(t *testing.T) {
	a := New()
	a.Add(game.RoundResult{PlayerValue: 33, DealerValue: 35, Outcome: game.Push, PushCategory: game.PushBustBust, CardBucket: 12})

	snap, err := a.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 1, snap.Outcomes[OutcomeKey{Player: 30, Dealer: 30}])
}

func TestHouseEdge(t *testing.T) {
	t.Run("all losses", func(t *testing.T) {
		a := New()
		for i := 0; i < 10; i++ {
			a.Add(lossResult())
		}
		snap, err := a.Snapshot()
		require.NoError(t, err)
		assert.Equal(t, 100.0, snap.HouseEdge)
	})

	t.Run("all commission-free wins", func(t *testing.T) {
		a := New()
		for i := 0; i < 10; i++ {
			a.Add(winResult(1.0))
		}
		snap, err := a.Snapshot()
		require.NoError(t, err)
		assert.Equal(t, -100.0, snap.HouseEdge)
	})

	t.Run("commission shows up as edge", func(t *testing.T) {
		a := New()
		a.Add(winResult(0.95))
		a.Add(lossResult())
		snap, err := a.Snapshot()
		require.NoError(t, err)
		assert.InDelta(t, 2.5, snap.HouseEdge, 1e-9)
	})
}

func TestSidebetEdge(t *testing.T) {
	t.Run("no pushes loses the side wager every round", func(t *testing.T) {
		a := New()
		a.Add(winResult(0.95))
		a.Add(lossResult())
		snap, err := a.Snapshot()
		require.NoError(t, err)
		assert.Equal(t, -100.0, snap.SidebetEdge)
	})

	t.Run("generous payout flips the edge", func(t *testing.T) {
		a := New()
		a.Add(lossResult())
		a.Add(pushResult(game.Push18, 4, 4.0))
		snap, err := a.Snapshot()
		require.NoError(t, err)
		assert.Equal(t, 100.0, snap.SidebetEdge)
	})
}

func TestAggregatorMerge(t *testing.T) {
	a := New()
	a.Add(winResult(0.95))
	a.Add(pushResult(game.Push18, 4, 1.0))
	a.SetElapsed(2 * time.Second)

	b := New()
	b.Add(lossResult())
	b.Add(pushResult(game.Push18, 4, 1.0))
	b.Add(pushResult(game.PushBustBust, 7, 0))
	b.SetElapsed(3 * time.Second)

	a.Merge(b)
	snap, err := a.Snapshot()
	require.NoError(t, err)

	assert.Equal(t, 5, snap.Rounds)
	assert.Equal(t, 1, snap.BettorWins)
	assert.Equal(t, 1, snap.BettorLosses)
	assert.Equal(t, 3, snap.Pushes)
	assert.Equal(t, 2, snap.PushCategories[game.Push18])
	assert.Equal(t, 2, snap.PushDetail[PushKey{Category: game.Push18, CardBucket: 4}])
	assert.Equal(t, 2.0, snap.SidebetPayouts)
	assert.Equal(t, 3*time.Second, snap.Elapsed, "the longer elapsed time wins")
}

func TestSnapshotIsACopy(t *testing.T) {
	a := New()
	a.Add(pushResult(game.Push18, 4, 1.0))

	snap, err := a.Snapshot()
	require.NoError(t, err)
	snap.PushCategories[game.Push18] = 99

	again, err := a.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 1, again.PushCategories[game.Push18])
}

func TestRoundsPerSecond(t *testing.T) {
	a := New()
	a.Add(winResult(1.0))
	a.Add(winResult(1.0))
	a.SetElapsed(500 * time.Millisecond)

	snap, err := a.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, 4.0, snap.RoundsPerSecond())

	var empty Snapshot
	assert.Equal(t, 0.0, empty.RoundsPerSecond())
}
