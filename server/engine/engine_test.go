package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T, seats int) *Table {
	t.Helper()
	tbl, err := New(Config{SB: 10, BB: 20, BuyIn: 1000, Seats: seats}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	return tbl
}

func chipsInPlay(t *Table) int {
	total := 0
	for pos := 0; pos < t.SeatCount(); pos++ {
		total += t.Chips(pos)
	}
	for _, p := range t.Pots() {
		if t.Phase() != Settle {
			total += p.Amount
		}
	}
	return total
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(Config{SB: 10, BB: 20, BuyIn: 1000, Seats: 1}, nil)
	assert.Error(t, err)
	_, err = New(Config{SB: 10, BB: 20, BuyIn: 1000, Seats: 9}, nil)
	assert.Error(t, err)
	_, err = New(Config{SB: 20, BB: 10, BuyIn: 1000, Seats: 4}, nil)
	assert.Error(t, err)
}

func TestStartHandPostsBlindsAndDeals(t *testing.T) {
	tbl := newTestTable(t, 4)
	require.NoError(t, tbl.StartHand())

	assert.Equal(t, Preflop, tbl.Phase())
	assert.Equal(t, 0, tbl.Button())
	assert.Equal(t, 1, tbl.SmallBlindPos())
	assert.Equal(t, 2, tbl.BigBlindPos())
	assert.Equal(t, 3, tbl.CurrentActor(), "first action is left of the big blind")

	assert.Equal(t, 990, tbl.Chips(1))
	assert.Equal(t, 980, tbl.Chips(2))
	assert.Equal(t, 30, tbl.Pots()[0].Amount)

	for pos := 0; pos < 4; pos++ {
		hole, err := tbl.Hole(pos)
		require.NoError(t, err)
		assert.Len(t, hole, 2)
	}
	assert.Equal(t, 4000, chipsInPlay(tbl))
}

func TestHeadsUpButtonPostsSmallBlind(t *testing.T) {
	tbl := newTestTable(t, 2)
	require.NoError(t, tbl.StartHand())

	assert.Equal(t, tbl.Button(), tbl.SmallBlindPos())
	assert.Equal(t, tbl.Button(), tbl.CurrentActor(), "button acts first preflop heads-up")
}

func TestFoldAroundAwardsPotToBigBlind(t *testing.T) {
	tbl := newTestTable(t, 4)
	require.NoError(t, tbl.StartHand())

	require.NoError(t, tbl.TakeAction(Fold, 0)) // seat 3
	require.NoError(t, tbl.TakeAction(Fold, 0)) // seat 0
	require.NoError(t, tbl.TakeAction(Fold, 0)) // seat 1, the small blind

	assert.False(t, tbl.HandRunning())
	assert.Equal(t, Settle, tbl.Phase())
	assert.Equal(t, -1, tbl.CurrentActor())

	res := tbl.Settlement()
	require.Len(t, res, 1)
	assert.Equal(t, 30, res[0].Amount)
	assert.Equal(t, []int{2}, res[0].Winners)
	assert.Zero(t, res[0].Rank, "uncontested pot needs no showdown")
	assert.Equal(t, 1010, tbl.Chips(2))
	assert.Equal(t, 4000, chipsInPlay(tbl))
}

func TestRaiseRangeEnforced(t *testing.T) {
	tbl := newTestTable(t, 4)
	require.NoError(t, tbl.StartHand())

	m := tbl.AvailableMoves()
	require.True(t, m.Has(Raise))
	assert.Equal(t, 40, m.RaiseMin, "min raise doubles the big blind")
	assert.Equal(t, 1001, m.RaiseMax, "raise-to can reach the full stack, max exclusive")

	assert.Error(t, tbl.TakeAction(Raise, 39))
	assert.Error(t, tbl.TakeAction(Raise, 1001))
	require.NoError(t, tbl.TakeAction(Raise, 60))

	// The raise resets the increment: next raise must go to at least 100.
	m = tbl.AvailableMoves()
	assert.Equal(t, 100, m.RaiseMin)
}

func TestBigBlindGetsOption(t *testing.T) {
	tbl := newTestTable(t, 3)
	require.NoError(t, tbl.StartHand())

	// btn=0, sb=1, bb=2; button opens preflop.
	require.Equal(t, 0, tbl.CurrentActor())
	require.NoError(t, tbl.TakeAction(Call, 0))
	require.NoError(t, tbl.TakeAction(Call, 0))

	assert.Equal(t, 2, tbl.CurrentActor(), "big blind closes the preflop round")
	m := tbl.AvailableMoves()
	assert.True(t, m.Has(Check))
	require.NoError(t, tbl.TakeAction(Check, 0))

	assert.Equal(t, Flop, tbl.Phase())
	assert.Len(t, tbl.Board(), 3)
	assert.Equal(t, 1, tbl.CurrentActor(), "postflop action starts left of the button")
}

func TestCheckOnlyLegalWithNothingOwed(t *testing.T) {
	tbl := newTestTable(t, 3)
	require.NoError(t, tbl.StartHand())

	m := tbl.AvailableMoves()
	assert.True(t, m.Has(Call))
	assert.False(t, m.Has(Check))
	assert.Error(t, tbl.TakeAction(Check, 0))
}

func TestAllInRunoutDealsFullBoard(t *testing.T) {
	tbl := newTestTable(t, 2)
	require.NoError(t, tbl.StartHand())

	require.NoError(t, tbl.TakeAction(AllIn, 0))
	require.NoError(t, tbl.TakeAction(AllIn, 0))

	assert.False(t, tbl.HandRunning())
	assert.Len(t, tbl.Board(), 5, "board runs out with nobody left to act")
	require.NotEmpty(t, tbl.Settlement())

	total := tbl.Chips(0) + tbl.Chips(1)
	assert.Equal(t, 2000, total)
}

func TestSidePotLayering(t *testing.T) {
	tbl := newTestTable(t, 3)
	require.NoError(t, tbl.StartHand())

	// Shrink one stack so an all-in creates a side pot.
	tbl.seats[0].Chips = 80

	require.NoError(t, tbl.TakeAction(AllIn, 0)) // seat 0, short, to 80
	require.NoError(t, tbl.TakeAction(Call, 0))  // seat 1
	require.NoError(t, tbl.TakeAction(Call, 0))  // seat 2

	// Flop onwards the two full stacks keep betting.
	require.Equal(t, Flop, tbl.Phase())
	require.NoError(t, tbl.TakeAction(Raise, 100)) // seat 1
	require.NoError(t, tbl.TakeAction(Call, 0))    // seat 2
	for tbl.HandRunning() {
		require.NoError(t, tbl.TakeAction(Check, 0))
	}

	res := tbl.Settlement()
	require.Len(t, res, 2, "short all-in splits a main and a side pot")
	assert.Equal(t, 240, res[0].Amount, "main pot caps at the short stack level")
	assert.Equal(t, 200, res[1].Amount)
	for _, w := range res[1].Winners {
		assert.NotEqual(t, 0, w, "short stack cannot win the side pot")
	}
}

func TestBustedSeatSkippedNextHand(t *testing.T) {
	tbl := newTestTable(t, 3)
	require.NoError(t, tbl.StartHand())
	tbl.seats[0].Chips = 0
	require.NoError(t, tbl.TakeAction(Fold, 0)) // seat 0, now broke
	require.NoError(t, tbl.TakeAction(Fold, 0)) // seat 1
	require.False(t, tbl.HandRunning())

	require.NoError(t, tbl.StartHand())
	assert.Equal(t, Out, tbl.State(0))
	_, err := tbl.Hole(0)
	assert.Error(t, err, "busted seats are not dealt in")
}
