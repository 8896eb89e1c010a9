package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdem-room/server/engine"
)

func intp(v int) *int { return &v }

func facingBet() engine.Moves {
	return engine.Moves{
		Kinds:    []engine.ActionKind{engine.Fold, engine.Call, engine.Raise, engine.AllIn},
		RaiseMin: 40,
		RaiseMax: 200,
	}
}

func TestTranslateCustomRaiseClamps(t *testing.T) {
	m := facingBet()

	kind, total, err := Translate(ActionRequest{Code: CodeCustomRaise, Amount: intp(50)}, m, 60)
	require.NoError(t, err)
	assert.Equal(t, engine.Raise, kind)
	assert.Equal(t, 50, total)

	_, total, err = Translate(ActionRequest{Code: CodeCustomRaise, Amount: intp(10)}, m, 60)
	require.NoError(t, err)
	assert.Equal(t, 40, total, "undersized raise clamps up to the minimum")

	_, total, err = Translate(ActionRequest{Code: CodeCustomRaise, Amount: intp(5000)}, m, 60)
	require.NoError(t, err)
	assert.Equal(t, 199, total, "oversized raise clamps below the exclusive max")
}

func TestTranslateCustomRaiseDefaultsToHalfPot(t *testing.T) {
	kind, total, err := Translate(ActionRequest{Code: CodeCustomRaise}, facingBet(), 160)
	require.NoError(t, err)
	assert.Equal(t, engine.Raise, kind)
	assert.Equal(t, 80, total)
}

func TestTranslatePotSizedRaises(t *testing.T) {
	m := facingBet()

	_, total, err := Translate(ActionRequest{Code: CodeRaiseHalf}, m, 200)
	require.NoError(t, err)
	assert.Equal(t, 100, total)

	_, total, err = Translate(ActionRequest{Code: CodeRaisePot}, m, 120)
	require.NoError(t, err)
	assert.Equal(t, 120, total)
}

func TestTranslateCheckCallPrefersCheck(t *testing.T) {
	m := engine.Moves{Kinds: []engine.ActionKind{engine.Fold, engine.Check, engine.Raise, engine.AllIn}, RaiseMin: 20, RaiseMax: 500}
	kind, _, err := Translate(ActionRequest{Code: CodeCheckCall}, m, 40)
	require.NoError(t, err)
	assert.Equal(t, engine.Check, kind)

	kind, _, err = Translate(ActionRequest{Code: CodeCheckCall}, facingBet(), 40)
	require.NoError(t, err)
	assert.Equal(t, engine.Call, kind)
}

func TestTranslateRaiseDegradesToAllIn(t *testing.T) {
	// Short stack: raising is off the table but shoving is not.
	m := engine.Moves{Kinds: []engine.ActionKind{engine.Fold, engine.Call, engine.AllIn}}
	kind, total, err := Translate(ActionRequest{Code: CodeRaisePot}, m, 300)
	require.NoError(t, err)
	assert.Equal(t, engine.AllIn, kind)
	assert.Zero(t, total)
}

func TestTranslateUnknownCode(t *testing.T) {
	_, _, err := Translate(ActionRequest{Code: 9}, facingBet(), 40)
	assert.ErrorIs(t, err, ErrInvalidAction)
}
