package ai

import (
	"math/rand"
	"time"

	"holdem-room/server/engine"
)

// Table is the read-only view of the rules engine the policy needs.
// *engine.Table satisfies it.
type Table interface {
	AvailableMoves() engine.Moves
	Phase() engine.Phase
	Hole(pos int) ([]engine.Card, error)
	Pots() []engine.Pot
	Blinds() (sb, bb int)
	Percentile(pos int) (float64, error)
}

// Rand is the slice of math/rand the policy draws from. Injected so tests
// can script exact sequences. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Policy is a rule-based decision maker for one seat difficulty level.
// Each decision is independent: no bluff memory, no opponent modeling.
type Policy struct {
	Difficulty string
	prof       Profile
	rng        Rand
}

// New builds a policy. A nil rng gets a time-seeded math/rand source.
func New(difficulty string, prof Profile, rng Rand) *Policy {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Policy{Difficulty: difficulty, prof: prof, rng: rng}
}

// Decide picks an action for the seat at pos. The returned total is the
// raise-to amount and is zero for non-raise actions. The result is always
// drawn from the engine's currently legal set.
func (p *Policy) Decide(t Table, pos int) (engine.ActionKind, int) {
	moves := t.AvailableMoves()
	r := p.rng.Float64()

	var kind engine.ActionKind
	var total int
	var ok bool
	if t.Phase() == engine.Preflop {
		kind, total, ok = p.preflop(t, pos, moves, r)
	} else {
		kind, total, ok = p.postflop(t, pos, moves, r)
	}
	if ok && moves.Has(kind) {
		return kind, total
	}

	// Guaranteed fallback: some legal move always comes out.
	switch {
	case moves.Has(engine.Check):
		return engine.Check, 0
	case moves.Has(engine.Call):
		return engine.Call, 0
	case moves.Has(engine.Fold):
		return engine.Fold, 0
	}
	if len(moves.Kinds) > 0 {
		return moves.Kinds[0], 0
	}
	return engine.Fold, 0
}

// clampRaise bounds a desired raise-to total inside the legal [min,max)
// range.
func clampRaise(want int, m engine.Moves) int {
	if want > m.RaiseMax-1 {
		want = m.RaiseMax - 1
	}
	if want < m.RaiseMin {
		want = m.RaiseMin
	}
	return want
}

func potSize(t Table, bb int) int {
	total := 0
	for _, p := range t.Pots() {
		total += p.Amount
	}
	if total == 0 {
		total = bb * 2
	}
	return total
}
