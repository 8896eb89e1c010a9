package ai

import "holdem-room/server/engine"

// postflop bins hand strength into four percentile bands with pot-relative
// sizing. Strength defaults to 0.5 when the board is too short to evaluate.
func (p *Policy) postflop(t Table, pos int, m engine.Moves, r float64) (engine.ActionKind, int, bool) {
	strength := 0.5
	if s, err := t.Percentile(pos); err == nil {
		strength = s
	}
	_, bb := t.Blinds()
	pot := potSize(t, bb)

	canRaise := m.Has(engine.Raise)
	canFold := m.Has(engine.Fold)
	canCheck := m.Has(engine.Check)
	canCall := m.Has(engine.Call)
	canAllIn := m.Has(engine.AllIn)

	uniform := func(lo, hi float64) float64 {
		return lo + (hi-lo)*p.rng.Float64()
	}

	switch {
	case strength > 0.75: // top of range: bet big, rarely shove
		if canAllIn && r < 0.15*p.prof.Aggression {
			return engine.AllIn, 0, true
		}
		if canRaise {
			return engine.Raise, clampRaise(int(float64(pot)*uniform(0.6, 1.2)), m), true
		}
		if canCall {
			return engine.Call, 0, true
		}
		if canCheck {
			return engine.Check, 0, true
		}

	case strength > 0.5: // decent made hand
		if canRaise && r < 0.3*p.prof.Aggression {
			return engine.Raise, clampRaise(int(float64(pot)*uniform(0.3, 0.6)), m), true
		}
		if canCheck {
			return engine.Check, 0, true
		}
		if canCall && r < 0.8 {
			return engine.Call, 0, true
		}
		if canFold && r > 0.7 {
			return engine.Fold, 0, true
		}
		if canCall {
			return engine.Call, 0, true
		}

	case strength > 0.3: // marginal, pot-controlled
		if canCheck {
			return engine.Check, 0, true
		}
		if canRaise && r < 0.5*p.prof.BluffFrequency {
			return engine.Raise, clampRaise(int(float64(pot)*0.4), m), true
		}
		if canCall && r < 0.5 {
			return engine.Call, 0, true
		}
		if canFold {
			return engine.Fold, 0, true
		}

	default: // weak: give up, with the occasional bluff
		if canRaise && r < p.prof.BluffFrequency {
			return engine.Raise, clampRaise(int(float64(pot)*0.5), m), true
		}
		if canCheck {
			return engine.Check, 0, true
		}
		if canCall && r < 0.15 {
			return engine.Call, 0, true
		}
		if canFold {
			return engine.Fold, 0, true
		}
	}
	return "", 0, false
}
