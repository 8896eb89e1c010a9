package ai

import (
	"fmt"

	"holdem-room/server/engine"
)

// Starting-hand tiers, a simplified Chen-style classification keyed on the
// canonical "AKs"/"QQ"/"T9o" form (high card first, s=suited o=offsuit).
var premiumHands = set("AA", "KK", "AKs", "AKo")

var strongHands = set("JJ", "TT", "AQs", "AQo", "AJs", "KQs", "99")

var playableHands = set(
	"88", "77", "66", "ATs", "AJo", "KJs", "KQo", "QJs", "JTs", "KTs", "QTs",
	"A9s", "A8s", "A7s", "A6s", "A5s", "A4s", "A3s", "A2s",
)

func set(keys ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		m[k] = struct{}{}
	}
	return m
}

// canonical orders a two-card hand high rank first.
func canonical(hole []engine.Card) (hi, lo int, suited bool) {
	hi, lo = hole[0].Rank, hole[1].Rank
	if lo > hi {
		hi, lo = lo, hi
	}
	return hi, lo, hole[0].Suit == hole[1].Suit
}

func rankChar(r int) byte {
	return "  23456789TJQKA"[r]
}

func handKey(hi, lo int, suited bool) string {
	if hi == lo {
		return fmt.Sprintf("%c%c", rankChar(hi), rankChar(lo))
	}
	sfx := byte('o')
	if suited {
		sfx = 's'
	}
	return fmt.Sprintf("%c%c%c", rankChar(hi), rankChar(lo), sfx)
}

// PreflopTier buckets a starting hand: 0=weak, 1=playable, 2=strong,
// 3=premium. Pure in the canonical (hi, lo, suited) form.
func PreflopTier(hole []engine.Card) int {
	if len(hole) < 2 {
		return 0
	}
	hi, lo, suited := canonical(hole)

	if hi == lo {
		switch {
		case hi >= 13:
			return 3 // AA, KK
		case hi >= 10:
			return 2 // QQ, JJ, TT
		default:
			return 1 // every smaller pair plays
		}
	}

	key := handKey(hi, lo, suited)
	if _, ok := premiumHands[key]; ok {
		return 3
	}
	if _, ok := strongHands[key]; ok {
		return 2
	}
	if _, ok := playableHands[key]; ok {
		return 1
	}

	if suited {
		if hi-lo <= 2 && hi >= 7 {
			return 1 // suited connector or one-gapper above the midpoint
		}
		if hi == 14 {
			return 1 // any suited ace
		}
	}
	if hi >= 13 && lo >= 9 {
		return 1 // big card with a decent kicker
	}
	return 0
}

// preflop maps the tier to an action. r is the single uniform draw gating
// every probabilistic branch of this decision.
func (p *Policy) preflop(t Table, pos int, m engine.Moves, r float64) (engine.ActionKind, int, bool) {
	hole, err := t.Hole(pos)
	if err != nil {
		return "", 0, false
	}
	_, bb := t.Blinds()
	tier := PreflopTier(hole)

	canRaise := m.Has(engine.Raise)
	canFold := m.Has(engine.Fold)
	canCheck := m.Has(engine.Check)
	canCall := m.Has(engine.Call)

	switch tier {
	case 3: // premium: open big
		if canRaise {
			return engine.Raise, clampRaise(bb*(3+p.rng.Intn(3)), m), true
		}
		if canCall {
			return engine.Call, 0, true
		}
		if canCheck {
			return engine.Check, 0, true
		}

	case 2: // strong: raise often
		if canRaise && r < 0.6+0.3*p.prof.Aggression {
			return engine.Raise, clampRaise(bb*(2+p.rng.Intn(3)), m), true
		}
		if canCall {
			return engine.Call, 0, true
		}
		if canCheck {
			return engine.Check, 0, true
		}

	case 1: // playable: mostly call, rare raise
		if canRaise && r < 0.2*p.prof.Aggression {
			return engine.Raise, clampRaise(bb*2, m), true
		}
		if canCheck {
			return engine.Check, 0, true
		}
		if canCall && r < 0.7+0.3*p.prof.CallLooseness {
			return engine.Call, 0, true
		}
		if canFold {
			return engine.Fold, 0, true
		}

	default: // weak: fold, with the occasional bluff or loose call
		if canRaise && r < p.prof.BluffFrequency {
			return engine.Raise, clampRaise(bb*3, m), true
		}
		if canCheck {
			return engine.Check, 0, true
		}
		if canCall && r < 0.5*p.prof.CallLooseness {
			return engine.Call, 0, true
		}
		if canFold {
			return engine.Fold, 0, true
		}
	}
	return "", 0, false
}
