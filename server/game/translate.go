package game

import (
	"fmt"

	"holdem-room/server/engine"
)

// The discrete action vocabulary clients speak.
const (
	CodeFold        = 0
	CodeCheckCall   = 1
	CodeRaiseHalf   = 2
	CodeRaisePot    = 3
	CodeAllIn       = 4
	CodeCustomRaise = 5
)

// ActionRequest is a client action: one of the 6 codes, plus a raise-to
// amount that only matters for CodeCustomRaise.
type ActionRequest struct {
	Code   int  `json:"action"`
	Amount *int `json:"amount,omitempty"`
}

var actionNames = map[int]string{
	CodeFold:        "Fold",
	CodeCheckCall:   "Call/Check",
	CodeRaiseHalf:   "Raise 1/2 pot",
	CodeRaisePot:    "Raise pot",
	CodeAllIn:       "All-in",
	CodeCustomRaise: "Custom raise",
}

// ActionName is the display label for a code.
func ActionName(code int) string {
	if n, ok := actionNames[code]; ok {
		return n
	}
	return fmt.Sprintf("Action %d", code)
}

func clamp(want, min, maxExcl int) int {
	if want > maxExcl-1 {
		want = maxExcl - 1
	}
	if want < min {
		want = min
	}
	return want
}

// Translate maps an action code to an engine action and raise-to total
// given the currently legal moves and pot size. When the mapped action is
// illegal, one substitution is tried: RAISE degrades to ALL_IN, CALL
// degrades to CHECK. Anything still illegal is ErrInvalidAction.
func Translate(req ActionRequest, m engine.Moves, pot int) (engine.ActionKind, int, error) {
	var kind engine.ActionKind
	var total int

	switch req.Code {
	case CodeFold:
		kind = engine.Fold
	case CodeCheckCall:
		if m.Has(engine.Check) {
			kind = engine.Check
		} else {
			kind = engine.Call
		}
	case CodeRaiseHalf:
		kind = engine.Raise
		total = clamp(pot/2, m.RaiseMin, m.RaiseMax)
	case CodeRaisePot:
		kind = engine.Raise
		total = clamp(pot, m.RaiseMin, m.RaiseMax)
	case CodeAllIn:
		kind = engine.AllIn
	case CodeCustomRaise:
		kind = engine.Raise
		if req.Amount != nil {
			total = clamp(*req.Amount, m.RaiseMin, m.RaiseMax)
		} else {
			total = clamp(pot/2, m.RaiseMin, m.RaiseMax)
		}
	default:
		return "", 0, fmt.Errorf("%w: unknown code %d", ErrInvalidAction, req.Code)
	}

	if !m.Has(kind) {
		switch {
		case kind == engine.Raise && m.Has(engine.AllIn):
			kind, total = engine.AllIn, 0
		case kind == engine.Call && m.Has(engine.Check):
			kind, total = engine.Check, 0
		default:
			return "", 0, fmt.Errorf("%w: %s not available", ErrInvalidAction, kind)
		}
	}
	return kind, total, nil
}
