package engine

// Phase is a betting-round stage of a hand.
type Phase string

const (
	Prehand Phase = "prehand"
	Preflop Phase = "preflop"
	Flop    Phase = "flop"
	Turn    Phase = "turn"
	River   Phase = "river"
	Settle  Phase = "settle"
)

type ActionKind string

const (
	Fold  ActionKind = "fold"
	Check ActionKind = "check"
	Call  ActionKind = "call"
	Raise ActionKind = "raise"
	AllIn ActionKind = "all_in"
)

// SeatState tracks a seat within and between hands. Out means busted;
// such seats are skipped when dealing.
type SeatState string

const (
	In        SeatState = "in"
	Folded    SeatState = "folded"
	SeatAllIn SeatState = "all_in"
	Out       SeatState = "out"
)

type Card struct {
	Rank int  // 2..14, Ace high
	Suit byte // one of c d h s
}

// Moves describes the actions legal for the current actor. RaiseMin and
// RaiseMax bound the legal raise-to total for the round, max exclusive.
// Both are zero when Raise is not legal.
type Moves struct {
	Kinds    []ActionKind
	RaiseMin int
	RaiseMax int
}

func (m Moves) Has(k ActionKind) bool {
	for _, kk := range m.Kinds {
		if kk == k {
			return true
		}
	}
	return false
}

// Pot is a main or side pot. Eligible lists seats that can win it.
type Pot struct {
	Amount   int
	Eligible []int
}

// PotResult records one settled pot: its size, the winning hand's score
// (0 for an uncontested pot) and the seats that split it.
type PotResult struct {
	Amount  int
	Rank    int
	Winners []int
}

type Config struct {
	SB    int
	BB    int
	BuyIn int
	Seats int
}
