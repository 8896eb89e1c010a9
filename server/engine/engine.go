package engine

import (
	"fmt"
	"math/rand"
	"time"
)

type seat struct {
	Chips    int
	RoundBet int // committed this betting round
	HandBet  int // committed this hand, for pot layering
	Hole     []Card
	State    SeatState
}

// Table is a no-limit hold'em table for 2..8 seats. It owns the deck,
// betting legality, the phase machine and settlement; it knows nothing
// about which seats are humans.
type Table struct {
	cfg   Config
	rng   *rand.Rand
	seats []*seat

	deck  []Card
	board []Card
	phase Phase

	btn, sbPos, bbPos int
	toAct             int
	curBet            int // highest round commitment this betting round
	minDelta          int // minimum raise increment
	acted             []bool

	running    bool
	settlement []PotResult
}

// New builds a table with every seat at cfg.BuyIn chips. A nil rng gets a
// time-seeded one.
func New(cfg Config, rng *rand.Rand) (*Table, error) {
	if cfg.Seats < 2 || cfg.Seats > 8 {
		return nil, fmt.Errorf("seats must be 2..8, got %d", cfg.Seats)
	}
	if cfg.SB <= 0 || cfg.BB < cfg.SB || cfg.BuyIn < cfg.BB {
		return nil, fmt.Errorf("bad stakes sb=%d bb=%d buyin=%d", cfg.SB, cfg.BB, cfg.BuyIn)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	t := &Table{
		cfg:   cfg,
		rng:   rng,
		phase: Prehand,
		btn:   -1,
		toAct: -1,
		acted: make([]bool, cfg.Seats),
	}
	for i := 0; i < cfg.Seats; i++ {
		t.seats = append(t.seats, &seat{Chips: cfg.BuyIn, State: In})
	}
	return t, nil
}

func (t *Table) Config() Config              { return t.cfg }
func (t *Table) SeatCount() int              { return len(t.seats) }
func (t *Table) Phase() Phase                { return t.phase }
func (t *Table) HandRunning() bool           { return t.running }
func (t *Table) Button() int                 { return t.btn }
func (t *Table) SmallBlindPos() int          { return t.sbPos }
func (t *Table) BigBlindPos() int            { return t.bbPos }
func (t *Table) Blinds() (int, int)          { return t.cfg.SB, t.cfg.BB }
func (t *Table) Chips(pos int) int           { return t.seats[pos].Chips }
func (t *Table) State(pos int) SeatState     { return t.seats[pos].State }

// CurrentActor is -1 when no hand is running.
func (t *Table) CurrentActor() int {
	if !t.running {
		return -1
	}
	return t.toAct
}

func (t *Table) Board() []Card {
	return append([]Card(nil), t.board...)
}

func (t *Table) Hole(pos int) ([]Card, error) {
	if pos < 0 || pos >= len(t.seats) {
		return nil, fmt.Errorf("no seat %d", pos)
	}
	if len(t.seats[pos].Hole) == 0 {
		return nil, fmt.Errorf("seat %d has no hand", pos)
	}
	return append([]Card(nil), t.seats[pos].Hole...), nil
}

// Pots reports the live pot while a hand runs (a single running total) and
// the settled main/side pots afterwards.
func (t *Table) Pots() []Pot {
	if t.phase == Settle && t.settlement != nil {
		out := make([]Pot, len(t.settlement))
		for i, pr := range t.settlement {
			out[i] = Pot{Amount: pr.Amount, Eligible: append([]int(nil), pr.Winners...)}
		}
		return out
	}
	total := 0
	for _, s := range t.seats {
		total += s.HandBet
	}
	if total == 0 {
		return nil
	}
	return []Pot{{Amount: total}}
}

// Settlement is valid after a hand concludes; pots are ordered main first.
func (t *Table) Settlement() []PotResult {
	return append([]PotResult(nil), t.settlement...)
}

// StartHand deals a fresh hand: rotates the button, posts blinds, deals
// hole cards and opens preflop betting.
func (t *Table) StartHand() error {
	if t.running {
		return fmt.Errorf("hand already running")
	}
	funded := 0
	for _, s := range t.seats {
		if s.Chips > 0 {
			funded++
		}
	}
	if funded < 2 {
		return fmt.Errorf("need at least 2 funded seats, have %d", funded)
	}

	for _, s := range t.seats {
		s.RoundBet, s.HandBet = 0, 0
		s.Hole = nil
		if s.Chips > 0 {
			s.State = In
		} else {
			s.State = Out
		}
	}
	t.board = nil
	t.settlement = nil
	t.deck = newDeck(t.rng)
	for i := range t.acted {
		t.acted[i] = false
	}

	t.btn = t.nextFunded(t.btn)
	if funded == 2 {
		// heads-up: button posts the small blind
		t.sbPos = t.btn
		t.bbPos = t.nextFunded(t.sbPos)
	} else {
		t.sbPos = t.nextFunded(t.btn)
		t.bbPos = t.nextFunded(t.sbPos)
	}

	t.curBet = 0
	t.minDelta = t.cfg.BB
	t.bet(t.sbPos, t.cfg.SB)
	t.bet(t.bbPos, t.cfg.BB)

	for _, s := range t.seats {
		if s.State != Out {
			s.Hole = []Card{t.pop(), t.pop()}
		}
	}

	t.phase = Preflop
	t.running = true
	t.continueFrom(t.bbPos)
	return nil
}

// AvailableMoves reports the legal actions for the current actor.
func (t *Table) AvailableMoves() Moves {
	if !t.running {
		return Moves{}
	}
	a := t.seats[t.toAct]
	var m Moves
	m.Kinds = append(m.Kinds, Fold)
	toCall := t.curBet - a.RoundBet
	if toCall <= 0 {
		m.Kinds = append(m.Kinds, Check)
	} else {
		m.Kinds = append(m.Kinds, Call)
	}
	minTotal := t.curBet + t.minDelta
	maxTotal := a.RoundBet + a.Chips
	if a.Chips > toCall && maxTotal >= minTotal {
		m.Kinds = append(m.Kinds, Raise)
		m.RaiseMin = minTotal
		m.RaiseMax = maxTotal + 1
	}
	if a.Chips > 0 {
		m.Kinds = append(m.Kinds, AllIn)
	}
	return m
}

// TakeAction applies one action for the current actor. total is the
// raise-to amount for the betting round and is ignored for other kinds.
// An illegal action returns an error and changes nothing.
func (t *Table) TakeAction(kind ActionKind, total int) error {
	if !t.running {
		return fmt.Errorf("no hand running")
	}
	moves := t.AvailableMoves()
	if !moves.Has(kind) {
		return fmt.Errorf("%s not legal here", kind)
	}
	pos := t.toAct
	a := t.seats[pos]
	prevBet := t.curBet

	switch kind {
	case Fold:
		a.State = Folded
	case Check:
		// nothing to pay
	case Call:
		t.bet(pos, t.curBet-a.RoundBet)
	case Raise:
		if total < moves.RaiseMin || total >= moves.RaiseMax {
			return fmt.Errorf("raise to %d outside [%d,%d)", total, moves.RaiseMin, moves.RaiseMax)
		}
		t.bet(pos, total-a.RoundBet)
		t.minDelta = total - prevBet
	case AllIn:
		t.bet(pos, a.Chips)
		if a.RoundBet > prevBet && a.RoundBet-prevBet >= t.minDelta {
			t.minDelta = a.RoundBet - prevBet
		}
	}
	t.acted[pos] = true
	if t.curBet > prevBet {
		// a raise reopens action for everyone still in
		for i, s := range t.seats {
			if i != pos && s.State == In {
				t.acted[i] = false
			}
		}
	}
	t.continueFrom(pos)
	return nil
}

// continueFrom advances the hand after an action (or after the blinds):
// picks the next actor, deals the next street when the round closes, runs
// the board out when nobody can act, and settles when the hand is over.
func (t *Table) continueFrom(prev int) {
	if t.contenders() <= 1 {
		t.finish()
		return
	}
	if !t.roundDone() {
		t.toAct = t.nextIn(prev)
		return
	}
	for t.phase != River {
		t.dealNext()
		if !t.roundDone() {
			t.toAct = t.nextIn(t.btn)
			return
		}
	}
	t.finish()
}

func (t *Table) roundDone() bool {
	var actors []int
	for i, s := range t.seats {
		if s.State == In {
			actors = append(actors, i)
		}
	}
	if len(actors) == 0 {
		return true
	}
	if len(actors) == 1 {
		// lone live seat against all-ins: only owes a decision facing a bet
		return t.seats[actors[0]].RoundBet >= t.curBet
	}
	for _, i := range actors {
		if !t.acted[i] || t.seats[i].RoundBet != t.curBet {
			return false
		}
	}
	return true
}

func (t *Table) dealNext() {
	switch t.phase {
	case Preflop:
		t.board = append(t.board, t.pop(), t.pop(), t.pop())
		t.phase = Flop
	case Flop:
		t.board = append(t.board, t.pop())
		t.phase = Turn
	case Turn:
		t.board = append(t.board, t.pop())
		t.phase = River
	}
	t.curBet = 0
	t.minDelta = t.cfg.BB
	for i, s := range t.seats {
		s.RoundBet = 0
		t.acted[i] = false
	}
}

func (t *Table) finish() {
	t.settlement = t.settle()
	t.phase = Settle
	t.running = false
	t.toAct = -1
}

// contenders are seats still able to win the pot.
func (t *Table) contenders() int {
	n := 0
	for _, s := range t.seats {
		if s.State == In || s.State == SeatAllIn {
			n++
		}
	}
	return n
}

func (t *Table) bet(pos, amt int) {
	s := t.seats[pos]
	if amt < 0 {
		amt = 0
	}
	if amt >= s.Chips {
		amt = s.Chips
		s.State = SeatAllIn
	}
	s.Chips -= amt
	s.RoundBet += amt
	s.HandBet += amt
	if s.RoundBet > t.curBet {
		t.curBet = s.RoundBet
	}
}

func (t *Table) pop() Card {
	c := t.deck[0]
	t.deck = t.deck[1:]
	return c
}

// nextFunded finds the next seat with chips, for button/blind rotation.
func (t *Table) nextFunded(from int) int {
	for i := 1; i <= len(t.seats); i++ {
		p := (from + i) % len(t.seats)
		if t.seats[p].Chips > 0 || t.seats[p].HandBet > 0 {
			return p
		}
	}
	return from
}

// nextIn finds the next seat still free to act.
func (t *Table) nextIn(from int) int {
	for i := 1; i <= len(t.seats); i++ {
		p := (from + i) % len(t.seats)
		if t.seats[p].State == In {
			return p
		}
	}
	return from
}
