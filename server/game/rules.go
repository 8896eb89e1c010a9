package game

import "holdem-room/server/engine"

// Rules is the contract the orchestration core needs from a rules engine.
// The engine owns deck mechanics, betting legality, pot math and hand
// evaluation; the session only observes and drives it. *engine.Table is
// the in-repo implementation.
type Rules interface {
	StartHand() error
	TakeAction(kind engine.ActionKind, total int) error
	AvailableMoves() engine.Moves
	CurrentActor() int
	Phase() engine.Phase
	SeatCount() int
	Chips(pos int) int
	State(pos int) engine.SeatState
	Board() []engine.Card
	Pots() []engine.Pot
	Hole(pos int) ([]engine.Card, error)
	HandRunning() bool
	Settlement() []engine.PotResult
	Button() int
	SmallBlindPos() int
	BigBlindPos() int
	Blinds() (sb, bb int)
	Percentile(pos int) (float64, error)
}
