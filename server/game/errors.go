package game

import "errors"

// Every error here is recoverable at the call site; a rejected operation
// never leaves a session partially mutated.
var (
	ErrNotFound       = errors.New("game not found")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrInvalidAction  = errors.New("invalid action")
	ErrHandOver       = errors.New("hand is over")
	ErrGameOver       = errors.New("game is over")
	ErrEngineRejected = errors.New("engine rejected action")
)
