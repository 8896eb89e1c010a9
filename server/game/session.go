package game

import (
	"fmt"
	"sync"

	"holdem-room/server/ai"
	"holdem-room/server/engine"
)

// Seat is the session's roster entry for one table position. Chips mirror
// engine truth and are refreshed on settlement; UserID is a lookup key for
// human seats, empty for AI.
type Seat struct {
	Position int
	Chips    int
	IsAI     bool
	UserID   string
	Name     string
	Active   bool
}

// LastAction records the most recent applied action for display.
type LastAction struct {
	Position int    `json:"player"`
	Kind     string `json:"action"`
	Name     string `json:"action_name"`
}

// Session drives one table: it owns its rules engine exclusively, tracks
// turn and phase state across client polls, and steps AI seats. All
// exported methods serialize on an internal mutex.
type Session struct {
	ID string

	mu       sync.Mutex
	rules    Rules
	seats    []Seat
	human    map[int]bool // fixed at creation
	policies map[int]*ai.Policy

	handNumber      int
	lastPhase       engine.Phase
	roundStartChips []int // per-seat chips at the start of the betting round
	handStartChips  []int // per-seat chips at the start of the hand
	handOver        bool
	gameOver        bool
	lastAction      *LastAction
	pendingAI       bool
	winner          *WinnerInfo
}

func newSession(id string, rules Rules, seats []Seat, policies map[int]*ai.Policy) *Session {
	human := map[int]bool{}
	for _, st := range seats {
		if !st.IsAI {
			human[st.Position] = true
		}
	}
	n := rules.SeatCount()
	return &Session{
		ID:              id,
		rules:           rules,
		seats:           seats,
		human:           human,
		policies:        policies,
		roundStartChips: make([]int, n),
		handStartChips:  make([]int, n),
	}
}

// begin deals the first hand. Called once, by the registry.
func (s *Session) begin() error {
	if err := s.rules.StartHand(); err != nil {
		return err
	}
	s.handNumber = 1
	s.reseed()
	return nil
}

// SeatOf finds the position a user occupies.
func (s *Session) SeatOf(userID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.seats {
		if !st.IsAI && st.UserID == userID {
			return st.Position, true
		}
	}
	return -1, false
}

// Seats returns a copy of the roster with live chip counts.
func (s *Session) Seats() []Seat {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Seat, len(s.seats))
	copy(out, s.seats)
	for i := range out {
		out[i].Chips = s.rules.Chips(out[i].Position)
	}
	return out
}

func (s *Session) HandNumber() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handNumber
}

// State projects the current snapshot for a viewer position (-1 for none).
func (s *Session) State(viewer int) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(viewer)
}

// ApplyAction validates and applies a client action for the seat at pos.
// Rejections leave the session untouched.
func (s *Session) ApplyAction(pos int, req ActionRequest) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gameOver {
		return nil, ErrGameOver
	}
	if s.handOver || !s.rules.HandRunning() {
		return nil, ErrHandOver
	}
	if s.rules.CurrentActor() != pos {
		return nil, ErrNotYourTurn
	}
	s.syncRound()

	moves := s.rules.AvailableMoves()
	kind, total, err := Translate(req, moves, potTotal(s.rules))
	if err != nil {
		return nil, err
	}
	name := ActionName(req.Code)
	if kind == engine.Raise {
		name = fmt.Sprintf("Raise to %d", total)
	}
	if err := s.rules.TakeAction(kind, total); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineRejected, err)
	}
	s.lastAction = &LastAction{Position: pos, Kind: string(kind), Name: name}
	s.afterAction()
	return s.snapshotLocked(pos), nil
}

// StepAI advances the hand by one AI decision. A no-op (current snapshot)
// when the actor is human or no hand is running.
func (s *Session) StepAI(viewer int) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	actor := s.rules.CurrentActor()
	if s.handOver || !s.rules.HandRunning() || actor < 0 || s.human[actor] {
		s.pendingAI = false
		return s.snapshotLocked(viewer), nil
	}
	s.syncRound()

	pol := s.policies[actor]
	if pol == nil {
		pol = ai.New("medium", ai.ProfileFor("medium"), nil)
	}
	kind, total := pol.Decide(s.rules, actor)
	if err := s.rules.TakeAction(kind, total); err != nil {
		// The policy only emits legal moves, so this is an engine-level
		// surprise; surface it rather than forcing a fold.
		return nil, fmt.Errorf("%w: %v", ErrEngineRejected, err)
	}
	s.lastAction = &LastAction{Position: actor, Kind: string(kind), Name: kindName(kind, total)}
	s.afterAction()
	return s.snapshotLocked(viewer), nil
}

// NewHand deals the next hand. Fails once the game is over.
func (s *Session) NewHand(viewer int) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gameOver {
		return nil, ErrGameOver
	}
	if err := s.rules.StartHand(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineRejected, err)
	}
	s.handNumber++
	s.handOver = false
	s.winner = nil
	s.lastAction = nil
	s.reseed()
	return s.snapshotLocked(viewer), nil
}

func (s *Session) afterAction() {
	if !s.rules.HandRunning() {
		s.finishHand()
		return
	}
	s.pendingAI = !s.human[s.rules.CurrentActor()]
}

// syncRound re-baselines per-seat chips whenever the engine's phase has
// moved on. Must run before any current-round bet is derived; stale
// baselines after a phase change yield wrong bet figures.
func (s *Session) syncRound() {
	phase := s.rules.Phase()
	if phase == s.lastPhase {
		return
	}
	s.lastPhase = phase
	for i := range s.roundStartChips {
		s.roundStartChips[i] = s.rules.Chips(i)
	}
}

// reseed resets all per-hand tracking from engine state.
func (s *Session) reseed() {
	s.lastPhase = s.rules.Phase()
	for i := range s.roundStartChips {
		s.roundStartChips[i] = s.rules.Chips(i)
		s.handStartChips[i] = s.rules.Chips(i)
	}
	actor := s.rules.CurrentActor()
	s.pendingAI = s.rules.HandRunning() && actor >= 0 && !s.human[actor]
}

func kindName(kind engine.ActionKind, total int) string {
	switch kind {
	case engine.Fold:
		return "Fold"
	case engine.Check:
		return "Check"
	case engine.Call:
		return "Call"
	case engine.Raise:
		return fmt.Sprintf("Raise to %d", total)
	case engine.AllIn:
		return "All-in"
	}
	return string(kind)
}

func potTotal(r Rules) int {
	total := 0
	for _, p := range r.Pots() {
		total += p.Amount
	}
	return total
}
