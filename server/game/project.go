package game

import (
	"strings"

	"holdem-room/server/engine"
)

// SeatView is the public-facing data for one seat. Hand is the masked
// placeholder unless the viewer owns the seat or the hand is over.
type SeatView struct {
	Position   int    `json:"position"`
	Name       string `json:"name"`
	Chips      int    `json:"chips"`
	IsAI       bool   `json:"is_ai"`
	IsActive   bool   `json:"is_active"`
	Hand       string `json:"hand"`
	CurrentBet int    `json:"current_bet"`
}

// Snapshot is the viewer-scoped projection of a session, the exact shape
// the web layer returns.
type Snapshot struct {
	GameID          string      `json:"game_id"`
	Status          string      `json:"status"`
	CurrentPlayer   int         `json:"current_player"`
	MyPosition      *int        `json:"my_position"`
	Players         []SeatView  `json:"players"`
	PublicCards     string      `json:"public_cards"`
	Pot             int         `json:"pot"`
	LegalActions    []int       `json:"legal_actions"`
	ActionNames     []string    `json:"action_names"`
	IsHandOver      bool        `json:"is_hand_over"`
	IsGameOver      bool        `json:"is_game_over"`
	Round           string      `json:"round"`
	HandNumber      int         `json:"hand_number"`
	DealerPosition  int         `json:"dealer_position"`
	SBPosition      int         `json:"sb_position"`
	BBPosition      int         `json:"bb_position"`
	SmallBlind      int         `json:"small_blind"`
	BigBlind        int         `json:"big_blind"`
	LastAction      *LastAction `json:"last_action"`
	PendingAIAction bool        `json:"pending_ai_action"`
	WinnerInfo      *WinnerInfo `json:"winner_info"`
	MinRaise        int         `json:"min_raise"`
	MaxRaise        int         `json:"max_raise"`
	CallAmount      int         `json:"call_amount"`
}

var phaseNames = map[engine.Phase]string{
	engine.Prehand: "Waiting",
	engine.Preflop: "Pre-Flop",
	engine.Flop:    "Flop",
	engine.Turn:    "Turn",
	engine.River:   "River",
	engine.Settle:  "Settling",
}

// snapshotLocked builds the projection; the caller holds s.mu.
func (s *Session) snapshotLocked(viewer int) *Snapshot {
	s.syncRound()
	sb, bb := s.rules.Blinds()

	snap := &Snapshot{
		GameID:          s.ID,
		CurrentPlayer:   s.rules.CurrentActor(),
		IsHandOver:      s.handOver,
		IsGameOver:      s.gameOver,
		HandNumber:      s.handNumber,
		DealerPosition:  s.rules.Button(),
		SBPosition:      s.rules.SmallBlindPos(),
		BBPosition:      s.rules.BigBlindPos(),
		SmallBlind:      sb,
		BigBlind:        bb,
		LastAction:      s.lastAction,
		PendingAIAction: s.pendingAI,
		Round:           phaseNames[s.rules.Phase()],
		PublicCards:     strings.Join(engine.CardStrings(s.rules.Board()), " "),
		Pot:             potTotal(s.rules),
	}

	switch {
	case s.gameOver:
		snap.Status = "game_over"
	case s.handOver:
		snap.Status = "hand_over"
	default:
		snap.Status = "playing"
	}

	if viewer >= 0 && viewer < len(s.seats) {
		v := viewer
		snap.MyPosition = &v
	}
	if s.handOver {
		snap.WinnerInfo = s.winner
	}

	for _, st := range s.seats {
		pos := st.Position
		chips := s.rules.Chips(pos)

		// Hands reveal to the owning viewer, and to everyone once the
		// hand concludes.
		hand := "??"
		if s.handOver || pos == viewer {
			if hole, err := s.rules.Hole(pos); err == nil {
				hand = strings.Join(engine.CardStrings(hole), " ")
			} else {
				hand = ""
			}
		}

		bet := s.roundStartChips[pos] - chips
		if bet < 0 {
			bet = 0
		}

		state := s.rules.State(pos)
		active := st.Active && state != engine.Out

		snap.Players = append(snap.Players, SeatView{
			Position:   pos,
			Name:       st.Name,
			Chips:      chips,
			IsAI:       st.IsAI,
			IsActive:   active,
			Hand:       hand,
			CurrentBet: bet,
		})
	}

	if !s.handOver && s.rules.HandRunning() {
		moves := s.rules.AvailableMoves()
		if moves.Has(engine.Fold) {
			snap.LegalActions = append(snap.LegalActions, CodeFold)
		}
		if moves.Has(engine.Check) || moves.Has(engine.Call) {
			snap.LegalActions = append(snap.LegalActions, CodeCheckCall)
		}
		if moves.Has(engine.Raise) {
			snap.LegalActions = append(snap.LegalActions, CodeRaiseHalf, CodeRaisePot, CodeCustomRaise)
			snap.MinRaise = moves.RaiseMin
			snap.MaxRaise = moves.RaiseMax - 1
		}
		if moves.Has(engine.AllIn) {
			snap.LegalActions = append(snap.LegalActions, CodeAllIn)
		}
		// Clients display the big blind here, not the true owed amount.
		snap.CallAmount = bb
	}
	for _, code := range snap.LegalActions {
		snap.ActionNames = append(snap.ActionNames, ActionName(code))
	}
	return snap
}
