package game

import (
	"strings"

	"holdem-room/server/engine"
)

// WinnerInfo summarizes a concluded hand. The headline winner is the first
// winning position of the first pot; side-pot detail is not merged into the
// summary, but Payoffs capture every seat's exact chip delta.
type WinnerInfo struct {
	WinnerPosition int            `json:"winner_position"`
	WinnerName     string         `json:"winner_name"`
	PotWon         int            `json:"pot_won"`
	Payoffs        []int          `json:"payoffs"`
	PlayerHands    map[int]string `json:"player_hands"`
	PublicCards    []string       `json:"public_cards"`
}

// finishHand settles a concluded hand: headline winner, per-seat payoffs
// against hand-start chips, full reveal, elimination and game-over.
func (s *Session) finishHand() {
	info := &WinnerInfo{
		WinnerPosition: -1,
		Payoffs:        make([]int, len(s.seats)),
		PlayerHands:    map[int]string{},
		PublicCards:    engine.CardStrings(s.rules.Board()),
	}

	for _, pr := range s.rules.Settlement() {
		if len(pr.Winners) > 0 {
			info.WinnerPosition = pr.Winners[0]
			info.PotWon = pr.Amount
			info.WinnerName = s.seats[pr.Winners[0]].Name
			break
		}
	}

	for i := range s.seats {
		if hole, err := s.rules.Hole(i); err == nil {
			info.PlayerHands[i] = strings.Join(engine.CardStrings(hole), " ")
		} else {
			info.PlayerHands[i] = ""
		}
		info.Payoffs[i] = s.rules.Chips(i) - s.handStartChips[i]
	}

	for i := range s.seats {
		s.seats[i].Chips = s.rules.Chips(i)
		if s.seats[i].Chips <= 0 {
			s.seats[i].Active = false
			s.gameOver = true
		}
	}

	s.winner = info
	s.handOver = true
	s.pendingAI = false
}
