package engine

import (
	"fmt"

	poker "github.com/paulhankin/poker"
)

// Convert our engine.Card -> library card.
func toPH(c Card) poker.Card {
	var s poker.Suit
	switch c.Suit {
	case 'c':
		s = poker.Club
	case 'd':
		s = poker.Diamond
	case 'h':
		s = poker.Heart
	case 's':
		s = poker.Spade
	default:
		s = poker.Club
	}
	// Our ranks: 2..14 (Ace=14). Library: 1..13 (Ace=1).
	var r poker.Rank
	if c.Rank == 14 {
		r = poker.Rank(1)
	} else {
		r = poker.Rank(c.Rank)
	}
	card, _ := poker.MakeCard(s, r)
	return card
}

// scoreOf ranks a 5, 6 or 7 card hand. Larger score = stronger hand.
func scoreOf(cards []Card) int {
	n := len(cards)
	pcs := make([]poker.Card, n)
	for i, c := range cards {
		pcs[i] = toPH(c)
	}
	switch n {
	case 7:
		var a7 [7]poker.Card
		copy(a7[:], pcs)
		return int(poker.Eval7(&a7))
	case 5:
		var a5 [5]poker.Card
		copy(a5[:], pcs)
		return int(poker.Eval5(&a5))
	default:
		return bestOfFiveSubsets(pcs)
	}
}

func bestOfFiveSubsets(pcs []poker.Card) int {
	n := len(pcs)
	if n < 5 {
		var a5 [5]poker.Card
		copy(a5[:n], pcs)
		return int(poker.Eval5(&a5)) // shouldn't happen in normal flow
	}
	best := -1
	choose := [5]int{}
	var five [5]poker.Card
	var rec func(start, k int)
	rec = func(start, k int) {
		if k == 5 {
			for i := 0; i < 5; i++ {
				five[i] = pcs[choose[i]]
			}
			if score := int(poker.Eval5(&five)); score > best {
				best = score
			}
			return
		}
		for i := start; i <= n-(5-k); i++ {
			choose[k] = i
			rec(i+1, k+1)
		}
	}
	rec(0, 0)
	return best
}

// Percentile reports the fraction of possible opponent hole-card pairs the
// given seat currently beats on this board (ties count half), by exact
// enumeration of the remaining deck. Needs at least a flop.
func (t *Table) Percentile(pos int) (float64, error) {
	if pos < 0 || pos >= len(t.seats) || len(t.seats[pos].Hole) != 2 {
		return 0, fmt.Errorf("seat %d has no hand", pos)
	}
	if len(t.board) < 3 {
		return 0, fmt.Errorf("board too short for evaluation")
	}
	hole := t.seats[pos].Hole
	hero := scoreOf(append(append([]Card{}, hole...), t.board...))

	used := map[Card]bool{}
	for _, c := range t.board {
		used[c] = true
	}
	used[hole[0]], used[hole[1]] = true, true
	var avail []Card
	for s := 0; s < 4; s++ {
		for rnk := 2; rnk <= 14; rnk++ {
			c := Card{Rank: rnk, Suit: "cdhs"[s]}
			if !used[c] {
				avail = append(avail, c)
			}
		}
	}

	var win, tie, total int
	for i := 0; i < len(avail); i++ {
		for j := i + 1; j < len(avail); j++ {
			total++
			v := scoreOf(append([]Card{avail[i], avail[j]}, t.board...))
			if hero > v {
				win++
			} else if hero == v {
				tie++
			}
		}
	}
	if total == 0 {
		return 0, fmt.Errorf("no cards left to enumerate")
	}
	return (float64(win) + 0.5*float64(tie)) / float64(total), nil
}
