package engine

import "sort"

// settle carves the committed chips into main/side pots, finds winners and
// pays them. Called exactly once per hand, when the hand ends.
func (t *Table) settle() []PotResult {
	var live []int
	for i, s := range t.seats {
		if s.State == In || s.State == SeatAllIn {
			live = append(live, i)
		}
	}
	if len(live) == 0 {
		return nil
	}

	total := 0
	for _, s := range t.seats {
		total += s.HandBet
	}

	// Pot layers are the distinct hand commitments of the live seats.
	// Folded seats' chips fill the layers they reached; anything a folded
	// seat paid above the top live layer rides along in the last pot.
	levelSet := map[int]bool{}
	for _, i := range live {
		if t.seats[i].HandBet > 0 {
			levelSet[t.seats[i].HandBet] = true
		}
	}
	levels := make([]int, 0, len(levelSet))
	for l := range levelSet {
		levels = append(levels, l)
	}
	sort.Ints(levels)

	var results []PotResult
	paid := 0
	prev := 0
	for _, lvl := range levels {
		amt := 0
		for _, s := range t.seats {
			c := s.HandBet
			if c > lvl {
				c = lvl
			}
			if c > prev {
				amt += c - prev
			}
		}
		var eligible []int
		for _, i := range live {
			if t.seats[i].HandBet >= lvl {
				eligible = append(eligible, i)
			}
		}
		paid += amt
		prev = lvl
		results = append(results, PotResult{Amount: amt, Winners: eligible})
	}
	if len(results) > 0 && total > paid {
		results[len(results)-1].Amount += total - paid
	}

	// Resolve each pot: uncontested pots need no showdown.
	for pi := range results {
		eligible := results[pi].Winners
		if len(eligible) == 1 {
			results[pi].Rank = 0
		} else {
			winners, rank := t.showdown(eligible)
			results[pi].Winners = winners
			results[pi].Rank = rank
		}
		t.payout(&results[pi])
	}
	return results
}

// showdown picks the best hand(s) among the given seats.
func (t *Table) showdown(seats []int) ([]int, int) {
	best := -1
	var winners []int
	for _, i := range seats {
		cards := append(append([]Card{}, t.seats[i].Hole...), t.board...)
		score := scoreOf(cards)
		switch {
		case score > best:
			best = score
			winners = []int{i}
		case score == best:
			winners = append(winners, i)
		}
	}
	return winners, best
}

// payout splits a pot evenly; odd chips go to the earliest position.
func (t *Table) payout(pr *PotResult) {
	if len(pr.Winners) == 0 {
		return
	}
	share := pr.Amount / len(pr.Winners)
	rem := pr.Amount % len(pr.Winners)
	for _, w := range pr.Winners {
		t.seats[w].Chips += share
	}
	t.seats[pr.Winners[0]].Chips += rem
}
