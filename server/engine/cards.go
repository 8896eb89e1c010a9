package engine

import (
	"fmt"
	"math/rand"
)

func newDeck(r *rand.Rand) []Card {
	deck := make([]Card, 0, 52)
	for s := 0; s < 4; s++ {
		for rnk := 2; rnk <= 14; rnk++ {
			deck = append(deck, Card{Rank: rnk, Suit: "cdhs"[s]})
		}
	}
	for i := len(deck) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
	return deck
}

func (c Card) String() string {
	ranks := "  23456789TJQKA"
	return fmt.Sprintf("%c%c", ranks[c.Rank], c.Suit)
}

// ParseCard reads the two-character form produced by Card.String, e.g. "As".
func ParseCard(s string) (Card, bool) {
	if len(s) < 2 {
		return Card{}, false
	}
	var rank int
	switch s[0] {
	case 'A':
		rank = 14
	case 'K':
		rank = 13
	case 'Q':
		rank = 12
	case 'J':
		rank = 11
	case 'T':
		rank = 10
	default:
		if s[0] >= '2' && s[0] <= '9' {
			rank = int(s[0] - '0')
		}
	}
	if rank == 0 {
		return Card{}, false
	}
	suit := s[1]
	if suit != 'c' && suit != 'd' && suit != 'h' && suit != 's' {
		return Card{}, false
	}
	return Card{Rank: rank, Suit: suit}, true
}

// CardStrings renders a card slice for wire output.
func CardStrings(cs []Card) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return out
}
