package poker

import "holdem-server/pkg/deck"

// rankSet records which ranks are present. Index 1 mirrors the ace so it can play low.
type rankSet [deck.Ace + 1]bool

func (r *rankSet) add(rank int) {
	r[rank] = true
	if rank == deck.HighAce {
		r[deck.LowAce] = true
	}
}

// straightHigh returns the high card of the best run of five consecutive ranks
// A wheel (A-2-3-4-5) is reported with a high card of 5. Returns 0 if there isn't a straight.
func (r *rankSet) straightHigh() int {
	streak := 0
	for rank := deck.HighAce; rank >= deck.LowAce; rank-- {
		if !r[rank] {
			streak = 0
			continue
		}

		streak++
		if streak == 5 {
			return rank + 4
		}
	}

	return 0
}
