package poker

import (
	"errors"
	"fmt"
	"holdem-server/pkg/deck"
)

// HandSize is the number of cards that make up a poker hand
const HandSize = 5

// MaxCards is two hole cards plus a full board
const MaxCards = 7

// errors
var (
	ErrNotEnoughCards = errors.New("at least five cards are required")
	ErrTooManyCards   = errors.New("no more than seven cards can be evaluated")
)

// handAnalyzer tallies the cards once so each category check is a lookup
type handAnalyzer struct {
	// counts is indexed by rank
	counts [deck.Ace + 1]int
	ranks  rankSet
	suits  map[deck.Suit][]int
	// flushSuit is the suit with at least five cards, if any
	flushSuit deck.Suit
}

// Evaluate returns the best HandRank that can be made from the cards
// Usually that's two hole cards plus the board, but any five to seven cards are accepted.
func Evaluate(cards []deck.Card) (HandRank, error) {
	if len(cards) < HandSize {
		return HandRank{}, ErrNotEnoughCards
	}

	if len(cards) > MaxCards {
		return HandRank{}, ErrTooManyCards
	}

	h := &handAnalyzer{
		suits: make(map[deck.Suit][]int),
	}

	seen := make(map[deck.Card]bool, len(cards))
	for _, card := range cards {
		if !card.IsValid() {
			return HandRank{}, fmt.Errorf("invalid card: %#v", card)
		}

		if seen[card] {
			return HandRank{}, fmt.Errorf("duplicate card: %s", card)
		}
		seen[card] = true

		h.counts[card.Rank]++
		h.ranks.add(card.Rank)
		h.suits[card.Suit] = append(h.suits[card.Suit], card.Rank)
	}

	// with seven cards, only one suit can hold five
	for suit, ranks := range h.suits {
		if len(ranks) >= HandSize {
			h.flushSuit = suit
		}
	}

	return h.calculateHand(), nil
}

// MustEvaluate is like Evaluate, but panics on error
// This should only be used by tests.
func MustEvaluate(cards []deck.Card) HandRank {
	r, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}

	return r
}

// calculateHand walks the categories from best to worst, first match wins
func (h *handAnalyzer) calculateHand() HandRank {
	if high, ok := h.getStraightFlush(); ok {
		if high == deck.Ace {
			return HandRank{Category: RoyalFlush, Tiebreakers: []int{high}}
		}

		return HandRank{Category: StraightFlush, Tiebreakers: []int{high}}
	}

	if quads, ok := h.rankWithCount(4); ok {
		return HandRank{Category: FourOfAKind, Tiebreakers: append([]int{quads}, h.kickers(1, quads)...)}
	}

	if trips, pair, ok := h.getFullHouse(); ok {
		return HandRank{Category: FullHouse, Tiebreakers: []int{trips, pair}}
	}

	if h.flushSuit != "" {
		return HandRank{Category: Flush, Tiebreakers: topRanks(h.suits[h.flushSuit], HandSize)}
	}

	if high := h.ranks.straightHigh(); high > 0 {
		return HandRank{Category: Straight, Tiebreakers: []int{high}}
	}

	if trips, ok := h.rankWithCount(3); ok {
		return HandRank{Category: ThreeOfAKind, Tiebreakers: append([]int{trips}, h.kickers(2, trips)...)}
	}

	if high, ok := h.rankWithCount(2); ok {
		if low, ok := h.rankWithCount(2, high); ok {
			return HandRank{Category: TwoPair, Tiebreakers: append([]int{high, low}, h.kickers(1, high, low)...)}
		}

		return HandRank{Category: OnePair, Tiebreakers: append([]int{high}, h.kickers(3, high)...)}
	}

	return HandRank{Category: HighCard, Tiebreakers: h.kickers(HandSize)}
}

func (h *handAnalyzer) getStraightFlush() (int, bool) {
	if h.flushSuit == "" {
		return 0, false
	}

	var flushRanks rankSet
	for _, rank := range h.suits[h.flushSuit] {
		flushRanks.add(rank)
	}

	if high := flushRanks.straightHigh(); high > 0 {
		return high, true
	}

	return 0, false
}

func (h *handAnalyzer) getFullHouse() (int, int, bool) {
	trips, ok := h.rankWithCount(3)
	if !ok {
		return 0, 0, false
	}

	// a second set of trips plays as the pair
	pair, ok := h.rankWithCount(2, trips)
	if !ok {
		return 0, 0, false
	}

	return trips, pair, true
}

// rankWithCount returns the highest rank that appears at least n times, ignoring any excluded ranks
func (h *handAnalyzer) rankWithCount(n int, exclude ...int) (int, bool) {
	for rank := deck.Ace; rank >= 2; rank-- {
		if h.counts[rank] >= n && !contains(exclude, rank) {
			return rank, true
		}
	}

	return 0, false
}

// kickers returns up to n of the highest single cards whose rank is not excluded
// Every card of an excluded rank is skipped, so a quad's kicker never comes from the quad.
func (h *handAnalyzer) kickers(n int, exclude ...int) []int {
	kickers := make([]int, 0, n)
	for rank := deck.Ace; rank >= 2 && len(kickers) < n; rank-- {
		if contains(exclude, rank) {
			continue
		}

		for i := 0; i < h.counts[rank] && len(kickers) < n; i++ {
			kickers = append(kickers, rank)
		}
	}

	return kickers
}

// topRanks returns the n highest ranks, descending
func topRanks(ranks []int, n int) []int {
	var present [deck.Ace + 1]bool
	for _, r := range ranks {
		present[r] = true
	}

	top := make([]int, 0, n)
	for rank := deck.Ace; rank >= 2 && len(top) < n; rank-- {
		if present[rank] {
			top = append(top, rank)
		}
	}

	return top
}

func contains(ranks []int, rank int) bool {
	for _, r := range ranks {
		if r == rank {
			return true
		}
	}

	return false
}
