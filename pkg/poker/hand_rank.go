package poker

import "fmt"

// HandRank is the comparable value of a player's best five-card hand
// Tiebreakers are rank values, most significant first. They only carry meaning within a Category.
type HandRank struct {
	Category    Category
	Tiebreakers []int
}

// Compare returns 1 if h beats other, -1 if other beats h, and 0 on an exact tie
func (h HandRank) Compare(other HandRank) int {
	if h.Category != other.Category {
		if h.Category > other.Category {
			return 1
		}

		return -1
	}

	n := len(h.Tiebreakers)
	if len(other.Tiebreakers) < n {
		n = len(other.Tiebreakers)
	}

	for i := 0; i < n; i++ {
		if h.Tiebreakers[i] > other.Tiebreakers[i] {
			return 1
		} else if h.Tiebreakers[i] < other.Tiebreakers[i] {
			return -1
		}
	}

	return 0
}

// Beats returns true if h is strictly better than other
func (h HandRank) Beats(other HandRank) bool {
	return h.Compare(other) > 0
}

// Ties returns true if neither hand is better
func (h HandRank) Ties(other HandRank) bool {
	return h.Compare(other) == 0
}

// String returns the category name
func (h HandRank) String() string {
	return h.Category.String()
}

// GoString is useful when a test fails
func (h HandRank) GoString() string {
	return fmt.Sprintf("%s%v", h.Category, h.Tiebreakers)
}
