package deck

// Hand represents a collection of cards, i.e., hole cards or the board
type Hand []Card

// AddCard adds a card to the hand
func (h *Hand) AddCard(card Card) {
	*h = append(*h, card)
}

// HasCard returns true if the hand contains the specified card
func (h Hand) HasCard(card Card) bool {
	for _, c := range h {
		if c == card {
			return true
		}
	}

	return false
}

// Names returns the long display name of each card
func (h Hand) Names() []string {
	names := make([]string, len(h))
	for i, c := range h {
		names[i] = c.Name()
	}

	return names
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
