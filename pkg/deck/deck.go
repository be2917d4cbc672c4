package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"

	"holdem-server/internal/rng"
)

// ErrDeckExhausted is an error when Draw() is attempted and there are no more cards
var ErrDeckExhausted = errors.New("deck exhausted")

// Size is the number of cards in a standard deck
const Size = 52

// MaxPlayers is the largest table a single deck can deal to, hole cards plus a full board
const MaxPlayers = (Size - 5) / 2

// CardsNeeded returns how many cards a hand of Hold'em needs for the given number of players
func CardsNeeded(players int) int {
	return 2*players + 5
}

// Deck represents a playing deck
type Deck struct {
	Cards []Card `json:"cards"`
	rng   rng.Generator
}

// New returns a new deck of cards in canonical order.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func New() *Deck {
	d := &Deck{
		rng: rng.Default(),
	}

	d.buildDeck()
	return d
}

// NewShuffled returns a deck shuffled with the provided generator
func NewShuffled(gen rng.Generator) *Deck {
	d := New()
	if gen != nil {
		d.rng = gen
	}

	d.Shuffle()
	return d
}

// SetGenerator replaces the random source used by Shuffle()
// This should only be used by tests.
func (d *Deck) SetGenerator(gen rng.Generator) {
	d.rng = gen
}

func (d *Deck) buildDeck() {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := Ace; rank >= 2; rank-- {
			cards = append(cards, Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	d.Cards = cards
}

// Shuffle will shuffle a full deck of cards
func (d *Deck) Shuffle() {
	// we always want to shuffle from a complete deck
	d.buildDeck()

	for j := len(d.Cards) - 1; j > 0; j-- {
		i := d.rng.Intn(j + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// HashCode returns a SHA1 hash code of the deck.
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil)[:])
}

// Draw will remove and return the card at the end of the deck
// If there are no more cards, an ErrDeckExhausted is returned.
func (d *Deck) Draw() (Card, error) {
	n := len(d.Cards)
	if n == 0 {
		return Card{}, ErrDeckExhausted
	}

	card := d.Cards[n-1]
	d.Cards = d.Cards[:n-1]

	return card, nil
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}
