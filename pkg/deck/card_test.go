package deck

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func Test_constants(t *testing.T) {
	assert.Equal(t, 11, Jack)
	assert.Equal(t, 12, Queen)
	assert.Equal(t, 13, King)
	assert.Equal(t, 14, Ace)
	assert.Equal(t, 23, MaxPlayers)
	assert.Equal(t, 52, CardsNeeded(MaxPlayers)+1)
}

func TestCard_String(t *testing.T) {
	assert.Equal(t, "2♡", Card{Rank: 2, Suit: Hearts}.String())
	assert.Equal(t, "J♣", Card{Rank: 11, Suit: Clubs}.String())
	assert.Equal(t, "Q♢", Card{Rank: 12, Suit: Diamonds}.String())
	assert.Equal(t, "K♠", Card{Rank: 13, Suit: Spades}.String())
	assert.Equal(t, "A♠", Card{Rank: 14, Suit: Spades}.String())
}

func TestCard_Name(t *testing.T) {
	assert.Equal(t, "Ace Of Spades", CardFromString("14s").Name())
	assert.Equal(t, "10 Of Hearts", CardFromString("10h").Name())
	assert.Equal(t, "Jack Of Diamonds", CardFromString("11d").Name())
}

func TestCardFromString(t *testing.T) {
	a := assert.New(t)
	a.Equal(Card{Rank: 14, Suit: Clubs}, CardFromString("14c"))
	a.Equal(Card{Rank: 2, Suit: Spades}, CardFromString("2S"))
	a.Equal("14c,2s,10h", CardsToString(CardsFromString("14c,2s,10h")))
	a.Equal([]Card{}, CardsFromString(""))

	a.Panics(func() { CardFromString("1c") })
	a.Panics(func() { CardFromString("15c") })
	a.Panics(func() { CardFromString("3x") })
}

func TestCard_Equal(t *testing.T) {
	a := assert.New(t)
	a.True(CardFromString("5s") == Card{Rank: 5, Suit: Spades})
	a.False(CardFromString("5s") == CardFromString("5c"))
	a.True(CardFromString("5s").IsValid())
	a.False(Card{Rank: 1, Suit: Spades}.IsValid())
	a.False(Card{Rank: 5, Suit: "stars"}.IsValid())
}

func TestHand(t *testing.T) {
	a := assert.New(t)

	var h Hand
	h.AddCard(CardFromString("14s"))
	h.AddCard(CardFromString("13s"))
	a.True(h.HasCard(CardFromString("14s")))
	a.False(h.HasCard(CardFromString("14h")))
	a.Equal("14s,13s", h.String())
	a.Equal([]string{"Ace Of Spades", "King Of Spades"}, h.Names())

	c := h.Clone()
	c[0] = CardFromString("2c")
	a.Equal("14s,13s", h.String())
}
