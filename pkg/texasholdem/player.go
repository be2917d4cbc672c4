package texasholdem

import (
	"holdem-server/pkg/action"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/poker"
)

// Player is a seated player
type Player struct {
	PlayerID string
	Name     string
	Seat     int

	chips     int
	holeCards deck.Hand

	// betAmount is what the player put in during the current betting round
	betAmount int
	// totalContribution is what the player put in during the whole hand
	totalContribution int

	hasActed bool
	isFolded bool
	// inHand is false when the player was not dealt into the current hand
	inHand bool
	// hasLeft means the player will be removed when the next hand starts
	hasLeft bool

	status      action.Action
	statusLabel string

	chipsWon int
	revealed bool
	handRank *poker.HandRank
}

func newPlayer(id, name string, seat, chips int) *Player {
	return &Player{
		PlayerID: id,
		Name:     name,
		Seat:     seat,
		chips:    chips,
	}
}

// Chips returns the player's stack, not counting what is in the pot
func (p *Player) Chips() int {
	return p.chips
}

// HoleCards returns a copy of the player's cards
func (p *Player) HoleCards() deck.Hand {
	return p.holeCards.Clone()
}

// BetAmount returns what the player bet in the current round
func (p *Player) BetAmount() int {
	return p.betAmount
}

// HasActed returns true if the player acted in the current round
func (p *Player) HasActed() bool {
	return p.hasActed
}

// InHand returns true if the player was dealt into the current hand
func (p *Player) InHand() bool {
	return p.inHand
}

// IsAllIn returns true if the player has chips in the pot and none behind
func (p *Player) IsAllIn() bool {
	return p.inHand && !p.isFolded && p.chips == 0 && p.totalContribution > 0
}

// ChipsWon returns what the player won in the last hand
func (p *Player) ChipsWon() int {
	return p.chipsWon
}

// Status returns the player's last action in the round
func (p *Player) Status() action.Action {
	return p.status
}

// needsToAct returns true if the player still owes a decision in the betting round
func (p *Player) needsToAct(currentMinBet int) bool {
	if !p.inHand || p.isFolded || p.chips == 0 {
		return false
	}

	return !p.hasActed || p.betAmount < currentMinBet
}

// canAct returns true if the player could still put chips in
func (p *Player) canAct() bool {
	return p.inHand && !p.isFolded && p.chips > 0
}

// commit moves chips from the player's stack into the pot
func (p *Player) commit(amount int) {
	p.chips -= amount
	p.betAmount += amount
	p.totalContribution += amount
}

func (p *Player) setStatus(a action.Action, amount int) {
	p.status = a
	p.statusLabel = a.StatusLabel(amount)
}

// resetForHand clears every hand-scoped field
func (p *Player) resetForHand(dealtIn bool) {
	p.holeCards = make(deck.Hand, 0, 2)
	p.betAmount = 0
	p.totalContribution = 0
	p.hasActed = false
	p.isFolded = false
	p.inHand = dealtIn
	p.status = ""
	p.statusLabel = ""
	p.chipsWon = 0
	p.revealed = false
	p.handRank = nil
}

// resetForRound clears the round-scoped fields when new board cards are dealt
// All-in and folded players keep their status since they are done acting.
func (p *Player) resetForRound() {
	p.betAmount = 0
	if p.chips > 0 && !p.isFolded {
		p.hasActed = false
		p.status = ""
		p.statusLabel = ""
	}
}

// potmanager.Contributor interface

// ID returns the player's id
func (p *Player) ID() string {
	return p.PlayerID
}

// Contribution returns what the player put in over the hand
func (p *Player) Contribution() int {
	return p.totalContribution
}

// IsFolded returns true if the player folded
func (p *Player) IsFolded() bool {
	return p.isFolded
}
