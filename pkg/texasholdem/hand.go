package texasholdem

import (
	"fmt"
	"strings"

	"holdem-server/pkg/action"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/poker"
	"holdem-server/pkg/potmanager"

	"github.com/sirupsen/logrus"
)

// StartHand deals a new hand
// It rotates the button, clears seats vacated during the last hand, deals two cards to every
// funded player and posts the blinds. With fewer than two funded players the table goes back to waiting.
func (t *Table) StartHand() error {
	if t.closed {
		return ErrTableClosed
	}

	if t.stage.IsHandInProgress() {
		return ErrHandInProgress
	}

	stopTask(t.startTask)
	t.startTask = nil

	for _, p := range t.Players() {
		if p.hasLeft {
			t.removePlayer(p)
		}
	}

	if t.fundedPlayerCount() < 2 {
		if t.stage != StageWaitingForPlayers {
			if err := t.setStage(StageWaitingForPlayers); err != nil {
				return err
			}
		}

		return ErrNotEnoughPlayers
	}

	if t.blindTask == nil {
		t.startBlindTimer()
	}

	t.rotateButton()
	t.buildHandOrder()

	t.handNumber++
	t.handID = t.newHandID()
	t.bigBlind = t.options.BlindLevels[t.blindLevel]
	t.deck = t.newDeck()
	t.board = make(deck.Hand, 0, 5)
	t.currentMinBet = 0
	t.turn = -1
	t.lastResult = nil

	logger := t.logger.WithFields(logrus.Fields{
		"hand":       t.handID,
		"handNumber": t.handNumber,
		"bigBlind":   t.bigBlind,
	})
	logger.Info("starting hand")

	if err := t.setStage(StagePreFlop); err != nil {
		return err
	}

	ids := make([]string, len(t.handOrder))
	for i, p := range t.handOrder {
		ids[i] = p.PlayerID
	}

	t.emit(EventHandStarted, "", HandStarted{
		HandID:     t.handID,
		HandNumber: t.handNumber,
		Players:    ids,
		Button:     t.handOrder[len(t.handOrder)-1].PlayerID,
		SmallBlind: t.bigBlind / 2,
		BigBlind:   t.bigBlind,
	})

	if err := t.dealHoleCards(); err != nil {
		return t.abortHand(err)
	}

	t.postBlinds()
	t.emit(EventPotUpdated, "", PotUpdated{Amount: t.Pot()})

	t.turn = t.findNextActor(2 % len(t.handOrder))
	if t.turn < 0 {
		return t.advanceStage()
	}

	return nil
}

// rotateButton moves the button to the next funded seat
func (t *Table) rotateButton() {
	var first *Player
	for _, p := range t.players {
		if p.chips == 0 {
			continue
		}

		if first == nil {
			first = p
		}

		if p.Seat > t.buttonSeat {
			t.buttonSeat = p.Seat
			return
		}
	}

	t.buttonSeat = first.Seat
}

// buildHandOrder deals in every funded player, starting left of the button
func (t *Table) buildHandOrder() {
	start := 0
	for i, p := range t.players {
		if p.Seat == t.buttonSeat {
			start = i + 1
			break
		}
	}

	t.handOrder = make([]*Player, 0, len(t.players))
	n := len(t.players)
	for i := 0; i < n; i++ {
		p := t.players[(start+i)%n]
		dealtIn := p.chips > 0
		p.resetForHand(dealtIn)
		if dealtIn {
			t.handOrder = append(t.handOrder, p)
		}
	}
}

func (t *Table) dealHoleCards() error {
	for i := 0; i < 2; i++ {
		for _, p := range t.handOrder {
			card, err := t.deck.Draw()
			if err != nil {
				return err
			}

			p.holeCards.AddCard(card)
		}
	}

	for _, p := range t.handOrder {
		t.emit(EventHoleCardsDealt, p.PlayerID, HoleCardsDealt{
			PlayerID: p.PlayerID,
			Cards:    p.holeCards.Clone(),
		})
	}

	return nil
}

// postBlinds takes the forced bets from positions 0 and 1
// Neither blind counts as acting, so the big blind still gets an option.
func (t *Table) postBlinds() {
	post := func(p *Player, amount int) {
		if amount > p.chips {
			amount = p.chips
		}

		p.commit(amount)
		p.statusLabel = fmt.Sprintf("blind %s", action.FormatChips(amount))
		if p.betAmount > t.currentMinBet {
			t.currentMinBet = p.betAmount
		}
	}

	post(t.handOrder[0], t.bigBlind/2)
	post(t.handOrder[1], t.bigBlind)
}

// advanceStage moves to the next stage once a betting round is complete
// When no more than one player can still bet, the remaining board is dealt straight through to showdown.
func (t *Table) advanceStage() error {
	for {
		next, err := t.stage.Next()
		if err != nil {
			return err
		}

		if next == StageShowdown {
			return t.showdown()
		}

		want := next.boardSize() - len(t.board)
		for i := 0; i < want; i++ {
			card, err := t.deck.Draw()
			if err != nil {
				return t.abortHand(err)
			}

			t.board.AddCard(card)
		}

		if err := t.setStage(next); err != nil {
			return err
		}

		t.currentMinBet = 0
		for _, p := range t.handOrder {
			p.resetForRound()
		}

		t.emit(EventBoardUpdated, "", BoardUpdated{Stage: next, Cards: t.board.Clone()})

		t.turn = t.findNextActor(0)
		if t.turn >= 0 {
			return nil
		}
	}
}

// showdown ranks the remaining hands and settles every pot
func (t *Table) showdown() error {
	t.turn = -1

	// the board may be incomplete if everyone folded, in which case the stage skips ahead
	if t.stage != StageShowdown {
		if err := t.setStage(StageShowdown); err != nil {
			return err
		}
	}

	contenders := make([]*Player, 0, len(t.handOrder))
	contributors := make([]potmanager.Contributor, len(t.handOrder))
	order := make([]string, len(t.handOrder))
	for i, p := range t.handOrder {
		contributors[i] = p
		order[i] = p.PlayerID
		if !p.isFolded {
			contenders = append(contenders, p)
		}
	}

	wm := potmanager.NewWinManager()
	if len(contenders) > 1 {
		for _, p := range contenders {
			cards := append(p.holeCards.Clone(), t.board...)
			rank, err := poker.Evaluate(cards)
			if err != nil {
				return fmt.Errorf("could not evaluate hand for %s: %w", p.PlayerID, err)
			}

			p.handRank = &rank
			p.revealed = true
			wm.AddParticipant(p.PlayerID, rank)
		}
	} else {
		for _, p := range contenders {
			wm.AddParticipant(p.PlayerID, poker.HandRank{})
		}
	}

	pots := potmanager.BuildPots(contributors)
	payouts, err := potmanager.PayWinners(pots, wm.GetSortedTiers(), order)
	if err != nil {
		return err
	}

	result := &HandResolved{
		HandID:    t.handID,
		Winners:   make([]string, 0),
		PotShares: make([]PotShare, 0),
		Pots:      pots,
	}

	messages := make([]string, 0)
	for _, p := range t.handOrder {
		amount := payouts[p.PlayerID]
		if amount == 0 {
			continue
		}

		p.chipsWon = amount
		share := PotShare{PlayerID: p.PlayerID, Amount: amount}
		msg := fmt.Sprintf("%s wins %s", p.Name, action.FormatChips(amount))
		if p.handRank != nil {
			share.Hand = p.handRank.String()
			msg = fmt.Sprintf("%s with %s", msg, strings.ToLower(share.Hand))
		}

		result.Winners = append(result.Winners, p.PlayerID)
		result.PotShares = append(result.PotShares, share)
		messages = append(messages, msg)
	}

	result.Message = strings.Join(messages, ", ")
	t.lastResult = result

	t.logger.WithFields(logrus.Fields{
		"hand":    t.handID,
		"winners": result.Winners,
		"pot":     pots.Total(),
	}).Info("hand resolved")

	t.emit(EventHandResolved, "", *result)
	return t.payout()
}

// payout credits the winners and schedules the next hand
func (t *Table) payout() error {
	if err := t.setStage(StagePayout); err != nil {
		return err
	}

	for _, p := range t.handOrder {
		p.chips += p.chipsWon
		p.totalContribution = 0
		p.betAmount = 0
	}

	t.currentMinBet = 0
	t.emit(EventPotUpdated, "", PotUpdated{Amount: 0})

	t.scheduleNextHand()
	return nil
}

func (t *Table) scheduleNextHand() {
	if t.scheduler == nil || t.closed {
		return
	}

	stopTask(t.startTask)
	t.startTask = t.scheduler.Schedule(t.options.NextHandDelay, t.runScheduledHand)
}

// abortHand refunds every contribution and returns the table to waiting
// The returned error wraps cause.
func (t *Table) abortHand(cause error) error {
	refunds := make(map[string]int)
	for _, p := range t.handOrder {
		if p.totalContribution > 0 {
			refunds[p.PlayerID] = p.totalContribution
			p.chips += p.totalContribution
		}

		p.resetForHand(false)
	}

	t.turn = -1
	t.currentMinBet = 0
	t.board = make(deck.Hand, 0, 5)

	t.logger.WithFields(logrus.Fields{
		"hand":  t.handID,
		"error": cause.Error(),
	}).Error("hand aborted")

	t.emit(EventHandAborted, "", HandAborted{
		HandID:  t.handID,
		Reason:  cause.Error(),
		Refunds: refunds,
	})

	if err := t.setStage(StageWaitingForPlayers); err != nil {
		t.logger.WithError(err).Error("could not return to waiting")
	}

	t.emit(EventPotUpdated, "", PotUpdated{Amount: 0})
	return fmt.Errorf("hand aborted: %w", cause)
}
