package texasholdem

import (
	"fmt"

	"holdem-server/pkg/action"

	"github.com/sirupsen/logrus"
)

// ApplyAction performs a bet, call, check or fold for the player on the clock
// For a bet, amount is the number of chips to add. A rejected action leaves the table unchanged.
func (t *Table) ApplyAction(playerID string, kind action.Action, amount int) error {
	if !t.stage.IsBettingRound() {
		if t.stage == StageWaitingForPlayers {
			return ErrGameNotInProgress
		}

		return fmt.Errorf("%w: the hand is already resolved", ErrInvalidAction)
	}

	p, ok := t.Player(playerID)
	if !ok {
		return ErrPlayerNotFound
	}

	if !p.inHand || p.isFolded {
		return fmt.Errorf("%w: you are not in the hand", ErrInvalidAction)
	}

	if current := t.CurrentTurn(); current != p {
		return ErrNotYourTurn
	}

	if !kind.IsValid() {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidAction, kind)
	}

	var committed int
	switch kind {
	case action.Bet:
		inc, err := t.validateBet(p, amount)
		if err != nil {
			return err
		}

		p.commit(inc)
		if p.betAmount > t.currentMinBet {
			t.currentMinBet = p.betAmount
		}

		committed = inc
	case action.Call:
		owed := t.currentMinBet - p.betAmount
		if owed < 0 {
			owed = 0
		}

		if owed > p.chips {
			owed = p.chips
		}

		p.commit(owed)
		committed = owed
	case action.Check:
		if p.betAmount != t.currentMinBet {
			return fmt.Errorf("%w: you cannot check with an active bet of %s", ErrInvalidAction, action.FormatChips(t.currentMinBet))
		}
	case action.Fold:
		p.isFolded = true
	}

	p.hasActed = true
	p.setStatus(kind, committed)

	t.logger.WithFields(logrus.Fields{
		"hand":   t.handID,
		"stage":  t.stage.String(),
		"player": p.PlayerID,
		"action": string(kind),
		"amount": committed,
	}).Debug(kind.LogMessage(committed))

	t.emitActionApplied(p, kind, committed)
	if committed > 0 {
		t.emit(EventPotUpdated, "", PotUpdated{Amount: t.Pot()})
	}

	return t.afterAction()
}

// validateBet returns how many chips the bet adds after capping
// The bet is capped by the actor's stack and by the second largest stack still in the hand,
// so that at least one other player can always match it.
func (t *Table) validateBet(p *Player, amount int) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: bet must be greater than zero", ErrInvalidAction)
	}

	total := p.betAmount + amount
	if limit := p.betAmount + p.chips; total > limit {
		total = limit
	}

	if limit := t.secondLargestStack(); total > limit {
		total = limit
	}

	inc := total - p.betAmount
	if inc <= 0 {
		return 0, fmt.Errorf("%w: nobody can call a larger bet", ErrInvalidAction)
	}

	if inc > p.chips {
		return 0, ErrInsufficientChips
	}

	if total < t.currentMinBet && inc < p.chips {
		return 0, fmt.Errorf("%w: bet must be at least %s", ErrInvalidAction, action.FormatChips(t.currentMinBet-p.betAmount))
	}

	return inc, nil
}

// secondLargestStack returns the second largest of chips plus current bet among players still in the hand
func (t *Table) secondLargestStack() int {
	first, second := 0, 0
	for _, p := range t.handOrder {
		if p.isFolded {
			continue
		}

		stack := p.chips + p.betAmount
		if stack > first {
			first, second = stack, first
		} else if stack > second {
			second = stack
		}
	}

	return second
}

// MaxBet returns the most chips the player could add with a bet right now
func (t *Table) MaxBet(playerID string) int {
	p, ok := t.Player(playerID)
	if !ok || !p.canAct() {
		return 0
	}

	total := p.betAmount + p.chips
	if limit := t.secondLargestStack(); total > limit {
		total = limit
	}

	if total <= p.betAmount {
		return 0
	}

	return total - p.betAmount
}

// LegalActions returns what the player can do if they are on the clock
func (t *Table) LegalActions(playerID string) []action.Action {
	current := t.CurrentTurn()
	if current == nil || current.PlayerID != playerID {
		return nil
	}

	actions := make([]action.Action, 0, 3)
	if current.betAmount == t.currentMinBet {
		actions = append(actions, action.Check)
	} else {
		actions = append(actions, action.Call)
	}

	if t.MaxBet(playerID) > 0 {
		actions = append(actions, action.Bet)
	}

	return append(actions, action.Fold)
}

// findNextActor returns the first position, starting at start, of a player who still owes a decision
// A player who is the only one left with chips has nobody to bet against, so they only act when facing a bet.
func (t *Table) findNextActor(start int) int {
	n := len(t.handOrder)
	if n == 0 {
		return -1
	}

	canAct := 0
	for _, p := range t.handOrder {
		if p.canAct() {
			canAct++
		}
	}

	for i := 0; i < n; i++ {
		pos := (start + i) % n
		p := t.handOrder[pos]
		if !p.needsToAct(t.currentMinBet) {
			continue
		}

		if canAct < 2 && p.betAmount >= t.currentMinBet {
			continue
		}

		return pos
	}

	return -1
}

// afterAction passes the turn or advances the stage
func (t *Table) afterAction() error {
	live := 0
	for _, p := range t.handOrder {
		if !p.isFolded {
			live++
		}
	}

	if live <= 1 {
		return t.showdown()
	}

	start := t.turn
	if start < 0 {
		start = 0
	}

	t.turn = t.findNextActor(start)
	if t.turn >= 0 {
		return nil
	}

	return t.advanceStage()
}

func (t *Table) emitActionApplied(p *Player, kind action.Action, amount int) {
	t.emit(EventActionApplied, "", ActionApplied{
		HandID:          t.handID,
		HandNumber:      t.handNumber,
		Stage:           t.stage,
		PlayerID:        p.PlayerID,
		Kind:            kind,
		Amount:          amount,
		ResultingStatus: p.statusLabel,
	})
}
