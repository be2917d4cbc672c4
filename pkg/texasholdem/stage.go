package texasholdem

import (
	"encoding/json"
	"fmt"
)

// Stage represents where the table is within a hand
type Stage int

// constants for Stage
const (
	StageWaitingForPlayers Stage = iota
	StagePreFlop
	StageFlop
	StageTurn
	StageRiver
	StageShowdown
	StagePayout
)

// transitions lists the stages each stage may move to. The first entry is the natural successor.
// A betting stage can jump to showdown when everyone else folds. Payout returns to waiting when
// fewer than two funded players remain, and an aborted hand returns to waiting from any stage.
var transitions = map[Stage][]Stage{
	StageWaitingForPlayers: {StagePreFlop},
	StagePreFlop:           {StageFlop, StageShowdown, StageWaitingForPlayers},
	StageFlop:              {StageTurn, StageShowdown, StageWaitingForPlayers},
	StageTurn:              {StageRiver, StageShowdown, StageWaitingForPlayers},
	StageRiver:             {StageShowdown, StageWaitingForPlayers},
	StageShowdown:          {StagePayout},
	StagePayout:            {StagePreFlop, StageWaitingForPlayers},
}

// Next returns the natural successor of the stage
func (s Stage) Next() (Stage, error) {
	next, ok := transitions[s]
	if !ok || len(next) == 0 {
		return s, fmt.Errorf("no transition from stage %d", s)
	}

	return next[0], nil
}

// CanTransitionTo returns true if the table may move from s to the next stage
func (s Stage) CanTransitionTo(next Stage) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// IsBettingRound returns true if players can act in the stage
func (s Stage) IsBettingRound() bool {
	return s >= StagePreFlop && s <= StageRiver
}

// IsHandInProgress returns true if cards are out
func (s Stage) IsHandInProgress() bool {
	return s >= StagePreFlop && s <= StageShowdown
}

func (s Stage) String() string {
	switch s {
	case StageWaitingForPlayers:
		return "waiting-for-players"
	case StagePreFlop:
		return "pre-flop"
	case StageFlop:
		return "flop"
	case StageTurn:
		return "turn"
	case StageRiver:
		return "river"
	case StageShowdown:
		return "showdown"
	case StagePayout:
		return "payout"
	}

	return ""
}

// MarshalJSON encodes JSON
func (s Stage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(s),
		Name: s.String(),
	})
}

// boardSize is the number of community cards once the stage is dealt
func (s Stage) boardSize() int {
	switch s {
	case StageFlop:
		return 3
	case StageTurn:
		return 4
	case StageRiver, StageShowdown, StagePayout:
		return 5
	}

	return 0
}
