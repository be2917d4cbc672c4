package texasholdem

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStage_Next(t *testing.T) {
	a := assert.New(t)

	expected := []Stage{StagePreFlop, StageFlop, StageTurn, StageRiver, StageShowdown, StagePayout, StagePreFlop}
	stage := StageWaitingForPlayers
	for _, want := range expected {
		next, err := stage.Next()
		a.NoError(err)
		a.Equal(want, next)
		stage = next
	}

	next, err := Stage(99).Next()
	a.EqualError(err, "no transition from stage 99")
	a.Equal(Stage(99), next)
}

func TestStage_CanTransitionTo(t *testing.T) {
	a := assert.New(t)

	a.True(StageWaitingForPlayers.CanTransitionTo(StagePreFlop))
	a.False(StageWaitingForPlayers.CanTransitionTo(StageFlop))

	// everyone folded
	a.True(StagePreFlop.CanTransitionTo(StageShowdown))
	a.True(StageTurn.CanTransitionTo(StageShowdown))

	// never backwards within a hand
	a.False(StageFlop.CanTransitionTo(StagePreFlop))
	a.False(StageRiver.CanTransitionTo(StageTurn))
	a.False(StageShowdown.CanTransitionTo(StageRiver))
	a.False(StageShowdown.CanTransitionTo(StageWaitingForPlayers))

	a.True(StagePayout.CanTransitionTo(StagePreFlop))
	a.True(StagePayout.CanTransitionTo(StageWaitingForPlayers))
}

func TestStage_IsBettingRound(t *testing.T) {
	a := assert.New(t)

	a.False(StageWaitingForPlayers.IsBettingRound())
	a.True(StagePreFlop.IsBettingRound())
	a.True(StageRiver.IsBettingRound())
	a.False(StageShowdown.IsBettingRound())
	a.False(StagePayout.IsBettingRound())

	a.True(StageShowdown.IsHandInProgress())
	a.False(StagePayout.IsHandInProgress())
}

func TestStage_MarshalJSON(t *testing.T) {
	a := assert.New(t)

	b, err := json.Marshal(StageFlop)
	a.NoError(err)
	a.JSONEq(`{"id":2,"name":"flop"}`, string(b))

	a.Equal("waiting-for-players", StageWaitingForPlayers.String())
	a.Equal("", Stage(99).String())
}
