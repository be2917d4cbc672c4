package texasholdem

import (
	"testing"
	"time"

	"holdem-server/pkg/action"

	"github.com/stretchr/testify/assert"
)

func TestTable_EscalateBlinds(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	table, scheduler, sink := setupTable(t, opts, 1000, 1000, 1000)
	startHand(t, table)

	scheduler.fire(t, opts.BlindLevelDuration)
	a.Equal(BlindsUpdated{Current: 40, Next: 60, TimeRemaining: 600}, sink.last(EventBlindsUpdated).Data)
	a.Equal(20, table.BigBlind(), "the hand in progress keeps its blinds")

	assertAction(t, table, "p1", action.Fold)
	assertAction(t, table, "p2", action.Fold)

	startHand(t, table)
	a.Equal(40, table.BigBlind())
	a.Equal(60, table.Pot())

	// the timer keeps running on its own, not per hand
	scheduler.fire(t, opts.BlindLevelDuration)
	a.Equal(BlindsUpdated{Current: 60, Next: 100, TimeRemaining: 600}, sink.last(EventBlindsUpdated).Data)
}

func TestTable_EscalateBlinds_lastLevel(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	opts.BlindLevels = []int{20, 40}
	opts.BlindLevelDuration = time.Minute
	table, scheduler, sink := setupTable(t, opts, 1000, 1000)
	startHand(t, table)

	scheduler.fire(t, time.Minute)
	a.Equal(BlindsUpdated{Current: 40, Next: 0, TimeRemaining: 0}, sink.last(EventBlindsUpdated).Data)
	a.NotContains(scheduler.pending(), time.Minute)

	table.EscalateBlinds()
	a.Equal(BlindsUpdated{Current: 40, Next: 0, TimeRemaining: 0}, sink.last(EventBlindsUpdated).Data)
}

func TestTable_EscalateBlinds_disabled(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	opts.BlindLevelDuration = 0
	table, scheduler, _ := setupTable(t, opts, 1000, 1000)
	startHand(t, table)

	a.Empty(scheduler.pending())
	a.Equal(0, table.Snapshot("").Blinds.TimeRemaining)
}

func TestTable_blindTimeRemaining(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	table, _, _ := setupTable(t, opts, 1000, 1000)
	startHand(t, table)

	a.Equal(600, table.Snapshot("").Blinds.TimeRemaining)

	table.now = func() time.Time {
		return testNow.Add(4 * time.Minute)
	}
	a.Equal(360, table.Snapshot("").Blinds.TimeRemaining)

	table.now = func() time.Time {
		return testNow.Add(time.Hour)
	}
	a.Equal(0, table.Snapshot("").Blinds.TimeRemaining)
}
