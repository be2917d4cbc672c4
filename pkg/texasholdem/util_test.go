package texasholdem

import (
	"fmt"
	"testing"
	"time"

	"holdem-server/pkg/action"
	"holdem-server/pkg/deck"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type fakeTask struct {
	after   time.Duration
	fn      func()
	stopped bool
	ran     bool
}

func (f *fakeTask) Stop() bool {
	if f.stopped || f.ran {
		return false
	}

	f.stopped = true
	return true
}

func (f *fakeTask) pending() bool {
	return !f.stopped && !f.ran
}

type fakeScheduler struct {
	tasks []*fakeTask
}

func (f *fakeScheduler) Schedule(after time.Duration, fn func()) Task {
	task := &fakeTask{after: after, fn: fn}
	f.tasks = append(f.tasks, task)
	return task
}

// pending returns the delays of every task that can still run
func (f *fakeScheduler) pending() []time.Duration {
	delays := make([]time.Duration, 0)
	for _, task := range f.tasks {
		if task.pending() {
			delays = append(delays, task.after)
		}
	}

	return delays
}

// fire runs the oldest pending task with the delay
func (f *fakeScheduler) fire(t *testing.T, after time.Duration) {
	t.Helper()

	for _, task := range f.tasks {
		if task.pending() && task.after == after {
			task.ran = true
			task.fn()
			return
		}
	}

	t.Fatalf("no pending task with delay %s", after)
}

type recordingSink struct {
	events []Event
}

func (r *recordingSink) Emit(event Event) {
	r.events = append(r.events, event)
}

func (r *recordingSink) names() []EventName {
	names := make([]EventName, len(r.events))
	for i, e := range r.events {
		names[i] = e.Name
	}

	return names
}

func (r *recordingSink) ofType(name EventName) []Event {
	events := make([]Event, 0)
	for _, e := range r.events {
		if e.Name == name {
			events = append(events, e)
		}
	}

	return events
}

func (r *recordingSink) last(name EventName) Event {
	events := r.ofType(name)
	if len(events) == 0 {
		return Event{}
	}

	return events[len(events)-1]
}

func (r *recordingSink) reset() {
	r.events = nil
}

var testNow = time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)

// setupTable seats players p1, p2, ... with the given stacks
// p1 takes the button on the first hand, so p2 posts the small blind and p3 the big blind.
func setupTable(t *testing.T, opts Options, stacks ...int) (*Table, *fakeScheduler, *recordingSink) {
	t.Helper()

	scheduler := &fakeScheduler{}
	sink := &recordingSink{}
	table, err := NewTable(logrus.StandardLogger(), opts, sink, scheduler)
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	hands := 0
	table.newHandID = func() string {
		hands++
		return fmt.Sprintf("hand-%d", hands)
	}
	table.now = func() time.Time {
		return testNow
	}

	for i, chips := range stacks {
		_, err := table.Join(fmt.Sprintf("p%d", i+1), "", chips)
		assert.NoError(t, err)
	}

	return table, scheduler, sink
}

// stackDeck makes every new hand draw the cards in the listed order
// Hole cards go out one at a time starting with the small blind, followed by the board.
func stackDeck(table *Table, cards string) {
	dealOrder := deck.CardsFromString(cards)
	table.newDeck = func() *deck.Deck {
		d := &deck.Deck{Cards: make([]deck.Card, len(dealOrder))}
		for i, card := range dealOrder {
			d.Cards[len(dealOrder)-1-i] = card
		}

		return d
	}
}

func startHand(t *testing.T, table *Table) {
	t.Helper()
	if !assert.NoError(t, table.StartHand()) {
		t.FailNow()
	}
}

func assertAction(t *testing.T, table *Table, playerID string, kind action.Action, msgAndArgs ...interface{}) {
	t.Helper()
	assertActionAndAmount(t, table, playerID, kind, 0, msgAndArgs...)
}

func assertActionAndAmount(t *testing.T, table *Table, playerID string, kind action.Action, amount int, msgAndArgs ...interface{}) {
	t.Helper()
	assert.NoError(t, table.ApplyAction(playerID, kind, amount), msgAndArgs...)
}

func assertActionFailed(t *testing.T, table *Table, playerID string, kind action.Action, amount int, expectedErr error, msgAndArgs ...interface{}) {
	t.Helper()
	err := table.ApplyAction(playerID, kind, amount)
	assert.ErrorIs(t, err, expectedErr, msgAndArgs...)
}

func assertTurn(t *testing.T, table *Table, playerID string, msgAndArgs ...interface{}) {
	t.Helper()

	current := table.CurrentTurn()
	if playerID == "" {
		assert.Nil(t, current, msgAndArgs...)
		return
	}

	if assert.NotNil(t, current, msgAndArgs...) {
		assert.Equal(t, playerID, current.PlayerID, msgAndArgs...)
	}
}

func chips(table *Table, id string) int {
	p, ok := table.Player(id)
	if !ok {
		return -1
	}

	return p.Chips()
}

func totalChips(table *Table) int {
	total := table.Pot()
	for _, p := range table.Players() {
		total += p.Chips()
	}

	return total
}

// checkAround checks with every player in turn until the stage changes
func checkAround(t *testing.T, table *Table) {
	t.Helper()

	stage := table.Stage()
	for i := 0; table.Stage() == stage && i < 25; i++ {
		current := table.CurrentTurn()
		if !assert.NotNil(t, current) {
			return
		}

		assertAction(t, table, current.PlayerID, action.Check)
	}
}
