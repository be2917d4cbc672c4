package room

import (
	"context"
	"testing"

	"holdem-server/pkg/texasholdem"

	"github.com/stretchr/testify/assert"
)

func TestNewDealer_invalidOptions(t *testing.T) {
	opts := texasholdem.DefaultOptions()
	opts.MaxPlayers = 1

	d, err := NewDealer(nil, opts, nil)
	assert.Nil(t, d)
	assert.EqualError(t, err, "max players must be at least two")
}

func TestDealer_AddClient(t *testing.T) {
	a := assert.New(t)
	d := newTestDealer(t, nil)

	c := connect(d, "p1")
	c2 := connect(d, "p2")
	a.Len(d.Clients(), 2)

	res := waitFor(t, c, func(res *Response) bool { return res.Key == "playerId" })
	a.Equal("p1", res.Value)

	res = waitFor(t, c, func(res *Response) bool { return res.Key == "table" })
	state := res.Data.(*texasholdem.TableState)
	a.Equal(texasholdem.StageWaitingForPlayers, state.Stage)
	a.Empty(state.Players)

	a.False(d.RemoveClient(c))
	a.True(d.RemoveClient(c2))
}

func TestDealer_joinTable(t *testing.T) {
	a := assert.New(t)
	d := newTestDealer(t, nil)

	c := connect(d, "p1")
	send(c, "joinTable", "join-1", AdditionalData{"chips": float64(1500)})
	res := waitFor(t, c, keyAndContext("status", "join-1"))
	a.Equal("OK", res.Value)

	res = waitFor(t, c, func(res *Response) bool { return res.Key == "table" })
	state := res.Data.(*texasholdem.TableState)
	if a.Len(state.Players, 1) {
		a.Equal("p1", state.Players[0].PlayerID)
		a.Equal("Player p1", state.Players[0].Name)
		a.Equal(1500, state.Players[0].Chips)
	}

	send(c, "joinTable", "join-2", nil)
	res = waitFor(t, c, keyAndContext("error", "join-2"))
	a.Equal(texasholdem.ErrAlreadySeated.Error(), res.Value)

	send(c, "leaveTable", "leave-1", nil)
	res = waitFor(t, c, keyAndContext("status", "leave-1"))
	a.Equal("OK", res.Value)

	send(c, "leaveTable", "leave-2", nil)
	res = waitFor(t, c, keyAndContext("error", "leave-2"))
	a.Equal(texasholdem.ErrPlayerNotFound.Error(), res.Value)
}

func TestDealer_ReceivedMessage_errors(t *testing.T) {
	a := assert.New(t)
	d := newTestDealer(t, nil)
	c := connect(d, "p1")

	send(c, "submitAction", "ctx-1", AdditionalData{"kind": "shove"})
	res := waitFor(t, c, keyAndContext("error", "ctx-1"))
	a.Equal("invalid action: unknown action for identifier: shove", res.Value)

	send(c, "submitAction", "ctx-2", AdditionalData{"kind": "check"})
	res = waitFor(t, c, keyAndContext("error", "ctx-2"))
	a.Equal(texasholdem.ErrGameNotInProgress.Error(), res.Value)

	send(c, "dance", "ctx-3", nil)
	res = waitFor(t, c, keyAndContext("error", "ctx-3"))
	a.Equal("unknown action: dance", res.Value)
}

func TestDealer_playsHand(t *testing.T) {
	a := assert.New(t)
	recorder := make(chanRecorder, 16)
	d := newTestDealer(t, recorder)

	c1 := connect(d, "p1")
	c2 := connect(d, "p2")
	clients := map[string]*Client{"p1": c1, "p2": c2}

	send(c1, "joinTable", "join", nil)
	waitFor(t, c1, keyAndContext("status", "join"))
	send(c2, "joinTable", "join", nil)
	waitFor(t, c2, keyAndContext("status", "join"))

	// hole cards only go to their owner
	res := waitFor(t, c1, event(texasholdem.EventHoleCardsDealt))
	a.Equal("p1", res.Data.(texasholdem.HoleCardsDealt).PlayerID)
	res = waitFor(t, c2, event(texasholdem.EventHoleCardsDealt))
	a.Equal("p2", res.Data.(texasholdem.HoleCardsDealt).PlayerID)

	res = waitFor(t, c1, func(res *Response) bool {
		if res.Key != "table" {
			return false
		}

		state := res.Data.(*texasholdem.TableState)
		return state.Stage == texasholdem.StagePreFlop && state.CurrentTurn != ""
	})
	state := res.Data.(*texasholdem.TableState)
	if a.NotNil(state.Viewer) {
		a.Equal("p1", state.Viewer.PlayerID)
	}

	actor := clients[state.CurrentTurn]
	send(actor, "submitAction", "fold", AdditionalData{"kind": "fold"})
	waitFor(t, actor, keyAndContext("status", "fold"))

	entry := waitForEntry(t, recorder)
	a.Equal(actor.ID(), entry.PlayerID)
	a.Equal("fold", entry.Kind)
	a.Equal("fold", entry.Status)
	a.Equal("pre-flop", entry.Stage)
	a.Equal(1, entry.HandNumber)
	a.NotEmpty(entry.HandID)

	res = waitFor(t, c1, event(texasholdem.EventHandResolved))
	resolved := res.Data.(texasholdem.HandResolved)
	a.Len(resolved.Winners, 1)
	a.NotEqual(actor.ID(), resolved.Winners[0])

	waitFor(t, c2, func(res *Response) bool { return res.Key == "log" })

	// acting again once the hand is over is rejected
	send(actor, "submitAction", "late", AdditionalData{"kind": "check"})
	waitFor(t, actor, keyAndContext("error", "late"))
}

func TestDealer_RemoveClient_foldsMidHand(t *testing.T) {
	a := assert.New(t)
	recorder := make(chanRecorder, 16)
	d := newTestDealer(t, recorder)

	c1 := connect(d, "p1")
	c2 := connect(d, "p2")

	send(c1, "joinTable", "join", nil)
	waitFor(t, c1, keyAndContext("status", "join"))
	send(c2, "joinTable", "join", nil)
	waitFor(t, c2, keyAndContext("status", "join"))

	waitFor(t, c1, event(texasholdem.EventHandStarted))

	a.False(d.RemoveClient(c2))

	entry := waitForEntry(t, recorder)
	a.Equal("p2", entry.PlayerID)
	a.Equal("fold", entry.Kind)

	res := waitFor(t, c1, event(texasholdem.EventHandResolved))
	a.Equal([]string{"p1"}, res.Data.(texasholdem.HandResolved).Winners)
}

func TestDealer_Snapshot(t *testing.T) {
	a := assert.New(t)
	d := newTestDealer(t, nil)

	c := connect(d, "p1")
	send(c, "joinTable", "join", nil)
	waitFor(t, c, keyAndContext("status", "join"))

	state, err := d.Snapshot(context.Background())
	a.NoError(err)
	if a.Len(state.Players, 1) {
		a.Empty(state.Players[0].Cards)
	}
	a.Nil(state.Viewer)

	d.EndShift()
	state, err = d.Snapshot(context.Background())
	a.Nil(state)
	a.ErrorIs(err, ErrDealerClosed)

	// safe to call twice
	d.EndShift()
}
