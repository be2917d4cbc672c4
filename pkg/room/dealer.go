package room

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"holdem-server/pkg/action"
	"holdem-server/pkg/actionlog"
	"holdem-server/pkg/texasholdem"

	"github.com/sirupsen/logrus"
)

// ErrDealerClosed is returned when the dealer's shift has ended
var ErrDealerClosed = errors.New("dealer is closed")

// Dealer is responsible for controlling the table
// Every command, scheduled task, and disconnect runs on the dealer's run loop.
type Dealer struct {
	logger      logrus.FieldLogger
	table       *texasholdem.Table
	recorder    actionlog.Recorder
	clients     map[*Client]bool
	lock        sync.RWMutex
	logMessages []*LogMessage

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
}

// NewDealer creates a new dealer object
// If recorder is nil, applied actions are not persisted
func NewDealer(logger logrus.FieldLogger, opts texasholdem.Options, recorder actionlog.Recorder) (*Dealer, error) {
	if recorder == nil {
		recorder = actionlog.Discard{}
	}

	d := &Dealer{
		logger:        logger,
		recorder:      recorder,
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}

	table, err := texasholdem.NewTable(logger, opts, texasholdem.EventSinkFunc(d.emit), runLoopScheduler{dealer: d})
	if err != nil {
		return nil, err
	}

	d.table = table
	return d, nil
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.table.Close()
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

// exec queues fn on the run loop
// It returns false if the dealer's shift has ended.
func (d *Dealer) exec(fn func()) bool {
	select {
	case <-d.close:
		return false
	default:
	}

	select {
	case d.execInRunLoop <- fn:
		return true
	case <-d.close:
		return false
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.exec(func() {
		d.send(client, &Response{
			Key:   "playerId",
			Value: client.id,
		})

		if len(d.logMessages) > 0 {
			messages := make([]*LogMessage, len(d.logMessages))
			copy(messages, d.logMessages)
			d.send(client, &Response{
				Key:  "log",
				Data: messages,
			})
		}

		d.send(client, d.tableResponse(client.id))
	})
}

// RemoveClient removes a client
// The player leaves the table. This method must return quickly.
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	d.exec(func() {
		err := d.table.Leave(client.id)
		if errors.Is(err, texasholdem.ErrPlayerNotFound) {
			return
		}

		if err != nil {
			d.logger.WithError(err).WithField("client", client.String()).Error("could not remove disconnected player")
		}

		d.sendTableState()
	})

	return nClients == 0
}

// Snapshot returns the table as seen by a spectator
func (d *Dealer) Snapshot(ctx context.Context) (*texasholdem.TableState, error) {
	ch := make(chan *texasholdem.TableState, 1)
	if !d.exec(func() {
		ch <- d.table.Snapshot("")
	}) {
		return nil, ErrDealerClosed
	}

	select {
	case state := <-ch:
		return state, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *PayloadIn) {
	switch msg.Action {
	case "joinTable":
		chips, _ := msg.AdditionalData.GetInt("chips")
		d.runCommand(c, msg.Context, func() error {
			_, err := d.table.Join(c.id, c.name, chips)
			return err
		})
	case "leaveTable":
		d.runCommand(c, msg.Context, func() error {
			return d.table.Leave(c.id)
		})
	case "submitAction":
		kindStr, _ := msg.AdditionalData.GetString("kind")
		kind, err := action.FromString(kindStr)
		if err != nil {
			c.Send(newErrorResponse(msg.Context, fmt.Errorf("%w: %s", texasholdem.ErrInvalidAction, err)))
			return
		}

		amount, _ := msg.AdditionalData.GetInt("amount")
		d.runCommand(c, msg.Context, func() error {
			return d.table.ApplyAction(c.id, kind, amount)
		})
	default:
		d.logger.WithField("msg", msg).Warn("unknown message")
		c.Send(newErrorResponse(msg.Context, fmt.Errorf("unknown action: %s", msg.Action)))
	}
}

// runCommand runs fn on the run loop and reports the outcome to the client
// A failed command leaves the table untouched, except when the hand had to be aborted.
func (d *Dealer) runCommand(c *Client, ctx string, fn func() error) {
	queued := d.exec(func() {
		err := fn()
		if err != nil {
			d.logger.WithError(err).WithField("client", c.String()).Debug("command rejected")
			d.send(c, newErrorResponse(ctx, err))

			if !errors.Is(err, texasholdem.ErrDeckExhausted) {
				return
			}
		} else {
			d.send(c, OK(ctx))
		}

		d.sendTableState()
	})

	if !queued {
		c.Send(newErrorResponse(ctx, ErrDealerClosed))
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) emit(event texasholdem.Event) {
	switch data := event.Data.(type) {
	case texasholdem.ActionApplied:
		d.recordAction(data)
		d.addLogMessage(data.PlayerID, data.Kind.LogMessage(data.Amount))
	case texasholdem.HandResolved:
		d.addLogMessage("", data.Message)
	case texasholdem.HandAborted:
		d.addLogMessage("", fmt.Sprintf("hand aborted: %s", data.Reason))
	}

	res := &Response{
		Key:   "event",
		Value: string(event.Name),
		Data:  event.Data,
	}

	for _, client := range d.Clients() {
		if event.Recipient != "" && client.id != event.Recipient {
			continue
		}

		d.send(client, res)
	}
}

func (d *Dealer) recordAction(applied texasholdem.ActionApplied) {
	d.recorder.Record(&actionlog.Entry{
		HandID:     applied.HandID,
		HandNumber: applied.HandNumber,
		PlayerID:   applied.PlayerID,
		Kind:       string(applied.Kind),
		Amount:     applied.Amount,
		Status:     applied.ResultingStatus,
		Stage:      applied.Stage.String(),
		Created:    time.Now(),
	})
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendTableState() {
	for _, client := range d.Clients() {
		d.send(client, d.tableResponse(client.id))
	}
}

func (d *Dealer) tableResponse(viewerID string) *Response {
	return &Response{
		Key:  "table",
		Data: d.table.Snapshot(viewerID),
	}
}

func (d *Dealer) send(client *Client, msg interface{}) {
	if !client.Send(msg) {
		d.logger.WithField("client", client.String()).Warn("client is not keeping up, dropping message")
	}
}
