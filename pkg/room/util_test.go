package room

import (
	"testing"
	"time"

	"holdem-server/pkg/actionlog"
	"holdem-server/pkg/texasholdem"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

const waitTimeout = time.Second * 2

type chanRecorder chan *actionlog.Entry

func (c chanRecorder) Record(entry *actionlog.Entry) {
	c <- entry
}

func newTestDealer(t *testing.T, recorder actionlog.Recorder) *Dealer {
	t.Helper()

	opts := texasholdem.DefaultOptions()
	opts.StartGameDelay = time.Millisecond * 10
	opts.NextHandDelay = time.Hour

	d, err := NewDealer(logrus.StandardLogger(), opts, recorder)
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	d.StartShift()
	t.Cleanup(d.EndShift)
	return d
}

func connect(d *Dealer, id string) *Client {
	c := NewClient(nil, id, "Player "+id)
	d.AddClient(c)
	return c
}

func waitFor(t *testing.T, c *Client, match func(res *Response) bool) *Response {
	t.Helper()

	timeout := time.After(waitTimeout)
	for {
		select {
		case msg := <-c.SendChan():
			if res, ok := msg.(*Response); ok && match(res) {
				return res
			}
		case <-timeout:
			t.Fatalf("timed out waiting for message to %s", c.String())
			return nil
		}
	}
}

func keyAndContext(key, ctx string) func(res *Response) bool {
	return func(res *Response) bool {
		return res.Key == key && res.Context == ctx
	}
}

func event(name texasholdem.EventName) func(res *Response) bool {
	return func(res *Response) bool {
		return res.Key == "event" && res.Value == string(name)
	}
}

func send(c *Client, act, ctx string, data AdditionalData) {
	c.ReceivedMessage(&PayloadIn{
		Action:         act,
		AdditionalData: data,
		Context:        ctx,
	})
}

func waitForEntry(t *testing.T, recorder chanRecorder) *actionlog.Entry {
	t.Helper()

	select {
	case entry := <-recorder:
		return entry
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for action log entry")
		return nil
	}
}

// runInLoop runs fn on the dealer's run loop and waits for it to finish
func runInLoop(t *testing.T, d *Dealer, fn func()) {
	t.Helper()

	done := make(chan struct{})
	if !assert.True(t, d.exec(func() {
		fn()
		close(done)
	})) {
		t.FailNow()
	}

	select {
	case <-done:
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for run loop")
	}
}
