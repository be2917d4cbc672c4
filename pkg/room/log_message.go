package room

import (
	"time"

	"github.com/google/uuid"
)

const logMessageLimit = 25

// LogMessage is a line in the table's game log
// If PlayerID is empty, it's a general statement, otherwise the message reads like "{player} called $40"
type LogMessage struct {
	UUID     string    `json:"uuid"`
	PlayerID string    `json:"playerId,omitempty"`
	Message  string    `json:"message"`
	Time     time.Time `json:"time"`
}

// addLogMessage records the message and broadcasts it
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessage(playerID, message string) {
	msg := &LogMessage{
		UUID:     uuid.NewString(),
		PlayerID: playerID,
		Message:  message,
		Time:     time.Now(),
	}

	m := append(d.logMessages, msg)
	if count := len(m); count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m

	res := &Response{
		Key:  "log",
		Data: []*LogMessage{msg},
	}

	for _, client := range d.Clients() {
		d.send(client, res)
	}
}
