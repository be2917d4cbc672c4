package actionlog

import (
	"time"
)

// Entry is a row in the `action_log` table
type Entry struct {
	ID         int64     `json:"id"`
	HandID     string    `json:"handId"`
	HandNumber int       `json:"handNumber"`
	PlayerID   string    `json:"playerId"`
	Kind       string    `json:"kind"`
	Amount     int       `json:"amount"`
	Status     string    `json:"status"`
	Stage      string    `json:"stage"`
	Created    time.Time `json:"created"`
}

// Recorder accepts entries for persistence
// Record must not block.
type Recorder interface {
	Record(entry *Entry)
}

// Discard is a Recorder that drops every entry
type Discard struct{}

// Record is a no-op
func (Discard) Record(*Entry) {}
