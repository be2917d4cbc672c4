package texasholdem

import (
	"holdem-server/pkg/action"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/potmanager"
)

// EventName identifies an event emitted by the table
type EventName string

// event names
const (
	EventHandStarted    EventName = "handStarted"
	EventHoleCardsDealt EventName = "holeCardsDealt"
	EventStageChanged   EventName = "stageChanged"
	EventBoardUpdated   EventName = "boardUpdated"
	EventPotUpdated     EventName = "potUpdated"
	EventActionApplied  EventName = "actionApplied"
	EventHandResolved   EventName = "handResolved"
	EventBlindsUpdated  EventName = "blindsUpdated"
	EventHandAborted    EventName = "handAborted"
)

// Event is emitted after every completed transition
type Event struct {
	Name EventName
	// Recipient is the only player who may see the event. Empty means everyone.
	Recipient string
	Data      interface{}
}

// EventSink receives events from the table
// Emit is called synchronously and must not call back into the table.
type EventSink interface {
	Emit(event Event)
}

// EventSinkFunc adapts a function to an EventSink
type EventSinkFunc func(event Event)

// Emit calls f(event)
func (f EventSinkFunc) Emit(event Event) {
	f(event)
}

// HandStarted is the payload of EventHandStarted
type HandStarted struct {
	HandID     string   `json:"handId"`
	HandNumber int      `json:"handNumber"`
	Players    []string `json:"players"`
	Button     string   `json:"button"`
	SmallBlind int      `json:"smallBlind"`
	BigBlind   int      `json:"bigBlind"`
}

// HoleCardsDealt is the payload of EventHoleCardsDealt
type HoleCardsDealt struct {
	PlayerID string    `json:"playerId"`
	Cards    deck.Hand `json:"cards"`
}

// StageChanged is the payload of EventStageChanged
type StageChanged struct {
	From Stage `json:"from"`
	To   Stage `json:"to"`
}

// BoardUpdated is the payload of EventBoardUpdated
type BoardUpdated struct {
	Stage Stage     `json:"stage"`
	Cards deck.Hand `json:"cards"`
}

// PotUpdated is the payload of EventPotUpdated
type PotUpdated struct {
	Amount int `json:"amount"`
}

// ActionApplied is the payload of EventActionApplied
type ActionApplied struct {
	HandID          string        `json:"handId"`
	HandNumber      int           `json:"handNumber"`
	Stage           Stage         `json:"stage"`
	PlayerID        string        `json:"playerId"`
	Kind            action.Action `json:"kind"`
	Amount          int           `json:"amount"`
	ResultingStatus string        `json:"resultingStatus"`
}

// PotShare is the amount a player won
type PotShare struct {
	PlayerID string `json:"playerId"`
	Amount   int    `json:"amount"`
	Hand     string `json:"hand,omitempty"`
}

// HandResolved is the payload of EventHandResolved
type HandResolved struct {
	HandID    string          `json:"handId"`
	Winners   []string        `json:"winners"`
	PotShares []PotShare      `json:"potShares"`
	Pots      potmanager.Pots `json:"pots"`
	Message   string          `json:"message"`
}

// BlindsUpdated is the payload of EventBlindsUpdated
type BlindsUpdated struct {
	Current int `json:"current"`
	// Next is zero once the last level is reached
	Next int `json:"next"`
	// TimeRemaining is in seconds
	TimeRemaining int `json:"timeRemaining"`
}

// HandAborted is the payload of EventHandAborted
type HandAborted struct {
	HandID  string         `json:"handId"`
	Reason  string         `json:"reason"`
	Refunds map[string]int `json:"refunds"`
}
