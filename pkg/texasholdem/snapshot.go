package texasholdem

import (
	"holdem-server/pkg/action"
	"holdem-server/pkg/deck"
	"holdem-server/pkg/poker"
	"holdem-server/pkg/potmanager"
)

// TableState is a point-in-time view of the table for one viewer
type TableState struct {
	HandID        string          `json:"handId"`
	HandNumber    int             `json:"handNumber"`
	Stage         Stage           `json:"stage"`
	Button        string          `json:"button"`
	Board         deck.Hand       `json:"board"`
	BoardNames    []string        `json:"boardNames"`
	Pot           int             `json:"pot"`
	Pots          potmanager.Pots `json:"pots"`
	CurrentMinBet int             `json:"currentMinBet"`
	CurrentTurn   string          `json:"currentTurn"`
	SmallBlind    int             `json:"smallBlind"`
	BigBlind      int             `json:"bigBlind"`
	Blinds        BlindsUpdated   `json:"blinds"`
	Players       []*PlayerState  `json:"players"`
	Viewer        *ViewerState    `json:"viewer"`
	LastResult    *HandResolved   `json:"lastResult"`
}

// PlayerState is a seat as seen by the viewer
type PlayerState struct {
	PlayerID          string        `json:"playerId"`
	Name              string        `json:"name"`
	Seat              int           `json:"seat"`
	Chips             int           `json:"chips"`
	BetAmount         int           `json:"betAmount"`
	TotalContribution int           `json:"totalContribution"`
	Status            action.Action `json:"status,omitempty"`
	StatusLabel       string        `json:"statusLabel"`
	HasActed          bool          `json:"hasActed"`
	IsFolded          bool          `json:"isFolded"`
	IsAllIn           bool          `json:"isAllIn"`
	InHand            bool          `json:"inHand"`
	HasLeft           bool          `json:"hasLeft"`
	IsButton          bool          `json:"isButton"`
	Cards             deck.Hand     `json:"cards"`
	CardNames         []string      `json:"cardNames"`
	Hand              string        `json:"hand"`
	ChipsWon          int           `json:"chipsWon"`
}

// ViewerState holds what only the viewer may see
type ViewerState struct {
	PlayerID string          `json:"playerId"`
	Actions  []action.Action `json:"actions"`
	ToCall   int             `json:"toCall"`
	MaxBet   int             `json:"maxBet"`
}

// Snapshot returns the table as viewerID may see it
// Hole cards are hidden except for the viewer's own and hands revealed at showdown.
// An empty viewerID returns the public view.
func (t *Table) Snapshot(viewerID string) *TableState {
	state := &TableState{
		HandID:        t.handID,
		HandNumber:    t.handNumber,
		Stage:         t.stage,
		Board:         t.board.Clone(),
		BoardNames:    t.board.Names(),
		Pot:           t.Pot(),
		CurrentMinBet: t.currentMinBet,
		SmallBlind:    t.bigBlind / 2,
		BigBlind:      t.bigBlind,
		Blinds:        t.blindsUpdated(),
		Players:       make([]*PlayerState, len(t.players)),
		LastResult:    t.lastResult,
	}

	if t.stage.IsBettingRound() {
		contributors := make([]potmanager.Contributor, len(t.handOrder))
		for i, p := range t.handOrder {
			contributors[i] = p
		}

		state.Pots = potmanager.BuildPots(contributors)
	}

	if current := t.CurrentTurn(); current != nil {
		state.CurrentTurn = current.PlayerID
	}

	for i, p := range t.players {
		ps := &PlayerState{
			PlayerID:          p.PlayerID,
			Name:              p.Name,
			Seat:              p.Seat,
			Chips:             p.chips,
			BetAmount:         p.betAmount,
			TotalContribution: p.totalContribution,
			Status:            p.status,
			StatusLabel:       p.statusLabel,
			HasActed:          p.hasActed,
			IsFolded:          p.isFolded,
			IsAllIn:           p.IsAllIn(),
			InHand:            p.inHand,
			HasLeft:           p.hasLeft,
			IsButton:          p.Seat == t.buttonSeat && t.handNumber > 0,
			ChipsWon:          p.chipsWon,
		}

		if ps.IsButton {
			state.Button = p.PlayerID
		}

		if p.revealed || (viewerID != "" && p.PlayerID == viewerID) {
			ps.Cards = p.holeCards.Clone()
			ps.CardNames = p.holeCards.Names()
			ps.Hand = t.describeHand(p)
		}

		state.Players[i] = ps
	}

	if p, ok := t.Player(viewerID); ok {
		toCall := t.currentMinBet - p.betAmount
		if toCall > p.chips {
			toCall = p.chips
		}

		if toCall < 0 || !t.stage.IsBettingRound() {
			toCall = 0
		}

		state.Viewer = &ViewerState{
			PlayerID: p.PlayerID,
			Actions:  t.LegalActions(p.PlayerID),
			ToCall:   toCall,
			MaxBet:   t.MaxBet(p.PlayerID),
		}
	}

	return state
}

// describeHand names the player's best hand so far, if five cards are available
func (t *Table) describeHand(p *Player) string {
	if p.handRank != nil {
		return p.handRank.String()
	}

	if len(p.holeCards)+len(t.board) < poker.HandSize {
		return ""
	}

	rank, err := poker.Evaluate(append(p.holeCards.Clone(), t.board...))
	if err != nil {
		return ""
	}

	return rank.String()
}
