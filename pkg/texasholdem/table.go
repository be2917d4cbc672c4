package texasholdem

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"holdem-server/internal/rng"
	"holdem-server/pkg/action"
	"holdem-server/pkg/deck"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Table is a single No-Limit Texas Hold'em table
// A Table is not safe for concurrent use. Every call, including scheduled tasks, must come from one goroutine.
type Table struct {
	logger    logrus.FieldLogger
	options   Options
	sink      EventSink
	scheduler Scheduler

	newDeck   func() *deck.Deck
	newHandID func() string
	now       func() time.Time

	// players are sorted by seat
	players []*Player

	// buttonSeat is the seat of the dealer button, -1 before the first hand
	buttonSeat int
	// handOrder are the players dealt into the hand, starting with the small blind
	handOrder []*Player
	// turn is the position in handOrder of the player to act, -1 if nobody
	turn int

	stage         Stage
	deck          *deck.Deck
	board         deck.Hand
	currentMinBet int

	handID     string
	handNumber int

	blindLevel        int
	bigBlind          int
	blindTask         Task
	blindLevelStarted time.Time

	startTask Task

	lastResult *HandResolved
	closed     bool
}

// NewTable returns an empty table
func NewTable(logger logrus.FieldLogger, opts Options, sink EventSink, scheduler Scheduler) (*Table, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	if sink == nil {
		sink = EventSinkFunc(func(Event) {})
	}

	blindLevel := 0
	if opts.StartingBigBlind != 0 {
		blindLevel = blindLevelIndex(opts.BlindLevels, opts.StartingBigBlind)
	}

	return &Table{
		logger:    logger,
		options:   opts,
		sink:      sink,
		scheduler: scheduler,
		newDeck: func() *deck.Deck {
			return deck.NewShuffled(rng.Default())
		},
		newHandID:  uuid.NewString,
		now:        time.Now,
		players:    make([]*Player, 0, opts.maxPlayers()),
		buttonSeat: -1,
		turn:       -1,
		stage:      StageWaitingForPlayers,
		board:      make(deck.Hand, 0, 5),
		blindLevel: blindLevel,
		bigBlind:   opts.BlindLevels[blindLevel],
	}, nil
}

// Stage returns the current stage
func (t *Table) Stage() Stage {
	return t.stage
}

// HandID returns the id of the current or last hand
func (t *Table) HandID() string {
	return t.handID
}

// Board returns a copy of the community cards
func (t *Table) Board() deck.Hand {
	return t.board.Clone()
}

// CurrentMinBet returns the amount every player must match in the current round
func (t *Table) CurrentMinBet() int {
	return t.currentMinBet
}

// BigBlind returns the big blind of the current hand
func (t *Table) BigBlind() int {
	return t.bigBlind
}

// Pot returns the chips committed in the current hand
func (t *Table) Pot() int {
	total := 0
	for _, p := range t.handOrder {
		total += p.totalContribution
	}

	return total
}

// Player returns the seated player with the id
func (t *Table) Player(id string) (*Player, bool) {
	for _, p := range t.players {
		if p.PlayerID == id {
			return p, true
		}
	}

	return nil, false
}

// Players returns the seated players in seat order
func (t *Table) Players() []*Player {
	players := make([]*Player, len(t.players))
	copy(players, t.players)
	return players
}

// CurrentTurn returns the player who must act, or nil
func (t *Table) CurrentTurn() *Player {
	if !t.stage.IsBettingRound() || t.turn < 0 {
		return nil
	}

	return t.handOrder[t.turn]
}

// Join seats a player
// A chips value of zero or less gives the player the default starting stack. A player who joins
// mid-hand sits out until the next hand.
func (t *Table) Join(id, name string, chips int) (*Player, error) {
	if t.closed {
		return nil, ErrTableClosed
	}

	if p, ok := t.Player(id); ok {
		if !p.hasLeft {
			return nil, ErrAlreadySeated
		}

		// reconnected before their seat was cleared
		p.hasLeft = false
		return p, nil
	}

	if len(t.players) >= t.options.maxPlayers() {
		return nil, ErrTableFull
	}

	if chips <= 0 {
		chips = t.options.StartingChips
	}

	if name == "" {
		name = id
	}

	p := newPlayer(id, name, t.freeSeat(), chips)
	t.players = append(t.players, p)
	sort.SliceStable(t.players, func(i, j int) bool {
		return t.players[i].Seat < t.players[j].Seat
	})

	t.logger.WithFields(logrus.Fields{
		"player": id,
		"seat":   p.Seat,
		"chips":  chips,
	}).Info("player joined")

	t.maybeScheduleStart()
	return p, nil
}

// Leave removes a player
// A player in a hand folds immediately, even out of turn, and loses the seat when the next hand starts.
func (t *Table) Leave(id string) error {
	p, ok := t.Player(id)
	if !ok || p.hasLeft {
		return ErrPlayerNotFound
	}

	logger := t.logger.WithField("player", id)

	if t.stage.IsBettingRound() && p.inHand {
		p.hasLeft = true
		logger.Info("player left during hand")

		if p.isFolded {
			return nil
		}

		p.isFolded = true
		p.hasActed = true
		p.setStatus(action.Fold, 0)
		t.emitActionApplied(p, action.Fold, 0)

		return t.afterAction()
	}

	t.removePlayer(p)
	logger.Info("player left")

	if t.stage == StageWaitingForPlayers && t.fundedPlayerCount() < 2 {
		stopTask(t.startTask)
		t.startTask = nil
	}

	return nil
}

// Close cancels all scheduled work
func (t *Table) Close() {
	t.closed = true
	stopTask(t.startTask)
	stopTask(t.blindTask)
	t.startTask = nil
	t.blindTask = nil
}

func (t *Table) freeSeat() int {
	taken := make(map[int]bool, len(t.players))
	for _, p := range t.players {
		taken[p.Seat] = true
	}

	for seat := 0; ; seat++ {
		if !taken[seat] {
			return seat
		}
	}
}

func (t *Table) removePlayer(player *Player) {
	players := make([]*Player, 0, len(t.players))
	for _, p := range t.players {
		if p != player {
			players = append(players, p)
		}
	}

	t.players = players
}

// fundedPlayerCount returns the number of seated players who could be dealt in
func (t *Table) fundedPlayerCount() int {
	n := 0
	for _, p := range t.players {
		if p.chips > 0 && !p.hasLeft {
			n++
		}
	}

	return n
}

// maybeScheduleStart schedules the first hand once two funded players are waiting
func (t *Table) maybeScheduleStart() {
	if t.stage != StageWaitingForPlayers || t.startTask != nil || t.scheduler == nil {
		return
	}

	if t.fundedPlayerCount() < 2 {
		return
	}

	t.logger.WithField("delay", t.options.StartGameDelay).Info("scheduling hand")
	t.startTask = t.scheduler.Schedule(t.options.StartGameDelay, t.runScheduledHand)
}

func (t *Table) runScheduledHand() {
	t.startTask = nil
	if t.closed {
		return
	}

	if err := t.StartHand(); err != nil {
		if errors.Is(err, ErrNotEnoughPlayers) {
			t.logger.Info("waiting for players")
			return
		}

		t.logger.WithError(err).Warn("could not start hand")
	}
}

func (t *Table) emit(name EventName, recipient string, data interface{}) {
	t.sink.Emit(Event{
		Name:      name,
		Recipient: recipient,
		Data:      data,
	})
}

func (t *Table) setStage(next Stage) error {
	if !t.stage.CanTransitionTo(next) {
		return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidAction, t.stage, next)
	}

	prev := t.stage
	t.stage = next

	t.logger.WithFields(logrus.Fields{
		"hand":  t.handID,
		"stage": next.String(),
	}).Debug("stage changed")

	t.emit(EventStageChanged, "", StageChanged{From: prev, To: next})
	return nil
}
