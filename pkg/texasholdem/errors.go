package texasholdem

import (
	"errors"

	"holdem-server/pkg/deck"
)

// errors returned to the acting player
var (
	ErrInvalidAction      = errors.New("invalid action")
	ErrNotYourTurn        = errors.New("it is not your turn")
	ErrInsufficientChips  = errors.New("insufficient chips")
	ErrGameNotInProgress  = errors.New("no hand is in progress")
	ErrPlayerNotFound     = errors.New("player not found")
	ErrTableFull          = errors.New("table is full")
	ErrAlreadySeated      = errors.New("player is already seated")
	ErrNotEnoughPlayers   = errors.New("at least two players with chips are required")
	ErrTableClosed        = errors.New("table is closed")
	ErrHandInProgress     = errors.New("a hand is already in progress")
	ErrDeckExhausted      = deck.ErrDeckExhausted
	errNoBlindLevels      = errors.New("at least one blind level is required")
	errInvalidBlindLevels = errors.New("blind levels must be positive and increasing")
)
