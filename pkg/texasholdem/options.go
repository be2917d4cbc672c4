package texasholdem

import (
	"errors"
	"fmt"
	"time"

	"holdem-server/pkg/deck"
)

// DefaultBlindLevels is the big blind schedule
var DefaultBlindLevels = []int{20, 40, 60, 100, 150, 200, 300, 400, 600, 800, 1000}

// Options configures the table
type Options struct {
	StartingChips      int
	StartingBigBlind   int
	BlindLevels        []int
	BlindLevelDuration time.Duration
	NextHandDelay      time.Duration
	StartGameDelay     time.Duration
	MaxPlayers         int
}

// DefaultOptions returns the default options for a table
func DefaultOptions() Options {
	levels := make([]int, len(DefaultBlindLevels))
	copy(levels, DefaultBlindLevels)

	return Options{
		StartingChips:      5000,
		StartingBigBlind:   20,
		BlindLevels:        levels,
		BlindLevelDuration: 10 * time.Minute,
		NextHandDelay:      5 * time.Second,
		StartGameDelay:     3 * time.Second,
		MaxPlayers:         9,
	}
}

func validateOptions(opts Options) error {
	if opts.StartingChips <= 0 {
		return errors.New("starting chips must be greater than zero")
	}

	if len(opts.BlindLevels) == 0 {
		return errNoBlindLevels
	}

	prev := 0
	for _, level := range opts.BlindLevels {
		if level <= prev {
			return errInvalidBlindLevels
		}

		prev = level
	}

	if opts.StartingBigBlind != 0 && blindLevelIndex(opts.BlindLevels, opts.StartingBigBlind) < 0 {
		return fmt.Errorf("starting big blind of %d must be one of the blind levels", opts.StartingBigBlind)
	}

	if opts.MaxPlayers < 2 {
		return errors.New("max players must be at least two")
	}

	if opts.BlindLevelDuration < 0 || opts.NextHandDelay < 0 || opts.StartGameDelay < 0 {
		return errors.New("delays cannot be negative")
	}

	return nil
}

// maxPlayers is the configured limit, bounded by what a single deck can deal
func (o Options) maxPlayers() int {
	if o.MaxPlayers > deck.MaxPlayers {
		return deck.MaxPlayers
	}

	return o.MaxPlayers
}

func blindLevelIndex(levels []int, bigBlind int) int {
	for i, level := range levels {
		if level == bigBlind {
			return i
		}
	}

	return -1
}
