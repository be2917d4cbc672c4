package potmanager

import (
	"errors"
	"sort"
)

// ErrNoWinner is returned when a pot has no eligible player in any tier
var ErrNoWinner = errors.New("pot has no eligible winner")

// PayWinners splits each pot among its best eligible players
// tiers must be sorted strongest first. order is the seating order starting with the first
// seat left of the button, and decides who receives the odd chips of a split pot.
func PayWinners(pots Pots, tiers [][]string, order []string) (map[string]int, error) {
	seatIndex := make(map[string]int, len(order))
	for i, id := range order {
		seatIndex[id] = i
	}

	payouts := make(map[string]int)
	for _, pot := range pots {
		if pot.Amount == 0 {
			continue
		}

		winners := potWinners(pot, tiers)
		if len(winners) == 0 {
			return nil, ErrNoWinner
		}

		sort.SliceStable(winners, func(i, j int) bool {
			return seatIndex[winners[i]] < seatIndex[winners[j]]
		})

		share := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)
		for i, id := range winners {
			payouts[id] += share
			if i < remainder {
				payouts[id]++
			}
		}
	}

	return payouts, nil
}

// potWinners returns the players from the strongest tier who are eligible for the pot
func potWinners(pot *Pot, tiers [][]string) []string {
	for _, participants := range tiers {
		winners := make([]string, 0, len(participants))
		for _, id := range participants {
			if pot.IsEligible(id) {
				winners = append(winners, id)
			}
		}

		if len(winners) > 0 {
			return winners
		}
	}

	return nil
}
