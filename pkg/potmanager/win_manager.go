package potmanager

import (
	"sort"

	"holdem-server/pkg/poker"
)

type tier struct {
	rank         poker.HandRank
	participants []string
}

// WinManager groups players by the strength of their hands
type WinManager struct {
	tiers []*tier
}

// NewWinManager returns a new WinManager
func NewWinManager() *WinManager {
	return &WinManager{
		tiers: make([]*tier, 0),
	}
}

// AddParticipant records a player's hand rank
func (w *WinManager) AddParticipant(id string, rank poker.HandRank) {
	for _, t := range w.tiers {
		if t.rank.Ties(rank) {
			t.participants = append(t.participants, id)
			return
		}
	}

	w.tiers = append(w.tiers, &tier{
		rank:         rank,
		participants: []string{id},
	})
}

// GetSortedTiers returns the players grouped by equal hands, strongest first
func (w *WinManager) GetSortedTiers() [][]string {
	tiers := make([]*tier, len(w.tiers))
	copy(tiers, w.tiers)

	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].rank.Beats(tiers[j].rank)
	})

	tieredParticipants := make([][]string, len(tiers))
	for i, t := range tiers {
		tieredParticipants[i] = t.participants
	}

	return tieredParticipants
}
