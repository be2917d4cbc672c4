package potmanager

import "sort"

// Pot is a main pot or a side pot
type Pot struct {
	Amount int `json:"amount"`
	// Eligible are the ids of the players who can win the pot
	Eligible []string `json:"eligible"`
}

// IsEligible returns true if the player can win the pot
func (p *Pot) IsEligible(id string) bool {
	for _, e := range p.Eligible {
		if e == id {
			return true
		}
	}

	return false
}

// BuildPots splits the hand's contributions into a main pot and side pots
// Every all-in amount of a non-folded player closes a pot, and the largest live contribution closes
// the last one. Only non-folded players who contributed at least that amount can win it. Chips from
// folded players still count towards the pots they reach.
func BuildPots(contributors []Contributor) Pots {
	levelSet := make(map[int]bool)
	total := 0
	highest := 0
	for _, c := range contributors {
		total += c.Contribution()
		if c.IsFolded() || c.Contribution() == 0 {
			continue
		}

		if c.IsAllIn() {
			levelSet[c.Contribution()] = true
		}

		if c.Contribution() > highest {
			highest = c.Contribution()
		}
	}

	if highest > 0 {
		levelSet[highest] = true
	}

	if total == 0 {
		return Pots{}
	}

	levels := make([]int, 0, len(levelSet))
	for level := range levelSet {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	pots := make(Pots, 0, len(levels))
	prevLevel := 0
	for _, level := range levels {
		pot := &Pot{Eligible: make([]string, 0)}
		for _, c := range contributors {
			amount := c.Contribution()
			if amount > level {
				amount = level
			}

			if amount > prevLevel {
				pot.Amount += amount - prevLevel
			}

			// a live player with chips behind can still match any level
			if !c.IsFolded() && (c.Contribution() >= level || !c.IsAllIn()) {
				pot.Eligible = append(pot.Eligible, c.ID())
			}
		}

		pots = append(pots, pot)
		prevLevel = level
	}

	// anything above the highest live contribution came from folded players. nobody is
	// eligible for it on its own, so it belongs to the last pot
	excess := total - pots.Total()
	if excess > 0 {
		if len(pots) == 0 {
			pot := &Pot{Eligible: make([]string, 0)}
			for _, c := range contributors {
				if !c.IsFolded() {
					pot.Eligible = append(pot.Eligible, c.ID())
				}
			}

			pots = append(pots, pot)
		}

		pots[len(pots)-1].Amount += excess
	}

	return pots
}
