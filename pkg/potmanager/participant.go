package potmanager

// Contributor is a player who has put chips into the hand
type Contributor interface {
	ID() string
	// Contribution is the total amount the player put in over the whole hand
	Contribution() int
	IsFolded() bool
	// IsAllIn is true when the player has no chips behind
	IsAllIn() bool
}
