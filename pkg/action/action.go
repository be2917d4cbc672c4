package action

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Action represents an action a player can take
type Action string

// action constants
const (
	Bet   Action = "bet"
	Call  Action = "call"
	Check Action = "check"
	Fold  Action = "fold"
)

var allowedActions = map[Action]bool{
	Bet:   true,
	Call:  true,
	Check: true,
	Fold:  true,
}

// FromString returns an action for the given string
func FromString(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := allowedActions[a]; ok {
		return a, nil
	}

	return "", fmt.Errorf("unknown action for identifier: %s", s)
}

func (a Action) String() string {
	switch a {
	case Bet:
		return "Bet"
	case Call:
		return "Call"
	case Check:
		return "Check"
	case Fold:
		return "Fold"
	}

	panic("unknown action")
}

// MarshalJSON encodes the action into JSON
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}{
		ID:   string(a),
		Name: a.String(),
	})
}

// UnmarshalJSON accepts either the bare identifier or the encoded object
func (a *Action) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err != nil {
		var obj struct {
			ID string `json:"id"`
		}

		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}

		id = obj.ID
	}

	parsed, err := FromString(id)
	if err != nil {
		return err
	}

	*a = parsed
	return nil
}

// IsValid returns true if the action is permitted
func (a Action) IsValid() bool {
	_, ok := allowedActions[a]
	return ok
}

// LogMessage returns a message formatted for the log
func (a Action) LogMessage(amount int) string {
	switch a {
	case Fold:
		return "folded"
	case Check:
		return "checked"
	case Call:
		return fmt.Sprintf("called %s", FormatChips(amount))
	case Bet:
		return fmt.Sprintf("bet %s", FormatChips(amount))
	}

	return ""
}

// StatusLabel is the short status shown next to a player's seat, i.e., "bet $1,000"
func (a Action) StatusLabel(amount int) string {
	switch a {
	case Bet, Call:
		return fmt.Sprintf("%s %s", string(a), FormatChips(amount))
	}

	return string(a)
}

// FormatChips formats a chip amount in dollars with thousands separators
func FormatChips(amount int) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return sign + "$" + b.String()
}
