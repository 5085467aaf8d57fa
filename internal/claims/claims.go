// Package claims derives the presentation state of a prize-claim page from a
// winner record. All functions are pure.
package claims

import "time"

// State is the claim-page branch for a winner.
type State string

const (
	// StateOpen means the winner may still submit the claim form.
	StateOpen State = "open"
	// StateExpired means the deadline passed before a claim was submitted.
	StateExpired State = "expired"
	// StateClaimed means a claim exists for this winner.
	StateClaimed State = "claimed"
)

// Resolve returns the claim-page state for a winner.
//
// A submitted claim always wins over an elapsed deadline: a claim filed
// before the deadline stays CLAIMED even when resolved after the deadline
// passes. Expiry only applies while no claim exists and a deadline is set.
func Resolve(claimedAt, deadline *time.Time, now time.Time) State {
	if claimedAt != nil {
		return StateClaimed
	}
	if deadline != nil && now.After(*deadline) {
		return StateExpired
	}
	return StateOpen
}

// RequiresW9 reports whether a W-9 document is required for a claim.
// All three conditions must hold: the giveaway asks for W-9s, the prize has
// a value, and that value meets the threshold. An unset prize value never
// triggers the requirement.
func RequiresW9(requireW9 bool, prizeValue *float64, threshold float64) bool {
	return requireW9 && prizeValue != nil && *prizeValue >= threshold
}
