package game

import (
	"errors"
	"fmt"
)

// Configuration errors. Surfaced by NewSession; a session with a bad
// configuration never begins.
var (
	ErrTooFewSeats     = errors.New("too_few_seats")
	ErrTooFewAgents    = errors.New("too_few_agents")
	ErrTooManyAgents   = errors.New("too_many_agents")
	ErrBadInitialStack = errors.New("bad_initial_stack")
	ErrBadBlinds       = errors.New("bad_blinds")
	ErrBadHandCount    = errors.New("bad_hand_count")
)

// InvariantViolation is fatal to the round it occurs in: the round is aborted
// without awarding chips and the session is flagged for manual review.
type InvariantViolation struct {
	GameID  string
	RoundID string
	Reason  string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant_violation: %s (game %s round %s)", e.Reason, e.GameID, e.RoundID)
}
