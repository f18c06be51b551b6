package domain

import "fmt"

// RepositoryError wraps a persistence-layer failure. It is bubbled
// unchanged to the caller and never retried inside the core (spec.md §7).
type RepositoryError struct {
	Op  string
	Err error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository: %s: %v", e.Op, e.Err)
}

func (e *RepositoryError) Unwrap() error { return e.Err }

// NewRepositoryError wraps err as a RepositoryError for operation op. It
// returns nil if err is nil, so it is safe to call unconditionally.
func NewRepositoryError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &RepositoryError{Op: op, Err: err}
}

// ValidationError reports one or more user-input violations, per the
// checks composed by C2 (spec.md §4.2).
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	if len(e.Reasons) == 1 {
		return "validation failed: " + e.Reasons[0]
	}
	return fmt.Sprintf("validation failed: %d reasons (%v)", len(e.Reasons), e.Reasons)
}

// NotFoundError reports a missing Tournament, Player, Round, or Game.
type NotFoundError struct {
	Kind string
	ID   any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %v", e.Kind, e.ID)
}

// PairingImpossibleError reports that Swiss backtracking exhausted its
// budget without finding a legal pairing (spec.md §4.1 step 7).
type PairingImpossibleError struct {
	ScoreGroup string
	Constraint string
}

func (e *PairingImpossibleError) Error() string {
	return fmt.Sprintf("pairing impossible in score group %q: %s", e.ScoreGroup, e.Constraint)
}

// InvalidRoundError reports a round number out of range for the current
// format and state.
type InvalidRoundError struct {
	Round  int
	Reason string
}

func (e *InvalidRoundError) Error() string {
	return fmt.Sprintf("invalid round %d: %s", e.Round, e.Reason)
}

// InsufficientPlayersError reports fewer than two active players.
type InsufficientPlayersError struct {
	Active int
}

func (e *InsufficientPlayersError) Error() string {
	return fmt.Sprintf("insufficient players: %d active, need at least 2", e.Active)
}

// ErrCancelled is returned when a standings computation was cancelled
// cooperatively (spec.md §5, §7).
var ErrCancelled = fmt.Errorf("standings computation cancelled")
