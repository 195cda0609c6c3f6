package lifecycle

import (
	"errors"
	"fmt"

	"venue_backoffice/internal/domain/entities"
)

var (
	// ErrInvalidTransition is returned when the record's current status
	// defines no transition with the requested action.
	ErrInvalidTransition = errors.New("transition not permitted from current state")

	// ErrGuardDenied is returned when a transition exists but a guard
	// rejected it. ErrForbidden and ErrPrecondition refine it.
	ErrGuardDenied  = errors.New("transition denied")
	ErrForbidden    = fmt.Errorf("%w: not permitted for actor", ErrGuardDenied)
	ErrPrecondition = fmt.Errorf("%w: precondition not met", ErrGuardDenied)

	// ErrUnknownStatus signals a record whose stored status is not part of
	// its lifecycle. It is a data integrity failure, never a user error.
	ErrUnknownStatus = errors.New("record holds a status outside its lifecycle")

	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")

	// ErrConflict is returned by stores using optimistic locking when another
	// transition committed first.
	ErrConflict = errors.New("record was modified concurrently")
)

// GuardError explains why a guard rejected a transition.
type GuardError struct {
	Cause  error
	Reason string
}

func (e *GuardError) Error() string { return e.Reason }

func (e *GuardError) Unwrap() error { return e.Cause }

// Forbidden rejects a transition because of who is performing it.
func Forbidden(format string, args ...any) error {
	return &GuardError{Cause: ErrForbidden, Reason: fmt.Sprintf(format, args...)}
}

// Precondition rejects a transition because of the record or its payload.
func Precondition(format string, args ...any) error {
	return &GuardError{Cause: ErrPrecondition, Reason: fmt.Sprintf(format, args...)}
}

// TransitionError identifies the rejected transition.
type TransitionError struct {
	Kind   entities.RecordKind
	ID     string
	From   string
	Action Action
	Err    error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s %s: cannot %s from status %q: %v", e.Kind, e.ID, e.Action, e.From, e.Err)
}

func (e *TransitionError) Unwrap() error { return e.Err }
