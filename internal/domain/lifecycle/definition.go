package lifecycle

import (
	"context"
	"fmt"
	"time"

	"venue_backoffice/internal/domain/entities"
)

// Action names a transition, e.g. "open" or "refund_partial".
type Action string

// Input carries the caller-supplied arguments of one transition call.
//
// At is the instant the transition takes effect at, used by the date
// stamping effects. The machine falls back to its clock when it is zero.
// The audit entry is always stamped with the machine clock.
type Input struct {
	Actor    entities.Actor
	At       time.Time
	Note     string
	Amount   float64
	Metadata map[string]string
}

// Guard decides whether a transition may run for a record and actor. Guards
// are also evaluated to compute which actions to offer, so they must only
// look at the record and in.Actor, never at the payload.
type Guard[T any] func(rec *T, in Input) error

// Validator checks the payload of a transition call.
type Validator[T any] func(rec *T, in Input) error

// Change is handed to an Effect after the new status has been set on Record.
type Change[T any] struct {
	Record *T
	Input  Input
	At     time.Time
	Tx     Tx
}

// Effect applies the side effects of a transition inside its transaction.
// Returning an error rolls back the whole transition.
type Effect[T any] func(ctx context.Context, c Change[T]) error

// Transition is one outgoing edge of a status.
type Transition[T any, S ~string] struct {
	To       S
	Guards   []Guard[T]
	Validate []Validator[T]
	Effect   Effect[T]
}

// Definition is the transition table of one entity type.
//
// A status missing from Transitions, or mapped to an empty set, is terminal.
// Sealed, when set, freezes a record regardless of its status.
type Definition[T entities.Record, S ~string] struct {
	Initial     S
	Statuses    []S
	Status      func(*T) S
	SetStatus   func(*T, S)
	Sealed      func(*T) bool
	Transitions map[S]map[Action]Transition[T, S]
}

// Valid reports whether s belongs to the lifecycle.
func (d Definition[T, S]) Valid(s S) bool {
	for _, v := range d.Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (d Definition[T, S]) Terminal(s S) bool {
	return len(d.Transitions[s]) == 0
}

// Actions returns every action defined anywhere in the table, sorted.
func (d Definition[T, S]) Actions() []Action {
	seen := map[Action]bool{}
	for _, edges := range d.Transitions {
		for a := range edges {
			seen[a] = true
		}
	}
	return sortedActions(seen)
}

// Check verifies that the table only references known statuses.
func (d Definition[T, S]) Check() error {
	if d.Status == nil || d.SetStatus == nil {
		return fmt.Errorf("definition requires status accessors")
	}
	if !d.Valid(d.Initial) {
		return fmt.Errorf("initial status %q is not part of the lifecycle", d.Initial)
	}
	for from, edges := range d.Transitions {
		if !d.Valid(from) {
			return fmt.Errorf("transition source %q is not part of the lifecycle", from)
		}
		for action, t := range edges {
			if action == "" {
				return fmt.Errorf("empty action from %q", from)
			}
			if !d.Valid(t.To) {
				return fmt.Errorf("%s from %q targets unknown status %q", action, from, t.To)
			}
		}
	}
	return nil
}
