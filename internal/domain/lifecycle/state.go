package lifecycle

import (
	"sort"

	"venue_backoffice/internal/domain/entities"
)

// State is bound to one record and exposes exactly the transitions its
// current status allows. Any other action is rejected with
// ErrInvalidTransition: a missing edge is a deliberate denial.
//
// States are cheap; build one per call with Machine.StateOf and drop it.
type State[T entities.Record, S ~string] struct {
	status S
	record *T
	edges  map[Action]Transition[T, S]
}

// Status is the status the state was resolved for.
func (s *State[T, S]) Status() S { return s.status }

// Terminal reports whether the record can no longer change status.
func (s *State[T, S]) Terminal() bool { return len(s.edges) == 0 }

// Permits reports whether the status defines action, ignoring guards.
func (s *State[T, S]) Permits(action Action) bool {
	_, ok := s.edges[action]
	return ok
}

// Actions lists the transitions defined for the status, sorted.
func (s *State[T, S]) Actions() []Action {
	seen := make(map[Action]bool, len(s.edges))
	for a := range s.edges {
		seen[a] = true
	}
	return sortedActions(seen)
}

// Available lists the actions whose guards pass for actor. Payload
// validation is not applied, so the result is what a UI should offer.
func (s *State[T, S]) Available(actor entities.Actor) []Action {
	in := Input{Actor: actor}
	var out []Action
	for _, a := range s.Actions() {
		if _, err := s.resolve(a, in, false); err == nil {
			out = append(out, a)
		}
	}
	return out
}

// resolve returns the transition for action after running its guards and,
// when withPayload is set, its validators.
func (s *State[T, S]) resolve(action Action, in Input, withPayload bool) (Transition[T, S], error) {
	t, ok := s.edges[action]
	if !ok {
		return Transition[T, S]{}, ErrInvalidTransition
	}
	if in.Actor.ID == "" {
		return Transition[T, S]{}, Forbidden("an identified actor is required")
	}
	for _, g := range t.Guards {
		if err := g(s.record, in); err != nil {
			return Transition[T, S]{}, err
		}
	}
	if withPayload {
		for _, v := range t.Validate {
			if err := v(s.record, in); err != nil {
				return Transition[T, S]{}, err
			}
		}
	}
	return t, nil
}

func sortedActions(set map[Action]bool) []Action {
	out := make([]Action, 0, len(set))
	for a := range set {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
