package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"venue_backoffice/internal/domain/entities"
)

// Outcome classifies a Fire call for metrics.
type Outcome string

const (
	OutcomeApplied  Outcome = "applied"
	OutcomeInvalid  Outcome = "invalid"
	OutcomeDenied   Outcome = "denied"
	OutcomeMissing  Outcome = "missing"
	OutcomeConflict Outcome = "conflict"
	OutcomeFailed   Outcome = "failed"
)

// Observer receives one call per Fire.
type Observer interface {
	ObserveTransition(kind entities.RecordKind, action Action, outcome Outcome, elapsed time.Duration)
}

type options struct {
	now      func() time.Time
	logger   *zap.Logger
	observer Observer
}

type Option func(*options)

// WithClock sets the time source used when Input.At is zero.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithObserver(obs Observer) Option {
	return func(o *options) { o.observer = obs }
}

// Machine applies a Definition to records held in a Store.
type Machine[T entities.Record, S ~string] struct {
	kind     entities.RecordKind
	def      Definition[T, S]
	store    Store[T]
	now      func() time.Time
	logger   *zap.Logger
	observer Observer
}

// NewMachine panics when def references statuses outside its lifecycle;
// definitions are static tables and a broken one is a programming error.
func NewMachine[T entities.Record, S ~string](def Definition[T, S], store Store[T], opts ...Option) *Machine[T, S] {
	if err := def.Check(); err != nil {
		panic(fmt.Sprintf("lifecycle: %v", err))
	}
	o := options{now: time.Now, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	var zero T
	return &Machine[T, S]{
		kind:     zero.RecordKind(),
		def:      def,
		store:    store,
		now:      o.now,
		logger:   o.logger,
		observer: o.observer,
	}
}

func (m *Machine[T, S]) Kind() entities.RecordKind { return m.kind }

func (m *Machine[T, S]) Definition() Definition[T, S] { return m.def }

// StateOf returns the State for the record's current status. A status outside
// the lifecycle fails with ErrUnknownStatus instead of falling back to any
// state.
func (m *Machine[T, S]) StateOf(rec *T) (*State[T, S], error) {
	status := m.def.Status(rec)
	if !m.def.Valid(status) {
		return nil, fmt.Errorf("%w: %s %s has status %q", ErrUnknownStatus, m.kind, (*rec).RecordID(), status)
	}
	st := &State[T, S]{status: status, record: rec}
	if m.def.Sealed == nil || !m.def.Sealed(rec) {
		st.edges = m.def.Transitions[status]
	}
	return st, nil
}

// Available lists the actions actor may currently perform on the record.
func (m *Machine[T, S]) Available(ctx context.Context, id string, actor entities.Actor) ([]Action, error) {
	rec, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	st, err := m.StateOf(&rec)
	if err != nil {
		return nil, err
	}
	return st.Available(actor), nil
}

// Evaluate reports, without writing anything, the error Fire would return
// for action against the record's current status. Callers use it before
// side effects that cannot be rolled back, such as charging a payment.
func (m *Machine[T, S]) Evaluate(ctx context.Context, id string, action Action, in Input) error {
	rec, err := m.store.Get(ctx, id)
	if err != nil {
		return err
	}
	st, err := m.StateOf(&rec)
	if err != nil {
		return err
	}
	if _, err := st.resolve(action, in, true); err != nil {
		return &TransitionError{Kind: m.kind, ID: id, From: string(st.Status()), Action: action, Err: err}
	}
	return nil
}

// Fire runs action on the record identified by id.
//
// The record is re-read inside the store transaction, so the decision is
// made against its committed status. On success the new status, the effect
// writes and one audit entry are committed together. Rejections are returned
// as *TransitionError wrapping ErrInvalidTransition or ErrGuardDenied; store
// errors are returned as they are.
func (m *Machine[T, S]) Fire(ctx context.Context, id string, action Action, in Input) (T, error) {
	started := time.Now()
	recordedAt := m.now()
	metadata := in.Metadata
	if in.At.IsZero() {
		in.At = recordedAt
	} else if !in.At.Equal(recordedAt) {
		metadata = make(map[string]string, len(in.Metadata)+1)
		for k, v := range in.Metadata {
			metadata[k] = v
		}
		metadata[MetadataEffectiveAt] = in.At.UTC().Format(time.RFC3339Nano)
	}

	var from, to S
	out, err := m.store.Transact(ctx, id, func(tx Tx, rec *T) error {
		st, err := m.StateOf(rec)
		if err != nil {
			return err
		}
		from = st.Status()

		t, err := st.resolve(action, in, true)
		if err != nil {
			return &TransitionError{Kind: m.kind, ID: id, From: string(from), Action: action, Err: err}
		}

		m.def.SetStatus(rec, t.To)
		to = t.To
		if t.Effect != nil {
			if err := t.Effect(ctx, Change[T]{Record: rec, Input: in, At: in.At, Tx: tx}); err != nil {
				return err
			}
		}

		return tx.AppendAudit(ctx, entities.AuditEntry{
			RecordKind: m.kind,
			RecordID:   id,
			Action:     string(action),
			FromStatus: string(from),
			ToStatus:   string(to),
			ActorID:    in.Actor.ID,
			ActorGroup: in.Actor.Group,
			Note:       in.Note,
			Metadata:   metadata,
			CreatedAt:  recordedAt,
		})
	})

	outcome := outcomeOf(err)
	if m.observer != nil {
		m.observer.ObserveTransition(m.kind, action, outcome, time.Since(started))
	}

	fields := []zap.Field{
		zap.String("kind", string(m.kind)),
		zap.String("id", id),
		zap.String("action", string(action)),
		zap.String("actor", in.Actor.ID),
		zap.String("from", string(from)),
	}
	switch outcome {
	case OutcomeApplied:
		m.logger.Info("transition applied", append(fields, zap.String("to", string(to)))...)
	case OutcomeInvalid, OutcomeDenied, OutcomeMissing, OutcomeConflict:
		m.logger.Warn("transition rejected", append(fields, zap.String("outcome", string(outcome)), zap.Error(err))...)
	default:
		m.logger.Error("transition failed", append(fields, zap.Error(err))...)
	}

	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// MetadataEffectiveAt is the audit metadata key holding Input.At when it
// differs from the time the transition was recorded.
const MetadataEffectiveAt = "effective_at"

func outcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeApplied
	case errors.Is(err, ErrInvalidTransition):
		return OutcomeInvalid
	case errors.Is(err, ErrGuardDenied):
		return OutcomeDenied
	case errors.Is(err, ErrNotFound):
		return OutcomeMissing
	case errors.Is(err, ErrConflict):
		return OutcomeConflict
	default:
		return OutcomeFailed
	}
}
