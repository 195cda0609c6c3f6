package lifecycle_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
)

type fakeTx struct {
	audit     []entities.AuditEntry
	outbox    []entities.OutboxMessage
	failAudit bool
}

func (tx *fakeTx) AppendAudit(_ context.Context, e entities.AuditEntry) error {
	if tx.failAudit {
		return errors.New("audit unavailable")
	}
	tx.audit = append(tx.audit, e)
	return nil
}

func (tx *fakeTx) Enqueue(_ context.Context, m entities.OutboxMessage) error {
	tx.outbox = append(tx.outbox, m)
	return nil
}

func (tx *fakeTx) FinalizeUtilityMetrics(context.Context, string, time.Time) error { return nil }
func (tx *fakeTx) AddUtilityMetric(context.Context, entities.UtilityMetric) error { return nil }

// fakeStore commits a record and its audit entries only when fn succeeds.
type fakeStore struct {
	records   map[string]entities.Quotation
	audit     []entities.AuditEntry
	failAudit bool
}

func (s *fakeStore) Get(_ context.Context, id string) (entities.Quotation, error) {
	q, ok := s.records[id]
	if !ok {
		return entities.Quotation{}, lifecycle.ErrNotFound
	}
	return q, nil
}

func (s *fakeStore) Transact(ctx context.Context, id string, fn func(lifecycle.Tx, *entities.Quotation) error) (entities.Quotation, error) {
	q, err := s.Get(ctx, id)
	if err != nil {
		return entities.Quotation{}, err
	}
	tx := &fakeTx{failAudit: s.failAudit}
	if err := fn(tx, &q); err != nil {
		return entities.Quotation{}, err
	}
	s.records[id] = q
	s.audit = append(s.audit, tx.audit...)
	return q, nil
}

type observed struct {
	action  lifecycle.Action
	outcome lifecycle.Outcome
}

type recordingObserver struct{ calls []observed }

func (o *recordingObserver) ObserveTransition(_ entities.RecordKind, a lifecycle.Action, out lifecycle.Outcome, _ time.Duration) {
	o.calls = append(o.calls, observed{a, out})
}

func quotationDefinition() lifecycle.Definition[entities.Quotation, entities.QuotationStatus] {
	staff := func(_ *entities.Quotation, in lifecycle.Input) error {
		if in.Actor.Group == entities.UserGroupSystem {
			return lifecycle.Forbidden("staff only")
		}
		return nil
	}
	positive := func(_ *entities.Quotation, in lifecycle.Input) error {
		if in.Amount <= 0 {
			return lifecycle.Precondition("amount must be positive")
		}
		return nil
	}
	return lifecycle.Definition[entities.Quotation, entities.QuotationStatus]{
		Initial:   entities.QuotationStatusDraft,
		Statuses:  entities.QuotationStatuses,
		Status:    func(q *entities.Quotation) entities.QuotationStatus { return q.Status },
		SetStatus: func(q *entities.Quotation, s entities.QuotationStatus) { q.Status = s },
		Transitions: map[entities.QuotationStatus]map[lifecycle.Action]lifecycle.Transition[entities.Quotation, entities.QuotationStatus]{
			entities.QuotationStatusDraft: {
				"open": {
					To:       entities.QuotationStatusOpen,
					Validate: []lifecycle.Validator[entities.Quotation]{positive},
					Effect: func(_ context.Context, c lifecycle.Change[entities.Quotation]) error {
						c.Record.Amount = c.Input.Amount
						return nil
					},
				},
			},
			entities.QuotationStatusOpen: {
				"accept":  {To: entities.QuotationStatusAccepted, Guards: []lifecycle.Guard[entities.Quotation]{staff}},
				"decline": {To: entities.QuotationStatusDeclined},
			},
		},
	}
}

var (
	employee = entities.Actor{ID: "u-1", Group: entities.UserGroupEmployee}
	fixedAt  = time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
)

func newMachine(store *fakeStore, obs lifecycle.Observer) *lifecycle.Machine[entities.Quotation, entities.QuotationStatus] {
	opts := []lifecycle.Option{lifecycle.WithClock(func() time.Time { return fixedAt })}
	if obs != nil {
		opts = append(opts, lifecycle.WithObserver(obs))
	}
	return lifecycle.NewMachine(quotationDefinition(), store, opts...)
}

func TestMachine_Fire(t *testing.T) {
	t.Run("applies transition and writes audit", func(t *testing.T) {
		store := &fakeStore{records: map[string]entities.Quotation{"q-1": {ID: "q-1", Status: entities.QuotationStatusDraft}}}
		obs := &recordingObserver{}
		m := newMachine(store, obs)

		got, err := m.Fire(context.Background(), "q-1", "open", lifecycle.Input{Actor: employee, Amount: 90, Note: "first"})
		require.NoError(t, err)
		assert.Equal(t, entities.QuotationStatusOpen, got.Status)
		assert.Equal(t, 90.0, got.Amount)
		assert.Equal(t, entities.QuotationStatusOpen, store.records["q-1"].Status)

		require.Len(t, store.audit, 1)
		entry := store.audit[0]
		assert.Equal(t, entities.RecordKindQuotation, entry.RecordKind)
		assert.Equal(t, "q-1", entry.RecordID)
		assert.Equal(t, "open", entry.Action)
		assert.Equal(t, "draft", entry.FromStatus)
		assert.Equal(t, "open", entry.ToStatus)
		assert.Equal(t, "u-1", entry.ActorID)
		assert.Equal(t, "first", entry.Note)
		assert.True(t, entry.CreatedAt.Equal(fixedAt))

		assert.Equal(t, []observed{{"open", lifecycle.OutcomeApplied}}, obs.calls)
	})

	t.Run("undefined action is an invalid transition", func(t *testing.T) {
		store := &fakeStore{records: map[string]entities.Quotation{"q-1": {ID: "q-1", Status: entities.QuotationStatusDraft}}}
		obs := &recordingObserver{}
		m := newMachine(store, obs)

		_, err := m.Fire(context.Background(), "q-1", "accept", lifecycle.Input{Actor: employee})
		require.ErrorIs(t, err, lifecycle.ErrInvalidTransition)

		var te *lifecycle.TransitionError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, "draft", te.From)
		assert.Equal(t, lifecycle.Action("accept"), te.Action)
		assert.Equal(t, entities.QuotationStatusDraft, store.records["q-1"].Status)
		assert.Empty(t, store.audit)
		assert.Equal(t, lifecycle.OutcomeInvalid, obs.calls[0].outcome)
	})

	t.Run("terminal status rejects everything", func(t *testing.T) {
		store := &fakeStore{records: map[string]entities.Quotation{"q-1": {ID: "q-1", Status: entities.QuotationStatusAccepted}}}
		m := newMachine(store, nil)

		for _, a := range []lifecycle.Action{"open", "accept", "decline"} {
			_, err := m.Fire(context.Background(), "q-1", a, lifecycle.Input{Actor: employee, Amount: 1})
			assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition, "action %s", a)
		}
	})

	t.Run("guard denial leaves the record unchanged", func(t *testing.T) {
		store := &fakeStore{records: map[string]entities.Quotation{"q-1": {ID: "q-1", Status: entities.QuotationStatusOpen}}}
		m := newMachine(store, nil)

		_, err := m.Fire(context.Background(), "q-1", "accept", lifecycle.Input{Actor: entities.SystemActor})
		require.ErrorIs(t, err, lifecycle.ErrGuardDenied)
		require.ErrorIs(t, err, lifecycle.ErrForbidden)
		assert.Contains(t, err.Error(), "staff only")
		assert.Equal(t, entities.QuotationStatusOpen, store.records["q-1"].Status)
	})

	t.Run("payload validation failure is a precondition denial", func(t *testing.T) {
		store := &fakeStore{records: map[string]entities.Quotation{"q-1": {ID: "q-1", Status: entities.QuotationStatusDraft}}}
		m := newMachine(store, nil)

		_, err := m.Fire(context.Background(), "q-1", "open", lifecycle.Input{Actor: employee})
		require.ErrorIs(t, err, lifecycle.ErrPrecondition)
		assert.NotErrorIs(t, err, lifecycle.ErrForbidden)
	})

	t.Run("anonymous actor is forbidden", func(t *testing.T) {
		store := &fakeStore{records: map[string]entities.Quotation{"q-1": {ID: "q-1", Status: entities.QuotationStatusOpen}}}
		m := newMachine(store, nil)

		_, err := m.Fire(context.Background(), "q-1", "decline", lifecycle.Input{})
		require.ErrorIs(t, err, lifecycle.ErrForbidden)
	})

	t.Run("audit failure rolls back the status", func(t *testing.T) {
		store := &fakeStore{
			records:   map[string]entities.Quotation{"q-1": {ID: "q-1", Status: entities.QuotationStatusOpen}},
			failAudit: true,
		}
		obs := &recordingObserver{}
		m := newMachine(store, obs)

		_, err := m.Fire(context.Background(), "q-1", "decline", lifecycle.Input{Actor: employee})
		require.Error(t, err)
		assert.NotErrorIs(t, err, lifecycle.ErrInvalidTransition)
		assert.Equal(t, entities.QuotationStatusOpen, store.records["q-1"].Status)
		assert.Equal(t, lifecycle.OutcomeFailed, obs.calls[0].outcome)
	})

	t.Run("unknown status fails loudly", func(t *testing.T) {
		store := &fakeStore{records: map[string]entities.Quotation{"q-1": {ID: "q-1", Status: "rejected"}}}
		m := newMachine(store, nil)

		_, err := m.Fire(context.Background(), "q-1", "decline", lifecycle.Input{Actor: employee})
		require.ErrorIs(t, err, lifecycle.ErrUnknownStatus)
	})

	t.Run("missing record", func(t *testing.T) {
		obs := &recordingObserver{}
		m := newMachine(&fakeStore{records: map[string]entities.Quotation{}}, obs)

		_, err := m.Fire(context.Background(), "nope", "open", lifecycle.Input{Actor: employee, Amount: 1})
		require.ErrorIs(t, err, lifecycle.ErrNotFound)
		assert.Equal(t, lifecycle.OutcomeMissing, obs.calls[0].outcome)
	})

	t.Run("explicit instant is kept apart from the audit clock", func(t *testing.T) {
		store := &fakeStore{records: map[string]entities.Quotation{"q-1": {ID: "q-1", Status: entities.QuotationStatusOpen}}}
		m := newMachine(store, nil)
		at := fixedAt.Add(-48 * time.Hour)
		meta := map[string]string{"ref": "r-1"}

		_, err := m.Fire(context.Background(), "q-1", "decline", lifecycle.Input{Actor: employee, At: at, Metadata: meta})
		require.NoError(t, err)
		entry := store.audit[0]
		assert.True(t, entry.CreatedAt.Equal(fixedAt))
		assert.Equal(t, at.Format(time.RFC3339Nano), entry.Metadata[lifecycle.MetadataEffectiveAt])
		assert.Equal(t, "r-1", entry.Metadata["ref"])
		assert.NotContains(t, meta, lifecycle.MetadataEffectiveAt)
	})
}

func TestMachine_StateOf(t *testing.T) {
	m := newMachine(&fakeStore{}, nil)

	open := entities.Quotation{ID: "q-1", Status: entities.QuotationStatusOpen}
	st, err := m.StateOf(&open)
	require.NoError(t, err)
	assert.Equal(t, entities.QuotationStatusOpen, st.Status())
	assert.False(t, st.Terminal())
	assert.True(t, st.Permits("accept"))
	assert.False(t, st.Permits("open"))
	assert.Equal(t, []lifecycle.Action{"accept", "decline"}, st.Actions())

	// Guards filter what is offered, validators do not.
	assert.Equal(t, []lifecycle.Action{"decline"}, st.Available(entities.SystemActor))
	assert.Equal(t, []lifecycle.Action{"accept", "decline"}, st.Available(employee))
	assert.Empty(t, st.Available(entities.Actor{}))

	draft := entities.Quotation{ID: "q-2", Status: entities.QuotationStatusDraft}
	st, err = m.StateOf(&draft)
	require.NoError(t, err)
	assert.Equal(t, []lifecycle.Action{"open"}, st.Available(employee))

	expired := entities.Quotation{ID: "q-3", Status: entities.QuotationStatusExpired}
	st, err = m.StateOf(&expired)
	require.NoError(t, err)
	assert.True(t, st.Terminal())

	bogus := entities.Quotation{ID: "q-4", Status: "archived"}
	_, err = m.StateOf(&bogus)
	require.ErrorIs(t, err, lifecycle.ErrUnknownStatus)
}

func TestMachine_Available(t *testing.T) {
	store := &fakeStore{records: map[string]entities.Quotation{"q-1": {ID: "q-1", Status: entities.QuotationStatusOpen}}}
	m := newMachine(store, nil)

	actions, err := m.Available(context.Background(), "q-1", entities.SystemActor)
	require.NoError(t, err)
	assert.Equal(t, []lifecycle.Action{"decline"}, actions)

	_, err = m.Available(context.Background(), "missing", employee)
	require.ErrorIs(t, err, lifecycle.ErrNotFound)
}

func TestMachine_Evaluate(t *testing.T) {
	store := &fakeStore{records: map[string]entities.Quotation{"q-1": {ID: "q-1", Status: entities.QuotationStatusDraft}}}
	m := newMachine(store, nil)
	ctx := context.Background()

	require.NoError(t, m.Evaluate(ctx, "q-1", "open", lifecycle.Input{Actor: employee, Amount: 5}))
	require.ErrorIs(t, m.Evaluate(ctx, "q-1", "open", lifecycle.Input{Actor: employee}), lifecycle.ErrPrecondition)
	require.ErrorIs(t, m.Evaluate(ctx, "q-1", "accept", lifecycle.Input{Actor: employee}), lifecycle.ErrInvalidTransition)
	assert.Equal(t, entities.QuotationStatusDraft, store.records["q-1"].Status)
	assert.Empty(t, store.audit)
}

func TestDefinition_Check(t *testing.T) {
	def := quotationDefinition()
	require.NoError(t, def.Check())
	assert.Equal(t, []lifecycle.Action{"accept", "decline", "open"}, def.Actions())
	assert.True(t, def.Terminal(entities.QuotationStatusDeclined))
	assert.False(t, def.Terminal(entities.QuotationStatusDraft))

	broken := quotationDefinition()
	broken.Transitions[entities.QuotationStatusOpen]["reopen"] = lifecycle.Transition[entities.Quotation, entities.QuotationStatus]{To: "reopened"}
	assert.Error(t, broken.Check())
	assert.Panics(t, func() { lifecycle.NewMachine(broken, &fakeStore{}) })

	noAccessors := quotationDefinition()
	noAccessors.Status = nil
	assert.Error(t, noAccessors.Check())
}

func TestErrors(t *testing.T) {
	err := &lifecycle.TransitionError{
		Kind:   entities.RecordKindInvoice,
		ID:     "inv-1",
		From:   "paid",
		Action: "void",
		Err:    lifecycle.ErrInvalidTransition,
	}
	assert.Equal(t, `invoice inv-1: cannot void from status "paid": transition not permitted from current state`, err.Error())

	denied := lifecycle.Precondition("amount %.2f exceeds %.2f", 400.0, 350.0)
	assert.Equal(t, "amount 400.00 exceeds 350.00", denied.Error())
	assert.ErrorIs(t, denied, lifecycle.ErrGuardDenied)
	assert.ErrorIs(t, lifecycle.Forbidden("no"), lifecycle.ErrGuardDenied)
}
