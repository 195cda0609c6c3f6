package transitions_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue_backoffice/internal/adapter/persistence/memory"
	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
	"venue_backoffice/internal/domain/transitions"
)

var (
	now     = time.Date(2026, 1, 31, 15, 30, 0, 0, time.UTC)
	manager = entities.Actor{ID: "mgr-1", Group: entities.UserGroupManager}
	clerk   = entities.Actor{ID: "emp-1", Group: entities.UserGroupEmployee}
)

type fixture[T entities.Record, S ~string] struct {
	db      *memory.Database
	records *memory.Records[T]
	machine *lifecycle.Machine[T, S]
}

func newFixture[T entities.Record, S ~string](t *testing.T, def lifecycle.Definition[T, S], seed ...T) fixture[T, S] {
	t.Helper()
	db := memory.NewDatabase()
	records := memory.NewRecords[T](db)
	for _, rec := range seed {
		_, err := records.Create(context.Background(), rec)
		require.NoError(t, err)
	}
	return fixture[T, S]{
		db:      db,
		records: records,
		machine: lifecycle.NewMachine(def, lifecycle.Store[T](records), lifecycle.WithClock(func() time.Time { return now })),
	}
}

func (f fixture[T, S]) fire(id string, action lifecycle.Action, in lifecycle.Input) (T, error) {
	if in.At.IsZero() {
		in.At = now
	}
	return f.machine.Fire(context.Background(), id, action, in)
}

func (f fixture[T, S]) stored(t *testing.T, id string) T {
	t.Helper()
	rec, err := f.records.Get(context.Background(), id)
	require.NoError(t, err)
	return rec
}

func (f fixture[T, S]) outbox(t *testing.T) []entities.OutboxMessage {
	t.Helper()
	msgs, err := f.db.ListPending(context.Background(), now.AddDate(1, 0, 0), 0)
	require.NoError(t, err)
	return msgs
}

// addMetric writes a reading inside a transaction on its lease.
func addMetric(t *testing.T, leases *memory.Records[entities.Lease], m entities.UtilityMetric) {
	t.Helper()
	_, err := leases.Transact(context.Background(), m.LeaseID, func(tx lifecycle.Tx, _ *entities.Lease) error {
		return tx.AddUtilityMetric(context.Background(), m)
	})
	require.NoError(t, err)
}

// exerciseTable fires every action of def from every status. Defined edges
// must land on their target and write one audit entry; every other pair must
// fail with ErrInvalidTransition and leave the record untouched.
func exerciseTable[T entities.Record, S ~string](t *testing.T, def lifecycle.Definition[T, S], seed func(id string, s S) T) {
	in := lifecycle.Input{Actor: manager, Note: "checked on site", Amount: 100}
	for _, status := range def.Statuses {
		for _, action := range def.Actions() {
			name := fmt.Sprintf("%s/%s", status, action)
			t.Run(name, func(t *testing.T) {
				rec := seed("rec-1", status)
				f := newFixture(t, def, rec)

				got, err := f.fire("rec-1", action, in)
				audit, auditErr := f.db.ListAudit(context.Background(), rec.RecordKind(), "rec-1")
				require.NoError(t, auditErr)

				edge, ok := def.Transitions[status][action]
				if !ok {
					require.ErrorIs(t, err, lifecycle.ErrInvalidTransition)
					assert.Equal(t, rec, f.stored(t, "rec-1"))
					assert.Empty(t, audit)
					return
				}
				require.NoError(t, err)
				assert.Equal(t, edge.To, def.Status(&got))
				require.Len(t, audit, 1)
				assert.Equal(t, string(status), audit[0].FromStatus)
				assert.Equal(t, string(edge.To), audit[0].ToStatus)
				assert.Equal(t, string(action), audit[0].Action)
			})
		}
	}
}

func TestTables(t *testing.T) {
	t.Run("lease", func(t *testing.T) {
		exerciseTable(t, transitions.Lease(), func(id string, s entities.LeaseStatus) entities.Lease {
			return entities.Lease{ID: id, TenantID: "t-1", Status: s}
		})
	})
	t.Run("invoice", func(t *testing.T) {
		exerciseTable(t, transitions.Invoice(), func(id string, s entities.InvoiceStatus) entities.Invoice {
			return entities.Invoice{ID: id, TenantID: "t-1", Status: s, Lines: []entities.InvoiceLine{{Description: "hall", Quantity: 1, UnitPrice: 100}}}
		})
	})
	t.Run("quotation", func(t *testing.T) {
		exerciseTable(t, transitions.Quotation(), func(id string, s entities.QuotationStatus) entities.Quotation {
			return entities.Quotation{ID: id, TenantID: "t-1", Status: s, Amount: 500}
		})
	})
	t.Run("deposit", func(t *testing.T) {
		exerciseTable(t, transitions.Deposit(), func(id string, s entities.DepositStatus) entities.Deposit {
			return entities.Deposit{ID: id, TenantID: "t-1", Status: s, Amount: 350, PaidAmount: 350}
		})
	})
}

func TestDefinitionsAreConsistent(t *testing.T) {
	require.NoError(t, transitions.Lease().Check())
	require.NoError(t, transitions.Invoice().Check())
	require.NoError(t, transitions.Quotation().Check())
	require.NoError(t, transitions.Deposit().Check())

	assert.True(t, transitions.Invoice().Terminal(entities.InvoiceStatusPaid))
	assert.True(t, transitions.Invoice().Terminal(entities.InvoiceStatusVoid))
	for _, s := range []entities.QuotationStatus{entities.QuotationStatusAccepted, entities.QuotationStatusDeclined, entities.QuotationStatusExpired} {
		assert.True(t, transitions.Quotation().Terminal(s), "quotation %s", s)
	}
	assert.Equal(t, entities.LeaseStatusRequest, transitions.Lease().Initial)
	assert.Equal(t, entities.InvoiceStatusDraft, transitions.Invoice().Initial)
	assert.Equal(t, entities.QuotationStatusDraft, transitions.Quotation().Initial)
	assert.Equal(t, entities.DepositStatusUnpaid, transitions.Deposit().Initial)
}

func TestInvoice(t *testing.T) {
	draft := entities.Invoice{
		ID:        "inv-1",
		TenantID:  "t-1",
		Status:    entities.InvoiceStatusDraft,
		Lines:     []entities.InvoiceLine{{Description: "main hall", Quantity: 1, UnitPrice: 100}},
		CreatedAt: now.Add(-time.Hour),
	}

	t.Run("open sets due date one month out", func(t *testing.T) {
		f := newFixture(t, transitions.Invoice(), draft)

		got, err := f.fire("inv-1", transitions.InvoiceOpen, lifecycle.Input{Actor: clerk})
		require.NoError(t, err)
		assert.Equal(t, entities.InvoiceStatusOpen, got.Status)
		require.NotNil(t, got.DueAt)
		assert.True(t, got.DueAt.Equal(now.AddDate(0, 1, 0)))

		want := draft
		want.Status = entities.InvoiceStatusOpen
		want.DueAt = got.DueAt
		assert.Equal(t, want, got, "only status and due_at change")

		msgs := f.outbox(t)
		require.Len(t, msgs, 1)
		assert.Equal(t, transitions.MessageInvoiceOpened, msgs[0].Type)
		assert.Equal(t, "t-1", msgs[0].Recipient)
		assert.Equal(t, "100.00", msgs[0].Payload["total"])
	})

	t.Run("open requires line items", func(t *testing.T) {
		empty := draft
		empty.Lines = nil
		f := newFixture(t, transitions.Invoice(), empty)

		_, err := f.fire("inv-1", transitions.InvoiceOpen, lifecycle.Input{Actor: clerk})
		require.ErrorIs(t, err, lifecycle.ErrPrecondition)
		assert.Equal(t, entities.InvoiceStatusDraft, f.stored(t, "inv-1").Status)
		assert.Empty(t, f.outbox(t))
	})

	t.Run("paid invoice cannot be voided", func(t *testing.T) {
		open := draft
		open.Status = entities.InvoiceStatusOpen
		f := newFixture(t, transitions.Invoice(), open)

		got, err := f.fire("inv-1", transitions.InvoicePay, lifecycle.Input{Actor: clerk})
		require.NoError(t, err)
		assert.Equal(t, entities.InvoiceStatusPaid, got.Status)
		require.NotNil(t, got.PaidAt)
		assert.True(t, got.PaidAt.Equal(now))

		_, err = f.fire("inv-1", transitions.InvoiceVoid, lifecycle.Input{Actor: clerk})
		require.ErrorIs(t, err, lifecycle.ErrInvalidTransition)
		assert.Contains(t, err.Error(), `cannot void from status "paid"`)
	})

	t.Run("uncollected invoice paid stamps paid_at", func(t *testing.T) {
		uncollected := draft
		uncollected.Status = entities.InvoiceStatusUncollected
		f := newFixture(t, transitions.Invoice(), uncollected)

		got, err := f.fire("inv-1", transitions.InvoicePay, lifecycle.Input{Actor: clerk})
		require.NoError(t, err)
		require.NotNil(t, got.PaidAt)
		assert.True(t, got.PaidAt.Equal(now))
		assert.Nil(t, got.DueAt)
	})

	t.Run("void stamps cancelled_at", func(t *testing.T) {
		open := draft
		open.Status = entities.InvoiceStatusOpen
		f := newFixture(t, transitions.Invoice(), open)

		got, err := f.fire("inv-1", transitions.InvoiceVoid, lifecycle.Input{Actor: clerk})
		require.NoError(t, err)
		require.NotNil(t, got.CancelledAt)
		assert.True(t, got.CancelledAt.Equal(now))
	})
}

func TestQuotation(t *testing.T) {
	seed := entities.Quotation{ID: "q-1", TenantID: "t-1", Amount: 1200, Status: entities.QuotationStatusDraft}

	t.Run("open expires in two weeks", func(t *testing.T) {
		f := newFixture(t, transitions.Quotation(), seed)

		got, err := f.fire("q-1", transitions.QuotationOpen, lifecycle.Input{Actor: clerk})
		require.NoError(t, err)
		assert.Equal(t, entities.QuotationStatusOpen, got.Status)
		require.NotNil(t, got.ExpiresAt)
		assert.True(t, got.ExpiresAt.Equal(now.AddDate(0, 0, 14)))

		msgs := f.outbox(t)
		require.Len(t, msgs, 1)
		assert.Equal(t, transitions.MessageQuotationOpened, msgs[0].Type)
	})

	t.Run("decline sets declined and rejected_at", func(t *testing.T) {
		open := seed
		open.Status = entities.QuotationStatusOpen
		f := newFixture(t, transitions.Quotation(), open)

		got, err := f.fire("q-1", transitions.QuotationDecline, lifecycle.Input{Actor: clerk})
		require.NoError(t, err)
		assert.Equal(t, entities.QuotationStatusDeclined, got.Status)
		require.NotNil(t, got.RejectedAt)
		assert.True(t, got.RejectedAt.Equal(now))
		assert.Nil(t, got.ApprovedAt)
	})

	t.Run("accept stamps approved_at", func(t *testing.T) {
		open := seed
		open.Status = entities.QuotationStatusOpen
		f := newFixture(t, transitions.Quotation(), open)

		got, err := f.fire("q-1", transitions.QuotationAccept, lifecycle.Input{Actor: clerk})
		require.NoError(t, err)
		assert.Equal(t, entities.QuotationStatusAccepted, got.Status)
		require.NotNil(t, got.ApprovedAt)
		assert.Nil(t, got.RejectedAt)
	})

	t.Run("expire keeps the missed deadline", func(t *testing.T) {
		deadline := now.AddDate(0, 0, -1)
		open := seed
		open.Status = entities.QuotationStatusOpen
		open.ExpiresAt = &deadline
		f := newFixture(t, transitions.Quotation(), open)

		got, err := f.fire("q-1", transitions.QuotationExpire, lifecycle.Input{Actor: entities.SystemActor})
		require.NoError(t, err)
		assert.Equal(t, entities.QuotationStatusExpired, got.Status)
		require.NotNil(t, got.ExpiresAt)
		assert.True(t, got.ExpiresAt.Equal(deadline))
		require.NotNil(t, got.ExpiredAt)
		assert.True(t, got.ExpiredAt.Equal(now))
	})

	t.Run("terminal statuses reject everything", func(t *testing.T) {
		for _, s := range []entities.QuotationStatus{entities.QuotationStatusAccepted, entities.QuotationStatusDeclined, entities.QuotationStatusExpired} {
			q := seed
			q.Status = s
			f := newFixture(t, transitions.Quotation(), q)
			for _, a := range transitions.Quotation().Actions() {
				_, err := f.fire("q-1", a, lifecycle.Input{Actor: manager})
				assert.ErrorIs(t, err, lifecycle.ErrInvalidTransition, "%s/%s", s, a)
			}
		}
	})
}

func TestLease(t *testing.T) {
	t.Run("complete finalizes metrics and schedules feedback", func(t *testing.T) {
		f := newFixture(t, transitions.Lease(),
			entities.Lease{ID: "l-1", TenantID: "t-1", Status: entities.LeaseStatusConfirmed},
			entities.Lease{ID: "other", TenantID: "t-2", Status: entities.LeaseStatusConfirmed})
		for _, u := range []entities.UtilityKind{entities.UtilityElectricity, entities.UtilityWater} {
			addMetric(t, f.records, entities.UtilityMetric{LeaseID: "l-1", Utility: u, StartReading: 10, EndReading: 20})
		}
		addMetric(t, f.records, entities.UtilityMetric{LeaseID: "other", Utility: entities.UtilityGas})

		got, err := f.fire("l-1", transitions.LeaseComplete, lifecycle.Input{Actor: clerk})
		require.NoError(t, err)
		assert.Equal(t, entities.LeaseStatusFinalized, got.Status)

		metrics, err := f.db.ListMetrics(context.Background(), "l-1")
		require.NoError(t, err)
		require.Len(t, metrics, 2)
		for _, m := range metrics {
			assert.True(t, m.Finalized)
		}
		other, _ := f.db.ListMetrics(context.Background(), "other")
		assert.False(t, other[0].Finalized)

		msgs := f.outbox(t)
		require.Len(t, msgs, 1)
		assert.Equal(t, entities.OutboxTopicJob, msgs[0].Topic)
		assert.Equal(t, transitions.MessageFeedbackRequest, msgs[0].Type)
		assert.True(t, msgs[0].RunAt.Equal(now.AddDate(0, 2, 0)))
	})

	t.Run("cancelled request cannot be confirmed", func(t *testing.T) {
		f := newFixture(t, transitions.Lease(), entities.Lease{ID: "l-1", Status: entities.LeaseStatusRequest})

		got, err := f.fire("l-1", transitions.LeaseCancel, lifecycle.Input{Actor: clerk})
		require.NoError(t, err)
		assert.Equal(t, entities.LeaseStatusCancelled, got.Status)
		assert.Empty(t, got.CancellationReason)

		_, err = f.fire("l-1", transitions.LeaseConfirm, lifecycle.Input{Actor: clerk})
		require.ErrorIs(t, err, lifecycle.ErrInvalidTransition)
	})

	t.Run("cancelling a confirmed lease needs a reason", func(t *testing.T) {
		f := newFixture(t, transitions.Lease(), entities.Lease{ID: "l-1", Status: entities.LeaseStatusConfirmed})

		_, err := f.fire("l-1", transitions.LeaseCancel, lifecycle.Input{Actor: clerk, Note: "  "})
		require.ErrorIs(t, err, lifecycle.ErrPrecondition)

		got, err := f.fire("l-1", transitions.LeaseCancel, lifecycle.Input{Actor: clerk, Note: "venue flooded"})
		require.NoError(t, err)
		assert.Equal(t, "venue flooded", got.CancellationReason)
	})

	t.Run("confirm notifies the tenant", func(t *testing.T) {
		f := newFixture(t, transitions.Lease(), entities.Lease{ID: "l-1", TenantID: "t-9", Status: entities.LeaseStatusOption})

		_, err := f.fire("l-1", transitions.LeaseConfirm, lifecycle.Input{Actor: clerk})
		require.NoError(t, err)
		msgs := f.outbox(t)
		require.Len(t, msgs, 1)
		assert.Equal(t, transitions.MessageLeaseConfirmed, msgs[0].Type)
		assert.Equal(t, "t-9", msgs[0].Recipient)
	})

	t.Run("archived lease is sealed", func(t *testing.T) {
		f := newFixture(t, transitions.Lease(), entities.Lease{ID: "l-1", Status: entities.LeaseStatusFinalized})

		got, err := f.fire("l-1", transitions.LeaseArchive, lifecycle.Input{Actor: clerk})
		require.NoError(t, err)
		assert.Equal(t, entities.LeaseStatusFinalized, got.Status)
		require.NotNil(t, got.ArchivedAt)

		_, err = f.fire("l-1", transitions.LeaseArchive, lifecycle.Input{Actor: clerk})
		require.ErrorIs(t, err, lifecycle.ErrInvalidTransition)

		st, err := f.machine.StateOf(&got)
		require.NoError(t, err)
		assert.True(t, st.Terminal())
	})
}

func TestDeposit(t *testing.T) {
	paid := entities.Deposit{ID: "d-1", TenantID: "t-1", Amount: 350, PaidAmount: 350, Status: entities.DepositStatusPaid}

	t.Run("partial refund above paid amount is denied", func(t *testing.T) {
		f := newFixture(t, transitions.Deposit(), paid)

		_, err := f.fire("d-1", transitions.DepositRefundPartial, lifecycle.Input{Actor: manager, Amount: 400, Note: "damaged floor"})
		require.ErrorIs(t, err, lifecycle.ErrGuardDenied)
		require.ErrorIs(t, err, lifecycle.ErrPrecondition)
		assert.Equal(t, paid, f.stored(t, "d-1"))
	})

	t.Run("partial refund", func(t *testing.T) {
		f := newFixture(t, transitions.Deposit(), paid)

		_, err := f.fire("d-1", transitions.DepositRefundPartial, lifecycle.Input{Actor: manager, Amount: 50})
		require.ErrorIs(t, err, lifecycle.ErrPrecondition, "note is required")

		got, err := f.fire("d-1", transitions.DepositRefundPartial, lifecycle.Input{Actor: manager, Amount: 50, Note: "broken chair"})
		require.NoError(t, err)
		assert.Equal(t, entities.DepositStatusPartiallyRefunded, got.Status)
		assert.Equal(t, 50.0, got.RevokedAmount)
		assert.Equal(t, 300.0, got.RefundedAmount)
		assert.Equal(t, "broken chair", got.RefundNote)
		require.NotNil(t, got.RefundedAt)
	})

	t.Run("full refund", func(t *testing.T) {
		f := newFixture(t, transitions.Deposit(), paid)

		got, err := f.fire("d-1", transitions.DepositRefundFull, lifecycle.Input{Actor: manager})
		require.NoError(t, err)
		assert.Equal(t, entities.DepositStatusFullyRefunded, got.Status)
		assert.Equal(t, 350.0, got.RefundedAmount)
		assert.Zero(t, got.RevokedAmount)
	})

	t.Run("withdraw keeps the whole deposit", func(t *testing.T) {
		f := newFixture(t, transitions.Deposit(), paid)

		_, err := f.fire("d-1", transitions.DepositWithdraw, lifecycle.Input{Actor: manager})
		require.ErrorIs(t, err, lifecycle.ErrPrecondition)

		got, err := f.fire("d-1", transitions.DepositWithdraw, lifecycle.Input{Actor: manager, Note: "tenant left without notice"})
		require.NoError(t, err)
		assert.Equal(t, entities.DepositStatusWithdrawn, got.Status)
		assert.Equal(t, 350.0, got.RevokedAmount)
		assert.Zero(t, got.RefundedAmount)
	})

	t.Run("due refund then refund", func(t *testing.T) {
		f := newFixture(t, transitions.Deposit(), paid)

		got, err := f.fire("d-1", transitions.DepositDueRefund, lifecycle.Input{Actor: manager})
		require.NoError(t, err)
		assert.Equal(t, entities.DepositStatusDueRefund, got.Status)
		require.NotNil(t, got.RefundAt)

		got, err = f.fire("d-1", transitions.DepositRefundFull, lifecycle.Input{Actor: manager, At: now.Add(24 * time.Hour)})
		require.NoError(t, err)
		assert.Equal(t, entities.DepositStatusFullyRefunded, got.Status)
		assert.True(t, got.RefundedAt.Equal(now.Add(24*time.Hour)))
	})

	t.Run("refunds need a privileged group", func(t *testing.T) {
		f := newFixture(t, transitions.Deposit(), paid)

		for _, a := range []lifecycle.Action{transitions.DepositRefundFull, transitions.DepositWithdraw, transitions.DepositDueRefund} {
			_, err := f.fire("d-1", a, lifecycle.Input{Actor: clerk, Note: "n"})
			assert.ErrorIs(t, err, lifecycle.ErrForbidden, "action %s", a)
		}

		actions, err := f.machine.Available(context.Background(), "d-1", clerk)
		require.NoError(t, err)
		assert.Empty(t, actions)

		actions, err = f.machine.Available(context.Background(), "d-1", manager)
		require.NoError(t, err)
		assert.Equal(t, []lifecycle.Action{"due_refund", "refund_full", "refund_partial", "withdraw"}, actions)
	})

	t.Run("pay records the received amount", func(t *testing.T) {
		f := newFixture(t, transitions.Deposit(), entities.Deposit{ID: "d-2", Amount: 350, Status: entities.DepositStatusUnpaid})

		_, err := f.fire("d-2", transitions.DepositPay, lifecycle.Input{Actor: clerk})
		require.ErrorIs(t, err, lifecycle.ErrPrecondition)

		got, err := f.fire("d-2", transitions.DepositPay, lifecycle.Input{Actor: clerk, Amount: 350})
		require.NoError(t, err)
		assert.Equal(t, entities.DepositStatusPaid, got.Status)
		assert.Equal(t, 350.0, got.PaidAmount)
		require.NotNil(t, got.PaidAt)
	})
}

// failingStore runs transitions against a Tx whose audit writes fail.
type failingStore[T entities.Record] struct {
	lifecycle.Store[T]
}

type failingTx struct{ lifecycle.Tx }

func (failingTx) AppendAudit(context.Context, entities.AuditEntry) error {
	return errors.New("audit table unavailable")
}

func (s failingStore[T]) Transact(ctx context.Context, id string, fn func(lifecycle.Tx, *T) error) (T, error) {
	return s.Store.Transact(ctx, id, func(tx lifecycle.Tx, rec *T) error {
		return fn(failingTx{tx}, rec)
	})
}

func TestAuditFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	db := memory.NewDatabase()
	leases := memory.NewRecords[entities.Lease](db)
	seed := entities.Lease{ID: "l-1", Status: entities.LeaseStatusConfirmed}
	_, err := leases.Create(ctx, seed)
	require.NoError(t, err)
	addMetric(t, leases, entities.UtilityMetric{LeaseID: "l-1", Utility: entities.UtilityWater})

	m := lifecycle.NewMachine(transitions.Lease(), lifecycle.Store[entities.Lease](failingStore[entities.Lease]{leases}))
	_, err = m.Fire(ctx, "l-1", transitions.LeaseComplete, lifecycle.Input{Actor: clerk, At: now})
	require.Error(t, err)
	assert.NotErrorIs(t, err, lifecycle.ErrInvalidTransition)

	stored, err := leases.Get(ctx, "l-1")
	require.NoError(t, err)
	assert.Equal(t, seed, stored)

	metrics, _ := db.ListMetrics(ctx, "l-1")
	assert.False(t, metrics[0].Finalized)
	pending, _ := db.ListPending(ctx, now.AddDate(1, 0, 0), 0)
	assert.Empty(t, pending)
}
