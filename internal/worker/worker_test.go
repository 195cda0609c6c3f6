package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"venue_backoffice/internal/adapter/persistence/memory"
	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
	"venue_backoffice/internal/usecase"
	mock_interfaces "venue_backoffice/internal/usecase/interfaces/mocks"
)

var testNow = time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

type countingMetrics struct {
	published, failed map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{published: map[string]int{}, failed: map[string]int{}}
}

func (m *countingMetrics) Published(t string) { m.published[t]++ }
func (m *countingMetrics) Failed(t string)    { m.failed[t]++ }

// seedOutbox enqueues messages through a transition-like transaction.
func seedOutbox(t *testing.T, db *memory.Database, msgs ...entities.OutboxMessage) {
	t.Helper()
	ctx := context.Background()
	invoices := memory.NewRecords[entities.Invoice](db)
	_, err := invoices.Create(ctx, entities.Invoice{ID: "inv-1", Status: entities.InvoiceStatusDraft})
	require.NoError(t, err)
	_, err = invoices.Transact(ctx, "inv-1", func(tx lifecycle.Tx, _ *entities.Invoice) error {
		for _, m := range msgs {
			if err := tx.Enqueue(ctx, m); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestOutboxRelay_RelayOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes due messages and keeps failures pending", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		publisher := mock_interfaces.NewMockIPublisher(ctrl)
		db := memory.NewDatabase()
		seedOutbox(t, db,
			entities.OutboxMessage{ID: "m-1", Type: "invoice.opened", RunAt: testNow.Add(-time.Minute)},
			entities.OutboxMessage{ID: "m-2", Type: "lease.confirmed", RunAt: testNow},
			entities.OutboxMessage{ID: "m-3", Type: "lease.feedback_request", RunAt: testNow.AddDate(0, 2, 0)},
		)
		metrics := newCountingMetrics()
		relay := NewOutboxRelay(db, publisher, metrics, RelayConfig{BatchSize: 10}, nil)
		relay.now = func() time.Time { return testNow }

		publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(2).DoAndReturn(
			func(_ context.Context, m entities.OutboxMessage) error {
				if m.ID == "m-1" {
					return errors.New("sns unavailable")
				}
				return nil
			},
		)

		assert.Equal(t, 1, relay.RelayOnce(ctx))
		assert.Equal(t, 1, metrics.published["lease.confirmed"])
		assert.Equal(t, 1, metrics.failed["invoice.opened"])

		pending, err := db.ListPending(ctx, testNow, 0)
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, "m-1", pending[0].ID)
	})

	t.Run("batch size limits a poll", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		publisher := mock_interfaces.NewMockIPublisher(ctrl)
		db := memory.NewDatabase()
		seedOutbox(t, db,
			entities.OutboxMessage{ID: "m-1", Type: "a", RunAt: testNow},
			entities.OutboxMessage{ID: "m-2", Type: "b", RunAt: testNow},
		)
		relay := NewOutboxRelay(db, publisher, nil, RelayConfig{BatchSize: 1}, nil)
		relay.now = func() time.Time { return testNow }

		publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		assert.Equal(t, 1, relay.RelayOnce(ctx))
		assert.Equal(t, 1, relay.RelayOnce(ctx))
		assert.Equal(t, 0, relay.RelayOnce(ctx))
	})
}

func TestOutboxRelay_RunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mock_interfaces.NewMockIPublisher(ctrl)
	relay := NewOutboxRelay(memory.NewDatabase(), publisher, nil, RelayConfig{Interval: time.Millisecond}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.NoError(t, relay.Run(ctx))
}

func TestQuotationSweeper(t *testing.T) {
	ctx := context.Background()
	db := memory.NewDatabase()
	quotations := usecase.NewQuotationUseCase(memory.NewRecords[entities.Quotation](db), db, nil,
		lifecycle.WithClock(func() time.Time { return testNow }))

	q, err := quotations.Create(ctx, usecase.CreateQuotation{TenantID: "t-1", Amount: 900})
	require.NoError(t, err)
	_, err = quotations.TransitionToOpen(ctx, q.ID, lifecycle.Input{Actor: entities.Actor{ID: "emp-1", Group: entities.UserGroupEmployee}})
	require.NoError(t, err)

	sweeper := NewQuotationSweeper(quotations, "@every 1m", nil)

	sweeper.now = func() time.Time { return testNow.AddDate(0, 0, 7) }
	assert.Equal(t, 0, sweeper.SweepOnce(ctx))

	sweeper.now = func() time.Time { return testNow.AddDate(0, 0, 15) }
	assert.Equal(t, 1, sweeper.SweepOnce(ctx))

	got, err := quotations.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.QuotationStatusExpired, got.Status)
}

func TestQuotationSweeper_InvalidSchedule(t *testing.T) {
	sweeper := NewQuotationSweeper(nil, "every now and then", nil)
	assert.Error(t, sweeper.Run(context.Background()))
}
