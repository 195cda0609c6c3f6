package interfaces

import (
	"context"
	"time"

	"venue_backoffice/internal/domain/entities"
)

// IAuditRepository reads the audit trail written by transitions.
type IAuditRepository interface {
	ListAudit(ctx context.Context, kind entities.RecordKind, id string) ([]entities.AuditEntry, error)
}

// IOutboxRepository is used by the relay to drain messages enqueued by
// transitions.
type IOutboxRepository interface {
	ListPending(ctx context.Context, now time.Time, limit int) ([]entities.OutboxMessage, error)
	MarkDispatched(ctx context.Context, id string, at time.Time) error
}

// IUtilityMetricRepository reads meter readings taken for leases. Readings
// are written through lifecycle.Tx inside a transaction on the lease, so
// they never race the completion that finalizes them.
type IUtilityMetricRepository interface {
	ListMetrics(ctx context.Context, leaseID string) ([]entities.UtilityMetric, error)
}
