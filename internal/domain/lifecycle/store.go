package lifecycle

import (
	"context"
	"time"

	"venue_backoffice/internal/domain/entities"
)

// Tx is the write side available to transition effects. Everything written
// through a Tx commits or rolls back together with the status change.
//
// Implementations assign ID and CreatedAt when they are empty.
type Tx interface {
	AppendAudit(ctx context.Context, entry entities.AuditEntry) error
	Enqueue(ctx context.Context, msg entities.OutboxMessage) error
	FinalizeUtilityMetrics(ctx context.Context, leaseID string, at time.Time) error
	// AddUtilityMetric returns ErrAlreadyExists when m.ID is taken.
	AddUtilityMetric(ctx context.Context, m entities.UtilityMetric) error
}

// Store persists records of one kind.
//
// Transact loads the record identified by id with an exclusive hold on it
// (row lock, version check or mutex), calls fn with a copy and, only when fn
// returns nil, writes the modified record and all Tx writes atomically.
// Stores return ErrNotFound for unknown ids.
type Store[T entities.Record] interface {
	Get(ctx context.Context, id string) (T, error)
	Transact(ctx context.Context, id string, fn func(tx Tx, rec *T) error) (T, error)
}
