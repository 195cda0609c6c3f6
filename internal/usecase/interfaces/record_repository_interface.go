package interfaces

import (
	"context"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
)

// IRecordRepository persists one kind of lifecycle record.
//
// Status changes only go through Transact, driven by the lifecycle machine.
// Create stores a new record as given; Get and Transact return
// lifecycle.ErrNotFound for unknown ids.
type IRecordRepository[T entities.Record] interface {
	lifecycle.Store[T]
	Create(ctx context.Context, rec T) (T, error)
	ListByStatus(ctx context.Context, status string) ([]T, error)
}
