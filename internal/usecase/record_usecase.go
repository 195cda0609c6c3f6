package usecase

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
	"venue_backoffice/internal/usecase/interfaces"
)

var (
	ErrInvalidID       = errors.New("invalid id")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidTenantID = errors.New("invalid tenant_id")
	ErrInvalidAmount   = errors.New("invalid amount")
)

// recordUseCase carries the operations every lifecycle record shares:
// lookups, transitions, allowed actions and audit history.
type recordUseCase[T entities.Record, S ~string] struct {
	repo    interfaces.IRecordRepository[T]
	audit   interfaces.IAuditRepository
	machine *lifecycle.Machine[T, S]
	logger  *zap.Logger
}

func newRecordUseCase[T entities.Record, S ~string](
	def lifecycle.Definition[T, S],
	repo interfaces.IRecordRepository[T],
	audit interfaces.IAuditRepository,
	logger *zap.Logger,
	opts []lifecycle.Option,
) recordUseCase[T, S] {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts = append([]lifecycle.Option{lifecycle.WithLogger(logger.Named("lifecycle"))}, opts...)
	return recordUseCase[T, S]{
		repo:    repo,
		audit:   audit,
		machine: lifecycle.NewMachine(def, lifecycle.Store[T](repo), opts...),
		logger:  logger,
	}
}

func (u recordUseCase[T, S]) GetByID(ctx context.Context, id string) (T, error) {
	var zero T
	id = strings.TrimSpace(id)
	if id == "" {
		return zero, ErrInvalidID
	}
	return u.repo.Get(ctx, id)
}

func (u recordUseCase[T, S]) ListByStatus(ctx context.Context, status string) ([]T, error) {
	if !u.machine.Definition().Valid(S(status)) {
		return nil, ErrInvalidStatus
	}
	return u.repo.ListByStatus(ctx, status)
}

// AllowedActions lists what actor may do with the record right now.
func (u recordUseCase[T, S]) AllowedActions(ctx context.Context, id string, actor entities.Actor) ([]lifecycle.Action, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidID
	}
	return u.machine.Available(ctx, id, actor)
}

func (u recordUseCase[T, S]) History(ctx context.Context, id string) ([]entities.AuditEntry, error) {
	var zero T
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidID
	}
	if _, err := u.repo.Get(ctx, id); err != nil {
		return nil, err
	}
	return u.audit.ListAudit(ctx, zero.RecordKind(), id)
}

func (u recordUseCase[T, S]) transition(ctx context.Context, id string, action lifecycle.Action, in lifecycle.Input) (T, error) {
	var zero T
	id = strings.TrimSpace(id)
	if id == "" {
		return zero, ErrInvalidID
	}
	in.Note = strings.TrimSpace(in.Note)
	return u.machine.Fire(ctx, id, action, in)
}

func (u recordUseCase[T, S]) create(ctx context.Context, rec T) (T, error) {
	created, err := u.repo.Create(ctx, rec)
	if err != nil {
		u.logger.Error("create failed", zap.String("kind", string(rec.RecordKind())), zap.String("id", rec.RecordID()), zap.Error(err))
		return created, err
	}
	u.logger.Info("record created", zap.String("kind", string(rec.RecordKind())), zap.String("id", rec.RecordID()))
	return created, nil
}
