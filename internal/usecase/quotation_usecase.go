package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
	"venue_backoffice/internal/domain/transitions"
	"venue_backoffice/internal/usecase/interfaces"
)

// CreateQuotation is the input of a new draft quotation.
type CreateQuotation struct {
	TenantID string
	LeaseID  string
	Amount   float64
}

// IQuotationUseCase exposes the quotation lifecycle:
//   - Draft → Open (valid for two weeks)
//   - Open → Accepted | Declined | Expired
type IQuotationUseCase interface {
	Create(ctx context.Context, in CreateQuotation) (entities.Quotation, error)
	GetByID(ctx context.Context, id string) (entities.Quotation, error)
	ListByStatus(ctx context.Context, status string) ([]entities.Quotation, error)
	AllowedActions(ctx context.Context, id string, actor entities.Actor) ([]lifecycle.Action, error)
	History(ctx context.Context, id string) ([]entities.AuditEntry, error)

	TransitionToOpen(ctx context.Context, id string, in lifecycle.Input) (entities.Quotation, error)
	TransitionToAccepted(ctx context.Context, id string, in lifecycle.Input) (entities.Quotation, error)
	TransitionToDeclined(ctx context.Context, id string, in lifecycle.Input) (entities.Quotation, error)
	TransitionToExpired(ctx context.Context, id string, in lifecycle.Input) (entities.Quotation, error)

	// ExpireOverdue expires every open quotation past its expiry date as the
	// system actor and returns how many were expired.
	ExpireOverdue(ctx context.Context, now time.Time) (int, error)
}

type QuotationUseCase struct {
	recordUseCase[entities.Quotation, entities.QuotationStatus]
}

var _ IQuotationUseCase = (*QuotationUseCase)(nil)

func NewQuotationUseCase(
	repo interfaces.IRecordRepository[entities.Quotation],
	audit interfaces.IAuditRepository,
	logger *zap.Logger,
	opts ...lifecycle.Option,
) *QuotationUseCase {
	return &QuotationUseCase{recordUseCase: newRecordUseCase(transitions.Quotation(), repo, audit, logger, opts)}
}

func (u *QuotationUseCase) Create(ctx context.Context, in CreateQuotation) (entities.Quotation, error) {
	tenantID := strings.TrimSpace(in.TenantID)
	if tenantID == "" {
		return entities.Quotation{}, ErrInvalidTenantID
	}
	if in.Amount <= 0 {
		return entities.Quotation{}, ErrInvalidAmount
	}

	q := entities.Quotation{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		LeaseID:   strings.TrimSpace(in.LeaseID),
		Amount:    in.Amount,
		Status:    u.machine.Definition().Initial,
		CreatedAt: time.Now().UTC(),
	}
	return u.create(ctx, q)
}

func (u *QuotationUseCase) TransitionToOpen(ctx context.Context, id string, in lifecycle.Input) (entities.Quotation, error) {
	return u.transition(ctx, id, transitions.QuotationOpen, in)
}

func (u *QuotationUseCase) TransitionToAccepted(ctx context.Context, id string, in lifecycle.Input) (entities.Quotation, error) {
	return u.transition(ctx, id, transitions.QuotationAccept, in)
}

func (u *QuotationUseCase) TransitionToDeclined(ctx context.Context, id string, in lifecycle.Input) (entities.Quotation, error) {
	return u.transition(ctx, id, transitions.QuotationDecline, in)
}

func (u *QuotationUseCase) TransitionToExpired(ctx context.Context, id string, in lifecycle.Input) (entities.Quotation, error) {
	return u.transition(ctx, id, transitions.QuotationExpire, in)
}

func (u *QuotationUseCase) ExpireOverdue(ctx context.Context, now time.Time) (int, error) {
	open, err := u.repo.ListByStatus(ctx, string(entities.QuotationStatusOpen))
	if err != nil {
		return 0, err
	}

	expired := 0
	var errs []error
	for _, q := range open {
		if !q.Overdue(now) {
			continue
		}
		_, err := u.transition(ctx, q.ID, transitions.QuotationExpire, lifecycle.Input{
			Actor: entities.SystemActor,
			At:    now,
			Note:  "validity period elapsed",
		})
		switch {
		case err == nil:
			expired++
		case errors.Is(err, lifecycle.ErrInvalidTransition):
			// Accepted or declined since it was listed.
		default:
			errs = append(errs, err)
		}
	}
	if expired > 0 {
		u.logger.Info("overdue quotations expired", zap.Int("count", expired))
	}
	return expired, errors.Join(errs...)
}
