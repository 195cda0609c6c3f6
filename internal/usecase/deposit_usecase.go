package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
	"venue_backoffice/internal/domain/transitions"
	"venue_backoffice/internal/usecase/interfaces"
)

// CreateDeposit is the input of a new unpaid deposit.
type CreateDeposit struct {
	TenantID string
	LeaseID  string
	Amount   float64
}

// IDepositUseCase exposes the deposit lifecycle:
//   - Unpaid → Paid
//   - Paid → PartiallyRefunded | FullyRefunded | Withdrawn | DueRefund
//   - DueRefund → PartiallyRefunded | FullyRefunded
//
// Refund operations are restricted to administrators and managers.
type IDepositUseCase interface {
	Create(ctx context.Context, in CreateDeposit) (entities.Deposit, error)
	GetByID(ctx context.Context, id string) (entities.Deposit, error)
	ListByStatus(ctx context.Context, status string) ([]entities.Deposit, error)
	AllowedActions(ctx context.Context, id string, actor entities.Actor) ([]lifecycle.Action, error)
	History(ctx context.Context, id string) ([]entities.AuditEntry, error)

	TransitionToPaid(ctx context.Context, id string, in lifecycle.Input) (entities.Deposit, error)
	TransitionToPartiallyRefunded(ctx context.Context, id string, in lifecycle.Input) (entities.Deposit, error)
	TransitionToFullyRefunded(ctx context.Context, id string, in lifecycle.Input) (entities.Deposit, error)
	TransitionToWithdrawn(ctx context.Context, id string, in lifecycle.Input) (entities.Deposit, error)
	TransitionToDueRefund(ctx context.Context, id string, in lifecycle.Input) (entities.Deposit, error)
}

type DepositUseCase struct {
	recordUseCase[entities.Deposit, entities.DepositStatus]
}

var _ IDepositUseCase = (*DepositUseCase)(nil)

func NewDepositUseCase(
	repo interfaces.IRecordRepository[entities.Deposit],
	audit interfaces.IAuditRepository,
	logger *zap.Logger,
	opts ...lifecycle.Option,
) *DepositUseCase {
	return &DepositUseCase{recordUseCase: newRecordUseCase(transitions.Deposit(), repo, audit, logger, opts)}
}

func (u *DepositUseCase) Create(ctx context.Context, in CreateDeposit) (entities.Deposit, error) {
	tenantID := strings.TrimSpace(in.TenantID)
	if tenantID == "" {
		return entities.Deposit{}, ErrInvalidTenantID
	}
	if in.Amount <= 0 {
		return entities.Deposit{}, ErrInvalidAmount
	}

	d := entities.Deposit{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		LeaseID:   strings.TrimSpace(in.LeaseID),
		Amount:    in.Amount,
		Status:    u.machine.Definition().Initial,
		CreatedAt: time.Now().UTC(),
	}
	return u.create(ctx, d)
}

// TransitionToPaid records the deposit as received; in.Amount is the amount
// actually paid.
func (u *DepositUseCase) TransitionToPaid(ctx context.Context, id string, in lifecycle.Input) (entities.Deposit, error) {
	return u.transition(ctx, id, transitions.DepositPay, in)
}

// TransitionToPartiallyRefunded withholds in.Amount and refunds the rest.
func (u *DepositUseCase) TransitionToPartiallyRefunded(ctx context.Context, id string, in lifecycle.Input) (entities.Deposit, error) {
	return u.transition(ctx, id, transitions.DepositRefundPartial, in)
}

func (u *DepositUseCase) TransitionToFullyRefunded(ctx context.Context, id string, in lifecycle.Input) (entities.Deposit, error) {
	return u.transition(ctx, id, transitions.DepositRefundFull, in)
}

func (u *DepositUseCase) TransitionToWithdrawn(ctx context.Context, id string, in lifecycle.Input) (entities.Deposit, error) {
	return u.transition(ctx, id, transitions.DepositWithdraw, in)
}

func (u *DepositUseCase) TransitionToDueRefund(ctx context.Context, id string, in lifecycle.Input) (entities.Deposit, error) {
	return u.transition(ctx, id, transitions.DepositDueRefund, in)
}
