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

var ErrInvalidInvoiceLine = errors.New("invalid invoice line")

// CreateInvoice is the input of a new draft invoice.
type CreateInvoice struct {
	TenantID string
	LeaseID  string
	Lines    []entities.InvoiceLine
}

// IInvoiceUseCase exposes the invoice lifecycle:
//   - Draft → Open (due in one month)
//   - Open → Paid | Uncollected | Void
//   - Uncollected → Paid
type IInvoiceUseCase interface {
	Create(ctx context.Context, in CreateInvoice) (entities.Invoice, error)
	GetByID(ctx context.Context, id string) (entities.Invoice, error)
	ListByStatus(ctx context.Context, status string) ([]entities.Invoice, error)
	AllowedActions(ctx context.Context, id string, actor entities.Actor) ([]lifecycle.Action, error)
	History(ctx context.Context, id string) ([]entities.AuditEntry, error)

	TransitionToOpen(ctx context.Context, id string, in lifecycle.Input) (entities.Invoice, error)
	TransitionToPaid(ctx context.Context, id string, in lifecycle.Input) (entities.Invoice, error)
	TransitionToUncollected(ctx context.Context, id string, in lifecycle.Input) (entities.Invoice, error)
	TransitionToVoid(ctx context.Context, id string, in lifecycle.Input) (entities.Invoice, error)

	// CanTransitionToPaid reports the error TransitionToPaid would return
	// right now, without changing anything.
	CanTransitionToPaid(ctx context.Context, id string, in lifecycle.Input) error
}

type InvoiceUseCase struct {
	recordUseCase[entities.Invoice, entities.InvoiceStatus]
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(
	repo interfaces.IRecordRepository[entities.Invoice],
	audit interfaces.IAuditRepository,
	logger *zap.Logger,
	opts ...lifecycle.Option,
) *InvoiceUseCase {
	return &InvoiceUseCase{recordUseCase: newRecordUseCase(transitions.Invoice(), repo, audit, logger, opts)}
}

func (u *InvoiceUseCase) Create(ctx context.Context, in CreateInvoice) (entities.Invoice, error) {
	tenantID := strings.TrimSpace(in.TenantID)
	if tenantID == "" {
		return entities.Invoice{}, ErrInvalidTenantID
	}
	lines := make([]entities.InvoiceLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		l.Description = strings.TrimSpace(l.Description)
		if l.Description == "" || l.Quantity <= 0 || l.UnitPrice < 0 {
			return entities.Invoice{}, ErrInvalidInvoiceLine
		}
		lines = append(lines, l)
	}

	inv := entities.Invoice{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		LeaseID:   strings.TrimSpace(in.LeaseID),
		Lines:     lines,
		Status:    u.machine.Definition().Initial,
		CreatedAt: time.Now().UTC(),
	}
	return u.create(ctx, inv)
}

func (u *InvoiceUseCase) TransitionToOpen(ctx context.Context, id string, in lifecycle.Input) (entities.Invoice, error) {
	return u.transition(ctx, id, transitions.InvoiceOpen, in)
}

func (u *InvoiceUseCase) TransitionToPaid(ctx context.Context, id string, in lifecycle.Input) (entities.Invoice, error) {
	return u.transition(ctx, id, transitions.InvoicePay, in)
}

func (u *InvoiceUseCase) TransitionToUncollected(ctx context.Context, id string, in lifecycle.Input) (entities.Invoice, error) {
	return u.transition(ctx, id, transitions.InvoiceUncollect, in)
}

func (u *InvoiceUseCase) TransitionToVoid(ctx context.Context, id string, in lifecycle.Input) (entities.Invoice, error) {
	return u.transition(ctx, id, transitions.InvoiceVoid, in)
}

func (u *InvoiceUseCase) CanTransitionToPaid(ctx context.Context, id string, in lifecycle.Input) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidID
	}
	return u.machine.Evaluate(ctx, id, transitions.InvoicePay, in)
}
