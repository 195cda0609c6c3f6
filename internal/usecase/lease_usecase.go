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

var (
	ErrInvalidVenueID  = errors.New("invalid venue_id")
	ErrInvalidPeriod   = errors.New("invalid lease period")
	ErrInvalidUtility  = errors.New("invalid utility")
	ErrInvalidReadings = errors.New("invalid meter readings")
	ErrLeaseClosed     = errors.New("lease no longer accepts utility readings")
)

// CreateLease is the input of a new lease request.
type CreateLease struct {
	TenantID string
	VenueID  string
	StartsAt time.Time
	EndsAt   time.Time
}

// ILeaseUseCase exposes the lease lifecycle:
//   - Request → Quotation → Option → Confirmed → Finalized, with shortcuts
//     from Request and Quotation
//   - any open lease can be cancelled
//   - Finalized and Cancelled leases can be archived
type ILeaseUseCase interface {
	Create(ctx context.Context, in CreateLease) (entities.Lease, error)
	GetByID(ctx context.Context, id string) (entities.Lease, error)
	ListByStatus(ctx context.Context, status string) ([]entities.Lease, error)
	AllowedActions(ctx context.Context, id string, actor entities.Actor) ([]lifecycle.Action, error)
	History(ctx context.Context, id string) ([]entities.AuditEntry, error)

	TransitionToQuotation(ctx context.Context, id string, in lifecycle.Input) (entities.Lease, error)
	TransitionToOption(ctx context.Context, id string, in lifecycle.Input) (entities.Lease, error)
	TransitionToConfirmed(ctx context.Context, id string, in lifecycle.Input) (entities.Lease, error)
	TransitionToCompleted(ctx context.Context, id string, in lifecycle.Input) (entities.Lease, error)
	TransitionToCancelled(ctx context.Context, id string, in lifecycle.Input) (entities.Lease, error)
	Archive(ctx context.Context, id string, in lifecycle.Input) (entities.Lease, error)

	AddUtilityMetric(ctx context.Context, leaseID string, m entities.UtilityMetric) (entities.UtilityMetric, error)
	ListUtilityMetrics(ctx context.Context, leaseID string) ([]entities.UtilityMetric, error)
}

type LeaseUseCase struct {
	recordUseCase[entities.Lease, entities.LeaseStatus]
	metrics interfaces.IUtilityMetricRepository
}

var _ ILeaseUseCase = (*LeaseUseCase)(nil)

func NewLeaseUseCase(
	repo interfaces.IRecordRepository[entities.Lease],
	metrics interfaces.IUtilityMetricRepository,
	audit interfaces.IAuditRepository,
	logger *zap.Logger,
	opts ...lifecycle.Option,
) *LeaseUseCase {
	return &LeaseUseCase{
		recordUseCase: newRecordUseCase(transitions.Lease(), repo, audit, logger, opts),
		metrics:       metrics,
	}
}

func (u *LeaseUseCase) Create(ctx context.Context, in CreateLease) (entities.Lease, error) {
	tenantID := strings.TrimSpace(in.TenantID)
	if tenantID == "" {
		return entities.Lease{}, ErrInvalidTenantID
	}
	venueID := strings.TrimSpace(in.VenueID)
	if venueID == "" {
		return entities.Lease{}, ErrInvalidVenueID
	}
	if in.StartsAt.IsZero() || !in.EndsAt.After(in.StartsAt) {
		return entities.Lease{}, ErrInvalidPeriod
	}

	l := entities.Lease{
		ID:        uuid.NewString(),
		TenantID:  tenantID,
		VenueID:   venueID,
		StartsAt:  in.StartsAt.UTC(),
		EndsAt:    in.EndsAt.UTC(),
		Status:    u.machine.Definition().Initial,
		CreatedAt: time.Now().UTC(),
	}
	return u.create(ctx, l)
}

func (u *LeaseUseCase) TransitionToQuotation(ctx context.Context, id string, in lifecycle.Input) (entities.Lease, error) {
	return u.transition(ctx, id, transitions.LeaseQuote, in)
}

func (u *LeaseUseCase) TransitionToOption(ctx context.Context, id string, in lifecycle.Input) (entities.Lease, error) {
	return u.transition(ctx, id, transitions.LeaseOption, in)
}

func (u *LeaseUseCase) TransitionToConfirmed(ctx context.Context, id string, in lifecycle.Input) (entities.Lease, error) {
	return u.transition(ctx, id, transitions.LeaseConfirm, in)
}

// TransitionToCompleted finalizes a confirmed lease and its utility metrics.
func (u *LeaseUseCase) TransitionToCompleted(ctx context.Context, id string, in lifecycle.Input) (entities.Lease, error) {
	return u.transition(ctx, id, transitions.LeaseComplete, in)
}

// TransitionToCancelled cancels the lease; in.Note is the cancellation
// reason and is mandatory once the lease is confirmed.
func (u *LeaseUseCase) TransitionToCancelled(ctx context.Context, id string, in lifecycle.Input) (entities.Lease, error) {
	return u.transition(ctx, id, transitions.LeaseCancel, in)
}

func (u *LeaseUseCase) Archive(ctx context.Context, id string, in lifecycle.Input) (entities.Lease, error) {
	return u.transition(ctx, id, transitions.LeaseArchive, in)
}

// AddUtilityMetric registers a meter reading for a lease that has not been
// finalized, cancelled or archived yet. The status is checked and the
// reading written inside one transaction on the lease, so a concurrent
// completion either finalizes the reading or makes this call fail.
func (u *LeaseUseCase) AddUtilityMetric(ctx context.Context, leaseID string, m entities.UtilityMetric) (entities.UtilityMetric, error) {
	leaseID = strings.TrimSpace(leaseID)
	if leaseID == "" {
		return entities.UtilityMetric{}, ErrInvalidID
	}
	if !m.Utility.Valid() {
		return entities.UtilityMetric{}, ErrInvalidUtility
	}
	if m.StartReading < 0 || m.EndReading < m.StartReading {
		return entities.UtilityMetric{}, ErrInvalidReadings
	}

	m.ID = uuid.NewString()
	m.Finalized = false
	m.FinalizedAt = nil
	m.CreatedAt = time.Now().UTC()
	_, err := u.repo.Transact(ctx, leaseID, func(tx lifecycle.Tx, lease *entities.Lease) error {
		switch lease.Status {
		case entities.LeaseStatusFinalized, entities.LeaseStatusCancelled:
			return ErrLeaseClosed
		}
		m.LeaseID = lease.ID
		return tx.AddUtilityMetric(ctx, m)
	})
	if err != nil {
		if !errors.Is(err, ErrLeaseClosed) && !errors.Is(err, lifecycle.ErrNotFound) {
			u.logger.Error("add utility metric failed", zap.String("lease_id", leaseID), zap.Error(err))
		}
		return entities.UtilityMetric{}, err
	}
	u.logger.Info("utility metric added",
		zap.String("lease_id", leaseID),
		zap.String("metric_id", m.ID),
		zap.String("utility", string(m.Utility)))
	return m, nil
}

func (u *LeaseUseCase) ListUtilityMetrics(ctx context.Context, leaseID string) ([]entities.UtilityMetric, error) {
	lease, err := u.GetByID(ctx, leaseID)
	if err != nil {
		return nil, err
	}
	return u.metrics.ListMetrics(ctx, lease.ID)
}
