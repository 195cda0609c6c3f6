package request

import (
	"strings"
	"time"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/usecase"
)

// CreateLeaseRequest opens a new lease request for a venue.
type CreateLeaseRequest struct {
	TenantID string    `json:"tenant_id" binding:"required"`
	VenueID  string    `json:"venue_id" binding:"required"`
	StartsAt time.Time `json:"starts_at" binding:"required"`
	EndsAt   time.Time `json:"ends_at" binding:"required"`
}

func (r CreateLeaseRequest) ToCommand() usecase.CreateLease {
	return usecase.CreateLease{
		TenantID: strings.TrimSpace(r.TenantID),
		VenueID:  strings.TrimSpace(r.VenueID),
		StartsAt: r.StartsAt,
		EndsAt:   r.EndsAt,
	}
}

// UtilityMetricRequest registers a meter reading on a lease.
type UtilityMetricRequest struct {
	Utility      string  `json:"utility" binding:"required"`
	StartReading float64 `json:"start_reading"`
	EndReading   float64 `json:"end_reading"`
}

func (r UtilityMetricRequest) ToEntity() entities.UtilityMetric {
	return entities.UtilityMetric{
		Utility:      entities.UtilityKind(strings.ToLower(strings.TrimSpace(r.Utility))),
		StartReading: r.StartReading,
		EndReading:   r.EndReading,
	}
}
