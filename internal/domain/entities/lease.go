package entities

import "time"

// LeaseStatus is the lifecycle status of a venue lease.

type LeaseStatus string

const (
	LeaseStatusRequest   LeaseStatus = "request"
	LeaseStatusQuotation LeaseStatus = "quotation"
	LeaseStatusOption    LeaseStatus = "option"
	LeaseStatusConfirmed LeaseStatus = "confirmed"
	LeaseStatusFinalized LeaseStatus = "finalized"
	LeaseStatusCancelled LeaseStatus = "cancelled"
)

// LeaseStatuses lists every lease status in lifecycle order.
var LeaseStatuses = []LeaseStatus{
	LeaseStatusRequest,
	LeaseStatusQuotation,
	LeaseStatusOption,
	LeaseStatusConfirmed,
	LeaseStatusFinalized,
	LeaseStatusCancelled,
}

func (s LeaseStatus) Valid() bool {
	for _, v := range LeaseStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Lease is a booking of a venue by a tenant.
//
// Storage model:
//   - PK: id
//   - GSI (status-index): status
//
// ArchivedAt is set once a finalized or cancelled lease is archived; an
// archived lease accepts no further transitions.
type Lease struct {
	ID                 string      `json:"id" dynamodbav:"id"`
	TenantID           string      `json:"tenant_id" dynamodbav:"tenant_id"`
	VenueID            string      `json:"venue_id" dynamodbav:"venue_id"`
	StartsAt           time.Time   `json:"starts_at" dynamodbav:"starts_at"`
	EndsAt             time.Time   `json:"ends_at" dynamodbav:"ends_at"`
	Status             LeaseStatus `json:"status" dynamodbav:"status"`
	CancellationReason string      `json:"cancellation_reason,omitempty" dynamodbav:"cancellation_reason,omitempty"`
	ArchivedAt         *time.Time  `json:"archived_at,omitempty" dynamodbav:"archived_at,omitempty"`
	CreatedAt          time.Time   `json:"created_at" dynamodbav:"created_at"`
}

func (l Lease) RecordID() string { return l.ID }
func (Lease) RecordKind() RecordKind { return RecordKindLease }
func (l Lease) RecordStatus() string { return string(l.Status) }
func (l Lease) Archived() bool { return l.ArchivedAt != nil }

// UtilityKind is the metered utility a reading belongs to.
type UtilityKind string

const (
	UtilityElectricity UtilityKind = "electricity"
	UtilityWater       UtilityKind = "water"
	UtilityGas         UtilityKind = "gas"
)

func (k UtilityKind) Valid() bool {
	return k == UtilityElectricity || k == UtilityWater || k == UtilityGas
}

// UtilityMetric is a meter reading taken for a lease. Metrics are finalized
// when the lease completes and are read-only afterwards.
type UtilityMetric struct {
	ID           string      `json:"id" dynamodbav:"id"`
	LeaseID      string      `json:"lease_id" dynamodbav:"lease_id"`
	Utility      UtilityKind `json:"utility" dynamodbav:"utility"`
	StartReading float64     `json:"start_reading" dynamodbav:"start_reading"`
	EndReading   float64     `json:"end_reading" dynamodbav:"end_reading"`
	Finalized    bool        `json:"finalized" dynamodbav:"finalized"`
	FinalizedAt  *time.Time  `json:"finalized_at,omitempty" dynamodbav:"finalized_at,omitempty"`
	CreatedAt    time.Time   `json:"created_at" dynamodbav:"created_at"`
}

// Consumption is the metered usage between both readings.
func (m UtilityMetric) Consumption() float64 {
	return m.EndReading - m.StartReading
}
