package entities

import "time"

// QuotationStatus represents the lifecycle of a price quotation.
//
// Accepted, Declined and Expired are terminal.

type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "draft"
	QuotationStatusOpen     QuotationStatus = "open"
	QuotationStatusAccepted QuotationStatus = "accepted"
	QuotationStatusDeclined QuotationStatus = "declined"
	QuotationStatusExpired  QuotationStatus = "expired"
)

var QuotationStatuses = []QuotationStatus{
	QuotationStatusDraft,
	QuotationStatusOpen,
	QuotationStatusAccepted,
	QuotationStatusDeclined,
	QuotationStatusExpired,
}

func (s QuotationStatus) Valid() bool {
	for _, v := range QuotationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Quotation is a priced offer sent to a tenant before a lease is confirmed.
//
// Storage model:
//   - PK: id
//   - GSI (status-index): status
type Quotation struct {
	ID         string          `json:"id" dynamodbav:"id"`
	TenantID   string          `json:"tenant_id" dynamodbav:"tenant_id"`
	LeaseID    string          `json:"lease_id,omitempty" dynamodbav:"lease_id,omitempty"`
	Amount     float64         `json:"amount" dynamodbav:"amount"`
	Status     QuotationStatus `json:"status" dynamodbav:"status"`
	ExpiresAt  *time.Time      `json:"expires_at,omitempty" dynamodbav:"expires_at,omitempty"`
	ApprovedAt *time.Time      `json:"approved_at,omitempty" dynamodbav:"approved_at,omitempty"`
	RejectedAt *time.Time      `json:"rejected_at,omitempty" dynamodbav:"rejected_at,omitempty"`
	ExpiredAt  *time.Time      `json:"expired_at,omitempty" dynamodbav:"expired_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at" dynamodbav:"created_at"`
}

func (q Quotation) RecordID() string { return q.ID }
func (Quotation) RecordKind() RecordKind { return RecordKindQuotation }
func (q Quotation) RecordStatus() string { return string(q.Status) }

// Overdue reports whether an open quotation passed its expiry date.
func (q Quotation) Overdue(now time.Time) bool {
	return q.Status == QuotationStatusOpen && q.ExpiresAt != nil && !now.Before(*q.ExpiresAt)
}
