package response

import (
	"encoding/json"
	"time"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
	"venue_backoffice/internal/usecase"
)

type LeaseResponse struct {
	ID                 string     `json:"id"`
	TenantID           string     `json:"tenant_id"`
	VenueID            string     `json:"venue_id"`
	StartsAt           time.Time  `json:"starts_at"`
	EndsAt             time.Time  `json:"ends_at"`
	Status             string     `json:"status"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
	Archived           bool       `json:"archived"`
	ArchivedAt         *time.Time `json:"archived_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

func FromLease(l entities.Lease) LeaseResponse {
	return LeaseResponse{
		ID:                 l.ID,
		TenantID:           l.TenantID,
		VenueID:            l.VenueID,
		StartsAt:           l.StartsAt,
		EndsAt:             l.EndsAt,
		Status:             string(l.Status),
		CancellationReason: l.CancellationReason,
		Archived:           l.Archived(),
		ArchivedAt:         l.ArchivedAt,
		CreatedAt:          l.CreatedAt,
	}
}

type InvoiceLineResponse struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

type InvoiceResponse struct {
	ID          string                `json:"id"`
	TenantID    string                `json:"tenant_id"`
	LeaseID     string                `json:"lease_id,omitempty"`
	Lines       []InvoiceLineResponse `json:"lines"`
	Total       float64               `json:"total"`
	Status      string                `json:"status"`
	DueAt       *time.Time            `json:"due_at,omitempty"`
	PaidAt      *time.Time            `json:"paid_at,omitempty"`
	CancelledAt *time.Time            `json:"cancelled_at,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

func FromInvoice(i entities.Invoice) InvoiceResponse {
	lines := make([]InvoiceLineResponse, 0, len(i.Lines))
	for _, l := range i.Lines {
		lines = append(lines, InvoiceLineResponse{
			Description: l.Description,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Total:       l.Total(),
		})
	}
	return InvoiceResponse{
		ID:          i.ID,
		TenantID:    i.TenantID,
		LeaseID:     i.LeaseID,
		Lines:       lines,
		Total:       i.Total(),
		Status:      string(i.Status),
		DueAt:       i.DueAt,
		PaidAt:      i.PaidAt,
		CancelledAt: i.CancelledAt,
		CreatedAt:   i.CreatedAt,
	}
}

type QuotationResponse struct {
	ID         string     `json:"id"`
	TenantID   string     `json:"tenant_id"`
	LeaseID    string     `json:"lease_id,omitempty"`
	Amount     float64    `json:"amount"`
	Status     string     `json:"status"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	RejectedAt *time.Time `json:"rejected_at,omitempty"`
	ExpiredAt  *time.Time `json:"expired_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func FromQuotation(q entities.Quotation) QuotationResponse {
	return QuotationResponse{
		ID:         q.ID,
		TenantID:   q.TenantID,
		LeaseID:    q.LeaseID,
		Amount:     q.Amount,
		Status:     string(q.Status),
		ExpiresAt:  q.ExpiresAt,
		ApprovedAt: q.ApprovedAt,
		RejectedAt: q.RejectedAt,
		ExpiredAt:  q.ExpiredAt,
		CreatedAt:  q.CreatedAt,
	}
}

type DepositResponse struct {
	ID             string     `json:"id"`
	TenantID       string     `json:"tenant_id"`
	LeaseID        string     `json:"lease_id,omitempty"`
	Amount         float64    `json:"amount"`
	Status         string     `json:"status"`
	PaidAmount     float64    `json:"paid_amount"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
	RevokedAmount  float64    `json:"revoked_amount"`
	RefundedAmount float64    `json:"refunded_amount"`
	RefundNote     string     `json:"refund_note,omitempty"`
	RefundAt       *time.Time `json:"refund_at,omitempty"`
	RefundedAt     *time.Time `json:"refunded_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func FromDeposit(d entities.Deposit) DepositResponse {
	return DepositResponse{
		ID:             d.ID,
		TenantID:       d.TenantID,
		LeaseID:        d.LeaseID,
		Amount:         d.Amount,
		Status:         string(d.Status),
		PaidAmount:     d.PaidAmount,
		PaidAt:         d.PaidAt,
		RevokedAmount:  d.RevokedAmount,
		RefundedAmount: d.RefundedAmount,
		RefundNote:     d.RefundNote,
		RefundAt:       d.RefundAt,
		RefundedAt:     d.RefundedAt,
		CreatedAt:      d.CreatedAt,
	}
}

type UtilityMetricResponse struct {
	ID           string     `json:"id"`
	LeaseID      string     `json:"lease_id"`
	Utility      string     `json:"utility"`
	StartReading float64    `json:"start_reading"`
	EndReading   float64    `json:"end_reading"`
	Consumption  float64    `json:"consumption"`
	Finalized    bool       `json:"finalized"`
	FinalizedAt  *time.Time `json:"finalized_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func FromUtilityMetric(m entities.UtilityMetric) UtilityMetricResponse {
	return UtilityMetricResponse{
		ID:           m.ID,
		LeaseID:      m.LeaseID,
		Utility:      string(m.Utility),
		StartReading: m.StartReading,
		EndReading:   m.EndReading,
		Consumption:  m.Consumption(),
		Finalized:    m.Finalized,
		FinalizedAt:  m.FinalizedAt,
		CreatedAt:    m.CreatedAt,
	}
}

type AuditEntryResponse struct {
	ID         string            `json:"id"`
	Action     string            `json:"action"`
	FromStatus string            `json:"from_status"`
	ToStatus   string            `json:"to_status"`
	ActorID    string            `json:"actor_id"`
	ActorGroup string            `json:"actor_group"`
	Note       string            `json:"note,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

func FromAuditEntries(entries []entities.AuditEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, AuditEntryResponse{
			ID:         e.ID,
			Action:     e.Action,
			FromStatus: e.FromStatus,
			ToStatus:   e.ToStatus,
			ActorID:    e.ActorID,
			ActorGroup: string(e.ActorGroup),
			Note:       e.Note,
			Metadata:   e.Metadata,
			CreatedAt:  e.CreatedAt,
		})
	}
	return out
}

// ActionsResponse lists what the calling actor may do with a record.
type ActionsResponse struct {
	ID      string   `json:"id"`
	Actions []string `json:"actions"`
}

func FromActions(id string, actions []lifecycle.Action) ActionsResponse {
	out := make([]string, 0, len(actions))
	for _, a := range actions {
		out = append(out, string(a))
	}
	return ActionsResponse{ID: id, Actions: out}
}

type InvoicePaymentResponse struct {
	Invoice           InvoiceResponse        `json:"invoice"`
	ProviderPaymentID string                 `json:"provider_payment_id"`
	ProviderStatus    string                 `json:"provider_status"`
	ProviderResponse  map[string]interface{} `json:"provider_response,omitempty"`
}

func FromInvoicePayment(p usecase.InvoicePayment) InvoicePaymentResponse {
	out := InvoicePaymentResponse{
		Invoice:           FromInvoice(p.Invoice),
		ProviderPaymentID: p.ProviderPaymentID,
		ProviderStatus:    p.ProviderStatus,
	}
	if len(p.ProviderResponse) > 0 {
		var body map[string]interface{}
		if err := json.Unmarshal(p.ProviderResponse, &body); err == nil {
			out.ProviderResponse = body
		}
	}
	return out
}

type SweepResponse struct {
	Expired int `json:"expired"`
}
