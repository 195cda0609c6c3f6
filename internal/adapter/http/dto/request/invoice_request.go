package request

import (
	"encoding/json"
	"strings"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/usecase"
)

type InvoiceLineRequest struct {
	Description string  `json:"description" binding:"required"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// CreateInvoiceRequest creates a draft invoice. Lines may be empty while
// the invoice is a draft; opening it requires at least one.
type CreateInvoiceRequest struct {
	TenantID string               `json:"tenant_id" binding:"required"`
	LeaseID  string               `json:"lease_id"`
	Lines    []InvoiceLineRequest `json:"lines"`
}

func (r CreateInvoiceRequest) ToCommand() usecase.CreateInvoice {
	lines := make([]entities.InvoiceLine, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, entities.InvoiceLine{
			Description: strings.TrimSpace(l.Description),
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}
	return usecase.CreateInvoice{
		TenantID: strings.TrimSpace(r.TenantID),
		LeaseID:  strings.TrimSpace(r.LeaseID),
		Lines:    lines,
	}
}

// InvoicePaymentRequest is the payload of the invoice payment route.
//
// `mp_payload` is forwarded as-is to Mercado Pago; a bare body without the
// envelope is accepted too.
type InvoicePaymentRequest struct {
	MPPayload json.RawMessage `json:"mp_payload"`
}
