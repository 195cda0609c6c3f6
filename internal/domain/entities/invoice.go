package entities

import "time"

// InvoiceStatus represents the lifecycle of an invoice.
//
// Paid and Void are terminal.

type InvoiceStatus string

const (
	InvoiceStatusDraft       InvoiceStatus = "draft"
	InvoiceStatusOpen        InvoiceStatus = "open"
	InvoiceStatusPaid        InvoiceStatus = "paid"
	InvoiceStatusVoid        InvoiceStatus = "void"
	InvoiceStatusUncollected InvoiceStatus = "uncollected"
)

var InvoiceStatuses = []InvoiceStatus{
	InvoiceStatusDraft,
	InvoiceStatusOpen,
	InvoiceStatusPaid,
	InvoiceStatusVoid,
	InvoiceStatusUncollected,
}

func (s InvoiceStatus) Valid() bool {
	for _, v := range InvoiceStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// InvoiceLine is a single billed item.
type InvoiceLine struct {
	Description string  `json:"description" dynamodbav:"description"`
	Quantity    float64 `json:"quantity" dynamodbav:"quantity"`
	UnitPrice   float64 `json:"unit_price" dynamodbav:"unit_price"`
}

func (l InvoiceLine) Total() float64 {
	return l.Quantity * l.UnitPrice
}

// Invoice is a bill sent to a tenant, usually for a lease.
//
// Storage model:
//   - PK: id
//   - GSI (status-index): status
//
// Lines are embedded in the invoice document.
type Invoice struct {
	ID          string        `json:"id" dynamodbav:"id"`
	TenantID    string        `json:"tenant_id" dynamodbav:"tenant_id"`
	LeaseID     string        `json:"lease_id,omitempty" dynamodbav:"lease_id,omitempty"`
	Lines       []InvoiceLine `json:"lines" dynamodbav:"lines"`
	Status      InvoiceStatus `json:"status" dynamodbav:"status"`
	DueAt       *time.Time    `json:"due_at,omitempty" dynamodbav:"due_at,omitempty"`
	PaidAt      *time.Time    `json:"paid_at,omitempty" dynamodbav:"paid_at,omitempty"`
	CancelledAt *time.Time    `json:"cancelled_at,omitempty" dynamodbav:"cancelled_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at" dynamodbav:"created_at"`
}

func (i Invoice) RecordID() string { return i.ID }
func (Invoice) RecordKind() RecordKind { return RecordKindInvoice }
func (i Invoice) RecordStatus() string { return string(i.Status) }

// Total is the sum of all line totals.
func (i Invoice) Total() float64 {
	total := 0.0
	for _, l := range i.Lines {
		total += l.Total()
	}
	return total
}

// Clone returns a copy that does not share the line slice.
func (i Invoice) Clone() Invoice {
	out := i
	if i.Lines != nil {
		out.Lines = make([]InvoiceLine, len(i.Lines))
		copy(out.Lines, i.Lines)
	}
	return out
}
