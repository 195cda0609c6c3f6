package transitions

import (
	"context"
	"strconv"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
)

const (
	InvoiceOpen      lifecycle.Action = "open"
	InvoicePay       lifecycle.Action = "pay"
	InvoiceUncollect lifecycle.Action = "uncollect"
	InvoiceVoid      lifecycle.Action = "void"
)

type invoiceTransition = lifecycle.Transition[entities.Invoice, entities.InvoiceStatus]

// Invoice returns the invoice lifecycle. Paid and Void are terminal.
func Invoice() lifecycle.Definition[entities.Invoice, entities.InvoiceStatus] {
	pay := invoiceTransition{To: entities.InvoiceStatusPaid, Effect: invoicePaid}

	return lifecycle.Definition[entities.Invoice, entities.InvoiceStatus]{
		Initial:   entities.InvoiceStatusDraft,
		Statuses:  entities.InvoiceStatuses,
		Status:    func(i *entities.Invoice) entities.InvoiceStatus { return i.Status },
		SetStatus: func(i *entities.Invoice, s entities.InvoiceStatus) { i.Status = s },
		Transitions: map[entities.InvoiceStatus]map[lifecycle.Action]invoiceTransition{
			entities.InvoiceStatusDraft: {
				InvoiceOpen: {
					To:     entities.InvoiceStatusOpen,
					Guards: []lifecycle.Guard[entities.Invoice]{hasLines},
					Effect: invoiceOpened,
				},
			},
			entities.InvoiceStatusOpen: {
				InvoicePay:       pay,
				InvoiceUncollect: {To: entities.InvoiceStatusUncollected},
				InvoiceVoid:      {To: entities.InvoiceStatusVoid, Effect: invoiceVoided},
			},
			entities.InvoiceStatusUncollected: {
				InvoicePay: pay,
			},
		},
	}
}

func hasLines(inv *entities.Invoice, _ lifecycle.Input) error {
	if len(inv.Lines) == 0 {
		return lifecycle.Precondition("invoice has no line items")
	}
	return nil
}

func invoiceOpened(ctx context.Context, c lifecycle.Change[entities.Invoice]) error {
	inv := c.Record
	inv.DueAt = stamp(c.At.AddDate(0, InvoiceTermMonths, 0))
	return notify(ctx, c.Tx, *inv, MessageInvoiceOpened, inv.TenantID, c.At, map[string]string{
		"total":  strconv.FormatFloat(inv.Total(), 'f', 2, 64),
		"due_at": inv.DueAt.UTC().Format("2006-01-02"),
	})
}

func invoicePaid(_ context.Context, c lifecycle.Change[entities.Invoice]) error {
	c.Record.PaidAt = stamp(c.At)
	return nil
}

func invoiceVoided(_ context.Context, c lifecycle.Change[entities.Invoice]) error {
	c.Record.CancelledAt = stamp(c.At)
	return nil
}
