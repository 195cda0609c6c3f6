package transitions

import (
	"context"
	"strconv"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
)

const (
	QuotationOpen    lifecycle.Action = "open"
	QuotationAccept  lifecycle.Action = "accept"
	QuotationDecline lifecycle.Action = "decline"
	QuotationExpire  lifecycle.Action = "expire"
)

type quotationTransition = lifecycle.Transition[entities.Quotation, entities.QuotationStatus]

// Quotation returns the quotation lifecycle. Accepted, Declined and Expired
// are terminal.
func Quotation() lifecycle.Definition[entities.Quotation, entities.QuotationStatus] {
	return lifecycle.Definition[entities.Quotation, entities.QuotationStatus]{
		Initial:   entities.QuotationStatusDraft,
		Statuses:  entities.QuotationStatuses,
		Status:    func(q *entities.Quotation) entities.QuotationStatus { return q.Status },
		SetStatus: func(q *entities.Quotation, s entities.QuotationStatus) { q.Status = s },
		Transitions: map[entities.QuotationStatus]map[lifecycle.Action]quotationTransition{
			entities.QuotationStatusDraft: {
				QuotationOpen: {To: entities.QuotationStatusOpen, Effect: quotationOpened},
			},
			entities.QuotationStatusOpen: {
				QuotationAccept: {To: entities.QuotationStatusAccepted, Effect: func(_ context.Context, c lifecycle.Change[entities.Quotation]) error {
					c.Record.ApprovedAt = stamp(c.At)
					return nil
				}},
				QuotationDecline: {To: entities.QuotationStatusDeclined, Effect: func(_ context.Context, c lifecycle.Change[entities.Quotation]) error {
					c.Record.RejectedAt = stamp(c.At)
					return nil
				}},
				QuotationExpire: {To: entities.QuotationStatusExpired, Effect: func(_ context.Context, c lifecycle.Change[entities.Quotation]) error {
					c.Record.ExpiredAt = stamp(c.At)
					return nil
				}},
			},
		},
	}
}

func quotationOpened(ctx context.Context, c lifecycle.Change[entities.Quotation]) error {
	q := c.Record
	q.ExpiresAt = stamp(c.At.Add(QuotationValidity))
	return notify(ctx, c.Tx, *q, MessageQuotationOpened, q.TenantID, c.At, map[string]string{
		"amount":     strconv.FormatFloat(q.Amount, 'f', 2, 64),
		"expires_at": q.ExpiresAt.UTC().Format("2006-01-02"),
	})
}
