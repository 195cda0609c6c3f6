// Package transitions holds the lifecycle tables of the back-office
// entities: which action leads from which status to which, who may run it
// and what it writes besides the status.
package transitions

import (
	"context"
	"strings"
	"time"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
)

// Outbox message types.
const (
	MessageInvoiceOpened   = "invoice.opened"
	MessageQuotationOpened = "quotation.opened"
	MessageLeaseConfirmed  = "lease.confirmed"
	MessageFeedbackRequest = "lease.feedback_request"
)

const (
	// InvoiceTermMonths is the payment term of an opened invoice.
	InvoiceTermMonths = 1
	// QuotationValidity is how long an opened quotation may be accepted.
	QuotationValidity = 14 * 24 * time.Hour
	// FeedbackDelayMonths is how long after completion a tenant is asked
	// for feedback.
	FeedbackDelayMonths = 2
)

func stamp(at time.Time) *time.Time {
	t := at
	return &t
}

// privileged restricts a transition to administrators and managers.
func privileged[T any](_ *T, in lifecycle.Input) error {
	if !in.Actor.Group.Privileged() {
		return lifecycle.Forbidden("group %q may not register refunds", in.Actor.Group)
	}
	return nil
}

// noteRequired rejects calls without an explanatory note.
func noteRequired[T any](what string) lifecycle.Validator[T] {
	return func(_ *T, in lifecycle.Input) error {
		if strings.TrimSpace(in.Note) == "" {
			return lifecycle.Precondition("%s requires a note", what)
		}
		return nil
	}
}

func notify(ctx context.Context, tx lifecycle.Tx, rec entities.Record, typ, recipient string, at time.Time, payload map[string]string) error {
	return tx.Enqueue(ctx, entities.OutboxMessage{
		RecordKind: rec.RecordKind(),
		RecordID:   rec.RecordID(),
		Topic:      entities.OutboxTopicNotification,
		Type:       typ,
		Recipient:  recipient,
		Payload:    payload,
		RunAt:      at,
	})
}
