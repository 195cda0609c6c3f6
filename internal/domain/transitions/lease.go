package transitions

import (
	"context"
	"time"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
)

const (
	LeaseQuote    lifecycle.Action = "quote"
	LeaseOption   lifecycle.Action = "option"
	LeaseConfirm  lifecycle.Action = "confirm"
	LeaseComplete lifecycle.Action = "complete"
	LeaseCancel   lifecycle.Action = "cancel"
	LeaseArchive  lifecycle.Action = "archive"
)

type (
	leaseTransition = lifecycle.Transition[entities.Lease, entities.LeaseStatus]
	leaseEdges      = map[lifecycle.Action]leaseTransition
)

// Lease returns the lease lifecycle.
//
// Request, Quotation and Option lead towards Confirmed; a confirmed lease is
// completed into Finalized or cancelled. Finalized and Cancelled leases can
// only be archived, which keeps their status and seals them.
func Lease() lifecycle.Definition[entities.Lease, entities.LeaseStatus] {
	quote := leaseTransition{To: entities.LeaseStatusQuotation}
	option := leaseTransition{To: entities.LeaseStatusOption}
	confirm := leaseTransition{To: entities.LeaseStatusConfirmed, Effect: leaseConfirmed}
	cancel := leaseTransition{To: entities.LeaseStatusCancelled}

	return lifecycle.Definition[entities.Lease, entities.LeaseStatus]{
		Initial:   entities.LeaseStatusRequest,
		Statuses:  entities.LeaseStatuses,
		Status:    func(l *entities.Lease) entities.LeaseStatus { return l.Status },
		SetStatus: func(l *entities.Lease, s entities.LeaseStatus) { l.Status = s },
		Sealed:    func(l *entities.Lease) bool { return l.Archived() },
		Transitions: map[entities.LeaseStatus]leaseEdges{
			entities.LeaseStatusRequest: {
				LeaseQuote:   quote,
				LeaseOption:  option,
				LeaseConfirm: confirm,
				LeaseCancel:  cancel,
			},
			entities.LeaseStatusQuotation: {
				LeaseOption:  option,
				LeaseConfirm: confirm,
				LeaseCancel:  cancel,
			},
			entities.LeaseStatusOption: {
				LeaseConfirm: confirm,
				LeaseCancel:  cancel,
			},
			entities.LeaseStatusConfirmed: {
				LeaseComplete: {To: entities.LeaseStatusFinalized, Effect: leaseCompleted},
				LeaseCancel: {
					To:       entities.LeaseStatusCancelled,
					Validate: []lifecycle.Validator[entities.Lease]{noteRequired[entities.Lease]("cancelling a confirmed lease")},
					Effect:   leaseCancelledWithReason,
				},
			},
			entities.LeaseStatusFinalized: {
				LeaseArchive: {To: entities.LeaseStatusFinalized, Effect: leaseArchived},
			},
			entities.LeaseStatusCancelled: {
				LeaseArchive: {To: entities.LeaseStatusCancelled, Effect: leaseArchived},
			},
		},
	}
}

func leaseConfirmed(ctx context.Context, c lifecycle.Change[entities.Lease]) error {
	l := c.Record
	return notify(ctx, c.Tx, *l, MessageLeaseConfirmed, l.TenantID, c.At, map[string]string{
		"venue_id":  l.VenueID,
		"starts_at": l.StartsAt.UTC().Format(time.RFC3339),
	})
}

func leaseCompleted(ctx context.Context, c lifecycle.Change[entities.Lease]) error {
	l := c.Record
	if err := c.Tx.FinalizeUtilityMetrics(ctx, l.ID, c.At); err != nil {
		return err
	}
	return c.Tx.Enqueue(ctx, entities.OutboxMessage{
		RecordKind: entities.RecordKindLease,
		RecordID:   l.ID,
		Topic:      entities.OutboxTopicJob,
		Type:       MessageFeedbackRequest,
		Recipient:  l.TenantID,
		RunAt:      c.At.AddDate(0, FeedbackDelayMonths, 0),
	})
}

func leaseCancelledWithReason(_ context.Context, c lifecycle.Change[entities.Lease]) error {
	c.Record.CancellationReason = c.Input.Note
	return nil
}

func leaseArchived(_ context.Context, c lifecycle.Change[entities.Lease]) error {
	c.Record.ArchivedAt = stamp(c.At)
	return nil
}
