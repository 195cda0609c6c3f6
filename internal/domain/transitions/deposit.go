package transitions

import (
	"context"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
)

const (
	DepositPay           lifecycle.Action = "pay"
	DepositRefundPartial lifecycle.Action = "refund_partial"
	DepositRefundFull    lifecycle.Action = "refund_full"
	DepositWithdraw      lifecycle.Action = "withdraw"
	DepositDueRefund     lifecycle.Action = "due_refund"
)

type depositTransition = lifecycle.Transition[entities.Deposit, entities.DepositStatus]

// Deposit returns the deposit lifecycle.
//
// Input.Amount is the received amount for pay and the withheld amount for
// refund_partial. Refund actions are restricted to privileged groups.
func Deposit() lifecycle.Definition[entities.Deposit, entities.DepositStatus] {
	staffOnly := []lifecycle.Guard[entities.Deposit]{privileged[entities.Deposit]}

	partial := depositTransition{
		To:     entities.DepositStatusPartiallyRefunded,
		Guards: staffOnly,
		Validate: []lifecycle.Validator[entities.Deposit]{
			noteRequired[entities.Deposit]("a partial refund"),
			withinPaidAmount,
		},
		Effect: depositPartiallyRefunded,
	}
	full := depositTransition{
		To:     entities.DepositStatusFullyRefunded,
		Guards: staffOnly,
		Effect: depositFullyRefunded,
	}

	return lifecycle.Definition[entities.Deposit, entities.DepositStatus]{
		Initial:   entities.DepositStatusUnpaid,
		Statuses:  entities.DepositStatuses,
		Status:    func(d *entities.Deposit) entities.DepositStatus { return d.Status },
		SetStatus: func(d *entities.Deposit, s entities.DepositStatus) { d.Status = s },
		Transitions: map[entities.DepositStatus]map[lifecycle.Action]depositTransition{
			entities.DepositStatusUnpaid: {
				DepositPay: {
					To:       entities.DepositStatusPaid,
					Validate: []lifecycle.Validator[entities.Deposit]{positiveAmount},
					Effect:   depositPaid,
				},
			},
			entities.DepositStatusPaid: {
				DepositRefundPartial: partial,
				DepositRefundFull:    full,
				DepositWithdraw: {
					To:       entities.DepositStatusWithdrawn,
					Guards:   staffOnly,
					Validate: []lifecycle.Validator[entities.Deposit]{noteRequired[entities.Deposit]("a withdrawal")},
					Effect:   depositWithdrawn,
				},
				DepositDueRefund: {
					To:     entities.DepositStatusDueRefund,
					Guards: staffOnly,
					Effect: func(_ context.Context, c lifecycle.Change[entities.Deposit]) error {
						c.Record.RefundAt = stamp(c.At)
						return nil
					},
				},
			},
			entities.DepositStatusDueRefund: {
				DepositRefundPartial: partial,
				DepositRefundFull:    full,
			},
		},
	}
}

func positiveAmount(_ *entities.Deposit, in lifecycle.Input) error {
	if in.Amount <= 0 {
		return lifecycle.Precondition("amount must be greater than zero")
	}
	return nil
}

func withinPaidAmount(d *entities.Deposit, in lifecycle.Input) error {
	if in.Amount <= 0 {
		return lifecycle.Precondition("revoked amount must be greater than zero")
	}
	if in.Amount > d.PaidAmount {
		return lifecycle.Precondition("revoked amount %.2f exceeds paid amount %.2f", in.Amount, d.PaidAmount)
	}
	return nil
}

func depositPaid(_ context.Context, c lifecycle.Change[entities.Deposit]) error {
	c.Record.PaidAmount = c.Input.Amount
	c.Record.PaidAt = stamp(c.At)
	return nil
}

func depositPartiallyRefunded(_ context.Context, c lifecycle.Change[entities.Deposit]) error {
	d := c.Record
	d.RevokedAmount = c.Input.Amount
	d.RefundedAmount = d.PaidAmount - c.Input.Amount
	d.RefundNote = c.Input.Note
	d.RefundedAt = stamp(c.At)
	return nil
}

func depositFullyRefunded(_ context.Context, c lifecycle.Change[entities.Deposit]) error {
	d := c.Record
	d.RevokedAmount = 0
	d.RefundedAmount = d.PaidAmount
	if c.Input.Note != "" {
		d.RefundNote = c.Input.Note
	}
	d.RefundedAt = stamp(c.At)
	return nil
}

func depositWithdrawn(_ context.Context, c lifecycle.Change[entities.Deposit]) error {
	d := c.Record
	d.RevokedAmount = d.PaidAmount
	d.RefundedAmount = 0
	d.RefundNote = c.Input.Note
	d.RefundedAt = stamp(c.At)
	return nil
}
