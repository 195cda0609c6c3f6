package entities

import "time"

// DepositStatus represents the lifecycle of a security deposit.

type DepositStatus string

const (
	DepositStatusUnpaid            DepositStatus = "unpaid"
	DepositStatusPaid              DepositStatus = "paid"
	DepositStatusPartiallyRefunded DepositStatus = "partially_refunded"
	DepositStatusFullyRefunded     DepositStatus = "fully_refunded"
	DepositStatusWithdrawn         DepositStatus = "withdrawn"
	DepositStatusDueRefund         DepositStatus = "due_refund"
)

var DepositStatuses = []DepositStatus{
	DepositStatusUnpaid,
	DepositStatusPaid,
	DepositStatusPartiallyRefunded,
	DepositStatusFullyRefunded,
	DepositStatusWithdrawn,
	DepositStatusDueRefund,
}

func (s DepositStatus) Valid() bool {
	for _, v := range DepositStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Deposit is the security deposit a tenant pays for a lease.
//
// Monetary representation:
//   - Amount is the deposit requested from the tenant.
//   - PaidAmount is what was actually received.
//   - RevokedAmount is the part withheld when refunding; RefundedAmount is
//     what was returned.
type Deposit struct {
	ID             string        `json:"id" dynamodbav:"id"`
	TenantID       string        `json:"tenant_id" dynamodbav:"tenant_id"`
	LeaseID        string        `json:"lease_id,omitempty" dynamodbav:"lease_id,omitempty"`
	Amount         float64       `json:"amount" dynamodbav:"amount"`
	Status         DepositStatus `json:"status" dynamodbav:"status"`
	PaidAmount     float64       `json:"paid_amount" dynamodbav:"paid_amount"`
	PaidAt         *time.Time    `json:"paid_at,omitempty" dynamodbav:"paid_at,omitempty"`
	RevokedAmount  float64       `json:"revoked_amount" dynamodbav:"revoked_amount"`
	RefundedAmount float64       `json:"refunded_amount" dynamodbav:"refunded_amount"`
	RefundNote     string        `json:"refund_note,omitempty" dynamodbav:"refund_note,omitempty"`
	RefundAt       *time.Time    `json:"refund_at,omitempty" dynamodbav:"refund_at,omitempty"`
	RefundedAt     *time.Time    `json:"refunded_at,omitempty" dynamodbav:"refunded_at,omitempty"`
	CreatedAt      time.Time     `json:"created_at" dynamodbav:"created_at"`
}

func (d Deposit) RecordID() string { return d.ID }
func (Deposit) RecordKind() RecordKind { return RecordKindDeposit }
func (d Deposit) RecordStatus() string { return string(d.Status) }
