package entities

// RecordKind identifies the business object a lifecycle governs.
type RecordKind string

const (
	RecordKindLease     RecordKind = "lease"
	RecordKindInvoice   RecordKind = "invoice"
	RecordKindQuotation RecordKind = "quotation"
	RecordKindDeposit   RecordKind = "deposit"
)

// Record is implemented by every entity whose status is driven by a lifecycle.
//
// RecordKind must not depend on the receiver's fields: stores call it on the
// zero value to resolve table names.
type Record interface {
	RecordID() string
	RecordKind() RecordKind
	RecordStatus() string
}
