package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of *dynamodb.Client the repositories use.
type DynamoAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, in *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, in *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

var _ DynamoAPI = (*dynamodb.Client)(nil)

// Tables names the DynamoDB tables backing the store.
type Tables struct {
	Leases     string
	Invoices   string
	Quotations string
	Deposits   string
	Audit      string
	Outbox     string
	Metrics    string
}

// DefaultTables are used for every empty name.
var DefaultTables = Tables{
	Leases:     "leases",
	Invoices:   "invoices",
	Quotations: "quotations",
	Deposits:   "deposits",
	Audit:      "audit_log",
	Outbox:     "outbox",
	Metrics:    "utility_metrics",
}

func (t Tables) WithDefaults() Tables {
	pick := func(v, def string) string {
		if v != "" {
			return v
		}
		return def
	}
	return Tables{
		Leases:     pick(t.Leases, DefaultTables.Leases),
		Invoices:   pick(t.Invoices, DefaultTables.Invoices),
		Quotations: pick(t.Quotations, DefaultTables.Quotations),
		Deposits:   pick(t.Deposits, DefaultTables.Deposits),
		Audit:      pick(t.Audit, DefaultTables.Audit),
		Outbox:     pick(t.Outbox, DefaultTables.Outbox),
		Metrics:    pick(t.Metrics, DefaultTables.Metrics),
	}
}

// sortableTime is fixed width so that string order matches time order in
// sort keys.
const sortableTime = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(sortableTime)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(sortableTime, s)
	return t
}

func parseTimePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t := parseTime(s)
	return &t
}

func stringAttr(v string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: v}
}

func numberAttr(v int64) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: strconv.FormatInt(v, 10)}
}

func isConditionFailed(err error) bool {
	var cfe *types.ConditionalCheckFailedException
	return errors.As(err, &cfe)
}

// isTransactionConflict reports whether a TransactWriteItems call was
// cancelled because a condition failed or another transaction touched the
// same items.
func isTransactionConflict(err error) bool {
	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		for _, r := range tce.CancellationReasons {
			if r.Code == nil {
				continue
			}
			switch *r.Code {
			case "ConditionalCheckFailed", "TransactionConflict":
				return true
			}
		}
		return false
	}
	var tcf *types.TransactionConflictException
	return errors.As(err, &tcf)
}
