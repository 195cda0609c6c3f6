package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
	"venue_backoffice/internal/usecase/interfaces"
)

const (
	statusIndex   = "status-index"
	versionAttr   = "version"
	maxTransactOp = 100
)

// RecordDynamoRepository persists one kind of lifecycle record in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: status-index (PK: status)
//
// The record document is stored as its dynamodbav attributes plus a numeric
// version. Transact writes the record back with a condition on the version
// it read, inside the same TransactWriteItems call as the ledger writes, so
// a concurrent transition on the same record fails with
// lifecycle.ErrConflict instead of overwriting it.
type RecordDynamoRepository[T entities.Record] struct {
	ddb       DynamoAPI
	tableName string
	ledger    *LedgerDynamoRepository
}

var (
	_ interfaces.IRecordRepository[entities.Lease]     = (*RecordDynamoRepository[entities.Lease])(nil)
	_ interfaces.IRecordRepository[entities.Invoice]   = (*RecordDynamoRepository[entities.Invoice])(nil)
	_ interfaces.IRecordRepository[entities.Quotation] = (*RecordDynamoRepository[entities.Quotation])(nil)
	_ interfaces.IRecordRepository[entities.Deposit]   = (*RecordDynamoRepository[entities.Deposit])(nil)
)

func NewRecordDynamoRepository[T entities.Record](ddb DynamoAPI, tableName string, ledger *LedgerDynamoRepository) *RecordDynamoRepository[T] {
	return &RecordDynamoRepository[T]{ddb: ddb, tableName: tableName, ledger: ledger}
}

func (r *RecordDynamoRepository[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	av, err := r.toItem(rec, 1)
	if err != nil {
		return zero, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return zero, lifecycle.ErrAlreadyExists
		}
		return zero, err
	}
	return rec, nil
}

func (r *RecordDynamoRepository[T]) Get(ctx context.Context, id string) (T, error) {
	rec, _, err := r.get(ctx, id)
	return rec, err
}

func (r *RecordDynamoRepository[T]) ListByStatus(ctx context.Context, status string) ([]T, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(statusIndex),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": stringAttr(status),
		},
	})

	var out []T
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Items {
			rec, _, err := r.fromItem(item)
			if err != nil {
				return nil, err
			}
			out = append(out, rec)
		}
	}
	return out, nil
}

// Transact reads the record, runs fn and commits the record together with
// every ledger write fn made.
func (r *RecordDynamoRepository[T]) Transact(ctx context.Context, id string, fn func(lifecycle.Tx, *T) error) (T, error) {
	var zero T
	rec, version, err := r.get(ctx, id)
	if err != nil {
		return zero, err
	}

	tx := &dynamoTx{ledger: r.ledger}
	if err := fn(tx, &rec); err != nil {
		return zero, err
	}

	av, err := r.toItem(rec, version+1)
	if err != nil {
		return zero, err
	}
	put := &types.Put{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("#version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#version": versionAttr,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": numberAttr(version),
		},
	}
	if version == 0 {
		// Items written before versioning.
		put.ConditionExpression = aws.String("attribute_exists(#id) AND attribute_not_exists(#version)")
		put.ExpressionAttributeNames["#id"] = "id"
		put.ExpressionAttributeValues = nil
	}
	items := append([]types.TransactWriteItem{{Put: put}}, tx.items...)
	if len(items) > maxTransactOp {
		return zero, fmt.Errorf("transition on %s writes %d items, above the DynamoDB limit of %d", id, len(items), maxTransactOp)
	}

	if _, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items}); err != nil {
		if isTransactionConflict(err) {
			return zero, fmt.Errorf("%w: %s %s", lifecycle.ErrConflict, rec.RecordKind(), id)
		}
		return zero, err
	}
	return rec, nil
}

func (r *RecordDynamoRepository[T]) get(ctx context.Context, id string) (T, int64, error) {
	var zero T
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": stringAttr(id),
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return zero, 0, err
	}
	if len(out.Item) == 0 {
		return zero, 0, lifecycle.ErrNotFound
	}
	return r.fromItem(out.Item)
}

func (r *RecordDynamoRepository[T]) toItem(rec T, version int64) (map[string]types.AttributeValue, error) {
	av, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return nil, err
	}
	av[versionAttr] = numberAttr(version)
	return av, nil
}

func (r *RecordDynamoRepository[T]) fromItem(item map[string]types.AttributeValue) (T, int64, error) {
	var rec T
	if err := attributevalue.UnmarshalMap(item, &rec); err != nil {
		return rec, 0, err
	}
	var version int64
	if n, ok := item[versionAttr].(*types.AttributeValueMemberN); ok {
		version, _ = strconv.ParseInt(n.Value, 10, 64)
	}
	return rec, version, nil
}
