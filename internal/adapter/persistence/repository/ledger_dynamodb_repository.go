package repository

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
	"venue_backoffice/internal/usecase/interfaces"
)

const (
	outboxPendingIndex = "pending-index"
	// pendingMarker is the only value of the sparse pending-index
	// partition key; it is removed once a message is dispatched.
	pendingMarker = "pending"
)

type auditItem struct {
	RecordKey  string            `dynamodbav:"record_key"`
	SortKey    string            `dynamodbav:"sort_key"`
	ID         string            `dynamodbav:"id"`
	RecordKind string            `dynamodbav:"record_kind"`
	RecordID   string            `dynamodbav:"record_id"`
	Action     string            `dynamodbav:"action"`
	FromStatus string            `dynamodbav:"from_status"`
	ToStatus   string            `dynamodbav:"to_status"`
	ActorID    string            `dynamodbav:"actor_id"`
	ActorGroup string            `dynamodbav:"actor_group"`
	Note       string            `dynamodbav:"note,omitempty"`
	Metadata   map[string]string `dynamodbav:"metadata,omitempty"`
	CreatedAt  string            `dynamodbav:"created_at"`
}

type outboxItem struct {
	ID           string            `dynamodbav:"id"`
	RecordKind   string            `dynamodbav:"record_kind"`
	RecordID     string            `dynamodbav:"record_id"`
	Topic        string            `dynamodbav:"topic"`
	Type         string            `dynamodbav:"type"`
	Recipient    string            `dynamodbav:"recipient,omitempty"`
	Payload      map[string]string `dynamodbav:"payload,omitempty"`
	RunAt        string            `dynamodbav:"run_at"`
	CreatedAt    string            `dynamodbav:"created_at"`
	DispatchedAt string            `dynamodbav:"dispatched_at,omitempty"`
	Pending      string            `dynamodbav:"pending,omitempty"`
}

// LedgerDynamoRepository stores what transitions write besides the record:
// audit entries, outbox messages and utility metrics.
//
// Table requirements:
//   - audit: PK record_key ("<kind>#<id>"), SK sort_key ("<created_at>#<id>")
//   - outbox: PK id; sparse GSI pending-index (PK: pending, SK: run_at)
//   - metrics: PK lease_id, SK id (queried with consistent reads so a
//     completion sees every reading committed before it)
type LedgerDynamoRepository struct {
	ddb    DynamoAPI
	tables Tables
}

var (
	_ interfaces.IAuditRepository         = (*LedgerDynamoRepository)(nil)
	_ interfaces.IOutboxRepository        = (*LedgerDynamoRepository)(nil)
	_ interfaces.IUtilityMetricRepository = (*LedgerDynamoRepository)(nil)
)

func NewLedgerDynamoRepository(ddb DynamoAPI, tables Tables) *LedgerDynamoRepository {
	return &LedgerDynamoRepository{ddb: ddb, tables: tables.WithDefaults()}
}

func (r *LedgerDynamoRepository) ListAudit(ctx context.Context, kind entities.RecordKind, id string) ([]entities.AuditEntry, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.Audit),
		KeyConditionExpression: aws.String("#record_key = :record_key"),
		ExpressionAttributeNames: map[string]string{
			"#record_key": "record_key",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":record_key": stringAttr(auditRecordKey(kind, id)),
		},
		ScanIndexForward: aws.Bool(true),
	})

	var out []entities.AuditEntry
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []auditItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, fromAuditItem(it))
		}
	}
	return out, nil
}

func (r *LedgerDynamoRepository) ListPending(ctx context.Context, now time.Time, limit int) ([]entities.OutboxMessage, error) {
	in := &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.Outbox),
		IndexName:              aws.String(outboxPendingIndex),
		KeyConditionExpression: aws.String("#pending = :pending AND #run_at <= :now"),
		ExpressionAttributeNames: map[string]string{
			"#pending": "pending",
			"#run_at":  "run_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pending": stringAttr(pendingMarker),
			":now":     stringAttr(formatTime(now)),
		},
		ScanIndexForward: aws.Bool(true),
	}
	if limit > 0 {
		in.Limit = aws.Int32(int32(limit))
	}

	out, err := r.ddb.Query(ctx, in)
	if err != nil {
		return nil, err
	}
	var items []outboxItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, err
	}
	msgs := make([]entities.OutboxMessage, 0, len(items))
	for _, it := range items {
		msgs = append(msgs, fromOutboxItem(it))
	}
	return msgs, nil
}

func (r *LedgerDynamoRepository) MarkDispatched(ctx context.Context, id string, at time.Time) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tables.Outbox),
		Key: map[string]types.AttributeValue{
			"id": stringAttr(id),
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #dispatched_at = if_not_exists(#dispatched_at, :at) REMOVE #pending"),
		ExpressionAttributeNames: map[string]string{
			"#id":            "id",
			"#dispatched_at": "dispatched_at",
			"#pending":       "pending",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":at": stringAttr(formatTime(at)),
		},
	})
	if err != nil && isConditionFailed(err) {
		return lifecycle.ErrNotFound
	}
	return err
}

func (r *LedgerDynamoRepository) ListMetrics(ctx context.Context, leaseID string) ([]entities.UtilityMetric, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tables.Metrics),
		KeyConditionExpression: aws.String("#lease_id = :lease_id"),
		ConsistentRead:         aws.Bool(true),
		ExpressionAttributeNames: map[string]string{
			"#lease_id": "lease_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":lease_id": stringAttr(leaseID),
		},
	})

	var out []entities.UtilityMetric
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var metrics []entities.UtilityMetric
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &metrics); err != nil {
			return nil, err
		}
		out = append(out, metrics...)
	}
	return out, nil
}

// dynamoTx collects ledger writes as TransactWriteItems entries.
type dynamoTx struct {
	ledger *LedgerDynamoRepository
	items  []types.TransactWriteItem
}

func (t *dynamoTx) AppendAudit(_ context.Context, e entities.AuditEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	av, err := attributevalue.MarshalMap(toAuditItem(e))
	if err != nil {
		return err
	}
	t.items = append(t.items, types.TransactWriteItem{Put: &types.Put{
		TableName: aws.String(t.ledger.tables.Audit),
		Item:      av,
	}})
	return nil
}

func (t *dynamoTx) Enqueue(_ context.Context, m entities.OutboxMessage) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if m.RunAt.IsZero() {
		m.RunAt = m.CreatedAt
	}
	av, err := attributevalue.MarshalMap(toOutboxItem(m))
	if err != nil {
		return err
	}
	t.items = append(t.items, types.TransactWriteItem{Put: &types.Put{
		TableName:           aws.String(t.ledger.tables.Outbox),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	}})
	return nil
}

// AddUtilityMetric puts the reading in the same TransactWriteItems call as
// the lease's versioned put, so it fails with the lease when a completion
// commits first.
func (t *dynamoTx) AddUtilityMetric(_ context.Context, m entities.UtilityMetric) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	av, err := attributevalue.MarshalMap(m)
	if err != nil {
		return err
	}
	t.items = append(t.items, types.TransactWriteItem{Put: &types.Put{
		TableName:           aws.String(t.ledger.tables.Metrics),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	}})
	return nil
}

// FinalizeUtilityMetrics adds one conditional update per open metric. The
// metrics are read before the commit; a reading added since then bumped
// the lease version, so the commit fails with ErrConflict.
func (t *dynamoTx) FinalizeUtilityMetrics(ctx context.Context, leaseID string, at time.Time) error {
	metrics, err := t.ledger.ListMetrics(ctx, leaseID)
	if err != nil {
		return err
	}
	finalizedAt, err := attributevalue.Marshal(at.UTC())
	if err != nil {
		return err
	}
	for _, m := range metrics {
		if m.Finalized {
			continue
		}
		t.items = append(t.items, types.TransactWriteItem{Update: &types.Update{
			TableName: aws.String(t.ledger.tables.Metrics),
			Key: map[string]types.AttributeValue{
				"lease_id": stringAttr(m.LeaseID),
				"id":       stringAttr(m.ID),
			},
			ConditionExpression: aws.String("attribute_exists(#id)"),
			UpdateExpression:    aws.String("SET #finalized = :true, #finalized_at = :at"),
			ExpressionAttributeNames: map[string]string{
				"#id":           "id",
				"#finalized":    "finalized",
				"#finalized_at": "finalized_at",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":true": &types.AttributeValueMemberBOOL{Value: true},
				":at":   finalizedAt,
			},
		}})
	}
	return nil
}

func auditRecordKey(kind entities.RecordKind, id string) string {
	return string(kind) + "#" + id
}

func toAuditItem(e entities.AuditEntry) auditItem {
	created := formatTime(e.CreatedAt)
	return auditItem{
		RecordKey:  auditRecordKey(e.RecordKind, e.RecordID),
		SortKey:    created + "#" + e.ID,
		ID:         e.ID,
		RecordKind: string(e.RecordKind),
		RecordID:   e.RecordID,
		Action:     e.Action,
		FromStatus: e.FromStatus,
		ToStatus:   e.ToStatus,
		ActorID:    e.ActorID,
		ActorGroup: string(e.ActorGroup),
		Note:       e.Note,
		Metadata:   e.Metadata,
		CreatedAt:  created,
	}
}

func fromAuditItem(it auditItem) entities.AuditEntry {
	return entities.AuditEntry{
		ID:         it.ID,
		RecordKind: entities.RecordKind(it.RecordKind),
		RecordID:   it.RecordID,
		Action:     it.Action,
		FromStatus: it.FromStatus,
		ToStatus:   it.ToStatus,
		ActorID:    it.ActorID,
		ActorGroup: entities.UserGroup(it.ActorGroup),
		Note:       it.Note,
		Metadata:   it.Metadata,
		CreatedAt:  parseTime(it.CreatedAt),
	}
}

func toOutboxItem(m entities.OutboxMessage) outboxItem {
	it := outboxItem{
		ID:         m.ID,
		RecordKind: string(m.RecordKind),
		RecordID:   m.RecordID,
		Topic:      string(m.Topic),
		Type:       m.Type,
		Recipient:  m.Recipient,
		Payload:    m.Payload,
		RunAt:      formatTime(m.RunAt),
		CreatedAt:  formatTime(m.CreatedAt),
	}
	if m.DispatchedAt != nil {
		it.DispatchedAt = formatTime(*m.DispatchedAt)
	} else {
		it.Pending = pendingMarker
	}
	return it
}

func fromOutboxItem(it outboxItem) entities.OutboxMessage {
	return entities.OutboxMessage{
		ID:           it.ID,
		RecordKind:   entities.RecordKind(it.RecordKind),
		RecordID:     it.RecordID,
		Topic:        entities.OutboxTopic(it.Topic),
		Type:         it.Type,
		Recipient:    it.Recipient,
		Payload:      it.Payload,
		RunAt:        parseTime(it.RunAt),
		CreatedAt:    parseTime(it.CreatedAt),
		DispatchedAt: parseTimePtr(it.DispatchedAt),
	}
}
