package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
	"venue_backoffice/internal/usecase/interfaces"
)

// Records stores one record kind as JSON documents in the records table,
// with status kept in its own indexed column.
type Records[T entities.Record] struct {
	store *Store
	kind  entities.RecordKind
}

var (
	_ interfaces.IRecordRepository[entities.Lease]     = (*Records[entities.Lease])(nil)
	_ interfaces.IRecordRepository[entities.Invoice]   = (*Records[entities.Invoice])(nil)
	_ interfaces.IRecordRepository[entities.Quotation] = (*Records[entities.Quotation])(nil)
	_ interfaces.IRecordRepository[entities.Deposit]   = (*Records[entities.Deposit])(nil)
)

func NewRecords[T entities.Record](store *Store) *Records[T] {
	var zero T
	return &Records[T]{store: store, kind: zero.RecordKind()}
}

func (r *Records[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T
	if rec.RecordID() == "" {
		return zero, errors.New("record id is required")
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return zero, err
	}
	tag, err := r.store.pool.Exec(ctx, `
		INSERT INTO records (kind, id, status, payload)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (kind, id) DO NOTHING`,
		string(r.kind), rec.RecordID(), rec.RecordStatus(), payload)
	if err != nil {
		return zero, err
	}
	if tag.RowsAffected() == 0 {
		return zero, lifecycle.ErrAlreadyExists
	}
	return rec, nil
}

func (r *Records[T]) Get(ctx context.Context, id string) (T, error) {
	return r.load(ctx, r.store.pool, id, "")
}

// ListByStatus returns the records holding status, ordered by id.
func (r *Records[T]) ListByStatus(ctx context.Context, status string) ([]T, error) {
	rows, err := r.store.pool.Query(ctx,
		`SELECT payload FROM records WHERE kind = $1 AND status = $2 ORDER BY id`,
		string(r.kind), status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var rec T
		if err := json.Unmarshal(payload, &rec); err != nil {
			return nil, fmt.Errorf("decode %s: %w", r.kind, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Transact locks the record row for the duration of fn and commits the
// record together with every ledger write fn made.
func (r *Records[T]) Transact(ctx context.Context, id string, fn func(lifecycle.Tx, *T) error) (T, error) {
	var zero T
	tx, err := r.store.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return zero, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rec, err := r.load(ctx, tx, id, " FOR UPDATE")
	if err != nil {
		return zero, err
	}
	if err := fn(&pgTx{q: tx, newID: r.store.newID}, &rec); err != nil {
		return zero, err
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return zero, err
	}
	if _, err := tx.Exec(ctx, `
		UPDATE records SET status = $3, payload = $4, updated_at = now()
		WHERE kind = $1 AND id = $2`,
		string(r.kind), id, rec.RecordStatus(), payload); err != nil {
		return zero, err
	}
	if err := tx.Commit(ctx); err != nil {
		return zero, err
	}
	return rec, nil
}

func (r *Records[T]) load(ctx context.Context, q querier, id, lock string) (T, error) {
	var (
		rec     T
		payload []byte
	)
	err := q.QueryRow(ctx,
		`SELECT payload FROM records WHERE kind = $1 AND id = $2`+lock,
		string(r.kind), id).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return rec, lifecycle.ErrNotFound
	}
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(payload, &rec); err != nil {
		return rec, fmt.Errorf("decode %s %s: %w", r.kind, id, err)
	}
	return rec, nil
}
