// Package postgres stores records and their ledgers in Postgres through
// pgx. Transitions lock the record row with SELECT ... FOR UPDATE for the
// whole transaction, so concurrent transitions on one record run one after
// the other against fresh state.
package postgres

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
	"venue_backoffice/internal/usecase/interfaces"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// querier is satisfied by *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store owns the pool and the audit, outbox and utility metric tables.
// Record tables are attached with NewRecords.
type Store struct {
	pool  *pgxpool.Pool
	newID func() string
}

var (
	_ interfaces.IAuditRepository         = (*Store)(nil)
	_ interfaces.IOutboxRepository        = (*Store)(nil)
	_ interfaces.IUtilityMetricRepository = (*Store)(nil)
)

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, newID: uuid.NewString}
}

// Migrate applies the embedded migrations.
func (s *Store) Migrate() error {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	db := stdlib.OpenDBFromPool(s.pool)
	defer db.Close()

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}

func (s *Store) ListAudit(ctx context.Context, kind entities.RecordKind, id string) ([]entities.AuditEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, record_kind, record_id, action, from_status, to_status,
		       actor_id, actor_group, note, metadata, created_at
		FROM audit_log
		WHERE record_kind = $1 AND record_id = $2
		ORDER BY created_at, id`, string(kind), id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entities.AuditEntry
	for rows.Next() {
		var (
			e        entities.AuditEntry
			metadata []byte
		)
		if err := rows.Scan(&e.ID, &e.RecordKind, &e.RecordID, &e.Action, &e.FromStatus, &e.ToStatus,
			&e.ActorID, &e.ActorGroup, &e.Note, &metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		if e.Metadata, err = decodeMap(metadata); err != nil {
			return nil, fmt.Errorf("decode audit metadata %s: %w", e.ID, err)
		}
		e.CreatedAt = e.CreatedAt.UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) ListPending(ctx context.Context, now time.Time, limit int) ([]entities.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.pool.Query(ctx, `
		SELECT id, record_kind, record_id, topic, type, recipient, payload, run_at, created_at
		FROM outbox
		WHERE dispatched_at IS NULL AND run_at <= $1
		ORDER BY run_at, id
		LIMIT $2`, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entities.OutboxMessage
	for rows.Next() {
		var (
			m       entities.OutboxMessage
			payload []byte
		)
		if err := rows.Scan(&m.ID, &m.RecordKind, &m.RecordID, &m.Topic, &m.Type, &m.Recipient,
			&payload, &m.RunAt, &m.CreatedAt); err != nil {
			return nil, err
		}
		if m.Payload, err = decodeMap(payload); err != nil {
			return nil, fmt.Errorf("decode outbox payload %s: %w", m.ID, err)
		}
		m.RunAt, m.CreatedAt = m.RunAt.UTC(), m.CreatedAt.UTC()
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) MarkDispatched(ctx context.Context, id string, at time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE outbox SET dispatched_at = COALESCE(dispatched_at, $2) WHERE id = $1`, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return lifecycle.ErrNotFound
	}
	return nil
}

func (s *Store) ListMetrics(ctx context.Context, leaseID string) ([]entities.UtilityMetric, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, lease_id, utility, start_reading, end_reading, finalized, finalized_at, created_at
		FROM utility_metrics
		WHERE lease_id = $1
		ORDER BY created_at, id`, leaseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entities.UtilityMetric
	for rows.Next() {
		var m entities.UtilityMetric
		if err := rows.Scan(&m.ID, &m.LeaseID, &m.Utility, &m.StartReading, &m.EndReading,
			&m.Finalized, &m.FinalizedAt, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.CreatedAt = m.CreatedAt.UTC()
		if m.FinalizedAt != nil {
			t := m.FinalizedAt.UTC()
			m.FinalizedAt = &t
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// pgTx writes ledger rows inside the transition's transaction.
type pgTx struct {
	q     querier
	newID func() string
}

func (t *pgTx) AppendAudit(ctx context.Context, e entities.AuditEntry) error {
	if e.ID == "" {
		e.ID = t.newID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	metadata, err := encodeMap(e.Metadata)
	if err != nil {
		return err
	}
	_, err = t.q.Exec(ctx, `
		INSERT INTO audit_log (id, record_kind, record_id, action, from_status, to_status,
		                       actor_id, actor_group, note, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		e.ID, string(e.RecordKind), e.RecordID, e.Action, e.FromStatus, e.ToStatus,
		e.ActorID, string(e.ActorGroup), e.Note, metadata, e.CreatedAt)
	return err
}

func (t *pgTx) Enqueue(ctx context.Context, m entities.OutboxMessage) error {
	if m.ID == "" {
		m.ID = t.newID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if m.RunAt.IsZero() {
		m.RunAt = m.CreatedAt
	}
	payload, err := encodeMap(m.Payload)
	if err != nil {
		return err
	}
	_, err = t.q.Exec(ctx, `
		INSERT INTO outbox (id, record_kind, record_id, topic, type, recipient, payload, run_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.ID, string(m.RecordKind), m.RecordID, string(m.Topic), m.Type, m.Recipient, payload, m.RunAt, m.CreatedAt)
	return err
}

func (t *pgTx) FinalizeUtilityMetrics(ctx context.Context, leaseID string, at time.Time) error {
	_, err := t.q.Exec(ctx, `
		UPDATE utility_metrics SET finalized = TRUE, finalized_at = $2
		WHERE lease_id = $1 AND NOT finalized`, leaseID, at)
	return err
}

func (t *pgTx) AddUtilityMetric(ctx context.Context, m entities.UtilityMetric) error {
	if m.ID == "" {
		m.ID = t.newID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	tag, err := t.q.Exec(ctx, `
		INSERT INTO utility_metrics (id, lease_id, utility, start_reading, end_reading, finalized, finalized_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING`,
		m.ID, m.LeaseID, string(m.Utility), m.StartReading, m.EndReading, m.Finalized, m.FinalizedAt, m.CreatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return lifecycle.ErrAlreadyExists
	}
	return nil
}

func encodeMap(m map[string]string) ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func decodeMap(b []byte) (map[string]string, error) {
	var m map[string]string
	if len(b) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, nil
	}
	return m, nil
}
