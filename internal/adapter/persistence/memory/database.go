// Package memory keeps records and their ledgers in process. A single mutex
// serializes every write, so transitions on the same record never
// interleave. It backs the test suites and the "memory" storage driver.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
)

// Database owns the shared lock and the audit, outbox and utility metric
// ledgers. Record tables are attached with NewRecords.
type Database struct {
	mu      sync.Mutex
	audit   []entities.AuditEntry
	outbox  []entities.OutboxMessage
	metrics []entities.UtilityMetric
	newID   func() string
}

func NewDatabase() *Database {
	return &Database{newID: uuid.NewString}
}

// ListAudit returns the audit trail of one record, oldest first.
func (db *Database) ListAudit(_ context.Context, kind entities.RecordKind, id string) ([]entities.AuditEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []entities.AuditEntry
	for _, e := range db.audit {
		if e.RecordKind == kind && e.RecordID == id {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListPending returns undispatched messages whose RunAt is not after now,
// ordered by RunAt.
func (db *Database) ListPending(_ context.Context, now time.Time, limit int) ([]entities.OutboxMessage, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []entities.OutboxMessage
	for _, m := range db.outbox {
		if m.Due(now) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RunAt.Before(out[j].RunAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (db *Database) MarkDispatched(_ context.Context, id string, at time.Time) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.outbox {
		if db.outbox[i].ID == id {
			if db.outbox[i].DispatchedAt == nil {
				t := at
				db.outbox[i].DispatchedAt = &t
			}
			return nil
		}
	}
	return lifecycle.ErrNotFound
}

func (db *Database) ListMetrics(_ context.Context, leaseID string) ([]entities.UtilityMetric, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var out []entities.UtilityMetric
	for _, m := range db.metrics {
		if m.LeaseID == leaseID {
			out = append(out, m)
		}
	}
	return out, nil
}

// tx stages ledger writes until the surrounding Transact commits.
type tx struct {
	db       *Database
	audit    []entities.AuditEntry
	outbox   []entities.OutboxMessage
	metrics  []entities.UtilityMetric
	finalize map[string]time.Time
}

func (t *tx) AppendAudit(_ context.Context, e entities.AuditEntry) error {
	if e.ID == "" {
		e.ID = t.db.newID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	t.audit = append(t.audit, e)
	return nil
}

func (t *tx) Enqueue(_ context.Context, m entities.OutboxMessage) error {
	if m.ID == "" {
		m.ID = t.db.newID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	if m.RunAt.IsZero() {
		m.RunAt = m.CreatedAt
	}
	t.outbox = append(t.outbox, m)
	return nil
}

func (t *tx) FinalizeUtilityMetrics(_ context.Context, leaseID string, at time.Time) error {
	if t.finalize == nil {
		t.finalize = map[string]time.Time{}
	}
	t.finalize[leaseID] = at
	return nil
}

// AddUtilityMetric runs with db.mu held by Transact.
func (t *tx) AddUtilityMetric(_ context.Context, m entities.UtilityMetric) error {
	if m.ID == "" {
		m.ID = t.db.newID()
	}
	for _, set := range [][]entities.UtilityMetric{t.db.metrics, t.metrics} {
		for _, existing := range set {
			if existing.ID == m.ID {
				return lifecycle.ErrAlreadyExists
			}
		}
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	t.metrics = append(t.metrics, m)
	return nil
}

// commit must run with db.mu held.
func (t *tx) commit() {
	db := t.db
	db.audit = append(db.audit, t.audit...)
	db.outbox = append(db.outbox, t.outbox...)
	db.metrics = append(db.metrics, t.metrics...)
	for leaseID, at := range t.finalize {
		for i := range db.metrics {
			m := &db.metrics[i]
			if m.LeaseID == leaseID && !m.Finalized {
				ts := at
				m.Finalized = true
				m.FinalizedAt = &ts
			}
		}
	}
}
