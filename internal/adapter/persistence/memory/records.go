package memory

import (
	"context"
	"errors"
	"sort"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
)

type cloner[T any] interface {
	Clone() T
}

// Records is the table of one record kind.
type Records[T entities.Record] struct {
	db   *Database
	rows map[string]T
}

func NewRecords[T entities.Record](db *Database) *Records[T] {
	return &Records[T]{db: db, rows: map[string]T{}}
}

func (r *Records[T]) Create(_ context.Context, rec T) (T, error) {
	var zero T
	if rec.RecordID() == "" {
		return zero, errors.New("record id is required")
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.rows[rec.RecordID()]; ok {
		return zero, lifecycle.ErrAlreadyExists
	}
	r.rows[rec.RecordID()] = copyOf(rec)
	return copyOf(rec), nil
}

func (r *Records[T]) Get(_ context.Context, id string) (T, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	rec, ok := r.rows[id]
	if !ok {
		var zero T
		return zero, lifecycle.ErrNotFound
	}
	return copyOf(rec), nil
}

// ListByStatus returns the records holding status, ordered by id.
func (r *Records[T]) ListByStatus(_ context.Context, status string) ([]T, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	var out []T
	for _, rec := range r.rows {
		if rec.RecordStatus() == status {
			out = append(out, copyOf(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecordID() < out[j].RecordID() })
	return out, nil
}

// Transact holds the database lock for the whole call. fn works on a copy;
// the copy and the staged ledger writes replace the stored state only when
// fn succeeds.
func (r *Records[T]) Transact(_ context.Context, id string, fn func(lifecycle.Tx, *T) error) (T, error) {
	var zero T
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored, ok := r.rows[id]
	if !ok {
		return zero, lifecycle.ErrNotFound
	}
	work := copyOf(stored)
	t := &tx{db: r.db}
	if err := fn(t, &work); err != nil {
		return zero, err
	}
	r.rows[id] = work
	t.commit()
	return copyOf(work), nil
}

func copyOf[T any](rec T) T {
	if c, ok := any(rec).(cloner[T]); ok {
		return c.Clone()
	}
	return rec
}
