package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
	"venue_backoffice/internal/usecase/interfaces"
)

func TestLeaseUseCase_Create(t *testing.T) {
	ctx := context.Background()
	s := newTestStores()
	uc := NewLeaseUseCase(s.leases, s.db, s.db, nil, testClock())
	start := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name string
			in   CreateLease
			want error
		}{
			{"tenant", CreateLease{VenueID: "v-1", StartsAt: start, EndsAt: start.Add(time.Hour)}, ErrInvalidTenantID},
			{"venue", CreateLease{TenantID: "t-1", StartsAt: start, EndsAt: start.Add(time.Hour)}, ErrInvalidVenueID},
			{"period", CreateLease{TenantID: "t-1", VenueID: "v-1", StartsAt: start, EndsAt: start}, ErrInvalidPeriod},
		}
		for _, tc := range cases {
			if _, err := uc.Create(ctx, tc.in); !errors.Is(err, tc.want) {
				t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
			}
		}
	})

	t.Run("starts as request", func(t *testing.T) {
		l, err := uc.Create(ctx, CreateLease{TenantID: " t-1 ", VenueID: "v-1", StartsAt: start, EndsAt: start.Add(6 * time.Hour)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if l.ID == "" || l.TenantID != "t-1" || l.Status != entities.LeaseStatusRequest || l.CreatedAt.IsZero() {
			t.Fatalf("unexpected lease: %+v", l)
		}

		got, err := uc.GetByID(ctx, l.ID)
		if err != nil || got.ID != l.ID {
			t.Fatalf("expected stored lease, got %+v err=%v", got, err)
		}
	})
}

func TestLeaseUseCase_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestStores()
	uc := NewLeaseUseCase(s.leases, s.db, s.db, nil, testClock())
	start := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)

	l, err := uc.Create(ctx, CreateLease{TenantID: "t-1", VenueID: "v-1", StartsAt: start, EndsAt: start.Add(5 * time.Hour)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	in := lifecycle.Input{Actor: testClerk}
	for _, step := range []struct {
		name string
		fn   func(context.Context, string, lifecycle.Input) (entities.Lease, error)
		want entities.LeaseStatus
	}{
		{"quote", uc.TransitionToQuotation, entities.LeaseStatusQuotation},
		{"option", uc.TransitionToOption, entities.LeaseStatusOption},
		{"confirm", uc.TransitionToConfirmed, entities.LeaseStatusConfirmed},
	} {
		got, err := step.fn(ctx, l.ID, in)
		if err != nil {
			t.Fatalf("%s: %v", step.name, err)
		}
		if got.Status != step.want {
			t.Fatalf("%s: expected %s, got %s", step.name, step.want, got.Status)
		}
	}

	if _, err := uc.AddUtilityMetric(ctx, l.ID, entities.UtilityMetric{Utility: entities.UtilityElectricity, StartReading: 1200, EndReading: 1290}); err != nil {
		t.Fatalf("add metric: %v", err)
	}
	if _, err := uc.AddUtilityMetric(ctx, l.ID, entities.UtilityMetric{Utility: "steam"}); !errors.Is(err, ErrInvalidUtility) {
		t.Fatalf("expected ErrInvalidUtility, got %v", err)
	}
	if _, err := uc.AddUtilityMetric(ctx, l.ID, entities.UtilityMetric{Utility: entities.UtilityGas, StartReading: 10, EndReading: 5}); !errors.Is(err, ErrInvalidReadings) {
		t.Fatalf("expected ErrInvalidReadings, got %v", err)
	}

	done, err := uc.TransitionToCompleted(ctx, l.ID, in)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != entities.LeaseStatusFinalized {
		t.Fatalf("expected finalized, got %s", done.Status)
	}

	metrics, err := uc.ListUtilityMetrics(ctx, l.ID)
	if err != nil || len(metrics) != 1 || !metrics[0].Finalized {
		t.Fatalf("expected one finalized metric, got %+v err=%v", metrics, err)
	}
	if metrics[0].Consumption() != 90 {
		t.Fatalf("expected consumption 90, got %v", metrics[0].Consumption())
	}
	if _, err := uc.AddUtilityMetric(ctx, l.ID, entities.UtilityMetric{Utility: entities.UtilityWater}); !errors.Is(err, ErrLeaseClosed) {
		t.Fatalf("expected ErrLeaseClosed, got %v", err)
	}

	archived, err := uc.Archive(ctx, l.ID, in)
	if err != nil || archived.ArchivedAt == nil {
		t.Fatalf("archive: %+v err=%v", archived, err)
	}
	if _, err := uc.TransitionToCancelled(ctx, l.ID, lifecycle.Input{Actor: testClerk, Note: "late"}); !errors.Is(err, lifecycle.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}

	history, err := uc.History(ctx, l.ID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	wantActions := []string{"quote", "option", "confirm", "complete", "archive"}
	if len(history) != len(wantActions) {
		t.Fatalf("expected %d audit entries, got %d", len(wantActions), len(history))
	}
	for i, a := range wantActions {
		if history[i].Action != a || history[i].ActorID != testClerk.ID {
			t.Fatalf("entry %d: unexpected %+v", i, history[i])
		}
	}

	actions, err := uc.AllowedActions(ctx, l.ID, testClerk)
	if err != nil || len(actions) != 0 {
		t.Fatalf("archived lease should offer nothing, got %v err=%v", actions, err)
	}
}

func TestLeaseUseCase_Lookups(t *testing.T) {
	ctx := context.Background()
	s := newTestStores()
	uc := NewLeaseUseCase(s.leases, s.db, s.db, nil)

	if _, err := uc.GetByID(ctx, "  "); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := uc.GetByID(ctx, "missing"); !errors.Is(err, lifecycle.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := uc.ListByStatus(ctx, "archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := uc.History(ctx, "missing"); !errors.Is(err, lifecycle.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := uc.TransitionToConfirmed(ctx, "", lifecycle.Input{Actor: testClerk}); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}

	start := time.Date(2026, 7, 1, 10, 0, 0, 0, time.UTC)
	l, _ := uc.Create(ctx, CreateLease{TenantID: "t-1", VenueID: "v-1", StartsAt: start, EndsAt: start.Add(time.Hour)})
	requests, err := uc.ListByStatus(ctx, "request")
	if err != nil || len(requests) != 1 || requests[0].ID != l.ID {
		t.Fatalf("expected the new lease, got %+v err=%v", requests, err)
	}

	actions, err := uc.AllowedActions(ctx, l.ID, testClerk)
	if err != nil {
		t.Fatalf("allowed actions: %v", err)
	}
	want := []lifecycle.Action{"cancel", "confirm", "option", "quote"}
	if len(actions) != len(want) {
		t.Fatalf("expected %v, got %v", want, actions)
	}
	for i := range want {
		if actions[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, actions)
		}
	}
}

// interleavedLeases runs before() once, ahead of the first Transact it
// serves, to let another transition commit in between.
type interleavedLeases struct {
	interfaces.IRecordRepository[entities.Lease]
	before func()
}

func (r *interleavedLeases) Transact(ctx context.Context, id string, fn func(lifecycle.Tx, *entities.Lease) error) (entities.Lease, error) {
	if before := r.before; before != nil {
		r.before = nil
		before()
	}
	return r.IRecordRepository.Transact(ctx, id, fn)
}

func TestLeaseUseCase_AddUtilityMetricRacesCompletion(t *testing.T) {
	ctx := context.Background()
	s := newTestStores()
	leases := &interleavedLeases{IRecordRepository: s.leases}
	uc := NewLeaseUseCase(leases, s.db, s.db, nil, testClock())
	start := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)

	l, err := uc.Create(ctx, CreateLease{TenantID: "t-1", VenueID: "v-1", StartsAt: start, EndsAt: start.Add(5 * time.Hour)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := uc.TransitionToConfirmed(ctx, l.ID, lifecycle.Input{Actor: testClerk}); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	leases.before = func() {
		if _, err := uc.TransitionToCompleted(ctx, l.ID, lifecycle.Input{Actor: testClerk}); err != nil {
			t.Fatalf("complete: %v", err)
		}
	}
	_, err = uc.AddUtilityMetric(ctx, l.ID, entities.UtilityMetric{Utility: entities.UtilityWater, StartReading: 3, EndReading: 9})
	if !errors.Is(err, ErrLeaseClosed) {
		t.Fatalf("expected ErrLeaseClosed, got %v", err)
	}

	metrics, err := uc.ListUtilityMetrics(ctx, l.ID)
	if err != nil {
		t.Fatalf("list metrics: %v", err)
	}
	if len(metrics) != 0 {
		t.Fatalf("finalized lease must not gain readings, got %+v", metrics)
	}

	if _, err := uc.AddUtilityMetric(ctx, "missing", entities.UtilityMetric{Utility: entities.UtilityGas}); !errors.Is(err, lifecycle.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
