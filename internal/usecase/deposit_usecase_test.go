package usecase

import (
	"context"
	"errors"
	"testing"

	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
)

func TestDepositUseCase(t *testing.T) {
	ctx := context.Background()

	newPaid := func(t *testing.T) (*DepositUseCase, entities.Deposit) {
		s := newTestStores()
		uc := NewDepositUseCase(s.deposits, s.db, nil, testClock())
		d, err := uc.Create(ctx, CreateDeposit{TenantID: "t-1", LeaseID: "l-1", Amount: 350})
		if err != nil || d.Status != entities.DepositStatusUnpaid {
			t.Fatalf("create: %+v err=%v", d, err)
		}
		if _, err := uc.TransitionToPaid(ctx, d.ID, lifecycle.Input{Actor: testClerk, Amount: 350}); err != nil {
			t.Fatalf("pay: %v", err)
		}
		return uc, d
	}

	t.Run("create validation", func(t *testing.T) {
		s := newTestStores()
		uc := NewDepositUseCase(s.deposits, s.db, nil)
		if _, err := uc.Create(ctx, CreateDeposit{TenantID: "t-1", Amount: -1}); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("expected ErrInvalidAmount, got %v", err)
		}
		if _, err := uc.Create(ctx, CreateDeposit{Amount: 10}); !errors.Is(err, ErrInvalidTenantID) {
			t.Fatalf("expected ErrInvalidTenantID, got %v", err)
		}
	})

	t.Run("partial refund above paid amount", func(t *testing.T) {
		uc, d := newPaid(t)
		_, err := uc.TransitionToPartiallyRefunded(ctx, d.ID, lifecycle.Input{Actor: testManager, Amount: 400, Note: "damages"})
		if !errors.Is(err, lifecycle.ErrGuardDenied) {
			t.Fatalf("expected ErrGuardDenied, got %v", err)
		}
		got, _ := uc.GetByID(ctx, d.ID)
		if got.Status != entities.DepositStatusPaid || got.RevokedAmount != 0 {
			t.Fatalf("deposit changed: %+v", got)
		}
	})

	t.Run("employee cannot refund", func(t *testing.T) {
		uc, d := newPaid(t)
		_, err := uc.TransitionToFullyRefunded(ctx, d.ID, lifecycle.Input{Actor: testClerk})
		if !errors.Is(err, lifecycle.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("partial refund", func(t *testing.T) {
		uc, d := newPaid(t)
		got, err := uc.TransitionToPartiallyRefunded(ctx, d.ID, lifecycle.Input{Actor: testManager, Amount: 120, Note: " stained carpet "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.RevokedAmount != 120 || got.RefundedAmount != 230 || got.RefundNote != "stained carpet" {
			t.Fatalf("unexpected deposit: %+v", got)
		}
	})

	t.Run("withdraw and due refund", func(t *testing.T) {
		uc, d := newPaid(t)
		got, err := uc.TransitionToWithdrawn(ctx, d.ID, lifecycle.Input{Actor: testManager, Note: "no show"})
		if err != nil || got.Status != entities.DepositStatusWithdrawn {
			t.Fatalf("withdraw: %+v err=%v", got, err)
		}

		uc, d = newPaid(t)
		got, err = uc.TransitionToDueRefund(ctx, d.ID, lifecycle.Input{Actor: testManager})
		if err != nil || got.RefundAt == nil {
			t.Fatalf("due refund: %+v err=%v", got, err)
		}
		got, err = uc.TransitionToFullyRefunded(ctx, d.ID, lifecycle.Input{Actor: testManager})
		if err != nil || got.RefundedAmount != 350 {
			t.Fatalf("full refund: %+v err=%v", got, err)
		}
	})
}
