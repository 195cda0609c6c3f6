package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"venue_backoffice/internal/adapter/http/handlers/mocks"
	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/usecase"
)

func TestQuotationHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("create", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuotationUseCase(ctrl)
		h := NewQuotationHandler(uc, nil)

		r := gin.New()
		r.POST("/v1/quotations", h.CreateQuotation)

		uc.EXPECT().Create(gomock.Any(), usecase.CreateQuotation{TenantID: "t-1", LeaseID: "l-1", Amount: 1500}).
			Return(entities.Quotation{ID: "q-1", TenantID: "t-1", LeaseID: "l-1", Amount: 1500, Status: entities.QuotationStatusDraft}, nil)

		w := doRequest(r, http.MethodPost, "/v1/quotations", `{"tenant_id":"t-1","lease_id":"l-1","amount":1500}`, "")
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})

	t.Run("decline", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuotationUseCase(ctrl)
		h := NewQuotationHandler(uc, nil)

		r := gin.New()
		r.PATCH("/v1/quotations/:id/decline", h.Decline)

		now := time.Now().UTC()
		uc.EXPECT().TransitionToDeclined(gomock.Any(), "q-1", gomock.Any()).
			Return(entities.Quotation{ID: "q-1", Status: entities.QuotationStatusDeclined, RejectedAt: &now}, nil)

		w := doRequest(r, http.MethodPatch, "/v1/quotations/q-1/decline", "", "employee")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body["status"] != "declined" || body["rejected_at"] == nil {
			t.Fatalf("unexpected body: %+v", body)
		}
	})

	t.Run("expire overdue", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuotationUseCase(ctrl)
		h := NewQuotationHandler(uc, nil)
		now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		h.now = func() time.Time { return now }

		r := gin.New()
		r.POST("/v1/quotations/expire-overdue", h.ExpireOverdue)

		uc.EXPECT().ExpireOverdue(gomock.Any(), now).Return(3, nil)

		w := doRequest(r, http.MethodPost, "/v1/quotations/expire-overdue", "", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w.Body.String() != `{"expired":3}` {
			t.Fatalf("unexpected body %s", w.Body.String())
		}
	})
}
