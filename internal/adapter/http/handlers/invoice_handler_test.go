package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"venue_backoffice/internal/adapter/http/handlers/mocks"
	"venue_backoffice/internal/domain/entities"
	"venue_backoffice/internal/domain/lifecycle"
	"venue_backoffice/internal/domain/transitions"
	"venue_backoffice/internal/usecase"
)

func TestInvoiceHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("create draft", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		h := NewInvoiceHandler(uc, nil)

		r := gin.New()
		r.POST("/v1/invoices", h.CreateInvoice)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, in usecase.CreateInvoice) (entities.Invoice, error) {
			if in.TenantID != "t-1" || len(in.Lines) != 1 || in.Lines[0].Total() != 300 {
				t.Fatalf("unexpected command: %+v", in)
			}
			return entities.Invoice{ID: "inv-1", TenantID: in.TenantID, Lines: in.Lines, Status: entities.InvoiceStatusDraft}, nil
		})

		w := doRequest(r, http.MethodPost, "/v1/invoices", `{"tenant_id":"t-1","lines":[{"description":"hall","quantity":1,"unit_price":300}]}`, "")
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid body: %v", err)
		}
		if body["status"] != "draft" || body["total"] != 300.0 {
			t.Fatalf("unexpected body: %+v", body)
		}
	})

	t.Run("missing tenant", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		h := NewInvoiceHandler(uc, nil)

		r := gin.New()
		r.POST("/v1/invoices", h.CreateInvoice)

		w := doRequest(r, http.MethodPost, "/v1/invoices", `{"lines":[]}`, "")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("open without lines is a failed precondition", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		h := NewInvoiceHandler(uc, nil)

		r := gin.New()
		r.PATCH("/v1/invoices/:id/open", h.Open)

		uc.EXPECT().TransitionToOpen(gomock.Any(), "inv-1", gomock.Any()).Return(entities.Invoice{}, &lifecycle.TransitionError{
			Kind:   entities.RecordKindInvoice,
			ID:     "inv-1",
			From:   string(entities.InvoiceStatusDraft),
			Action: transitions.InvoiceOpen,
			Err:    lifecycle.Precondition("an invoice needs at least one line to be opened"),
		})

		w := doRequest(r, http.MethodPatch, "/v1/invoices/inv-1/open", "", "employee")
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		if got := decodeError(t, w).Message; got != "an invoice needs at least one line to be opened" {
			t.Fatalf("unexpected message %q", got)
		}
	})

	t.Run("pay from uncollected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		h := NewInvoiceHandler(uc, nil)

		r := gin.New()
		r.PATCH("/v1/invoices/:id/pay", h.Pay)

		uc.EXPECT().TransitionToPaid(gomock.Any(), "inv-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, in lifecycle.Input) (entities.Invoice, error) {
				if in.Metadata["client.reference"] != "bank-transfer-7" {
					t.Fatalf("metadata not forwarded: %+v", in.Metadata)
				}
				return entities.Invoice{ID: "inv-1", Status: entities.InvoiceStatusPaid}, nil
			})

		w := doRequest(r, http.MethodPatch, "/v1/invoices/inv-1/pay", `{"metadata":{"reference":"bank-transfer-7"}}`, "administrator")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("client cannot set the instant or service metadata", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		h := NewInvoiceHandler(uc, nil)

		r := gin.New()
		r.PATCH("/v1/invoices/:id/open", h.Open)

		uc.EXPECT().TransitionToOpen(gomock.Any(), "inv-1", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, in lifecycle.Input) (entities.Invoice, error) {
				if !in.At.IsZero() {
					t.Fatalf("instant must come from the server clock, got %v", in.At)
				}
				if _, ok := in.Metadata["provider_payment_id"]; ok {
					t.Fatalf("service metadata key accepted from client: %+v", in.Metadata)
				}
				if _, ok := in.Metadata[lifecycle.MetadataEffectiveAt]; ok {
					t.Fatalf("service metadata key accepted from client: %+v", in.Metadata)
				}
				if in.Metadata["client.provider_payment_id"] != "forged" {
					t.Fatalf("expected namespaced client metadata, got %+v", in.Metadata)
				}
				return entities.Invoice{ID: "inv-1", Status: entities.InvoiceStatusOpen}, nil
			})

		body := `{"at":"1999-01-01T00:00:00Z","metadata":{"provider_payment_id":"forged","effective_at":"1999-01-01"}}`
		w := doRequest(r, http.MethodPatch, "/v1/invoices/inv-1/open", body, "employee")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("too much metadata", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		h := NewInvoiceHandler(uc, nil)

		r := gin.New()
		r.PATCH("/v1/invoices/:id/open", h.Open)

		meta := make([]string, 0, 17)
		for i := 0; i < 17; i++ {
			meta = append(meta, fmt.Sprintf(`"k%d":"v"`, i))
		}
		w := doRequest(r, http.MethodPatch, "/v1/invoices/inv-1/open", `{"metadata":{`+strings.Join(meta, ",")+`}}`, "employee")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("void conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		h := NewInvoiceHandler(uc, nil)

		r := gin.New()
		r.PATCH("/v1/invoices/:id/void", h.Void)

		uc.EXPECT().TransitionToVoid(gomock.Any(), "inv-1", gomock.Any()).Return(entities.Invoice{}, lifecycle.ErrConflict)

		w := doRequest(r, http.MethodPatch, "/v1/invoices/inv-1/void", "", "manager")
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		if got := decodeError(t, w).Code; got != "CONCURRENT_MODIFICATION" {
			t.Fatalf("expected CONCURRENT_MODIFICATION, got %s", got)
		}
	})

	t.Run("history", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIInvoiceUseCase(ctrl)
		h := NewInvoiceHandler(uc, nil)

		r := gin.New()
		r.GET("/v1/invoices/:id/audit", h.GetHistory)

		uc.EXPECT().History(gomock.Any(), "inv-1").Return([]entities.AuditEntry{
			{ID: "a-1", Action: "open", FromStatus: "draft", ToStatus: "open", ActorID: "u-1", ActorGroup: entities.UserGroupEmployee},
		}, nil)

		w := doRequest(r, http.MethodGet, "/v1/invoices/inv-1/audit", "", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || len(body) != 1 || body[0]["to_status"] != "open" {
			t.Fatalf("unexpected body %s: %v", w.Body.String(), err)
		}
	})
}
