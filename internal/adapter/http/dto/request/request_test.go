package request

import (
	"testing"

	"venue_backoffice/internal/domain/entities"
)

func TestTransitionRequest_ToInput(t *testing.T) {
	actor := entities.Actor{ID: "u-1", Group: entities.UserGroupManager}

	t.Run("defaults", func(t *testing.T) {
		in := TransitionRequest{Note: "  late  "}.ToInput(actor)
		if in.Actor != actor {
			t.Fatalf("unexpected actor: %+v", in.Actor)
		}
		if in.Note != "late" {
			t.Fatalf("expected trimmed note, got %q", in.Note)
		}
		if !in.At.IsZero() {
			t.Fatalf("expected zero time, got %v", in.At)
		}
	})

	t.Run("client metadata is namespaced", func(t *testing.T) {
		in := TransitionRequest{Amount: 40, Metadata: map[string]string{"ref": "x", " ": "blank", "provider_payment_id": "forged"}}.ToInput(actor)
		if in.Amount != 40 || in.Metadata["client.ref"] != "x" {
			t.Fatalf("unexpected payload: %+v", in)
		}
		if _, ok := in.Metadata["provider_payment_id"]; ok {
			t.Fatalf("unprefixed key kept: %+v", in.Metadata)
		}
		if len(in.Metadata) != 2 {
			t.Fatalf("expected blank key dropped, got %+v", in.Metadata)
		}
		if !in.At.IsZero() {
			t.Fatalf("expected zero time, got %v", in.At)
		}
	})
}

func TestCreateRequests_ToCommand(t *testing.T) {
	lease := CreateLeaseRequest{TenantID: " t-1 ", VenueID: " v-1 "}.ToCommand()
	if lease.TenantID != "t-1" || lease.VenueID != "v-1" {
		t.Fatalf("unexpected lease command: %+v", lease)
	}

	inv := CreateInvoiceRequest{
		TenantID: "t-1",
		Lines:    []InvoiceLineRequest{{Description: " hall ", Quantity: 2, UnitPrice: 50}},
	}.ToCommand()
	if len(inv.Lines) != 1 || inv.Lines[0].Description != "hall" || inv.Lines[0].Total() != 100 {
		t.Fatalf("unexpected invoice lines: %+v", inv.Lines)
	}

	m := UtilityMetricRequest{Utility: " Water ", StartReading: 1, EndReading: 3}.ToEntity()
	if m.Utility != entities.UtilityWater || m.Consumption() != 2 {
		t.Fatalf("unexpected metric: %+v", m)
	}

	q := CreateQuotationRequest{TenantID: "t-1", LeaseID: " l-1 ", Amount: 10}.ToCommand()
	if q.LeaseID != "l-1" || q.Amount != 10 {
		t.Fatalf("unexpected quotation command: %+v", q)
	}
	d := CreateDepositRequest{TenantID: "t-1", Amount: 300}.ToCommand()
	if d.TenantID != "t-1" || d.Amount != 300 {
		t.Fatalf("unexpected deposit command: %+v", d)
	}
}
