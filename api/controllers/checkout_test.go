package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/lunakids/lunakids-backend/api/middleware"
	checkoutsvc "github.com/lunakids/lunakids-backend/internal/checkout"
)

type stubCheckoutService struct {
	gotSession string
	gotInput   checkoutsvc.CheckoutInput
}

func (s *stubCheckoutService) Checkout(ctx context.Context, sessionID string, input checkoutsvc.CheckoutInput) (*checkoutsvc.CheckoutResult, error) {
	s.gotSession = sessionID
	s.gotInput = input
	return &checkoutsvc.CheckoutResult{
		OrderID:      uuid.New(),
		WhatsAppLink: "https://wa.me/491701234567?text=hi",
	}, nil
}

func TestCheckout(t *testing.T) {
	logg := testLogger()

	post := func(body string) (*stubCheckoutService, *httptest.ResponseRecorder) {
		stub := &stubCheckoutService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body))
		req = req.WithContext(middleware.WithSessionID(req.Context(), "shopper-session-0001"))
		rec := httptest.NewRecorder()
		Checkout(stub, logg).ServeHTTP(rec, req)
		return stub, rec
	}

	t.Run("creates the order", func(t *testing.T) {
		stub, rec := post(`{"customer_name":"  Maria  ","customer_phone":"+49 170 1234567"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.gotSession != "shopper-session-0001" {
			t.Fatalf("expected session forwarded, got %q", stub.gotSession)
		}
		if stub.gotInput.CustomerName != "Maria" {
			t.Fatalf("expected trimmed name, got %q", stub.gotInput.CustomerName)
		}
	})

	t.Run("rejects a missing phone", func(t *testing.T) {
		_, rec := post(`{"customer_name":"Maria"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("rejects an unknown field", func(t *testing.T) {
		_, rec := post(`{"customer_name":"Maria","customer_phone":"+491701234567","card_number":"4111"}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
