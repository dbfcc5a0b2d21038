package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	ordersvc "github.com/lunakids/lunakids-backend/internal/orders"
	"github.com/lunakids/lunakids-backend/pkg/enums"
	"github.com/lunakids/lunakids-backend/pkg/pagination"
)

type stubOrderService struct {
	lastStatus  *enums.OrderStatus
	lastQuery   string
	updatedTo   enums.OrderStatus
	updatedID   uuid.UUID
	getResponse *ordersvc.OrderDTO
}

func (s *stubOrderService) ListOrders(ctx context.Context, params pagination.Params, filters ordersvc.ListFilters) (*ordersvc.OrderListResult, error) {
	s.lastStatus = filters.Status
	s.lastQuery = filters.Query
	return &ordersvc.OrderListResult{Orders: []ordersvc.OrderDTO{}}, nil
}

func (s *stubOrderService) GetOrder(ctx context.Context, id uuid.UUID) (*ordersvc.OrderDTO, error) {
	return s.getResponse, nil
}

func (s *stubOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*ordersvc.OrderDTO, error) {
	s.updatedID = id
	s.updatedTo = status
	return &ordersvc.OrderDTO{ID: id, Status: status}, nil
}

func TestAdminListOrdersFilters(t *testing.T) {
	logg := testLogger()

	t.Run("valid status filter is forwarded", func(t *testing.T) {
		stub := &stubOrderService{}
		req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders?status=pending&q=maria", nil)
		rec := httptest.NewRecorder()
		AdminListOrders(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.lastStatus == nil || *stub.lastStatus != enums.OrderStatusPending {
			t.Fatalf("expected pending filter, got %v", stub.lastStatus)
		}
		if stub.lastQuery != "maria" {
			t.Fatalf("expected query maria, got %q", stub.lastQuery)
		}
	})

	t.Run("bogus status filter is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders?status=shredded", nil)
		rec := httptest.NewRecorder()
		AdminListOrders(&stubOrderService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestAdminUpdateOrderStatus(t *testing.T) {
	logg := testLogger()
	orderID := uuid.New()

	t.Run("moves the order", func(t *testing.T) {
		stub := &stubOrderService{}
		req := httptest.NewRequest(http.MethodPatch, "/api/admin/v1/orders/"+orderID.String()+"/status",
			strings.NewReader(`{"status":"confirmed"}`))
		req = withURLParam(req, "orderId", orderID.String())
		rec := httptest.NewRecorder()
		AdminUpdateOrderStatus(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.updatedID != orderID {
			t.Fatalf("expected update on %s, got %s", orderID, stub.updatedID)
		}
		if stub.updatedTo != enums.OrderStatusConfirmed {
			t.Fatalf("expected confirmed, got %s", stub.updatedTo)
		}
	})

	t.Run("malformed id is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/api/admin/v1/orders/nope/status",
			strings.NewReader(`{"status":"confirmed"}`))
		req = withURLParam(req, "orderId", "nope")
		rec := httptest.NewRecorder()
		AdminUpdateOrderStatus(&stubOrderService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
