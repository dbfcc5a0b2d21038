package checkout

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/lunakids/lunakids-backend/internal/cart"
	"github.com/lunakids/lunakids-backend/internal/orders"
	product "github.com/lunakids/lunakids-backend/internal/products"
	"github.com/lunakids/lunakids-backend/internal/promos"
	"github.com/lunakids/lunakids-backend/pkg/config"
	pkgerrors "github.com/lunakids/lunakids-backend/pkg/errors"
)

type stubCartGateway struct {
	refreshCalls int
}

func (s *stubCartGateway) RefreshStock(context.Context, string) (*cart.MutationResult, error) {
	s.refreshCalls++
	return &cart.MutationResult{}, nil
}
func (s *stubCartGateway) Clear(context.Context, string) error { return nil }

type stubPromoRedeemer struct{}

func (stubPromoRedeemer) Redeem(context.Context, string) (*promos.Grant, error) { return nil, nil }

type stubSettingsReader struct{}

func (stubSettingsReader) PublicSettings(context.Context) (map[string]string, error) {
	return map[string]string{}, nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

// stubGuard mimics the Redis SET NX marker: the first acquire wins until the
// key is deleted again.
type stubGuard struct {
	held     bool
	acquires int
	releases int
}

func (g *stubGuard) IdempotencyKey(scope, id string) string {
	return "lk:idempotency:" + scope + ":" + id
}

func (g *stubGuard) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	g.acquires++
	if g.held {
		return false, nil
	}
	g.held = true
	return true, nil
}

func (g *stubGuard) Del(ctx context.Context, keys ...string) error {
	g.held = false
	g.releases++
	return nil
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	t.Parallel()

	params := ServiceParams{
		Cart:        &stubCartGateway{},
		Promos:      stubPromoRedeemer{},
		Settings:    stubSettingsReader{},
		OrderRepo:   orders.NewRepository(nil),
		ProductRepo: product.NewRepository(nil),
		Tx:          stubTxRunner{},
		Guard:       &stubGuard{},
		WhatsApp:    config.WhatsAppConfig{Number: "491701234567"},
	}
	if _, err := NewService(params); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missing := params
	missing.Cart = nil
	if _, err := NewService(missing); err == nil {
		t.Fatal("expected error when cart gateway is missing")
	}

	missing = params
	missing.Tx = nil
	if _, err := NewService(missing); err == nil {
		t.Fatal("expected error when transaction runner is missing")
	}

	missing = params
	missing.Guard = nil
	if _, err := NewService(missing); err == nil {
		t.Fatal("expected error when idempotency guard is missing")
	}
}

// A session may only run one checkout at a time; a second submission while the
// marker is held gets rejected before the cart is touched, and a finished
// attempt releases the marker again.
func TestCheckoutSessionSingleFlight(t *testing.T) {
	t.Parallel()

	cartStub := &stubCartGateway{}
	guard := &stubGuard{}
	svc, err := NewService(ServiceParams{
		Cart:        cartStub,
		Promos:      stubPromoRedeemer{},
		Settings:    stubSettingsReader{},
		OrderRepo:   orders.NewRepository(nil),
		ProductRepo: product.NewRepository(nil),
		Tx:          stubTxRunner{},
		Guard:       guard,
		WhatsApp:    config.WhatsAppConfig{Number: "491701234567"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	input := CheckoutInput{CustomerName: "Maria", CustomerPhone: "+49 170 1234567"}

	guard.held = true
	_, err = svc.Checkout(context.Background(), "shopper-session-0001", input)
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeIdempotency {
		t.Fatalf("expected idempotency code, got %v", err)
	}
	if cartStub.refreshCalls != 0 {
		t.Fatalf("cart consulted %d times while another checkout held the session", cartStub.refreshCalls)
	}

	guard.held = false
	if _, err := svc.Checkout(context.Background(), "shopper-session-0001", input); err == nil {
		t.Fatal("expected the empty cart to abort the checkout")
	}
	if cartStub.refreshCalls != 1 {
		t.Fatalf("refresh calls = %d", cartStub.refreshCalls)
	}
	if guard.held {
		t.Fatal("marker still held after the attempt finished")
	}
	if guard.releases == 0 {
		t.Fatal("marker was never released")
	}
}

func TestValidateInput(t *testing.T) {
	t.Parallel()

	valid := CheckoutInput{CustomerName: "Maria", CustomerPhone: "+49 170 1234567"}
	if err := validateInput(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		name  string
		input CheckoutInput
	}{
		{"missing name", CheckoutInput{CustomerPhone: "491701234567"}},
		{"missing phone", CheckoutInput{CustomerName: "Maria"}},
		{"phone too short", CheckoutInput{CustomerName: "Maria", CustomerPhone: "12345"}},
		{"phone with letters", CheckoutInput{CustomerName: "Maria", CustomerPhone: "call me maybe"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateInput(tc.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation code, got %v", err)
			}
		})
	}
}
