package checkout

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/lunakids/lunakids-backend/internal/cart"
	"github.com/lunakids/lunakids-backend/internal/orders"
	product "github.com/lunakids/lunakids-backend/internal/products"
	"github.com/lunakids/lunakids-backend/internal/promos"
	"github.com/lunakids/lunakids-backend/pkg/config"
	"github.com/lunakids/lunakids-backend/pkg/db/models"
	"github.com/lunakids/lunakids-backend/pkg/enums"
	pkgerrors "github.com/lunakids/lunakids-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// submissionGuardTTL bounds how long a crashed checkout can hold its session
// locked before Redis expires the marker.
const submissionGuardTTL = 30 * time.Second

type idempotencyGuard interface {
	IdempotencyKey(scope, id string) string
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
}

type cartGateway interface {
	RefreshStock(ctx context.Context, sessionID string) (*cart.MutationResult, error)
	Clear(ctx context.Context, sessionID string) error
}

type promoRedeemer interface {
	Redeem(ctx context.Context, sessionID string) (*promos.Grant, error)
}

type settingsReader interface {
	PublicSettings(ctx context.Context) (map[string]string, error)
}

// CheckoutInput is the shopper's contact payload.
type CheckoutInput struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress *string
}

// CheckoutResult hands the storefront the deep link to open.
type CheckoutResult struct {
	OrderID       uuid.UUID        `json:"order_id"`
	WhatsAppLink  string           `json:"whatsapp_link"`
	SubtotalCents int              `json:"subtotal_cents"`
	DiscountCents int              `json:"discount_cents"`
	TotalCents    int              `json:"total_cents"`
	PromoKind     *enums.PromoKind `json:"promo_kind,omitempty"`
}

// Service turns a reconciled cart into a pending order plus a WhatsApp link.
type Service interface {
	Checkout(ctx context.Context, sessionID string, input CheckoutInput) (*CheckoutResult, error)
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	Cart        cartGateway
	Promos      promoRedeemer
	Settings    settingsReader
	OrderRepo   *orders.Repository
	ProductRepo *product.Repository
	Tx          txRunner
	Guard       idempotencyGuard
	WhatsApp    config.WhatsAppConfig
}

type service struct {
	cart        cartGateway
	promos      promoRedeemer
	settings    settingsReader
	orderRepo   *orders.Repository
	productRepo *product.Repository
	tx          txRunner
	guard       idempotencyGuard
	whatsapp    config.WhatsAppConfig
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart gateway is required")
	}
	if params.Promos == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "promo redeemer is required")
	}
	if params.Settings == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "settings reader is required")
	}
	if params.OrderRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	if params.Guard == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "idempotency guard is required")
	}
	return &service{
		cart:        params.Cart,
		promos:      params.Promos,
		settings:    params.Settings,
		orderRepo:   params.OrderRepo,
		productRepo: params.ProductRepo,
		tx:          params.Tx,
		guard:       params.Guard,
		whatsapp:    params.WhatsApp,
	}, nil
}

// Checkout re-validates the cart against live stock, applies any held promo
// grant, persists the order while decrementing stock, and returns the wa.me
// link. A cart that changed during reconciliation aborts so the shopper can
// review it first.
func (s *service) Checkout(ctx context.Context, sessionID string, input CheckoutInput) (*CheckoutResult, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	guardKey := s.guard.IdempotencyKey("checkout", sessionID)
	acquired, err := s.guard.SetNX(ctx, guardKey, "1", submissionGuardTTL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checkout guard")
	}
	if !acquired {
		return nil, pkgerrors.New(pkgerrors.CodeIdempotency, "checkout already in progress")
	}
	// the TTL reclaims the marker if the delete fails
	defer func() { _ = s.guard.Del(ctx, guardKey) }()

	refreshed, err := s.cart.RefreshStock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(refreshed.Notices) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "cart changed during stock check, please review").
			WithDetails(refreshed.Notices)
	}
	cartDTO := refreshed.Cart
	if cartDTO == nil || len(cartDTO.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	grant, err := s.promos.Redeem(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	subtotal := cartDTO.TotalCents
	discount := 0
	var promoKind *enums.PromoKind
	if grant != nil && grant.Percent > 0 {
		discount = subtotal * grant.Percent / 100
		kind := grant.Kind
		promoKind = &kind
	}
	total := subtotal - discount

	number, err := s.whatsAppNumber(ctx)
	if err != nil {
		return nil, err
	}

	var saved *models.Order
	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		order := &models.Order{
			SessionID:       sessionID,
			CustomerName:    strings.TrimSpace(input.CustomerName),
			CustomerPhone:   strings.TrimSpace(input.CustomerPhone),
			CustomerAddress: input.CustomerAddress,
			Status:          enums.OrderStatusPending,
			SubtotalCents:   subtotal,
			DiscountCents:   discount,
			TotalCents:      total,
			PromoKind:       promoKind,
			WhatsAppLink:    "pending",
			LineItems:       buildLineItems(cartDTO),
		}
		created, err := orderRepo.Create(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create order")
		}

		for _, line := range created.LineItems {
			if err := product.DecrementStock(ctx, productRepo, line.ProductID, line.Colors, line.Quantity); err != nil {
				return err
			}
		}

		created.WhatsAppLink = BuildWhatsAppLink(number, created)
		if err := orderRepo.Save(ctx, created); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save order link")
		}
		saved = created
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checkout")
	}

	if err := s.cart.Clear(ctx, sessionID); err != nil {
		// the order exists; a stuck cart resolves on the next refresh
		return nil, err
	}

	return &CheckoutResult{
		OrderID:       saved.ID,
		WhatsAppLink:  saved.WhatsAppLink,
		SubtotalCents: saved.SubtotalCents,
		DiscountCents: saved.DiscountCents,
		TotalCents:    saved.TotalCents,
		PromoKind:     saved.PromoKind,
	}, nil
}

func (s *service) whatsAppNumber(ctx context.Context) (string, error) {
	values, err := s.settings.PublicSettings(ctx)
	if err != nil {
		return "", err
	}
	if number := values[string(enums.SettingWhatsAppNumber)]; number != "" {
		return number, nil
	}
	if s.whatsapp.Number != "" {
		return s.whatsapp.Number, nil
	}
	return "", pkgerrors.New(pkgerrors.CodeInternal, "whatsapp number is not configured")
}

func buildLineItems(dto *cart.CartDTO) []models.OrderLineItem {
	items := make([]models.OrderLineItem, 0, len(dto.Lines))
	for _, line := range dto.Lines {
		items = append(items, models.OrderLineItem{
			ProductID:      line.ProductID,
			DisplayName:    line.DisplayName,
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
			Colors:         pq.StringArray(line.Colors),
			Sizes:          pq.StringArray(line.Sizes),
		})
	}
	return items
}

func validateInput(input CheckoutInput) error {
	if strings.TrimSpace(input.CustomerName) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	phone := strings.TrimSpace(input.CustomerPhone)
	if phone == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer phone is required")
	}
	digits := 0
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return pkgerrors.New(pkgerrors.CodeValidation, "customer phone has invalid characters")
		}
	}
	if digits < 7 {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer phone is too short")
	}
	return nil
}
