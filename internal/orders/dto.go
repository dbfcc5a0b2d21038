package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunakids/lunakids-backend/pkg/db/models"
	"github.com/lunakids/lunakids-backend/pkg/enums"
)

// OrderLineDTO is one snapshot line of an order.
type OrderLineDTO struct {
	ProductID      uuid.UUID `json:"product_id"`
	DisplayName    string    `json:"display_name"`
	UnitPriceCents int       `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
	Colors         []string  `json:"colors"`
	Sizes          []string  `json:"sizes"`
}

// OrderDTO is the full order projection for the admin panel.
type OrderDTO struct {
	ID              uuid.UUID         `json:"id"`
	SessionID       string            `json:"session_id"`
	CustomerName    string            `json:"customer_name"`
	CustomerPhone   string            `json:"customer_phone"`
	CustomerAddress *string           `json:"customer_address,omitempty"`
	Status          enums.OrderStatus `json:"status"`
	SubtotalCents   int               `json:"subtotal_cents"`
	DiscountCents   int               `json:"discount_cents"`
	TotalCents      int               `json:"total_cents"`
	PromoKind       *enums.PromoKind  `json:"promo_kind,omitempty"`
	WhatsAppLink    string            `json:"whatsapp_link"`
	Lines           []OrderLineDTO    `json:"lines"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// OrderListResult pages orders newest-first.
type OrderListResult struct {
	Orders     []OrderDTO `json:"orders"`
	NextCursor string     `json:"next_cursor,omitempty"`
}

// NewOrderDTO projects the stored order row.
func NewOrderDTO(order *models.Order) *OrderDTO {
	dto := &OrderDTO{
		ID:              order.ID,
		SessionID:       order.SessionID,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		CustomerAddress: order.CustomerAddress,
		Status:          order.Status,
		SubtotalCents:   order.SubtotalCents,
		DiscountCents:   order.DiscountCents,
		TotalCents:      order.TotalCents,
		PromoKind:       order.PromoKind,
		WhatsAppLink:    order.WhatsAppLink,
		Lines:           make([]OrderLineDTO, 0, len(order.LineItems)),
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
	for _, line := range order.LineItems {
		dto.Lines = append(dto.Lines, OrderLineDTO{
			ProductID:      line.ProductID,
			DisplayName:    line.DisplayName,
			UnitPriceCents: line.UnitPriceCents,
			Quantity:       line.Quantity,
			Colors:         append([]string{}, line.Colors...),
			Sizes:          append([]string{}, line.Sizes...),
		})
	}
	return dto
}
