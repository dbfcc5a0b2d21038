package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunakids/lunakids-backend/pkg/enums"
)

// Order is the persisted record behind a WhatsApp checkout. The deep link is
// stored so the admin panel can re-open the conversation.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID       string            `gorm:"column:session_id;not null;index"`
	CustomerName    string            `gorm:"column:customer_name;not null"`
	CustomerPhone   string            `gorm:"column:customer_phone;not null"`
	CustomerAddress *string           `gorm:"column:customer_address"`
	Status          enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	SubtotalCents   int               `gorm:"column:subtotal_cents;not null"`
	DiscountCents   int               `gorm:"column:discount_cents;not null;default:0"`
	TotalCents      int               `gorm:"column:total_cents;not null"`
	PromoKind       *enums.PromoKind  `gorm:"column:promo_kind"`
	WhatsAppLink    string            `gorm:"column:whatsapp_link;not null"`
	LineItems       []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
