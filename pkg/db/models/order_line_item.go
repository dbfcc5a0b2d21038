package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderLineItem snapshots one cart line at checkout time.
type OrderLineItem struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID      `gorm:"column:order_id;type:uuid;not null;index"`
	ProductID      uuid.UUID      `gorm:"column:product_id;type:uuid;not null"`
	DisplayName    string         `gorm:"column:display_name;not null"`
	UnitPriceCents int            `gorm:"column:unit_price_cents;not null"`
	Quantity       int            `gorm:"column:quantity;not null"`
	Colors         pq.StringArray `gorm:"column:colors;type:text[]"`
	Sizes          pq.StringArray `gorm:"column:sizes;type:text[]"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
}
