package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CartItem is one line of a cart: all units of a single product, with the
// snapshot price taken at add time and the per-unit color/size breakdown as
// parallel arrays. MaxStock caches the last stock value seen and is advisory.
type CartItem struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID         uuid.UUID      `gorm:"column:cart_id;type:uuid;not null;uniqueIndex:idx_cart_item_product"`
	ProductID      uuid.UUID      `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_cart_item_product"`
	DisplayName    string         `gorm:"column:display_name;not null"`
	UnitPriceCents int            `gorm:"column:unit_price_cents;not null"`
	Quantity       int            `gorm:"column:quantity;not null"`
	MaxStock       *int           `gorm:"column:max_stock"`
	Colors         pq.StringArray `gorm:"column:colors;type:text[]"`
	Sizes          pq.StringArray `gorm:"column:sizes;type:text[]"`
	CreatedAt      time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
