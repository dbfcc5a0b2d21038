package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ColorVariant holds per-color stock and the size names valid for that color.
// Color names are unique per product.
type ColorVariant struct {
	ID                 uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID          uuid.UUID      `gorm:"column:product_id;type:uuid;not null;uniqueIndex:idx_variant_product_color"`
	Color              string         `gorm:"column:color;not null;uniqueIndex:idx_variant_product_color"`
	StockQty           int            `gorm:"column:stock_qty;not null;default:0"`
	Sizes              pq.StringArray `gorm:"column:sizes;type:text[]"`
	SizeExtraPriceCents map[string]int `gorm:"column:size_extra_price_cents;type:jsonb;serializer:json"`
	CreatedAt          time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
