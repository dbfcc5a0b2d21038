package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product represents a catalog listing. StockQty is the scalar stock used by
// variant-less products; products with color variants derive stock from them.
// The legacy color/size arrays survive from the original import and are only
// consulted when a product has no ColorVariant rows.
type Product struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string         `gorm:"column:name;not null"`
	AltName         *string        `gorm:"column:alt_name"`
	Description     string         `gorm:"column:description;not null;default:''"`
	Category        *string        `gorm:"column:category"`
	PriceCents      int            `gorm:"column:price_cents;not null"`
	OfferPriceCents *int           `gorm:"column:offer_price_cents"`
	StockQty        int            `gorm:"column:stock_qty;not null;default:0"`
	LegacyColors    pq.StringArray `gorm:"column:legacy_colors;type:text[]"`
	LegacySizes     pq.StringArray `gorm:"column:legacy_sizes;type:text[]"`
	Images          pq.StringArray `gorm:"column:images;type:text[]"`
	IsActive        bool           `gorm:"column:is_active;not null;default:true"`
	IsFeatured      bool           `gorm:"column:is_featured;not null;default:false"`
	Variants        []ColorVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
