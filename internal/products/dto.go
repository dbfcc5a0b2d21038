package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunakids/lunakids-backend/internal/selection"
	"github.com/lunakids/lunakids-backend/pkg/db/models"
)

// ColorOption is one selectable color with its live stock and size list.
// Legacy products without variant rows get synthetic options that share the
// product's scalar stock pool.
type ColorOption struct {
	Color               string         `json:"color"`
	StockQty            int            `json:"stock_qty"`
	Sizes               []string       `json:"sizes"`
	SizeExtraPriceCents map[string]int `json:"size_extra_price_cents,omitempty"`
}

// ProductSummary is the listing-card projection.
type ProductSummary struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	AltName             *string   `json:"alt_name,omitempty"`
	Category            *string   `json:"category,omitempty"`
	PriceCents          int       `json:"price_cents"`
	OfferPriceCents     *int      `json:"offer_price_cents,omitempty"`
	EffectivePriceCents int       `json:"effective_price_cents"`
	TotalStock          int       `json:"total_stock"`
	IsFeatured          bool      `json:"is_featured"`
	Image               *string   `json:"image,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// ProductDTO is the detail projection with the full selection surface.
type ProductDTO struct {
	ID                  uuid.UUID     `json:"id"`
	Name                string        `json:"name"`
	AltName             string        `json:"alt_name"`
	Description         string        `json:"description"`
	Category            *string       `json:"category,omitempty"`
	PriceCents          int           `json:"price_cents"`
	OfferPriceCents     *int          `json:"offer_price_cents,omitempty"`
	EffectivePriceCents int           `json:"effective_price_cents"`
	TotalStock          int           `json:"total_stock"`
	HasVariants         bool          `json:"has_variants"`
	Colors              []ColorOption `json:"colors"`
	Images              []string      `json:"images"`
	IsActive            bool          `json:"is_active"`
	IsFeatured          bool          `json:"is_featured"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

// ProductListResult pairs a listing page with its continuation cursor.
type ProductListResult struct {
	Products   []ProductSummary `json:"products"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// EffectivePriceCents applies the offer price when it is set and actually
// lower than the base price.
func EffectivePriceCents(product *models.Product) int {
	if product.OfferPriceCents != nil && *product.OfferPriceCents > 0 && *product.OfferPriceCents < product.PriceCents {
		return *product.OfferPriceCents
	}
	return product.PriceCents
}

// TotalStock is the sum of variant stocks when variant rows exist, otherwise
// the product's scalar stock. Negative values count as zero.
func TotalStock(product *models.Product) int {
	if len(product.Variants) == 0 {
		if product.StockQty < 0 {
			return 0
		}
		return product.StockQty
	}
	total := 0
	for _, v := range product.Variants {
		if v.StockQty > 0 {
			total += v.StockQty
		}
	}
	return total
}

// ColorOptions normalizes the selection surface: variant rows win, legacy
// color arrays fall back to the scalar stock and the legacy size list.
func ColorOptions(product *models.Product) []ColorOption {
	if len(product.Variants) > 0 {
		options := make([]ColorOption, 0, len(product.Variants))
		for _, v := range product.Variants {
			options = append(options, ColorOption{
				Color:               v.Color,
				StockQty:            v.StockQty,
				Sizes:               append([]string(nil), v.Sizes...),
				SizeExtraPriceCents: v.SizeExtraPriceCents,
			})
		}
		return options
	}

	options := make([]ColorOption, 0, len(product.LegacyColors))
	for _, color := range product.LegacyColors {
		options = append(options, ColorOption{
			Color:    color,
			StockQty: product.StockQty,
			Sizes:    append([]string(nil), product.LegacySizes...),
		})
	}
	return options
}

// SelectionColors converts the normalized options into selector inputs.
func SelectionColors(product *models.Product) []selection.ColorStock {
	options := ColorOptions(product)
	colors := make([]selection.ColorStock, 0, len(options))
	for _, opt := range options {
		colors = append(colors, selection.ColorStock{
			Color: opt.Color,
			Stock: opt.StockQty,
			Sizes: opt.Sizes,
		})
	}
	return colors
}

// NewProductDTO builds the detail projection from a loaded product row.
func NewProductDTO(product *models.Product) *ProductDTO {
	altName := product.Name
	if product.AltName != nil && *product.AltName != "" {
		altName = *product.AltName
	}

	return &ProductDTO{
		ID:                  product.ID,
		Name:                product.Name,
		AltName:             altName,
		Description:         product.Description,
		Category:            product.Category,
		PriceCents:          product.PriceCents,
		OfferPriceCents:     product.OfferPriceCents,
		EffectivePriceCents: EffectivePriceCents(product),
		TotalStock:          TotalStock(product),
		HasVariants:         len(product.Variants) > 0,
		Colors:              ColorOptions(product),
		Images:              append([]string(nil), product.Images...),
		IsActive:            product.IsActive,
		IsFeatured:          product.IsFeatured,
		CreatedAt:           product.CreatedAt,
		UpdatedAt:           product.UpdatedAt,
	}
}
