package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/lunakids/lunakids-backend/pkg/db/models"
	"github.com/lunakids/lunakids-backend/pkg/types"
)

// CartLineDTO is one product line with its per-unit color/size breakdown.
type CartLineDTO struct {
	ProductID      uuid.UUID `json:"product_id"`
	DisplayName    string    `json:"display_name"`
	UnitPriceCents int       `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
	LineTotalCents int       `json:"line_total_cents"`
	MaxStock       *int      `json:"max_stock,omitempty"`
	Colors         []string  `json:"colors"`
	Sizes          []string  `json:"sizes"`
}

// CartDTO is the session cart as returned to the storefront.
type CartDTO struct {
	SessionID  string        `json:"session_id"`
	Lines      []CartLineDTO `json:"lines"`
	TotalItems int           `json:"total_items"`
	TotalCents int           `json:"total_cents"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// MutationResult pairs the post-mutation cart with any reconciliation notices.
type MutationResult struct {
	Cart    *CartDTO          `json:"cart"`
	Notices types.CartNotices `json:"notices,omitempty"`
}

// NewCartDTO projects the stored record. A nil record maps to an empty cart.
func NewCartDTO(sessionID string, record *models.CartRecord) *CartDTO {
	dto := &CartDTO{SessionID: sessionID, Lines: []CartLineDTO{}}
	if record == nil {
		return dto
	}
	dto.UpdatedAt = record.UpdatedAt
	for _, item := range record.Items {
		line := CartLineDTO{
			ProductID:      item.ProductID,
			DisplayName:    item.DisplayName,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
			LineTotalCents: item.UnitPriceCents * item.Quantity,
			MaxStock:       item.MaxStock,
			Colors:         append([]string{}, item.Colors...),
			Sizes:          append([]string{}, item.Sizes...),
		}
		dto.Lines = append(dto.Lines, line)
		dto.TotalItems += item.Quantity
		dto.TotalCents += line.LineTotalCents
	}
	return dto
}
