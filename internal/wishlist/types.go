package wishlist

import (
	"time"

	"github.com/google/uuid"

	product "github.com/lunakids/lunakids-backend/internal/products"
)

// WishlistItemDTO pairs the liked product summary with when it was liked.
type WishlistItemDTO struct {
	Product product.ProductSummary `json:"product"`
	LikedAt time.Time              `json:"liked_at"`
}

// WishlistPageDTO is one page of a session's wishlist.
type WishlistPageDTO struct {
	Items      []WishlistItemDTO `json:"items"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

// WishlistIDsDTO lists only the liked product IDs, for cheap heart-state hydration.
type WishlistIDsDTO struct {
	ProductIDs []uuid.UUID `json:"product_ids"`
}
