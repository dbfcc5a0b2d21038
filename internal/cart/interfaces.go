package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	product "github.com/lunakids/lunakids-backend/internal/products"
	"github.com/lunakids/lunakids-backend/pkg/db/models"
)

// CartRepository encapsulates cart persistence for the service layer.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	FindBySession(ctx context.Context, sessionID string) (*models.CartRecord, error)
	Create(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error)
	SaveItem(ctx context.Context, item *models.CartItem) error
	DeleteItem(ctx context.Context, cartID, productID uuid.UUID) error
	DeleteBySession(ctx context.Context, sessionID string) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// catalogReader is the slice of the catalog service the cart depends on.
// Lookups failing here must fail the mutation, never let it through.
type catalogReader interface {
	GetProduct(ctx context.Context, id uuid.UUID, includeInactive bool) (*product.ProductDTO, error)
	StockForMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error)
}

// leaser grants the short per-session mutation lease backed by Redis.
type leaser interface {
	CartLeaseKey(sessionID string) string
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
}
