package wishlist

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lunakids/lunakids-backend/pkg/db/models"
	"github.com/lunakids/lunakids-backend/pkg/pagination"
)

// Repository encapsulates wishlist persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a wishlist repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddItem inserts a wishlist entry and ignores duplicates.
func (r *Repository) AddItem(ctx context.Context, sessionID string, productID uuid.UUID) error {
	if sessionID == "" || productID == uuid.Nil {
		return gorm.ErrInvalidValue
	}

	return r.db.WithContext(ctx).
		Exec(`INSERT INTO wishlist_items (session_id, product_id) VALUES (?, ?) ON CONFLICT (session_id, product_id) DO NOTHING`, sessionID, productID).
		Error
}

// RemoveItem deletes the session-product like if it exists.
func (r *Repository) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("session_id = ? AND product_id = ?", sessionID, productID).
		Delete(&models.WishlistItem{}).
		Error
}

type wishlistRow struct {
	WishlistID        uuid.UUID `gorm:"column:wishlist_id"`
	WishlistCreatedAt time.Time `gorm:"column:wishlist_created_at"`
	ProductID         uuid.UUID `gorm:"column:product_id"`
}

// ListItems returns one page of liked products newest-first.
func (r *Repository) ListItems(ctx context.Context, sessionID string, cursor string, limit int) ([]models.Product, []time.Time, string, error) {
	rows, nextCursor, err := r.listRows(ctx, sessionID, cursor, limit)
	if err != nil {
		return nil, nil, "", err
	}

	ids := make([]uuid.UUID, 0, len(rows))
	likedAt := make(map[uuid.UUID]time.Time, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ProductID)
		likedAt[row.ProductID] = row.WishlistCreatedAt
	}

	var productRows []models.Product
	if len(ids) > 0 {
		err = r.db.WithContext(ctx).
			Preload("Variants").
			Where("id IN ?", ids).
			Find(&productRows).Error
		if err != nil {
			return nil, nil, "", err
		}
	}

	// keep wishlist order, newest like first
	byID := make(map[uuid.UUID]models.Product, len(productRows))
	for _, p := range productRows {
		byID[p.ID] = p
	}
	ordered := make([]models.Product, 0, len(rows))
	stamps := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		if p, ok := byID[row.ProductID]; ok {
			ordered = append(ordered, p)
			stamps = append(stamps, row.WishlistCreatedAt)
		}
	}
	return ordered, stamps, nextCursor, nil
}

// ListItemIDs returns every product ID the session has liked.
func (r *Repository) ListItemIDs(ctx context.Context, sessionID string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Pluck("product_id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *Repository) listRows(ctx context.Context, sessionID, cursor string, limit int) ([]wishlistRow, string, error) {
	normalizedLimit := pagination.NormalizeLimit(limit)
	limitWithBuffer := pagination.LimitWithBuffer(limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(cursor))
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).
		Model(&models.WishlistItem{}).
		Select("id AS wishlist_id", "created_at AS wishlist_created_at", "product_id").
		Where("session_id = ?", sessionID)

	if decodedCursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)", decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID)
	}

	var rows []wishlistRow
	if err := query.Order("created_at DESC").Order("id DESC").Limit(limitWithBuffer).Scan(&rows).Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(rows) > normalizedLimit {
		rows = rows[:normalizedLimit]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.WishlistCreatedAt,
			ID:        last.WishlistID,
		})
	}
	return rows, nextCursor, nil
}
