package orders

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lunakids/lunakids-backend/pkg/db/models"
	"github.com/lunakids/lunakids-backend/pkg/enums"
	"github.com/lunakids/lunakids-backend/pkg/pagination"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "orders.db")), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  customer_phone TEXT NOT NULL,
  customer_address TEXT,
  status TEXT NOT NULL DEFAULT 'pending',
  subtotal_cents INTEGER NOT NULL,
  discount_cents INTEGER NOT NULL DEFAULT 0,
  total_cents INTEGER NOT NULL,
  promo_kind TEXT,
  whatsapp_link TEXT NOT NULL,
  created_at DATETIME NOT NULL,
  updated_at DATETIME NOT NULL
);`
	lineItems := `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  display_name TEXT NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  quantity INTEGER NOT NULL,
  colors TEXT,
  sizes TEXT,
  created_at DATETIME NOT NULL
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(lineItems).Error)
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, name string, status enums.OrderStatus, createdAt time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:            uuid.New(),
		SessionID:     "shopper-session-0001",
		CustomerName:  name,
		CustomerPhone: "+491701234567",
		Status:        status,
		SubtotalCents: 2900,
		TotalCents:    2900,
		WhatsAppLink:  "https://wa.me/491701234567",
		CreatedAt:     createdAt,
		UpdatedAt:     createdAt,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestRepositoryListPagesNewestFirst(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	oldest := seedOrder(t, db, "Anna", enums.OrderStatusPending, base)
	middle := seedOrder(t, db, "Bea", enums.OrderStatusPending, base.Add(time.Minute))
	newest := seedOrder(t, db, "Cleo", enums.OrderStatusPending, base.Add(2*time.Minute))

	page, cursor, err := repo.List(context.Background(), pagination.Params{Limit: 2}, ListFilters{})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, newest.ID, page[0].ID)
	assert.Equal(t, middle.ID, page[1].ID)
	require.NotEmpty(t, cursor)

	rest, next, err := repo.List(context.Background(), pagination.Params{Limit: 2, Cursor: cursor}, ListFilters{})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, oldest.ID, rest[0].ID)
	assert.Empty(t, next)
}

func TestRepositoryListFilters(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	seedOrder(t, db, "Maria Lopez", enums.OrderStatusPending, now)
	cancelled := seedOrder(t, db, "Nora Kim", enums.OrderStatusCancelled, now.Add(time.Minute))

	status := enums.OrderStatusCancelled
	rows, _, err := repo.List(context.Background(), pagination.Params{Limit: 10}, ListFilters{Status: &status})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, cancelled.ID, rows[0].ID)

	rows, _, err = repo.List(context.Background(), pagination.Params{Limit: 10}, ListFilters{Query: "maria"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Maria Lopez", rows[0].CustomerName)
}

func TestRepositoryCancelPendingBefore(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	cold := seedOrder(t, db, "Cold", enums.OrderStatusPending, now.Add(-15*24*time.Hour))
	fresh := seedOrder(t, db, "Fresh", enums.OrderStatusPending, now.Add(-time.Hour))
	confirmed := seedOrder(t, db, "Done", enums.OrderStatusConfirmed, now.Add(-30*24*time.Hour))

	moved, err := repo.CancelPendingBefore(context.Background(), now.Add(-14*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), moved)

	reloaded, err := repo.FindByID(context.Background(), cold.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusCancelled, reloaded.Status)

	stillFresh, err := repo.FindByID(context.Background(), fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPending, stillFresh.Status)

	stillDone, err := repo.FindByID(context.Background(), confirmed.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusConfirmed, stillDone.Status)
}

func TestRepositoryDeleteCancelledBefore(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	now := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	stale := seedOrder(t, db, "Stale", enums.OrderStatusCancelled, now.Add(-100*24*time.Hour))
	kept := seedOrder(t, db, "Kept", enums.OrderStatusConfirmed, now.Add(-100*24*time.Hour))

	dropped, err := repo.DeleteCancelledBefore(context.Background(), now.Add(-90*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), dropped)

	_, err = repo.FindByID(context.Background(), stale.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindByID(context.Background(), kept.ID)
	require.NoError(t, err)
}

func TestServiceRefusesReopeningCancelledOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	svc, err := NewService(repo)
	require.NoError(t, err)

	order := seedOrder(t, db, "Maria", enums.OrderStatusCancelled, time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC))

	_, err = svc.UpdateStatus(context.Background(), order.ID, enums.OrderStatusPending)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled orders cannot be reopened")
}
