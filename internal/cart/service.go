package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lunakids/lunakids-backend/internal/selection"
	"github.com/lunakids/lunakids-backend/pkg/db/models"
	"github.com/lunakids/lunakids-backend/pkg/enums"
	pkgerrors "github.com/lunakids/lunakids-backend/pkg/errors"
	"github.com/lunakids/lunakids-backend/pkg/types"
)

// Service exposes the session cart operations. Every mutation runs under a
// short Redis lease so concurrent requests for the same session cannot
// interleave; a held lease surfaces as a retryable busy error.
type Service interface {
	GetCart(ctx context.Context, sessionID string) (*CartDTO, error)
	AddUnits(ctx context.Context, sessionID string, productID uuid.UUID, units []selection.Unit) (*CartDTO, error)
	SetQuantity(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*MutationResult, error)
	RemoveLine(ctx context.Context, sessionID string, productID uuid.UUID) (*CartDTO, error)
	RefreshStock(ctx context.Context, sessionID string) (*MutationResult, error)
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	repo     CartRepository
	tx       txRunner
	catalog  catalogReader
	lease    leaser
	leaseTTL time.Duration
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, tx txRunner, catalog catalogReader, lease leaser, leaseTTL time.Duration) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	if lease == nil {
		return nil, fmt.Errorf("lease client required")
	}
	if leaseTTL <= 0 {
		leaseTTL = 10 * time.Second
	}
	return &service{
		repo:     repo,
		tx:       tx,
		catalog:  catalog,
		lease:    lease,
		leaseTTL: leaseTTL,
	}, nil
}

// GetCart returns the session's cart; a session with no record gets an empty cart.
func (s *service) GetCart(ctx context.Context, sessionID string) (*CartDTO, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}
	record, err := s.loadRecord(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return NewCartDTO(sessionID, record), nil
}

// AddUnits commits a flattened selection into the session cart. The product's
// live stock bounds the line: pushing the line past it is rejected outright
// with the maximum the shopper can still hold.
func (s *service) AddUnits(ctx context.Context, sessionID string, productID uuid.UUID, units []selection.Unit) (*CartDTO, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no units to add")
	}

	var result *CartDTO
	err := s.withLease(ctx, sessionID, func() error {
		dto, err := s.catalog.GetProduct(ctx, productID, false)
		if err != nil {
			return failClosed(err, "verify product stock")
		}
		stock := dto.TotalStock
		if stock == 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "product is out of stock")
		}

		if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			txRepo := s.repo.WithTx(tx)
			record, err := s.findOrCreateRecord(ctx, txRepo, sessionID)
			if err != nil {
				return err
			}

			item := findItem(record, productID)
			existing := 0
			if item != nil {
				existing = item.Quantity
			}
			if existing+len(units) > stock {
				return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("max available is %d", stock)).
					WithDetails(map[string]any{"max_available": stock, "in_cart": existing})
			}

			if item == nil {
				item = &models.CartItem{
					CartID:         record.ID,
					ProductID:      productID,
					DisplayName:    dto.AltName,
					UnitPriceCents: dto.EffectivePriceCents,
				}
			}
			for _, unit := range units {
				if unit.Color != "" {
					item.Colors = append(item.Colors, unit.Color)
					item.Sizes = append(item.Sizes, unit.Size)
				}
			}
			item.Quantity = existing + len(units)
			item.MaxStock = &stock
			if err := txRepo.SaveItem(ctx, item); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save cart item")
			}
			return nil
		}); err != nil {
			return err
		}

		record, err := s.loadRecord(ctx, sessionID)
		if err != nil {
			return err
		}
		result = NewCartDTO(sessionID, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SetQuantity sets the line's quantity directly. Unlike AddUnits this clamps
// softly: asking for more than the live stock lands on the stock with a
// notice instead of an error. Zero removes the line.
func (s *service) SetQuantity(ctx context.Context, sessionID string, productID uuid.UUID, quantity int) (*MutationResult, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be non-negative")
	}

	var notices types.CartNotices
	err := s.withLease(ctx, sessionID, func() error {
		record, err := s.loadRecord(ctx, sessionID)
		if err != nil {
			return err
		}
		item := findItem(record, productID)
		if item == nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
		}

		if quantity == 0 {
			return s.deleteItem(ctx, record.ID, productID)
		}

		dto, err := s.catalog.GetProduct(ctx, productID, false)
		if err != nil {
			if coded := pkgerrors.As(err); coded != nil && coded.Code() == pkgerrors.CodeNotFound {
				notices = append(notices, removalNotice(item))
				return s.deleteItem(ctx, record.ID, productID)
			}
			return failClosed(err, "verify product stock")
		}
		stock := dto.TotalStock
		if stock == 0 {
			notices = append(notices, removalNotice(item))
			return s.deleteItem(ctx, record.ID, productID)
		}

		if quantity > stock {
			quantity = stock
			notices = append(notices, types.CartNotice{
				ProductID:   item.ProductID,
				ProductName: item.DisplayName,
				Kind:        enums.CartNoticeQuantityClamped,
				Quantity:    stock,
			})
		}
		item.Quantity = quantity
		trimUnits(item, quantity)
		item.MaxStock = &stock
		if err := s.repo.SaveItem(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save cart item")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.mutationResult(ctx, sessionID, notices)
}

// RemoveLine drops the product's line from the cart. Removing an absent line
// is a no-op.
func (s *service) RemoveLine(ctx context.Context, sessionID string, productID uuid.UUID) (*CartDTO, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	err := s.withLease(ctx, sessionID, func() error {
		record, err := s.loadRecord(ctx, sessionID)
		if err != nil {
			return err
		}
		if record == nil || findItem(record, productID) == nil {
			return nil
		}
		return s.deleteItem(ctx, record.ID, productID)
	})
	if err != nil {
		return nil, err
	}

	record, err := s.loadRecord(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return NewCartDTO(sessionID, record), nil
}

// RefreshStock reconciles every line against live stock: vanished or sold-out
// products drop off with a notice, over-stock quantities shrink to the stock.
// A second run right after is a no-op. Any lookup failure aborts the whole
// pass with the cart untouched.
func (s *service) RefreshStock(ctx context.Context, sessionID string) (*MutationResult, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	var notices types.CartNotices
	err := s.withLease(ctx, sessionID, func() error {
		record, err := s.loadRecord(ctx, sessionID)
		if err != nil {
			return err
		}
		if record == nil || len(record.Items) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, 0, len(record.Items))
		for _, item := range record.Items {
			ids = append(ids, item.ProductID)
		}
		stocks, err := s.catalog.StockForMany(ctx, ids)
		if err != nil {
			return failClosed(err, "refresh cart stock")
		}

		return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			txRepo := s.repo.WithTx(tx)
			for i := range record.Items {
				item := &record.Items[i]
				stock, ok := stocks[item.ProductID]
				if !ok || stock == 0 {
					notices = append(notices, removalNotice(item))
					if err := txRepo.DeleteItem(ctx, record.ID, item.ProductID); err != nil {
						return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete cart item")
					}
					continue
				}

				changed := false
				if item.Quantity > stock {
					item.Quantity = stock
					trimUnits(item, stock)
					notices = append(notices, types.CartNotice{
						ProductID:   item.ProductID,
						ProductName: item.DisplayName,
						Kind:        enums.CartNoticeQuantityReduced,
						Quantity:    stock,
					})
					changed = true
				}
				if item.MaxStock == nil || *item.MaxStock != stock {
					item.MaxStock = &stock
					changed = true
				}
				if changed {
					if err := txRepo.SaveItem(ctx, item); err != nil {
						return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: save cart item")
					}
				}
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return s.mutationResult(ctx, sessionID, notices)
}

// Clear drops the session's cart entirely.
func (s *service) Clear(ctx context.Context, sessionID string) error {
	if err := validateSessionID(sessionID); err != nil {
		return err
	}
	return s.withLease(ctx, sessionID, func() error {
		if err := s.repo.DeleteBySession(ctx, sessionID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: clear cart")
		}
		return nil
	})
}

func (s *service) withLease(ctx context.Context, sessionID string, fn func() error) error {
	key := s.lease.CartLeaseKey(sessionID)
	acquired, err := s.lease.SetNX(ctx, key, "1", s.leaseTTL)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire cart lease")
	}
	if !acquired {
		return pkgerrors.New(pkgerrors.CodeBusy, "another cart update is in progress")
	}
	defer func() {
		_ = s.lease.Del(ctx, key)
	}()
	return fn()
}

// loadRecord returns nil without error when the session has no cart yet.
func (s *service) loadRecord(ctx context.Context, sessionID string) (*models.CartRecord, error) {
	record, err := s.repo.FindBySession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return record, nil
}

func (s *service) findOrCreateRecord(ctx context.Context, txRepo CartRepository, sessionID string) (*models.CartRecord, error) {
	record, err := txRepo.FindBySession(ctx, sessionID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	created, err := txRepo.Create(ctx, &models.CartRecord{SessionID: sessionID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create cart")
	}
	return created, nil
}

func (s *service) deleteItem(ctx context.Context, cartID, productID uuid.UUID) error {
	if err := s.repo.DeleteItem(ctx, cartID, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete cart item")
	}
	return nil
}

func (s *service) mutationResult(ctx context.Context, sessionID string, notices types.CartNotices) (*MutationResult, error) {
	record, err := s.loadRecord(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &MutationResult{
		Cart:    NewCartDTO(sessionID, record),
		Notices: notices,
	}, nil
}

func findItem(record *models.CartRecord, productID uuid.UUID) *models.CartItem {
	if record == nil {
		return nil
	}
	for i := range record.Items {
		if record.Items[i].ProductID == productID {
			return &record.Items[i]
		}
	}
	return nil
}

// trimUnits shortens the per-unit color/size arrays after a quantity cut,
// dropping the most recently added units first.
func trimUnits(item *models.CartItem, quantity int) {
	if len(item.Colors) > quantity {
		item.Colors = item.Colors[:quantity]
	}
	if len(item.Sizes) > quantity {
		item.Sizes = item.Sizes[:quantity]
	}
}

func removalNotice(item *models.CartItem) types.CartNotice {
	return types.CartNotice{
		ProductID:   item.ProductID,
		ProductName: item.DisplayName,
		Kind:        enums.CartNoticeRemovedOutOfStock,
	}
}

// failClosed keeps coded errors and turns anything else into a dependency
// failure so a flaky lookup can never widen what the shopper may buy.
func failClosed(err error, op string) error {
	if coded := pkgerrors.As(err); coded != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, op)
}

func validateSessionID(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return nil
}
