package wishlist

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	product "github.com/lunakids/lunakids-backend/internal/products"
	"github.com/lunakids/lunakids-backend/pkg/db/models"
	pkgerrors "github.com/lunakids/lunakids-backend/pkg/errors"
)

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	WishlistRepo *Repository
	ProductRepo  *product.Repository
}

// Service exposes business rules for wishlist management.
type Service interface {
	GetWishlist(ctx context.Context, sessionID, cursor string, limit int) (WishlistPageDTO, error)
	GetWishlistIDs(ctx context.Context, sessionID string) (WishlistIDsDTO, error)
	AddItem(ctx context.Context, sessionID string, productID uuid.UUID) error
	RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) error
}

type service struct {
	wishlistRepo *Repository
	productRepo  *product.Repository
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.WishlistRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if params.ProductRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product repo is required")
	}
	return &service{
		wishlistRepo: params.WishlistRepo,
		productRepo:  params.ProductRepo,
	}, nil
}

// GetWishlist returns the paginated wishlist for a session.
func (s *service) GetWishlist(ctx context.Context, sessionID, cursor string, limit int) (WishlistPageDTO, error) {
	if err := ensureSession(sessionID); err != nil {
		return WishlistPageDTO{}, err
	}
	rows, likedAt, nextCursor, err := s.wishlistRepo.ListItems(ctx, sessionID, cursor, limit)
	if err != nil {
		return WishlistPageDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist")
	}

	items := make([]WishlistItemDTO, 0, len(rows))
	for i := range rows {
		items = append(items, WishlistItemDTO{
			Product: toSummary(&rows[i]),
			LikedAt: likedAt[i],
		})
	}
	return WishlistPageDTO{Items: items, NextCursor: nextCursor}, nil
}

// GetWishlistIDs returns all liked product IDs for the session.
func (s *service) GetWishlistIDs(ctx context.Context, sessionID string) (WishlistIDsDTO, error) {
	if err := ensureSession(sessionID); err != nil {
		return WishlistIDsDTO{}, err
	}
	ids, err := s.wishlistRepo.ListItemIDs(ctx, sessionID)
	if err != nil {
		return WishlistIDsDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist ids")
	}
	return WishlistIDsDTO{ProductIDs: ids}, nil
}

// AddItem ensures the product exists and adds it to the wishlist.
func (s *service) AddItem(ctx context.Context, sessionID string, productID uuid.UUID) error {
	if err := ensureSession(sessionID); err != nil {
		return err
	}
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return s.wishlistRepo.AddItem(ctx, sessionID, productID)
}

// RemoveItem drops the wishlist entry regardless of prior state.
func (s *service) RemoveItem(ctx context.Context, sessionID string, productID uuid.UUID) error {
	if err := ensureSession(sessionID); err != nil {
		return err
	}
	return s.wishlistRepo.RemoveItem(ctx, sessionID, productID)
}

func ensureSession(sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return nil
}

func toSummary(row *models.Product) product.ProductSummary {
	var image *string
	if len(row.Images) > 0 {
		first := row.Images[0]
		image = &first
	}
	return product.ProductSummary{
		ID:                  row.ID,
		Name:                row.Name,
		AltName:             row.AltName,
		Category:            row.Category,
		PriceCents:          row.PriceCents,
		OfferPriceCents:     row.OfferPriceCents,
		EffectivePriceCents: product.EffectivePriceCents(row),
		TotalStock:          product.TotalStock(row),
		IsFeatured:          row.IsFeatured,
		Image:               image,
		CreatedAt:           row.CreatedAt,
	}
}
