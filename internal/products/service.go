package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/lunakids/lunakids-backend/pkg/db"
	"github.com/lunakids/lunakids-backend/pkg/db/models"
	pkgerrors "github.com/lunakids/lunakids-backend/pkg/errors"
	"github.com/lunakids/lunakids-backend/pkg/pagination"
)

// Service exposes catalog reads for shoppers and catalog management for the admin panel.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
	GetProduct(ctx context.Context, id uuid.UUID, includeInactive bool) (*ProductDTO, error)
	StockFor(ctx context.Context, id uuid.UUID) (int, error)
	StockForMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error)
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
}

// ListProductsInput carries listing filters and pagination.
type ListProductsInput struct {
	Pagination pagination.Params
	Filters    ProductListFilters
}

// VariantInput defines one color variant on create or update.
type VariantInput struct {
	Color               string
	StockQty            int
	Sizes               []string
	SizeExtraPriceCents map[string]int
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name            string
	AltName         *string
	Description     string
	Category        *string
	PriceCents      int
	OfferPriceCents *int
	StockQty        int
	Colors          []string
	Sizes           []string
	Images          []string
	IsActive        bool
	IsFeatured      bool
	Variants        []VariantInput
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name            *string
	AltName         *string
	Description     *string
	Category        *string
	PriceCents      *int
	OfferPriceCents *int
	StockQty        *int
	Colors          *[]string
	Sizes           *[]string
	Images          *[]string
	IsActive        *bool
	IsFeatured      *bool
	Variants        *[]VariantInput
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a catalog service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	result, err := s.repo.ListProductSummaries(ctx, productListQuery{
		Pagination: input.Pagination,
		Filters:    input.Filters,
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return result, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID, includeInactive bool) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive && !includeInactive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return NewProductDTO(product), nil
}

// StockFor returns the normalized total stock for one product.
func (s *service) StockFor(ctx context.Context, id uuid.UUID) (int, error) {
	product, err := s.loadProduct(ctx, id)
	if err != nil {
		return 0, err
	}
	return TotalStock(product), nil
}

// StockForMany returns normalized stock keyed by product ID. Products missing
// from the result no longer exist.
func (s *service) StockForMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	rows, err := s.repo.FindManyByID(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	out := make(map[uuid.UUID]int, len(rows))
	for id, row := range rows {
		if !row.IsActive {
			continue
		}
		out[id] = TotalStock(row)
	}
	return out, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if err := validateProductInput(input.Name, input.PriceCents, input.OfferPriceCents, input.StockQty, input.Variants); err != nil {
		return nil, err
	}

	var createdID uuid.UUID
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		row := &models.Product{
			Name:            strings.TrimSpace(input.Name),
			AltName:         input.AltName,
			Description:     input.Description,
			Category:        input.Category,
			PriceCents:      input.PriceCents,
			OfferPriceCents: input.OfferPriceCents,
			StockQty:        input.StockQty,
			LegacyColors:    pq.StringArray(input.Colors),
			LegacySizes:     pq.StringArray(input.Sizes),
			Images:          pq.StringArray(input.Images),
			IsActive:        input.IsActive,
			IsFeatured:      input.IsFeatured,
		}
		created, err := txRepo.CreateProduct(ctx, row)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}
		createdID = created.ID

		if len(input.Variants) > 0 {
			variants := buildVariantRows(created.ID, input.Variants)
			if err := txRepo.ReplaceVariants(ctx, created.ID, variants); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert variants")
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	created, err := s.loadProduct(ctx, createdID)
	if err != nil {
		return nil, err
	}
	return NewProductDTO(created), nil
}

func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	applyUpdateToProduct(product, input)
	variants := input.Variants
	if variants != nil {
		if err := validateVariants(*variants); err != nil {
			return nil, err
		}
	}
	if err := validateProductInput(product.Name, product.PriceCents, product.OfferPriceCents, product.StockQty, nil); err != nil {
		return nil, err
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product.Variants = nil
		if _, err := txRepo.UpdateProduct(ctx, product); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product")
		}
		if variants != nil {
			rows := buildVariantRows(product.ID, *variants)
			if err := txRepo.ReplaceVariants(ctx, product.ID, rows); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: replace variants")
			}
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	updated, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return NewProductDTO(updated), nil
}

func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.loadProduct(ctx, productID); err != nil {
		return err
	}
	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) loadProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

// DecrementStock subtracts sold units inside the caller's transaction,
// flooring every counter at zero. Variant products decrement per color; the
// scalar stock is kept in sync either way.
func DecrementStock(ctx context.Context, txRepo *Repository, productID uuid.UUID, colors []string, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	product, err := txRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product for decrement")
	}

	if len(product.Variants) > 0 {
		perColor := make(map[string]int, len(colors))
		for _, color := range colors {
			perColor[color]++
		}
		for i := range product.Variants {
			variant := &product.Variants[i]
			sold, ok := perColor[variant.Color]
			if !ok {
				continue
			}
			variant.StockQty -= sold
			if variant.StockQty < 0 {
				variant.StockQty = 0
			}
			if err := txRepo.SaveVariant(ctx, variant); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: decrement variant stock")
			}
		}
	}

	product.StockQty -= quantity
	if product.StockQty < 0 {
		product.StockQty = 0
	}
	product.Variants = nil
	if _, err := txRepo.UpdateProduct(ctx, product); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: decrement product stock")
	}
	return nil
}

func buildVariantRows(productID uuid.UUID, inputs []VariantInput) []models.ColorVariant {
	rows := make([]models.ColorVariant, 0, len(inputs))
	for _, in := range inputs {
		rows = append(rows, models.ColorVariant{
			ProductID:           productID,
			Color:               strings.TrimSpace(in.Color),
			StockQty:            in.StockQty,
			Sizes:               pq.StringArray(in.Sizes),
			SizeExtraPriceCents: in.SizeExtraPriceCents,
		})
	}
	return rows
}

func validateProductInput(name string, priceCents int, offerPriceCents *int, stockQty int, variants []VariantInput) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if priceCents <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price_cents must be positive")
	}
	if offerPriceCents != nil && *offerPriceCents < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "offer_price_cents must be non-negative")
	}
	if stockQty < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock_qty must be non-negative")
	}
	return validateVariants(variants)
}

func validateVariants(variants []VariantInput) error {
	seen := make(map[string]struct{}, len(variants))
	for _, v := range variants {
		color := strings.TrimSpace(v.Color)
		if color == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant color is required")
		}
		if _, ok := seen[color]; ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "duplicate variant color")
		}
		seen[color] = struct{}{}
		if v.StockQty < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant stock_qty must be non-negative")
		}
	}
	return nil
}

func applyUpdateToProduct(product *models.Product, input UpdateProductInput) {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.AltName != nil {
		product.AltName = input.AltName
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Category != nil {
		product.Category = input.Category
	}
	if input.PriceCents != nil {
		product.PriceCents = *input.PriceCents
	}
	if input.OfferPriceCents != nil {
		product.OfferPriceCents = input.OfferPriceCents
	}
	if input.StockQty != nil {
		product.StockQty = *input.StockQty
	}
	if input.Colors != nil {
		product.LegacyColors = pq.StringArray(append([]string(nil), *input.Colors...))
	}
	if input.Sizes != nil {
		product.LegacySizes = pq.StringArray(append([]string(nil), *input.Sizes...))
	}
	if input.Images != nil {
		product.Images = pq.StringArray(append([]string(nil), *input.Images...))
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if input.IsFeatured != nil {
		product.IsFeatured = *input.IsFeatured
	}
}
