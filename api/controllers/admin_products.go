package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lunakids/lunakids-backend/api/responses"
	"github.com/lunakids/lunakids-backend/api/validators"
	productsvc "github.com/lunakids/lunakids-backend/internal/products"
	pkgerrors "github.com/lunakids/lunakids-backend/pkg/errors"
	"github.com/lunakids/lunakids-backend/pkg/logger"
	"github.com/lunakids/lunakids-backend/pkg/pagination"
)

type variantRequest struct {
	Color               string         `json:"color" validate:"required"`
	StockQty            int            `json:"stock_qty" validate:"gte=0"`
	Sizes               []string       `json:"sizes,omitempty"`
	SizeExtraPriceCents map[string]int `json:"size_extra_price_cents,omitempty"`
}

type createProductRequest struct {
	Name            string           `json:"name" validate:"required"`
	AltName         *string          `json:"alt_name,omitempty"`
	Description     string           `json:"description,omitempty"`
	Category        *string          `json:"category,omitempty"`
	PriceCents      int              `json:"price_cents" validate:"required,min=1"`
	OfferPriceCents *int             `json:"offer_price_cents,omitempty" validate:"omitempty,min=0"`
	StockQty        int              `json:"stock_qty" validate:"gte=0"`
	Colors          []string         `json:"colors,omitempty"`
	Sizes           []string         `json:"sizes,omitempty"`
	Images          []string         `json:"images,omitempty"`
	IsActive        *bool            `json:"is_active,omitempty"`
	IsFeatured      *bool            `json:"is_featured,omitempty"`
	Variants        []variantRequest `json:"variants,omitempty"`
}

type updateProductRequest struct {
	Name            *string           `json:"name,omitempty"`
	AltName         *string           `json:"alt_name,omitempty"`
	Description     *string           `json:"description,omitempty"`
	Category        *string           `json:"category,omitempty"`
	PriceCents      *int              `json:"price_cents,omitempty" validate:"omitempty,min=1"`
	OfferPriceCents *int              `json:"offer_price_cents,omitempty" validate:"omitempty,min=0"`
	StockQty        *int              `json:"stock_qty,omitempty" validate:"omitempty,gte=0"`
	Colors          *[]string         `json:"colors,omitempty"`
	Sizes           *[]string         `json:"sizes,omitempty"`
	Images          *[]string         `json:"images,omitempty"`
	IsActive        *bool             `json:"is_active,omitempty"`
	IsFeatured      *bool             `json:"is_featured,omitempty"`
	Variants        *[]variantRequest `json:"variants,omitempty"`
}

func toVariantInputs(rows []variantRequest) []productsvc.VariantInput {
	variants := make([]productsvc.VariantInput, 0, len(rows))
	for _, row := range rows {
		variants = append(variants, productsvc.VariantInput{
			Color:               strings.TrimSpace(row.Color),
			StockQty:            row.StockQty,
			Sizes:               row.Sizes,
			SizeExtraPriceCents: row.SizeExtraPriceCents,
		})
	}
	return variants
}

// AdminListProducts mirrors the public listing but includes inactive rows.
func AdminListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListProducts(r.Context(), productsvc.ListProductsInput{
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
			Filters: productsvc.ProductListFilters{
				Query:      strings.TrimSpace(r.URL.Query().Get("q")),
				IncludeAll: true,
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AdminGetProduct returns the detail view regardless of active state.
func AdminGetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id, true)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// AdminCreateProduct handles catalog creation from the admin panel.
func AdminCreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		isActive := true
		if payload.IsActive != nil {
			isActive = *payload.IsActive
		}
		isFeatured := false
		if payload.IsFeatured != nil {
			isFeatured = *payload.IsFeatured
		}

		product, err := svc.CreateProduct(r.Context(), productsvc.CreateProductInput{
			Name:            strings.TrimSpace(payload.Name),
			AltName:         payload.AltName,
			Description:     payload.Description,
			Category:        payload.Category,
			PriceCents:      payload.PriceCents,
			OfferPriceCents: payload.OfferPriceCents,
			StockQty:        payload.StockQty,
			Colors:          payload.Colors,
			Sizes:           payload.Sizes,
			Images:          payload.Images,
			IsActive:        isActive,
			IsFeatured:      isFeatured,
			Variants:        toVariantInputs(payload.Variants),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// AdminUpdateProduct applies a partial update to a product.
func AdminUpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := productsvc.UpdateProductInput{
			Name:            payload.Name,
			AltName:         payload.AltName,
			Description:     payload.Description,
			Category:        payload.Category,
			PriceCents:      payload.PriceCents,
			OfferPriceCents: payload.OfferPriceCents,
			StockQty:        payload.StockQty,
			Colors:          payload.Colors,
			Sizes:           payload.Sizes,
			Images:          payload.Images,
			IsActive:        payload.IsActive,
			IsFeatured:      payload.IsFeatured,
		}
		if payload.Variants != nil {
			variants := toVariantInputs(*payload.Variants)
			input.Variants = &variants
		}

		product, err := svc.UpdateProduct(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// AdminDeleteProduct removes a product from the catalog.
func AdminDeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
