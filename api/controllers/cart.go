package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lunakids/lunakids-backend/api/middleware"
	"github.com/lunakids/lunakids-backend/api/responses"
	"github.com/lunakids/lunakids-backend/api/validators"
	cartsvc "github.com/lunakids/lunakids-backend/internal/cart"
	productsvc "github.com/lunakids/lunakids-backend/internal/products"
	"github.com/lunakids/lunakids-backend/internal/selection"
	pkgerrors "github.com/lunakids/lunakids-backend/pkg/errors"
	"github.com/lunakids/lunakids-backend/pkg/logger"
)

type unitSelectionRequest struct {
	Color string `json:"color" validate:"required"`
	Size  string `json:"size,omitempty"`
}

type cartAddRequest struct {
	ProductID  string                 `json:"product_id" validate:"required,uuid"`
	Quantity   int                    `json:"quantity" validate:"required,min=1"`
	Selections []unitSelectionRequest `json:"selections,omitempty"`
}

type cartQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

// CartFetch returns the session's cart.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		cart, err := svc.GetCart(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

// CartAdd replays the shopper's color/size picks against live stock before
// committing them as cart units. A selection that no longer holds is rejected
// with the exact shortfall.
func CartAdd(svc cartsvc.Service, products productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || products == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		product, err := products.GetProduct(r.Context(), productID, false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		units, err := replaySelection(product, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.AddUnits(r.Context(), middleware.SessionIDFromContext(r.Context()), productID, units)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

// CartSetQuantity sets a line's quantity, clamping to stock when needed.
func CartSetQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.SetQuantity(r.Context(), middleware.SessionIDFromContext(r.Context()), productID, *payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CartRemoveLine drops one product line from the cart.
func CartRemoveLine(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cart, err := svc.RemoveLine(r.Context(), middleware.SessionIDFromContext(r.Context()), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cart)
	}
}

// CartRefresh reconciles every line against live stock and reports what moved.
func CartRefresh(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		result, err := svc.RefreshStock(r.Context(), middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// CartClear empties the cart.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		if err := svc.Clear(r.Context(), middleware.SessionIDFromContext(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}

// replaySelection rebuilds the storefront's selection server-side so stale
// client state never commits units the stock cannot back.
func replaySelection(product *productsvc.ProductDTO, payload cartAddRequest) ([]selection.Unit, error) {
	colors := make([]selection.ColorStock, 0, len(product.Colors))
	for _, opt := range product.Colors {
		colors = append(colors, selection.ColorStock{
			Color: opt.Color,
			Stock: opt.StockQty,
			Sizes: opt.Sizes,
		})
	}

	selector := selection.New(colors, product.TotalStock)
	if err := selector.SetRequestedQuantity(payload.Quantity); err != nil {
		return nil, err
	}
	for _, pick := range payload.Selections {
		if err := selector.IncreaseColor(pick.Color); err != nil {
			return nil, err
		}
		if pick.Size == "" {
			continue
		}
		if err := selector.IncreaseSize(pick.Color, pick.Size); err != nil {
			return nil, err
		}
	}
	if err := selector.ValidateForCommit(); err != nil {
		return nil, err
	}
	return selector.Flatten(), nil
}
