package controllers

import (
	"net/http"
	"strings"

	"github.com/lunakids/lunakids-backend/api/middleware"
	"github.com/lunakids/lunakids-backend/api/responses"
	"github.com/lunakids/lunakids-backend/api/validators"
	checkoutsvc "github.com/lunakids/lunakids-backend/internal/checkout"
	pkgerrors "github.com/lunakids/lunakids-backend/pkg/errors"
	"github.com/lunakids/lunakids-backend/pkg/logger"
)

type checkoutRequest struct {
	CustomerName    string  `json:"customer_name" validate:"required,min=2,max=120"`
	CustomerPhone   string  `json:"customer_phone" validate:"required,min=7,max=32"`
	CustomerAddress *string `json:"customer_address,omitempty" validate:"omitempty,max=500"`
}

// Checkout converts the cart into a pending order and returns the WhatsApp
// deep link the storefront should open.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Checkout(r.Context(), middleware.SessionIDFromContext(r.Context()), checkoutsvc.CheckoutInput{
			CustomerName:    strings.TrimSpace(payload.CustomerName),
			CustomerPhone:   strings.TrimSpace(payload.CustomerPhone),
			CustomerAddress: payload.CustomerAddress,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}
