package controllers

import (
	"net/http"

	"github.com/lunakids/lunakids-backend/api/responses"
	settingssvc "github.com/lunakids/lunakids-backend/internal/settings"
	pkgerrors "github.com/lunakids/lunakids-backend/pkg/errors"
	"github.com/lunakids/lunakids-backend/pkg/logger"
)

// PublicSettings serves the storefront's safe settings subset: banner copy,
// countdown deadline, store name, WhatsApp number.
func PublicSettings(svc settingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		values, err := svc.PublicSettings(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, values)
	}
}
