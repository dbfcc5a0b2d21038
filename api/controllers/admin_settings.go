package controllers

import (
	"net/http"

	"github.com/lunakids/lunakids-backend/api/responses"
	"github.com/lunakids/lunakids-backend/api/validators"
	settingssvc "github.com/lunakids/lunakids-backend/internal/settings"
	"github.com/lunakids/lunakids-backend/pkg/enums"
	pkgerrors "github.com/lunakids/lunakids-backend/pkg/errors"
	"github.com/lunakids/lunakids-backend/pkg/logger"
)

type setSettingRequest struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

// AdminListSettings returns every settings row except the password hash.
func AdminListSettings(svc settingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		values, err := svc.AllSettings(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, values)
	}
}

// AdminSetSetting upserts one settings row.
func AdminSetSetting(svc settingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		var payload setSettingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.SetSetting(r.Context(), enums.SettingKey(payload.Key), payload.Value); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "saved"})
	}
}
