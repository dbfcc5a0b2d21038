package controllers

import (
	"net/http"
	"time"

	"github.com/lunakids/lunakids-backend/api/responses"
	"github.com/lunakids/lunakids-backend/api/validators"
	settingssvc "github.com/lunakids/lunakids-backend/internal/settings"
	pkgauth "github.com/lunakids/lunakids-backend/pkg/auth"
	"github.com/lunakids/lunakids-backend/pkg/config"
	pkgerrors "github.com/lunakids/lunakids-backend/pkg/errors"
	"github.com/lunakids/lunakids-backend/pkg/logger"
)

type adminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type adminChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// AdminLogin verifies the shared admin password and mints a session token.
func AdminLogin(svc settingssvc.Service, cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		var payload adminLoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.VerifyAdminPassword(r.Context(), payload.Password); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		token, err := pkgauth.MintAdminToken(cfg, time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint admin token"))
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"token":      token,
			"expires_in": cfg.ExpirationMinutes * 60,
		})
	}
}

// AdminChangePassword rotates the shared admin password.
func AdminChangePassword(svc settingssvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		var payload adminChangePasswordRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ChangeAdminPassword(r.Context(), payload.CurrentPassword, payload.NewPassword); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "changed"})
	}
}
