package middleware

import (
	"net/http"
	"strings"

	"github.com/lunakids/lunakids-backend/api/responses"
	pkgerrors "github.com/lunakids/lunakids-backend/pkg/errors"
	"github.com/lunakids/lunakids-backend/pkg/logger"
)

const sessionIDHeader = "X-Session-Id"

const (
	minSessionIDLen = 16
	maxSessionIDLen = 128
)

// Session requires the storefront's opaque session header and seeds it into
// the request context. The frontend generates the id once and sticks with it.
func Session(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(sessionIDHeader))
			if len(sessionID) < minSessionIDLen || len(sessionID) > maxSessionIDLen {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "a session id header is required"))
				return
			}

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
