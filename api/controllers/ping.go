package controllers

import (
	"net/http"

	"github.com/lunakids/lunakids-backend/api/middleware"
	"github.com/lunakids/lunakids-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func AdminPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "admin", "status": "ok"}
		if tokenID := middleware.AdminTokenIDFromContext(r.Context()); tokenID != "" {
			payload["token_id"] = tokenID
		}
		responses.WriteSuccess(w, payload)
	}
}
