package controllers

import (
	"net/http"

	"github.com/lunakids/lunakids-backend/api/middleware"
	"github.com/lunakids/lunakids-backend/api/responses"
	"github.com/lunakids/lunakids-backend/api/validators"
	chatsvc "github.com/lunakids/lunakids-backend/internal/chat"
	pkgerrors "github.com/lunakids/lunakids-backend/pkg/errors"
	"github.com/lunakids/lunakids-backend/pkg/logger"
)

type chatTurnRequest struct {
	Role    string `json:"role" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type chatAskRequest struct {
	Message string            `json:"message" validate:"required"`
	History []chatTurnRequest `json:"history" validate:"omitempty,dive"`
}

// ChatAsk relays a shopper question to the assistant and returns its reply.
func ChatAsk(svc chatsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "chat service unavailable"))
			return
		}

		var payload chatAskRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		history := make([]chatsvc.Message, 0, len(payload.History))
		for _, turn := range payload.History {
			history = append(history, chatsvc.Message{Role: turn.Role, Content: turn.Content})
		}

		reply, err := svc.Ask(r.Context(), middleware.SessionIDFromContext(r.Context()), payload.Message, history)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"reply": reply})
	}
}
