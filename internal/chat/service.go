package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lunakids/lunakids-backend/pkg/enums"
	pkgerrors "github.com/lunakids/lunakids-backend/pkg/errors"
)

const (
	maxMessageChars = 2000
	maxHistoryTurns = 20

	messageLimit  = 20
	messageWindow = time.Minute
)

type completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

type rateLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

type settingsReader interface {
	PublicSettings(ctx context.Context) (map[string]string, error)
}

// Service relays shopper questions to the assistant with the storefront's
// context prepended.
type Service interface {
	Ask(ctx context.Context, sessionID, message string, history []Message) (string, error)
}

type service struct {
	client   completer
	limiter  rateLimiter
	settings settingsReader
}

// NewService builds the chat relay service.
func NewService(client completer, limiter rateLimiter, settings settingsReader) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "chat client is required")
	}
	if limiter == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rate limiter is required")
	}
	if settings == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "settings reader is required")
	}
	return &service{client: client, limiter: limiter, settings: settings}, nil
}

func (s *service) Ask(ctx context.Context, sessionID, message string, history []Message) (string, error) {
	if strings.TrimSpace(sessionID) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}
	if len(message) > maxMessageChars {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "message is too long")
	}

	allowed, _, err := s.limiter.FixedWindowAllow(ctx, "chat:"+sessionID, messageLimit, messageWindow)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "chat rate limit")
	}
	if !allowed {
		return "", pkgerrors.New(pkgerrors.CodeRateLimit, "too many messages, slow down")
	}

	conversation := make([]Message, 0, len(history)+2)
	conversation = append(conversation, Message{Role: "system", Content: s.systemPrompt(ctx)})
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	for _, turn := range history {
		if turn.Role != "user" && turn.Role != "assistant" {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "history roles must be user or assistant")
		}
		conversation = append(conversation, turn)
	}
	conversation = append(conversation, Message{Role: "user", Content: message})

	return s.client.Complete(ctx, conversation)
}

// systemPrompt grounds the assistant in the storefront. Settings lookup
// failures fall back to a generic prompt rather than blocking the chat.
func (s *service) systemPrompt(ctx context.Context) string {
	storeName := "our children's clothing store"
	if values, err := s.settings.PublicSettings(ctx); err == nil {
		if name := values[string(enums.SettingStoreName)]; name != "" {
			storeName = name
		}
	}
	return fmt.Sprintf(
		"You are a friendly shopping assistant for %s, an online store for kids' clothes. "+
			"Help shoppers with sizing, colors, and orders. Keep answers short. "+
			"If asked about order status or payment, point the shopper to WhatsApp support.",
		storeName,
	)
}
