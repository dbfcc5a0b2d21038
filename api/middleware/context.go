package middleware

import "context"

type ctxKey string

const (
	ctxSessionID ctxKey = "session_id"
	ctxAdminID   ctxKey = "admin_token_id"
)

// WithSessionID seeds the shopper session id, mirroring what Session does.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, ctxSessionID, sessionID)
}

// SessionIDFromContext returns the shopper session id seeded by Session.
func SessionIDFromContext(ctx context.Context) string {
	value, _ := ctx.Value(ctxSessionID).(string)
	return value
}

// AdminTokenIDFromContext returns the admin token id seeded by AdminAuth.
func AdminTokenIDFromContext(ctx context.Context) string {
	value, _ := ctx.Value(ctxAdminID).(string)
	return value
}
