package middleware

import (
	"context"

	"bugtracker/backend/app/session"
)

type ctxKey int

const SessionKey ctxKey = 1

func WithSession(ctx context.Context, s session.Context) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

// GetSession returns the session attached by the auth middleware.
func GetSession(ctx context.Context) (session.Context, bool) {
	s, ok := ctx.Value(SessionKey).(session.Context)
	return s, ok
}
