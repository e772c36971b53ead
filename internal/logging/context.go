package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type contextKey string

const (
	requestIDKey  contextKey = "request_id"
	sessionKeyKey contextKey = "session"
)

// GenerateRequestID creates a new request id.
func GenerateRequestID() string {
	return uuid.New().String()
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the request id or "".
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithSession tags ctx with a short form of the session key so log
// lines can be correlated per visitor without logging the full cookie.
func ContextWithSession(ctx context.Context, sessionKey string) context.Context {
	short := sessionKey
	if len(short) > 8 {
		short = short[:8]
	}
	return context.WithValue(ctx, sessionKeyKey, short)
}

// Ctx returns the global logger enriched with request_id and session from ctx.
//
//	logging.Ctx(ctx).Info().Msg("profile saved")
func Ctx(ctx context.Context) *zerolog.Logger {
	l := Logger().With().Logger()

	if id := RequestIDFromContext(ctx); id != "" {
		l = l.With().Str("request_id", id).Logger()
	}
	if s, ok := ctx.Value(sessionKeyKey).(string); ok && s != "" {
		l = l.With().Str("session", s).Logger()
	}

	return &l
}
