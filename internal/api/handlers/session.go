package handlers

import (
	"context"
	"net/http"
)

type sessionContextKey struct{}

// ContextWithSessionKey stores the visitor's session key for handlers.
func ContextWithSessionKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, key)
}

// SessionKeyFromContext returns the session key or "" when none was set.
func SessionKeyFromContext(ctx context.Context) string {
	if key, ok := ctx.Value(sessionContextKey{}).(string); ok {
		return key
	}
	return ""
}

// requireSession writes a 400 and returns "" when the request has no session.
func requireSession(w http.ResponseWriter, r *http.Request) string {
	key := SessionKeyFromContext(r.Context())
	if key == "" {
		writeError(w, r, http.StatusBadRequest, "session is required")
	}
	return key
}
