package auth

import "context"

type contextKey struct{}

// ContextWithSession attaches the resolved session so downstream handlers
// can read it without re-parsing cookies.
func ContextWithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, session)
}

// SessionFromContext returns the session attached by the middleware, or nil.
func SessionFromContext(ctx context.Context) *Session {
	session, _ := ctx.Value(contextKey{}).(*Session)
	return session
}
