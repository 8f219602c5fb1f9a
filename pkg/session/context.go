package session

import "context"

type sessionContextKey struct{}

// WithSession adds a session to the context.
func WithSession(ctx context.Context, session *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// FromContext retrieves the session from the context. Inside a handler
// wrapped by Manager.Middleware a session is always present.
func FromContext(ctx context.Context) (*Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(*Session)
	return session, ok
}

// MustFromContext retrieves the session from the context or panics.
func MustFromContext(ctx context.Context) *Session {
	session, ok := FromContext(ctx)
	if !ok {
		panic("session: not found in context")
	}
	return session
}
