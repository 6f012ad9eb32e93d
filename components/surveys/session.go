package surveys

import "context"

// Session is the authenticated viewer. AccessToken is forwarded to the backend.
type Session struct {
	UserID      string `json:"sub"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"name,omitempty"`
	AccessToken string `json:"token,omitempty"`
}

// Credentials are the raw request inputs a SessionResolver may inspect.
type Credentials struct {
	Cookie        string
	Authorization string
}

// SessionResolver turns request credentials into a session. A nil session with
// a nil error means the viewer is anonymous.
type SessionResolver interface {
	ResolveSession(ctx context.Context, creds Credentials) (*Session, error)
}

// SessionResolverFunc adapts a function into a SessionResolver.
type SessionResolverFunc func(ctx context.Context, creds Credentials) (*Session, error)

// ResolveSession implements SessionResolver.
func (f SessionResolverFunc) ResolveSession(ctx context.Context, creds Credentials) (*Session, error) {
	return f(ctx, creds)
}

type sessionContextKey struct{}

// ContextWithSession stores the session so backends can forward its token.
func ContextWithSession(ctx context.Context, session *Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, sessionContextKey{}, session)
}

// SessionFromContext returns the session stored by ContextWithSession, if any.
func SessionFromContext(ctx context.Context) *Session {
	if ctx == nil {
		return nil
	}
	session, _ := ctx.Value(sessionContextKey{}).(*Session)
	return session
}
