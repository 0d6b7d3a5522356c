// Package session carries the opaque caller identity through a request.
// The identifier is supplied by the caller and never constructed here.
package session

import (
	"context"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// Header is the HTTP header that carries the user id
const Header = "X-User-ID"

// Session identifies who a request acts for
type Session struct {
	UserID    string
	RequestID string
}

type contextKey struct{}

// WithSession attaches a session to a context
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored in ctx, if any
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}

// UserID returns the session's user id or ErrUserIDRequired
func UserID(ctx context.Context) (string, error) {
	s, ok := FromContext(ctx)
	if !ok || s.UserID == "" {
		return "", domain.ErrUserIDRequired
	}
	return s.UserID, nil
}
