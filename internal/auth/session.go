package auth

import (
	"context"
	"errors"

	"github.com/fieldkeep/fieldkeep/pkg/rbac"
)

// Session identifies the authenticated caller of a request.
type Session struct {
	UserID   int
	UserUID  string
	Username string
	Role     rbac.Role
}

type contextKey string

const sessionKey contextKey = "session"

var ErrNoSession = errors.New("no session in context")

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// CurrentSession retrieves the caller's session from the context. Returns
// ErrNoSession for unauthenticated requests.
func CurrentSession(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(sessionKey).(Session)
	if !ok {
		return Session{}, ErrNoSession
	}
	return s, nil
}
