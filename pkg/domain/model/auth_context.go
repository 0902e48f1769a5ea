package model

import (
	"context"

	"github.com/secmon-lab/aegis/pkg/domain/types"
)

type ctxAuthKey struct{}

// AuthContext is the signed-in principal of a request. It is passed through
// context.Context instead of living in shared state.
type AuthContext struct {
	UserID    string
	Email     string
	Role      types.Role
	SessionID string
}

// Allows reports whether the principal holds at least role
func (a *AuthContext) Allows(role types.Role) bool {
	return a != nil && a.Role.AtLeast(role)
}

// WithAuthContext stores the principal in ctx
func WithAuthContext(ctx context.Context, auth *AuthContext) context.Context {
	if auth == nil {
		return ctx
	}
	return context.WithValue(ctx, ctxAuthKey{}, auth)
}

// GetAuthContext returns the principal stored in ctx
func GetAuthContext(ctx context.Context) (*AuthContext, bool) {
	auth, ok := ctx.Value(ctxAuthKey{}).(*AuthContext)
	return auth, ok && auth != nil
}

// ActorID returns the user ID of the principal, or empty for system calls
func ActorID(ctx context.Context) string {
	if auth, ok := GetAuthContext(ctx); ok {
		return auth.UserID
	}
	return ""
}
