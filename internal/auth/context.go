package auth

import (
	"context"

	"github.com/hongminglow/task-tracker/internal/models"
)

// Identity is the authenticated caller attached to a request context.
type Identity struct {
	// User is the live record loaded for this request.
	User models.User
	// Claims are the token contents as issued.
	Claims Claims
	// IsAdmin is derived from User.Role, never from Claims.Role.
	IsAdmin bool
}

// NewIdentity builds an Identity from a freshly loaded user and verified claims.
func NewIdentity(user models.User, claims Claims) Identity {
	return Identity{User: user, Claims: claims, IsAdmin: user.IsAdmin()}
}

type identityContextKey struct{}

// WithIdentity stores the identity on the context for downstream handlers.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

// IdentityFromContext retrieves the identity set by the auth middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}
