package graph

import (
	"context"
	"strings"

	domain "github.com/milobedini/milife-backend/domain/user"
	"github.com/milobedini/milife-backend/modules/auth"
	"github.com/gofiber/fiber/v2"
)

type contextKey struct{}

// userContextKey is the key under which the current user is stored in the
// request context.
var userContextKey contextKey

// WithCurrentUser returns a context carrying the given user as the
// authenticated identity.
func WithCurrentUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}

// requireUser returns the authenticated user or an unauthenticated error.
func requireUser(ctx context.Context) (*domain.User, error) {
	if user := CurrentUser(ctx); user != nil {
		return user, nil
	}
	return nil, errUnauthenticated
}

// TokenFromHeader extracts the bearer token from an Authorization header.
// The token is the second space-delimited segment; the scheme before it is
// not validated.
func TokenFromHeader(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// AuthContext builds the per-request identity. A missing, malformed,
// expired or stale token leaves the request anonymous; user-scoped
// resolvers reject anonymous callers individually, so context building
// itself never fails a request.
func AuthContext(authService *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := TokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if token != "" {
			if user, err := authService.UserFromToken(c.UserContext(), token); err == nil {
				c.SetUserContext(WithCurrentUser(c.UserContext(), user))
			}
		}
		return c.Next()
	}
}
