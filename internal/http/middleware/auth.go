package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"rondasapi/internal/model"
	"rondasapi/internal/service"
)

// UserLocalKey is the Fiber locals key holding the authenticated *model.User.
const UserLocalKey = "user"

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// CurrentUser returns the user stored by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *model.User {
	u, _ := c.Locals(UserLocalKey).(*model.User)
	return u
}

func bearerToken(c *fiber.Ctx) string {
	h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// RequireAuth rejects requests without a valid bearer token. Failures are
// returned as *fiber.Error so the global error handler shapes the payload.
func RequireAuth(a Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		u, err := a.Authenticate(c.UserContext(), token)
		switch {
		case errors.Is(err, service.ErrNotApproved):
			return fiber.NewError(fiber.StatusForbidden, "user not approved")
		case errors.Is(err, service.ErrUnauthorized):
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		case err != nil:
			return err
		}
		c.Locals(UserLocalKey, u)
		return c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if u := CurrentUser(c); u == nil || !u.IsAdmin {
			return fiber.NewError(fiber.StatusForbidden, "admin only")
		}
		return c.Next()
	}
}

// RequireSupervisor admits supervisors and admins. It must run after RequireAuth.
func RequireSupervisor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if u := CurrentUser(c); u == nil || !u.CanSupervise() {
			return fiber.NewError(fiber.StatusForbidden, "supervisor only")
		}
		return c.Next()
	}
}
