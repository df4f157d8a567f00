package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"rondasapi/internal/model"
	"rondasapi/internal/service"
)

type stubAuthenticator map[string]*model.User

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*model.User, error) {
	u, ok := s[token]
	if !ok {
		return nil, service.ErrUnauthorized
	}
	if !u.IsApproved {
		return nil, service.ErrNotApproved
	}
	return u, nil
}

func newAuthApp() *fiber.App {
	users := stubAuthenticator{
		"admin":   {ID: 1, Username: "admin", IsAdmin: true, IsApproved: true},
		"sup":     {ID: 2, Username: "sup", IsSupervisor: true, IsApproved: true},
		"guard":   {ID: 3, Username: "guard", IsApproved: true},
		"pending": {ID: 4, Username: "pending"},
	}

	app := fiber.New()
	app.Use(RequireAuth(users))
	app.Get("/me", func(c *fiber.Ctx) error { return c.SendString(CurrentUser(c).Username) })
	app.Get("/sup", RequireSupervisor(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/admin", RequireAdmin(), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	return app
}

func TestRequireAuth(t *testing.T) {
	app := newAuthApp()

	tests := []struct {
		name   string
		header string
		path   string
		status int
	}{
		{"missing header", "", "/me", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic admin", "/me", fiber.StatusUnauthorized},
		{"unknown token", "Bearer nope", "/me", fiber.StatusUnauthorized},
		{"not approved", "Bearer pending", "/me", fiber.StatusForbidden},
		{"ok", "bearer guard", "/me", fiber.StatusOK},
		{"guard on supervisor route", "Bearer guard", "/sup", fiber.StatusForbidden},
		{"supervisor route", "Bearer sup", "/sup", fiber.StatusOK},
		{"admin may supervise", "Bearer admin", "/sup", fiber.StatusOK},
		{"supervisor on admin route", "Bearer sup", "/admin", fiber.StatusForbidden},
		{"admin route", "Bearer admin", "/admin", fiber.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set(fiber.HeaderAuthorization, tt.header)
			}
			resp, err := app.Test(req)
			assert.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
