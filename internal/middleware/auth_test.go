package middleware

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/freshmarket/internal/models"
	"github.com/example/freshmarket/internal/repository"
	"github.com/example/freshmarket/internal/utils"
)

type staticUsers map[string]models.User

func (s staticUsers) FindByID(_ context.Context, id string) (models.User, bool) {
	u, ok := s[id]
	return u, ok
}

func TestAuthMiddleware(t *testing.T) {
	var seen repository.Caller
	users := staticUsers{"u-1": {ID: "u-1", Role: models.RoleAdmin}}
	app := fiber.New()
	app.Get("/me", AuthMiddleware("secret", users), func(c *fiber.Ctx) error {
		seen = CurrentCaller(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	token, err := utils.GenerateToken("secret", models.User{ID: "u-1", Role: models.RoleAdmin}, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", fiber.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, fiber.StatusUnauthorized},
		{"bad token", "Bearer nope", fiber.StatusUnauthorized},
		{"valid", "Bearer " + token, fiber.StatusNoContent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}

	assert.Equal(t, repository.Caller{UserID: "u-1", Role: models.RoleAdmin}, seen)
}

func TestAuthMiddlewareUsesStoredAccount(t *testing.T) {
	users := staticUsers{"u-1": {ID: "u-1", Role: models.RoleUser}}

	var seen repository.Caller
	app := fiber.New()
	app.Get("/me", AuthMiddleware("secret", users), func(c *fiber.Ctx) error {
		seen = CurrentCaller(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	stale, err := utils.GenerateToken("secret", models.User{ID: "u-1", Role: models.RoleSubAdmin}, time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+stale)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Equal(t, models.RoleUser, seen.Role)

	gone, err := utils.GenerateToken("secret", models.User{ID: "u-2", Role: models.RoleAdmin}, time.Hour)
	require.NoError(t, err)
	req = httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+gone)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCurrentCallerDefaultsToAnonymous(t *testing.T) {
	var seen repository.Caller
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		seen = CurrentCaller(c)
		return nil
	})

	_, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, repository.Anonymous, seen)
}
