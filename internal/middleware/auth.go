package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/freshmarket/internal/models"
	"github.com/example/freshmarket/internal/repository"
	"github.com/example/freshmarket/internal/utils"
)

const callerContextKey = "currentCaller"

// UserFinder resolves a token subject to the stored account.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (models.User, bool)
}

// AuthMiddleware validates JWT tokens and loads the caller into context.
// The account must still exist, and its stored role wins over the token's.
func AuthMiddleware(secret string, users UserFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		claims, err := utils.ParseToken(secret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		user, ok := users.FindByID(c.UserContext(), claims.UserID)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "account no longer exists")
		}

		c.Locals(callerContextKey, repository.Caller{UserID: user.ID, Role: user.Role})
		return c.Next()
	}
}

// CurrentCaller extracts the authenticated caller from context, or
// repository.Anonymous outside AuthMiddleware.
func CurrentCaller(c *fiber.Ctx) repository.Caller {
	if caller, ok := c.Locals(callerContextKey).(repository.Caller); ok {
		return caller
	}
	return repository.Anonymous
}
