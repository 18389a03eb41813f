package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/freshmarket/internal/config"
	"github.com/example/freshmarket/internal/middleware"
	"github.com/example/freshmarket/internal/models"
	"github.com/example/freshmarket/internal/repository"
	"github.com/example/freshmarket/internal/utils"
)

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	repos *repository.Repositories
	cfg   *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(repos *repository.Repositories, cfg *config.Config) *AuthHandler {
	return &AuthHandler{repos: repos, cfg: cfg}
}

type signupRequest struct {
	Name     string `json:"name"`
	Contact  string `json:"contact"`
	Password string `json:"password"`
}

// Signup creates a new user account and starts its session.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Contact) == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}

	user, err := h.repos.Auth.Signup(c.UserContext(), req.Name, req.Contact, req.Password)
	if err != nil {
		return repoError(err)
	}

	return h.respondWithToken(c, fiber.StatusCreated, user)
}

type loginRequest struct {
	Contact  string `json:"contact"`
	Password string `json:"password"`
}

// Login authenticates an existing user.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.repos.Auth.Login(c.UserContext(), req.Contact, req.Password)
	if err != nil {
		return repoError(err)
	}

	return h.respondWithToken(c, fiber.StatusOK, user)
}

// Logout clears the stored session when it belongs to the caller.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.repos.Auth.LogoutAs(c.UserContext(), middleware.CurrentCaller(c)); err != nil {
		return repoError(err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// Session returns the stored session user if the caller may see it, or null.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	user, err := h.repos.Auth.SessionFor(c.UserContext(), middleware.CurrentCaller(c))
	if err != nil {
		return repoError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": user})
}

func (h *AuthHandler) respondWithToken(c *fiber.Ctx, status int, user models.User) error {
	token, err := utils.GenerateToken(h.cfg.JWTSecret, user, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"user":    user.Sanitized(),
		"token":   token,
	})
}
