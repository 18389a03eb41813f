package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/freshmarket/internal/middleware"
	"github.com/example/freshmarket/internal/repository"
)

// ProfileHandler serves the signed-in user's own account.
type ProfileHandler struct {
	repos *repository.Repositories
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(repos *repository.Repositories) *ProfileHandler {
	return &ProfileHandler{repos: repos}
}

// DeleteAccount removes the caller's account and ends the session.
func (h *ProfileHandler) DeleteAccount(c *fiber.Ctx) error {
	caller := middleware.CurrentCaller(c)
	if err := h.repos.Auth.DeleteAccount(c.UserContext(), caller, caller.UserID); err != nil {
		return repoError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
