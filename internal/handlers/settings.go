package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/freshmarket/internal/middleware"
	"github.com/example/freshmarket/internal/models"
	"github.com/example/freshmarket/internal/repository"
)

// SettingsHandler manages the merchant bank record and database resets.
type SettingsHandler struct {
	repos *repository.Repositories
}

// NewSettingsHandler constructs SettingsHandler.
func NewSettingsHandler(repos *repository.Repositories) *SettingsHandler {
	return &SettingsHandler{repos: repos}
}

// GetBankDetails returns the bank record checkout pays into.
func (h *SettingsHandler) GetBankDetails(c *fiber.Ctx) error {
	details, err := h.repos.Settings.GetBankDetails(c.UserContext())
	if err != nil {
		return repoError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": details})
}

// SaveBankDetails links or replaces the bank record.
func (h *SettingsHandler) SaveBankDetails(c *fiber.Ctx) error {
	var req models.BankDetails
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	req.IsLinked = true

	details, err := h.repos.Settings.SaveBankDetails(c.UserContext(), middleware.CurrentCaller(c), req)
	if err != nil {
		return repoError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": details})
}

// UnlinkBankDetails clears the bank record.
func (h *SettingsHandler) UnlinkBankDetails(c *fiber.Ctx) error {
	details, err := h.repos.Settings.UnlinkBankDetails(c.UserContext(), middleware.CurrentCaller(c))
	if err != nil {
		return repoError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": details})
}

// ResetDatabase wipes every collection and seeds the store again.
func (h *SettingsHandler) ResetDatabase(c *fiber.Ctx) error {
	if err := h.repos.Settings.ResetDatabase(c.UserContext(), middleware.CurrentCaller(c)); err != nil {
		return repoError(err)
	}
	return c.JSON(fiber.Map{"success": true})
}
