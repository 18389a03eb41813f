package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/freshmarket/internal/models"
	"github.com/example/freshmarket/internal/services"
)

// ChefHandler serves the recipe assistant.
type ChefHandler struct {
	chef *services.ChefService
}

// NewChefHandler constructs ChefHandler.
func NewChefHandler(chef *services.ChefService) *ChefHandler {
	return &ChefHandler{chef: chef}
}

type chefRequest struct {
	Prompt  string            `json:"prompt"`
	Cart    []models.CartItem `json:"cart"`
	History []string          `json:"history"`
}

// Ask answers a cooking question about the posted cart.
func (h *ChefHandler) Ask(c *fiber.Ctx) error {
	var req chefRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "prompt is required")
	}

	answer := h.chef.Advise(c.UserContext(), req.Prompt, req.Cart, req.History)
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"answer": answer}})
}
