package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/freshmarket/internal/middleware"
	"github.com/example/freshmarket/internal/models"
	"github.com/example/freshmarket/internal/repository"
	"github.com/example/freshmarket/internal/utils"
)

// AdminHandler manages admin-only endpoints.
type AdminHandler struct {
	repos *repository.Repositories
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(repos *repository.Repositories) *AdminHandler {
	return &AdminHandler{repos: repos}
}

// DashboardStats returns aggregate statistics for the admin dashboard.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	stats, err := h.repos.Orders.Stats(c.UserContext(), middleware.CurrentCaller(c))
	if err != nil {
		return repoError(err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_users":              h.repos.Users.Count(c.UserContext()),
			"total_orders":             stats.TotalOrders,
			"pending_orders":           stats.PendingOrders,
			"total_revenue":            stats.TotalRevenue,
			"orders_by_status":         stats.OrdersByStatus,
			"orders_by_payment_method": stats.OrdersByMethod,
		},
	})
}

// ListAllOrders returns all orders with pagination and an optional status filter.
func (h *AdminHandler) ListAllOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	orders, err := h.repos.Orders.GetAll(c.UserContext(), middleware.CurrentCaller(c))
	if err != nil {
		return repoError(err)
	}

	if status := models.OrderStatus(c.Query("status")); status != "" {
		filtered := make([]models.Order, 0, len(orders))
		for _, o := range orders {
			if o.Status == status {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       utils.Paginate(orders, pg),
		"pagination": pg.Meta(len(orders)),
	})
}

// ListAllUsers returns all registered users with pagination and search.
// Passwords are never included.
func (h *AdminHandler) ListAllUsers(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	users, err := h.repos.Users.GetAll(c.UserContext(), middleware.CurrentCaller(c))
	if err != nil {
		return repoError(err)
	}

	search := strings.ToLower(strings.TrimSpace(c.Query("search")))
	result := make([]models.User, 0, len(users))
	for _, u := range users {
		if search != "" &&
			!strings.Contains(strings.ToLower(u.Name), search) &&
			!strings.Contains(u.NormalizedContact(), search) {
			continue
		}
		result = append(result, u.Sanitized())
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       utils.Paginate(result, pg),
		"pagination": pg.Meta(len(result)),
	})
}

// DeleteUser removes a user account. The administrator cannot be removed.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.repos.Users.Delete(c.UserContext(), middleware.CurrentCaller(c), c.Params("id")); err != nil {
		return repoError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
