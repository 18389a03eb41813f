package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/freshmarket/internal/metrics"
	"github.com/example/freshmarket/internal/middleware"
	"github.com/example/freshmarket/internal/models"
	"github.com/example/freshmarket/internal/repository"
)

const notifyTimeout = 15 * time.Second

// OrderNotifier is told about every placed order.
type OrderNotifier interface {
	NotifyNewOrder(ctx context.Context, order models.Order) error
}

// OrderHandler manages order endpoints.
type OrderHandler struct {
	repos    *repository.Repositories
	notifier OrderNotifier
}

// NewOrderHandler constructs OrderHandler. notifier may be nil.
func NewOrderHandler(repos *repository.Repositories, notifier OrderNotifier) *OrderHandler {
	return &OrderHandler{repos: repos, notifier: notifier}
}

type createOrderRequest struct {
	UserID        string               `json:"userId"`
	Items         []models.CartItem    `json:"items"`
	Total         float64              `json:"total"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
}

// CreateOrder places an order for the caller. Admins may place an order on
// behalf of another user by naming userId. The owner name always comes from
// the stored account.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	caller := middleware.CurrentCaller(c)
	order := models.Order{
		UserID:        req.UserID,
		Items:         req.Items,
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
	}
	if order.UserID == "" {
		order.UserID = caller.UserID
	}
	// Unknown ids are only reported to admins; everyone else is refused by
	// the repository before existence matters.
	owner, ok := h.repos.Users.FindByID(c.UserContext(), order.UserID)
	switch {
	case ok:
		order.UserName = owner.Name
	case caller.Role == models.RoleAdmin:
		return fiber.NewError(fiber.StatusNotFound, "user not found")
	}
	if order.Total == 0 {
		order.Total = order.Subtotal()
	}
	if err := order.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	created, err := h.repos.Orders.Create(c.UserContext(), caller, order)
	if err != nil {
		return repoError(err)
	}

	metrics.RecordOrder(string(created.PaymentMethod))
	h.notify(created)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": created})
}

func (h *OrderHandler) notify(order models.Order) {
	if h.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := h.notifier.NotifyNewOrder(ctx, order); err != nil {
			log.Printf("[Order] Failed to notify about order %s: %v", order.ID, err)
		}
	}()
}

// ListOrders returns the caller's own orders, newest first.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	caller := middleware.CurrentCaller(c)
	orders, err := h.repos.Orders.GetUserOrders(c.UserContext(), caller, caller.UserID)
	if err != nil {
		return repoError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": orders})
}

// ListUserOrders returns the orders of the user named in the path. Staff,
// or the user themself.
func (h *OrderHandler) ListUserOrders(c *fiber.Ctx) error {
	orders, err := h.repos.Orders.GetUserOrders(c.UserContext(), middleware.CurrentCaller(c), c.Params("id"))
	if err != nil {
		return repoError(err)
	}
	return c.JSON(fiber.Map{"success": true, "data": orders})
}
