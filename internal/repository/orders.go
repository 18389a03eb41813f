package repository

import (
	"context"
	"fmt"

	"github.com/example/freshmarket/internal/latency"
	"github.com/example/freshmarket/internal/models"
	"github.com/example/freshmarket/internal/storage"
)

// OrderRepository manages placed orders, newest first.
type OrderRepository struct {
	*base
}

// OrderStats aggregates the orders collection for the admin dashboard.
type OrderStats struct {
	TotalOrders    int                          `json:"total_orders"`
	PendingOrders  int                          `json:"pending_orders"`
	TotalRevenue   float64                      `json:"total_revenue"`
	OrdersByStatus map[models.OrderStatus]int   `json:"orders_by_status"`
	OrdersByMethod map[models.PaymentMethod]int `json:"orders_by_payment_method"`
}

func (r *OrderRepository) load(ctx context.Context) []models.Order {
	return storage.Read(ctx, r.store, storage.KeyOrders, []models.Order{})
}

// GetAll returns every order, newest first. Staff only.
func (r *OrderRepository) GetAll(ctx context.Context, caller Caller) ([]models.Order, error) {
	if !caller.canViewAllOrders() {
		return nil, ErrForbidden
	}
	ctx, err := r.begin(ctx, latency.OpOrdersList)
	if err != nil {
		return nil, err
	}
	return r.load(ctx), nil
}

// GetUserOrders returns the orders owned by userID, newest first.
func (r *OrderRepository) GetUserOrders(ctx context.Context, caller Caller, userID string) ([]models.Order, error) {
	if !caller.canViewOrdersOf(userID) {
		return nil, ErrForbidden
	}
	ctx, err := r.begin(ctx, latency.OpUserOrders)
	if err != nil {
		return nil, err
	}

	orders := r.load(ctx)
	owned := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.UserID == userID {
			owned = append(owned, o)
		}
	}
	return owned, nil
}

// Create assigns the order an id and creation time, stores it ahead of every
// existing order and returns it. Items and total are kept exactly as given.
func (r *OrderRepository) Create(ctx context.Context, caller Caller, order models.Order) (models.Order, error) {
	if !caller.canOrderFor(order.UserID) {
		return models.Order{}, ErrForbidden
	}
	ctx, unlock, err := r.beginWrite(ctx, latency.OpOrderCreate)
	if err != nil {
		return models.Order{}, err
	}
	defer unlock()

	order.ID = r.newID()
	order.CreatedAt = r.nowMillis()
	if order.Status == "" {
		order.Status = models.OrderPending
	}

	orders := append([]models.Order{order}, r.load(ctx)...)
	if err := storage.Write(ctx, r.store, storage.KeyOrders, orders); err != nil {
		return models.Order{}, fmt.Errorf("save orders: %w", err)
	}
	return order, nil
}

// Stats summarises all orders. Cancelled orders do not count as revenue.
// Staff only.
func (r *OrderRepository) Stats(ctx context.Context, caller Caller) (OrderStats, error) {
	if !caller.canViewAllOrders() {
		return OrderStats{}, ErrForbidden
	}
	ctx, err := r.begin(ctx, latency.OpOrderStats)
	if err != nil {
		return OrderStats{}, err
	}

	stats := OrderStats{
		OrdersByStatus: map[models.OrderStatus]int{},
		OrdersByMethod: map[models.PaymentMethod]int{},
	}
	for _, o := range r.load(ctx) {
		stats.TotalOrders++
		stats.OrdersByStatus[o.Status]++
		stats.OrdersByMethod[o.PaymentMethod]++
		if o.Status == models.OrderPending {
			stats.PendingOrders++
		}
		if o.Status != models.OrderCancelled {
			stats.TotalRevenue += o.Total
		}
	}
	return stats, nil
}
