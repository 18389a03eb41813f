package models

import "errors"

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
	PaymentCOD  PaymentMethod = "cod"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCard, PaymentUPI, PaymentCOD:
		return true
	}
	return false
}

// Label returns the checkout wording for the payment method.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCard:
		return "Card"
	case PaymentUPI:
		return "UPI"
	case PaymentCOD:
		return "Cash on Delivery"
	}
	return "Online Payment"
}

// CartItem is a product snapshot together with the ordered quantity.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotal is price times quantity.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Order is a placed checkout. Items and Total are snapshots taken at creation
// and are never recomputed.
type Order struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	UserName      string        `json:"userName"`
	Items         []CartItem    `json:"items"`
	Total         float64       `json:"total"`
	Status        OrderStatus   `json:"status"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	CreatedAt     int64         `json:"createdAt"`
}

// Subtotal sums the line totals of the order's items.
func (o Order) Subtotal() float64 {
	var sum float64
	for _, item := range o.Items {
		sum += item.LineTotal()
	}
	return sum
}

// Validate checks the fields a checkout must supply.
func (o Order) Validate() error {
	if o.UserID == "" {
		return errors.New("userId is required")
	}
	if len(o.Items) == 0 {
		return errors.New("order has no items")
	}
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return errors.New("quantity must be positive")
		}
		if item.Price < 0 {
			return errors.New("price must not be negative")
		}
	}
	if !o.PaymentMethod.Valid() {
		return errors.New("unknown payment method")
	}
	if o.Status != "" && !o.Status.Valid() {
		return errors.New("unknown order status")
	}
	return nil
}
