package entity

import "time"

// OrderStatus is the lifecycle stage of a placed order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether the status is one of the known stages.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}

	return false
}

// CanTransitionTo reports whether the order-management console may move an
// order from s to next. Orders advance one stage at a time and may be
// cancelled until they ship.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusConfirmed || next == OrderStatusCancelled
	case OrderStatusConfirmed:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	}

	return false
}

// Order is a checkout snapshot of the cart. Orders placed through the
// storefront live in local storage only; the backend's order listing is a
// separate read-only passthrough.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	Items           []LineItem  `json:"items"`
	Count           int         `json:"count"`
	Total           int64       `json:"total"`
	Status          OrderStatus `json:"status"`
	ShippingAddress string      `json:"shippingAddress,omitempty"`
	PlacedAt        time.Time   `json:"placedAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}
