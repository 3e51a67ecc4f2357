package usecase

import (
	"context"

	"megamart/internal/domain/entity"
)

// PlaceOrderInput defines the data required to turn the cart into an order.
type PlaceOrderInput struct {
	ShippingAddress string `validate:"required"`
}

// OrderUsecase manages locally placed orders and the backend order history.
// Checkout is simulated on the client: placing an order snapshots the cart
// into local storage and clears it, without a backend round trip.
type OrderUsecase interface {
	// PlaceOrder snapshots the current cart into a new pending order and
	// clears the cart. An empty cart is rejected.
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*entity.Order, error)

	// ListOrders returns locally placed orders, newest first.
	ListOrders(ctx context.Context) ([]entity.Order, error)

	// GetOrder returns one locally placed order by id.
	GetOrder(ctx context.Context, id string) (*entity.Order, error)

	// UpdateStatus advances an order along the fulfillment states.
	UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.Order, error)

	// ReceiptQR renders a QR code referencing the order receipt.
	ReceiptQR(ctx context.Context, id string) ([]byte, error)

	// VerifyReceipt resolves scanned receipt QR payload data back to the
	// order it references.
	VerifyReceipt(ctx context.Context, qrData string) (*entity.Order, error)

	// RemoteOrders lists the order history held by the backend.
	RemoteOrders(ctx context.Context) ([]entity.Order, error)

	// RemoteOrder returns one backend-held order by id.
	RemoteOrder(ctx context.Context, id string) (*entity.Order, error)
}
