package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"megamart/internal/domain/entity"
	domainerrors "megamart/internal/domain/errors"
	"megamart/internal/domain/repository"
	"megamart/internal/domain/service"
	"megamart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ordersKey is the storage key holding locally placed orders as a JSON
// array, newest first.
const ordersKey = "orders"

// orderService implements the OrderUsecase interface. Checkout is simulated
// locally: placing an order snapshots the cart into storage without a
// backend round trip.
type orderService struct {
	store      repository.KVStore
	cart       usecase.CartUsecase
	identities usecase.IdentitySource
	qr         service.QRCodeService
	backend    service.OrderBackend
	logger     *slog.Logger

	// mu serializes read-modify-write cycles on the orders key.
	mu sync.Mutex
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	store repository.KVStore,
	cart usecase.CartUsecase,
	identities usecase.IdentitySource,
	qr service.QRCodeService,
	backend service.OrderBackend,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		store:      store,
		cart:       cart,
		identities: identities,
		qr:         qr,
		backend:    backend,
		logger:     logger,
	}
}

// PlaceOrder snapshots the current cart into a new pending order and clears
// the cart.
func (srv *orderService) PlaceOrder(ctx context.Context, input usecase.PlaceOrderInput) (*entity.Order, error) {
	cartView := srv.cart.View()
	if len(cartView.Items) == 0 {
		return nil, errors.WithStack(domainerrors.ErrEmptyCart)
	}

	identity := srv.identities.Identity()
	userID := "guest"
	if identity.State == entity.IdentityAuthenticated && identity.User != nil {
		userID = identity.User.ID
	}

	now := time.Now().UTC()
	order := entity.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Items:           cartView.Items,
		Count:           cartView.Count,
		Total:           cartView.Total,
		Status:          entity.OrderStatusPending,
		ShippingAddress: input.ShippingAddress,
		PlacedAt:        now,
		UpdatedAt:       now,
	}

	srv.mu.Lock()
	orders := srv.loadLocked(ctx)
	orders = append([]entity.Order{order}, orders...)
	err := srv.saveLocked(ctx, orders)
	srv.mu.Unlock()
	if err != nil {
		return nil, errors.Wrap(err, "failed to place order")
	}

	srv.cart.Clear(ctx)
	srv.logger.Info("Order placed",
		slog.String("orderID", order.ID),
		slog.Int("count", order.Count),
		slog.Int64("total", order.Total),
	)

	return &order, nil
}

// ListOrders returns locally placed orders, newest first.
func (srv *orderService) ListOrders(ctx context.Context) ([]entity.Order, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.loadLocked(ctx), nil
}

// GetOrder returns one locally placed order by id.
func (srv *orderService) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	orders := srv.loadLocked(ctx)
	for i := range orders {
		if orders[i].ID == id {
			return &orders[i], nil
		}
	}

	return nil, errors.Wrapf(domainerrors.ErrOrderNotFound, "order %s", id)
}

// UpdateStatus advances an order along the fulfillment stages.
func (srv *orderService) UpdateStatus(ctx context.Context, id string, status entity.OrderStatus) (*entity.Order, error) {
	if !status.Valid() {
		return nil, errors.Wrapf(domainerrors.ErrValidationFailed, "unknown status %q", status)
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	orders := srv.loadLocked(ctx)
	for i := range orders {
		if orders[i].ID != id {
			continue
		}

		if !orders[i].Status.CanTransitionTo(status) {
			return nil, errors.Wrapf(domainerrors.ErrInvalidStatusChange,
				"cannot move order from %s to %s", orders[i].Status, status)
		}

		orders[i].Status = status
		orders[i].UpdatedAt = time.Now().UTC()
		if err := srv.saveLocked(ctx, orders); err != nil {
			return nil, errors.Wrap(err, "failed to update order status")
		}

		return &orders[i], nil
	}

	return nil, errors.Wrapf(domainerrors.ErrOrderNotFound, "order %s", id)
}

// ReceiptQR renders a QR code referencing the order receipt.
func (srv *orderService) ReceiptQR(ctx context.Context, id string) ([]byte, error) {
	order, err := srv.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	png, err := srv.qr.GenerateOrderQR(order.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render receipt QR")
	}

	return png, nil
}

// VerifyReceipt resolves scanned receipt QR payload data back to the order
// it references.
func (srv *orderService) VerifyReceipt(ctx context.Context, qrData string) (*entity.Order, error) {
	orderID, err := srv.qr.ParseOrderQR(qrData)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	return srv.GetOrder(ctx, orderID)
}

// RemoteOrders lists the order history held by the backend.
func (srv *orderService) RemoteOrders(ctx context.Context) ([]entity.Order, error) {
	orders, err := srv.backend.RemoteOrders(ctx)

	return orders, errors.Wrap(err, "failed to list remote orders")
}

// RemoteOrder returns one backend-held order by id.
func (srv *orderService) RemoteOrder(ctx context.Context, id string) (*entity.Order, error) {
	order, err := srv.backend.RemoteOrder(ctx, id)

	return order, errors.Wrapf(err, "failed to get remote order %s", id)
}

func (srv *orderService) loadLocked(ctx context.Context) []entity.Order {
	raw, err := srv.store.Get(ctx, ordersKey)
	if err != nil {
		if !errors.Is(err, repository.ErrKeyNotFound) {
			srv.logger.Warn("Failed to load orders", slog.Any("error", err))
		}

		return nil
	}

	var orders []entity.Order
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		srv.logger.Warn("Stored orders are unreadable", slog.Any("error", err))

		return nil
	}

	return orders
}

// saveLocked writes the order list back. Unlike the cart mirror, a failed
// order write is surfaced: the caller must know the order was not recorded.
func (srv *orderService) saveLocked(ctx context.Context, orders []entity.Order) error {
	raw, err := json.Marshal(orders)
	if err != nil {
		return errors.Wrap(err, "failed to encode orders")
	}

	if err := srv.store.Set(ctx, ordersKey, string(raw)); err != nil {
		return errors.Wrap(domainerrors.ErrStorageFailed, err.Error())
	}

	return nil
}
