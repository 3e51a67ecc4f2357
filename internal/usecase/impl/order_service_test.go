package impl

import (
	"context"
	"testing"

	"megamart/internal/domain/entity"
	domainerrors "megamart/internal/domain/errors"
	"megamart/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderFixture(state entity.IdentityState, user *entity.User) (usecase.OrderUsecase, usecase.CartUsecase, *fakeStore) {
	store := newFakeStore()
	identities := newIdentityStub(state, user)
	cart := NewCartService(store, identities, testLogger())
	orders := NewOrderService(store, cart, identities, fakeQRService{}, &fakeOrderBackend{}, testLogger())

	return orders, cart, store
}

func TestOrderService_PlaceOrderRejectsEmptyCart(t *testing.T) {
	orders, _, _ := newOrderFixture(entity.IdentityAnonymous, nil)

	_, err := orders.PlaceOrder(context.Background(), usecase.PlaceOrderInput{ShippingAddress: "12 MG Road"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrEmptyCart)
}

func TestOrderService_PlaceOrderSnapshotsAndClearsCart(t *testing.T) {
	user := &entity.User{ID: "u-1"}
	orders, cart, store := newOrderFixture(entity.IdentityAuthenticated, user)

	ctx := context.Background()
	cart.AddItem(ctx, entity.LineItem{ID: "p1", Name: "Sneaker", Price: 2499, Quantity: 2})
	cart.AddItem(ctx, entity.LineItem{ID: "p2", Name: "Scarf", Price: 999, Quantity: 1})

	order, err := orders.PlaceOrder(ctx, usecase.PlaceOrderInput{ShippingAddress: "12 MG Road"})
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "u-1", order.UserID)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, 3, order.Count)
	assert.Equal(t, int64(5997), order.Total)
	assert.Equal(t, "12 MG Road", order.ShippingAddress)

	// The cart is emptied and its key removed.
	assert.Empty(t, cart.View().Items)
	_, hasCart := store.get("cart:u-1")
	assert.False(t, hasCart)

	listed, err := orders.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, order.ID, listed[0].ID)
}

func TestOrderService_OrdersAreNewestFirst(t *testing.T) {
	orders, cart, _ := newOrderFixture(entity.IdentityAnonymous, nil)

	ctx := context.Background()
	cart.AddItem(ctx, entity.LineItem{ID: "p1", Price: 100, Quantity: 1})
	first, err := orders.PlaceOrder(ctx, usecase.PlaceOrderInput{ShippingAddress: "addr"})
	require.NoError(t, err)

	cart.AddItem(ctx, entity.LineItem{ID: "p2", Price: 200, Quantity: 1})
	second, err := orders.PlaceOrder(ctx, usecase.PlaceOrderInput{ShippingAddress: "addr"})
	require.NoError(t, err)

	listed, err := orders.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, second.ID, listed[0].ID)
	assert.Equal(t, first.ID, listed[1].ID)
}

func TestOrderService_GetOrder(t *testing.T) {
	orders, cart, _ := newOrderFixture(entity.IdentityAnonymous, nil)

	ctx := context.Background()
	cart.AddItem(ctx, entity.LineItem{ID: "p1", Price: 100, Quantity: 1})
	placed, err := orders.PlaceOrder(ctx, usecase.PlaceOrderInput{ShippingAddress: "addr"})
	require.NoError(t, err)

	got, err := orders.GetOrder(ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)

	_, err = orders.GetOrder(ctx, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_StatusTransitions(t *testing.T) {
	orders, cart, _ := newOrderFixture(entity.IdentityAnonymous, nil)

	ctx := context.Background()
	cart.AddItem(ctx, entity.LineItem{ID: "p1", Price: 100, Quantity: 1})
	placed, err := orders.PlaceOrder(ctx, usecase.PlaceOrderInput{ShippingAddress: "addr"})
	require.NoError(t, err)

	// pending -> confirmed -> shipped -> delivered
	updated, err := orders.UpdateStatus(ctx, placed.ID, entity.OrderStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, updated.Status)

	updated, err = orders.UpdateStatus(ctx, placed.ID, entity.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, updated.Status)

	// Shipped orders cannot be cancelled.
	_, err = orders.UpdateStatus(ctx, placed.ID, entity.OrderStatusCancelled)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatusChange)

	updated, err = orders.UpdateStatus(ctx, placed.ID, entity.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, updated.Status)
}

func TestOrderService_UpdateStatusRejectsUnknownStatus(t *testing.T) {
	orders, cart, _ := newOrderFixture(entity.IdentityAnonymous, nil)

	ctx := context.Background()
	cart.AddItem(ctx, entity.LineItem{ID: "p1", Price: 100, Quantity: 1})
	placed, err := orders.PlaceOrder(ctx, usecase.PlaceOrderInput{ShippingAddress: "addr"})
	require.NoError(t, err)

	_, err = orders.UpdateStatus(ctx, placed.ID, entity.OrderStatus("teleported"))
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestOrderService_ReceiptQR(t *testing.T) {
	orders, cart, _ := newOrderFixture(entity.IdentityAnonymous, nil)

	ctx := context.Background()
	cart.AddItem(ctx, entity.LineItem{ID: "p1", Price: 100, Quantity: 1})
	placed, err := orders.PlaceOrder(ctx, usecase.PlaceOrderInput{ShippingAddress: "addr"})
	require.NoError(t, err)

	png, err := orders.ReceiptQR(ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png:"+placed.ID), png)

	_, err = orders.ReceiptQR(ctx, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_VerifyReceipt(t *testing.T) {
	orders, cart, _ := newOrderFixture(entity.IdentityAnonymous, nil)

	ctx := context.Background()
	cart.AddItem(ctx, entity.LineItem{ID: "p1", Price: 100, Quantity: 1})
	placed, err := orders.PlaceOrder(ctx, usecase.PlaceOrderInput{ShippingAddress: "addr"})
	require.NoError(t, err)

	got, err := orders.VerifyReceipt(ctx, placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.ID, got.ID)

	_, err = orders.VerifyReceipt(ctx, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_VerifyReceiptRejectsUnreadablePayload(t *testing.T) {
	store := newFakeStore()
	identities := newIdentityStub(entity.IdentityAnonymous, nil)
	cart := NewCartService(store, identities, testLogger())
	qr := fakeQRService{parseErr: errors.New("not a receipt payload")}
	orders := NewOrderService(store, cart, identities, qr, &fakeOrderBackend{}, testLogger())

	_, err := orders.VerifyReceipt(context.Background(), "garbage")
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestOrderService_RemoteOrdersPassthrough(t *testing.T) {
	store := newFakeStore()
	identities := newIdentityStub(entity.IdentityAuthenticated, &entity.User{ID: "u-1"})
	cart := NewCartService(store, identities, testLogger())
	backend := &fakeOrderBackend{orders: []entity.Order{{ID: "remote-1"}}}
	orders := NewOrderService(store, cart, identities, fakeQRService{}, backend, testLogger())

	remote, err := orders.RemoteOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, remote, 1)
	assert.Equal(t, "remote-1", remote[0].ID)
}

func TestOrderService_RemoteOrderPassthrough(t *testing.T) {
	store := newFakeStore()
	identities := newIdentityStub(entity.IdentityAuthenticated, &entity.User{ID: "u-1"})
	cart := NewCartService(store, identities, testLogger())
	backend := &fakeOrderBackend{orders: []entity.Order{{ID: "remote-1"}, {ID: "remote-2"}}}
	orders := NewOrderService(store, cart, identities, fakeQRService{}, backend, testLogger())

	got, err := orders.RemoteOrder(context.Background(), "remote-2")
	require.NoError(t, err)
	assert.Equal(t, "remote-2", got.ID)

	_, err = orders.RemoteOrder(context.Background(), "missing")
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}
