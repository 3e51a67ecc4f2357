package handler

import (
	"log/slog"
	"net/http"

	"megamart/internal/delivery/http/response"
	"megamart/internal/domain/entity"
	"megamart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for checkout and order handlers.
type OrderHandler struct {
	orders usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(orders usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger,
	}
}

// Checkout turns the current cart into a pending order.
func (h *OrderHandler) Checkout(c echo.Context) error {
	var input usecase.PlaceOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid checkout input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.orders.PlaceOrder(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order placed successfully")
}

// ListOrders returns locally placed orders, newest first.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	orders, err := h.orders.ListOrders(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved successfully")
}

// GetOrder returns one order by id.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	order, err := h.orders.GetOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order retrieved successfully")
}

type updateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

// UpdateStatus advances an order along the fulfillment stages.
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var input updateStatusInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.orders.UpdateStatus(c.Request().Context(), c.Param("id"), entity.OrderStatus(input.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order status updated")
}

// ReceiptQR streams the order receipt QR code as a PNG image.
func (h *OrderHandler) ReceiptQR(c echo.Context) error {
	png, err := h.orders.ReceiptQR(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

type verifyReceiptInput struct {
	Data string `json:"data" validate:"required"`
}

// VerifyReceipt resolves scanned receipt QR payload data to its order.
func (h *OrderHandler) VerifyReceipt(c echo.Context) error {
	var input verifyReceiptInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid receipt payload")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.orders.VerifyReceipt(c.Request().Context(), input.Data)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Receipt verified")
}

// ListRemoteOrders returns the order history held by the backend.
func (h *OrderHandler) ListRemoteOrders(c echo.Context) error {
	orders, err := h.orders.RemoteOrders(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "Remote orders retrieved successfully")
}

// GetRemoteOrder returns one backend-held order by id.
func (h *OrderHandler) GetRemoteOrder(c echo.Context) error {
	order, err := h.orders.RemoteOrder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Remote order retrieved successfully")
}
