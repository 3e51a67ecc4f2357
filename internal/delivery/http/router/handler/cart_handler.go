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

// CartHandler holds dependencies for cart handlers.
type CartHandler struct {
	cart   usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(cart usecase.CartUsecase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		cart:   cart,
		logger: logger,
	}
}

// GetCart returns the current cart with its derived count and total.
func (h *CartHandler) GetCart(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.cart.View(), "Cart retrieved successfully")
}

type addItemInput struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Price    int64  `json:"price" validate:"gte=0"`
	Image    string `json:"image"`
	Quantity int    `json:"quantity"`
	Size     string `json:"size"`
}

// AddItem merges a product line into the cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	var input addItemInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	h.cart.AddItem(c.Request().Context(), entity.LineItem{
		ID:       input.ID,
		Name:     input.Name,
		Price:    input.Price,
		Image:    input.Image,
		Quantity: input.Quantity,
		Size:     input.Size,
	})

	return response.Success(c, http.StatusOK, h.cart.View(), "Item added to cart")
}

// RemoveItem drops a product line from the cart.
func (h *CartHandler) RemoveItem(c echo.Context) error {
	h.cart.RemoveItem(c.Request().Context(), c.Param("id"))

	return response.Success(c, http.StatusOK, h.cart.View(), "Item removed from cart")
}

type changeQuantityInput struct {
	Change string `json:"change" validate:"required,oneof=increase decrease"`
}

// ChangeQuantity steps a line's quantity up or down.
func (h *CartHandler) ChangeQuantity(c echo.Context) error {
	var input changeQuantityInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quantity change input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	h.cart.ChangeQuantity(c.Request().Context(), c.Param("id"), entity.QuantityChange(input.Change))

	return response.Success(c, http.StatusOK, h.cart.View(), "Quantity updated")
}

// ClearCart empties the cart.
func (h *CartHandler) ClearCart(c echo.Context) error {
	h.cart.Clear(c.Request().Context())

	return response.Success(c, http.StatusOK, h.cart.View(), "Cart cleared")
}
