package handler

import (
	"log/slog"
	"net/http"

	"megamart/internal/delivery/http/response"
	"megamart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// WishlistHandler holds dependencies for wishlist handlers.
type WishlistHandler struct {
	wishlist usecase.WishlistUsecase
	logger   *slog.Logger
}

// NewWishlistHandler is the constructor for WishlistHandler, injected by Fx.
func NewWishlistHandler(wishlist usecase.WishlistUsecase, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlist: wishlist,
		logger:   logger,
	}
}

// ListWishlist returns the saved products.
func (h *WishlistHandler) ListWishlist(c echo.Context) error {
	items, err := h.wishlist.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, items, "Wishlist retrieved successfully")
}

type addWishlistInput struct {
	ProductID string `json:"productId" validate:"required"`
}

// AddToWishlist saves a product.
func (h *WishlistHandler) AddToWishlist(c echo.Context) error {
	var input addWishlistInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid wishlist input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	item, err := h.wishlist.Add(c.Request().Context(), input.ProductID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, item, "Item added to wishlist")
}

// RemoveFromWishlist deletes a saved product.
func (h *WishlistHandler) RemoveFromWishlist(c echo.Context) error {
	if err := h.wishlist.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Item removed from wishlist")
}
