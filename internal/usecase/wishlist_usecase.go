package usecase

import (
	"context"

	"megamart/internal/domain/entity"
)

// WishlistUsecase manages the signed-in user's saved products. The wishlist
// lives on the backend, unlike the cart.
type WishlistUsecase interface {
	List(ctx context.Context) ([]entity.WishlistItem, error)
	Add(ctx context.Context, productID string) (*entity.WishlistItem, error)
	Remove(ctx context.Context, id string) error
}
