package impl

import (
	"context"
	"log/slog"

	"megamart/internal/domain/entity"
	domainerrors "megamart/internal/domain/errors"
	"megamart/internal/domain/service"
	"megamart/internal/usecase"

	"github.com/pkg/errors"
)

// wishlistService implements the WishlistUsecase interface. The wishlist is
// backend-owned state, so every operation requires a signed-in user.
type wishlistService struct {
	backend    service.WishlistBackend
	identities usecase.IdentitySource
	logger     *slog.Logger
}

// NewWishlistService is the constructor for wishlistService.
func NewWishlistService(
	backend service.WishlistBackend,
	identities usecase.IdentitySource,
	logger *slog.Logger,
) usecase.WishlistUsecase {
	return &wishlistService{
		backend:    backend,
		identities: identities,
		logger:     logger,
	}
}

// List returns the signed-in user's saved products.
func (srv *wishlistService) List(ctx context.Context) ([]entity.WishlistItem, error) {
	if err := srv.requireUser(); err != nil {
		return nil, err
	}

	items, err := srv.backend.Wishlist(ctx)

	return items, errors.Wrap(err, "failed to list wishlist")
}

// Add saves a product to the wishlist.
func (srv *wishlistService) Add(ctx context.Context, productID string) (*entity.WishlistItem, error) {
	if err := srv.requireUser(); err != nil {
		return nil, err
	}

	item, err := srv.backend.AddWishlistItem(ctx, productID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to add wishlist item")
	}

	return item, nil
}

// Remove deletes a saved product.
func (srv *wishlistService) Remove(ctx context.Context, id string) error {
	if err := srv.requireUser(); err != nil {
		return err
	}

	return errors.Wrap(srv.backend.RemoveWishlistItem(ctx, id), "failed to remove wishlist item")
}

func (srv *wishlistService) requireUser() error {
	if srv.identities.Identity().State != entity.IdentityAuthenticated {
		return errors.WithStack(domainerrors.ErrAuthRequired)
	}

	return nil
}
