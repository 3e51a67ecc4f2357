package backend

import (
	"context"
	"net/http"

	"megamart/internal/domain/entity"

	"github.com/pkg/errors"
)

type wishlistResponse struct {
	Items []wishlistPayload `json:"items"`
}

// Wishlist lists the signed-in user's saved products.
func (c *Client) Wishlist(ctx context.Context) ([]entity.WishlistItem, error) {
	var resp wishlistResponse
	if err := c.do(ctx, http.MethodGet, "/wishlist", nil, nil, &resp, requestOpts{}); err != nil {
		return nil, errors.Wrap(err, "failed to fetch wishlist")
	}

	items := make([]entity.WishlistItem, 0, len(resp.Items))
	for _, item := range resp.Items {
		items = append(items, item.toEntity())
	}

	return items, nil
}

type addWishlistRequest struct {
	ProductID string `json:"productId"`
}

// AddWishlistItem saves a product to the wishlist.
func (c *Client) AddWishlistItem(ctx context.Context, productID string) (*entity.WishlistItem, error) {
	var resp wishlistPayload
	err := c.do(ctx, http.MethodPost, "/wishlist", nil, addWishlistRequest{ProductID: productID}, &resp, requestOpts{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to add wishlist item")
	}

	item := resp.toEntity()

	return &item, nil
}

// RemoveWishlistItem deletes a saved product.
func (c *Client) RemoveWishlistItem(ctx context.Context, id string) error {
	err := c.do(ctx, http.MethodDelete, "/wishlist/"+id, nil, nil, nil, requestOpts{})

	return errors.Wrap(err, "failed to remove wishlist item")
}
