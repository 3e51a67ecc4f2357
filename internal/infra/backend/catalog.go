package backend

import (
	"context"
	"net/http"

	"megamart/internal/domain/entity"

	"github.com/pkg/errors"
)

type productsResponse struct {
	Products []productPayload `json:"products"`
}

// AllProducts fetches the full catalog in one call. Listing filters, sort
// and pagination are applied client-side over this result.
func (c *Client) AllProducts(ctx context.Context) ([]entity.Product, error) {
	var resp productsResponse
	if err := c.do(ctx, http.MethodGet, "/products/all", nil, nil, &resp, requestOpts{}); err != nil {
		return nil, errors.Wrap(err, "failed to fetch products")
	}

	products := make([]entity.Product, 0, len(resp.Products))
	for _, p := range resp.Products {
		products = append(products, p.toEntity())
	}

	return products, nil
}

type categoriesResponse struct {
	Categories []entity.Category `json:"categories"`
}

// Categories lists the top-level catalog groupings.
func (c *Client) Categories(ctx context.Context) ([]entity.Category, error) {
	var resp categoriesResponse
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &resp, requestOpts{}); err != nil {
		return nil, errors.Wrap(err, "failed to fetch categories")
	}

	return resp.Categories, nil
}

type subcategoriesResponse struct {
	Subcategories []entity.Subcategory `json:"subcategories"`
}

// Subcategories lists the second-level groupings under a category.
func (c *Client) Subcategories(ctx context.Context, categoryID string) ([]entity.Subcategory, error) {
	var resp subcategoriesResponse
	path := "/categories/" + categoryID + "/subcategories"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp, requestOpts{}); err != nil {
		return nil, errors.Wrap(err, "failed to fetch subcategories")
	}

	return resp.Subcategories, nil
}
