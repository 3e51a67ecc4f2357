package usecase

import (
	"context"

	"megamart/internal/domain/entity"
)

// ProductQuery defines the listing filters applied over the catalog.
// Zero values mean "no constraint".
type ProductQuery struct {
	Category    string
	Subcategory string
	Search      string
	MinPrice    int64
	MaxPrice    int64
	Sort        string
	Page        int
	PerPage     int
}

// ProductPage is one page of a filtered listing.
type ProductPage struct {
	Products   []entity.Product
	Page       int
	PerPage    int
	TotalItems int
	TotalPages int
}

// CatalogUsecase serves product listings. The backend returns the full
// catalog in one call; filtering, sorting and pagination happen here.
type CatalogUsecase interface {
	ListProducts(ctx context.Context, query ProductQuery) (*ProductPage, error)
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	ListCategories(ctx context.Context) ([]entity.Category, error)
	ListSubcategories(ctx context.Context, categoryID string) ([]entity.Subcategory, error)
}
