package impl

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"megamart/config"
	"megamart/internal/domain/entity"
	domainerrors "megamart/internal/domain/errors"
	"megamart/internal/domain/service"
	"megamart/internal/usecase"

	"github.com/pkg/errors"
)

// catalogService implements the CatalogUsecase interface. The backend hands
// over the full catalog; filtering, sorting and pagination are local.
type catalogService struct {
	backend  service.CatalogBackend
	logger   *slog.Logger
	pageSize int
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(
	cfg *config.Config,
	backend service.CatalogBackend,
	logger *slog.Logger,
) usecase.CatalogUsecase {
	return &catalogService{
		backend:  backend,
		logger:   logger,
		pageSize: cfg.Catalog.PageSize,
	}
}

// ListProducts returns one page of the filtered, sorted catalog.
func (srv *catalogService) ListProducts(ctx context.Context, query usecase.ProductQuery) (*usecase.ProductPage, error) {
	products, err := srv.backend.AllProducts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	filtered := filterProducts(products, query)
	sortProducts(filtered, query.Sort)

	perPage := query.PerPage
	if perPage < 1 {
		perPage = srv.pageSize
	}
	totalItems := len(filtered)
	totalPages := (totalItems + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > totalItems {
		start = totalItems
	}
	if end > totalItems {
		end = totalItems
	}

	return &usecase.ProductPage{
		Products:   filtered[start:end],
		Page:       page,
		PerPage:    perPage,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}

// GetProduct returns one product by id.
func (srv *catalogService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	products, err := srv.backend.AllProducts(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get product")
	}

	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}

	return nil, errors.Wrapf(domainerrors.ErrProductNotFound, "product %s", id)
}

// ListCategories returns the top-level catalog groupings.
func (srv *catalogService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	categories, err := srv.backend.Categories(ctx)

	return categories, errors.Wrap(err, "failed to list categories")
}

// ListSubcategories returns the groupings under one category.
func (srv *catalogService) ListSubcategories(ctx context.Context, categoryID string) ([]entity.Subcategory, error) {
	subcategories, err := srv.backend.Subcategories(ctx, categoryID)

	return subcategories, errors.Wrap(err, "failed to list subcategories")
}

func filterProducts(products []entity.Product, query usecase.ProductQuery) []entity.Product {
	search := strings.ToLower(strings.TrimSpace(query.Search))

	filtered := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if query.Category != "" && !strings.EqualFold(p.Category, query.Category) {
			continue
		}
		if query.Subcategory != "" && !strings.EqualFold(p.Subcategory, query.Subcategory) {
			continue
		}
		if query.MinPrice > 0 && p.Price < query.MinPrice {
			continue
		}
		if query.MaxPrice > 0 && p.Price > query.MaxPrice {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		filtered = append(filtered, p)
	}

	return filtered
}

// sortProducts orders the listing in place. Unknown sort keys keep the
// backend's ordering.
func sortProducts(products []entity.Product, key string) {
	switch key {
	case "price_asc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case "price_desc":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case "name":
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Name) < strings.ToLower(products[j].Name)
		})
	case "newest":
		sort.SliceStable(products, func(i, j int) bool { return products[i].CreatedAt.After(products[j].CreatedAt) })
	}
}
