package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"megamart/internal/delivery/http/response"
	"megamart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CatalogHandler holds dependencies for product listing handlers.
type CatalogHandler struct {
	catalog usecase.CatalogUsecase
	logger  *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(catalog usecase.CatalogUsecase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ListProducts returns one page of the filtered catalog.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	query := usecase.ProductQuery{
		Category:    c.QueryParam("category"),
		Subcategory: c.QueryParam("subcategory"),
		Search:      c.QueryParam("search"),
		Sort:        c.QueryParam("sort"),
		MinPrice:    queryInt64(c, "minPrice"),
		MaxPrice:    queryInt64(c, "maxPrice"),
		Page:        queryInt(c, "page"),
		PerPage:     queryInt(c, "perPage"),
	}

	page, err := h.catalog.ListProducts(c.Request().Context(), query)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "Products retrieved successfully")
}

// GetProduct returns one product by id.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	product, err := h.catalog.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved successfully")
}

// ListCategories returns the top-level catalog groupings.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	categories, err := h.catalog.ListCategories(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, categories, "Categories retrieved successfully")
}

// ListSubcategories returns the groupings under one category.
func (h *CatalogHandler) ListSubcategories(c echo.Context) error {
	subcategories, err := h.catalog.ListSubcategories(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, subcategories, "Subcategories retrieved successfully")
}

func queryInt(c echo.Context, name string) int {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}

	return value
}

func queryInt64(c echo.Context, name string) int64 {
	value, err := strconv.ParseInt(c.QueryParam(name), 10, 64)
	if err != nil {
		return 0
	}

	return value
}
