// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"megamart/internal/delivery/http/middleware"
	"megamart/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	CartHandler     *handler.CartHandler
	CatalogHandler  *handler.CatalogHandler
	ProfileHandler  *handler.ProfileHandler
	WishlistHandler *handler.WishlistHandler
	OrderHandler    *handler.OrderHandler
	Session         *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	cartHandler     *handler.CartHandler
	catalogHandler  *handler.CatalogHandler
	profileHandler  *handler.ProfileHandler
	wishlistHandler *handler.WishlistHandler
	orderHandler    *handler.OrderHandler
	session         *middleware.SessionMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		cartHandler:     params.CartHandler,
		catalogHandler:  params.CatalogHandler,
		profileHandler:  params.ProfileHandler,
		wishlistHandler: params.WishlistHandler,
		orderHandler:    params.OrderHandler,
		session:         params.Session,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.Signup)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/session", r.authHandler.GetSession)
		authGroup.POST("/request/reset-link", r.authHandler.RequestResetLink)
		authGroup.GET("/verify-email", r.authHandler.VerifyEmail)
		authGroup.POST("/resend-verification", r.authHandler.ResendVerification)
		authGroup.PATCH("/password", r.authHandler.ChangePassword, r.session.RequireAuthenticated)
	}

	// Catalog routes, open to guests
	e.GET("/products", r.catalogHandler.ListProducts)
	e.GET("/products/:id", r.catalogHandler.GetProduct)
	e.GET("/categories", r.catalogHandler.ListCategories)
	e.GET("/categories/:id/subcategories", r.catalogHandler.ListSubcategories)

	// Cart routes, open to guests; the cart follows the session identity
	cartGroup := e.Group("/cart")
	{
		cartGroup.GET("", r.cartHandler.GetCart)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.DELETE("/items/:id", r.cartHandler.RemoveItem)
		cartGroup.PATCH("/items/:id/quantity", r.cartHandler.ChangeQuantity)
		cartGroup.DELETE("", r.cartHandler.ClearCart)
	}

	// Checkout and orders, open to guests (orders are local state)
	e.POST("/checkout", r.orderHandler.Checkout)
	orderGroup := e.Group("/orders")
	{
		orderGroup.GET("", r.orderHandler.ListOrders)
		orderGroup.GET("/remote", r.orderHandler.ListRemoteOrders, r.session.RequireAuthenticated)
		orderGroup.GET("/remote/:id", r.orderHandler.GetRemoteOrder, r.session.RequireAuthenticated)
		orderGroup.POST("/qrcode/verify", r.orderHandler.VerifyReceipt)
		orderGroup.GET("/:id", r.orderHandler.GetOrder)
		orderGroup.PATCH("/:id/status", r.orderHandler.UpdateStatus)
		orderGroup.GET("/:id/qrcode", r.orderHandler.ReceiptQR)
	}

	// Profile routes require a signed-in user
	profileGroup := e.Group("/profile")
	profileGroup.Use(r.session.RequireAuthenticated)
	{
		profileGroup.GET("", r.profileHandler.GetProfile)
		profileGroup.PATCH("", r.profileHandler.UpdateProfile)
	}

	// Wishlist routes require a signed-in user
	wishlistGroup := e.Group("/wishlist")
	wishlistGroup.Use(r.session.RequireAuthenticated)
	{
		wishlistGroup.GET("", r.wishlistHandler.ListWishlist)
		wishlistGroup.POST("", r.wishlistHandler.AddToWishlist)
		wishlistGroup.DELETE("/:id", r.wishlistHandler.RemoveFromWishlist)
	}
}
