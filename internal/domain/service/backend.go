// Package service defines the domain service ports consumed by use cases.
package service

import (
	"context"

	"megamart/internal/domain/entity"
)

// Credentials is the result of a successful sign-in.
type Credentials struct {
	User         *entity.User
	AccessToken  string
	RefreshToken string
}

// SignupInput is the registration payload forwarded to the backend.
type SignupInput struct {
	FullName string
	Email    string
	Password string
}

// SignupResult is the backend's registration confirmation, surfaced to the
// caller unchanged (signing up does not create a session).
type SignupResult struct {
	UserID  string
	Message string
}

// ProfileUpdate carries the mutable profile fields; nil means unchanged.
type ProfileUpdate struct {
	FullName  *string
	Phone     *string
	Address   *string
	AvatarURL *string
}

// AuthBackend is the credential lifecycle of the remote REST API.
type AuthBackend interface {
	Signup(ctx context.Context, input SignupInput) (*SignupResult, error)
	Signin(ctx context.Context, email, password string) (*Credentials, error)

	// RefreshAccessToken exchanges a refresh token for a new access token.
	RefreshAccessToken(ctx context.Context, refreshToken string) (string, error)

	// ChangePassword replaces the signed-in user's password (bearer-authorized).
	ChangePassword(ctx context.Context, newPassword string) error

	// RequestResetLink asks the backend to mail a password reset link.
	RequestResetLink(ctx context.Context, email string) error

	// VerifyEmail confirms an address with the mailed verification token.
	VerifyEmail(ctx context.Context, token string) error

	// ResendVerification re-sends the verification mail.
	ResendVerification(ctx context.Context, email string) error
}

// CatalogBackend serves product browsing data.
type CatalogBackend interface {
	// AllProducts fetches the full catalog; filtering, sorting and
	// pagination happen client-side over this result.
	AllProducts(ctx context.Context) ([]entity.Product, error)

	Categories(ctx context.Context) ([]entity.Category, error)
	Subcategories(ctx context.Context, categoryID string) ([]entity.Subcategory, error)
}

// UserBackend serves profile reads and writes.
type UserBackend interface {
	GetUser(ctx context.Context, id string) (*entity.User, error)
	UpdateUser(ctx context.Context, id string, update ProfileUpdate) (*entity.User, error)
}

// WishlistBackend is a thin passthrough to the backend wishlist.
type WishlistBackend interface {
	Wishlist(ctx context.Context) ([]entity.WishlistItem, error)
	AddWishlistItem(ctx context.Context, productID string) (*entity.WishlistItem, error)
	RemoveWishlistItem(ctx context.Context, id string) error
}

// OrderBackend exposes the backend's read-only order history.
type OrderBackend interface {
	RemoteOrders(ctx context.Context) ([]entity.Order, error)
	RemoteOrder(ctx context.Context, id string) (*entity.Order, error)
}
