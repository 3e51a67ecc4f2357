package usecase

import (
	"context"

	"megamart/internal/domain/entity"
)

// UpdateProfileInput carries the mutable profile fields. Nil pointers mean
// the field is left untouched.
type UpdateProfileInput struct {
	FullName  *string
	Phone     *string
	Address   *string
	AvatarURL *string
}

// ProfileUsecase manages the signed-in user's profile.
type ProfileUsecase interface {
	// GetProfile fetches the current user's profile from the backend.
	GetProfile(ctx context.Context) (*entity.User, error)

	// UpdateProfile patches the profile and refreshes the session's
	// cached user record with the result.
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*entity.User, error)
}
