package handler

import (
	"log/slog"
	"net/http"

	"megamart/internal/delivery/http/response"
	"megamart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileHandler holds dependencies for profile handlers.
type ProfileHandler struct {
	profile usecase.ProfileUsecase
	logger  *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(profile usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profile: profile,
		logger:  logger,
	}
}

// GetProfile returns the signed-in user's profile.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	user, err := h.profile.GetProfile(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Profile retrieved successfully")
}

type updateProfileInput struct {
	FullName  *string `json:"fullName"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	AvatarURL *string `json:"avatarUrl"`
}

// UpdateProfile patches the signed-in user's profile.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	var input updateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	user, err := h.profile.UpdateProfile(c.Request().Context(), usecase.UpdateProfileInput{
		FullName:  input.FullName,
		Phone:     input.Phone,
		Address:   input.Address,
		AvatarURL: input.AvatarURL,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Profile updated successfully")
}
