// Package handler contains the HTTP handlers for the storefront.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"megamart/internal/delivery/http/response"
	"megamart/internal/domain/entity"
	"megamart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for session and credential handlers.
type AuthHandler struct {
	session usecase.SessionUsecase
	logger  *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(session usecase.SessionUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		session: session,
		logger:  logger,
	}
}

// sessionPayload is the wire shape of the session snapshot.
type sessionPayload struct {
	State                string       `json:"state"`
	User                 *entity.User `json:"user,omitempty"`
	AccessTokenExpiresAt *time.Time   `json:"accessTokenExpiresAt,omitempty"`
}

func toSessionPayload(view usecase.SessionView) sessionPayload {
	payload := sessionPayload{
		State: view.State.String(),
		User:  view.User,
	}
	if !view.AccessTokenExpiresAt.IsZero() {
		payload.AccessTokenExpiresAt = &view.AccessTokenExpiresAt
	}

	return payload
}

// Signup handles the account registration request.
func (h *AuthHandler) Signup(c echo.Context) error {
	var input usecase.SignupInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.session.Signup(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Account created successfully")
}

// Login handles the sign-in request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.session.Login(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toSessionPayload(h.session.View()), "Login successful")
}

// Logout handles the sign-out request.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.session.Logout(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toSessionPayload(h.session.View()), "Logout successful")
}

// GetSession returns the current session snapshot.
func (h *AuthHandler) GetSession(c echo.Context) error {
	return response.Success(c, http.StatusOK, toSessionPayload(h.session.View()), "Session retrieved successfully")
}

type changePasswordInput struct {
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// ChangePassword handles the password change request.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var input changePasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.session.ChangePassword(c.Request().Context(), input.NewPassword); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

type emailInput struct {
	Email string `json:"email" validate:"required,email"`
}

// RequestResetLink handles the password reset link request.
func (h *AuthHandler) RequestResetLink(c echo.Context) error {
	var input emailInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid email input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.session.RequestResetLink(c.Request().Context(), input.Email); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Reset link sent")
}

// VerifyEmail confirms an address with the mailed verification token.
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Verification token is required")
	}

	if err := h.session.VerifyEmail(c.Request().Context(), token); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Email verified successfully")
}

// ResendVerification re-sends the verification mail.
func (h *AuthHandler) ResendVerification(c echo.Context) error {
	var input emailInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid email input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.session.ResendVerification(c.Request().Context(), input.Email); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Verification mail sent")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
