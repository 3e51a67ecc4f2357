package backend

import (
	"context"
	"net/http"
	"net/url"

	"megamart/internal/domain/service"

	"github.com/pkg/errors"
)

type signupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Signup registers a new account. It never touches session state; the
// confirmation is handed back to the caller to interpret.
func (c *Client) Signup(ctx context.Context, input service.SignupInput) (*service.SignupResult, error) {
	var resp signupResponse
	err := c.do(ctx, http.MethodPost, "/auth/signup", nil, signupRequest{
		FullName: input.FullName,
		Email:    input.Email,
		Password: input.Password,
	}, &resp, requestOpts{skipAuth: true})
	if err != nil {
		return nil, errors.Wrap(err, "signup failed")
	}

	return &service.SignupResult{UserID: resp.ID, Message: resp.Message}, nil
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinResponse struct {
	User         *userPayload `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// Signin exchanges credentials for a user record and a token pair.
func (c *Client) Signin(ctx context.Context, email, password string) (*service.Credentials, error) {
	var resp signinResponse
	err := c.do(ctx, http.MethodPost, "/auth/signin", nil, signinRequest{
		Email:    email,
		Password: password,
	}, &resp, requestOpts{skipAuth: true})
	if err != nil {
		return nil, errors.Wrap(err, "signin failed")
	}

	return &service.Credentials{
		User:         resp.User.toEntity(),
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// RefreshAccessToken mints a new access token. The refresh token itself is
// never rotated by this call.
func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	var resp refreshResponse
	err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, refreshRequest{
		RefreshToken: refreshToken,
	}, &resp, requestOpts{skipAuth: true})
	if err != nil {
		return "", errors.Wrap(err, "token refresh failed")
	}

	return resp.AccessToken, nil
}

type changePasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// ChangePassword replaces the signed-in user's password. This endpoint is
// bearer-authorized, so it goes through the 401-refresh interceptor.
func (c *Client) ChangePassword(ctx context.Context, newPassword string) error {
	err := c.do(ctx, http.MethodPatch, "/auth/forgot-password", nil, changePasswordRequest{
		NewPassword: newPassword,
	}, nil, requestOpts{})

	return errors.Wrap(err, "password change failed")
}

type resetLinkRequest struct {
	Email string `json:"email"`
}

// RequestResetLink asks the backend to mail a password reset link.
func (c *Client) RequestResetLink(ctx context.Context, email string) error {
	err := c.do(ctx, http.MethodPost, "/auth/request/reset-link", nil, resetLinkRequest{
		Email: email,
	}, nil, requestOpts{skipAuth: true})

	return errors.Wrap(err, "reset link request failed")
}

// VerifyEmail confirms an address with the mailed verification token.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	query := url.Values{"token": []string{token}}
	err := c.do(ctx, http.MethodGet, "/auth/verify-email", query, nil, nil, requestOpts{skipAuth: true})

	return errors.Wrap(err, "email verification failed")
}

type resendVerificationRequest struct {
	Email string `json:"email"`
}

// ResendVerification re-sends the verification mail.
func (c *Client) ResendVerification(ctx context.Context, email string) error {
	err := c.do(ctx, http.MethodPost, "/auth/resend-verification", nil, resendVerificationRequest{
		Email: email,
	}, nil, requestOpts{skipAuth: true})

	return errors.Wrap(err, "resend verification failed")
}
