// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"megamart/internal/domain/entity"
)

// --- Input DTOs ---

// SignupInput defines the data required to register a new account.
type SignupInput struct {
	FullName string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
}

// LoginInput defines the data required to sign in.
type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// --- Output DTOs ---

// SignupOutput returns the backend's registration confirmation.
type SignupOutput struct {
	UserID  string
	Message string
}

// SessionView is a read-only snapshot of the current session for display.
type SessionView struct {
	State                entity.IdentityState
	User                 *entity.User
	AccessTokenExpiresAt time.Time
}

// IdentityObserver is notified whenever the session's identity changes:
// restore, login, logout, and forced logout all fire it. Observers run on
// the calling goroutine and must not block.
type IdentityObserver func(ctx context.Context, identity entity.Identity)

// IdentitySource lets other containers follow identity changes without
// depending on the full session surface.
type IdentitySource interface {
	// Identity returns the current identity snapshot.
	Identity() entity.Identity

	// Subscribe registers an observer. It fires immediately with the
	// current identity, then again on every change.
	Subscribe(ctx context.Context, observer IdentityObserver)
}

// SessionUsecase is the session and auth state container. It owns the
// identity lifecycle and the persisted credential mirror.
type SessionUsecase interface {
	IdentitySource

	// Restore rehydrates the session from persistent storage at startup.
	// Missing or partial stored state resolves to the anonymous identity.
	Restore(ctx context.Context) error

	// Signup registers a new account. It does not sign the user in.
	Signup(ctx context.Context, input SignupInput) (*SignupOutput, error)

	// Login exchanges credentials for an authenticated session and
	// persists the user record and both tokens.
	Login(ctx context.Context, input LoginInput) error

	// Logout discards the session and returns to the anonymous identity.
	Logout(ctx context.Context) error

	// View returns a display snapshot of the session.
	View() SessionView

	// ReplaceUser swaps the in-memory and persisted user record after a
	// profile update, without touching tokens.
	ReplaceUser(ctx context.Context, user *entity.User)

	// ChangePassword replaces the signed-in user's password.
	ChangePassword(ctx context.Context, newPassword string) error

	// RequestResetLink asks the backend to mail a password reset link.
	RequestResetLink(ctx context.Context, email string) error

	// VerifyEmail confirms an address with a mailed token.
	VerifyEmail(ctx context.Context, token string) error

	// ResendVerification re-sends the verification mail.
	ResendVerification(ctx context.Context, email string) error
}
