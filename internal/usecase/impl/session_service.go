// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"megamart/internal/domain/entity"
	domainerrors "megamart/internal/domain/errors"
	"megamart/internal/domain/repository"
	"megamart/internal/domain/service"
	"megamart/internal/usecase"

	"github.com/pkg/errors"
)

// Storage keys mirroring the browser-local session of the original
// storefront. They hold the persisted credential set as three entries.
const (
	userKey         = "user"
	accessTokenKey  = "accessToken"
	refreshTokenKey = "refreshToken"
)

// sessionService implements SessionUsecase and doubles as the backend
// client's CredentialSource.
type sessionService struct {
	store     repository.KVStore
	auth      service.AuthBackend
	inspector service.TokenInspector
	logger    *slog.Logger

	mu           sync.Mutex
	identity     entity.Identity
	accessToken  string
	refreshToken string
	observers    []usecase.IdentityObserver
}

// NewSessionService is the constructor for sessionService. It returns the
// same instance under both of its roles so the DI container can hand the
// credential side to the backend client.
func NewSessionService(
	store repository.KVStore,
	auth service.AuthBackend,
	inspector service.TokenInspector,
	logger *slog.Logger,
) (usecase.SessionUsecase, service.CredentialSource) {
	srv := &sessionService{
		store:     store,
		auth:      auth,
		inspector: inspector,
		logger:    logger,
		identity:  entity.Identity{State: entity.IdentityUnknown},
	}

	return srv, srv
}

// Restore rehydrates the session from persistent storage. Any missing or
// unreadable piece resolves the whole session to anonymous; a partial
// credential set is never kept.
func (srv *sessionService) Restore(ctx context.Context) error {
	accessToken, errAccess := srv.store.Get(ctx, accessTokenKey)
	refreshToken, errRefresh := srv.store.Get(ctx, refreshTokenKey)
	rawUser, errUser := srv.store.Get(ctx, userKey)

	var user entity.User
	complete := errAccess == nil && errRefresh == nil && errUser == nil
	if complete {
		if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
			srv.logger.Warn("Stored user record is unreadable, discarding session", slog.Any("error", err))
			complete = false
		}
	}

	if !complete {
		srv.discardStoredSession(ctx)
		srv.setSession(ctx, entity.Identity{State: entity.IdentityAnonymous}, "", "")

		return nil
	}

	srv.logger.Info("Session restored", slog.String("userID", user.ID))
	srv.setSession(ctx, entity.Identity{
		State: entity.IdentityAuthenticated,
		User:  &user,
	}, accessToken, refreshToken)

	return nil
}

// Signup registers a new account without signing the user in.
func (srv *sessionService) Signup(ctx context.Context, input usecase.SignupInput) (*usecase.SignupOutput, error) {
	result, err := srv.auth.Signup(ctx, service.SignupInput{
		FullName: input.FullName,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return nil, errors.Wrap(err, "signup failed")
	}

	return &usecase.SignupOutput{UserID: result.UserID, Message: result.Message}, nil
}

// Login exchanges credentials for an authenticated session.
func (srv *sessionService) Login(ctx context.Context, input usecase.LoginInput) error {
	credentials, err := srv.auth.Signin(ctx, input.Email, input.Password)
	if err != nil {
		var remoteErr *domainerrors.RemoteCallError
		if errors.As(err, &remoteErr) && remoteErr.HTTPCode() == http.StatusUnauthorized {
			return errors.Wrap(domainerrors.ErrInvalidCredentials, "signin rejected")
		}

		return errors.Wrap(err, "login failed")
	}

	srv.persist(ctx, accessTokenKey, credentials.AccessToken)
	srv.persist(ctx, refreshTokenKey, credentials.RefreshToken)
	srv.persistUser(ctx, credentials.User)

	srv.logger.Info("User signed in", slog.String("userID", credentials.User.ID))
	srv.setSession(ctx, entity.Identity{
		State: entity.IdentityAuthenticated,
		User:  credentials.User,
	}, credentials.AccessToken, credentials.RefreshToken)

	return nil
}

// Logout discards the session. Persisted carts stay untouched so a later
// sign-in by the same user finds their items again.
func (srv *sessionService) Logout(ctx context.Context) error {
	srv.logger.Info("User signed out")
	srv.ForceLogout(ctx)

	return nil
}

// View returns a display snapshot of the session.
func (srv *sessionService) View() usecase.SessionView {
	srv.mu.Lock()
	identity := srv.identity
	accessToken := srv.accessToken
	srv.mu.Unlock()

	view := usecase.SessionView{State: identity.State, User: identity.User}
	if accessToken != "" {
		if info, err := srv.inspector.Inspect(accessToken); err == nil {
			view.AccessTokenExpiresAt = info.ExpiresAt
		}
	}

	return view
}

// Identity returns the current identity snapshot.
func (srv *sessionService) Identity() entity.Identity {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.identity
}

// Subscribe registers an identity observer and fires it immediately.
func (srv *sessionService) Subscribe(ctx context.Context, observer usecase.IdentityObserver) {
	srv.mu.Lock()
	srv.observers = append(srv.observers, observer)
	identity := srv.identity
	srv.mu.Unlock()

	observer(ctx, identity)
}

// ReplaceUser swaps the cached user record after a profile update.
func (srv *sessionService) ReplaceUser(ctx context.Context, user *entity.User) {
	srv.mu.Lock()
	if srv.identity.State != entity.IdentityAuthenticated {
		srv.mu.Unlock()

		return
	}
	srv.identity.User = user
	identity := srv.identity
	observers := append([]usecase.IdentityObserver(nil), srv.observers...)
	srv.mu.Unlock()

	srv.persistUser(ctx, user)
	for _, observer := range observers {
		observer(ctx, identity)
	}
}

// ChangePassword replaces the signed-in user's password.
func (srv *sessionService) ChangePassword(ctx context.Context, newPassword string) error {
	return errors.WithStack(srv.auth.ChangePassword(ctx, newPassword))
}

// RequestResetLink asks the backend to mail a password reset link.
func (srv *sessionService) RequestResetLink(ctx context.Context, email string) error {
	return errors.WithStack(srv.auth.RequestResetLink(ctx, email))
}

// VerifyEmail confirms an address with a mailed token.
func (srv *sessionService) VerifyEmail(ctx context.Context, token string) error {
	return errors.WithStack(srv.auth.VerifyEmail(ctx, token))
}

// ResendVerification re-sends the verification mail.
func (srv *sessionService) ResendVerification(ctx context.Context, email string) error {
	return errors.WithStack(srv.auth.ResendVerification(ctx, email))
}

// --- CredentialSource ---

// AccessToken returns the current access token, or "" when anonymous.
func (srv *sessionService) AccessToken() string {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.accessToken
}

// RefreshToken returns the current refresh token, or "".
func (srv *sessionService) RefreshToken() string {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	return srv.refreshToken
}

// ReplaceAccessToken stores a freshly minted access token in memory and in
// the persistent mirror.
func (srv *sessionService) ReplaceAccessToken(ctx context.Context, token string) {
	srv.mu.Lock()
	srv.accessToken = token
	srv.mu.Unlock()

	srv.persist(ctx, accessTokenKey, token)
}

// ForceLogout clears all session state, memory and storage both. Nothing
// partial survives.
func (srv *sessionService) ForceLogout(ctx context.Context) {
	srv.discardStoredSession(ctx)
	srv.setSession(ctx, entity.Identity{State: entity.IdentityAnonymous}, "", "")
}

// --- internals ---

// setSession swaps the whole session state and notifies observers outside
// the lock.
func (srv *sessionService) setSession(ctx context.Context, identity entity.Identity, accessToken, refreshToken string) {
	srv.mu.Lock()
	srv.identity = identity
	srv.accessToken = accessToken
	srv.refreshToken = refreshToken
	observers := append([]usecase.IdentityObserver(nil), srv.observers...)
	srv.mu.Unlock()

	for _, observer := range observers {
		observer(ctx, identity)
	}
}

func (srv *sessionService) discardStoredSession(ctx context.Context) {
	for _, key := range []string{userKey, accessTokenKey, refreshTokenKey} {
		if err := srv.store.Remove(ctx, key); err != nil && !errors.Is(err, repository.ErrKeyNotFound) {
			srv.logger.Warn("Failed to remove stored session entry", slog.String("key", key), slog.Any("error", err))
		}
	}
}

// persist writes one storage entry. Storage failures are logged, never
// surfaced; the in-memory session stays authoritative.
func (srv *sessionService) persist(ctx context.Context, key, value string) {
	if err := srv.store.Set(ctx, key, value); err != nil {
		srv.logger.Warn("Failed to persist session entry", slog.String("key", key), slog.Any("error", err))
	}
}

func (srv *sessionService) persistUser(ctx context.Context, user *entity.User) {
	raw, err := json.Marshal(user)
	if err != nil {
		srv.logger.Warn("Failed to encode user record", slog.Any("error", err))

		return
	}

	srv.persist(ctx, userKey, string(raw))
}
