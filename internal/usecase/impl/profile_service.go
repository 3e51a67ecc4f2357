package impl

import (
	"context"
	"log/slog"

	"megamart/internal/domain/entity"
	domainerrors "megamart/internal/domain/errors"
	"megamart/internal/domain/service"
	"megamart/internal/usecase"

	"github.com/pkg/errors"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	backend service.UserBackend
	session usecase.SessionUsecase
	logger  *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	backend service.UserBackend,
	session usecase.SessionUsecase,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		backend: backend,
		session: session,
		logger:  logger,
	}
}

// GetProfile fetches the signed-in user's profile from the backend.
func (srv *profileService) GetProfile(ctx context.Context) (*entity.User, error) {
	userID, err := srv.currentUserID()
	if err != nil {
		return nil, err
	}

	user, err := srv.backend.GetUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get profile")
	}

	return user, nil
}

// UpdateProfile patches the profile and refreshes the session's cached
// user record with the backend's result.
func (srv *profileService) UpdateProfile(ctx context.Context, input usecase.UpdateProfileInput) (*entity.User, error) {
	userID, err := srv.currentUserID()
	if err != nil {
		return nil, err
	}

	srv.logger.Info("Updating profile", slog.String("userID", userID))

	user, err := srv.backend.UpdateUser(ctx, userID, service.ProfileUpdate{
		FullName:  input.FullName,
		Phone:     input.Phone,
		Address:   input.Address,
		AvatarURL: input.AvatarURL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	srv.session.ReplaceUser(ctx, user)

	return user, nil
}

func (srv *profileService) currentUserID() (string, error) {
	identity := srv.session.Identity()
	if identity.State != entity.IdentityAuthenticated || identity.User == nil {
		return "", errors.WithStack(domainerrors.ErrAuthRequired)
	}

	return identity.User.ID, nil
}
