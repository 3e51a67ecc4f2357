package middleware

import (
	"megamart/internal/domain/entity"
	domainerrors "megamart/internal/domain/errors"
	"megamart/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SessionMiddleware gates routes on the storefront's session state.
type SessionMiddleware struct {
	session usecase.SessionUsecase
}

// NewSessionMiddleware is the constructor for SessionMiddleware.
func NewSessionMiddleware(session usecase.SessionUsecase) *SessionMiddleware {
	return &SessionMiddleware{session: session}
}

// RequireAuthenticated rejects requests while no user is signed in. Routes
// behind it can assume the session identity carries a user.
func (m *SessionMiddleware) RequireAuthenticated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.session.Identity().State != entity.IdentityAuthenticated {
			return errors.WithStack(domainerrors.ErrAuthRequired)
		}

		return next(c)
	}
}
