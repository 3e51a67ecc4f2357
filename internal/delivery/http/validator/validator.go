// Package validator adapts go-playground/validator to echo's Validator.
package validator

import (
	domainerrors "megamart/internal/domain/errors"

	validate "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

type echoValidator struct {
	validate *validate.Validate
}

// New builds the request validator installed on the echo server.
func New() *echoValidator {
	return &echoValidator{validate: validate.New()}
}

// Validate checks a bound request struct against its validate tags. A
// failure surfaces as a validation AppError so the error middleware maps
// it to a 400.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return errors.Wrap(domainerrors.ErrValidationFailed.WithDetails(err.Error()), "request validation failed")
	}

	return nil
}
