// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"megamart/internal/domain/service"
)

// tokenInspector is a concrete implementation of the TokenInspector
// interface using the JWT standard.
type tokenInspector struct {
	parser *jwt.Parser
}

// NewTokenInspector is the constructor for tokenInspector.
func NewTokenInspector() service.TokenInspector {
	return &tokenInspector{parser: jwt.NewParser()}
}

// Inspect decodes the claims of a backend-issued token without verifying
// its signature.
func (s *tokenInspector) Inspect(tokenString string) (*service.TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := s.parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, errors.Wrap(err, "malformed token")
	}

	info := &service.TokenInfo{}

	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		info.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}

	return info, nil
}
