package service

import "time"

// TokenInfo is what the client can read out of a token it did not sign.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token's expiry has passed. Tokens without an
// exp claim never report as expired.
func (i TokenInfo) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// TokenInspector reads claims from JWTs minted by the backend. Signatures
// are not checked here; only the backend can verify its own tokens, and the
// client uses the claims purely for display and proactive refresh hints.
type TokenInspector interface {
	Inspect(tokenString string) (*TokenInfo, error)
}
