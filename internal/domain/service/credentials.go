package service

import "context"

// CredentialSource supplies the backend client with tokens and absorbs the
// consequences of auth failures. The session container implements it.
type CredentialSource interface {
	// AccessToken returns the current access token, or "" when anonymous.
	AccessToken() string

	// RefreshToken returns the current refresh token, or "".
	RefreshToken() string

	// ReplaceAccessToken stores a freshly minted access token, in memory
	// and in the persistent mirror, before the failed request is retried.
	ReplaceAccessToken(ctx context.Context, token string)

	// ForceLogout clears every piece of session state. Called when a
	// refresh attempt fails; no partial state survives.
	ForceLogout(ctx context.Context)
}
