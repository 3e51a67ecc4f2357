package entity

// IdentityState enumerates who currently owns the storefront state.
// The three-way split matters: while the persisted session is still being
// restored the owner is unknown, and nothing may be written under a
// transient key.
type IdentityState int

const (
	// IdentityUnknown means session restore has not resolved yet.
	IdentityUnknown IdentityState = iota
	// IdentityAnonymous means no user is signed in; state is keyed as guest.
	IdentityAnonymous
	// IdentityAuthenticated means a signed-in user owns the state.
	IdentityAuthenticated
)

func (s IdentityState) String() string {
	switch s {
	case IdentityAnonymous:
		return "anonymous"
	case IdentityAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Identity pairs the state with the owning user (nil unless authenticated).
type Identity struct {
	State IdentityState
	User  *User
}

// CartKey derives the storage key owning the cart for this identity.
// This is the single place the key is derived; consumers receive it through
// identity-change notifications instead of re-deriving it ad hoc.
func (i Identity) CartKey() string {
	if i.State == IdentityAuthenticated && i.User != nil && i.User.ID != "" {
		return "cart:" + i.User.ID
	}

	return "cart:guest"
}

// Session holds the current user and its credentials. The access token is
// short-lived and replaced by refresh; the refresh token only mints new
// access tokens.
type Session struct {
	User         *User
	AccessToken  string
	RefreshToken string
}

// Authenticated reports whether the session carries a signed-in user.
func (s Session) Authenticated() bool {
	return s.User != nil
}
