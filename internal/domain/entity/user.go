package entity

// User is the storefront's view of an account as returned by the backend.
// Beyond the identity fields the profile is treated as opaque display data.
type User struct {
	ID            string `json:"id"`
	FullName      string `json:"fullName"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
	AvatarURL     string `json:"avatarUrl,omitempty"`
	Role          string `json:"role,omitempty"`
	EmailVerified bool   `json:"emailVerified,omitempty"`
}

// IsAdmin reports whether the user may use the order-management console.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == "admin"
}
