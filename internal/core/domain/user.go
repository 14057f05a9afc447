package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User models an account in the system. The password hash and the TOTP
// secret never serialise into API responses.
type User struct {
	ID               string         `json:"user_id"`
	Username         string         `json:"username"`
	Email            string         `json:"email"`
	PasswordHash     string         `json:"-"`
	Role             string         `json:"role"`
	Preferences      map[string]any `json:"preferences"`
	Avatar           string         `json:"avatar,omitempty"`
	TwoFactorSecret  string         `json:"-"`
	TwoFactorEnabled bool           `json:"isTwoFactorEnabled"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// TwoFactorPending reports whether a secret has been provisioned but not yet
// confirmed. Disabled accounts with no secret return false.
func (u *User) TwoFactorPending() bool {
	return !u.TwoFactorEnabled && u.TwoFactorSecret != ""
}
