package ports

import (
	"context"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
)

// SignupInput carries all data accepted by the signup operation. Role may
// only ever be "user"; admin accounts are provisioned out-of-band.
type SignupInput struct {
	Username    string
	Email       string
	Password    string
	Role        string
	Preferences map[string]any
}

// AuthService implements credential verification and session token lifecycle.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	// Login verifies the password and, when the account has two-factor auth
	// enabled, the one-time code. Returns the signed session token and the
	// user on success. Fails with domain.ErrTwoFactorRequired when a code is
	// needed but missing, so clients can prompt for one without re-entering
	// credentials.
	Login(ctx context.Context, email, password, otpCode string) (string, *domain.User, error)
	// Logout adds the presented token to the revocation list for the
	// remainder of its validity.
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error

	TokenVerifier
}

// TwoFactorSetup is returned by the 2FA setup operation.
type TwoFactorSetup struct {
	Secret string `json:"secret"`
	QRCode string `json:"qrCode"` // base64 PNG data URL of the otpauth URI
}

// TwoFactorService manages per-user TOTP enrolment.
type TwoFactorService interface {
	// Setup generates and stores a fresh secret without enabling 2FA. A prior
	// unconfirmed secret is overwritten.
	Setup(ctx context.Context, userID string) (*TwoFactorSetup, error)
	// Verify validates the code against the stored secret and enables 2FA on
	// success.
	Verify(ctx context.Context, userID, code string) error
	// Disable clears the enabled flag and the stored secret.
	Disable(ctx context.Context, userID string) error
}
