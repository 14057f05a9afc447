package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTwoFactorRequired  = errors.New("2FA token required")
	ErrTwoFactorInvalid   = errors.New("invalid 2FA token")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
	ErrAdminProtected     = errors.New("admin accounts cannot be modified")
	ErrForbidden          = errors.New("access denied")
	ErrBookmarkNotFound   = errors.New("bookmark not found")
	ErrNoChanges          = errors.New("no changes provided")
	ErrPasswordMismatch   = errors.New("old password is incorrect")
	ErrUpstream           = errors.New("event provider unavailable")
)
