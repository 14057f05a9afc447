package handler

import "github.com/eventsphere/eventsphere-api/internal/core/domain"

type signupRequest struct {
	Username    string         `json:"username" validate:"omitempty,min=2,max=30"`
	Email       string         `json:"email" validate:"required,email"`
	Password    string         `json:"password" validate:"required,min=6"`
	Role        string         `json:"role" validate:"omitempty,oneof=user"`
	Preferences map[string]any `json:"preferences"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	// Token is the one-time 2FA code, required only when the account has
	// two-factor auth enabled.
	Token string `json:"token"`
}

type updatePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type twoFactorVerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}
