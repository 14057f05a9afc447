package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/eventsphere-api/internal/api/metrics"
	"github.com/eventsphere/eventsphere-api/internal/core/domain"
	"github.com/eventsphere/eventsphere-api/internal/core/ports"
	"github.com/eventsphere/eventsphere-api/internal/infrastructure/storage"
)

// tokenCookieName is the session cookie issued at login. Must stay in sync
// with the name the auth middleware reads.
const tokenCookieName = "token"

// AuthHandler serves signup, login, session, profile, and 2FA endpoints.
type AuthHandler struct {
	auth         ports.AuthService
	twoFactor    ports.TwoFactorService
	users        ports.UserService
	avatars      *storage.AvatarStore
	audit        ports.AuditSink
	cookieSecure bool
	cookieMaxAge time.Duration
}

func NewAuthHandler(
	auth ports.AuthService,
	twoFactor ports.TwoFactorService,
	users ports.UserService,
	avatars *storage.AvatarStore,
	audit ports.AuditSink,
	cookieSecure bool,
	cookieMaxAge time.Duration,
) *AuthHandler {
	return &AuthHandler{
		auth:         auth,
		twoFactor:    twoFactor,
		users:        users,
		avatars:      avatars,
		audit:        audit,
		cookieSecure: cookieSecure,
		cookieMaxAge: cookieMaxAge,
	}
}

// Signup creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.auth.Signup(c.Request().Context(), ports.SignupInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		Preferences: req.Preferences,
	})
	if err != nil {
		return err
	}

	metrics.SignupsTotal.Inc()
	h.audit.Enqueue(domain.AuditEntry{
		ActorID:   user.ID,
		ActorRole: user.Role,
		Action:    domain.AuditSignup,
	})

	return c.JSON(http.StatusCreated, authResponse{
		Message: "user registered successfully",
		User:    user,
	})
}

// Login authenticates a user and issues a session token as both a JSON field
// and an httpOnly cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password, req.Token)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(loginFailureLabel(err)).Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.audit.Enqueue(domain.AuditEntry{
		ActorID:   user.ID,
		ActorRole: user.Role,
		Action:    domain.AuditLogin,
	})

	c.SetCookie(h.sessionCookie(token, h.cookieMaxAge))

	return c.JSON(http.StatusOK, authResponse{
		Message: "login successful",
		Token:   token,
		User:    user,
	})
}

func loginFailureLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrTwoFactorRequired):
		return "2fa_required"
	case errors.Is(err, domain.ErrTwoFactorInvalid):
		return "2fa_invalid"
	default:
		return "invalid_credentials"
	}
}

// Logout revokes the presented token and clears the session cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.auth.Logout(c.Request().Context(), ctxToken(c)); err != nil {
		return err
	}

	metrics.TokenRevocationsTotal.Inc()
	h.audit.Enqueue(domain.AuditEntry{
		ActorID:   id.UserID,
		ActorRole: id.Role,
		Action:    domain.AuditLogout,
	})

	c.SetCookie(h.sessionCookie("", -time.Second))

	return c.JSON(http.StatusOK, messageResponse{Message: "logged out successfully"})
}

// UpdatePassword changes the caller's password after verifying the old one.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updatePasswordRequest  true  "Old and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/update-password [put]
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.auth.ChangePassword(c.Request().Context(), id.UserID, req.OldPassword, req.NewPassword); err != nil {
		return err
	}

	h.audit.Enqueue(domain.AuditEntry{
		ActorID:   id.UserID,
		ActorRole: id.Role,
		Action:    domain.AuditPasswordChange,
	})

	return c.JSON(http.StatusOK, messageResponse{Message: "password updated successfully"})
}

// Profile returns the caller's account.
//
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.users.Profile(c.Request().Context(), id.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateProfile mutates the caller's profile from a multipart form. Fields
// username, email, and preferences (a JSON object string) are optional, as is
// the avatar file.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        username     formData  string  false  "New username"
// @Param        email        formData  string  false  "New email"
// @Param        preferences  formData  string  false  "Preferences JSON object"
// @Param        avatar       formData  file    false  "Avatar image (max 5 MiB)"
// @Success      200  {object}  domain.User
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var upd ports.ProfileUpdate
	if v := c.FormValue("username"); v != "" {
		upd.Username = &v
	}
	if v := c.FormValue("email"); v != "" {
		upd.Email = &v
	}
	if v := c.FormValue("preferences"); v != "" {
		var prefs map[string]any
		if err := json.Unmarshal([]byte(v), &prefs); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "preferences must be a JSON object")
		}
		upd.Preferences = prefs
	}

	if fh, err := c.FormFile("avatar"); err == nil {
		avatarURL, err := h.avatars.Save(fh)
		if err != nil {
			return err
		}
		upd.Avatar = &avatarURL
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), id.UserID, upd)
	if err != nil {
		return err
	}

	h.audit.Enqueue(domain.AuditEntry{
		ActorID:   id.UserID,
		ActorRole: id.Role,
		Action:    domain.AuditUserUpdate,
		Target:    id.UserID,
	})

	return c.JSON(http.StatusOK, user)
}

// TwoFactorSetup provisions a fresh TOTP secret and returns it with a QR
// code. 2FA stays disabled until the first code is verified.
//
// @Summary      Begin 2FA enrolment
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.TwoFactorSetup
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/2fa/setup [get]
func (h *AuthHandler) TwoFactorSetup(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	setup, err := h.twoFactor.Setup(c.Request().Context(), id.UserID)
	if err != nil {
		return err
	}

	h.audit.Enqueue(domain.AuditEntry{
		ActorID:   id.UserID,
		ActorRole: id.Role,
		Action:    domain.AuditTwoFactorSetup,
	})

	return c.JSON(http.StatusOK, setup)
}

// TwoFactorVerify confirms enrolment with a first valid code and enables 2FA.
//
// @Summary      Confirm 2FA enrolment
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      twoFactorVerifyRequest  true  "One-time code"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/2fa/verify [post]
func (h *AuthHandler) TwoFactorVerify(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req twoFactorVerifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.twoFactor.Verify(c.Request().Context(), id.UserID, req.Token); err != nil {
		metrics.TwoFactorChecksTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.TwoFactorChecksTotal.WithLabelValues("success").Inc()
	h.audit.Enqueue(domain.AuditEntry{
		ActorID:   id.UserID,
		ActorRole: id.Role,
		Action:    domain.AuditTwoFactorEnable,
	})

	return c.JSON(http.StatusOK, messageResponse{Message: "2FA enabled successfully"})
}

// TwoFactorDisable turns off 2FA and discards the stored secret.
//
// @Summary      Disable 2FA
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/2fa/disable [post]
func (h *AuthHandler) TwoFactorDisable(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.twoFactor.Disable(c.Request().Context(), id.UserID); err != nil {
		return err
	}

	h.audit.Enqueue(domain.AuditEntry{
		ActorID:   id.UserID,
		ActorRole: id.Role,
		Action:    domain.AuditTwoFactorOff,
	})

	return c.JSON(http.StatusOK, messageResponse{Message: "2FA disabled successfully"})
}

// sessionCookie builds the session cookie. A non-positive maxAge expires it.
func (h *AuthHandler) sessionCookie(token string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     tokenCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
}
