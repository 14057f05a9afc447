package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/eventsphere-api/internal/core/ports"
)

// Context keys set by Auth for downstream handlers.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
	ContextToken  = "token"
)

// TokenCookieName is the session cookie set at login.
const TokenCookieName = "token"

// Auth extracts the session token (Authorization header preferred over the
// cookie), rejects revoked tokens before verifying the signature, and injects
// the identity into the request context.
//
// All failures are an undifferentiated 401: the response never reveals
// whether a token was missing a valid signature, expired, or revoked.
func Auth(verifier ports.TokenVerifier, revoker ports.TokenRevoker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
			}

			revoked, err := revoker.IsRevoked(c.Request().Context(), token)
			if err != nil || revoked {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			id, err := verifier.VerifyToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ContextUserID, id.UserID)
			c.Set(ContextRole, id.Role)
			c.Set(ContextToken, token)

			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}
	if cookie, err := c.Cookie(TokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return ""
}
