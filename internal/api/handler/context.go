package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/eventsphere-api/internal/core/ports"
)

// ctxIdentity extracts the identity injected by the Auth middleware. A
// missing user id means the middleware did not run on this route; reject with
// 401 rather than let a service see an empty principal.
func ctxIdentity(c echo.Context) (ports.Identity, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return ports.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ := c.Get("role").(string)
	return ports.Identity{UserID: userID, Role: role}, nil
}

// ctxToken returns the raw bearer token the Auth middleware stored.
func ctxToken(c echo.Context) string {
	token, _ := c.Get("token").(string)
	return token
}
