package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/eventsphere-api/internal/api/metrics"
	"github.com/eventsphere/eventsphere-api/internal/core/domain"
	"github.com/eventsphere/eventsphere-api/internal/core/ports"
)

// AdminHandler serves the admin dashboard endpoints. Every route is gated by
// the admin role in the router.
type AdminHandler struct {
	users     ports.UserService
	bookmarks ports.BookmarkService
	discovery ports.DiscoveryService
	audit     ports.AuditRecorder
	sink      ports.AuditSink
}

func NewAdminHandler(
	users ports.UserService,
	bookmarks ports.BookmarkService,
	discovery ports.DiscoveryService,
	audit ports.AuditRecorder,
	sink ports.AuditSink,
) *AdminHandler {
	return &AdminHandler{
		users:     users,
		bookmarks: bookmarks,
		discovery: discovery,
		audit:     audit,
		sink:      sink,
	}
}

type adminUserItem struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type adminUserUpdateRequest struct {
	Username string `json:"username" validate:"omitempty,min=2,max=30"`
	Email    string `json:"email" validate:"omitempty,email"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

// ListUsers returns all accounts, trimmed to dashboard fields.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   adminUserItem
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.users.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	items := make([]adminUserItem, 0, len(users))
	for _, u := range users {
		items = append(items, adminUserItem{
			UserID:   u.ID,
			Username: u.Username,
			Email:    u.Email,
			Role:     u.Role,
		})
	}
	return c.JSON(http.StatusOK, items)
}

// UpdateUser mutates a non-admin account.
//
// @Summary      Update a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Target user id"
// @Param        body  body      adminUserUpdateRequest  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req adminUserUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var upd ports.AdminUserUpdate
	if req.Username != "" {
		upd.Username = &req.Username
	}
	if req.Email != "" {
		upd.Email = &req.Email
	}
	if req.Role != "" {
		upd.Role = &req.Role
	}
	if req.Password != "" {
		upd.Password = &req.Password
	}

	targetID := c.Param("id")
	if err := h.users.AdminUpdateUser(c.Request().Context(), targetID, upd); err != nil {
		return err
	}

	h.sink.Enqueue(domain.AuditEntry{
		ActorID:   id.UserID,
		ActorRole: id.Role,
		Action:    domain.AuditUserUpdate,
		Target:    targetID,
	})

	return c.JSON(http.StatusOK, messageResponse{Message: "user updated successfully"})
}

// DeleteUser removes a non-admin account and its bookmarks.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Target user id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	targetID := c.Param("id")
	if err := h.users.DeleteUser(c.Request().Context(), targetID); err != nil {
		return err
	}

	h.sink.Enqueue(domain.AuditEntry{
		ActorID:   id.UserID,
		ActorRole: id.Role,
		Action:    domain.AuditUserDelete,
		Target:    targetID,
	})

	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted successfully"})
}

// AllEvents returns the normalised provider listing for the dashboard.
//
// @Summary      List provider events
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.AllEventsResult
// @Failure      403  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /api/admin/all-events [get]
func (h *AdminHandler) AllEvents(c echo.Context) error {
	result, err := h.discovery.AllEvents(c.Request().Context())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("admin", "error").Inc()
		return err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("admin", "success").Inc()
	return c.JSON(http.StatusOK, result)
}

// EventsCount returns the provider's total number of upcoming events.
//
// @Summary      Count provider events
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  countResponse
// @Failure      403  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /api/admin/events-count [get]
func (h *AdminHandler) EventsCount(c echo.Context) error {
	count, err := h.discovery.EventsCount(c.Request().Context())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("admin", "error").Inc()
		return err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("admin", "success").Inc()
	return c.JSON(http.StatusOK, countResponse{Count: count})
}

// TrendingCount returns the number of events in the next seven days.
//
// @Summary      Count trending events
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  countResponse
// @Failure      403  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /api/admin/trending-count [get]
func (h *AdminHandler) TrendingCount(c echo.Context) error {
	count, err := h.discovery.TrendingCount(c.Request().Context())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("admin", "error").Inc()
		return err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("admin", "success").Inc()
	return c.JSON(http.StatusOK, countResponse{Count: int64(count)})
}

// DeleteEvent acknowledges a provider event deletion. Provider data is
// read-only upstream, so nothing is removed on their side.
//
// @Summary      Delete a provider event
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Provider event id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/events/{id} [delete]
func (h *AdminHandler) DeleteEvent(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "event deleted successfully"})
}

// ListSavedEvents returns bookmarks across all users.
//
// @Summary      List all saved events
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  savedEventsResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/admin/saved-events [get]
func (h *AdminHandler) ListSavedEvents(c echo.Context) error {
	bs, err := h.bookmarks.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, savedEventsResponse{Events: toSavedEventItems(bs)})
}

// DeleteSavedEvent removes a bookmark row regardless of its owner.
//
// @Summary      Delete a saved event
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Bookmark row id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/admin/saved-events/{id} [delete]
func (h *AdminHandler) DeleteSavedEvent(c echo.Context) error {
	if err := h.bookmarks.DeleteRow(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "saved event deleted"})
}

// Audit returns the most recent audit trail entries.
//
// @Summary      Recent audit entries
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Max entries (default 50, cap 500)"
// @Success      200    {array}   domain.AuditEntry
// @Failure      403    {object}  errorResponse
// @Router       /api/admin/audit [get]
func (h *AdminHandler) Audit(c echo.Context) error {
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = n
	}

	entries, err := h.audit.Recent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
