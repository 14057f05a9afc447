package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/eventsphere-api/internal/api/metrics"
	"github.com/eventsphere/eventsphere-api/internal/core/domain"
	"github.com/eventsphere/eventsphere-api/internal/core/ports"
)

// BookmarkHandler serves the saved-events endpoints.
type BookmarkHandler struct {
	bookmarks ports.BookmarkService
}

func NewBookmarkHandler(bookmarks ports.BookmarkService) *BookmarkHandler {
	return &BookmarkHandler{bookmarks: bookmarks}
}

// Save bookmarks an event for the caller. Re-saving an already bookmarked
// event replaces the stored snapshot and tags.
//
// @Summary      Bookmark an event
// @Tags         bookmarks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      saveBookmarkRequest  true  "Event snapshot"
// @Success      200   {object}  saveBookmarkResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/events/bookmark [post]
func (h *BookmarkHandler) Save(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req saveBookmarkRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	b, err := h.bookmarks.Save(c.Request().Context(), id.UserID, ports.SaveBookmarkInput{
		EventID: req.EventID,
		Data: domain.EventData{
			Name:      req.Name,
			Location:  req.Location,
			Address:   req.Address,
			Date:      req.Date,
			Image:     req.Image,
			TicketURL: req.TicketURL,
			Platform:  req.Platform,
		},
		Tags: req.Tags,
	})
	if err != nil {
		return err
	}

	metrics.BookmarksSavedTotal.Inc()

	return c.JSON(http.StatusOK, saveBookmarkResponse{
		Success: true,
		Message: "event saved successfully",
		EventID: b.EventID,
	})
}

// List returns the caller's bookmarks, most recent first.
//
// @Summary      List saved events
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  savedEventsResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/events/bookmarks [get]
func (h *BookmarkHandler) List(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	bs, err := h.bookmarks.List(c.Request().Context(), id.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, savedEventsResponse{Events: toSavedEventItems(bs)})
}

// Search filters the caller's bookmarks by text, date prefix, and tags. All
// filters are optional and combine with AND.
//
// @Summary      Search saved events
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Param        q     query     string  false  "Substring match on name, location, address"
// @Param        date  query     string  false  "Date prefix, e.g. 2026-09"
// @Param        tags  query     string  false  "Comma-separated tags, all must match"
// @Success      200   {array}   savedEventItem
// @Failure      401   {object}  errorResponse
// @Router       /api/events/saved/search [get]
func (h *BookmarkHandler) Search(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	bs, err := h.bookmarks.Search(c.Request().Context(), id.UserID, ports.BookmarkSearch{
		Query: c.QueryParam("q"),
		Date:  c.QueryParam("date"),
		Tags:  c.QueryParam("tags"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toSavedEventItems(bs))
}

// Remove deletes one of the caller's bookmarks by row id or event id.
//
// @Summary      Remove a saved event
// @Tags         bookmarks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Bookmark row id or event id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/events/bookmark/{id} [delete]
func (h *BookmarkHandler) Remove(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.bookmarks.Remove(c.Request().Context(), id.UserID, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "event removed from bookmarks"})
}
