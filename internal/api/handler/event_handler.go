package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventsphere/eventsphere-api/internal/api/metrics"
	"github.com/eventsphere/eventsphere-api/internal/core/ports"
)

// EventHandler proxies the external event discovery provider.
type EventHandler struct {
	discovery ports.DiscoveryService
}

func NewEventHandler(discovery ports.DiscoveryService) *EventHandler {
	return &EventHandler{discovery: discovery}
}

// Upcoming returns events starting from now, optionally filtered.
//
// @Summary      Upcoming events
// @Tags         events
// @Produce      json
// @Param        location  query  string  false  "City filter"
// @Param        keyword   query  string  false  "Keyword filter"
// @Success      200  {object}  domain.EventPage
// @Failure      502  {object}  errorResponse
// @Router       /api/events [get]
func (h *EventHandler) Upcoming(c echo.Context) error {
	page, err := h.discovery.Upcoming(c.Request().Context(),
		c.QueryParam("location"), c.QueryParam("keyword"))
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("upcoming", "error").Inc()
		return err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("upcoming", "success").Inc()
	return c.JSON(http.StatusOK, page)
}

// Search is the general-purpose pass-through search.
//
// @Summary      Search events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        keyword      query  string  false  "Keyword"
// @Param        location     query  string  false  "City"
// @Param        sort         query  string  false  "Provider sort key"
// @Param        countryCode  query  string  false  "ISO country code"
// @Param        startDate    query  string  false  "ISO 8601 lower bound"
// @Param        endDate      query  string  false  "ISO 8601 upper bound"
// @Success      200  {object}  domain.EventPage
// @Failure      401  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /search-events [get]
func (h *EventHandler) Search(c echo.Context) error {
	page, err := h.discovery.Search(c.Request().Context(), searchFromQuery(c))
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("search", "error").Inc()
		return err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("search", "success").Inc()
	return c.JSON(http.StatusOK, page)
}

// Trending returns events in the requested window, defaulting to the next
// seven days.
//
// @Summary      Trending events
// @Tags         events
// @Produce      json
// @Param        startDate    query  string  false  "ISO 8601 lower bound"
// @Param        endDate      query  string  false  "ISO 8601 upper bound"
// @Param        sort         query  string  false  "Provider sort key"
// @Param        countryCode  query  string  false  "ISO country code"
// @Success      200  {object}  domain.EventPage
// @Failure      502  {object}  errorResponse
// @Router       /trending-events [get]
func (h *EventHandler) Trending(c echo.Context) error {
	page, err := h.discovery.Trending(c.Request().Context(), searchFromQuery(c))
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("trending", "error").Inc()
		return err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("trending", "success").Inc()
	return c.JSON(http.StatusOK, page)
}

// Details fetches a single provider event.
//
// @Summary      Event details
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Provider event id"
// @Success      200  {object}  domain.ProviderEvent
// @Failure      401  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /api/events/details/{id} [get]
func (h *EventHandler) Details(c echo.Context) error {
	event, err := h.discovery.Details(c.Request().Context(), c.Param("id"))
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues("details", "error").Inc()
		return err
	}
	metrics.UpstreamRequestsTotal.WithLabelValues("details", "success").Inc()
	return c.JSON(http.StatusOK, event)
}

func searchFromQuery(c echo.Context) ports.DiscoverySearch {
	return ports.DiscoverySearch{
		Location:      c.QueryParam("location"),
		Keyword:       c.QueryParam("keyword"),
		Sort:          c.QueryParam("sort"),
		CountryCode:   c.QueryParam("countryCode"),
		StartDateTime: c.QueryParam("startDate"),
		EndDateTime:   c.QueryParam("endDate"),
	}
}
